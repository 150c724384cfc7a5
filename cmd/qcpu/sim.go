package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rv32x/qcpu-sim/config"
	"github.com/rv32x/qcpu-sim/decoder"
	"github.com/rv32x/qcpu-sim/isa"
	"github.com/rv32x/qcpu-sim/loader"
	"github.com/rv32x/qcpu-sim/sim"
	"github.com/rv32x/qcpu-sim/stats"
	"github.com/rv32x/qcpu-sim/vm"
)

func newSimCmd() *cobra.Command {
	var (
		binPath     string
		sourcePath  string
		configPath  string
		memorySize  uint32
		entryPoint  string
		inputPath   string
		outputPath  string
		verbose     bool
		interactive bool
		statsFormat string
	)

	cmd := &cobra.Command{
		Use:   "sim",
		Short: "Run a program and report final register state plus statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			if (binPath == "") == (sourcePath == "") {
				return withExit(1, errors.New("exactly one of --bin or --source is required"))
			}

			prog, err := loadProgram(binPath, sourcePath)
			if err != nil {
				return withExit(1, err)
			}

			cfg, err := loadSimConfig(configPath)
			if err != nil {
				return withExit(1, err)
			}

			pc, err := prog.EntryPoint(entryPoint)
			if err != nil {
				return withExit(1, err)
			}

			in, closeIn, err := openInput(inputPath)
			if err != nil {
				return withExit(1, err)
			}
			if closeIn != nil {
				defer closeIn()
			}
			out, closeOut, err := openOutput(outputPath)
			if err != nil {
				return withExit(1, err)
			}
			if closeOut != nil {
				defer closeOut()
			}

			historyDepth := 0
			if interactive {
				historyDepth = cfg.Debugger.HistoryDepth
				fmt.Fprintln(cmd.ErrOrStderr(), "note: --interactive retains step-back history only; there is no REPL front-end in this module")
			}

			policy, err := cfg.CachePolicy()
			if err != nil {
				return withExit(1, err)
			}

			machine := sim.New(prog.Decoded, vm.NewStreams(in, out), sim.Config{
				CacheIndexBits: uint(cfg.Cache.IndexBits),
				CacheWayBits:   uint(cfg.Cache.WayBits),
				CachePolicy:    policy,
				HistoryDepth:   historyDepth,
				MemorySize:     memSizeOrDefault(memorySize, cfg),
				ClockMHz:       cfg.Cycle.ClockMHz,
			})
			if err := machine.LoadProgram(prog.Words); err != nil {
				return withExit(2, err)
			}
			machine.PC = pc

			if verbose {
				if err := runVerbose(cmd, machine, prog); err != nil {
					return withExit(2, err)
				}
				if err := machine.Streams.Flush(); err != nil {
					return withExit(2, err)
				}
			} else if err := machine.Run(); err != nil {
				return withExit(2, err)
			}

			printRegisters(cmd, machine.Registers)
			return writeStats(cmd, machine.Report(), statsFormat)
		},
	}

	cmd.Flags().StringVar(&binPath, "bin", "", "packed binary file")
	cmd.Flags().StringVar(&sourcePath, "source", "", "assembly source file")
	cmd.Flags().StringVar(&configPath, "config", "", "TOML config file (defaults per config.DefaultConfig)")
	cmd.Flags().Uint32Var(&memorySize, "memory-size", 0, "memory size in bytes (0 = config/default)")
	cmd.Flags().StringVar(&entryPoint, "entry-point", "", "label to start execution at (defaults to word 0)")
	cmd.Flags().StringVar(&inputPath, "input", "", "input stream file for INB/INW (defaults to none)")
	cmd.Flags().StringVar(&outputPath, "output", "", "output stream file for OUTB (defaults to stdout)")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "print a per-instruction execution trace")
	cmd.Flags().BoolVar(&interactive, "interactive", false, "retain bounded step-back history while running")
	cmd.Flags().StringVar(&statsFormat, "stats-format", "text", "statistics format: text, json, csv, html, yaml")

	return cmd
}

func loadProgram(binPath, sourcePath string) (*loader.Program, error) {
	if binPath != "" {
		data, err := os.ReadFile(binPath) // #nosec G304 -- user-supplied CLI path
		if err != nil {
			return nil, fmt.Errorf("read binary: %w", err)
		}
		return loader.FromBinary(data)
	}
	src, err := os.ReadFile(sourcePath) // #nosec G304 -- user-supplied CLI path
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	return loader.FromSource(sourcePath, string(src))
}

func loadSimConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.DefaultConfig(), nil
	}
	return config.LoadFrom(path)
}

func memSizeOrDefault(flagValue uint32, cfg *config.Config) uint32 {
	if flagValue != 0 {
		return flagValue
	}
	return cfg.Memory.SizeBytes
}

func openInput(path string) (*os.File, func(), error) {
	if path == "" {
		return nil, nil, nil
	}
	f, err := os.Open(path) // #nosec G304 -- user-supplied CLI path
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

func openOutput(path string) (*os.File, func(), error) {
	if path == "" {
		return os.Stdout, nil, nil
	}
	f, err := os.Create(path) // #nosec G304 -- user-supplied CLI path
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

func runVerbose(cmd *cobra.Command, machine *sim.Machine, prog *loader.Program) error {
	out := cmd.ErrOrStderr()
	for {
		pc := machine.PC
		index := int(pc / 4)
		if index >= 0 && index < len(machine.Program) {
			d := machine.Program[index]
			fmt.Fprintf(out, "pc=0x%08x  %s\n", pc, decoder.Format(d, index, prog.Labels))
		}
		halted, err := machine.Step()
		if err != nil {
			machine.Stats.SetFlushes(machine.Predictor.JalrFlushes, machine.Predictor.BranchFlushes)
			machine.Stats.Tally()
			return err
		}
		if halted {
			break
		}
	}
	machine.Stats.SetFlushes(machine.Predictor.JalrFlushes, machine.Predictor.BranchFlushes)
	machine.Stats.Tally()
	return nil
}

func printRegisters(cmd *cobra.Command, regs *vm.Registers) {
	out := cmd.OutOrStdout()
	snap := regs.Snapshot()
	for i, v := range snap {
		name := isa.Register(i).String()
		if i < isa.FloatRegisterBase {
			fmt.Fprintf(out, "%-5s 0x%08x (%d)", name, v, int32(v))
		} else {
			fmt.Fprintf(out, "%-5s 0x%08x (%g)", name, v, float64(vm.Float32(v)))
		}
		if i%4 == 3 {
			fmt.Fprintln(out)
		} else {
			fmt.Fprint(out, "  ")
		}
	}
	fmt.Fprintln(out)
}

func writeStats(cmd *cobra.Command, report stats.Report, format string) error {
	out := cmd.OutOrStdout()
	switch format {
	case "json":
		return report.ExportJSON(out)
	case "csv":
		return report.ExportCSV(out)
	case "html":
		return report.ExportHTML(out)
	case "yaml":
		return report.ExportYAML(out)
	default:
		_, err := fmt.Fprint(out, report.String())
		return err
	}
}
