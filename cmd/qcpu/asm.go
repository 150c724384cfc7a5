package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rv32x/qcpu-sim/loader"
)

func newAsmCmd() *cobra.Command {
	var (
		sourcePath  string
		outputPath  string
		readable    bool
		verbose     bool
		dumpSymbols bool
	)

	cmd := &cobra.Command{
		Use:   "asm",
		Short: "Assemble source into a packed binary or a readable word list",
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(sourcePath) // #nosec G304 -- user-supplied CLI path
			if err != nil {
				return withExit(1, fmt.Errorf("read source: %w", err))
			}

			prog, err := loader.FromSource(sourcePath, string(src))
			if err != nil {
				return withExit(1, err)
			}

			if verbose {
				fmt.Fprintf(cmd.OutOrStdout(), "assembled %d words\n", len(prog.Words))
			}

			if dumpSymbols {
				printSymbols(cmd, prog)
			}

			out := cmd.OutOrStdout()
			if outputPath != "" {
				f, err := os.Create(outputPath) // #nosec G304 -- user-supplied CLI path
				if err != nil {
					return withExit(1, err)
				}
				defer f.Close()
				out = f
			}

			if readable {
				var sb strings.Builder
				for _, w := range prog.Words {
					fmt.Fprintf(&sb, "%032b\n", w)
				}
				_, err = fmt.Fprint(out, sb.String())
			} else {
				_, err = out.Write(loader.ToBinary(prog.Words))
			}
			if err != nil {
				return withExit(1, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sourcePath, "source", "", "assembly source file (required)")
	cmd.Flags().StringVar(&outputPath, "output", "", "output file (defaults to stdout)")
	cmd.Flags().BoolVar(&readable, "readable", false, "emit one binary-string-per-line instead of packed bytes")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "print extra diagnostics")
	cmd.Flags().BoolVar(&dumpSymbols, "dump-symbols", false, "print the resolved label map")
	cmd.MarkFlagRequired("source")

	return cmd
}

func printSymbols(cmd *cobra.Command, prog *loader.Program) {
	if prog.Labels == nil {
		return
	}
	out := cmd.ErrOrStderr()
	fmt.Fprintln(out, "symbols:")
	for i := range prog.Words {
		if name, ok := prog.Labels.NameAt(i); ok {
			fmt.Fprintf(out, "  %-24s word %d\n", name, i)
		}
	}
}
