package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rv32x/qcpu-sim/decoder"
	"github.com/rv32x/qcpu-sim/loader"
)

func newDisasmCmd() *cobra.Command {
	var (
		binPath    string
		outputPath string
	)

	cmd := &cobra.Command{
		Use:   "disasm",
		Short: "Disassemble a packed binary into assembly text",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(binPath) // #nosec G304 -- user-supplied CLI path
			if err != nil {
				return withExit(1, fmt.Errorf("read binary: %w", err))
			}

			prog, err := loader.FromBinary(data)
			if err != nil {
				return withExit(1, err)
			}

			text := decoder.FormatProgram(prog.Decoded, prog.Labels)

			out := cmd.OutOrStdout()
			if outputPath != "" {
				f, err := os.Create(outputPath) // #nosec G304 -- user-supplied CLI path
				if err != nil {
					return withExit(1, err)
				}
				defer f.Close()
				out = f
			}
			_, err = fmt.Fprint(out, text)
			if err != nil {
				return withExit(1, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&binPath, "bin", "", "packed binary file (required)")
	cmd.Flags().StringVar(&outputPath, "output", "", "output file (defaults to stdout)")
	cmd.MarkFlagRequired("bin")

	return cmd
}
