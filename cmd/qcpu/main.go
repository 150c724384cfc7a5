// Command qcpu is the CLI front end over the simulator core: assemble,
// disassemble, and run.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "qcpu",
		Short: "qcpu-sim — a custom RV32I-derived instruction-set simulator",
	}

	root.AddCommand(newAsmCmd())
	root.AddCommand(newDisasmCmd())
	root.AddCommand(newSimCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeFor(err))
	}
}

// exitCode is attached to errors that need to force a specific process
// exit status: 0 normal halt, 1 parse error, 2 runtime error.
type exitCode struct {
	code int
	err  error
}

func (e *exitCode) Error() string { return e.err.Error() }
func (e *exitCode) Unwrap() error { return e.err }

func withExit(code int, err error) error {
	if err == nil {
		return nil
	}
	return &exitCode{code: code, err: err}
}

func exitCodeFor(err error) int {
	var ec *exitCode
	if errors.As(err, &ec) {
		return ec.code
	}
	return 1
}
