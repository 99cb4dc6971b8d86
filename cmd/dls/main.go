package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

const usageLine = "[-1AacdFfhiklnqRrSstuw] [file ...]"

// usageError marks failures caused by how the command was invoked.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func main() {
	prog := filepath.Base(os.Args[0])
	rootCmd := newRootCmd(prog)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", prog, err)
		var ue *usageError
		if errors.As(err, &ue) {
			fmt.Fprintf(os.Stderr, "usage: %s %s\n", prog, usageLine)
		}
		os.Exit(1)
	}
}

func newRootCmd(prog string) *cobra.Command {
	f := &flags{}
	cmd := &cobra.Command{
		Use:   prog + " " + usageLine,
		Short: "List directory contents",
		Long: `dls lists files and directories with their metadata. Directories
are listed as groups of aligned columns, optionally recursing into
subdirectories.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(prog, f, args)
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})
	f.register(cmd)
	return cmd
}
