package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// Exit codes of the table command.
const (
	ExitAppNotFound        = 1
	ExitListProfilesFailed = 2
	ExitNoProfiles         = 3
	ExitWriteFailed        = 4
)

// CodedError carries the process exit code for err. Usage marks command-line
// mistakes, which get a pointer to --help.
type CodedError struct {
	Code  int
	Err   error
	Usage bool
}

func (e *CodedError) Error() string {
	return e.Err.Error()
}

func (e *CodedError) Unwrap() error {
	return e.Err
}

func withCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &CodedError{Code: code, Err: err}
}

func usageError(err error) error {
	if err == nil {
		return nil
	}
	return &CodedError{Code: ExitUsage, Err: err, Usage: true}
}

func isUsageError(err error) bool {
	var coded *CodedError
	return errors.As(err, &coded) && coded.Usage
}

func usageErrorf(format string, args ...any) error {
	return usageError(fmt.Errorf(format, args...))
}

// ExitCode maps an error returned by an Execute function to a process exit
// code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var coded *CodedError
	if errors.As(err, &coded) {
		return coded.Code
	}
	return ExitFailure
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return usageError(err)
		}
		return nil
	}
}

func noArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.NoArgs(cmd, args); err != nil {
		return usageError(err)
	}
	return nil
}

// execute runs cmd and prints any error to stderr. Usage errors also point
// at --help.
func execute(cmd *cobra.Command, args []string, stderr io.Writer) error {
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return usageError(err)
	})
	if args != nil {
		cmd.SetArgs(args)
	}
	if stderr != nil {
		cmd.SetErr(stderr)
	}

	err := cmd.Execute()
	if err == nil {
		return nil
	}

	w := cmd.ErrOrStderr()
	fmt.Fprintf(w, "ERROR: %v\n", err)
	if isUsageError(err) {
		fmt.Fprintf(w, "Run '%s --help' for usage.\n", cmd.CommandPath())
	}
	return err
}
