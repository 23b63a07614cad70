// Command rssg is the out-of-scope CLI collaborator spec.md §6 describes:
// a thin wrapper around the Builder and Retriever, kept deliberately small
// (spec.md §2 component J, SPEC_FULL.md §10). The core — the graph model,
// the import pipeline, the retriever — lives entirely under internal/ and
// is usable as a library with no CLI involved.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// cliError pairs an error with the exit code spec.md §6 mandates: 0
// success, 1 invalid arguments, 2 missing/invalid repo path.
type cliError struct {
	code int
	err  error
}

func (e *cliError) Error() string { return e.err.Error() }
func (e *cliError) Unwrap() error { return e.err }

func invalidArgs(format string, a ...any) error {
	return &cliError{code: 1, err: fmt.Errorf(format, a...)}
}

func invalidRepo(format string, a ...any) error {
	return &cliError{code: 2, err: fmt.Errorf(format, a...)}
}

func exitCodeFor(err error) int {
	var ce *cliError
	if errors.As(err, &ce) {
		return ce.code
	}
	return 1
}

var rootCmd = &cobra.Command{
	Use:   "rssg",
	Short: "Build and query a repo-specific semantic graph",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeFor(err))
	}
}
