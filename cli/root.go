// Package cli implements the antbyte command-line front end: the Cobra
// command tree, ANSI/GIF rendering, and the --debug dump formats
// (spec.md §6, "External Interfaces" / CLI). None of this package is
// imported by lexer/parser/linker/compiler/assembler/world — it is an
// external collaborator of the simulation core, not part of it.
//
// Grounded on the teacher's runtime/cli/harness.go (Cobra root command +
// persistent-flag setup) and, for command/flag shape, on
// original_source/src/cli.rs's `Args`/`run` (stepped/looping/instant/ticks/
// debug) and original_source/src/bin/cli.rs's ANSI color/glyph rendering.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cxrvus/antbyte/errors"
)

// Exit codes (spec.md §6.1): 0 success, 1 invalid arguments, 2 I/O error,
// 3 compile error, 4 runtime panic (cache-invariant violation only).
const (
	ExitSuccess      = 0
	ExitUsage        = 1
	ExitIO           = 2
	ExitCompileError = 3
	ExitPanic        = 4
)

// NewRootCommand builds the antbyte command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "antbyte",
		Short:         "a two-dimensional grid-world simulator of combinational ants",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.AddCommand(newRunCommand())
	root.AddCommand(newWatchCommand())
	root.AddCommand(newCheckCommand())

	return root
}

// Main is cmd/antbyte's entire body: build the command tree, run it, and
// translate any returned error into the mandated exit code.
func Main() {
	root := NewRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, formatError(err))
		os.Exit(exitCodeFor(err))
	}
}

// formatError renders err for stderr. *errors.Error already produces the
// "<!> message / in ..." form spec.md §7 mandates; anything else (a Cobra
// usage error) is printed as-is with the same prefix.
func formatError(err error) string {
	if ae, ok := err.(*errors.Error); ok {
		return ae.Error()
	}
	return "<!> " + err.Error()
}

// exitCodeFor classifies err by its errors.Kind (or its absence, for a bare
// Cobra usage error) into one of the four codes spec.md §6.1 mandates.
func exitCodeFor(err error) int {
	ae, ok := err.(*errors.Error)
	if !ok {
		return ExitUsage
	}

	switch ae.Kind {
	case errors.LinkMissingFile, errors.CliIO:
		return ExitIO
	case errors.WorldOccupancy:
		return ExitPanic
	default:
		return ExitCompileError
	}
}
