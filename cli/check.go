package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cxrvus/antbyte"
)

// newCheckCommand implements `antbyte check <file.ant>` (spec.md §6.1):
// compile-only, prints "<file>: ok" on success, non-zero exit on failure —
// for CI.
func newCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <file.ant>",
		Short: "compile a world without running it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(args[0])
		},
	}
	return cmd
}

func runCheck(path string) error {
	if _, err := antbyte.Build(path); err != nil {
		return err
	}
	fmt.Printf("%s: ok\n", path)
	return nil
}
