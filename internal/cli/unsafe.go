// internal/cli/unsafe.go
package rv6tool

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/kaist-cp/rv6-tools/internal/unsafecount"
)

var unsafeTrace bool

// unsafeCmd represents the unsafe command.
var unsafeCmd = &cobra.Command{
	Use:   "unsafe [pattern | start..end]",
	Short: "Audit the ratio of unsafe lines to code lines",
	Long: `Audit the ratio of unsafe-marked lines to total code lines, per file and
in aggregate. By default the current worktree is measured for every file
matching the glob pattern. With --trace the argument is a start..end revision
range and every revision in it is measured in chronological order, reporting
per-file deltas between consecutive revisions.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if cfg == nil {
			return errors.New("config is nil")
		}

		selector := cfg.Pattern
		if len(args) == 1 {
			selector = args[0]
		} else if unsafeTrace {
			return errors.New("trace mode requires a start..end revision range")
		}

		return unsafecount.RunAudit(cmd.Context(), cfg.Dir, selector, cfg.Pattern, unsafeTrace, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(unsafeCmd)
	unsafeCmd.Flags().BoolVar(&unsafeTrace, "trace", false, "audit each revision in a range instead of a single snapshot")
}
