package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/story-labs/launcher/internal/branding"
	"github.com/story-labs/launcher/internal/tools"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status [tool]",
	Short: "Show installed and latest versions",
	Long: `Compare the installed version of each tool with its latest release.

  story-launcher status                 # all tools
  story-launcher status resolve-sync    # one tool
  story-launcher status --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmds := newCommands(false)

		if len(args) == 1 {
			if !tools.IsKnown(args[0]) {
				return fmt.Errorf("unknown tool %q (run '%s tools' for the list)", args[0], branding.CLIName())
			}
			st := cmds.CheckStatus(cmd.Context(), args[0])
			if jsonOutput {
				return printJSON(os.Stdout, st)
			}
			fmt.Println(formatStatus(args[0], st))
			return nil
		}

		o := cmds.Overview(cmd.Context())
		if jsonOutput {
			return printJSON(os.Stdout, o)
		}
		for _, d := range tools.All() {
			fmt.Println(formatStatus(d.Key, o.Tools[d.Key]))
		}
		if o.HasUpdates {
			fmt.Printf("\nUpdates available. Run '%s update <tool>'.\n", branding.CLIName())
		}
		return nil
	},
}
