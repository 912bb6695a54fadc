package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(updateCmd)
}

var updateCmd = &cobra.Command{
	Use:   "update <tool>",
	Short: "Reinstall a tool from its latest release",
	Long: `Replace the installed copy of a tool with its latest release. This is a
full reinstall; running it when already up to date reinstalls the same
version.

  story-launcher update resolve-sync`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmds := newCommands(true)
		return runAction(cmd.Context(), args[0], cmds.Update)
	},
}
