package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/story-labs/launcher/internal/tools"
)

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(toolsCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed tools",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		installed := newCommands(false).ListInstalled()
		if jsonOutput {
			return printJSON(os.Stdout, installed)
		}
		if len(installed) == 0 {
			fmt.Println("No tools installed.")
			return nil
		}
		for _, key := range installed {
			fmt.Println(key)
		}
		return nil
	},
}

type toolInfo struct {
	Key         string `json:"key"`
	DisplayName string `json:"display_name"`
	Repository  string `json:"repository"`
	AppName     string `json:"app_name"`
}

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the tools this launcher can install",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		all := tools.All()
		if jsonOutput {
			out := make([]toolInfo, 0, len(all))
			for _, d := range all {
				out = append(out, toolInfo{d.Key, d.DisplayName, d.Repository, d.AppName})
			}
			return printJSON(os.Stdout, out)
		}
		for _, d := range all {
			fmt.Println(formatTool(d))
		}
		return nil
	},
}
