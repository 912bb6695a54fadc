package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/story-labs/launcher/internal/manager"
)

func init() {
	rootCmd.AddCommand(installCmd)
}

var installCmd = &cobra.Command{
	Use:   "install <tool>",
	Short: "Install the latest release of a tool",
	Long: `Download the latest release of a tool and unpack it into the apps
directory, replacing any existing copy.

  story-launcher install resolve-sync`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmds := newCommands(true)
		return runAction(cmd.Context(), args[0], cmds.Install)
	},
}

// runAction prints the result of an install-like command and turns a failed
// result into an error so the process exits non-zero.
func runAction(ctx context.Context, key string, fn func(context.Context, string) manager.ActionResult) error {
	if !jsonOutput {
		fmt.Fprintf(os.Stderr, "Checking latest release of %s...\n", key)
	}
	res := fn(ctx, key)
	return printResult(res)
}

func printResult(res manager.ActionResult) error {
	if jsonOutput {
		if err := printJSON(os.Stdout, res); err != nil {
			return err
		}
	} else if res.Success {
		fmt.Println(formatResult(res))
	}
	if !res.Success {
		return errors.New(res.Message)
	}
	return nil
}
