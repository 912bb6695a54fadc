package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/story-labs/launcher/internal/config"
)

func init() {
	configCmd.AddCommand(configGetCmd, configSetCmd, configListCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Read and write launcher settings",
	Long: `Manage settings stored in ~/.story-tools/settings.yaml.

  story-launcher config list
  story-launcher config get registry.url
  story-launcher config set verify_checksums false`,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print a setting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !config.IsKey(args[0]) {
			return fmt.Errorf("unknown setting %q", args[0])
		}
		fmt.Println(config.Get(args[0]))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Set(args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("%s = %s\n", args[0], args[1])
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print every setting",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		values := settingsMap()
		if jsonOutput {
			return printJSON(os.Stdout, values)
		}
		for _, k := range config.Keys() {
			fmt.Printf("%s = %s\n", styleName.Render(k), values[k])
		}
		return nil
	},
}

// settingsMap returns every setting with the token masked.
func settingsMap() map[string]string {
	values := make(map[string]string)
	for _, k := range config.Keys() {
		v := config.Get(k)
		if k == config.KeyRegistryToken && v != "" {
			v = "********"
		}
		values[k] = v
	}
	return values
}
