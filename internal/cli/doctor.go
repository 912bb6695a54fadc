package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/story-labs/launcher/internal/config"
	"github.com/story-labs/launcher/internal/platform"
	"github.com/story-labs/launcher/internal/userdata"
)

var doctorFix bool

func init() {
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Create missing directories")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Health check for the launcher directory",
	Long: `Check the launcher directory, the installed-version record and whether
each recorded tool still has its bundle on disk.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info, err := platform.Detect(cmd.Context())
		if err != nil {
			fmt.Printf("[WARN] Could not detect host: %v\n", err)
		}
		fmt.Printf("Host:     %s\n", info)
		fmt.Printf("Root:     %s\n", layout.Root)
		fmt.Printf("Registry: %s\n\n", config.Current().RegistryURL)

		problems := userdata.CheckLayout(os.Stdout, layout, doctorFix)
		if problems > 0 {
			return fmt.Errorf("%d problem(s) found", problems)
		}
		fmt.Println("\nAll checks passed.")
		return nil
	},
}
