package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/story-labs/launcher/internal/branding"
	"github.com/story-labs/launcher/internal/config"
	"github.com/story-labs/launcher/internal/manager"
	"github.com/story-labs/launcher/internal/updater"
	"github.com/story-labs/launcher/internal/userdata"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	jsonOutput bool
	verbose    bool

	layout userdata.Layout
	logger = slog.New(slog.DiscardHandler)
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print machine-readable JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` installs, updates and launches Story desktop tools.

Bundles are unpacked into ~/.story-tools/apps and the installed versions are
recorded in ~/.story-tools/config.json. Set STORY_TOOLS_HOME to use another
directory.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := userdata.DefaultLayout()
		if err != nil {
			return err
		}
		layout = l

		if err := config.Load(layout.SettingsPath()); err != nil {
			return err
		}
		logger = newLogger(os.Stderr, config.Current().LogLevel, verbose)
		return nil
	},
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, styleError.Render("Error:"), err)
	}
	return err
}

func newLogger(w io.Writer, level string, verbose bool) *slog.Logger {
	lvl := parseLevel(level)
	if verbose {
		lvl = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// parseLevel maps a settings value such as "debug" to a slog level,
// defaulting to warn.
func parseLevel(s string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelWarn
	}
	return lvl
}

// newCommands builds the manager from the effective settings.
func newCommands(showProgress bool) *manager.Commands {
	s := config.Current()
	client := updater.New(
		updater.WithBaseURL(s.RegistryURL),
		updater.WithUserAgent(s.UserAgent),
		updater.WithToken(s.RegistryToken),
		updater.WithLogger(logger),
	)

	opts := []manager.Option{
		manager.WithReleaseSource(client),
		manager.WithLogger(logger),
		manager.WithChecksums(s.VerifyChecksums),
	}
	if showProgress && !jsonOutput {
		opts = append(opts, manager.WithProgress(progressPrinter(os.Stderr)))
	}
	return manager.NewCommands(manager.New(layout, opts...))
}
