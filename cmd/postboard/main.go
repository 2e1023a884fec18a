package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/studiowebux/postboard/internal/cli"
	"github.com/studiowebux/postboard/internal/config"
	"github.com/studiowebux/postboard/internal/history"
	"github.com/studiowebux/postboard/internal/keybinds"
	"github.com/studiowebux/postboard/internal/logging"
	"github.com/studiowebux/postboard/internal/posts"
	"github.com/studiowebux/postboard/internal/tui"
	"github.com/studiowebux/postboard/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "postboard",
	Short: "postboard - browse and edit a remote posts collection",
	Long: `postboard reads a posts collection from a REST API and lets you search it by id,
view a post, add, edit and delete posts. Changes stay in the session; nothing is
written back to the server.

Examples:
  postboard                                   # Start interactive TUI
  postboard list --id 3                       # Print post 3 from the collection
  postboard get 1 2 3 -o yaml                 # Fetch several posts concurrently
  postboard list --query "[].title" -o json   # Project the output with JMESPath
  postboard fixture --addr :8080              # Serve a local posts API
  postboard --base-url http://localhost:8080  # Use the local API`,
	Version:       version.Version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

// Global flags
var (
	flagBaseURL   string
	flagConfig    string
	flagTimeout   time.Duration
	flagNoHistory bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "Posts API base URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Settings file (default ~/.postboard/config.jsonc)")
	rootCmd.PersistentFlags().DurationVar(&flagTimeout, "timeout", 0, "Per-request timeout (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&flagNoHistory, "no-history", false, "Do not record remote reads in the fetch log")

	rootCmd.AddCommand(listCmd, getCmd, historyCmd, fixtureCmd, keybindsCmd, versionCmd)
}

// loadSettings initializes the config directory and merges file, env and flags
func loadSettings() (*config.Settings, error) {
	if err := config.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}

	path := flagConfig
	if path == "" {
		path = config.GetSettingsFilePath()
	}

	settings, err := config.LoadSettings(path)
	if err != nil {
		return nil, err
	}
	settings.ApplyEnv()

	if flagBaseURL != "" {
		settings.BaseURL = flagBaseURL
	}
	if flagTimeout > 0 {
		settings.TimeoutSeconds = int(flagTimeout.Round(time.Second) / time.Second)
		if settings.TimeoutSeconds == 0 {
			settings.TimeoutSeconds = 1
		}
	}
	if flagNoHistory {
		disabled := false
		settings.HistoryEnabled = &disabled
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// openHistory opens the fetch log when enabled; failures only disable it
func openHistory(settings *config.Settings) *history.Manager {
	if !settings.IsHistoryEnabled() {
		return nil
	}
	mgr, err := history.NewManager(config.DatabasePath)
	if err != nil {
		log.Warn().Err(err).Str("path", config.DatabasePath).Msg("Fetch log disabled")
		return nil
	}
	return mgr
}

// newClient builds the posts client, recording reads in mgr when set
func newClient(settings *config.Settings, mgr *history.Manager) *posts.Client {
	var recorder posts.Recorder
	if mgr != nil {
		recorder = mgr
	}
	return cli.NewClient(settings.BaseURL, settings.Collection, settings.Timeout(), settings.TLS, recorder)
}

// loadKeybinds reads user overrides and logs what the validator finds
func loadKeybinds() *keybinds.Registry {
	registry, err := keybinds.LoadOrDefault(config.KeybindsFile)
	if err != nil {
		log.Warn().Err(err).Str("path", config.KeybindsFile).Msg("Using default keybindings")
		return keybinds.NewDefaultRegistry()
	}

	result := keybinds.NewValidator().ValidateRegistry(registry)
	if result.HasErrors() || result.HasWarnings() {
		log.Warn().Str("issues", result.String()).Msg("Keybinding problems")
	}
	return registry
}

// runTUI starts the interactive TUI
func runTUI() error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	closer, err := logging.Setup(config.LogFile, settings.LogLevel)
	if err != nil {
		return err
	}
	defer closer.Close()

	mgr := openHistory(settings)
	log.Info().
		Str("baseURL", settings.BaseURL).
		Str("collection", settings.Collection).
		Bool("fetchLog", mgr != nil).
		Msg("Starting TUI")

	return tui.Run(tui.Options{
		Source:         newClient(settings, mgr),
		History:        mgr,
		Keybinds:       loadKeybinds(),
		Version:        version.Version,
		RequestTimeout: settings.Timeout(),
		MessageTimeout: settings.MessageDuration(),
		CheckUpdates:   settings.CheckUpdates,
	})
}

// setupCLI prepares settings and console logging for a non-interactive command
func setupCLI() (*config.Settings, error) {
	settings, err := loadSettings()
	if err != nil {
		return nil, err
	}
	logging.SetupConsole(os.Stderr, settings.LogLevel)
	return settings, nil
}

// closeHistory closes mgr if it was opened
func closeHistory(mgr *history.Manager) {
	if mgr == nil {
		return
	}
	if err := mgr.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close history database")
	}
}

// stdinIsTerminal reports whether stdin is interactive
func stdinIsTerminal(in io.Reader) bool {
	f, ok := in.(*os.File)
	if !ok {
		return false
	}
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return stat.Mode()&os.ModeCharDevice != 0
}
