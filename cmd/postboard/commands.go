package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/studiowebux/postboard/internal/cli"
	"github.com/studiowebux/postboard/internal/config"
	"github.com/studiowebux/postboard/internal/fixture"
	"github.com/studiowebux/postboard/internal/history"
	"github.com/studiowebux/postboard/internal/keybinds"
	"github.com/studiowebux/postboard/internal/version"
)

// Output flags shared by list, get and history
var (
	flagOutput string
	flagFilter string
	flagQuery  string
	flagColor  bool
)

// list flags
var flagListID string

// history flags
var (
	flagHistoryLimit int
	flagHistoryClear bool
)

// fixture flags
var (
	flagFixtureAddr  string
	flagFixtureData  string
	flagFixtureCount int
	flagFixtureDelay time.Duration
)

// version flags
var flagVersionCheck bool

// keybinds flags
var flagKeybindsExport bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the posts collection",
	Long: `Print the posts collection. --id narrows it with the same rule as the TUI search:
an exact id match, and nothing at all for a value that is not an integer.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := setupCLI()
		if err != nil {
			return err
		}
		mgr := openHistory(settings)
		defer closeHistory(mgr)

		return cli.List(cmd.Context(), newClient(settings, mgr), cli.ListOptions{
			Options: outputOptions(cmd),
			ID:      flagListID,
		})
	},
}

var getCmd = &cobra.Command{
	Use:   "get [id...]",
	Short: "Fetch posts by id",
	Long: `Fetch one or more posts from the server, concurrently. Without ids and with an
interactive terminal, pick a post from the collection.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args)
		if err != nil {
			return err
		}

		settings, err := setupCLI()
		if err != nil {
			return err
		}
		mgr := openHistory(settings)
		defer closeHistory(mgr)

		client := newClient(settings, mgr)

		if len(ids) == 0 {
			if !stdinIsTerminal(os.Stdin) {
				return fmt.Errorf("no post id given")
			}
			all, err := client.List(cmd.Context())
			if err != nil {
				return err
			}
			id, err := cli.SelectPost(all, os.Stdin, os.Stderr)
			if err != nil {
				return err
			}
			ids = []int{id}
		}

		return cli.Get(cmd.Context(), client, ids, outputOptions(cmd))
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print or clear the fetch log",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := setupCLI(); err != nil {
			return err
		}

		mgr, err := history.NewManager(config.DatabasePath)
		if err != nil {
			return err
		}
		defer closeHistory(mgr)

		return cli.History(mgr, cli.HistoryOptions{
			Options: outputOptions(cmd),
			Limit:   flagHistoryLimit,
			Clear:   flagHistoryClear,
		})
	},
}

var fixtureCmd = &cobra.Command{
	Use:   "fixture",
	Short: "Serve a local posts API",
	Long: `Serve GET /posts and GET /posts/:id from a data file (YAML or JSON list of posts)
or from generated posts. Point postboard at it with --base-url.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := setupCLI()
		if err != nil {
			return err
		}

		data := fixture.Generate(flagFixtureCount)
		if flagFixtureData != "" {
			if data, err = fixture.LoadFile(flagFixtureData); err != nil {
				return err
			}
		}

		server := fixture.NewServer(data,
			fixture.WithCollection(settings.Collection),
			fixture.WithDelay(flagFixtureDelay))
		if err := server.Start(flagFixtureAddr); err != nil {
			return err
		}
		log.Info().
			Str("addr", server.Addr()).
			Int("posts", len(data)).
			Str("collection", settings.Collection).
			Msg("Fixture server listening")

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Stop(shutdownCtx)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "postboard %s\n", version.Version)
		if !flagVersionCheck {
			return nil
		}

		update, err := version.CheckForUpdate(cmd.Context(), version.ReleasesURL, version.Version)
		if err != nil {
			return err
		}
		if update.Available {
			fmt.Fprintf(out, "Update available: %s\n%s\n", update.Latest, update.URL)
		} else {
			fmt.Fprintln(out, "Up to date")
		}
		return nil
	},
}

var keybindsCmd = &cobra.Command{
	Use:   "keybinds",
	Short: "Show the active keybindings and check keybinds.json",
	Long: `Print the keybindings of every context after applying ~/.postboard/keybinds.json,
followed by conflicts and shadowed keys. --export writes the defaults to keybinds.json
when the file does not exist yet.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := setupCLI(); err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		if flagKeybindsExport {
			if _, err := os.Stat(config.KeybindsFile); err == nil {
				return fmt.Errorf("%s already exists", config.KeybindsFile)
			}
			if err := keybinds.SaveConfig(keybinds.ExportDefaults(), config.KeybindsFile); err != nil {
				return err
			}
			fmt.Fprintf(out, "Wrote %s\n", config.KeybindsFile)
			return nil
		}

		registry, err := keybinds.LoadOrDefault(config.KeybindsFile)
		if err != nil {
			return err
		}

		for _, ctx := range keybindContexts {
			fmt.Fprintf(out, "[%s]\n", ctx)
			for _, b := range registry.ListBindings(ctx) {
				if b.Context != ctx {
					continue
				}
				fmt.Fprintf(out, "  %-12s %s\n", b.Key, b.Action)
			}
		}

		fmt.Fprintln(out)
		fmt.Fprintln(out, keybinds.NewValidator().ValidateRegistry(registry).String())
		return nil
	},
}

var keybindContexts = []keybinds.Context{
	keybinds.ContextGlobal,
	keybinds.ContextNormal,
	keybinds.ContextSearch,
	keybinds.ContextForm,
	keybinds.ContextDetail,
	keybinds.ContextEdit,
	keybinds.ContextHistory,
	keybinds.ContextHelp,
	keybinds.ContextConfirm,
	keybinds.ContextTextInput,
}

func init() {
	for _, cmd := range []*cobra.Command{listCmd, getCmd, historyCmd} {
		cmd.Flags().StringVarP(&flagOutput, "output", "o", "text", "Output format (json/yaml/text)")
		cmd.Flags().StringVar(&flagFilter, "filter", "", "JMESPath filter applied before --query")
		cmd.Flags().StringVar(&flagQuery, "query", "", "JMESPath query to project the output")
		cmd.Flags().BoolVar(&flagColor, "color", false, "Highlight JSON output")
	}

	listCmd.Flags().StringVar(&flagListID, "id", "", "Only the post with this id")

	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Number of entries (0 for all)")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete every entry")

	fixtureCmd.Flags().StringVar(&flagFixtureAddr, "addr", ":8080", "Listen address")
	fixtureCmd.Flags().StringVar(&flagFixtureData, "data", "", "YAML or JSON file with the posts to serve")
	fixtureCmd.Flags().IntVar(&flagFixtureCount, "count", 100, "Number of generated posts when --data is not set")
	fixtureCmd.Flags().DurationVar(&flagFixtureDelay, "delay", 0, "Artificial latency per request")

	versionCmd.Flags().BoolVar(&flagVersionCheck, "check", false, "Check for a newer release")

	keybindsCmd.Flags().BoolVar(&flagKeybindsExport, "export", false, "Write the default bindings to keybinds.json")
}

// outputOptions collects the output flags of cmd
func outputOptions(cmd *cobra.Command) cli.Options {
	return cli.Options{
		OutputFormat: flagOutput,
		Filter:       flagFilter,
		Query:        flagQuery,
		Color:        flagColor,
		Out:          cmd.OutOrStdout(),
	}
}

// parseIDs converts positional arguments to post ids
func parseIDs(args []string) ([]int, error) {
	ids := make([]int, 0, len(args))
	for _, arg := range args {
		id, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid post id %q", arg)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
