package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jwulff/roster/internal/app"
	"github.com/jwulff/roster/internal/config"
	"github.com/jwulff/roster/internal/listener"
	"github.com/jwulff/roster/internal/logging"
	"github.com/jwulff/roster/internal/poller"
	"github.com/jwulff/roster/internal/store"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var version = "0.1.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "roster",
	Short: "roster - browse and edit a list of people in the terminal",
	Long: `roster shows a persisted list of people in an interactive terminal UI.

Keys: h home, p people, a add a random person, d delete the selected person,
up/down select, q quit.

While the UI runs, every TCP connection to the listener address appends one
random person to the list.

Examples:
  roster                        # Start the UI over ./data/db.json
  roster init                   # Create an empty store
  roster --backend sqlite --db people.db
  roster poke                   # Append one person through the listener`,
	Version:       version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return runTUI(cmd.Context(), cfg)
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an empty store if none exists",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return runInit(cmd, cfg)
	},
}

var pokeCmd = &cobra.Command{
	Use:   "poke",
	Short: "Trigger one ingestion on a running listener",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return runPoke(cmd, cfg)
	},
}

// Flags shared by every command
var (
	flagConfig   string
	flagDB       string
	flagBackend  string
	flagAddr     string
	flagLogFile  string
	flagLogLevel string
)

// Flags for the UI
var (
	flagNoListen bool
	flagTick     time.Duration
	flagCreate   bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "Store path (default "+store.DefaultPath+")")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "Store backend (json/sqlite)")
	rootCmd.PersistentFlags().StringVar(&flagAddr, "addr", "", "Listener address (default "+listener.DefaultAddr+")")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug/info/warn/error)")

	rootCmd.Flags().BoolVar(&flagNoListen, "no-listen", false, "Do not start the ingestion listener")
	rootCmd.Flags().DurationVar(&flagTick, "tick", 0, "UI refresh interval (default 200ms)")
	rootCmd.Flags().BoolVar(&flagCreate, "create", false, "Create an empty store if none exists")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(pokeCmd)
}

// loadConfig builds the settings from defaults, the optional config file and
// any flags given on the command line, in that order.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if flagConfig != "" {
		var err error
		if cfg, err = config.Load(flagConfig); err != nil {
			return cfg, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.Store.Path = flagDB
	}
	if flags.Changed("backend") {
		cfg.Store.Backend = flagBackend
	}
	if flags.Changed("addr") {
		cfg.Listener.Addr = flagAddr
	}
	if flags.Changed("log-file") {
		cfg.Log.Path = flagLogFile
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = flagLogLevel
	}
	if flags.Changed("no-listen") {
		cfg.Listener.Enabled = !flagNoListen
	}
	if flags.Changed("tick") {
		cfg.UI.TickRate = flagTick
	}
	if flags.Changed("create") {
		cfg.Store.Create = flagCreate
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func openStore(cfg config.StoreConfig) (*store.Store, error) {
	medium, err := store.OpenMedium(cfg.Backend, cfg.Path)
	if err != nil {
		return nil, err
	}
	return store.New(medium), nil
}

// runInit creates an empty store
func runInit(cmd *cobra.Command, cfg config.Config) error {
	st, err := openStore(cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Init(); err != nil {
		return err
	}
	people, err := st.Load()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Store ready at %s (%d people)\n", cfg.Store.Path, len(people))
	return nil
}

// runPoke triggers one ingestion and prints the reply
func runPoke(cmd *cobra.Command, cfg config.Config) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
	defer cancel()

	status, err := listener.Poke(ctx, cfg.Listener.Addr)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), status)
	if !status.OK() {
		return fmt.Errorf("listener replied %d %s", status.Code, status.Text)
	}
	return nil
}

// runTUI runs the listener, the input poller and the UI loop until the user
// quits, the terminal goes away or the process is signalled.
func runTUI(parent context.Context, cfg config.Config) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	log, logCloser, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer logCloser.Close()
	log.Info().Str("version", version).Str("backend", cfg.Store.Backend).Str("path", cfg.Store.Path).Msg("starting")

	st, err := openStore(cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()
	if cfg.Store.Create {
		if err := st.Init(); err != nil {
			return err
		}
	}

	gen := store.NewRandomGenerator()

	var ln *listener.Listener
	if cfg.Listener.Enabled {
		ln = listener.New(cfg.Listener.Addr, cfg.Listener.ReadTimeout, st, gen, log)
		if err := ln.Listen(); err != nil {
			return err
		}
		defer ln.Close()
	}

	keys, err := poller.OpenTerminal(os.Stdin)
	if err != nil {
		return err
	}
	defer keys.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := poller.NewQueue()
	g, gctx := errgroup.WithContext(ctx)
	if ln != nil {
		g.Go(func() error {
			if err := ln.Serve(gctx); err != nil {
				log.Error().Err(err).Msg("listener stopped")
			}
			return nil
		})
	}
	g.Go(func() error {
		// A failure reaches the UI as a Closed event.
		if err := poller.New(keys, events, cfg.UI.TickRate).Run(gctx); err != nil {
			log.Error().Err(err).Msg("input poller stopped")
		}
		return nil
	})

	model := app.New(ctx, st, gen, events, log)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithInput(nil), tea.WithContext(ctx))
	final, runErr := p.Run()
	signalled := ctx.Err() != nil

	cancel()
	keys.Close()
	g.Wait()

	if runErr != nil && !(signalled && errors.Is(runErr, tea.ErrProgramKilled)) {
		return fmt.Errorf("run ui: %w", runErr)
	}
	if m, ok := final.(app.Model); ok && m.Err() != nil {
		return m.Err()
	}
	log.Info().Msg("stopped")
	return nil
}
