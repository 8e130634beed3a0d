package main

import (
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/logbook/internal/config"
	"github.com/vmunix/logbook/internal/events"
	"github.com/vmunix/logbook/internal/store"
	"github.com/vmunix/logbook/internal/tracker"
	"github.com/vmunix/logbook/internal/workout"
)

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	configPath string
	jsonOutput bool
	userID     string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "logbook",
		Short: "Personal log of workouts and watched titles",
		Long: `logbook - personal log of workouts and watched titles

Commits workouts with per-set statistics and personal-best tracking, and
records catalog titles you have watched against your tracked media.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default: discovered, see 'logbook init')")
	rootCmd.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().StringVar(&opts.userID, "user", "", "User ID (default: user.id from config)")

	rootCmd.AddCommand(newInitCmd(opts))
	rootCmd.AddCommand(newParseCmd(opts))
	rootCmd.AddCommand(newMediaCmd(opts))
	rootCmd.AddCommand(newSeenCmd(opts))
	rootCmd.AddCommand(newExerciseCmd(opts))
	rootCmd.AddCommand(newWorkoutCmd(opts))
	rootCmd.AddCommand(newEventsCmd(opts))

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("logbook {{.Version}}\n")
	return rootCmd
}

// app is the wired set of services a command runs against.
type app struct {
	cfg      *config.Config
	db       *sql.DB
	store    *store.Store
	bus      *events.Bus
	eventLog *events.EventLog
	workouts *workout.Service
	tracker  *tracker.Tracker
	logger   *slog.Logger
	userID   string
}

// loadConfig resolves the config and builds the logger it describes.
func loadConfig(cmd *cobra.Command, opts *rootOptions) (*config.Config, *slog.Logger, error) {
	cfg, _, err := config.LoadOrDefault(opts.configPath)
	if err != nil {
		return nil, nil, err
	}
	return cfg, newLogger(cmd.ErrOrStderr(), cfg.Log), nil
}

// openApp loads config, opens the database and wires the services.
// Callers must Close the returned app.
func openApp(cmd *cobra.Command, opts *rootOptions) (*app, error) {
	cfg, logger, err := loadConfig(cmd, opts)
	if err != nil {
		return nil, err
	}

	db, err := store.Open(cfg.Database.Path)
	if err != nil {
		return nil, err
	}

	parser, err := cfg.TitleParser()
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("title parser: %w", err)
	}

	st := store.NewStore(db)
	eventLog := events.NewEventLog(db)
	bus := events.NewBus(eventLog, logger)

	userID := opts.userID
	if userID == "" {
		userID = cfg.User.ID
	}

	return &app{
		cfg:      cfg,
		db:       db,
		store:    st,
		bus:      bus,
		eventLog: eventLog,
		workouts: workout.NewService(st, bus, cfg.Preferences(), logger),
		tracker: tracker.New(st, bus, parser, tracker.Options{
			Threshold: cfg.Threshold(),
			Workers:   cfg.Titles.Workers,
		}, logger),
		logger: logger,
		userID: userID,
	}, nil
}

// Close shuts down the bus and the database.
func (a *app) Close() error {
	_ = a.bus.Close()
	return a.db.Close()
}

func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{Level: parseLogLevel(cfg.Level)}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(w, handlerOpts))
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
