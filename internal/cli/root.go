package cli

import (
	"os"
	"strings"
	"time"

	charmLog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/pace-rs/pace/internal/adapters/storage/sqlite"
	"github.com/pace-rs/pace/internal/app"
	"github.com/pace-rs/pace/internal/config"
	"github.com/pace-rs/pace/internal/domain"
	"github.com/pace-rs/pace/internal/platform"
)

// RootOptions holds global flags shared by all commands.
type RootOptions struct {
	ConfigPath string
	DBPath     string
	Verbose    bool
}

// NewRootCommand creates the pace root command.
func NewRootCommand(version string) *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "pace",
		Short:         "pace - mindful time tracking",
		Long:          "Track units of work over time: begin, hold, resume and end activities\nagainst a durable local history.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to config TOML")
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "", "path to sqlite database")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewBeginCommand(opts))
	cmd.AddCommand(NewHoldCommand(opts))
	cmd.AddCommand(NewResumeCommand(opts))
	cmd.AddCommand(NewEndCommand(opts))
	cmd.AddCommand(NewNowCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))

	return cmd
}

// environment bundles everything a command needs at run time.
type environment struct {
	cfg     config.Config
	repo    *sqlite.Repository
	service *app.Service
	logger  *charmLog.Logger
	zone    *time.Location
}

// setup resolves config, opens the store (running migrations) and wires the
// lifecycle service. The caller must Close the environment.
func (o *RootOptions) setup() (*environment, error) {
	logger := charmLog.NewWithOptions(os.Stderr, charmLog.Options{
		ReportTimestamp: false,
		Formatter:       charmLog.TextFormatter,
	})
	if o.Verbose {
		logger.SetLevel(charmLog.DebugLevel)
	} else {
		logger.SetLevel(charmLog.WarnLevel)
	}

	paths, err := platform.DefaultPaths()
	if err != nil {
		return nil, err
	}

	configPath := strings.TrimSpace(o.ConfigPath)
	if configPath == "" {
		if envPath := strings.TrimSpace(os.Getenv("PACE_CONFIG")); envPath != "" {
			configPath = envPath
		} else {
			configPath = paths.ConfigPath
		}
	}

	cfg, err := config.Load(configPath, config.Default(paths.DBPath))
	if err != nil {
		return nil, err
	}
	if dbPath := strings.TrimSpace(o.DBPath); dbPath != "" {
		cfg.Database.Path = dbPath
	}

	zone, err := domain.LoadTimeZone(cfg.Time.DefaultZone)
	if err != nil {
		return nil, err
	}

	repo, err := sqlite.Open(cfg.Database.Path, sqlite.Options{
		TagDeletePolicy: cfg.TagPolicy(),
	})
	if err != nil {
		return nil, err
	}

	return &environment{
		cfg:     cfg,
		repo:    repo,
		service: app.NewService(repo, nil, nil, logger),
		logger:  logger,
		zone:    zone,
	}, nil
}

// Close releases the environment's store.
func (e *environment) Close() error {
	return e.repo.Close()
}
