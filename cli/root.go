// Package cli builds the frontdesk command tree
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"frontdesk-go/config"
	"frontdesk-go/db"
	"frontdesk-go/frontdesk"
	"frontdesk-go/logging"
	"frontdesk-go/menu"
	"frontdesk-go/notify"
)

type rootOptions struct {
	envFile  string
	debug    bool
	noSeed   bool
	seedFile string
}

// app is the wired front desk shared by every command
type app struct {
	cfg     config.Config
	log     zerolog.Logger
	desk    *frontdesk.Desk
	cleanup func()
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	if err := NewRootCmd(os.Stdin, os.Stdout).ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// NewRootCmd builds the command tree reading menu input from in and writing
// menu output to out
func NewRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "frontdesk",
		Short:        "Music school front desk",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			a, err := bootstrap(ctx, opts)
			if err != nil {
				return err
			}
			defer a.cleanup()

			fmt.Fprintln(out, "=== Music School Management System ===")
			return menu.Run(ctx, a.desk, in, out)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "path of the optional .env file")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")
	cmd.PersistentFlags().BoolVar(&opts.noSeed, "no-seed", false, "start with an empty roster")
	cmd.PersistentFlags().StringVar(&opts.seedFile, "seed-file", "", "YAML file of teachers and students to load on start")

	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newExportCmd(opts))
	return cmd
}

// bootstrap loads config, sets up logging and builds a seeded Desk
func bootstrap(ctx context.Context, opts *rootOptions) (*app, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(opts.envFile)
	if err != nil {
		return nil, err
	}
	if opts.debug {
		cfg.LogLevel = "debug"
	}
	if opts.noSeed {
		cfg.Seed = false
	}
	if opts.seedFile != "" {
		cfg.SeedFile = opts.seedFile
	}

	logger, err := logging.Setup(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, log: logger, cleanup: func() {}}

	var notifier frontdesk.Notifier
	if cfg.RedisAddr != "" {
		pub, err := notify.NewRedisPublisher(ctx, notify.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Channel:  cfg.RedisChannel,
		}, logger)
		if err != nil {
			return nil, err
		}
		notifier = pub
		a.cleanup = func() {
			if err := pub.Close(); err != nil {
				logger.Warn().Err(err).Msg("closing Redis publisher")
			}
		}
	}

	a.desk = frontdesk.New(db.NewRosterStore(logger), notifier, logger)

	if cfg.Seed {
		a.desk.GenerateSampleData(ctx)
	}
	if cfg.SeedFile != "" {
		if err := a.desk.ApplySeedFile(ctx, cfg.SeedFile); err != nil {
			a.cleanup()
			return nil, err
		}
	}
	return a, nil
}
