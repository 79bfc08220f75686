package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	app "github.com/dcf21/star-charter/internal/app"
	"github.com/dcf21/star-charter/internal/config"
	"github.com/dcf21/star-charter/pkg/logger"
)

func main() {
	_ = godotenv.Load() // ignore missing file

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	err := newRootCommand().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Stderr.WriteString("merge-star-catalogues: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge-star-catalogues",
		Short: "Merge the source star catalogues into one deduplicated star list",
		Long: `Reads the Bright Star, Hipparcos, Tycho and Gaia catalogues in a fixed
order, resolves which entries describe the same star, and writes the merged
list as a fixed-width text file and a newline-delimited JSON file.

Settings come from a YAML file named by STARCAT_CONFIG and from STARCAT_*
environment variables (a .env file in the working directory is loaded first).`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := run(cmd.Context(), cmd.Flags())
			return err
		},
	}
	config.BindFlags(cmd.Flags())
	return cmd
}

func run(ctx context.Context, flags *pflag.FlagSet) (*app.Report, error) {
	// Initialize logging with defaults until the configuration is known.
	if err := logger.Init(); err != nil {
		return nil, fmt.Errorf("initialize logging: %w", err)
	}

	// Load configuration (defaults -> optional file -> env -> flags)
	cfg, err := config.Load(ctx, flags)
	if err != nil {
		return nil, err
	}
	if err := logger.Init(logger.WithLevel(cfg.LogLevel), logger.WithFormat(cfg.LogFormat)); err != nil {
		return nil, fmt.Errorf("initialize logging: %w", err)
	}
	l := logger.Get()

	rep, err := app.New(cfg, app.WithLogger(l.Named("merge"))).Run(ctx)
	if err != nil {
		l.Error(ctx, "merge failed", logger.Error(err))
		return nil, err
	}
	l.Info(ctx, "outputs written",
		logger.String("text", rep.TextPath),
		logger.String("json", rep.JSONPath))
	return rep, nil
}
