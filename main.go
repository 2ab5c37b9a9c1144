package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/rpupo63/localized-blog-backend/api"
	"github.com/rpupo63/localized-blog-backend/config"
	"github.com/rpupo63/localized-blog-backend/database"
	"github.com/rpupo63/localized-blog-backend/errs"
	"github.com/rpupo63/localized-blog-backend/locale"
	"github.com/rpupo63/localized-blog-backend/models"
)

const shutdownTimeout = 30 * time.Second

var errInterrupted = errors.New("interrupted")

func main() {
	// Load environment variables from .env file
	c, err := config.Load()
	if err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}
	setupLogging(c)

	log.Info().Msg("Initializing app...")
	if err := run(c); err != nil {
		log.Fatal().Err(err).Msg("exiting")
	}
}

func setupLogging(c map[string]string) {
	level, err := zerolog.ParseLevel(config.GetString(c, "LOG_LEVEL", "info"))
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if config.GetBool(c, "LOG_PRETTY", true) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

func run(c map[string]string) error {
	opts, err := database.OptionsFromConfig(c)
	if err != nil {
		return err
	}
	log.Info().Str("dbType", opts.Type).Int("replicas", len(opts.ReplicaDSNs)).Msg("Connecting to database...")

	db, err := database.Open(opts)
	if err != nil {
		return err
	}

	// If generating models, run generation and exit
	if config.GetBool(c, "GENERATE_MODELS", false) {
		log.Info().Msg("Generating models and query helpers...")
		return models.GenerateModels(db)
	}

	// If generating column mismatch report, run report and exit
	if config.GetBool(c, "GENERATE_COLUMN_REPORT", false) {
		log.Info().Msg("Generating column mismatch report...")
		report, err := models.BuildColumnMismatchReport(db)
		if err != nil {
			return err
		}
		report.Print(os.Stdout)
		return nil
	}

	resolver, err := locale.NewResolver(
		config.GetString(c, "DEFAULT_LOCALE", locale.DefaultLocale),
		config.GetStrings(c, "AVAILABLE_LOCALES"),
	)
	if err != nil {
		return errs.NewConfigError("DEFAULT_LOCALE", err)
	}

	currentDB := database.New(db, resolver)
	if err := currentDB.Migrate(); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}

	server, err := api.NewServer(currentDB, c, resolver)
	if err != nil {
		return fmt.Errorf("initializing server: %w", err)
	}

	g, ctx := errgroup.WithContext(context.Background())
	g.Go(func() error {
		errChannel := make(chan error, 1)
		go server.Start(errChannel)

		select {
		case err := <-errChannel:
			return err
		case <-ctx.Done():
			return server.ShutdownGracefully(shutdownTimeout)
		}
	})
	// Listen for interrupt signals to gracefully shutdown the server
	g.Go(func() error {
		return listenToInterrupt(ctx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errInterrupted) {
		return err
	}
	log.Info().Msg("Server stopped")
	return nil
}

// listenToInterrupt waits for SIGINT or SIGTERM and reports it as errInterrupted.
func listenToInterrupt(ctx context.Context) error {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(c)

	select {
	case sig := <-c:
		log.Info().Str("signal", sig.String()).Msg("Closing server")
		return fmt.Errorf("%w: %s", errInterrupted, sig)
	case <-ctx.Done():
		return nil
	}
}
