package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"sweetcrumb/internal/app"
	"sweetcrumb/internal/config"
	"sweetcrumb/internal/lib/logger/handlers/slogpretty"
	"sweetcrumb/internal/lib/logger/sl"

	"github.com/urfave/cli/v3"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

// @title Sweetcrumb API
// @version 1.0
// @description Content API of the Sweetcrumb bakery site.
// @BasePath /
// @securityDefinitions.apikey AdminKey
// @in header
// @name X-Admin-Key
func main() {
	cmd := &cli.Command{
		Name:  "sweetcrumb",
		Usage: "bakery site backend",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "path to the YAML config",
				Sources: cli.EnvVars("CONFIG_PATH"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP API",
				Action: serve,
			},
			{
				Name:  "migrate",
				Usage: "Apply the database schema",
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg := config.MustLoad(c.String("config"))
					log := setupLogger(cfg.Env)

					if err := app.Migrate(ctx, cfg); err != nil {
						return err
					}

					log.Info("migration complete")
					return nil
				},
			},
		},
		DefaultCommand: "serve",
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("sweetcrumb failed", sl.Err(err))
		os.Exit(1)
	}
}

func serve(ctx context.Context, c *cli.Command) error {
	cfg := config.MustLoad(c.String("config"))

	log := setupLogger(cfg.Env)

	log.Info("starting sweetcrumb", slog.String("env", cfg.Env))

	application, err := app.New(ctx, log, cfg)
	if err != nil {
		return err
	}
	defer application.Close()

	go func() {
		application.HTTPServer.MustRun()
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)

	<-stop

	if err := application.HTTPServer.Stop(); err != nil {
		log.Error("failed to stop http server", sl.Err(err))
	}

	log.Info("application stopped")

	return nil
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	handler := opts.NewPrettyHandler(os.Stdout)

	return slog.New(handler)
}
