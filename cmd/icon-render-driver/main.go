package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"icon-render-driver/pkg/config"
	"icon-render-driver/pkg/driver"
	"icon-render-driver/pkg/logger"
	"icon-render-driver/pkg/renderhost"
)

// Version information (set by GoReleaser during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	app := &cli.Command{
		Name:    "icon-render-driver",
		Usage:   "Batch-render application launcher icons through a headless Blender host",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML configuration file",
			},
			&cli.StringFlag{
				Name:     "size",
				Usage:    "Icon edge length in pixels (positive integer)",
				Sources:  cli.EnvVars("XY"),
				Required: true,
			},
			&cli.StringFlag{
				Name:     "app-id",
				Usage:    "Application identifier, used verbatim in the output path",
				Sources:  cli.EnvVars("APP_ID"),
				Required: true,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			// The two contract inputs must be valid before any host
			// construction or render attempt
			size, err := config.ParseIconSize(cmd.String("size"))
			if err != nil {
				return err
			}
			appID := cmd.String("app-id")
			if err := config.ValidateAppID(appID); err != nil {
				return err
			}

			var cfg *config.Config
			if configPath := cmd.String("config"); configPath != "" {
				cfg, err = config.LoadFromFile(configPath)
				if err != nil {
					return fmt.Errorf("failed to load config: %w", err)
				}
			} else {
				cfg = config.Default()
			}

			log := logger.Setup(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Directory)

			log.Info("Starting Icon Render Driver",
				"version", version,
				"commit", commit,
				"built", date)
			log.Info("Render configuration",
				"size", fmt.Sprintf("%dx%d", size, size),
				"app_id", appID,
				"output_root", cfg.Icons.OutputRoot,
				"mock_mode", cfg.Debug.UseMock)

			// Determine render host based on config
			var host renderhost.RenderHost
			if cfg.Debug.UseMock {
				log.Info("Using Mock render host (development mode)")
				host = renderhost.NewMockRenderHost(log)
			} else {
				log.Info("Using Blender render host", "binary", cfg.Blender.Binary)
				host = renderhost.NewBlenderHost(*cfg, log)
			}

			d := driver.New(*cfg, host, log)
			if err := d.Run(ctx, size, appID); err != nil {
				return fmt.Errorf("render failed: %w", err)
			}

			log.Info("Done")
			return nil
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
