package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rxtech-lab/argo-signal-engine/internal/config"
	"github.com/rxtech-lab/argo-signal-engine/internal/version"
	"github.com/urfave/cli/v3"
)

// loadEnvFile loads environment variables from a file when it exists.
func loadEnvFile(envFile string) error {
	if _, err := os.Stat(envFile); err == nil {
		return godotenv.Load(envFile)
	}

	return fmt.Errorf("env file %s not found", envFile)
}

func schemaAction(_ context.Context, cmd *cli.Command) error {
	schema, err := config.Schema()
	if err != nil {
		return err
	}

	output := cmd.String("output")
	if output == "" {
		fmt.Fprintln(cmd.Root().Writer, schema)

		return nil
	}

	if err := os.WriteFile(output, []byte(schema), 0644); err != nil {
		return fmt.Errorf("failed to write schema: %w", err)
	}

	fmt.Fprintln(cmd.Root().Writer, SuccessStyle.Render("Schema written to "+output))

	return nil
}

func validateAction(_ context.Context, cmd *cli.Command) error {
	path := cmd.String("config")

	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintln(cmd.Root().ErrWriter, ErrorStyle.Render("Invalid config "+path))

		return err
	}

	w := cmd.Root().Writer
	fmt.Fprintln(w, SuccessStyle.Render("Config "+path+" is valid"))
	fmt.Fprintln(w, HelpStyle.Render(cfg.String()))

	return nil
}

func newApp() *cli.Command {
	configFlag := &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to the engine config YAML",
		Sources: cli.EnvVars("ENGINE_CONFIG"),
	}

	return &cli.Command{
		Name:    "engine",
		Usage:   "Risk gated signal engine",
		Version: version.GetVersion(),
		Commands: []*cli.Command{
			{
				Name:  "schema",
				Usage: "Print the JSON schema of the config file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Write the schema to this file instead of stdout",
					},
				},
				Action: schemaAction,
			},
			{
				Name:  "validate",
				Usage: "Validate a config file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "config",
						Aliases:  []string{"c"},
						Usage:    "Path to the engine config YAML",
						Sources:  cli.EnvVars("ENGINE_CONFIG"),
						Required: true,
					},
				},
				Action: validateAction,
			},
			{
				Name:  "replay",
				Usage: "Replay a market scenario through the engine with a paper broker",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "scenario",
						Aliases:  []string{"s"},
						Usage:    "Path to the scenario YAML",
						Required: true,
					},
					configFlag,
					&cli.StringFlag{
						Name:  "parquet-dir",
						Usage: "Export recorded signals and proposals as parquet into this directory",
					},
					&cli.StringFlag{
						Name:  "metrics-addr",
						Usage: "Serve Prometheus metrics on this address while replaying, e.g. :9090",
					},
					&cli.StringFlag{
						Name:    "webhook-url",
						Usage:   "Post CRITICAL risk alerts to this webhook",
						Sources: cli.EnvVars("ALERT_WEBHOOK_URL"),
					},
					&cli.StringFlag{
						Name:    "log-level",
						Usage:   "Log level (debug, info, warn, error)",
						Value:   "warn",
						Sources: cli.EnvVars("LOG_LEVEL"),
					},
					&cli.BoolFlag{
						Name:  "scenario-universe",
						Usage: "Scan the scenario's symbols instead of the configured universe",
						Value: true,
					},
				},
				Action: replayAction,
			},
		},
	}
}

func main() {
	_ = loadEnvFile(".env")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}
