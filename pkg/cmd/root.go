package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pseudomuto/adapterkit/pkg/config"
	"github.com/pseudomuto/adapterkit/pkg/engine"
	"github.com/urfave/cli/v3"
	"go.uber.org/fx"
)

type (
	Params struct {
		fx.In

		Args       []string
		Commands   []*cli.Command `group:"commands"`
		Config     *config.Config
		Ctx        context.Context
		Lifecycle  fx.Lifecycle
		Shutdowner fx.Shutdowner
		Version    *Version
	}

	Version struct {
		Version   string
		Commit    string
		Timestamp string
	}

	// Connector opens an engine adapter for the given configuration. Commands
	// receive it through fx so that tests can substitute an in-memory client.
	Connector func(ctx context.Context, cfg *config.Config) (*engine.Adapter, error)
)

// Run creates and executes the adapterkit CLI application with the given
// version and command-line arguments.
//
// Global Flags:
//   - --config, -c: Configuration file (replaces the adapterkit.yaml found in
//     the working directory)
//   - --dialect: Overrides the configured dialect
//   - --url, -u: Overrides the configured connection string
//   - --schema, -s: Overrides the configured schema
//   - --verbose, -v: Enables debug logging
//
// Example usage:
//
//	adapterkit matrix --dialect clickhouse
//	adapterkit decide "VARCHAR(10)" TEXT
//	adapterkit --url postgres://root@localhost:4566/dev objects --name users
func Run(p Params) {
	cli.VersionPrinter = func(cmd *cli.Command) {
		fmt.Fprintln(cmd.Writer, "Version:", p.Version.Version)
		fmt.Fprintln(cmd.Writer, "Commit:", p.Version.Commit)
		fmt.Fprintln(cmd.Writer, "Date:", p.Version.Timestamp)
	}

	app := &cli.Command{
		Name:  "adapterkit",
		Usage: "Inspect streaming database catalogs and classify column type changes",
		Description: `adapterkit lists the tables, views and materialized views of a schema
and decides whether a column type change can be applied in place or requires
the object to be rebuilt.`,
		Version:  p.Version.Version,
		Flags:    globalFlags(),
		Before:   applyGlobalFlags(p.Config),
		Commands: p.Commands,
	}

	p.Lifecycle.Append(fx.StartHook(func() {
		if err := app.Run(p.Ctx, p.Args); err != nil {
			slog.Error("Error running command", "err", err)
			_ = p.Shutdowner.Shutdown(fx.ExitCode(1))
		}

		_ = p.Shutdowner.Shutdown(fx.ExitCode(0))
	}))
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "the adapterkit config file",
			Sources: cli.EnvVars("ADAPTERKIT_CONFIG"),
			Config:  cli.StringConfig{TrimSpace: true},
		},
		&cli.StringFlag{
			Name:    "dialect",
			Usage:   "the engine dialect (risingwave, postgres or clickhouse)",
			Sources: cli.EnvVars("ADAPTERKIT_DIALECT"),
		},
		&cli.StringFlag{
			Name:    "url",
			Aliases: []string{"u"},
			Usage:   "the engine connection string",
			Sources: cli.EnvVars("ADAPTERKIT_URL"),
		},
		&cli.StringFlag{
			Name:    "schema",
			Aliases: []string{"s"},
			Usage:   "the schema to inspect (schema or catalog.schema)",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "enable debug logging",
		},
	}
}

// applyGlobalFlags loads the --config file into cfg and then applies the
// individual overrides on top of it. Switching dialects also switches any
// schema or URL that was left at its default.
func applyGlobalFlags(cfg *config.Config) func(context.Context, *cli.Command) (context.Context, error) {
	return func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
		if cmd.Bool("verbose") {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}

		if path := cmd.String("config"); path != "" {
			loaded, err := config.LoadConfigFile(path)
			if err != nil {
				return ctx, err
			}
			*cfg = *loaded
		}

		if d := cmd.String("dialect"); d != "" {
			cfg.SetDialect(d)
		}
		if url := cmd.String("url"); url != "" {
			cfg.URL = url
		}
		if s := cmd.String("schema"); s != "" {
			cfg.Schema = s
		}

		_, err := cfg.ResolveDialect()
		return ctx, err
	}
}

// Connect is the default Connector. It resolves the configured dialect and
// opens a live adapter for it.
func Connect(ctx context.Context, cfg *config.Config) (*engine.Adapter, error) {
	d, err := cfg.ResolveDialect()
	if err != nil {
		return nil, err
	}

	return engine.Open(ctx, engine.Config{
		Dialect:           d,
		URL:               cfg.URL,
		ParallelDiscovery: cfg.ParallelDiscovery,
		AllowUnknownTypes: cfg.AllowUnknownTypes,
		TLS:               cfg.TLS,
		Logger:            slog.Default(),
	})
}
