package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/pseudomuto/adapterkit/pkg/catalog"
	"github.com/pseudomuto/adapterkit/pkg/config"
	"github.com/urfave/cli/v3"
)

// objects returns a CLI command that lists the tables, views and materialized
// views of the configured schema.
//
// Optional flags:
//   - --name, -n: Restrict the listing to the given object names (repeatable)
//   - --parallel: Query the catalog relations concurrently
//
// Example usage:
//
//	adapterkit objects
//	adapterkit --schema dev.analytics objects --name orders --name daily_totals
func objects(cfg *config.Config, connect Connector) *cli.Command {
	return &cli.Command{
		Name:  "objects",
		Usage: "List the data objects of a schema",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "name",
				Aliases: []string{"n"},
				Usage:   "only list objects with these names",
			},
			&cli.BoolFlag{
				Name:  "parallel",
				Usage: "query the catalog relations concurrently",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			schemaName, err := cfg.SchemaName()
			if err != nil {
				return err
			}

			if cmd.Bool("parallel") {
				cfg.ParallelDiscovery = true
			}

			adapter, err := connect(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = adapter.Close() }()

			objs, err := adapter.ListObjects(ctx, schemaName, catalog.NewObjectNameSet(cmd.StringSlice("name")...))
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.Root().Writer, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "KIND\tNAME")
			for _, obj := range objs {
				fmt.Fprintf(w, "%s\t%s\n", obj.Kind, obj.QualifiedName())
			}
			return w.Flush()
		},
	}
}
