package cmd

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/pseudomuto/adapterkit/pkg/catalog"
	"github.com/pseudomuto/adapterkit/pkg/config"
	"github.com/pseudomuto/adapterkit/pkg/schema"
	"github.com/urfave/cli/v3"
)

// columns returns a CLI command that compares the live columns of a table with
// a desired column list and prints one line per change.
//
// Required flags:
//   - --table, -t: The table to inspect (name or schema.name)
//   - --desired, -d: The desired column definitions
//
// Example usage:
//
//	adapterkit columns --table users --desired "id BIGINT, name TEXT"
//
// The last line reports whether the changes can be applied with ALTERs or the
// table must be rebuilt.
func columns(cfg *config.Config, connect Connector) *cli.Command {
	return &cli.Command{
		Name:  "columns",
		Usage: "Diff the columns of a table against a desired definition",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "table",
				Aliases:  []string{"t"},
				Usage:    "the table to inspect (name or schema.name)",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "desired",
				Aliases:  []string{"d"},
				Usage:    `the desired columns, e.g. "id BIGINT, name TEXT"`,
				Required: true,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			table, err := catalog.ParseTableName(cmd.String("table"))
			if err != nil {
				return err
			}

			if table.Schema == "" {
				schemaName, err := cfg.SchemaName()
				if err != nil {
					return err
				}
				table.Schema = schemaName.Schema
			}

			desired, err := schema.ColumnsFromDefinitions(cmd.String("desired"))
			if err != nil {
				return errors.Wrap(err, "failed to parse desired columns")
			}

			adapter, err := connect(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = adapter.Close() }()

			diff, err := adapter.DiffTable(ctx, table, desired)
			if err != nil {
				return err
			}

			w := cmd.Root().Writer
			for _, c := range diff.Columns {
				fmt.Fprintf(w, "%-8s %s\n", c.Type, c.Description)
			}

			switch {
			case len(diff.Columns) == 0:
				fmt.Fprintf(w, "%s is up to date\n", table)
			case diff.RequiresRebuild():
				fmt.Fprintf(w, "%s must be rebuilt\n", table)
			default:
				fmt.Fprintf(w, "%s can be altered in place\n", table)
			}
			return nil
		},
	}
}
