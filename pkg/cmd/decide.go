package cmd

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/pseudomuto/adapterkit/pkg/config"
	"github.com/pseudomuto/adapterkit/pkg/schema"
	"github.com/urfave/cli/v3"
)

// decide returns a CLI command that classifies a single column type change
// using the configured dialect. No connection is needed.
//
// Example usage:
//
//	adapterkit decide "VARCHAR(10)" TEXT            # SAFE_ALTER
//	adapterkit decide TEXT "VARCHAR(10)"            # REQUIRES_REBUILD
//	adapterkit --dialect clickhouse decide Date DateTime
func decide(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "decide",
		Usage:     "Decide how a column type change must be applied",
		ArgsUsage: "CURRENT DESIRED",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 2 {
				return errors.New("decide requires exactly two arguments: CURRENT DESIRED")
			}

			m, err := cfg.Matrix()
			if err != nil {
				return err
			}

			decision, err := schema.NewDiffer(m).DecideString(cmd.Args().Get(0), cmd.Args().Get(1))
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.Root().Writer, decision)
			return nil
		},
	}
}
