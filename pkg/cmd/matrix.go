package cmd

import (
	"context"

	"github.com/pseudomuto/adapterkit/pkg/config"
	"github.com/pseudomuto/adapterkit/pkg/dialect"
	"github.com/urfave/cli/v3"
)

// matrix returns a CLI command that prints the type-compatibility matrix of the
// configured dialect, including any types and aliases added in adapterkit.yaml.
func matrix(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "matrix",
		Usage: "Print the type-compatibility matrix",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			m, err := cfg.Matrix()
			if err != nil {
				return err
			}

			return dialect.Describe(cmd.Root().Writer, m)
		},
	}
}
