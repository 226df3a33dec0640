package main

import (
	"context"
	"os"

	"github.com/pseudomuto/adapterkit/pkg/cmd"
	"github.com/pseudomuto/adapterkit/pkg/config"
	"go.uber.org/fx"
)

// NB: These are set by GoReleaser during a build.
var (
	version string
	commit  string
	date    string
)

func main() {
	fx.New(
		fx.NopLogger,
		fx.Supply(
			os.Args,
			fx.Annotate(context.Background(), fx.As(new(context.Context))),
			&cmd.Version{Version: version, Commit: commit, Timestamp: date},
		),
		config.Module,
		cmd.Module,
	).Run()
}
