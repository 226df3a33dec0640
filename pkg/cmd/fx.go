package cmd

import "go.uber.org/fx"

var Module = fx.Module("cli",
	fx.Provide(
		func() Connector { return Connect },
		fx.Annotate(columns, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(decide, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(matrix, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(objects, fx.ResultTags(`group:"commands"`)),
	),
	fx.Invoke(Run),
)
