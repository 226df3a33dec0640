package consts

import "os"

const (
	// ConfigFile is the name of the project configuration file looked up in
	// the working directory.
	ConfigFile = "adapterkit.yaml"

	// DefaultDialect is used when the configuration does not name one.
	DefaultDialect = "risingwave"

	// DefaultSchema is the schema inspected when none is configured.
	DefaultSchema = "public"

	// DefaultClickHouseDatabase replaces DefaultSchema for ClickHouse, where
	// databases play the role of schemas.
	DefaultClickHouseDatabase = "default"

	// DefaultURL points at a local single-node RisingWave.
	DefaultURL = "postgres://root@localhost:4566/dev?sslmode=disable"

	// ModeDir is the standard file mode for creating directories
	ModeDir = os.FileMode(0o755)

	// ModeFile is the standard file mode for creating files
	ModeFile = os.FileMode(0o644)
)
