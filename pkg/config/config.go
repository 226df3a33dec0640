package config

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/adapterkit/pkg/catalog"
	"github.com/pseudomuto/adapterkit/pkg/clickhouse"
	"github.com/pseudomuto/adapterkit/pkg/consts"
	"github.com/pseudomuto/adapterkit/pkg/dialect"
	"github.com/pseudomuto/adapterkit/pkg/schema"
	"gopkg.in/yaml.v3"
)

type (
	// Type declares an additional type, or extends a built-in one, for the
	// configured dialect.
	Type struct {
		// Name is the base type name (case-insensitive).
		Name string `yaml:"name"`

		// Defaults replace the built-in default parameter tuples when non-empty.
		Defaults [][]int `yaml:"defaults,omitempty,flow"`

		// WidensFrom is merged into the built-in widening set.
		WidensFrom []string `yaml:"widens_from,omitempty,flow"`
	}

	// Config represents the adapter configuration loaded from adapterkit.yaml.
	Config struct {
		// Dialect names the engine: risingwave, postgres or clickhouse
		Dialect string `yaml:"dialect"`

		// URL is the connection string passed to the engine's client
		URL string `yaml:"url"`

		// Schema is the default schema (or catalog.schema) to inspect
		Schema string `yaml:"schema"`

		// ParallelDiscovery issues the catalog queries concurrently
		ParallelDiscovery bool `yaml:"parallel_discovery,omitempty"`

		// AllowUnknownTypes treats unregistered types as having no defaults and
		// no widening rules instead of failing
		AllowUnknownTypes bool `yaml:"allow_unknown_types,omitempty"`

		// SessionSettings are run on every new connection after the dialect's own
		SessionSettings []string `yaml:"session_settings,omitempty"`

		// Types extends the dialect's type-compatibility matrix
		Types []Type `yaml:"types,omitempty"`

		// Aliases maps alternative type spellings to matrix type names
		Aliases map[string]string `yaml:"aliases,omitempty"`

		// TLS configures mTLS for ClickHouse connections
		TLS clickhouse.TLSSettings `yaml:"tls,omitempty"`
	}
)

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// LoadConfig parses an adapter configuration from the provided io.Reader.
//
// Missing fields fall back to the defaults in package consts. The dialect is
// validated and the schema name must parse as "schema" or "catalog.schema".
//
// Example:
//
//	yamlData := `
//	dialect: risingwave
//	url: postgres://root@localhost:4566/dev?sslmode=disable
//	types:
//	  - name: JSONB
//	    widens_from: [JSON]
//	`
//
//	cfg, err := config.LoadConfig(strings.NewReader(yamlData))
//	if err != nil {
//		panic(err)
//	}
//
//	m, err := cfg.Matrix()
func LoadConfig(r io.Reader) (*Config, error) {
	var cfg Config
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal adapter config")
	}

	cfg.applyDefaults()

	if _, err := dialect.Lookup(cfg.Dialect); err != nil {
		return nil, err
	}

	if _, err := catalog.ParseSchemaName(cfg.Schema); err != nil {
		return nil, err
	}

	for i, t := range cfg.Types {
		if strings.TrimSpace(t.Name) == "" {
			return nil, errors.Errorf("types[%d] has no name", i)
		}
	}

	return &cfg, nil
}

// LoadConfigFile loads an adapter configuration from the specified file path.
// This is a convenience function that opens the file and calls LoadConfig.
//
// Example:
//
//	cfg, err := config.LoadConfigFile("adapterkit.yaml")
//	if err != nil {
//		log.Fatal("Failed to load config:", err)
//	}
//
//	fmt.Printf("Dialect: %s, Schema: %s\n", cfg.Dialect, cfg.Schema)
func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open file: %s", path)
	}
	defer func() { _ = f.Close() }()

	return LoadConfig(f)
}

func (c *Config) applyDefaults() {
	if c.Dialect == "" {
		c.Dialect = consts.DefaultDialect
	}
	if c.Schema == "" {
		c.Schema = consts.DefaultSchema
		if strings.EqualFold(c.Dialect, "clickhouse") {
			c.Schema = consts.DefaultClickHouseDatabase
		}
	}
	if c.URL == "" && strings.EqualFold(c.Dialect, consts.DefaultDialect) {
		c.URL = consts.DefaultURL
	}
}

// SetDialect switches the configured dialect. A schema or URL that still holds
// the previous dialect's default is replaced with the new dialect's default;
// explicitly configured values are kept.
func (c *Config) SetDialect(name string) {
	previous := &Config{Dialect: c.Dialect}
	previous.applyDefaults()

	if c.Schema == previous.Schema {
		c.Schema = ""
	}
	if c.URL == previous.URL {
		c.URL = ""
	}

	c.Dialect = name
	c.applyDefaults()
}

// ResolveDialect returns the configured dialect extended with the configured
// types, aliases and session settings.
func (c *Config) ResolveDialect() (dialect.Dialect, error) {
	d, err := dialect.Lookup(c.Dialect)
	if err != nil {
		return dialect.Dialect{}, err
	}

	entries := make([]schema.Entry, len(c.Types))
	for i, t := range c.Types {
		entries[i] = schema.Entry{Name: t.Name, Defaults: t.Defaults, WidensFrom: t.WidensFrom}
	}

	d = d.Extend(entries, c.Aliases)
	d.SessionSettings = append(d.SessionSettings, c.SessionSettings...)
	return d, nil
}

// Matrix builds the type-compatibility matrix for the configured dialect.
func (c *Config) Matrix() (*schema.Matrix, error) {
	d, err := c.ResolveDialect()
	if err != nil {
		return nil, err
	}

	var opts []schema.MatrixOption
	if c.AllowUnknownTypes {
		opts = append(opts, schema.WithUnknownTypeFallback())
	}

	return d.Matrix(opts...)
}

// SchemaName parses the configured schema.
func (c *Config) SchemaName() (catalog.SchemaName, error) {
	return catalog.ParseSchemaName(c.Schema)
}
