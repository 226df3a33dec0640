package docker

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/go-connections/nat"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the pgx driver for the SQL wait strategy
	"github.com/pkg/errors"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/clickhouse"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	// EngineRisingWave runs risingwavelabs/risingwave in single-node mode.
	EngineRisingWave Engine = "risingwave"
	// EnginePostgres runs the official postgres image.
	EnginePostgres Engine = "postgres"
	// EngineClickHouse runs clickhouse/clickhouse-server.
	EngineClickHouse Engine = "clickhouse"

	// RisingWavePort is the Postgres-wire port of a RisingWave frontend.
	RisingWavePort = "4566/tcp"

	// ClickHouseHTTPPort is the default HTTP port for ClickHouse server
	ClickHouseHTTPPort = "8123/tcp"
)

var defaultVersions = map[Engine]string{
	EngineRisingWave: "v2.5.0",
	EnginePostgres:   "17-alpine",
	EngineClickHouse: "25.7-alpine",
}

type (
	// Engine selects the database image a Container runs.
	Engine string

	// DockerOptions represents options for running a database in Docker
	DockerOptions struct {
		// Engine is the database to run.
		Engine Engine

		// Version is the image tag to run. Each engine has a pinned default.
		Version string

		// StartupTimeout bounds how long Start waits for the server to accept
		// connections (default: 3 minutes).
		StartupTimeout time.Duration
	}

	// Container manages a throwaway database server for integration tests.
	Container struct {
		options   DockerOptions
		container testcontainers.Container
		dsn       func(context.Context) (string, error)
	}
)

// New creates a new Docker container for engine with default options
//
// Example:
//
//	container := docker.New(docker.EngineRisingWave)
//
//	if err := container.Start(ctx); err != nil {
//		log.Fatal(err)
//	}
//	defer container.Stop(ctx)
//
//	dsn, err := container.GetDSN(ctx)
func New(engine Engine) *Container {
	return NewWithOptions(DockerOptions{Engine: engine})
}

// NewWithOptions creates a new Docker container with custom options
func NewWithOptions(opts DockerOptions) *Container {
	if opts.Version == "" {
		opts.Version = defaultVersions[opts.Engine]
	}
	if opts.StartupTimeout == 0 {
		opts.StartupTimeout = 3 * time.Minute
	}

	return &Container{options: opts}
}

// Start starts the container and blocks until the server accepts connections.
func (c *Container) Start(ctx context.Context) error {
	if c.container != nil {
		return errors.New("container is already running")
	}

	var err error
	switch c.options.Engine {
	case EngineRisingWave:
		err = c.startRisingWave(ctx)
	case EnginePostgres:
		err = c.startPostgres(ctx)
	case EngineClickHouse:
		err = c.startClickHouse(ctx)
	default:
		return errors.Errorf("unsupported engine %q", c.options.Engine)
	}

	if err != nil {
		return errors.Wrapf(err, "failed to start %s container", c.options.Engine)
	}
	return nil
}

func (c *Container) startRisingWave(ctx context.Context) error {
	dsnFor := func(host string, port nat.Port) string {
		return fmt.Sprintf("postgres://root@%s:%s/dev?sslmode=disable", host, port.Port())
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "risingwavelabs/risingwave:" + c.options.Version,
			Cmd:          []string{"single_node"},
			ExposedPorts: []string{RisingWavePort},
			WaitingFor: wait.ForSQL(nat.Port(RisingWavePort), "pgx", dsnFor).
				WithStartupTimeout(c.options.StartupTimeout),
		},
		Started: true,
	})
	if err != nil {
		return err
	}

	c.container = container
	c.dsn = func(ctx context.Context) (string, error) {
		host, err := container.Host(ctx)
		if err != nil {
			return "", errors.Wrap(err, "failed to get container host")
		}

		port, err := container.MappedPort(ctx, RisingWavePort)
		if err != nil {
			return "", errors.Wrap(err, "failed to get container port")
		}

		return dsnFor(host, port), nil
	}
	return nil
}

func (c *Container) startPostgres(ctx context.Context) error {
	container, err := postgres.Run(ctx,
		"postgres:"+c.options.Version,
		postgres.WithDatabase("adapterkit"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(c.options.StartupTimeout),
		),
	)
	if err != nil {
		return err
	}

	c.container = container
	c.dsn = func(ctx context.Context) (string, error) {
		return container.ConnectionString(ctx, "sslmode=disable")
	}
	return nil
}

func (c *Container) startClickHouse(ctx context.Context) error {
	container, err := clickhouse.Run(ctx,
		"clickhouse/clickhouse-server:"+c.options.Version,
		clickhouse.WithUsername("default"),
		clickhouse.WithPassword(""),
		testcontainers.WithEnv(map[string]string{"CLICKHOUSE_DEFAULT_ACCESS_MANAGEMENT": "1"}),
		testcontainers.WithWaitStrategyAndDeadline(
			c.options.StartupTimeout,
			wait.
				NewHTTPStrategy("/").
				WithPort(nat.Port(ClickHouseHTTPPort)).
				WithStatusCodeMatcher(func(status int) bool {
					return status == 200
				}),
		),
	)
	if err != nil {
		return err
	}

	c.container = container
	c.dsn = func(ctx context.Context) (string, error) {
		return container.ConnectionString(ctx)
	}
	return nil
}

// Stop stops and removes the container
func (c *Container) Stop(ctx context.Context) error {
	if c.container == nil {
		return nil // Already stopped
	}

	err := c.container.Terminate(ctx)
	c.container = nil
	c.dsn = nil

	if err != nil {
		return errors.Wrapf(err, "failed to stop %s container", c.options.Engine)
	}

	return nil
}

// GetDSN returns the connection string for the running server. RisingWave and
// Postgres return postgres:// URLs; ClickHouse returns a clickhouse:// URL.
func (c *Container) GetDSN(ctx context.Context) (string, error) {
	if c.container == nil {
		return "", errors.New("container is not running")
	}

	dsn, err := c.dsn(ctx)
	if err != nil {
		return "", errors.Wrap(err, "failed to get connection string")
	}

	return dsn, nil
}

// Engine returns the engine the container runs.
func (c *Container) Engine() Engine {
	return c.options.Engine
}

// IsRunning returns true if the container is currently running
func (c *Container) IsRunning() bool {
	return c.container != nil
}
