// Package docker runs throwaway database servers for integration tests.
//
// It wraps testcontainers-go so that tests can start RisingWave (single-node
// mode), PostgreSQL or ClickHouse with one call and receive a DSN that the
// matching client in this module accepts.
//
// # Usage Example
//
//	container := docker.New(docker.EngineRisingWave)
//
//	ctx := context.Background()
//	defer container.Stop(ctx)
//
//	if err := container.Start(ctx); err != nil {
//		log.Fatal(err)
//	}
//
//	dsn, err := container.GetDSN(ctx)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	client, err := postgres.NewClient(ctx, dsn, postgres.Options{
//		SessionSettings: dialect.RisingWave().SessionSettings,
//	})
//
// Images are pinned per engine and can be overridden with DockerOptions.Version.
package docker
