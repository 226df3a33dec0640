// Package testutil holds helpers shared by the integration and command tests.
package testutil

import (
	"bytes"
	"context"
	"os/exec"
	"testing"

	"github.com/pseudomuto/adapterkit/pkg/docker"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

// SkipIfNoDocker skips the test if Docker is not available
func SkipIfNoDocker(t *testing.T) {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}

	// Check if Docker binary exists
	if _, err := exec.LookPath("docker"); err != nil {
		t.Skip("Docker not available")
	}

	// Check if Docker daemon is running
	cmd := exec.CommandContext(t.Context(), "docker", "ps")
	if err := cmd.Run(); err != nil {
		t.Skip("Docker daemon not running")
	}
}

// StartDatabase starts a container for engine, registers its cleanup and
// returns its DSN. The test is skipped when Docker is unavailable.
func StartDatabase(t *testing.T, engine docker.Engine) string {
	t.Helper()

	SkipIfNoDocker(t)

	ctx := context.Background()
	container := docker.New(engine)
	require.NoError(t, container.Start(ctx))

	t.Cleanup(func() {
		if err := container.Stop(context.Background()); err != nil {
			t.Logf("Failed to stop %s container: %v", engine, err)
		}
	})

	dsn, err := container.GetDSN(ctx)
	require.NoError(t, err)
	return dsn
}

// RunCommand executes command under a throwaway root command and returns what
// it wrote to the root writer.
func RunCommand(t *testing.T, command *cli.Command, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	app := &cli.Command{
		Name:     "test",
		Writer:   &out,
		Commands: []*cli.Command{command},
	}

	// Prepend command name to args
	fullArgs := append([]string{"test", command.Name}, args...)

	err := app.Run(context.Background(), fullArgs)
	return out.String(), err
}
