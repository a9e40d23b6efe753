// Package integration holds container-backed tests for the storage layers.
// The tests are gated behind FINCRIME_INTEGRATION_TEST=1 so the unit suite
// never needs Docker.
package integration

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/turtacn/FinCrime-Intelligence/internal/config"
	"github.com/turtacn/FinCrime-Intelligence/internal/infrastructure/monitoring/logging"
)

// EnvIntegrationEnabled gates the whole package.
const EnvIntegrationEnabled = "FINCRIME_INTEGRATION_TEST"

const (
	postgresImage = "postgres:16-alpine"
	neo4jImage    = "neo4j:5.18"

	testDBUser     = "fincrime"
	testDBPassword = "fincrime"
	testDBName     = "fincrime_test"

	testNeo4jPassword = "integration-pass"
)

// skipUnlessIntegration skips the test unless the gate variable is set.
func skipUnlessIntegration(t *testing.T) {
	t.Helper()
	if os.Getenv(EnvIntegrationEnabled) != "1" {
		t.Skipf("set %s=1 to run integration tests", EnvIntegrationEnabled)
	}
}

// testLogger builds a console logger for container-backed tests.
func testLogger(t *testing.T) logging.Logger {
	t.Helper()
	log, err := logging.NewLogger(logging.LogConfig{Level: "warn", Format: "console"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

// startPostgres runs a disposable Postgres and returns its connection config.
func startPostgres(t *testing.T, ctx context.Context) config.PostgresConfig {
	t.Helper()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        postgresImage,
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     testDBUser,
				"POSTGRES_PASSWORD": testDBPassword,
				"POSTGRES_DB":       testDBName,
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("terminate postgres container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("postgres host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("postgres port: %v", err)
	}

	return config.PostgresConfig{
		Host:     host,
		Port:     port.Int(),
		User:     testDBUser,
		Password: testDBPassword,
		DBName:   testDBName,
		SSLMode:  "disable",
		MaxConns: 4,
	}
}

// startNeo4j runs a disposable Neo4j and returns its connection config.
func startNeo4j(t *testing.T, ctx context.Context) config.Neo4jConfig {
	t.Helper()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        neo4jImage,
			ExposedPorts: []string{"7687/tcp"},
			Env: map[string]string{
				"NEO4J_AUTH": "neo4j/" + testNeo4jPassword,
			},
			WaitingFor: wait.ForLog("Started.").WithStartupTimeout(3 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("start neo4j container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("terminate neo4j container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("neo4j host: %v", err)
	}
	port, err := container.MappedPort(ctx, "7687")
	if err != nil {
		t.Fatalf("neo4j port: %v", err)
	}

	return config.Neo4jConfig{
		URI:               fmt.Sprintf("bolt://%s:%d", host, port.Int()),
		User:              "neo4j",
		Password:          testNeo4jPassword,
		ConnectionTimeout: 30 * time.Second,
	}
}
