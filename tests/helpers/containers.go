// This file is a helper for running tests with testcontainers.
// It is used by the integration tests and by cmd/testcontainers in a
// standalone executable.
// Expects environment variables to be loaded from .env files.

package helpers

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	_ "github.com/go-sql-driver/mysql"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/testtrackhq/testtrack/internal/config"
)

// DatabaseContainer bundles a running database container with the
// config needed to connect to it from the host.
type DatabaseContainer struct {
	Container testcontainers.Container
	Config    *config.Config
}

func (dc *DatabaseContainer) Terminate(t *testing.T) {
	if dc.Container == nil {
		return
	}
	if err := dc.Container.Terminate(context.Background()); err != nil {
		logMessage(t, "Failed to terminate database container: %v", err)
	}
}

// StartMariaDB starts a MariaDB container and waits until the server
// accepts connections. Pass a nil *testing.T to run outside the test
// framework (errors print and exit instead of failing the test).
func StartMariaDB(t *testing.T) *DatabaseContainer {
	ctx := context.Background()

	image := os.Getenv("DB_IMAGE")
	if image == "" {
		image = "mariadb:11"
	}

	tcpPort, err := nat.NewPort("tcp", "3306")
	if err != nil {
		exitWithError(t, err, "Failed to create DB port")
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        image,
			ExposedPorts: []string{string(tcpPort)},
			Env: map[string]string{
				"MYSQL_ROOT_PASSWORD": "rootpass",
				"MYSQL_DATABASE":      "testtrack",
				"MYSQL_USER":          "testuser",
				"MYSQL_PASSWORD":      "testpass",
			},
			WaitingFor: wait.ForLog("ready for connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		exitWithError(t, err, "Failed to start MariaDB")
	}

	host, err := container.Host(ctx)
	if err != nil {
		exitWithError(t, err, "Failed to get container host")
	}
	port, err := container.MappedPort(ctx, tcpPort)
	if err != nil {
		exitWithError(t, err, "Failed to get container port")
	}

	dc := &DatabaseContainer{
		Container: container,
		Config: &config.Config{
			DBType:            "mysql",
			DBHost:            host,
			DBPort:            port.Port(),
			DBDatabase:        "testtrack",
			DBUser:            "testuser",
			DBPassword:        "testpass",
			DBConnectionLimit: 5,
		},
	}

	if err := waitForMySQL(dc.Config); err != nil {
		dc.Terminate(t)
		exitWithError(t, err, "MariaDB not ready after 30 seconds")
	}

	logMessage(t, "MariaDB testcontainer started at %s:%s", host, port.Port())
	return dc
}

// StartPostgres starts a PostgreSQL container and waits until the
// server accepts connections.
func StartPostgres(t *testing.T) *DatabaseContainer {
	ctx := context.Background()

	image := os.Getenv("POSTGRES_IMAGE")
	if image == "" {
		image = "postgres:17"
	}

	tcpPort, err := nat.NewPort("tcp", "5432")
	if err != nil {
		exitWithError(t, err, "Failed to create DB port")
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        image,
			ExposedPorts: []string{string(tcpPort)},
			Env: map[string]string{
				"POSTGRES_PASSWORD": "testpass",
				"POSTGRES_USER":     "testuser",
				"POSTGRES_DB":       "testtrack",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		exitWithError(t, err, "Failed to start PostgreSQL")
	}

	host, err := container.Host(ctx)
	if err != nil {
		exitWithError(t, err, "Failed to get container host")
	}
	port, err := container.MappedPort(ctx, tcpPort)
	if err != nil {
		exitWithError(t, err, "Failed to get container port")
	}

	dc := &DatabaseContainer{
		Container: container,
		Config: &config.Config{
			DBType:            "postgres",
			DBHost:            host,
			DBPort:            port.Port(),
			DBDatabase:        "testtrack",
			DBUser:            "testuser",
			DBPassword:        "testpass",
			DBConnectionLimit: 5,
		},
	}

	logMessage(t, "PostgreSQL testcontainer started at %s:%s", host, port.Port())
	return dc
}

// waitForMySQL pings the server until it really accepts connections;
// the log line appears before the listener is usable from the host.
func waitForMySQL(cfg *config.Config) error {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s", cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBDatabase)
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	for i := 0; i < 30; i++ {
		err = db.Ping()
		if err == nil {
			return nil
		}
		time.Sleep(1 * time.Second)
	}
	return err
}

func exitWithError(t *testing.T, err error, msg string) {
	if t != nil {
		t.Fatalf(msg+": %v", err)
	} else {
		fmt.Printf(msg+": %v\n", err)
		os.Exit(1)
	}
}

func logMessage(t *testing.T, format string, args ...any) {
	if t != nil {
		t.Logf(format, args...)
	} else {
		fmt.Printf(format+"\n", args...)
	}
}
