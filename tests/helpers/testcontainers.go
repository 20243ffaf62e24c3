// This file is a helper for running integration tests against a real store
// container, trimmed from localnerve-jam-build-propsdb's multi-container (DB + auth service +
// app image) orchestration down to the single MySQL container this domain's
// tests need.

package helpers

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/go-connections/nat"
	_ "github.com/go-sql-driver/mysql"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// mysqlHostConfig caps the MySQL container's memory so a runaway test
// fixture can't starve the other containers in the same test run, the way
// localnerve-jam-build-propsdb's own hostConfigModifier shapes the
// container's resources before it starts.
func mysqlHostConfig(hostConfig *container.HostConfig) {
	hostConfig.Memory = 512 * 1024 * 1024
}

// StoreContainer wraps a running MySQL container with a database ready for
// GORM's AutoMigrate to build the mirror's tables against.
type StoreContainer struct {
	Container testcontainers.Container
	DSN       string
}

// Terminate stops and removes the container.
func (sc *StoreContainer) Terminate(t *testing.T) {
	if sc.Container == nil {
		return
	}
	if err := sc.Container.Terminate(context.Background()); err != nil {
		logMessage(t, "Failed to terminate store container: %v", err)
	}
}

// CreateStoreContainer starts a MySQL container and creates the database
// named by dbName, returning a DSN ready for store.Connect.
func CreateStoreContainer(t *testing.T, dbName string) (*StoreContainer, error) {
	ctx := context.Background()
	rootPassword := "test-root-password"

	tcpPort, err := nat.NewPort("tcp", "3306")
	if err != nil {
		exitWithError(t, err, "Failed to create DB port")
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mysql:8",
			ExposedPorts: []string{string(tcpPort)},
			Env: map[string]string{
				"MYSQL_ROOT_PASSWORD": rootPassword,
				"MYSQL_DATABASE":      dbName,
			},
			WaitingFor:         wait.ForListeningPort(tcpPort).WithStartupTimeout(60 * time.Second),
			HostConfigModifier: mysqlHostConfig,
		},
		Started: true,
	})
	if err != nil {
		exitWithError(t, err, "Failed to start MySQL container")
	}

	host, _ := container.Host(ctx)
	port, _ := container.MappedPort(ctx, tcpPort)

	dsn := fmt.Sprintf("root:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local", rootPassword, host, port.Port(), dbName)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		_ = container.Terminate(ctx)
		exitWithError(t, err, "Failed to open connection for readiness check")
	}
	defer db.Close()

	for i := 0; i < 30; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(1 * time.Second)
	}
	if err != nil {
		_ = container.Terminate(ctx)
		exitWithError(t, err, "MySQL not ready after 30 seconds")
	}

	return &StoreContainer{Container: container, DSN: dsn}, nil
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
