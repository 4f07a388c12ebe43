package postgres

import (
	"context"
	"database/sql"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"snapbox/internal/config"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// getProjectRoot finds the project root by searching upwards for the go.mod file.
func getProjectRoot() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		_, err := os.Stat(filepath.Join(wd, "go.mod"))
		if err == nil {
			return wd, nil
		}
		if wd == filepath.Dir(wd) {
			return "", errors.New("go.mod not found in any parent directory")
		}
		wd = filepath.Dir(wd)
	}
}

// NewTestDB starts postgres in a container and migrates it.
// It returns the connection, a teardown func and a func emptying the images table.
func NewTestDB(t *testing.T) (*sql.DB, func(), func()) {
	t.Helper()
	if testing.Short() {
		t.Skip("postgres container tests skipped in short mode")
	}
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "snapbox",
			"POSTGRES_PASSWORD": "snapbox",
			"POSTGRES_DB":       "snapbox_test",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		).WithDeadline(60 * time.Second),
	}

	postgresContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("Could not start postgres container: %v", err)
	}

	host, err := postgresContainer.Host(ctx)
	if err != nil {
		t.Fatalf("Could not read postgres host: %v", err)
	}
	mapped, err := postgresContainer.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("Could not read postgres port: %v", err)
	}
	cfg := config.DatabaseConfig{
		Driver:      "postgres",
		Host:        host,
		Port:        mapped.Int(),
		User:        "snapbox",
		Password:    "snapbox",
		Name:        "snapbox_test",
		SSLMode:     "disable",
		MaxOpenCons: 5,
		MaxIdleCons: 2,
	}

	projectRoot, err := getProjectRoot()
	if err != nil {
		t.Fatalf("Could not find project root: %v", err)
	}
	source := (&url.URL{Scheme: "file", Path: filepath.ToSlash(filepath.Join(projectRoot, "db", "migrations"))}).String()

	m, err := migrate.New(source, cfg.URL())
	if err != nil {
		t.Fatalf("Could not init migrations from %s: %v", source, err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		t.Fatalf("Could not apply migrations: %v", err)
	}
	if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
		t.Fatalf("Could not close migrations: %v %v", srcErr, dbErr)
	}

	db, err := Open(cfg)
	if err != nil {
		t.Fatalf("Could not open postgres: %v", err)
	}

	cleanup := func() {
		db.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("Could not terminate postgres container: %v", err)
		}
	}

	truncateAll := func() {
		if _, err := db.Exec(`TRUNCATE TABLE images`); err != nil {
			t.Fatalf("Could not empty images: %v", err)
		}
	}
	return db, cleanup, truncateAll
}
