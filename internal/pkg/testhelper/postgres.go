// Package testhelper spins up throwaway Postgres containers for
// integration tests.
package testhelper

import (
	"fmt"
	"testing"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sotyapp/backend/internal/repository/dao"
)

// StartPostgres launches a Postgres container and returns a migrated
// *gorm.DB. The container is torn down when the test finishes.
func StartPostgres(t *testing.T) *gorm.DB {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest.NewPool -> %v", err)
	}

	if err = pool.Client.Ping(); err != nil {
		t.Fatalf("pool.Client.Ping -> %v", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=test",
			"POSTGRES_PASSWORD=test",
			"POSTGRES_DB=soty_test",
			"listen_addresses = '*'",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("pool.RunWithOptions -> %v", err)
	}

	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Logf("pool.Purge -> %v", err)
		}
	})

	dsn := fmt.Sprintf("host=localhost port=%s user=test password=test dbname=soty_test sslmode=disable",
		resource.GetPort("5432/tcp"))

	var db *gorm.DB
	if err = pool.Retry(func() error {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			return err
		}

		sqlDB, err := db.DB()
		if err != nil {
			return err
		}

		return sqlDB.Ping()
	}); err != nil {
		t.Fatalf("pool.Retry -> %v", err)
	}

	if err = dao.InitTables(db); err != nil {
		t.Fatalf("dao.InitTables -> %v", err)
	}

	return db
}
