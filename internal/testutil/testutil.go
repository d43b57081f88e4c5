package testutil

import (
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/juvenstu/real-estate-marketplace/internal/models"
)

// TestDatabase holds the in-memory SQLite test database.
type TestDatabase struct {
	DB  *gorm.DB
	DSN string
}

// TestRedis holds an in-memory Redis mock (miniredis).
type TestRedis struct {
	Server *miniredis.Miniredis
	Client *redis.Client
}

// SetupTestDatabase creates an in-memory SQLite database and migrates the
// real models. IDs are assigned in Go code, so the production models work
// on SQLite unchanged.
func SetupTestDatabase(t *testing.T) *TestDatabase {
	dsn := "file::memory:?cache=shared"

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Listing{}); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return &TestDatabase{
		DB:  db,
		DSN: dsn,
	}
}

// Teardown closes the test database connection.
func (td *TestDatabase) Teardown(t *testing.T) {
	sqlDB, err := td.DB.DB()
	if err != nil {
		t.Logf("Warning: failed to get underlying DB: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		t.Logf("Warning: failed to close database: %v", err)
	}
}

// SetupTestRedis starts a miniredis server and a client pointed at it.
func SetupTestRedis(t *testing.T) *TestRedis {
	server, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{Addr: server.Addr()})

	return &TestRedis{
		Server: server,
		Client: client,
	}
}

// Teardown stops the Redis mock.
func (tr *TestRedis) Teardown(t *testing.T) {
	_ = tr.Client.Close()
	tr.Server.Close()
}

// CleanDatabase deletes all records for test isolation. SQLite has no
// TRUNCATE, so plain deletes are used.
func CleanDatabase(t *testing.T, db *gorm.DB) {
	tables := []string{"listings", "users"}
	for _, table := range tables {
		if err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			t.Logf("Warning: failed to clean table %s: %v", table, err)
		}
	}
}
