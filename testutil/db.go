// Package testutil provides an isolated, migrated database for package tests.
package testutil

import (
	"fmt"
	"path/filepath"
	"testing"

	"homechef-api/config"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a private in-memory SQLite database with every table migrated
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())
	return open(t, dsn, 1)
}

// NewFileDB opens a migrated SQLite file in a temp dir that allows maxConns
// concurrent connections. Writers queue on the busy timeout.
func NewFileDB(t testing.TB, maxConns int) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "homechef.db")
	dsn := path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(10000)&_pragma=journal_mode(WAL)&_txlock=immediate"
	return open(t, dsn, maxConns)
}

func open(t testing.TB, dsn string, maxConns int) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("test database handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(maxConns)
	t.Cleanup(func() { sqlDB.Close() })

	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}
