// Package databasetest opens throwaway sqlite databases for tests.
package databasetest

import (
	"fmt"
	"strings"
	"testing"

	"github.com/khankhulgun/svgcanvas/database"
	"github.com/khankhulgun/svgcanvas/database/migrations"
	"github.com/khankhulgun/svgcanvas/database/seeds"
	"gorm.io/gorm"
)

// Setup points database.DB at a fresh, migrated and seeded in-memory
// database for the duration of the test.
func Setup(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_", "#", "_", "?", "_").Replace(t.Name())
	db, err := database.Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	previous := database.DB
	database.DB = db
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
		database.DB = previous
	})

	if err := migrations.Migrate(); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	if err := seeds.Seed(); err != nil {
		t.Fatalf("seed test database: %v", err)
	}
	return db
}
