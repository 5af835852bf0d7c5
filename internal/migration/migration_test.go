package migration

import (
	"fmt"
	"io/fs"
	"strings"
	"testing"
	"time"

	glebsqlite "github.com/glebarez/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/gorm"
)

func TestRunMigrationsRequiresDB(t *testing.T) {
	if err := RunMigrations(nil); err == nil {
		t.Fatal("expected error for nil database handle")
	}
}

func TestEmbeddedMigrationsWellFormed(t *testing.T) {
	sub, err := fs.Sub(embeddedMigrations, migrationsDir)
	if err != nil {
		t.Fatalf("open migrations: %v", err)
	}

	// iofs rejects files that do not follow the version_name.direction.sql scheme.
	if _, err := iofs.New(sub, "."); err != nil {
		t.Fatalf("parse migration source: %v", err)
	}

	entries, err := fs.ReadDir(sub, ".")
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	ups, downs := 0, 0
	for _, entry := range entries {
		switch {
		case strings.HasSuffix(entry.Name(), ".up.sql"):
			ups++
		case strings.HasSuffix(entry.Name(), ".down.sql"):
			downs++
		default:
			t.Fatalf("unexpected file in migrations dir: %s", entry.Name())
		}
	}
	if ups == 0 || ups != downs {
		t.Fatalf("expected matching up/down pairs, got %d up and %d down", ups, downs)
	}
}

func TestAutoMigrateBuildsSchema(t *testing.T) {
	dsn := fmt.Sprintf("file:memdb_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(glebsqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := AutoMigrate(db); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}

	tables := []string{
		"organizations",
		"audit_logs",
		"webhook_event_logs",
		"training_records",
		"medical_examinations",
		"equipment_records",
		"generated_documents",
	}
	for _, table := range tables {
		if !db.Migrator().HasTable(table) {
			t.Fatalf("expected table %s after migration", table)
		}
	}
}
