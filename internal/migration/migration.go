// Package migration applies the schema at startup.
package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"

	auditdomain "github.com/conformly/conformly/internal/audit/domain"
	billingdomain "github.com/conformly/conformly/internal/billing/domain"
	compliancedomain "github.com/conformly/conformly/internal/compliance/domain"
	orgdomain "github.com/conformly/conformly/internal/organization/domain"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/gorm"
)

// RunMigrations applies the embedded SQL migrations against postgres. Every
// core table is created on startup so the service is usable out of the box.
func RunMigrations(db *sql.DB) error {
	if db == nil {
		return errors.New("migration database handle is required")
	}

	sub, err := fs.Sub(embeddedMigrations, migrationsDir)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}

	source, err := iofs.New(sub, ".")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	upErr := migrator.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", upErr)
	}
	// Do not call migrator.Close here because it would close the shared *sql.DB.

	return nil
}

// AutoMigrate builds the schema through gorm for dialects the embedded SQL
// does not cover, such as the sqlite databases used in tests.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&orgdomain.Organization{},
		&auditdomain.AuditLog{},
		&billingdomain.WebhookEventLog{},
		&compliancedomain.TrainingRecord{},
		&compliancedomain.MedicalExamination{},
		&compliancedomain.EquipmentRecord{},
		&compliancedomain.GeneratedDocument{},
	)
}
