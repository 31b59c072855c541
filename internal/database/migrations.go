package database

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/yukikurage/ticket-tracker/internal/models"
)

// Migrate creates the schema. It is safe to run repeatedly.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Ticket{},
		&models.AdminClaim{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Bootstrapper makes sure the schema exists before the first request touches
// storage. A failed attempt is retried on the next call.
type Bootstrapper struct {
	db     *gorm.DB
	logger *zap.Logger

	mu   sync.Mutex
	done bool
}

// NewBootstrapper creates a Bootstrapper for db.
func NewBootstrapper(db *gorm.DB, logger *zap.Logger) *Bootstrapper {
	return &Bootstrapper{db: db, logger: logger}
}

// Ensure runs the migrations unless a previous call already succeeded.
func (b *Bootstrapper) Ensure(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.done {
		return nil
	}

	b.logger.Info("running database migrations")
	if err := Migrate(b.db.WithContext(ctx)); err != nil {
		b.logger.Error("database migrations failed", zap.Error(err))
		return err
	}
	b.done = true
	b.logger.Info("database migrations completed")
	return nil
}

// Ready reports whether the schema has been created by this process.
func (b *Bootstrapper) Ready() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.done
}
