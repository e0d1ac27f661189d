package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/vendorhub/backend/internal/domain/ledger"
	"github.com/vendorhub/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultOrderSequence names the counter row behind vendor order numbers
const DefaultOrderSequence = "orders"

// GormOrderSequence draws numbers from a counter row. The row stays locked
// until the enclosing transaction ends, so concurrent callers are serialized
// and a rolled back order releases its number.
type GormOrderSequence struct {
	db   *gorm.DB
	name string
}

// NewGormOrderSequence creates a sequence on the named counter row
func NewGormOrderSequence(db *gorm.DB, name string) *GormOrderSequence {
	return &GormOrderSequence{db: db, name: name}
}

// Next increments the counter and returns the new value
func (s *GormOrderSequence) Next(ctx context.Context) (int64, error) {
	var next int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.OrderSequenceModel{Name: s.name, UpdatedAt: now}).Error; err != nil {
			return err
		}

		var row models.OrderSequenceModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&row, "name = ?", s.name).Error; err != nil {
			return err
		}

		next = row.Value + 1
		return tx.Model(&models.OrderSequenceModel{}).
			Where("name = ?", s.name).
			Updates(map[string]any{"value": next, "updated_at": now}).Error
	})
	return next, err
}

// Seed moves the counter forward to at least value. It never moves it back.
func (s *GormOrderSequence) Seed(ctx context.Context, value int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.OrderSequenceModel{Name: s.name, Value: value, UpdatedAt: now}).Error; err != nil {
			return err
		}
		return tx.Model(&models.OrderSequenceModel{}).
			Where("name = ? AND value < ?", s.name, value).
			Updates(map[string]any{"value": value, "updated_at": now}).Error
	})
}

// SeedFromOrders raises the counter past the highest order number already
// stored, so orders written while another backend was active never collide
// with new ones. It returns the counter floor it applied.
func (s *GormOrderSequence) SeedFromOrders(ctx context.Context, orders *GormOrderRepository) (int64, error) {
	highest, err := orders.HighestSequence(ctx)
	if err != nil {
		return 0, fmt.Errorf("read highest order number: %w", err)
	}
	if err := s.Seed(ctx, highest); err != nil {
		return 0, fmt.Errorf("seed order sequence: %w", err)
	}
	return highest, nil
}

var _ ledger.OrderNumberSequence = (*GormOrderSequence)(nil)
