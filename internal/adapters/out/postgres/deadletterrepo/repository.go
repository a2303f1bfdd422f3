package deadletterrepo

import (
	"context"
	"errors"
	"strings"

	"groundhandling/internal/core/ports"
	"groundhandling/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var _ ports.DeadLetterRepository = (*GormDeadLetterRepository)(nil)

// GormDeadLetterRepository implements ports.DeadLetterRepository using GORM.
type GormDeadLetterRepository struct {
	db *gorm.DB
}

// NewGormDeadLetterRepository creates a new GORM dead-letter repository.
func NewGormDeadLetterRepository(db *gorm.DB) *GormDeadLetterRepository {
	return &GormDeadLetterRepository{db: db}
}

// Migrate creates or updates the dead-letter tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&DeadLetterDTO{}, &StepDTO{})
}

// Save inserts the dead letter or replaces the one stored for the same order,
// journal included, in a single transaction.
func (r *GormDeadLetterRepository) Save(ctx context.Context, dl ports.DeadLetter) error {
	if strings.TrimSpace(dl.OrderID) == "" {
		return errs.NewValueIsRequiredError("order id")
	}

	dto := fromDomain(dl)
	steps := dto.Steps
	dto.Steps = nil

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", dto.OrderID).Delete(&StepDTO{}).Error; err != nil {
			return err
		}
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&dto).Error; err != nil {
			return err
		}
		if len(steps) == 0 {
			return nil
		}
		return tx.Create(&steps).Error
	})
}

// Get retrieves the dead letter of orderID.
func (r *GormDeadLetterRepository) Get(ctx context.Context, orderID string) (ports.DeadLetter, error) {
	var dto DeadLetterDTO
	err := r.db.WithContext(ctx).
		Preload("Steps", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		First(&dto, "order_id = ?", orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.DeadLetter{}, errs.NewObjectNotFoundError("dead letter", orderID)
		}
		return ports.DeadLetter{}, err
	}

	return toDomain(dto), nil
}

// List retrieves every dead letter, newest first.
func (r *GormDeadLetterRepository) List(ctx context.Context) ([]ports.DeadLetter, error) {
	var dtos []DeadLetterDTO
	err := r.db.WithContext(ctx).
		Preload("Steps", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Order("created_at DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	letters := make([]ports.DeadLetter, 0, len(dtos))
	for _, dto := range dtos {
		letters = append(letters, toDomain(dto))
	}

	return letters, nil
}

// Delete removes the dead letter of orderID and its journal.
func (r *GormDeadLetterRepository) Delete(ctx context.Context, orderID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", orderID).Delete(&StepDTO{}).Error; err != nil {
			return err
		}
		return tx.Where("order_id = ?", orderID).Delete(&DeadLetterDTO{}).Error
	})
}
