// Package capacityrepo persists the day's color capacity as a single
// admin-authored row.
package capacityrepo

import (
	"context"
	"encoding/json"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// capacityRowID keys the single capacity row.
const capacityRowID = 1

// CapacityDTO is the relational shape of the color capacity.
type CapacityDTO struct {
	ID     int    `gorm:"primaryKey"`
	Colors []byte `gorm:"type:jsonb"`
}

// TableName overrides GORM's default naming to use "capacity".
func (CapacityDTO) TableName() string {
	return "capacity"
}

// GormCapacityRepository implements ports.CapacityRepository using
// GORM.
type GormCapacityRepository struct {
	db *gorm.DB
}

// NewGormCapacityRepository creates a new GORM capacity repository.
func NewGormCapacityRepository(db *gorm.DB) *GormCapacityRepository {
	return &GormCapacityRepository{db: db}
}

// Get returns the active colors. A missing row reads as an empty
// capacity: no seats until an administrator sets one.
func (r *GormCapacityRepository) Get(ctx context.Context) ([]string, error) {
	var dto CapacityDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", capacityRowID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []string{}, nil
		}
		return nil, err
	}

	var colors []string
	if err := json.Unmarshal(dto.Colors, &colors); err != nil {
		return nil, err
	}

	return colors, nil
}

// Set replaces the active colors.
func (r *GormCapacityRepository) Set(ctx context.Context, colors []string) error {
	if colors == nil {
		colors = []string{}
	}

	raw, err := json.Marshal(colors)
	if err != nil {
		return err
	}

	dto := CapacityDTO{ID: capacityRowID, Colors: raw}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&dto).Error
}
