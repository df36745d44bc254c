// Package sectorrepo reads the back-office authored sector catalog.
package sectorrepo

import (
	"context"

	"dispatch/internal/core/domain/model/sector"

	"gorm.io/gorm"
)

// SectorDTO is the relational shape of a sector record.
type SectorDTO struct {
	ID    string `gorm:"primaryKey"`
	Name  string
	Color string
}

// TableName overrides GORM's default naming to use "sectors".
func (SectorDTO) TableName() string {
	return "sectors"
}

// GormSectorRepository implements ports.SectorRepository using GORM.
// The dispatch core never writes sectors, so the repository is
// read-only.
type GormSectorRepository struct {
	db *gorm.DB
}

// NewGormSectorRepository creates a new GORM sector repository.
func NewGormSectorRepository(db *gorm.DB) *GormSectorRepository {
	return &GormSectorRepository{db: db}
}

// GetAll retrieves the sector catalog ordered by id.
func (r *GormSectorRepository) GetAll(ctx context.Context) ([]sector.Sector, error) {
	var dtos []SectorDTO
	if err := r.db.WithContext(ctx).Order("id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	sectors := make([]sector.Sector, 0, len(dtos))
	for _, dto := range dtos {
		s, err := sector.NewSector(dto.ID, dto.Name, dto.Color)
		if err != nil {
			return nil, err
		}
		sectors = append(sectors, s)
	}

	return sectors, nil
}
