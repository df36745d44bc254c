package driverrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDriverRepository implements ports.DriverRepository using GORM.
type GormDriverRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(code string, aggregate any)
}

// NewGormDriverRepository creates a new GORM driver repository. tracker
// may be nil for read-only use outside a unit of work.
func NewGormDriverRepository(db *gorm.DB, tracker aggregateTracker) *GormDriverRepository {
	return &GormDriverRepository{
		db:      db,
		tracker: tracker,
	}
}

// Save upserts the session keyed by its normalized phone.
func (r *GormDriverRepository) Save(ctx context.Context, session *driver.Session) error {
	if err := session.Validate(); err != nil {
		return err
	}

	dto := fromDomain(session)

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "phone"}},
			UpdateAll: true,
		}).
		Create(&dto).Error
	if err != nil {
		return err
	}

	if r.tracker != nil {
		r.tracker.TrackAggregate(dto.Phone, session)
	}
	return nil
}

// Get retrieves the session for an identity.
func (r *GormDriverRepository) Get(ctx context.Context, phone kernel.Phone) (*driver.Session, error) {
	if err := phone.Validate(); err != nil {
		return nil, err
	}

	var dto DriverDTO
	if err := r.db.WithContext(ctx).First(&dto, "phone = ?", phone.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("session", phone.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAll retrieves every stored session, live or not. Inside a
// transaction the rows are read FOR UPDATE: slot exclusivity is decided
// by a read-then-write over this set, and the lock serializes competing
// logins so two agents cannot both pass the color check.
func (r *GormDriverRepository) GetAll(ctx context.Context) ([]*driver.Session, error) {
	var dtos []DriverDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Order("phone").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	sessions := make([]*driver.Session, 0, len(dtos))
	for _, dto := range dtos {
		session, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}

	return sessions, nil
}
