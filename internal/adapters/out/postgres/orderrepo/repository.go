package orderrepo

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(code string, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository. tracker
// may be nil for read-only use outside a unit of work.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.track(aggregate)
	return nil
}

// Update saves an existing order to the database. Nullable columns are
// written with Select so a cancel that clears the driver binding
// actually nulls the columns instead of leaving the old values.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("code = ?", dto.Code).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", dto.Code)
	}

	r.track(aggregate)
	return nil
}

// Get retrieves an order by code.
func (r *GormOrderRepository) Get(ctx context.Context, code string) (*order.Order, error) {
	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", code)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAll retrieves the full order listing, newest first.
func (r *GormOrderRepository) GetAll(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetReadyForDelivery retrieves ready delivery orders, optionally
// restricted to the given sectors. A selection that includes the empty
// sector id also matches orders with no sector.
func (r *GormOrderRepository) GetReadyForDelivery(
	ctx context.Context,
	sectorIDs []string,
) ([]*order.Order, error) {
	tx := r.db.WithContext(ctx).
		Where("mode = ? AND status = ?", order.Delivery.String(), order.ReadyForDelivery.String())

	if len(sectorIDs) > 0 {
		withSector := make([]string, 0, len(sectorIDs))
		unassigned := false
		for _, id := range sectorIDs {
			if id == "" {
				unassigned = true
				continue
			}
			withSector = append(withSector, id)
		}

		switch {
		case unassigned && len(withSector) > 0:
			tx = tx.Where("sector_id IN ? OR sector_id IS NULL", withSector)
		case unassigned:
			tx = tx.Where("sector_id IS NULL")
		default:
			tx = tx.Where("sector_id IN ?", withSector)
		}
	}

	var dtos []OrderDTO
	if err := tx.Order("created_at DESC").Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetRoute retrieves the orders the driver is currently out delivering.
func (r *GormOrderRepository) GetRoute(ctx context.Context, phone kernel.Phone) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("status = ? AND driver_phone = ?", order.OutForDelivery.String(), phone.String()).
		Order("updated_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetCompletedByDriver retrieves the driver's completed orders, newest
// completion first.
func (r *GormOrderRepository) GetCompletedByDriver(
	ctx context.Context,
	phone kernel.Phone,
) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("status = ? AND driver_phone = ?", order.Completed.String(), phone.String()).
		Order("completed_at DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// Claim conditionally moves an order to OutForDelivery and binds the
// driver. The status precondition sits in the UPDATE itself, so the
// database serializes racing claims: the loser's write matches zero
// rows and Claim reports false.
func (r *GormOrderRepository) Claim(
	ctx context.Context,
	code string,
	binding order.DriverBinding,
	now time.Time,
) (bool, error) {
	phone := binding.Phone.String()

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("code = ? AND status = ?", code, order.ReadyForDelivery.String()).
		Updates(map[string]any{
			"status":       order.OutForDelivery.String(),
			"driver_name":  binding.Name,
			"driver_phone": phone,
			"driver_color": binding.Color,
			"updated_at":   now,
		})
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

func (r *GormOrderRepository) track(aggregate *order.Order) {
	if r.tracker != nil {
		r.tracker.TrackAggregate(aggregate.Code(), aggregate)
	}
}

func toDomainSlice(dtos []OrderDTO) ([]*order.Order, error) {
	aggregates := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		aggregates = append(aggregates, aggregate)
	}
	return aggregates, nil
}
