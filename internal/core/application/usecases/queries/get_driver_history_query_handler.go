package queries

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GetDriverHistoryQueryHandler reads an agent's completed deliveries
// and derives the shift counters. The day boundary is the business day,
// delegated to the kernel so the 04:00 cutover lives in one place.
type GetDriverHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetDriverHistoryQueryHandler creates a handler for driver history
// queries.
func NewGetDriverHistoryQueryHandler(db *gorm.DB) GetDriverHistoryQueryHandler {
	return GetDriverHistoryQueryHandler{db: db}
}

// Handle executes the history query, newest completions first.
func (h GetDriverHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetDriverHistoryQuery,
) (DriverHistoryResponse, error) {
	if err := query.Validate(); err != nil {
		return DriverHistoryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			code,
			customer_name,
			customer_phone,
			mode,
			address,
			sector_id,
			items,
			total,
			payment_method,
			change_for,
			status,
			driver_name,
			driver_phone,
			driver_color,
			created_at,
			updated_at,
			completed_at
		FROM orders
		WHERE status = 'completed' AND driver_phone = ?
		ORDER BY completed_at DESC
	`, query.Phone().String()).Rows()
	if err != nil {
		return DriverHistoryResponse{}, err
	}
	defer rows.Close()

	orders, err := scanOrderRows(rows)
	if err != nil {
		return DriverHistoryResponse{}, err
	}

	now := time.Now().UTC()
	thisMonth := kernel.BusinessDate(now)

	resp := DriverHistoryResponse{Orders: orders}
	for _, o := range orders {
		resp.CompletedTotal++

		if o.CompletedAt == nil {
			continue
		}

		if kernel.SameBusinessDay(*o.CompletedAt, now) {
			resp.CompletedToday++
		}

		day := kernel.BusinessDate(*o.CompletedAt)
		if day.Year() == thisMonth.Year() && day.Month() == thisMonth.Month() {
			resp.CompletedMonth++
		}
	}

	return resp, nil
}
