package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetRouteQueryHandler reads an agent's active route from the database.
// A completed member leaves the route automatically because the read is
// status-scoped; the client never filters completed orders itself.
type GetRouteQueryHandler struct {
	db *gorm.DB
}

// NewGetRouteQueryHandler creates a handler for route queries.
func NewGetRouteQueryHandler(db *gorm.DB) GetRouteQueryHandler {
	return GetRouteQueryHandler{db: db}
}

// Handle executes the route query, oldest claims first so the route
// order is stable while the agent works through it. Like every route
// operation, the read requires a live slot session for the phone;
// otherwise it fails with NotAuthenticatedError.
func (h GetRouteQueryHandler) Handle(ctx context.Context, query GetRouteQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if err := h.requireLiveSession(ctx, query.Phone(), time.Now().UTC()); err != nil {
		return nil, err
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
		WHERE status = 'out_for_delivery' AND driver_phone = ?
		ORDER BY updated_at
	`, query.Phone().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrderRows(rows)
}

func (h GetRouteQueryHandler) requireLiveSession(ctx context.Context, phone kernel.Phone, now time.Time) error {
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			name,
			color,
			last_login,
			online
		FROM drivers
		WHERE phone = ?
	`, phone.String()).Row()

	var name, color string
	var lastLogin time.Time
	var online bool

	if err := row.Scan(&name, &color, &lastLogin, &online); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return errs.NewNotAuthenticatedError(phone.String())
		}
		return err
	}

	session, err := driver.RestoreSession(name, phone, color, lastLogin, online)
	if err != nil {
		return err
	}

	if !session.IsLive(now) {
		return errs.NewNotAuthenticatedError(phone.String())
	}

	return nil
}
