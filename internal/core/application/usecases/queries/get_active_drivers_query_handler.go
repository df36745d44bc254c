package queries

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GetActiveDriversQueryHandler lists the live agent sessions. Liveness
// is decided by the domain rule, not by the stored online flag alone: a
// session the sweeper has not reached yet must still read as gone.
type GetActiveDriversQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveDriversQueryHandler creates a handler for active driver
// queries.
func NewGetActiveDriversQueryHandler(db *gorm.DB) GetActiveDriversQueryHandler {
	return GetActiveDriversQueryHandler{db: db}
}

// Handle executes the listing, ordered by color for a stable board.
func (h GetActiveDriversQueryHandler) Handle(
	ctx context.Context,
	query GetActiveDriversQuery,
) ([]DriverResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			phone,
			name,
			color,
			last_login,
			online
		FROM drivers
		WHERE online = true
		ORDER BY color
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	now := time.Now().UTC()
	drivers := make([]DriverResponse, 0)

	for rows.Next() {
		var rawPhone, name, color string
		var lastLogin time.Time
		var online bool

		if err = rows.Scan(&rawPhone, &name, &color, &lastLogin, &online); err != nil {
			return nil, err
		}

		phone, phoneErr := kernel.NewPhone(rawPhone)
		if phoneErr != nil {
			return nil, phoneErr
		}

		session, sessionErr := driver.RestoreSession(name, phone, color, lastLogin, online)
		if sessionErr != nil {
			return nil, sessionErr
		}

		if !session.IsLive(now) {
			continue
		}

		drivers = append(drivers, DriverResponse{
			Name:      session.Name(),
			Phone:     session.Phone().String(),
			Color:     session.Color(),
			LastLogin: session.LastLogin(),
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return drivers, nil
}
