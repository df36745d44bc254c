package queries

import (
	"context"
	"database/sql"
	"encoding/json"

	"dispatch/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetOrdersQueryHandler reads the order listing straight from the
// database. Uses direct SQL for read performance in the CQRS pattern;
// the aggregate is never rehydrated on the read path.
type GetOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersQueryHandler creates a handler for order listing queries.
func NewGetOrdersQueryHandler(db *gorm.DB) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{db: db}
}

// Handle executes the listing query, newest orders first.
func (h GetOrdersQueryHandler) Handle(ctx context.Context, query GetOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	const baseSelect = `
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
	`

	tx := h.db.WithContext(ctx)

	var rows *sql.Rows
	var err error
	if query.Status() == order.StatusUnknown {
		rows, err = tx.Raw(baseSelect + ` ORDER BY created_at DESC`).Rows()
	} else {
		rows, err = tx.Raw(baseSelect+` WHERE status = ? ORDER BY created_at DESC`,
			query.Status().String()).Rows()
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrderRows(rows)
}

// scanOrderRows converts order rows of the shared column set into read
// models. Every order query selects the same columns in the same order.
func scanOrderRows(rows *sql.Rows) ([]OrderResponse, error) {
	orders := make([]OrderResponse, 0)

	for rows.Next() {
		var resp OrderResponse
		var itemsRaw []byte
		var address, sectorID sql.NullString
		var driverName, driverPhone, driverColor sql.NullString
		var completedAt sql.NullTime

		err := rows.Scan(
			&resp.Code,
			&resp.CustomerName,
			&resp.CustomerPhone,
			&resp.Mode,
			&address,
			&sectorID,
			&itemsRaw,
			&resp.Total,
			&resp.PaymentMethod,
			&resp.ChangeFor,
			&resp.Status,
			&driverName,
			&driverPhone,
			&driverColor,
			&resp.CreatedAt,
			&resp.UpdatedAt,
			&completedAt,
		)
		if err != nil {
			return nil, err
		}

		if err = json.Unmarshal(itemsRaw, &resp.Items); err != nil {
			return nil, err
		}

		resp.Address = address.String
		resp.SectorID = sectorID.String
		resp.DriverName = driverName.String
		resp.DriverPhone = driverPhone.String
		resp.DriverColor = driverColor.String
		if completedAt.Valid {
			t := completedAt.Time
			resp.CompletedAt = &t
		}

		orders = append(orders, resp)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
