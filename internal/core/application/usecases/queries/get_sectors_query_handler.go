package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetSectorsQueryHandler lists the delivery sectors.
type GetSectorsQueryHandler struct {
	db *gorm.DB
}

// NewGetSectorsQueryHandler creates a handler for sector catalog
// queries.
func NewGetSectorsQueryHandler(db *gorm.DB) GetSectorsQueryHandler {
	return GetSectorsQueryHandler{db: db}
}

// Handle executes the listing in catalog order.
func (h GetSectorsQueryHandler) Handle(
	ctx context.Context,
	query GetSectorsQuery,
) ([]SectorResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			color
		FROM sectors
		ORDER BY name
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sectors := make([]SectorResponse, 0)

	for rows.Next() {
		var resp SectorResponse

		if err = rows.Scan(&resp.ID, &resp.Name, &resp.Color); err != nil {
			return nil, err
		}

		sectors = append(sectors, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return sectors, nil
}
