package ports

import (
	"context"

	"dispatch/internal/core/domain/model/sector"
)

// SectorRepository reads the back-office authored sector catalog.
// The core never writes sectors.
type SectorRepository interface {
	GetAll(ctx context.Context) ([]sector.Sector, error)
}

// CapacityRepository reads and writes the day's color capacity: the
// ordered set of colors representing available delivery-agent seats.
type CapacityRepository interface {
	// Get returns the active colors. An empty set means no seats.
	Get(ctx context.Context) ([]string, error)

	// Set replaces the active colors (admin-authored).
	Set(ctx context.Context, colors []string) error
}
