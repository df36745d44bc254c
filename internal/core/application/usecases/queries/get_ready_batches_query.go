package queries

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrGetReadyBatchesQueryIsNotConstructed = errors.New(
	"GetReadyBatchesQuery must be created via NewGetReadyBatchesQuery constructor",
)

// GetReadyBatchesQuery retrieves the claimable board: every ready
// delivery order grouped by sector, the view agents pick their routes
// from.
type GetReadyBatchesQuery struct {
	guard guard.ConstructorGuard
}

// NewGetReadyBatchesQuery creates a claimable board query.
func NewGetReadyBatchesQuery() GetReadyBatchesQuery {
	return GetReadyBatchesQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetReadyBatchesQuery) Validate() error {
	return q.guard.Validate(ErrGetReadyBatchesQueryIsNotConstructed)
}

// SectorBatchResponse is one sector's group on the claimable board.
// SectorID is empty for the unassigned group, which always sorts last.
type SectorBatchResponse struct {
	SectorID   string
	SectorName string
	Color      string
	Orders     []OrderResponse
}
