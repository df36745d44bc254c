package queries

import (
	"context"

	"dispatch/internal/core/ports"
)

// GetCapacityQueryHandler reads the configured color set. The capacity
// lives behind the port rather than a raw query because the stored form
// is a JSON document, and the repository already owns its decoding.
type GetCapacityQueryHandler struct {
	capacityRepository ports.CapacityRepository
}

// NewGetCapacityQueryHandler creates a handler for capacity queries.
func NewGetCapacityQueryHandler(
	capacityRepository ports.CapacityRepository,
) GetCapacityQueryHandler {
	return GetCapacityQueryHandler{capacityRepository: capacityRepository}
}

// Handle returns the colors available for driver slots. An empty set
// means no slot can be claimed.
func (h GetCapacityQueryHandler) Handle(
	ctx context.Context,
	query GetCapacityQuery,
) ([]string, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return h.capacityRepository.Get(ctx)
}
