package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrClaimRouteCommandIsNotConstructed = errors.New(
		"ClaimRouteCommand must be created via NewClaimRouteCommand constructor",
	)
	ErrSectorsAreRequired = errors.New("at least one sector is required")
)

// ClaimRouteCommand represents an agent claiming every ready order in
// the selected sectors into an exclusive route.
type ClaimRouteCommand struct { //nolint:recvcheck //using for validation
	phone     kernel.Phone
	sectorIDs []string

	guard guard.ConstructorGuard
}

// NewClaimRouteCommand creates a route claim for the given sectors.
// The selection must be explicit: an empty one is rejected rather than
// interpreted as claim-everything, so a terminal sending an empty board
// selection cannot sweep the whole city. The empty string is a valid
// member and selects the unassigned bucket.
func NewClaimRouteCommand(rawPhone string, sectorIDs []string) (ClaimRouteCommand, error) {
	phone, err := kernel.NewPhone(rawPhone)
	if err != nil {
		return ClaimRouteCommand{}, err
	}

	if len(sectorIDs) == 0 {
		return ClaimRouteCommand{}, ErrSectorsAreRequired
	}

	return ClaimRouteCommand{
		phone:     phone,
		sectorIDs: sectorIDs,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ClaimRouteCommand) Validate() error {
	return c.guard.Validate(ErrClaimRouteCommandIsNotConstructed)
}

// Phone returns the claiming agent's identity.
func (c ClaimRouteCommand) Phone() kernel.Phone {
	return c.phone
}

// SectorIDs returns the selected sectors.
func (c ClaimRouteCommand) SectorIDs() []string {
	return c.sectorIDs
}
