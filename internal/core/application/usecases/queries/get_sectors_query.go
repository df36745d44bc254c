package queries

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrGetSectorsQueryIsNotConstructed = errors.New(
	"GetSectorsQuery must be created via NewGetSectorsQuery constructor",
)

// GetSectorsQuery retrieves the delivery sector catalog.
type GetSectorsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetSectorsQuery creates a sector catalog query.
func NewGetSectorsQuery() GetSectorsQuery {
	return GetSectorsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetSectorsQuery) Validate() error {
	return q.guard.Validate(ErrGetSectorsQueryIsNotConstructed)
}

// SectorResponse is a single sector in the catalog read model.
type SectorResponse struct {
	ID    string
	Name  string
	Color string
}
