// Package sector provides the delivery sector entity. Sectors are
// authored in the back office; the dispatch core only reads them to
// batch ready orders, so the type is a plain immutable record.
package sector

import "dispatch/internal/pkg/errs"

// Sector is a named geographic grouping used to batch ready orders.
type Sector struct {
	id    string
	name  string
	color string
}

// NewSector creates a sector record.
func NewSector(id, name, color string) (Sector, error) {
	if id == "" {
		return Sector{}, errs.NewValueIsRequiredError("sector id")
	}
	if name == "" {
		return Sector{}, errs.NewValueIsRequiredError("sector name")
	}

	return Sector{id: id, name: name, color: color}, nil
}

// ID returns the sector identifier referenced by orders.
func (s Sector) ID() string { return s.id }

// Name returns the display name.
func (s Sector) Name() string { return s.name }

// Color returns the display color.
func (s Sector) Color() string { return s.color }
