// Package driverrepo persists agent slot sessions, one row per phone
// identity.
package driverrepo

import (
	"time"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
)

// DriverDTO is the relational shape of a slot session. The normalized
// phone is the key: an agent switching colors replaces their row rather
// than accumulating one per color.
type DriverDTO struct {
	Phone     string `gorm:"primaryKey"`
	Name      string
	Color     string `gorm:"index"`
	LastLogin time.Time
	Online    bool
}

// TableName overrides GORM's default naming to use "drivers".
func (DriverDTO) TableName() string {
	return "drivers"
}

func fromDomain(session *driver.Session) DriverDTO {
	return DriverDTO{
		Phone:     session.Phone().String(),
		Name:      session.Name(),
		Color:     session.Color(),
		LastLogin: session.LastLogin(),
		Online:    session.Online(),
	}
}

func toDomain(dto DriverDTO) (*driver.Session, error) {
	phone, err := kernel.NewPhone(dto.Phone)
	if err != nil {
		return nil, err
	}

	return driver.RestoreSession(dto.Name, phone, dto.Color, dto.LastLogin, dto.Online)
}
