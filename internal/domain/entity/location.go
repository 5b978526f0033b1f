package entity

import "time"

// ZoneType zona de una ubicación.
type ZoneType string

const (
	ZoneNormal     ZoneType = "NORMAL"
	ZoneExpired    ZoneType = "EXPIRED"
	ZoneDamaged    ZoneType = "DAMAGED"
	ZoneQuarantine ZoneType = "QUARANTINE"
	ZoneStaging    ZoneType = "STAGING"
)

// Valid indica si z pertenece al enum.
func (z ZoneType) Valid() bool {
	switch z {
	case ZoneNormal, ZoneExpired, ZoneDamaged, ZoneQuarantine, ZoneStaging:
		return true
	}
	return false
}

// Location dirección física del almacén.
type Location struct {
	ID        string
	Code      string
	Zone      ZoneType
	Active    bool
	CreatedAt time.Time
}

// Allocatable solo ubicaciones NORMAL y activas entregan stock a reservas.
func (l *Location) Allocatable() bool {
	return l.Active && l.Zone == ZoneNormal
}
