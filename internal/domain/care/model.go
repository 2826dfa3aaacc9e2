package care

import (
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("care item not found")
	ErrInvalidInput = errors.New("invalid care item input")
)

// Type define los tipos de cuidado programables.
// @Enum vaccine, grooming, medication, vet_visit
type Type string

const (
	TypeVaccine    Type = "vaccine"
	TypeGrooming   Type = "grooming"
	TypeMedication Type = "medication"
	TypeVetVisit   Type = "vet_visit"
)

func (t Type) Valid() bool {
	switch t {
	case TypeVaccine, TypeGrooming, TypeMedication, TypeVetVisit:
		return true
	}
	return false
}

// Item es una tarea de cuidado única (sin recurrencia) de una mascota.
type Item struct {
	ID    string
	PetID string

	Type  Type
	Title string

	// DueDate es una fecha calendario: se guarda como medianoche UTC y
	// solo importan año/mes/día.
	DueDate time.Time

	Notes           string
	CalendarEventID string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DateOnly normaliza t a medianoche UTC conservando su año/mes/día.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DueIn devuelve la medianoche de la fecha de vencimiento en loc.
// Así la comparación con "hoy" se hace siempre a nivel día.
func (i Item) DueIn(loc *time.Location) time.Time {
	y, m, d := i.DueDate.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
