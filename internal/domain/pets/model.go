package pets

import (
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("pet not found")
	ErrInvalidInput = errors.New("invalid pet input")
)

// Species define las especies soportadas.
// @Enum dog, cat, other
type Species string

const (
	SpeciesDog   Species = "dog"
	SpeciesCat   Species = "cat"
	SpeciesOther Species = "other"
)

func (s Species) Valid() bool {
	switch s {
	case SpeciesDog, SpeciesCat, SpeciesOther:
		return true
	}
	return false
}

// Pet representa el perfil de una mascota registrada en el dispositivo.
type Pet struct {
	ID string

	Name          string
	Species       Species
	CustomSpecies string // solo si Species == other

	BirthDate *time.Time
	WeightKg  *float64
	PhotoRef  string

	Breed       string
	MicrochipID string
	Allergies   string
	VetName     string
	VetPhone    string
	Notes       string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Nullable distingue "no enviado" (Present=false) de "limpiar" (Present=true, Value=nil).
type Nullable[T any] struct {
	Present bool
	Value   *T
}

func Set[T any](v T) Nullable[T] {
	return Nullable[T]{Present: true, Value: &v}
}

func Clear[T any]() Nullable[T] {
	return Nullable[T]{Present: true}
}
