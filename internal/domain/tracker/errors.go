package tracker

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrPetNotFound  = errors.New("referenced pet does not exist")
	ErrLimitReached = errors.New("free tier limit reached")
)

type Resource string

const (
	ResourcePets      Resource = "pets"
	ResourceCareItems Resource = "care_items"
	ResourceReminders Resource = "reminders"
)

// LimitError indica que la creación superaría el techo del tier gratuito.
// La capa de presentación debe mostrar el paywall en vez de reintentar.
type LimitError struct {
	Resource Resource
	Limit    int
	Current  int
	Wanted   int
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("free tier limit reached: %s %d/%d (wanted +%d)", e.Resource, e.Current, e.Limit, e.Wanted)
}

func (e *LimitError) Unwrap() error { return ErrLimitReached }

func invalid(err error) error {
	return fmt.Errorf("%w: %v", ErrInvalidInput, err)
}
