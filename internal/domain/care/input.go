package care

import (
	"fmt"
	"strings"
	"time"

	"petcare-tracker/internal/platform/sanitize"
)

type CreateInput struct {
	PetID           string
	Type            Type
	Title           string
	DueDate         time.Time
	Notes           string
	CalendarEventID string
}

// UpdateInput: la mascota dueña no se puede cambiar.
type UpdateInput struct {
	Type            *Type
	Title           *string
	DueDate         *time.Time
	Notes           *string
	CalendarEventID *string
}

func New(id string, now time.Time, in CreateInput) (Item, error) {
	if strings.TrimSpace(id) == "" {
		return Item{}, fmt.Errorf("%w: id required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.PetID) == "" {
		return Item{}, fmt.Errorf("%w: pet id required", ErrInvalidInput)
	}
	if in.DueDate.IsZero() {
		return Item{}, fmt.Errorf("%w: due date required", ErrInvalidInput)
	}

	it := Item{
		ID:              id,
		PetID:           strings.TrimSpace(in.PetID),
		Type:            in.Type,
		Title:           sanitize.Text(in.Title),
		DueDate:         DateOnly(in.DueDate),
		Notes:           sanitize.Text(in.Notes),
		CalendarEventID: strings.TrimSpace(in.CalendarEventID),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := it.validate(); err != nil {
		return Item{}, err
	}
	return it, nil
}

func (i Item) Apply(in UpdateInput, now time.Time) (Item, error) {
	out := i
	if in.Type != nil {
		out.Type = *in.Type
	}
	if in.Title != nil {
		out.Title = sanitize.Text(*in.Title)
	}
	if in.DueDate != nil {
		if in.DueDate.IsZero() {
			return Item{}, fmt.Errorf("%w: due date required", ErrInvalidInput)
		}
		out.DueDate = DateOnly(*in.DueDate)
	}
	if in.Notes != nil {
		out.Notes = sanitize.Text(*in.Notes)
	}
	if in.CalendarEventID != nil {
		out.CalendarEventID = strings.TrimSpace(*in.CalendarEventID)
	}

	if err := out.validate(); err != nil {
		return Item{}, err
	}
	out.UpdatedAt = now
	return out, nil
}

func (i Item) validate() error {
	if !i.Type.Valid() {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidInput, i.Type)
	}
	if i.Title == "" {
		return fmt.Errorf("%w: title required", ErrInvalidInput)
	}
	return nil
}
