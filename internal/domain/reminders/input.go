package reminders

import (
	"fmt"
	"strings"
	"time"

	"petcare-tracker/internal/platform/sanitize"
)

type CreateInput struct {
	PetID           string
	Title           string
	Message         string
	DateTime        time.Time
	Repeat          RepeatType
	Enabled         bool
	CalendarEventID string
}

// UpdateInput no incluye NotificationID: el handle lo gestiona el core.
type UpdateInput struct {
	Title           *string
	Message         *string
	DateTime        *time.Time
	Repeat          *RepeatType
	Enabled         *bool
	CalendarEventID *string
}

func New(id string, now time.Time, in CreateInput) (Reminder, error) {
	if strings.TrimSpace(id) == "" {
		return Reminder{}, fmt.Errorf("%w: id required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.PetID) == "" {
		return Reminder{}, fmt.Errorf("%w: pet id required", ErrInvalidInput)
	}

	repeat := in.Repeat
	if repeat == "" {
		repeat = RepeatNone
	}

	r := Reminder{
		ID:              id,
		PetID:           strings.TrimSpace(in.PetID),
		Title:           sanitize.Text(in.Title),
		Message:         sanitize.Text(in.Message),
		DateTime:        in.DateTime,
		Repeat:          repeat,
		Enabled:         in.Enabled,
		CalendarEventID: strings.TrimSpace(in.CalendarEventID),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := r.validate(); err != nil {
		return Reminder{}, err
	}
	return r, nil
}

func (r Reminder) Apply(in UpdateInput, now time.Time) (Reminder, error) {
	out := r
	if in.Title != nil {
		out.Title = sanitize.Text(*in.Title)
	}
	if in.Message != nil {
		out.Message = sanitize.Text(*in.Message)
	}
	if in.DateTime != nil {
		out.DateTime = *in.DateTime
	}
	if in.Repeat != nil {
		out.Repeat = *in.Repeat
	}
	if in.Enabled != nil {
		out.Enabled = *in.Enabled
	}
	if in.CalendarEventID != nil {
		out.CalendarEventID = strings.TrimSpace(*in.CalendarEventID)
	}

	if err := out.validate(); err != nil {
		return Reminder{}, err
	}
	out.UpdatedAt = now
	return out, nil
}

func (r Reminder) validate() error {
	if r.Title == "" {
		return fmt.Errorf("%w: title required", ErrInvalidInput)
	}
	if r.DateTime.IsZero() {
		return fmt.Errorf("%w: date time required", ErrInvalidInput)
	}
	if !r.Repeat.Valid() {
		return fmt.Errorf("%w: unknown repeat %q", ErrInvalidInput, r.Repeat)
	}
	return nil
}
