package reminders

import (
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("reminder not found")
	ErrInvalidInput = errors.New("invalid reminder input")
)

// RepeatType es informativo: el recordatorio guarda una sola fecha/hora.
// @Enum none, daily, weekly, monthly
type RepeatType string

const (
	RepeatNone    RepeatType = "none"
	RepeatDaily   RepeatType = "daily"
	RepeatWeekly  RepeatType = "weekly"
	RepeatMonthly RepeatType = "monthly"
)

func (r RepeatType) Valid() bool {
	switch r {
	case RepeatNone, RepeatDaily, RepeatWeekly, RepeatMonthly:
		return true
	}
	return false
}

// Next devuelve la siguiente ocurrencia después de t, o false si no repite.
func (r RepeatType) Next(t time.Time) (time.Time, bool) {
	switch r {
	case RepeatDaily:
		return t.AddDate(0, 0, 1), true
	case RepeatWeekly:
		return t.AddDate(0, 0, 7), true
	case RepeatMonthly:
		return t.AddDate(0, 1, 0), true
	}
	return time.Time{}, false
}

// Reminder es una notificación programada para una mascota.
// Invariante: si Enabled es false, NotificationID está vacío.
type Reminder struct {
	ID    string
	PetID string

	Title   string
	Message string

	DateTime time.Time
	Repeat   RepeatType
	Enabled  bool

	NotificationID  string
	CalendarEventID string

	CreatedAt time.Time
	UpdatedAt time.Time
}
