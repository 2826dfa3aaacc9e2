package notifications

import (
	"context"
	"time"
)

// Notification es lo que el scheduler necesita para avisar de un recordatorio.
type Notification struct {
	ReminderID string
	PetID      string
	Title      string
	Message    string
	FireAt     time.Time
	Repeat     string
}

// Scheduler programa notificaciones locales.
// Schedule devuelve un handle opaco, o "" si no programó nada (p.ej. fecha pasada).
// Cancel con un handle desconocido no es error.
type Scheduler interface {
	Schedule(ctx context.Context, n Notification) (string, error)
	Cancel(ctx context.Context, handle string) error
}

// Delivery es una notificación que venció y se entrega al usuario.
type Delivery struct {
	Handle       string
	Notification Notification
	FiredAt      time.Time
}

// Sink recibe las notificaciones vencidas (websocket, log, etc.).
type Sink interface {
	Deliver(ctx context.Context, d Delivery) error
}
