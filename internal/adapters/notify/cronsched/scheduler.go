// Package cronsched programa notificaciones en proceso. Un barrido de cron
// entrega las vencidas a un Sink y rearma las que repiten.
package cronsched

import (
	"context"
	"errors"
	"sync"
	"time"

	"petcare-tracker/internal/domain/reminders"
	"petcare-tracker/internal/platform/logger"
	"petcare-tracker/internal/ports/notifications"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

const DefaultSweep = "@every 10s"

type Options struct {
	// Sweep es la expresión de cron del barrido (acepta segundos).
	Sweep  string
	Logger logger.Logger
}

type entry struct {
	n    notifications.Notification
	next time.Time
}

type Scheduler struct {
	cron  *cron.Cron
	sweep string
	sink  notifications.Sink
	log   logger.Logger
	now   func() time.Time

	mu      sync.Mutex
	pending map[string]*entry
}

func New(sink notifications.Sink, opts Options) *Scheduler {
	sweep := opts.Sweep
	if sweep == "" {
		sweep = DefaultSweep
	}
	return &Scheduler{
		cron:    cron.New(cron.WithSeconds()),
		sweep:   sweep,
		sink:    sink,
		log:     logger.OrNop(opts.Logger).With(logger.Fields{"component": "cronsched"}),
		now:     time.Now,
		pending: make(map[string]*entry),
	}
}

// Schedule no programa fechas que ya pasaron: devuelve "".
func (s *Scheduler) Schedule(_ context.Context, n notifications.Notification) (string, error) {
	if n.ReminderID == "" {
		return "", errors.New("reminder id required")
	}
	if !n.FireAt.After(s.now()) {
		return "", nil
	}

	h := uuid.NewString()
	s.mu.Lock()
	s.pending[h] = &entry{n: n, next: n.FireAt}
	s.mu.Unlock()

	s.log.Debug("notification scheduled", logger.Fields{"handle": h, "reminder_id": n.ReminderID, "fire_at": n.FireAt})
	return h, nil
}

func (s *Scheduler) Cancel(_ context.Context, handle string) error {
	s.mu.Lock()
	delete(s.pending, handle)
	s.mu.Unlock()
	return nil
}

// Pending devuelve cuántas notificaciones siguen programadas.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.sweep, func() {
		s.Sweep(context.Background())
	}); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info("notification scheduler started", logger.Fields{"sweep": s.sweep})
	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("notification scheduler stopped", nil)
}

// Sweep entrega todo lo vencido. Las que repiten se rearman a la próxima
// ocurrencia futura (una sola entrega aunque se hayan perdido varias); las
// demás se quitan.
func (s *Scheduler) Sweep(ctx context.Context) int {
	now := s.now()

	var due []notifications.Delivery
	s.mu.Lock()
	for h, e := range s.pending {
		if e.next.After(now) {
			continue
		}
		n := e.n
		n.FireAt = e.next
		due = append(due, notifications.Delivery{Handle: h, Notification: n, FiredAt: now})

		if next, ok := rearm(reminders.RepeatType(e.n.Repeat), e.next, now); ok {
			e.next = next
			continue
		}
		delete(s.pending, h)
	}
	s.mu.Unlock()

	for _, d := range due {
		if s.sink == nil {
			continue
		}
		if err := s.sink.Deliver(ctx, d); err != nil {
			s.log.Warn("deliver notification failed", logger.Fields{"handle": d.Handle, "err": err})
		}
	}
	return len(due)
}

func rearm(repeat reminders.RepeatType, from, now time.Time) (time.Time, bool) {
	next, ok := repeat.Next(from)
	if !ok {
		return time.Time{}, false
	}
	for !next.After(now) {
		next, _ = repeat.Next(next)
	}
	return next, true
}
