package tracker

import (
	"context"
	"sync"
	"time"

	"petcare-tracker/internal/domain/care"
	"petcare-tracker/internal/domain/entitlements"
	"petcare-tracker/internal/domain/pets"
	"petcare-tracker/internal/domain/reminders"
	"petcare-tracker/internal/domain/settings"
	"petcare-tracker/internal/platform/logger"
	"petcare-tracker/internal/ports/notifications"
	"petcare-tracker/internal/ports/photos"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type LoadState string

const (
	StateUninitialized LoadState = "uninitialized"
	StateLoading       LoadState = "loading"
	StateReady         LoadState = "ready"
)

// Entitlements es lo que el gating necesita del colaborador de compras.
type Entitlements interface {
	IsPremium() bool
	Limits() entitlements.Limits
}

type Deps struct {
	Pets      pets.Repository
	CareItems care.Repository
	Reminders reminders.Repository
	Settings  settings.Repository

	// Opcionales.
	Notifier     notifications.Scheduler
	Photos       photos.Remover
	Entitlements Entitlements
	Logger       logger.Logger
}

// Store es la única fuente de verdad en memoria de mascotas, cuidados,
// recordatorios y la ventana del feed. Los repos son un espejo durable:
// toda mutación persiste primero y solo después toca la memoria.
type Store struct {
	petRepo      pets.Repository
	careRepo     care.Repository
	reminderRepo reminders.Repository
	settingsRepo settings.Repository

	notifier notifications.Scheduler
	photos   photos.Remover
	ent      Entitlements
	log      logger.Logger

	now   func() time.Time
	newID func() string

	// writeMu serializa mutaciones (gating + persistencia + espejo en memoria).
	writeMu sync.Mutex

	mu           sync.RWMutex
	state        LoadState
	petList      []pets.Pet
	careList     []care.Item
	reminderList []reminders.Reminder
	upcomingDays int
}

func NewStore(d Deps) *Store {
	return &Store{
		petRepo:      d.Pets,
		careRepo:     d.CareItems,
		reminderRepo: d.Reminders,
		settingsRepo: d.Settings,
		notifier:     d.Notifier,
		photos:       d.Photos,
		ent:          d.Entitlements,
		log:          logger.OrNop(d.Logger).With(logger.Fields{"component": "tracker"}),
		now:          time.Now,
		newID:        uuid.NewString,
		state:        StateUninitialized,
		upcomingDays: settings.DefaultUpcomingCareDays,
	}
}

// Initialize carga todo la primera vez. Si ya está listo no hace nada.
func (s *Store) Initialize(ctx context.Context) {
	s.mu.Lock()
	if s.state != StateUninitialized {
		s.mu.Unlock()
		return
	}
	s.state = StateLoading
	s.mu.Unlock()

	s.load(ctx)
}

// Refresh vuelve a leer todo y reemplaza las colecciones de una vez.
func (s *Store) Refresh(ctx context.Context) {
	s.mu.Lock()
	if s.state == StateUninitialized {
		s.state = StateLoading
	}
	s.mu.Unlock()

	s.load(ctx)
}

func (s *Store) load(ctx context.Context) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	var (
		petList      []pets.Pet
		careList     []care.Item
		reminderList []reminders.Reminder
		days         = settings.DefaultUpcomingCareDays
	)

	// Lecturas en paralelo. Un fallo de lectura se trata como "sin datos".
	var g errgroup.Group
	g.Go(func() error {
		out, err := s.petRepo.List(ctx)
		if err != nil {
			s.log.Warn("load pets failed, using empty", logger.Fields{"err": err})
			return nil
		}
		petList = out
		return nil
	})
	g.Go(func() error {
		out, err := s.careRepo.List(ctx)
		if err != nil {
			s.log.Warn("load care items failed, using empty", logger.Fields{"err": err})
			return nil
		}
		careList = out
		return nil
	})
	g.Go(func() error {
		out, err := s.reminderRepo.List(ctx)
		if err != nil {
			s.log.Warn("load reminders failed, using empty", logger.Fields{"err": err})
			return nil
		}
		reminderList = out
		return nil
	})
	g.Go(func() error {
		n, err := s.settingsRepo.GetUpcomingCareDays(ctx)
		if err != nil || !settings.ValidUpcomingCareDays(n) {
			return nil
		}
		days = n
		return nil
	})
	_ = g.Wait()

	s.mu.Lock()
	s.petList = nonNil(petList)
	s.careList = nonNil(careList)
	s.reminderList = nonNil(reminderList)
	s.upcomingDays = days
	s.state = StateReady
	s.mu.Unlock()

	s.log.Debug("state loaded", logger.Fields{
		"pets":      len(petList),
		"care":      len(careList),
		"reminders": len(reminderList),
		"days":      days,
	})
}

func (s *Store) State() LoadState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Pets devuelve una copia; la presentación nunca muta el estado directamente.
func (s *Store) Pets() []pets.Pet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append(make([]pets.Pet, 0, len(s.petList)), s.petList...)
}

func (s *Store) CareItems() []care.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append(make([]care.Item, 0, len(s.careList)), s.careList...)
}

func (s *Store) Reminders() []reminders.Reminder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append(make([]reminders.Reminder, 0, len(s.reminderList)), s.reminderList...)
}

func (s *Store) UpcomingCareDays() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.upcomingDays
}

func (s *Store) Pet(id string) (pets.Pet, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.petList {
		if p.ID == id {
			return p, true
		}
	}
	return pets.Pet{}, false
}

func (s *Store) hasPet(id string) bool {
	_, ok := s.Pet(id)
	return ok
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
