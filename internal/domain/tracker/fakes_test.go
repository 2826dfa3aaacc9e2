package tracker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"petcare-tracker/internal/domain/care"
	"petcare-tracker/internal/domain/entitlements"
	"petcare-tracker/internal/domain/pets"
	"petcare-tracker/internal/domain/reminders"
	"petcare-tracker/internal/domain/settings"
	"petcare-tracker/internal/ports/notifications"
)

// -------------------------
// Test repos (in-memory, con fallas inyectables)
// -------------------------

var errRepoDown = errors.New("repo: down")

type testTable[T any] struct {
	mu       sync.Mutex
	id       func(T) string
	pet      func(T) string
	rows     []T
	notFound error

	failList   error
	failCreate error
	failUpdate error
	failDelete error

	// failCreateFor hace fallar Create solo para la mascota indicada.
	failCreateFor string
}

func (t *testTable[T]) List(context.Context) ([]T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.failList != nil {
		return nil, t.failList
	}
	return append([]T(nil), t.rows...), nil
}

func (t *testTable[T]) GetByID(_ context.Context, id string) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, v := range t.rows {
		if t.id(v) == id {
			return v, nil
		}
	}
	var zero T
	return zero, t.notFound
}

func (t *testTable[T]) Create(_ context.Context, v T) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.failCreate != nil {
		return t.failCreate
	}
	if t.failCreateFor != "" && t.pet != nil && t.pet(v) == t.failCreateFor {
		return errRepoDown
	}
	t.rows = append(t.rows, v)
	return nil
}

func (t *testTable[T]) Update(_ context.Context, v T) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.failUpdate != nil {
		return t.failUpdate
	}
	for i := range t.rows {
		if t.id(t.rows[i]) == t.id(v) {
			t.rows[i] = v
			return nil
		}
	}
	return t.notFound
}

func (t *testTable[T]) Delete(_ context.Context, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.failDelete != nil {
		return t.failDelete
	}
	for i := range t.rows {
		if t.id(t.rows[i]) == id {
			t.rows = append(t.rows[:i], t.rows[i+1:]...)
			return nil
		}
	}
	return t.notFound
}

func (t *testTable[T]) DeleteByPet(_ context.Context, petID string) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.failDelete != nil {
		return 0, t.failDelete
	}
	kept := t.rows[:0]
	n := 0
	for _, v := range t.rows {
		if t.pet(v) == petID {
			n++
			continue
		}
		kept = append(kept, v)
	}
	t.rows = kept
	return n, nil
}

func (t *testTable[T]) len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.rows)
}

func newPetTable() *testTable[pets.Pet] {
	return &testTable[pets.Pet]{
		id:       func(p pets.Pet) string { return p.ID },
		notFound: pets.ErrNotFound,
	}
}

func newCareTable() *testTable[care.Item] {
	return &testTable[care.Item]{
		id:       func(it care.Item) string { return it.ID },
		pet:      func(it care.Item) string { return it.PetID },
		notFound: care.ErrNotFound,
	}
}

func newReminderTable() *testTable[reminders.Reminder] {
	return &testTable[reminders.Reminder]{
		id:       func(r reminders.Reminder) string { return r.ID },
		pet:      func(r reminders.Reminder) string { return r.PetID },
		notFound: reminders.ErrNotFound,
	}
}

type testSettings struct {
	days     int
	redeemed bool
	failGet  error
	failSave error
}

func (s *testSettings) GetUpcomingCareDays(context.Context) (int, error) {
	if s.failGet != nil {
		return 0, s.failGet
	}
	if s.days == 0 {
		return 0, settings.ErrNotFound
	}
	return s.days, nil
}

func (s *testSettings) SaveUpcomingCareDays(_ context.Context, days int) error {
	if s.failSave != nil {
		return s.failSave
	}
	s.days = days
	return nil
}

func (s *testSettings) GetCouponRedeemed(context.Context) (bool, error) {
	return s.redeemed, s.failGet
}

func (s *testSettings) SaveCouponRedeemed(_ context.Context, redeemed bool) error {
	if s.failSave != nil {
		return s.failSave
	}
	s.redeemed = redeemed
	return nil
}

// -------------------------
// Test notifier
// -------------------------

type testNotifier struct {
	mu        sync.Mutex
	seq       int
	live      map[string]notifications.Notification
	cancelled []string
	failNext  error
}

func newTestNotifier() *testNotifier {
	return &testNotifier{live: map[string]notifications.Notification{}}
}

func (n *testNotifier) Schedule(_ context.Context, notif notifications.Notification) (string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.failNext != nil {
		err := n.failNext
		n.failNext = nil
		return "", err
	}
	n.seq++
	h := fmt.Sprintf("h-%d", n.seq)
	n.live[h] = notif
	return h, nil
}

func (n *testNotifier) Cancel(_ context.Context, handle string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.cancelled = append(n.cancelled, handle)
	delete(n.live, handle)
	return nil
}

func (n *testNotifier) cancelCount(handle string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	c := 0
	for _, h := range n.cancelled {
		if h == handle {
			c++
		}
	}
	return c
}

type testEntitlements struct{ premium bool }

func (e testEntitlements) IsPremium() bool             { return e.premium }
func (e testEntitlements) Limits() entitlements.Limits { return entitlements.FreeLimits }

type testPhotos struct {
	deleted []string
	err     error
}

func (p *testPhotos) DeleteIfExists(_ context.Context, ref string) error {
	p.deleted = append(p.deleted, ref)
	return p.err
}

// -------------------------
// Fixture
// -------------------------

var testNow = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

type fixture struct {
	store     *Store
	pets      *testTable[pets.Pet]
	care      *testTable[care.Item]
	reminders *testTable[reminders.Reminder]
	settings  *testSettings
	notifier  *testNotifier
	photos    *testPhotos
}

func newFixture(t *testing.T, premium bool) *fixture {
	t.Helper()

	f := &fixture{
		pets:      newPetTable(),
		care:      newCareTable(),
		reminders: newReminderTable(),
		settings:  &testSettings{},
		notifier:  newTestNotifier(),
		photos:    &testPhotos{},
	}
	f.store = NewStore(Deps{
		Pets:         f.pets,
		CareItems:    f.care,
		Reminders:    f.reminders,
		Settings:     f.settings,
		Notifier:     f.notifier,
		Photos:       f.photos,
		Entitlements: testEntitlements{premium: premium},
	})

	var seq atomic.Int64
	f.store.now = func() time.Time { return testNow }
	f.store.newID = func() string { return fmt.Sprintf("id-%d", seq.Add(1)) }

	f.store.Initialize(context.Background())
	return f
}

func (f *fixture) addPet(t *testing.T, name string) pets.Pet {
	t.Helper()
	p, err := f.store.AddPet(context.Background(), pets.CreateInput{Name: name, Species: pets.SpeciesDog})
	if err != nil {
		t.Fatalf("AddPet(%s) error: %v", name, err)
	}
	return p
}

func (f *fixture) addCare(t *testing.T, petID string, due time.Time) care.Item {
	t.Helper()
	it, err := f.store.AddCareItem(context.Background(), care.CreateInput{
		PetID:   petID,
		Type:    care.TypeVaccine,
		Title:   "Rabies",
		DueDate: due,
	})
	if err != nil {
		t.Fatalf("AddCareItem error: %v", err)
	}
	return it
}

func (f *fixture) addReminder(t *testing.T, petID string, at time.Time, enabled bool) reminders.Reminder {
	t.Helper()
	r, err := f.store.AddReminder(context.Background(), reminders.CreateInput{
		PetID:    petID,
		Title:    "Pill",
		DateTime: at,
		Enabled:  enabled,
	})
	if err != nil {
		t.Fatalf("AddReminder error: %v", err)
	}
	return r
}
