package tracker

import (
	"sort"
	"time"

	"petcare-tracker/internal/domain/care"
	"petcare-tracker/internal/domain/pets"
	"petcare-tracker/internal/domain/reminders"
)

type ItemKind string

const (
	KindCare     ItemKind = "care"
	KindReminder ItemKind = "reminder"
)

// UnifiedItem es una entrada del feed: exactamente uno de Care o Reminder.
// Se deriva en cada lectura, nunca se persiste.
type UnifiedItem struct {
	Kind     ItemKind
	Care     *care.Item
	Reminder *reminders.Reminder
}

func (u UnifiedItem) PetID() string {
	if u.Kind == KindCare {
		return u.Care.PetID
	}
	return u.Reminder.PetID
}

// At es el instante efectivo para ordenar. Un cuidado cuenta desde el
// inicio de su día en loc.
func (u UnifiedItem) At(loc *time.Location) time.Time {
	if u.Kind == KindCare {
		return u.Care.DueIn(loc)
	}
	return u.Reminder.DateTime
}

// BuildUpcoming arma el feed de la ventana [now, now+windowDays].
//
// Los cuidados se comparan por día (uno que vence hoy sigue incluido aunque
// ya pasó la medianoche); los recordatorios por instante y solo si están
// habilitados. Items cuya mascota no existe se descartan.
func BuildUpcoming(petList []pets.Pet, careList []care.Item, reminderList []reminders.Reminder, now time.Time, windowDays int) []UnifiedItem {
	loc := now.Location()
	today := startOfDay(now)
	careEnd := today.AddDate(0, 0, windowDays)
	reminderEnd := now.Add(time.Duration(windowDays) * 24 * time.Hour)

	known := make(map[string]struct{}, len(petList))
	for _, p := range petList {
		known[p.ID] = struct{}{}
	}

	dueCare := make([]care.Item, 0)
	for _, it := range careList {
		due := it.DueIn(loc)
		if due.Before(today) || due.After(careEnd) {
			continue
		}
		dueCare = append(dueCare, it)
	}
	sort.SliceStable(dueCare, func(i, j int) bool {
		return dueCare[i].DueIn(loc).Before(dueCare[j].DueIn(loc))
	})

	dueReminders := make([]reminders.Reminder, 0)
	for _, r := range reminderList {
		if !r.Enabled {
			continue
		}
		if r.DateTime.Before(now) || r.DateTime.After(reminderEnd) {
			continue
		}
		dueReminders = append(dueReminders, r)
	}
	sort.SliceStable(dueReminders, func(i, j int) bool {
		return dueReminders[i].DateTime.Before(dueReminders[j].DateTime)
	})

	out := make([]UnifiedItem, 0, len(dueCare)+len(dueReminders))
	for i := range dueCare {
		out = append(out, UnifiedItem{Kind: KindCare, Care: &dueCare[i]})
	}
	for i := range dueReminders {
		out = append(out, UnifiedItem{Kind: KindReminder, Reminder: &dueReminders[i]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].At(loc).Before(out[j].At(loc))
	})

	feed := out[:0]
	for _, u := range out {
		if _, ok := known[u.PetID()]; !ok {
			continue
		}
		feed = append(feed, u)
	}
	return feed
}

// ListUpcoming calcula el feed sobre un snapshot del estado actual.
func (s *Store) ListUpcoming(now time.Time, windowDays int) []UnifiedItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return BuildUpcoming(s.petList, s.careList, s.reminderList, now, windowDays)
}

// Upcoming usa la ventana configurada en ese momento.
func (s *Store) Upcoming(now time.Time) []UnifiedItem {
	return s.ListUpcoming(now, s.UpcomingCareDays())
}

// NextCareItemForPet devuelve el cuidado más próximo que no venció
// (comparación por día, sin límite superior).
func (s *Store) NextCareItemForPet(petID string, now time.Time) (care.Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return nextCareItem(s.careList, petID, now)
}

// NextCareItems es NextCareItemForPet para todas las mascotas.
func (s *Store) NextCareItems(now time.Time) map[string]care.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]care.Item, len(s.petList))
	for _, p := range s.petList {
		if it, ok := nextCareItem(s.careList, p.ID, now); ok {
			out[p.ID] = it
		}
	}
	return out
}

func nextCareItem(careList []care.Item, petID string, now time.Time) (care.Item, bool) {
	loc := now.Location()
	today := startOfDay(now)

	var (
		best  care.Item
		found bool
	)
	for _, it := range careList {
		if it.PetID != petID {
			continue
		}
		due := it.DueIn(loc)
		if due.Before(today) {
			continue
		}
		if !found || due.Before(best.DueIn(loc)) {
			best = it
			found = true
		}
	}
	return best, found
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
