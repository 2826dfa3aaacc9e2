package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"petcare-tracker/internal/domain/reminders"
)

type reminderRepo struct {
	mu   sync.RWMutex
	byID map[string]reminders.Reminder
}

func NewReminderRepo() reminders.Repository {
	return &reminderRepo{
		byID: make(map[string]reminders.Reminder),
	}
}

func (r *reminderRepo) Create(ctx context.Context, rem reminders.Reminder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rem.ID == "" {
		return errors.New("reminder id required")
	}
	if _, exists := r.byID[rem.ID]; exists {
		return ErrAlreadyExists
	}
	r.byID[rem.ID] = rem
	return nil
}

func (r *reminderRepo) Update(ctx context.Context, rem reminders.Reminder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[rem.ID]; !exists {
		return reminders.ErrNotFound
	}
	r.byID[rem.ID] = rem
	return nil
}

func (r *reminderRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return reminders.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *reminderRepo) DeleteByPet(ctx context.Context, petID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for id, rem := range r.byID {
		if rem.PetID == petID {
			delete(r.byID, id)
			n++
		}
	}
	return n, nil
}

func (r *reminderRepo) List(ctx context.Context) ([]reminders.Reminder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]reminders.Reminder, 0, len(r.byID))
	for _, rem := range r.byID {
		out = append(out, rem)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].DateTime.Equal(out[j].DateTime) {
			return out[i].DateTime.Before(out[j].DateTime)
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}
