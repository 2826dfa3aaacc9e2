package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"petcare-tracker/internal/domain/care"
)

type careRepo struct {
	mu   sync.RWMutex
	byID map[string]care.Item
}

func NewCareRepo() care.Repository {
	return &careRepo{
		byID: make(map[string]care.Item),
	}
}

func (r *careRepo) Create(ctx context.Context, it care.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if it.ID == "" {
		return errors.New("care item id required")
	}
	if _, exists := r.byID[it.ID]; exists {
		return ErrAlreadyExists
	}
	r.byID[it.ID] = it
	return nil
}

func (r *careRepo) Update(ctx context.Context, it care.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[it.ID]; !exists {
		return care.ErrNotFound
	}
	r.byID[it.ID] = it
	return nil
}

func (r *careRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return care.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *careRepo) DeleteByPet(ctx context.Context, petID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for id, it := range r.byID {
		if it.PetID == petID {
			delete(r.byID, id)
			n++
		}
	}
	return n, nil
}

func (r *careRepo) List(ctx context.Context) ([]care.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]care.Item, 0, len(r.byID))
	for _, it := range r.byID {
		out = append(out, it)
	}

	// Orden por fecha de vencimiento, luego created_at.
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DueDate.Equal(out[j].DueDate) {
			return out[i].DueDate.Before(out[j].DueDate)
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}
