package tracker

import (
	"context"
	"errors"
	"fmt"

	"petcare-tracker/internal/domain/care"
	"petcare-tracker/internal/platform/logger"
)

// AddCareItem valida techo y que la mascota exista antes de persistir.
func (s *Store) AddCareItem(ctx context.Context, in care.CreateInput) (care.Item, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.checkCapacity(ResourceCareItems, s.careCount(), 1); err != nil {
		return care.Item{}, err
	}
	if !s.hasPet(in.PetID) {
		return care.Item{}, fmt.Errorf("%w: %s", ErrPetNotFound, in.PetID)
	}

	it, err := care.New(s.newID(), s.now(), in)
	if err != nil {
		return care.Item{}, invalid(err)
	}

	if err := s.careRepo.Create(ctx, it); err != nil {
		return care.Item{}, fmt.Errorf("save care item: %w", err)
	}

	s.mu.Lock()
	s.careList = append(s.careList, it)
	s.mu.Unlock()

	s.log.Info("care item created", logger.Fields{"care_item_id": it.ID, "pet_id": it.PetID})
	return it, nil
}

func (s *Store) UpdateCareItem(ctx context.Context, id string, in care.UpdateInput) (care.Item, bool, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	cur, ok := s.careItem(id)
	if !ok {
		return care.Item{}, false, nil
	}

	next, err := cur.Apply(in, s.now())
	if err != nil {
		return care.Item{}, false, invalid(err)
	}

	if err := s.careRepo.Update(ctx, next); err != nil {
		if errors.Is(err, care.ErrNotFound) {
			return care.Item{}, false, nil
		}
		return care.Item{}, false, fmt.Errorf("update care item: %w", err)
	}

	s.mu.Lock()
	for i := range s.careList {
		if s.careList[i].ID == id {
			s.careList[i] = next
			break
		}
	}
	s.mu.Unlock()

	return next, true, nil
}

func (s *Store) DeleteCareItem(ctx context.Context, id string) (bool, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if _, ok := s.careItem(id); !ok {
		return false, nil
	}

	if err := s.careRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, care.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("delete care item: %w", err)
	}

	s.mu.Lock()
	s.careList = removeWhere(s.careList, func(it care.Item) bool { return it.ID == id })
	s.mu.Unlock()

	return true, nil
}

func (s *Store) careItem(id string) (care.Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, it := range s.careList {
		if it.ID == id {
			return it, true
		}
	}
	return care.Item{}, false
}

func (s *Store) careCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.careList)
}
