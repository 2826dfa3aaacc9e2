package tracker

import (
	"context"
	"errors"
	"fmt"

	"petcare-tracker/internal/domain/care"
	"petcare-tracker/internal/domain/pets"
	"petcare-tracker/internal/domain/reminders"
	"petcare-tracker/internal/platform/logger"

	"golang.org/x/sync/errgroup"
)

func (s *Store) AddPet(ctx context.Context, in pets.CreateInput) (pets.Pet, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.checkCapacity(ResourcePets, s.petCount(), 1); err != nil {
		return pets.Pet{}, err
	}
	return s.createPetLocked(ctx, s.newID(), in)
}

func (s *Store) createPetLocked(ctx context.Context, id string, in pets.CreateInput) (pets.Pet, error) {
	p, err := pets.New(id, s.now(), in)
	if err != nil {
		return pets.Pet{}, invalid(err)
	}

	if err := s.petRepo.Create(ctx, p); err != nil {
		return pets.Pet{}, fmt.Errorf("save pet: %w", err)
	}

	s.mu.Lock()
	s.petList = append(s.petList, p)
	s.mu.Unlock()

	s.log.Info("pet created", logger.Fields{"pet_id": p.ID})
	return p, nil
}

// AddPetWithCareItems es el alta del onboarding: la mascota primero y
// luego sus cuidados en paralelo. No hay rollback: si un cuidado falla,
// los demás quedan guardados y se devuelve el primer error.
func (s *Store) AddPetWithCareItems(ctx context.Context, in pets.CreateInput, items []care.CreateInput) (pets.Pet, []care.Item, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.checkCapacity(ResourcePets, s.petCount(), 1); err != nil {
		return pets.Pet{}, nil, err
	}
	if err := s.checkCapacity(ResourceCareItems, s.careCount(), len(items)); err != nil {
		return pets.Pet{}, nil, err
	}

	// Validar todo antes de escribir nada.
	petID := s.newID()
	now := s.now()
	drafts := make([]care.Item, 0, len(items))
	for _, ci := range items {
		ci.PetID = petID
		it, err := care.New(s.newID(), now, ci)
		if err != nil {
			return pets.Pet{}, nil, invalid(err)
		}
		drafts = append(drafts, it)
	}

	p, err := s.createPetLocked(ctx, petID, in)
	if err != nil {
		return pets.Pet{}, nil, err
	}

	created := make([]*care.Item, len(drafts))
	var g errgroup.Group
	for i := range drafts {
		i, it := i, drafts[i]
		g.Go(func() error {
			if err := s.careRepo.Create(ctx, it); err != nil {
				return fmt.Errorf("save care item: %w", err)
			}
			created[i] = &it
			return nil
		})
	}
	batchErr := g.Wait()

	out := make([]care.Item, 0, len(created))
	for _, it := range created {
		if it != nil {
			out = append(out, *it)
		}
	}

	s.mu.Lock()
	s.careList = append(s.careList, out...)
	s.mu.Unlock()

	if batchErr != nil {
		s.log.Warn("onboarding care items partially saved", logger.Fields{
			"pet_id": p.ID, "saved": len(out), "wanted": len(drafts), "err": batchErr,
		})
	}
	return p, out, batchErr
}

// UpdatePet devuelve ok=false si la mascota no existe (ni en memoria ni en el repo).
func (s *Store) UpdatePet(ctx context.Context, id string, in pets.UpdateInput) (pets.Pet, bool, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	cur, ok := s.Pet(id)
	if !ok {
		return pets.Pet{}, false, nil
	}

	next, err := cur.Apply(in, s.now())
	if err != nil {
		return pets.Pet{}, false, invalid(err)
	}

	if err := s.petRepo.Update(ctx, next); err != nil {
		if errors.Is(err, pets.ErrNotFound) {
			return pets.Pet{}, false, nil
		}
		return pets.Pet{}, false, fmt.Errorf("update pet: %w", err)
	}

	s.mu.Lock()
	for i := range s.petList {
		if s.petList[i].ID == id {
			s.petList[i] = next
			break
		}
	}
	s.mu.Unlock()

	return next, true, nil
}

// DeletePet borra la mascota y en cascada sus cuidados y recordatorios.
// La foto se borra best-effort; los handles de notificación vivos se
// cancelan antes de borrar los recordatorios.
func (s *Store) DeletePet(ctx context.Context, id string) (bool, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	cur, ok := s.Pet(id)
	if !ok {
		return false, nil
	}
	log := s.log.With(logger.Fields{"pet_id": id})

	if cur.PhotoRef != "" && s.photos != nil {
		if err := s.photos.DeleteIfExists(ctx, cur.PhotoRef); err != nil {
			log.Warn("photo delete failed", logger.Fields{"err": err})
		}
	}

	if err := s.petRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, pets.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("delete pet: %w", err)
	}

	s.mu.Lock()
	s.petList = removeWhere(s.petList, func(p pets.Pet) bool { return p.ID == id })
	owned := make([]string, 0)
	for _, r := range s.reminderList {
		if r.PetID == id && r.NotificationID != "" {
			owned = append(owned, r.NotificationID)
		}
	}
	s.mu.Unlock()

	for _, h := range owned {
		s.cancelNotification(ctx, h)
	}
	// Los handles ya no sirven aunque falle la cascada: la mascota no existe
	// y sus recordatorios no deben volver a sonar.
	s.mu.Lock()
	for i := range s.reminderList {
		if s.reminderList[i].PetID == id {
			s.reminderList[i].NotificationID = ""
		}
	}
	s.mu.Unlock()

	n, err := s.careRepo.DeleteByPet(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete care items of pet: %w", err)
	}
	s.mu.Lock()
	s.careList = removeWhere(s.careList, func(it care.Item) bool { return it.PetID == id })
	s.mu.Unlock()

	m, err := s.reminderRepo.DeleteByPet(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete reminders of pet: %w", err)
	}
	s.mu.Lock()
	s.reminderList = removeWhere(s.reminderList, func(r reminders.Reminder) bool { return r.PetID == id })
	s.mu.Unlock()

	log.Info("pet deleted", logger.Fields{"care_items": n, "reminders": m})
	return true, nil
}

func (s *Store) petCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.petList)
}

func removeWhere[T any](in []T, drop func(T) bool) []T {
	out := in[:0]
	for _, v := range in {
		if drop(v) {
			continue
		}
		out = append(out, v)
	}
	// limpiar la cola para no retener valores
	clear(in[len(out):])
	return out
}
