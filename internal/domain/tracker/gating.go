package tracker

import "petcare-tracker/internal/domain/entitlements"

// CanAdd es el predicado del tier: premium no tiene techo.
func CanAdd(count, limit int, premium bool) bool {
	return premium || count < limit
}

func (s *Store) premium() bool {
	return s.ent != nil && s.ent.IsPremium()
}

func (s *Store) limits() entitlements.Limits {
	if s.ent == nil {
		return entitlements.FreeLimits
	}
	return s.ent.Limits()
}

func (s *Store) CanAddPet(count int) bool {
	return CanAdd(count, s.limits().MaxPets, s.premium())
}

func (s *Store) CanAddCareItem(count int) bool {
	return CanAdd(count, s.limits().MaxCareItems, s.premium())
}

func (s *Store) CanAddReminder(count int) bool {
	return CanAdd(count, s.limits().MaxReminders, s.premium())
}

// Capacity es el conteo actual contra el techo de un recurso. La UI lo
// consulta antes de abrir un alta para mostrar el paywall a tiempo.
type Capacity struct {
	Count  int
	Limit  int
	CanAdd bool
}

type Usage struct {
	Premium   bool
	Pets      Capacity
	CareItems Capacity
	Reminders Capacity
}

func (s *Store) Usage() Usage {
	l := s.limits()
	pets, careItems, rems := s.petCount(), s.careCount(), s.reminderCount()
	return Usage{
		Premium:   s.premium(),
		Pets:      Capacity{Count: pets, Limit: l.MaxPets, CanAdd: s.CanAddPet(pets)},
		CareItems: Capacity{Count: careItems, Limit: l.MaxCareItems, CanAdd: s.CanAddCareItem(careItems)},
		Reminders: Capacity{Count: rems, Limit: l.MaxReminders, CanAdd: s.CanAddReminder(rems)},
	}
}

// checkCapacity valida que agregar wanted unidades no supere el techo.
// Para lotes se evalúa el conteo final, no unidad por unidad.
func (s *Store) checkCapacity(res Resource, current, wanted int) error {
	if wanted <= 0 || s.premium() {
		return nil
	}

	var limit int
	l := s.limits()
	switch res {
	case ResourcePets:
		limit = l.MaxPets
	case ResourceCareItems:
		limit = l.MaxCareItems
	case ResourceReminders:
		limit = l.MaxReminders
	}

	// current+wanted-1 es el conteo justo antes de crear la última unidad.
	if !CanAdd(current+wanted-1, limit, false) {
		return &LimitError{Resource: res, Limit: limit, Current: current, Wanted: wanted}
	}
	return nil
}
