package tracker

import (
	"context"
	"errors"
	"fmt"

	"petcare-tracker/internal/domain/reminders"
	"petcare-tracker/internal/platform/logger"
	"petcare-tracker/internal/ports/notifications"

	"golang.org/x/sync/errgroup"
)

func (s *Store) AddReminder(ctx context.Context, in reminders.CreateInput) (reminders.Reminder, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.checkCapacity(ResourceReminders, s.reminderCount(), 1); err != nil {
		return reminders.Reminder{}, err
	}
	if !s.hasPet(in.PetID) {
		return reminders.Reminder{}, fmt.Errorf("%w: %s", ErrPetNotFound, in.PetID)
	}

	r, err := reminders.New(s.newID(), s.now(), in)
	if err != nil {
		return reminders.Reminder{}, invalid(err)
	}

	r, err = s.persistNewReminder(ctx, r)
	if err != nil {
		return reminders.Reminder{}, err
	}

	s.mu.Lock()
	s.reminderList = append(s.reminderList, r)
	s.mu.Unlock()

	s.log.Info("reminder created", logger.Fields{"reminder_id": r.ID, "pet_id": r.PetID, "scheduled": r.NotificationID != ""})
	return r, nil
}

// AddReminderForPets crea un recordatorio igual por cada mascota, todos en
// paralelo. Sin rollback: devuelve los creados y el primer error.
func (s *Store) AddReminderForPets(ctx context.Context, petIDs []string, in reminders.CreateInput) ([]reminders.Reminder, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if len(petIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one pet required", ErrInvalidInput)
	}
	if err := s.checkCapacity(ResourceReminders, s.reminderCount(), len(petIDs)); err != nil {
		return nil, err
	}

	now := s.now()
	drafts := make([]reminders.Reminder, 0, len(petIDs))
	for _, petID := range petIDs {
		if !s.hasPet(petID) {
			return nil, fmt.Errorf("%w: %s", ErrPetNotFound, petID)
		}
		ri := in
		ri.PetID = petID
		r, err := reminders.New(s.newID(), now, ri)
		if err != nil {
			return nil, invalid(err)
		}
		drafts = append(drafts, r)
	}

	created := make([]*reminders.Reminder, len(drafts))
	var g errgroup.Group
	for i := range drafts {
		i, r := i, drafts[i]
		g.Go(func() error {
			saved, err := s.persistNewReminder(ctx, r)
			if err != nil {
				return err
			}
			created[i] = &saved
			return nil
		})
	}
	batchErr := g.Wait()

	out := make([]reminders.Reminder, 0, len(created))
	for _, r := range created {
		if r != nil {
			out = append(out, *r)
		}
	}

	s.mu.Lock()
	s.reminderList = append(s.reminderList, out...)
	s.mu.Unlock()

	if batchErr != nil {
		s.log.Warn("batch reminders partially saved", logger.Fields{
			"saved": len(out), "wanted": len(drafts), "err": batchErr,
		})
	}
	return out, batchErr
}

// persistNewReminder pide el handle y guarda. Si el guardado falla se
// cancela el handle recién pedido.
func (s *Store) persistNewReminder(ctx context.Context, r reminders.Reminder) (reminders.Reminder, error) {
	r.NotificationID = s.scheduleNotification(ctx, r)
	if err := s.reminderRepo.Create(ctx, r); err != nil {
		s.cancelNotification(ctx, r.NotificationID)
		return reminders.Reminder{}, fmt.Errorf("save reminder: %w", err)
	}
	return r, nil
}

func (s *Store) UpdateReminder(ctx context.Context, id string, in reminders.UpdateInput) (reminders.Reminder, bool, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.updateReminderLocked(ctx, id, in)
}

// ToggleReminder invierte Enabled por el mismo camino que UpdateReminder.
func (s *Store) ToggleReminder(ctx context.Context, id string) (reminders.Reminder, bool, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	cur, ok := s.reminder(id)
	if !ok {
		return reminders.Reminder{}, false, nil
	}
	enabled := !cur.Enabled
	return s.updateReminderLocked(ctx, id, reminders.UpdateInput{Enabled: &enabled})
}

func (s *Store) updateReminderLocked(ctx context.Context, id string, in reminders.UpdateInput) (reminders.Reminder, bool, error) {
	cur, ok := s.reminder(id)
	if !ok {
		return reminders.Reminder{}, false, nil
	}

	next, err := cur.Apply(in, s.now())
	if err != nil {
		return reminders.Reminder{}, false, invalid(err)
	}

	// El handle anterior se cancela siempre; si queda habilitado se pide otro.
	s.cancelNotification(ctx, cur.NotificationID)
	next.NotificationID = ""
	if next.Enabled {
		next.NotificationID = s.scheduleNotification(ctx, next)
	}

	if err := s.reminderRepo.Update(ctx, next); err != nil {
		s.cancelNotification(ctx, next.NotificationID)
		s.rearm(ctx, cur)
		if errors.Is(err, reminders.ErrNotFound) {
			return reminders.Reminder{}, false, nil
		}
		return reminders.Reminder{}, false, fmt.Errorf("update reminder: %w", err)
	}

	s.replaceReminder(next)
	return next, true, nil
}

func (s *Store) DeleteReminder(ctx context.Context, id string) (bool, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	cur, ok := s.reminder(id)
	if !ok {
		return false, nil
	}

	s.cancelNotification(ctx, cur.NotificationID)

	if err := s.reminderRepo.Delete(ctx, id); err != nil {
		s.rearm(ctx, cur)
		if errors.Is(err, reminders.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("delete reminder: %w", err)
	}

	s.mu.Lock()
	s.reminderList = removeWhere(s.reminderList, func(r reminders.Reminder) bool { return r.ID == id })
	s.mu.Unlock()

	return true, nil
}

// RestoreNotifications vuelve a pedir handles para los recordatorios
// habilitados y futuros. El scheduler en proceso pierde sus timers al
// reiniciar, así que los handles guardados ya no sirven.
func (s *Store) RestoreNotifications(ctx context.Context) (int, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if s.notifier == nil {
		return 0, nil
	}

	now := s.now()
	var (
		restored int
		firstErr error
	)
	for _, cur := range s.Reminders() {
		if !cur.Enabled || !cur.DateTime.After(now) {
			continue
		}

		s.cancelNotification(ctx, cur.NotificationID)
		next := cur
		next.NotificationID = s.scheduleNotification(ctx, cur)
		if next.NotificationID == "" && cur.NotificationID == "" {
			continue
		}

		if err := s.reminderRepo.Update(ctx, next); err != nil {
			s.cancelNotification(ctx, next.NotificationID)
			s.log.Warn("restore notification failed", logger.Fields{"reminder_id": cur.ID, "err": err})
			if firstErr == nil {
				firstErr = fmt.Errorf("restore reminder %s: %w", cur.ID, err)
			}
			continue
		}
		s.replaceReminder(next)
		restored++
	}

	s.log.Info("notifications restored", logger.Fields{"count": restored})
	return restored, firstErr
}

// rearm vuelve a programar cur después de una escritura fallida: su handle
// ya se canceló y el recordatorio queda como estaba, así que pide uno nuevo.
// El repo puede seguir guardando el handle viejo; RestoreNotifications lo
// reemplaza al arrancar.
func (s *Store) rearm(ctx context.Context, cur reminders.Reminder) {
	if cur.NotificationID == "" {
		return
	}
	cur.NotificationID = s.scheduleNotification(ctx, cur)
	s.replaceReminder(cur)
	s.log.Warn("reminder write failed, notification rescheduled", logger.Fields{
		"reminder_id": cur.ID, "scheduled": cur.NotificationID != "",
	})
}

// scheduleNotification devuelve "" si no hay que programar o si falla.
func (s *Store) scheduleNotification(ctx context.Context, r reminders.Reminder) string {
	if s.notifier == nil || !r.Enabled || !r.DateTime.After(s.now()) {
		return ""
	}
	h, err := s.notifier.Schedule(ctx, toNotification(r))
	if err != nil {
		s.log.Warn("schedule notification failed", logger.Fields{"reminder_id": r.ID, "err": err})
		return ""
	}
	return h
}

func (s *Store) cancelNotification(ctx context.Context, handle string) {
	if s.notifier == nil || handle == "" {
		return
	}
	if err := s.notifier.Cancel(ctx, handle); err != nil {
		s.log.Warn("cancel notification failed", logger.Fields{"handle": handle, "err": err})
	}
}

func toNotification(r reminders.Reminder) notifications.Notification {
	return notifications.Notification{
		ReminderID: r.ID,
		PetID:      r.PetID,
		Title:      r.Title,
		Message:    r.Message,
		FireAt:     r.DateTime,
		Repeat:     string(r.Repeat),
	}
}

func (s *Store) replaceReminder(r reminders.Reminder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.reminderList {
		if s.reminderList[i].ID == r.ID {
			s.reminderList[i] = r
			return
		}
	}
}

func (s *Store) reminder(id string) (reminders.Reminder, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.reminderList {
		if r.ID == id {
			return r, true
		}
	}
	return reminders.Reminder{}, false
}

func (s *Store) reminderCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.reminderList)
}
