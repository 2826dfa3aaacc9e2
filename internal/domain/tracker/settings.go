package tracker

import (
	"context"
	"fmt"

	"petcare-tracker/internal/domain/settings"
	"petcare-tracker/internal/platform/logger"
)

// SetUpcomingCareDays cambia la ventana del feed; solo acepta 7, 14, 30 o 60.
func (s *Store) SetUpcomingCareDays(ctx context.Context, days int) error {
	if !settings.ValidUpcomingCareDays(days) {
		return fmt.Errorf("%w: upcoming care days must be one of %v", ErrInvalidInput, settings.AllowedUpcomingCareDays)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.settingsRepo.SaveUpcomingCareDays(ctx, days); err != nil {
		return fmt.Errorf("save upcoming care days: %w", err)
	}

	s.mu.Lock()
	s.upcomingDays = days
	s.mu.Unlock()

	s.log.Info("upcoming care days updated", logger.Fields{"days": days})
	return nil
}
