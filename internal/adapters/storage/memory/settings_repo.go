package memory

import (
	"context"
	"sync"

	"petcare-tracker/internal/domain/settings"
)

type settingsRepo struct {
	mu   sync.RWMutex
	days     int // 0 = nunca guardado
	redeemed bool
}

func NewSettingsRepo() settings.Repository {
	return &settingsRepo{}
}

func (r *settingsRepo) GetUpcomingCareDays(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.days == 0 {
		return 0, settings.ErrNotFound
	}
	return r.days, nil
}

func (r *settingsRepo) SaveUpcomingCareDays(ctx context.Context, days int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.days = days
	return nil
}

func (r *settingsRepo) GetCouponRedeemed(ctx context.Context) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.redeemed, nil
}

func (r *settingsRepo) SaveCouponRedeemed(ctx context.Context, redeemed bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.redeemed = redeemed
	return nil
}
