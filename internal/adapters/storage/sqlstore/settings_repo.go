package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"petcare-tracker/internal/domain/settings"

	"github.com/jmoiron/sqlx"
)

const (
	keyUpcomingCareDays = "upcoming_care_days"
	keyCouponRedeemed   = "coupon_redeemed"
)

// SettingsRepo guarda escalares como pares clave/valor de texto.
type SettingsRepo struct {
	db *sqlx.DB
}

func NewSettingsRepo(db *sqlx.DB) *SettingsRepo {
	return &SettingsRepo{db: db}
}

func (r *SettingsRepo) GetUpcomingCareDays(ctx context.Context) (int, error) {
	var v string
	err := r.db.GetContext(ctx, &v, r.db.Rebind(`SELECT value FROM settings WHERE key = ?`), keyUpcomingCareDays)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, settings.ErrNotFound
	}
	if err != nil {
		return 0, err
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", keyUpcomingCareDays, err)
	}
	return n, nil
}

func (r *SettingsRepo) SaveUpcomingCareDays(ctx context.Context, days int) error {
	return r.put(ctx, keyUpcomingCareDays, strconv.Itoa(days))
}

func (r *SettingsRepo) GetCouponRedeemed(ctx context.Context) (bool, error) {
	var v string
	err := r.db.GetContext(ctx, &v, r.db.Rebind(`SELECT value FROM settings WHERE key = ?`), keyCouponRedeemed)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", keyCouponRedeemed, err)
	}
	return b, nil
}

func (r *SettingsRepo) SaveCouponRedeemed(ctx context.Context, redeemed bool) error {
	return r.put(ctx, keyCouponRedeemed, strconv.FormatBool(redeemed))
}

func (r *SettingsRepo) put(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value
	`), key, value)
	return err
}
