package entitlements

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"petcare-tracker/internal/platform/logger"
	"petcare-tracker/internal/ports/capabilities"
)

var (
	ErrInvalidCoupon = errors.New("invalid coupon code")
	ErrNoResolver    = errors.New("purchase resolver not configured")
)

// RedemptionStore guarda el canje de cupón para que sobreviva reinicios.
// Las compras no se guardan: Refresh las vuelve a consultar.
type RedemptionStore interface {
	GetCouponRedeemed(ctx context.Context) (bool, error)
	SaveCouponRedeemed(ctx context.Context, redeemed bool) error
}

type Options struct {
	AdminOverride bool
	CouponCodes   []string
	Logger        logger.Logger

	// Opcional: sin store el canje solo vive en memoria.
	Redemptions RedemptionStore
}

// Service mantiene el estado premium en memoria. IsPremium es síncrono:
// el core lo consulta antes de cada creación sin tocar la red.
type Service struct {
	resolver    capabilities.Resolver
	redemptions RedemptionStore
	coupons     map[string]struct{}
	log      logger.Logger
	now      func() time.Time

	mu        sync.RWMutex
	purchased bool
	override  bool
	redeemed  bool
	checkedAt *time.Time
}

func NewService(resolver capabilities.Resolver, opts Options) *Service {
	coupons := make(map[string]struct{}, len(opts.CouponCodes))
	for _, c := range opts.CouponCodes {
		c = normalizeCode(c)
		if c == "" {
			continue
		}
		coupons[c] = struct{}{}
	}

	return &Service{
		resolver:    resolver,
		redemptions: opts.Redemptions,
		coupons:     coupons,
		log:      logger.OrNop(opts.Logger).With(logger.Fields{"component": "entitlements"}),
		now:      time.Now,
		override: opts.AdminOverride,
	}
}

func (s *Service) IsPremium() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.override || s.purchased || s.redeemed
}

func (s *Service) Limits() Limits {
	return FreeLimits
}

func (s *Service) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.statusLocked()
}

// Refresh consulta al proveedor de compras (compra o restore).
// Si falla, se conserva el último estado conocido.
func (s *Service) Refresh(ctx context.Context) (Status, error) {
	if s.resolver == nil {
		return s.Status(), ErrNoResolver
	}

	ok, err := s.resolver.Has(ctx, capabilities.Premium)
	if err != nil {
		s.log.Warn("premium lookup failed", logger.Fields{"err": err})
		return s.Status(), err
	}

	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.purchased = ok
	s.checkedAt = &now
	return s.statusLocked(), nil
}

// Restore carga un canje de cupón guardado en una sesión anterior.
func (s *Service) Restore(ctx context.Context) (Status, error) {
	if s.redemptions == nil {
		return s.Status(), nil
	}

	ok, err := s.redemptions.GetCouponRedeemed(ctx)
	if err != nil {
		return s.Status(), fmt.Errorf("load coupon redemption: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.redeemed = s.redeemed || ok
	return s.statusLocked(), nil
}

// Redeem activa premium con un cupón válido. Idempotente.
// Primero persiste; si falla, el estado no cambia.
func (s *Service) Redeem(ctx context.Context, code string) (Status, error) {
	code = normalizeCode(code)
	if _, ok := s.coupons[code]; !ok || code == "" {
		return s.Status(), ErrInvalidCoupon
	}

	if s.redemptions != nil {
		if err := s.redemptions.SaveCouponRedeemed(ctx, true); err != nil {
			return s.Status(), fmt.Errorf("save coupon redemption: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.redeemed = true
	s.log.Info("coupon redeemed", nil)
	return s.statusLocked(), nil
}

func (s *Service) SetAdminOverride(on bool) Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.override = on
	return s.statusLocked()
}

func (s *Service) statusLocked() Status {
	st := Status{Source: SourceNone, CheckedAt: s.checkedAt}
	switch {
	case s.override:
		st.Premium, st.Source = true, SourceAdminOverride
	case s.purchased:
		st.Premium, st.Source = true, SourcePurchase
	case s.redeemed:
		st.Premium, st.Source = true, SourceCoupon
	}
	return st
}

func normalizeCode(c string) string {
	return strings.ToUpper(strings.TrimSpace(c))
}
