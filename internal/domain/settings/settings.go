package settings

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("setting not found")

// DefaultUpcomingCareDays es la ventana del feed si nunca se configuró.
const DefaultUpcomingCareDays = 14

// AllowedUpcomingCareDays son los únicos tamaños de ventana aceptados.
var AllowedUpcomingCareDays = []int{7, 14, 30, 60}

func ValidUpcomingCareDays(n int) bool {
	for _, v := range AllowedUpcomingCareDays {
		if v == n {
			return true
		}
	}
	return false
}

// Repository guarda los escalares de configuración.
// GetUpcomingCareDays devuelve ErrNotFound si nunca se guardó.
// GetCouponRedeemed devuelve false sin error si nunca se canjeó.
type Repository interface {
	GetUpcomingCareDays(ctx context.Context) (int, error)
	SaveUpcomingCareDays(ctx context.Context, days int) error

	GetCouponRedeemed(ctx context.Context) (bool, error)
	SaveCouponRedeemed(ctx context.Context, redeemed bool) error
}
