package entitlements

import "time"

// Source indica de dónde sale el estado premium.
type Source string

const (
	SourceNone          Source = "none"
	SourcePurchase      Source = "purchase"
	SourceAdminOverride Source = "admin_override"
	SourceCoupon        Source = "coupon"
)

// Limits son los techos del tier gratuito. No son configurables por usuario.
type Limits struct {
	MaxPets      int
	MaxCareItems int
	MaxReminders int
}

var FreeLimits = Limits{
	MaxPets:      2,
	MaxCareItems: 10,
	MaxReminders: 5,
}

type Status struct {
	Premium   bool
	Source    Source
	CheckedAt *time.Time // última consulta al proveedor de compras
}
