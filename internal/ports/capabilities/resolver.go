package capabilities

import "context"

// Premium es la capability que habilita el tier sin límites.
const Premium = "premium"

// Resolver responde si el usuario del dispositivo tiene una capability
// (compra activa o restaurada en el proveedor de billing).
type Resolver interface {
	Has(ctx context.Context, capability string) (bool, error)
}
