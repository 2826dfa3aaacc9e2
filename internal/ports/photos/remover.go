package photos

import "context"

// Remover borra el archivo de foto referenciado. Si no existe, no es error.
type Remover interface {
	DeleteIfExists(ctx context.Context, ref string) error
}
