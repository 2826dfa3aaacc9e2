package pets

import "context"

// Repository es la copia durable de las mascotas.
// Update y Delete devuelven ErrNotFound si el id no existe.
type Repository interface {
	List(ctx context.Context) ([]Pet, error)
	GetByID(ctx context.Context, id string) (Pet, error)
	Create(ctx context.Context, p Pet) error
	Update(ctx context.Context, p Pet) error
	Delete(ctx context.Context, id string) error
}
