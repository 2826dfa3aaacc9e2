package care

import "context"

type Repository interface {
	List(ctx context.Context) ([]Item, error)
	Create(ctx context.Context, it Item) error
	Update(ctx context.Context, it Item) error
	Delete(ctx context.Context, id string) error

	// DeleteByPet borra todos los items de la mascota y devuelve cuántos eran.
	DeleteByPet(ctx context.Context, petID string) (int, error)
}
