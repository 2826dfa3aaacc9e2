package reminders

import "context"

type Repository interface {
	List(ctx context.Context) ([]Reminder, error)
	Create(ctx context.Context, r Reminder) error
	Update(ctx context.Context, r Reminder) error
	Delete(ctx context.Context, id string) error
	DeleteByPet(ctx context.Context, petID string) (int, error)
}
