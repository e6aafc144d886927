package record

import "context"

// Repository defines the contract for book record storage.
type Repository interface {
	List(ctx context.Context) ([]Book, error)
	Create(ctx context.Context, b Book) (Book, error)
	Update(ctx context.Context, id string, patch Payload) (Book, error)
	Delete(ctx context.Context, id string) error
}
