package wardrobe

import "context"

// Repository abstracts wardrobe item persistence.
type Repository interface {
	Create(ctx context.Context, item Item) (Item, error)
	ListByUser(ctx context.Context, userID int64) ([]Item, error)
	GetByID(ctx context.Context, id int64) (Item, bool, error)
	Delete(ctx context.Context, id int64) error
}
