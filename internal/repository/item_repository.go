package repository

import (
	"context"
	"errors"

	"github.com/shinyyama/item-service/internal/model"
)

// ItemRepository is the storage collaborator behind the item routes. Each
// backend assigns ids in its own format and rejects malformed ones with
// ErrInvalidID.
type ItemRepository interface {
	Create(ctx context.Context, item *model.Item) error
	FindByID(ctx context.Context, id string) (*model.Item, error)
	List(ctx context.Context) ([]model.Item, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, id string, patch model.ItemPatch) (*model.Item, error)
	Delete(ctx context.Context, id string) (*model.Item, error)
	Close(ctx context.Context) error
}

var (
	ErrDBNotReady = errors.New("database not initialized")
	ErrNotFound   = errors.New("item not found")
	ErrInvalidID  = errors.New("invalid item id")
)
