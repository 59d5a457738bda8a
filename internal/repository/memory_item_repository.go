package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shinyyama/item-service/internal/model"
)

type memoryItemRepository struct {
	mu    sync.RWMutex
	items map[string]model.Item
	order []string
	now   func() time.Time
}

// NewMemoryItemRepository keeps items in process memory, keyed by UUID.
// Listing returns insertion order.
func NewMemoryItemRepository() ItemRepository {
	return &memoryItemRepository{
		items: make(map[string]model.Item),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func checkUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}

func (r *memoryItemRepository) Create(ctx context.Context, item *model.Item) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	stored := model.Item{
		ID:          uuid.NewString(),
		Item:        item.Item,
		Description: item.Description,
		Price:       item.Price,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.items[stored.ID] = stored
	r.order = append(r.order, stored.ID)
	*item = stored
	return nil
}

func (r *memoryItemRepository) FindByID(ctx context.Context, id string) (*model.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := checkUUID(id); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &item, nil
}

func (r *memoryItemRepository) List(ctx context.Context) ([]model.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]model.Item, 0, len(r.order))
	for _, id := range r.order {
		items = append(items, r.items[id])
	}
	return items, nil
}

func (r *memoryItemRepository) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.items)), nil
}

func (r *memoryItemRepository) Update(ctx context.Context, id string, patch model.ItemPatch) (*model.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := checkUUID(id); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	if !patch.IsEmpty() {
		patch.Apply(&item)
		item.UpdatedAt = r.now()
		r.items[id] = item
	}
	return &item, nil
}

func (r *memoryItemRepository) Delete(ctx context.Context, id string) (*model.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := checkUUID(id); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	delete(r.items, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return &item, nil
}

func (r *memoryItemRepository) Close(context.Context) error {
	return nil
}
