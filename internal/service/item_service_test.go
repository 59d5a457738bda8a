package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shinyyama/item-service/internal/model"
	"github.com/shinyyama/item-service/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// slowRepo blocks every call until the context is done.
type slowRepo struct {
	repository.ItemRepository
}

func (slowRepo) List(ctx context.Context) ([]model.Item, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

type brokenRepo struct {
	repository.ItemRepository
	err error
}

func (r brokenRepo) FindByID(context.Context, string) (*model.Item, error) {
	return nil, r.err
}

func TestItemServiceRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := NewItemService(repository.NewMemoryItemRepository(), time.Second)

	created, err := svc.Create(ctx, "  pants ", "new cargo pants in stock\n", 36)
	require.NoError(t, err)
	assert.Equal(t, "  pants ", created.Item)
	assert.Equal(t, "new cargo pants in stock\n", created.Description)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	name := " shorts "
	updated, err := svc.Update(ctx, created.ID, model.ItemPatch{Item: &name})
	require.NoError(t, err)
	assert.Equal(t, " shorts ", updated.Item)
	assert.Equal(t, 36.0, updated.Price)

	deleted, err := svc.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, " shorts ", deleted.Item)

	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestItemServiceClassifiesErrors(t *testing.T) {
	backendErr := errors.New("connection reset")
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"not found", repository.ErrNotFound, ErrNotFound},
		{"invalid id", repository.ErrInvalidID, ErrInvalidID},
		{"backend", backendErr, backendErr},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewItemService(brokenRepo{err: tt.err}, time.Second)
			_, err := svc.Get(context.Background(), "x")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestItemServiceTimeout(t *testing.T) {
	svc := NewItemService(slowRepo{}, 20*time.Millisecond)

	_, err := svc.List(context.Background())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
