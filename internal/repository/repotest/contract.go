// Package repotest holds the behaviour checks shared by every
// repository.ItemRepository backend.
package repotest

import (
	"context"
	"testing"

	"github.com/shinyyama/item-service/internal/model"
	"github.com/shinyyama/item-service/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

// RunItemRepositoryContract exercises the behaviour every backend shares.
// missingID must be well formed for the backend but never assigned.
func RunItemRepositoryContract(t *testing.T, repo repository.ItemRepository, missingID string) {
	ctx := context.Background()

	t.Run("create then find", func(t *testing.T) {
		item := &model.Item{Item: "pants", Description: "new cargo pants in stock", Price: 36}
		require.NoError(t, repo.Create(ctx, item))
		require.NotEmpty(t, item.ID)

		got, err := repo.FindByID(ctx, item.ID)
		require.NoError(t, err)
		assert.Equal(t, item.ID, got.ID)
		assert.Equal(t, "pants", got.Item)
		assert.Equal(t, "new cargo pants in stock", got.Description)
		assert.Equal(t, 36.0, got.Price)
	})

	t.Run("stores text as given", func(t *testing.T) {
		item := &model.Item{Item: "  pants ", Description: "line1\n", Price: -0.125}
		require.NoError(t, repo.Create(ctx, item))

		got, err := repo.FindByID(ctx, item.ID)
		require.NoError(t, err)
		assert.Equal(t, "  pants ", got.Item)
		assert.Equal(t, "line1\n", got.Description)
		assert.Equal(t, -0.125, got.Price)
	})

	t.Run("find missing", func(t *testing.T) {
		_, err := repo.FindByID(ctx, missingID)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("find malformed id", func(t *testing.T) {
		_, err := repo.FindByID(ctx, "not-an-id")
		assert.ErrorIs(t, err, repository.ErrInvalidID)
	})

	t.Run("partial update", func(t *testing.T) {
		item := &model.Item{Item: "shirt", Description: "linen", Price: 20}
		require.NoError(t, repo.Create(ctx, item))

		updated, err := repo.Update(ctx, item.ID, model.ItemPatch{Price: ptr(-2.25)})
		require.NoError(t, err)
		assert.Equal(t, item.ID, updated.ID)
		assert.Equal(t, "shirt", updated.Item)
		assert.Equal(t, "linen", updated.Description)
		assert.Equal(t, -2.25, updated.Price)

		got, err := repo.FindByID(ctx, item.ID)
		require.NoError(t, err)
		assert.Equal(t, -2.25, got.Price)
	})

	t.Run("empty update returns current", func(t *testing.T) {
		item := &model.Item{Item: "hat", Price: 5}
		require.NoError(t, repo.Create(ctx, item))

		got, err := repo.Update(ctx, item.ID, model.ItemPatch{})
		require.NoError(t, err)
		assert.Equal(t, "hat", got.Item)
	})

	t.Run("update missing leaves storage unchanged", func(t *testing.T) {
		before, err := repo.Count(ctx)
		require.NoError(t, err)

		_, err = repo.Update(ctx, missingID, model.ItemPatch{Item: ptr("ghost")})
		assert.ErrorIs(t, err, repository.ErrNotFound)

		after, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("delete then find", func(t *testing.T) {
		item := &model.Item{Item: "socks", Price: 3}
		require.NoError(t, repo.Create(ctx, item))

		deleted, err := repo.Delete(ctx, item.ID)
		require.NoError(t, err)
		assert.Equal(t, "socks", deleted.Item)

		_, err = repo.FindByID(ctx, item.ID)
		assert.ErrorIs(t, err, repository.ErrNotFound)

		_, err = repo.Delete(ctx, item.ID)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("list counts creates minus deletes", func(t *testing.T) {
		start, err := repo.List(ctx)
		require.NoError(t, err)

		var ids []string
		for i := 0; i < 5; i++ {
			item := &model.Item{Item: "bulk", Price: float64(i)}
			require.NoError(t, repo.Create(ctx, item))
			ids = append(ids, item.ID)
		}
		for _, id := range ids[:2] {
			_, err := repo.Delete(ctx, id)
			require.NoError(t, err)
		}

		items, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, items, len(start)+3)

		total, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, len(items), total)
	})
}
