package main

import (
	"context"
	"testing"

	"github.com/shinyyama/item-service/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeed(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryItemRepository()
	items := buildSeedItems()

	n, err := seed(ctx, repo, items, false)
	require.NoError(t, err)
	assert.Equal(t, len(items), n)
	assert.Equal(t, "pants", items[0].Item)
	assert.Equal(t, 36.0, items[0].Price)

	n, err = seed(ctx, repo, buildSeedItems(), false)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = seed(ctx, repo, buildSeedItems(), true)
	require.NoError(t, err)
	assert.Equal(t, len(items), n)

	total, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2*len(items), total)
}
