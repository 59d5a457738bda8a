package repository_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/shinyyama/item-service/internal/model"
	"github.com/shinyyama/item-service/internal/repository"
	"github.com/shinyyama/item-service/internal/repository/repotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func TestMemoryItemRepository(t *testing.T) {
	repo := repository.NewMemoryItemRepository()
	defer repo.Close(context.Background())

	repotest.RunItemRepositoryContract(t, repo, "5b7f6a2e-1f0c-4c8e-9d0a-2f41c7a6b111")
}

func TestMemoryItemRepositoryListOrder(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryItemRepository()
	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Create(ctx, &model.Item{Item: name}))
	}
	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "a", items[0].Item)
	assert.Equal(t, "c", items[2].Item)
}

func TestMemoryItemRepositoryCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repository.NewMemoryItemRepository().List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNilBackendsAreNotReady(t *testing.T) {
	ctx := context.Background()
	repos := map[string]repository.ItemRepository{
		"gorm":  repository.NewGormItemRepository(nil),
		"mongo": repository.NewMongoItemRepository(nil, "item", "items"),
	}
	for name, repo := range repos {
		t.Run(name, func(t *testing.T) {
			_, err := repo.List(ctx)
			assert.ErrorIs(t, err, repository.ErrDBNotReady)
			assert.ErrorIs(t, repo.Create(ctx, &model.Item{}), repository.ErrDBNotReady)
			assert.NoError(t, repo.Close(ctx))
		})
	}
}

// TestMongoItemRepository runs against a live server when MONGO_TEST_URI is set.
func TestMongoItemRepository(t *testing.T) {
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)

	coll := "items_test_" + primitive.NewObjectID().Hex()
	repo := repository.NewMongoItemRepository(client, "item_test", coll)
	defer func() {
		_ = client.Database("item_test").Collection(coll).Drop(context.Background())
		_ = repo.Close(context.Background())
	}()

	repotest.RunItemRepositoryContract(t, repo, primitive.NewObjectID().Hex())
}
