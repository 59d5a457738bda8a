package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shinyyama/item-service/internal/config"
	"github.com/shinyyama/item-service/internal/db"
	"github.com/shinyyama/item-service/internal/model"
	"github.com/shinyyama/item-service/internal/repository"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}

func run() error {
	ctx := context.Background()
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	repo, err := db.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer repo.Close(ctx)

	n, err := seed(ctx, repo, buildSeedItems(), strings.EqualFold(os.Getenv("FORCE_SEED"), "true"))
	if err != nil {
		return err
	}
	if n == 0 {
		log.Printf("items already exist; skipping seed (set FORCE_SEED=true to override)")
		return nil
	}
	log.Printf("seeded %d items", n)
	return nil
}

func buildSeedItems() []model.Item {
	type line struct {
		Names []string
		Base  float64
		Kind  string
	}
	lines := []line{
		{Kind: "trousers", Base: 36, Names: []string{"pants", "chinos", "joggers"}},
		{Kind: "tops", Base: 18, Names: []string{"t-shirt", "hoodie", "polo"}},
		{Kind: "shoes", Base: 55, Names: []string{"sneakers", "boots"}},
	}

	var items []model.Item
	for _, l := range lines {
		for i, name := range l.Names {
			items = append(items, model.Item{
				Item:        name,
				Description: fmt.Sprintf("new %s in stock (%s)", name, l.Kind),
				Price:       l.Base + float64(i*4),
			})
		}
	}
	return items
}

// seed inserts items unless the collection already holds records and force is
// false. It returns how many were inserted.
func seed(ctx context.Context, repo repository.ItemRepository, items []model.Item, force bool) (int, error) {
	cnt, err := repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	if cnt > 0 && !force {
		return 0, nil
	}
	for i := range items {
		if err := repo.Create(ctx, &items[i]); err != nil {
			return i, fmt.Errorf("insert item %q: %w", items[i].Item, err)
		}
	}
	return len(items), nil
}
