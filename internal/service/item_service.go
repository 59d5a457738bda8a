package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shinyyama/item-service/internal/model"
	"github.com/shinyyama/item-service/internal/repository"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrInvalidID = errors.New("invalid id")
)

type ItemService interface {
	List(ctx context.Context) ([]model.Item, error)
	Create(ctx context.Context, item, description string, price float64) (*model.Item, error)
	Get(ctx context.Context, id string) (*model.Item, error)
	Update(ctx context.Context, id string, patch model.ItemPatch) (*model.Item, error)
	Delete(ctx context.Context, id string) (*model.Item, error)
}

type itemService struct {
	repo    repository.ItemRepository
	timeout time.Duration
}

// NewItemService bounds every repository call by timeout. A zero timeout
// leaves the caller's deadline in charge.
func NewItemService(repo repository.ItemRepository, timeout time.Duration) ItemService {
	return &itemService{repo: repo, timeout: timeout}
}

func (s *itemService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func classify(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrInvalidID):
		return fmt.Errorf("%w: %v", ErrInvalidID, err)
	default:
		return err
	}
}

func (s *itemService) List(ctx context.Context) ([]model.Item, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

func (s *itemService) Create(ctx context.Context, item, description string, price float64) (*model.Item, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	rec := &model.Item{
		Item:        item,
		Description: description,
		Price:       price,
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}
	return rec, nil
}

func (s *itemService) Get(ctx context.Context, id string) (*model.Item, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	item, err := s.repo.FindByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, classify(err)
	}
	return item, nil
}

func (s *itemService) Update(ctx context.Context, id string, patch model.ItemPatch) (*model.Item, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	item, err := s.repo.Update(ctx, strings.TrimSpace(id), patch)
	if err != nil {
		return nil, classify(err)
	}
	return item, nil
}

func (s *itemService) Delete(ctx context.Context, id string) (*model.Item, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	item, err := s.repo.Delete(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, classify(err)
	}
	return item, nil
}
