package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/shinyyama/item-service/internal/model"
	"gorm.io/gorm"
)

type itemRecord struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement"`
	Item        string    `gorm:"size:255"`
	Description string    `gorm:"type:text"`
	Price       float64   `gorm:"not null;default:0"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (itemRecord) TableName() string {
	return "items"
}

func (r itemRecord) toModel() model.Item {
	return model.Item{
		ID:          strconv.FormatUint(r.ID, 10),
		Item:        r.Item,
		Description: r.Description,
		Price:       r.Price,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// AutoMigrate creates or updates the items table.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&itemRecord{})
}

type gormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository stores items in a relational table through gorm.
// Ids are decimal autoincrement keys.
func NewGormItemRepository(db *gorm.DB) ItemRepository {
	return &gormItemRepository{db: db}
}

func parseRecordID(id string) (uint64, error) {
	n, err := strconv.ParseUint(id, 10, 64)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return n, nil
}

func (r *gormItemRepository) Create(ctx context.Context, item *model.Item) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	rec := itemRecord{
		Item:        item.Item,
		Description: item.Description,
		Price:       item.Price,
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return err
	}
	*item = rec.toModel()
	return nil
}

func (r *gormItemRepository) FindByID(ctx context.Context, id string) (*model.Item, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	key, err := parseRecordID(id)
	if err != nil {
		return nil, err
	}
	rec, err := findRecord(r.db.WithContext(ctx), key)
	if err != nil {
		return nil, err
	}
	item := rec.toModel()
	return &item, nil
}

func (r *gormItemRepository) List(ctx context.Context) ([]model.Item, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var recs []itemRecord
	if err := r.db.WithContext(ctx).Order("id asc").Find(&recs).Error; err != nil {
		return nil, err
	}
	items := make([]model.Item, 0, len(recs))
	for _, rec := range recs {
		items = append(items, rec.toModel())
	}
	return items, nil
}

func (r *gormItemRepository) Count(ctx context.Context) (int64, error) {
	if r.db == nil {
		return 0, ErrDBNotReady
	}
	var total int64
	if err := r.db.WithContext(ctx).Model(&itemRecord{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *gormItemRepository) Update(ctx context.Context, id string, patch model.ItemPatch) (*model.Item, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	key, err := parseRecordID(id)
	if err != nil {
		return nil, err
	}
	var updated model.Item
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec, err := findRecord(tx, key)
		if err != nil {
			return err
		}
		if !patch.IsEmpty() {
			item := rec.toModel()
			patch.Apply(&item)
			rec.Item, rec.Description, rec.Price = item.Item, item.Description, item.Price
			if err := tx.Save(rec).Error; err != nil {
				return err
			}
		}
		updated = rec.toModel()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *gormItemRepository) Delete(ctx context.Context, id string) (*model.Item, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	key, err := parseRecordID(id)
	if err != nil {
		return nil, err
	}
	var deleted model.Item
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec, err := findRecord(tx, key)
		if err != nil {
			return err
		}
		if err := tx.Delete(&itemRecord{}, rec.ID).Error; err != nil {
			return err
		}
		deleted = rec.toModel()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &deleted, nil
}

func (r *gormItemRepository) Close(ctx context.Context) error {
	if r.db == nil {
		return nil
	}
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func findRecord(db *gorm.DB, key uint64) (*itemRecord, error) {
	var rec itemRecord
	if err := db.First(&rec, key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}
