package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shinyyama/item-service/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type itemDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Item        string             `bson:"item"`
	Description string             `bson:"description"`
	Price       float64            `bson:"price"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (d itemDocument) toModel() model.Item {
	return model.Item{
		ID:          d.ID.Hex(),
		Item:        d.Item,
		Description: d.Description,
		Price:       d.Price,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type mongoItemRepository struct {
	client *mongo.Client
	coll   *mongo.Collection
	now    func() time.Time
}

// NewMongoItemRepository stores items as documents in database.collection.
// Ids are ObjectID hex strings. The repository owns client and disconnects it
// on Close.
func NewMongoItemRepository(client *mongo.Client, database, collection string) ItemRepository {
	var coll *mongo.Collection
	if client != nil {
		coll = client.Database(database).Collection(collection)
	}
	return &mongoItemRepository{
		client: client,
		coll:   coll,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return oid, nil
}

// patchSet builds the $set document for patch. updatedAt is always included.
func patchSet(patch model.ItemPatch, now time.Time) bson.D {
	set := bson.D{}
	if patch.Item != nil {
		set = append(set, bson.E{Key: "item", Value: *patch.Item})
	}
	if patch.Description != nil {
		set = append(set, bson.E{Key: "description", Value: *patch.Description})
	}
	if patch.Price != nil {
		set = append(set, bson.E{Key: "price", Value: *patch.Price})
	}
	return append(set, bson.E{Key: "updatedAt", Value: now})
}

func mapMongoErr(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}

func (r *mongoItemRepository) Create(ctx context.Context, item *model.Item) error {
	if r.coll == nil {
		return ErrDBNotReady
	}
	now := r.now()
	doc := itemDocument{
		ID:          primitive.NewObjectID(),
		Item:        item.Item,
		Description: item.Description,
		Price:       item.Price,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return err
	}
	*item = doc.toModel()
	return nil
}

func (r *mongoItemRepository) FindByID(ctx context.Context, id string) (*model.Item, error) {
	if r.coll == nil {
		return nil, ErrDBNotReady
	}
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	var doc itemDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, mapMongoErr(err)
	}
	item := doc.toModel()
	return &item, nil
}

func (r *mongoItemRepository) List(ctx context.Context) ([]model.Item, error) {
	if r.coll == nil {
		return nil, ErrDBNotReady
	}
	cur, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	var docs []itemDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	items := make([]model.Item, 0, len(docs))
	for _, d := range docs {
		items = append(items, d.toModel())
	}
	return items, nil
}

func (r *mongoItemRepository) Count(ctx context.Context) (int64, error) {
	if r.coll == nil {
		return 0, ErrDBNotReady
	}
	return r.coll.CountDocuments(ctx, bson.D{})
}

func (r *mongoItemRepository) Update(ctx context.Context, id string, patch model.ItemPatch) (*model.Item, error) {
	if r.coll == nil {
		return nil, ErrDBNotReady
	}
	if patch.IsEmpty() {
		return r.FindByID(ctx, id)
	}
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc itemDocument
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.D{{Key: "$set", Value: patchSet(patch, r.now())}}, opts).Decode(&doc)
	if err != nil {
		return nil, mapMongoErr(err)
	}
	item := doc.toModel()
	return &item, nil
}

func (r *mongoItemRepository) Delete(ctx context.Context, id string) (*model.Item, error) {
	if r.coll == nil {
		return nil, ErrDBNotReady
	}
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	var doc itemDocument
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, mapMongoErr(err)
	}
	item := doc.toModel()
	return &item, nil
}

func (r *mongoItemRepository) Close(ctx context.Context) error {
	if r.client == nil {
		return nil
	}
	return r.client.Disconnect(ctx)
}
