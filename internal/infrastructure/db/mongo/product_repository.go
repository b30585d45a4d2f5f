package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gestionstock/product-api/internal/core/domain"
)

const collectionProducts = "products"

// IDSequence hands out product ids from a single shared counter.
type IDSequence interface {
	// Next atomically increments the counter and returns the new value.
	Next(ctx context.Context) (int, error)
	// Seed raises the counter to at least floor.
	Seed(ctx context.Context, floor int) error
}

// ProductRepository stores products with integer _id values taken from an
// IDSequence, so several API instances can share one collection.
type ProductRepository struct {
	col *mongo.Collection
	seq IDSequence
}

func NewProductRepository(db *mongo.Database, seq IDSequence) *ProductRepository {
	return &ProductRepository{col: db.Collection(collectionProducts), seq: seq}
}

// Init creates the query indexes and seeds the id sequence with the highest
// stored id.
func (r *ProductRepository) Init(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}},
		{Keys: bson.D{{Key: "price", Value: 1}}},
		{Keys: bson.D{{Key: "quantity", Value: 1}}},
	}
	if _, err := r.col.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("product indexes: %w", err)
	}

	var last domain.Product
	err := r.col.FindOne(ctx, bson.M{}, options.FindOne().SetSort(bson.D{{Key: "_id", Value: -1}})).Decode(&last)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("read max product id: %w", err)
	}
	return r.seq.Seed(ctx, last.ID)
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("%w: next product id: %w", domain.ErrStorage, err)
	}

	doc := *p
	doc.ID = id
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("%w: insert product: %w", domain.ErrStorage, err)
	}
	p.ID = id
	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id int) (*domain.Product, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *ProductRepository) FindByName(ctx context.Context, name string) (*domain.Product, error) {
	return r.findOne(ctx, bson.M{"name": name})
}

func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return fmt.Errorf("%w: update product: %w", domain.ErrStorage, err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("%w: delete product: %w", domain.ErrStorage, err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) FilterByPrice(ctx context.Context, min, max float64) ([]domain.Product, error) {
	return r.find(ctx, bson.M{"price": bson.M{"$gte": min, "$lte": max}})
}

func (r *ProductRepository) FilterByQuantity(ctx context.Context, min, max int) ([]domain.Product, error) {
	return r.find(ctx, bson.M{"quantity": bson.M{"$gte": min, "$lte": max}})
}

func (r *ProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	return r.find(ctx, bson.M{})
}

func (r *ProductRepository) findOne(ctx context.Context, filter bson.M) (*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.Product
	err := r.col.FindOne(ctx, filter, options.FindOne().SetSort(bson.D{{Key: "_id", Value: 1}})).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("%w: find product: %w", domain.ErrStorage, err)
	}
	return &p, nil
}

func (r *ProductRepository) find(ctx context.Context, filter bson.M) ([]domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("%w: list products: %w", domain.ErrStorage, err)
	}
	out := make([]domain.Product, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("%w: decode products: %w", domain.ErrStorage, err)
	}
	return out, nil
}
