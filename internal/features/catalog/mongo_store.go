package catalog

import (
	"context"
	"time"

	"go-stocksync/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoStore struct {
	collection *mongo.Collection
}

func NewMongoStore(db *database.MongodbDB) *MongoStore {
	return &MongoStore{
		collection: db.DB.Collection("products"),
	}
}

func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "sku", Value: 1}},
		Options: options.Index().SetUnique(true).SetSparse(true),
	})
	return err
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.collection.Database().Client().Ping(ctx, nil)
}

func (s *MongoStore) FindIDBySKU(ctx context.Context, sku string) (string, error) {
	var doc struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	opts := options.FindOne().SetProjection(bson.M{"_id": 1})
	err := s.collection.FindOne(ctx, bson.M{"sku": sku}, opts).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return "", nil
		}
		return "", err
	}
	return doc.ID.Hex(), nil
}

func (s *MongoStore) Load(ctx context.Context, key string) (*Product, error) {
	oid, err := primitive.ObjectIDFromHex(key)
	if err != nil {
		return nil, err
	}

	var product Product
	err = s.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&product)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	product.Key = key
	return &product, nil
}

func (s *MongoStore) Save(ctx context.Context, product *Product) error {
	product.UpdatedAt = time.Now()
	update := bson.M{
		"$set": bson.M{
			"stock_quantity": product.StockQuantity,
			"manage_stock":   product.ManageStock,
			"updated_at":     product.UpdatedAt,
		},
	}

	res, err := s.collection.UpdateOne(ctx, bson.M{"_id": product.ID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
