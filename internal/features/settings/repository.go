package settings

import (
	"context"
	"sync"

	"go-stocksync/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SettingsRepository interface {
	GetByType(ctx context.Context, sType SettingsType) (*Settings, error)
	Upsert(ctx context.Context, settings *Settings) error
}

type SettingsRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewSettingsRepository(mongodb *database.MongodbDB) SettingsRepository {
	return &SettingsRepositoryImpl{
		Collection: mongodb.DB.Collection("settings"),
	}
}

// EnsureIndexes keeps one document per settings type.
func (r *SettingsRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.Collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "type", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *SettingsRepositoryImpl) GetByType(ctx context.Context, sType SettingsType) (*Settings, error) {
	var settings Settings
	err := r.Collection.FindOne(ctx, bson.M{"type": sType}).Decode(&settings)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &settings, nil
}

func (r *SettingsRepositoryImpl) Upsert(ctx context.Context, settings *Settings) error {
	filter := bson.M{"type": settings.Type}
	update := bson.M{"$set": settings}
	opts := options.Update().SetUpsert(true)
	_, err := r.Collection.UpdateOne(ctx, filter, update, opts)
	return err
}

// MemorySettingsRepository keeps settings documents in process memory.
type MemorySettingsRepository struct {
	mu   sync.RWMutex
	docs map[SettingsType]Settings
}

func NewMemorySettingsRepository() *MemorySettingsRepository {
	return &MemorySettingsRepository{docs: make(map[SettingsType]Settings)}
}

func (r *MemorySettingsRepository) GetByType(_ context.Context, sType SettingsType) (*Settings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok := r.docs[sType]
	if !ok {
		return nil, nil
	}
	return &doc, nil
}

func (r *MemorySettingsRepository) Upsert(_ context.Context, settings *Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.docs[settings.Type] = *settings
	return nil
}
