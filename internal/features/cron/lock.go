package cron_feature

import (
	"context"
	"sync"
	"time"

	"go-stocksync/internal/config"
	"go-stocksync/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const syncLockName = "stock_sync"

// RunLock guards the single-run invariant. A lock that is not released
// expires after its TTL so a crashed run cannot block syncing forever.
type RunLock interface {
	TryAcquire(ctx context.Context, owner string, ttl time.Duration) (bool, error)
	// Release frees the lock if owner still holds it.
	Release(ctx context.Context, owner string) error
	Held(ctx context.Context) (bool, error)
	// Clear frees the lock whoever holds it.
	Clear(ctx context.Context) error
}

// NewRunLock shares the lock through Mongo unless run logs are kept in
// process memory.
func NewRunLock(cfg *config.Config, mongodb *database.MongodbDB) RunLock {
	if cfg.LogStore == "memory" {
		return NewMemoryLock()
	}
	return NewMongoLock(mongodb)
}

type lockDocument struct {
	Name      string    `bson:"_id"`
	Owner     string    `bson:"owner"`
	ExpiresAt time.Time `bson:"expires_at"`
}

type MongoLock struct {
	collection *mongo.Collection
	now        func() time.Time
}

func NewMongoLock(db *database.MongodbDB) *MongoLock {
	return &MongoLock{
		collection: db.DB.Collection("locks"),
		now:        time.Now,
	}
}

func (l *MongoLock) TryAcquire(ctx context.Context, owner string, ttl time.Duration) (bool, error) {
	now := l.now()
	filter := bson.M{"_id": syncLockName, "expires_at": bson.M{"$lte": now}}
	update := bson.M{"$set": bson.M{"owner": owner, "expires_at": now.Add(ttl)}}

	_, err := l.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		// A live lock makes the upsert collide on _id.
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (l *MongoLock) Release(ctx context.Context, owner string) error {
	_, err := l.collection.DeleteOne(ctx, bson.M{"_id": syncLockName, "owner": owner})
	return err
}

func (l *MongoLock) Held(ctx context.Context) (bool, error) {
	var doc lockDocument
	err := l.collection.FindOne(ctx, bson.M{"_id": syncLockName, "expires_at": bson.M{"$gt": l.now()}}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (l *MongoLock) Clear(ctx context.Context) error {
	_, err := l.collection.DeleteOne(ctx, bson.M{"_id": syncLockName})
	return err
}

type MemoryLock struct {
	mu        sync.Mutex
	owner     string
	expiresAt time.Time
	now       func() time.Time
}

func NewMemoryLock() *MemoryLock {
	return &MemoryLock{now: time.Now}
}

func (l *MemoryLock) TryAcquire(_ context.Context, owner string, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if l.owner != "" && now.Before(l.expiresAt) {
		return false, nil
	}
	l.owner = owner
	l.expiresAt = now.Add(ttl)
	return true, nil
}

func (l *MemoryLock) Release(_ context.Context, owner string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.owner == owner {
		l.owner = ""
	}
	return nil
}

func (l *MemoryLock) Held(context.Context) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.owner != "" && l.now().Before(l.expiresAt), nil
}

func (l *MemoryLock) Clear(context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.owner = ""
	return nil
}
