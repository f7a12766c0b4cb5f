package runlog

import (
	"context"
	"sort"
	"sync"
	"time"

	"go-stocksync/internal/config"
	"go-stocksync/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repository interface {
	Insert(ctx context.Context, entry *LogEntry) error
	FindByRun(ctx context.Context, runID string) ([]LogEntry, error)
	// ListRunIDs returns run identifiers ordered by first entry, newest first.
	ListRunIDs(ctx context.Context, limit, offset int64) ([]string, error)
	DistinctRunIDs(ctx context.Context) ([]string, error)
	CountByLevel(ctx context.Context) (map[Level]int64, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
	DeleteAll(ctx context.Context) error
}

// NewRepository selects the run log backend from configuration.
func NewRepository(cfg *config.Config, db *database.MongodbDB) Repository {
	if cfg.LogStore == "memory" {
		return NewMemoryRepository()
	}
	return NewMongoRepository(db)
}

type MongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *database.MongodbDB) *MongoRepository {
	return &MongoRepository{
		collection: db.DB.Collection("stock_sync_logs"),
	}
}

// EnsureIndexes creates the indexes used by run lookups and retention.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "run_id", Value: 1}, {Key: "timestamp", Value: 1}}},
		{Keys: bson.D{{Key: "timestamp", Value: 1}}},
	})
	return err
}

func (r *MongoRepository) Insert(ctx context.Context, entry *LogEntry) error {
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	_, err := r.collection.InsertOne(ctx, entry)
	return err
}

func (r *MongoRepository) FindByRun(ctx context.Context, runID string) ([]LogEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"run_id": runID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []LogEntry
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []LogEntry{}
	}

	return entries, nil
}

func (r *MongoRepository) ListRunIDs(ctx context.Context, limit, offset int64) ([]string, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":        "$run_id",
			"started_at": bson.M{"$min": "$timestamp"},
		}}},
		// run ids are time-prefixed, so the id breaks ties between runs that
		// start in the same millisecond
		{{Key: "$sort", Value: bson.D{{Key: "started_at", Value: -1}, {Key: "_id", Value: -1}}}},
		{{Key: "$skip", Value: offset}},
		{{Key: "$limit", Value: limit}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var groups []struct {
		RunID string `bson:"_id"`
	}
	if err = cursor.All(ctx, &groups); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(groups))
	for _, g := range groups {
		ids = append(ids, g.RunID)
	}
	return ids, nil
}

func (r *MongoRepository) DistinctRunIDs(ctx context.Context) ([]string, error) {
	values, err := r.collection.Distinct(ctx, "run_id", bson.M{})
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(values))
	for _, v := range values {
		if id, ok := v.(string); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (r *MongoRepository) CountByLevel(ctx context.Context) (map[Level]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   "$level",
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Level Level `bson:"_id"`
		Count int64 `bson:"count"`
	}
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	counts := make(map[Level]int64, len(rows))
	for _, row := range rows {
		counts[row.Level] = row.Count
	}
	return counts, nil
}

func (r *MongoRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.collection.DeleteMany(ctx, bson.M{"timestamp": bson.M{"$lt": cutoff}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *MongoRepository) DeleteAll(ctx context.Context) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{})
	return err
}

// MemoryRepository keeps entries in process memory. Used when LOG_STORE=memory
// and in tests.
type MemoryRepository struct {
	mu      sync.RWMutex
	entries []LogEntry
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Insert(_ context.Context, entry *LogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *MemoryRepository) FindByRun(_ context.Context, runID string) ([]LogEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := []LogEntry{}
	for _, e := range r.entries {
		if e.RunID == runID {
			entries = append(entries, e)
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.Before(entries[j].Timestamp)
	})
	return entries, nil
}

func (r *MemoryRepository) ListRunIDs(_ context.Context, limit, offset int64) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	started := make(map[string]time.Time)
	var ids []string
	for _, e := range r.entries {
		first, seen := started[e.RunID]
		if !seen {
			ids = append(ids, e.RunID)
			started[e.RunID] = e.Timestamp
			continue
		}
		if e.Timestamp.Before(first) {
			started[e.RunID] = e.Timestamp
		}
	}

	// same order as the Mongo pipeline: newest start, then highest run id
	sort.Slice(ids, func(i, j int) bool {
		si, sj := started[ids[i]], started[ids[j]]
		if !si.Equal(sj) {
			return si.After(sj)
		}
		return ids[i] > ids[j]
	})

	if offset >= int64(len(ids)) {
		return []string{}, nil
	}
	ids = ids[offset:]
	if limit > 0 && limit < int64(len(ids)) {
		ids = ids[:limit]
	}
	return ids, nil
}

func (r *MemoryRepository) DistinctRunIDs(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool)
	var ids []string
	for _, e := range r.entries {
		if !seen[e.RunID] {
			seen[e.RunID] = true
			ids = append(ids, e.RunID)
		}
	}
	return ids, nil
}

func (r *MemoryRepository) CountByLevel(_ context.Context) (map[Level]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[Level]int64)
	for _, e := range r.entries {
		counts[e.Level]++
	}
	return counts, nil
}

func (r *MemoryRepository) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.entries[:0]
	var deleted int64
	for _, e := range r.entries {
		if e.Timestamp.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, e)
	}
	r.entries = kept
	return deleted, nil
}

func (r *MemoryRepository) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = nil
	return nil
}
