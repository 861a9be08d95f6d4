package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/LeaEliezrov/ai-learning-platform/internal/core/domain"
)

const collectionPrompts = "prompts"

// PromptRepository persists the append-only prompt history. Ownership
// filtering is part of the query document, never a post-fetch check: a
// foreign id and a missing id produce the same ErrNoDocuments path.
type PromptRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewPromptRepository(db *mongo.Database) *PromptRepository {
	return &PromptRepository{db: db, col: db.Collection(collectionPrompts)}
}

func (r *PromptRepository) Create(ctx context.Context, p *domain.Prompt) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextSequence(ctx, r.db, collectionPrompts)
	if err != nil {
		return err
	}
	p.ID = id

	if _, err := r.col.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("insert prompt: %w", err)
	}
	return nil
}

// promptFilter builds the query document. A non-zero userID is embedded in
// the filter itself so ownership is enforced by the database.
func promptFilter(id, userID int64) bson.M {
	filter := bson.M{"_id": id}
	if userID != 0 {
		filter["user_id"] = userID
	}
	return filter
}

func (r *PromptRepository) FindByID(ctx context.Context, id, userID int64) (*domain.Prompt, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.Prompt
	if err := r.col.FindOne(ctx, promptFilter(id, userID)).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPromptNotFound
		}
		return nil, fmt.Errorf("find prompt: %w", err)
	}
	return &p, nil
}

func (r *PromptRepository) Delete(ctx context.Context, id, userID int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, promptFilter(id, userID))
	if err != nil {
		return fmt.Errorf("delete prompt: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPromptNotFound
	}
	return nil
}

func (r *PromptRepository) ListByUser(ctx context.Context, userID int64, page, limit int) ([]domain.Prompt, int64, error) {
	return r.list(ctx, bson.M{"user_id": userID}, page, limit)
}

func (r *PromptRepository) ListAll(ctx context.Context, page, limit int) ([]domain.Prompt, int64, error) {
	return r.list(ctx, bson.M{}, page, limit)
}

func (r *PromptRepository) list(ctx context.Context, filter bson.M, page, limit int) ([]domain.Prompt, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count prompts: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list prompts: %w", err)
	}

	prompts := []domain.Prompt{}
	if err := cursor.All(ctx, &prompts); err != nil {
		return nil, 0, fmt.Errorf("decode prompts: %w", err)
	}
	return prompts, total, nil
}

func (r *PromptRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, fmt.Errorf("count prompts: %w", err)
	}
	return n, nil
}

func (r *PromptRepository) DeleteByUser(ctx context.Context, userID int64) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, fmt.Errorf("delete prompts by user: %w", err)
	}
	return res.DeletedCount, nil
}

// EnsureIndexes creates the indexes backing the user-scoped history reads.
func (r *PromptRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
