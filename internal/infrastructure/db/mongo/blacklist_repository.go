package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shopstack/marketplace-api/internal/core/domain"
)

const collectionBlacklist = "token_blacklist"

// BlacklistRepository stores revoked tokens. A TTL index on expires_at lets
// MongoDB purge each entry once the token would have expired on its own, so
// the collection never grows past the set of live revocations.
type BlacklistRepository struct {
	col *mongo.Collection
}

func NewBlacklistRepository(db *mongo.Database) *BlacklistRepository {
	return &BlacklistRepository{col: db.Collection(collectionBlacklist)}
}

type blacklistDoc struct {
	Token     string    `bson:"token"`
	ExpiresAt time.Time `bson:"expires_at"`
}

// Add records a revoked token. Re-revoking the same token is a no-op.
func (r *BlacklistRepository) Add(ctx context.Context, entry *domain.BlacklistedToken) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, blacklistDoc{Token: entry.Token, ExpiresAt: entry.ExpiresAt})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return fmt.Errorf("insert blacklisted token: %w", err)
	}
	return nil
}

// Contains reports whether the exact token string has been revoked.
func (r *BlacklistRepository) Contains(ctx context.Context, token string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"token": token}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("check blacklisted token: %w", err)
	}
	return n > 0, nil
}

// EnsureIndexes creates the unique token index and the expiry TTL index.
func (r *BlacklistRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "token", Value: 1}},
			Options: options.Index().SetName("token_unique").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetName("expires_at_ttl").SetExpireAfterSeconds(0),
		},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
