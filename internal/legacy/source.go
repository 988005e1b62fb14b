// AngelaMos | 2026
// source.go

package legacy

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Source yields every document of the old store, one collection at a time.
type Source interface {
	Users(ctx context.Context) ([]UserDoc, error)
	Mutes(ctx context.Context) ([]MuteDoc, error)
	Posts(ctx context.Context) ([]PostDoc, error)
	Comments(ctx context.Context) ([]CommentDoc, error)
	Packs(ctx context.Context) ([]PackDoc, error)
	Emojis(ctx context.Context) ([]EmojiDoc, error)
	Reactions(ctx context.Context) ([]ReactionDoc, error)
	// Settings returns nil when the singleton was never written.
	Settings(ctx context.Context) (*SettingsDoc, error)
}

type MongoSource struct {
	client *mongo.Client
	db     *mongo.Database
}

func OpenMongo(ctx context.Context, uri, database string) (*MongoSource, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx) //nolint:errcheck // cleanup on failed ping
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return &MongoSource{client: client, db: client.Database(database)}, nil
}

func (s *MongoSource) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoSource) Users(ctx context.Context) ([]UserDoc, error) {
	return findAll[UserDoc](ctx, s.db.Collection(ColUsers))
}

func (s *MongoSource) Mutes(ctx context.Context) ([]MuteDoc, error) {
	return findAll[MuteDoc](ctx, s.db.Collection(ColUserMutes))
}

func (s *MongoSource) Posts(ctx context.Context) ([]PostDoc, error) {
	return findAll[PostDoc](ctx, s.db.Collection(ColPosts))
}

func (s *MongoSource) Comments(ctx context.Context) ([]CommentDoc, error) {
	return findAll[CommentDoc](ctx, s.db.Collection(ColComments))
}

func (s *MongoSource) Packs(ctx context.Context) ([]PackDoc, error) {
	return findAll[PackDoc](ctx, s.db.Collection(ColEmojiPacks))
}

func (s *MongoSource) Emojis(ctx context.Context) ([]EmojiDoc, error) {
	return findAll[EmojiDoc](ctx, s.db.Collection(ColEmojis))
}

func (s *MongoSource) Reactions(ctx context.Context) ([]ReactionDoc, error) {
	return findAll[ReactionDoc](ctx, s.db.Collection(ColReactions))
}

func (s *MongoSource) Settings(ctx context.Context) (*SettingsDoc, error) {
	var doc SettingsDoc
	err := s.db.Collection(ColSiteSettings).FindOne(ctx, bson.D{}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", ColSiteSettings, err)
	}
	return &doc, nil
}

// findAll reads a collection oldest first so rows land in creation order.
func findAll[T any](ctx context.Context, col *mongo.Collection) ([]T, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})

	cursor, err := col.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", col.Name(), err)
	}
	defer cursor.Close(ctx) //nolint:errcheck

	var out []T
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", col.Name(), err)
	}
	return out, nil
}
