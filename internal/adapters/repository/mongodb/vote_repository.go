package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"enquetebot/internal/core/domain"
	"enquetebot/internal/core/ports"
)

const voteCollection = "votos"

type voteRepository struct {
	collection *mongo.Collection
}

// NewVoteRepository wires the vote collection and ensures the unique index
// that guarantees at most one vote per (poll, user) pair.
func NewVoteRepository(ctx context.Context, db *mongo.Database) (ports.VoteRepository, error) {
	collection := db.Collection(voteCollection)

	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "enquete_id", Value: 1},
			{Key: "usuario", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create vote index: %w", err)
	}

	return &voteRepository{collection: collection}, nil
}

func (r *voteRepository) SaveVote(ctx context.Context, vote *domain.Vote) error {
	_, err := r.collection.InsertOne(ctx, vote)
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrAlreadyVoted
	}
	if err != nil {
		return fmt.Errorf("failed to save vote: %w", err)
	}
	return nil
}

func (r *voteRepository) HasVoted(ctx context.Context, pollID, userID string) (bool, error) {
	filter := bson.M{"enquete_id": pollID, "usuario": userID}
	err := r.collection.FindOne(ctx, filter).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check existing vote: %w", err)
	}
	return true, nil
}

func (r *voteRepository) FindByPoll(ctx context.Context, pollID string) ([]*domain.Vote, error) {
	// Natural order is insertion order, which is what the results view shows.
	cursor, err := r.collection.Find(ctx, bson.M{"enquete_id": pollID})
	if err != nil {
		return nil, fmt.Errorf("failed to find votes: %w", err)
	}

	var votes []*domain.Vote
	if err := cursor.All(ctx, &votes); err != nil {
		return nil, fmt.Errorf("failed to decode votes: %w", err)
	}
	return votes, nil
}
