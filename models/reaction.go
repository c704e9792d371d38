package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ReactionKind enum
type ReactionKind string

const (
	ReactionUpvote ReactionKind = "upvote"
	ReactionFlag   ReactionKind = "flag"
)

// Reaction records that a user upvoted or flagged an issue. One reaction of
// each kind per (issue, user) pair; repeats are no-ops at the repository.
type Reaction struct {
	ID        string       `bson:"_id" json:"id"`
	Issue     string       `bson:"issue" json:"issue"`
	User      string       `bson:"user" json:"user"`
	Kind      ReactionKind `bson:"kind" json:"kind"`
	CreatedAt time.Time    `bson:"createdAt" json:"createdAt"`
}

// EnsureReactionIndex creates a unique compound index for (issue, user, kind)
func EnsureReactionIndex(collection *mongo.Collection) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "issue", Value: 1}, {Key: "user", Value: 1}, {Key: "kind", Value: 1}},
		Options: options.Index().SetUnique(true),
	}

	_, err := collection.Indexes().CreateOne(ctx, indexModel)
	return err
}
