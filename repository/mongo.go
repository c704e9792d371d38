package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"civictrack-be/models"
)

const opTimeout = 10 * time.Second

// Mongo is the production IssueRepository backed by MongoDB collections.
type Mongo struct {
	client    *mongo.Client
	issues    *mongo.Collection
	reactions *mongo.Collection
	now       func() time.Time
}

// NewMongo wires the repository onto db and ensures the unique reaction
// index exists.
func NewMongo(db *mongo.Database) (*Mongo, error) {
	m := &Mongo{
		client:    db.Client(),
		issues:    db.Collection("issues"),
		reactions: db.Collection("reactions"),
		now:       time.Now,
	}
	if err := models.EnsureReactionIndex(m.reactions); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Mongo) List(ctx context.Context) ([]models.Issue, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	findOptions := options.Find().SetSort(bson.D{{Key: "reportedAt", Value: -1}})

	cursor, err := m.issues.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var issues []models.Issue
	if err := cursor.All(ctx, &issues); err != nil {
		return nil, err
	}
	return issues, nil
}

func (m *Mongo) Get(ctx context.Context, id string) (models.Issue, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var issue models.Issue
	err := m.issues.FindOne(ctx, bson.M{"_id": id}).Decode(&issue)
	if err == mongo.ErrNoDocuments {
		return models.Issue{}, ErrNotFound
	}
	if err != nil {
		return models.Issue{}, err
	}
	return issue, nil
}

func (m *Mongo) Create(ctx context.Context, draft Draft) (models.Issue, error) {
	if err := ValidateDraft(draft); err != nil {
		return models.Issue{}, err
	}

	issue := NewIssue(draft, m.now())

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if _, err := m.issues.InsertOne(ctx, issue); err != nil {
		return models.Issue{}, err
	}
	return issue, nil
}

func (m *Mongo) Upvote(ctx context.Context, issueID, userID string) (int, error) {
	return m.react(ctx, issueID, userID, models.ReactionUpvote)
}

func (m *Mongo) Flag(ctx context.Context, issueID, userID string) (int, error) {
	return m.react(ctx, issueID, userID, models.ReactionFlag)
}

func (m *Mongo) react(ctx context.Context, issueID, userID string, kind models.ReactionKind) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var issue models.Issue
	err := m.issues.FindOne(ctx, bson.M{"_id": issueID}).Decode(&issue)
	if err == mongo.ErrNoDocuments {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}

	field := "upvotes"
	if kind == models.ReactionFlag {
		field = "flagCount"
	}

	reaction := models.Reaction{
		ID:        uuid.NewString(),
		Issue:     issueID,
		User:      userID,
		Kind:      kind,
		CreatedAt: m.now(),
	}

	_, err = m.reactions.InsertOne(ctx, reaction)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// Already reacted; current count stands.
			return m.count(ctx, issueID, field)
		}
		return 0, err
	}

	if _, err := m.issues.UpdateOne(ctx, bson.M{"_id": issueID}, bson.M{"$inc": bson.M{field: 1}}); err != nil {
		return 0, err
	}
	return m.count(ctx, issueID, field)
}

func (m *Mongo) count(ctx context.Context, issueID, field string) (int, error) {
	var issue models.Issue
	if err := m.issues.FindOne(ctx, bson.M{"_id": issueID}).Decode(&issue); err != nil {
		return 0, err
	}
	if field == "flagCount" {
		return issue.FlagCount, nil
	}
	return issue.Upvotes, nil
}

func (m *Mongo) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return m.client.Ping(ctx, readpref.Primary())
}
