package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/aidtrack/dashboard-api/internal/core/domain"
)

const auditCollection = "dashboard_audit"

// AuditRepository persists dashboard-originated actions (logins, scans,
// assignments) to the dashboard_audit collection. Backend-side mutations are
// audited by the backend itself; this collection only covers what the
// dashboard originates.
type AuditRepository struct {
	coll *mongo.Collection
}

// NewAuditRepository creates an AuditRepository on the given database.
func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

type auditDoc struct {
	ID        string    `bson:"_id"`
	Actor     string    `bson:"actor"`
	Role      string    `bson:"role"`
	Action    string    `bson:"action"`
	Subject   string    `bson:"subject,omitempty"`
	Timestamp time.Time `bson:"timestamp"`
}

func (r *AuditRepository) Insert(ctx context.Context, entry *domain.AuditEntry) error {
	doc := auditDoc{
		ID:        entry.ID,
		Actor:     entry.Actor,
		Role:      string(entry.Role),
		Action:    entry.Action,
		Subject:   entry.Subject,
		Timestamp: entry.Timestamp.UTC(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// List returns the most recent entries, newest first.
func (r *AuditRepository) List(ctx context.Context, limit int64) ([]domain.AuditEntry, error) {
	if limit <= 0 {
		limit = 100
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(limit)

	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer cur.Close(ctx)

	var entries []domain.AuditEntry
	for cur.Next(ctx) {
		var doc auditDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode audit entry: %w", err)
		}
		entries = append(entries, domain.AuditEntry{
			ID:        doc.ID,
			Actor:     doc.Actor,
			Role:      domain.Role(doc.Role),
			Action:    doc.Action,
			Subject:   doc.Subject,
			Timestamp: doc.Timestamp,
		})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	return entries, nil
}

// EnsureIndexes creates the indexes the activity view queries by.
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "timestamp", Value: -1}}},
		{Keys: bson.D{{Key: "actor", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
