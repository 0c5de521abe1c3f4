package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/qbnb/marketplace-api/internal/core/ports"
)

const collectionAuditEvents = "audit_events"

type AuditRepository struct {
	col *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{col: db.Collection(collectionAuditEvents)}
}

type auditDoc struct {
	EntityID  string    `bson:"entity_id"`
	Action    string    `bson:"action"`
	ActorID   string    `bson:"actor_id,omitempty"`
	Timestamp time.Time `bson:"timestamp"`
}

func (r *AuditRepository) Insert(ctx context.Context, event *ports.AuditEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := auditDoc{
		EntityID:  event.EntityID,
		Action:    event.Action,
		ActorID:   event.ActorID,
		Timestamp: event.Timestamp,
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}
