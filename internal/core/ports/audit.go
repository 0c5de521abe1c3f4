package ports

import (
	"context"
	"time"
)

// Audit actions emitted by the lifecycle operations.
const (
	AuditUserRegistered = "user_registered"
	AuditUserUpdated    = "user_updated"
	AuditListingCreated = "listing_created"
	AuditListingUpdated = "listing_updated"
	AuditBookingCreated = "booking_created"
	AuditReviewCreated  = "review_created"
)

// AuditEvent records a single accepted mutation for the audit trail.
type AuditEvent struct {
	EntityID  string    // id of the mutated entity; also the ordering key
	Action    string    // one of the Audit* constants
	ActorID   string    // user who triggered the mutation, when known
	Timestamp time.Time
}

// AuditSink accepts audit events for asynchronous persistence. Enqueue must
// not block the calling lifecycle operation.
type AuditSink interface {
	Enqueue(event AuditEvent)
}

// AuditRepository persists audit events.
type AuditRepository interface {
	Insert(ctx context.Context, event *AuditEvent) error
}

// AuditService processes a single audit event end to end.
type AuditService interface {
	Process(ctx context.Context, event AuditEvent) error
}
