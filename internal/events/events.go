// Package events publishes assignment lifecycle events.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/yukikurage/resource-management-api/internal/models"
)

type Type string

const (
	AssignmentCreated Type = "created"
	AssignmentUpdated Type = "updated"
	AssignmentDeleted Type = "deleted"
)

// AssignmentEvent is the JSON payload sent for every assignment change.
type AssignmentEvent struct {
	Type       Type              `json:"type"`
	Assignment models.Assignment `json:"assignment"`
	OccurredAt time.Time         `json:"occurredAt"`
}

// Publisher sends assignment events.
type Publisher interface {
	PublishAssignment(ctx context.Context, eventType Type, assignment models.Assignment) error
}

// Conn is the subset of *nats.Conn used for publishing.
type Conn interface {
	Publish(subject string, data []byte) error
}

// NATSPublisher publishes events to <prefix>.assignment.<type>.
type NATSPublisher struct {
	conn   Conn
	prefix string
	now    func() time.Time
}

// NewNATSPublisher creates a publisher on an existing connection.
func NewNATSPublisher(conn Conn, prefix string) *NATSPublisher {
	return &NATSPublisher{conn: conn, prefix: prefix, now: time.Now}
}

// Connect dials NATS and wraps the connection in a publisher.
func Connect(url, prefix string) (*NATSPublisher, *nats.Conn, error) {
	nc, err := nats.Connect(url, nats.Name("resource-management-api"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to nats: %w", err)
	}
	return NewNATSPublisher(nc, prefix), nc, nil
}

// Subject returns the subject an event type is published on.
func (p *NATSPublisher) Subject(eventType Type) string {
	return fmt.Sprintf("%s.assignment.%s", p.prefix, eventType)
}

func (p *NATSPublisher) PublishAssignment(ctx context.Context, eventType Type, assignment models.Assignment) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := json.Marshal(AssignmentEvent{
		Type:       eventType,
		Assignment: assignment,
		OccurredAt: p.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	if err := p.conn.Publish(p.Subject(eventType), payload); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", eventType, err)
	}
	return nil
}

// NopPublisher discards every event.
type NopPublisher struct{}

func (NopPublisher) PublishAssignment(context.Context, Type, models.Assignment) error {
	return nil
}
