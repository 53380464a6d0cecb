package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/stayviet/stayviet/pkg/logger"
)

type Publisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
	Close() error
}

// Subjects published by the API.
const (
	BookingCreated   = "booking.created"
	BookingCancelled = "booking.cancelled"
	ReviewCreated    = "review.created"
	ReviewDeleted    = "review.deleted"
)

type BookingCreatedEvent struct {
	BookingID  int64     `json:"booking_id"`
	PropertyID int64     `json:"property_id"`
	UserID     int64     `json:"user_id"`
	CheckIn    time.Time `json:"check_in"`
	CheckOut   time.Time `json:"check_out"`
	Guests     int       `json:"guests"`
	TotalPrice int64     `json:"total_price"`
	CreatedAt  time.Time `json:"created_at"`
}

type BookingCancelledEvent struct {
	BookingID   int64     `json:"booking_id"`
	PropertyID  int64     `json:"property_id"`
	UserID      int64     `json:"user_id"`
	CancelledAt time.Time `json:"cancelled_at"`
}

type ReviewEvent struct {
	ReviewID   int64   `json:"review_id"`
	PropertyID int64   `json:"property_id"`
	UserID     int64   `json:"user_id"`
	Rating     float64 `json:"rating"`
}

type NATSPublisher struct {
	conn *nats.Conn
}

func NewNATSPublisher(url string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NATSPublisher{conn: conn}, nil
}

func (n *NATSPublisher) Publish(ctx context.Context, subject string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}

	logger.WithContext(ctx).Debug("publishing event", "subject", subject)

	return n.conn.Publish(subject, payload)
}

func (n *NATSPublisher) Close() error {
	n.conn.Close()
	return nil
}

// NoopPublisher drops events. Used when NATS is disabled and in tests.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, interface{}) error { return nil }
func (NoopPublisher) Close() error                                       { return nil }
