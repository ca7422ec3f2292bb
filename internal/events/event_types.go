package events

import (
	"time"

	"github.com/spec-kit/client-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventClientRegistered EventType = "client_registered"
	EventClientUpdated    EventType = "client_updated"
	EventClientDeleted    EventType = "client_deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ClientID  int64       `json:"client_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ClientRegisteredPayload payload.
type ClientRegisteredPayload struct {
	Email  string              `json:"email"`
	Status domain.ClientStatus `json:"status"`
	// Reconciled is true when the external directory matched and its
	// identity was stored instead of the submitted one.
	Reconciled bool `json:"reconciled"`
}

// ClientUpdatedPayload payload.
type ClientUpdatedPayload struct {
	Email string `json:"email"`
}

// ClientDeletedPayload payload.
type ClientDeletedPayload struct {
	Email string `json:"email"`
}
