// Package queue defines message payloads exchanged over the message broker.
package queue

// Queue names, one durable queue per event type.
const (
	QueueVenueCreated       = "venue.created"
	QueueVenueStatusChanged = "venue.status_changed"
	QueueVenueDeleted       = "venue.deleted"
)

// VenueCreatedEvent is published when a venue enters the platform.  It
// carries enough for downstream consumers (search indexing, moderation
// queues) to act without querying the primary database.
type VenueCreatedEvent struct {
	VenueID    string   `json:"venue_id"`
	OwnerID    string   `json:"owner_id"`
	Name       string   `json:"name"`
	City       string   `json:"city"`
	SportTypes []string `json:"sport_types"`
	Status     string   `json:"status"`
	CreatedAt  string   `json:"created_at"`
}

// VenueStatusChangedEvent is published on administrative status transitions.
type VenueStatusChangedEvent struct {
	VenueID   string `json:"venue_id"`
	OwnerID   string `json:"owner_id"`
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
	ChangedAt string `json:"changed_at"`
}

// VenueDeletedEvent is published after a venue and its children are removed.
type VenueDeletedEvent struct {
	VenueID   string `json:"venue_id"`
	OwnerID   string `json:"owner_id"`
	DeletedAt string `json:"deleted_at"`
}
