package notify

import "time"

// DefaultProject labels notifications that arrive without a project name.
const DefaultProject = "Manual Notification"

// DefaultEvent labels notifications that arrive without an event kind.
const DefaultEvent = "unknown"

// Notification is the unit of record. Once stored it is immutable; the
// Store hands out copies, never references into its buffer.
type Notification struct {
	// ID is unique and increasing in insertion order within the process
	// lifetime. Assigned by the Store.
	ID int64 `json:"id"`

	// Project is a free-text label; DefaultProject when absent.
	Project string `json:"project"`

	// Event is a normalized event kind (see internal/event) or an
	// unrecognized passthrough string.
	Event string `json:"event"`

	// Timestamp is event-origination time, caller-supplied or defaulted to
	// ingestion time.
	Timestamp time.Time `json:"timestamp"`

	// ReceivedAt is ingestion time at the server, always server-assigned.
	ReceivedAt time.Time `json:"receivedAt"`

	// Message is an optional human-readable description.
	Message string `json:"message,omitempty"`

	// Provider is present only for structured webhook ingestion.
	Provider *ProviderMetadata `json:"providerMetadata,omitempty"`

	// IsLegacy marks query-parameter/manual ingestion.
	IsLegacy bool `json:"isLegacy"`
}

// ProviderMetadata preserves raw provider fields for structured webhooks.
type ProviderMetadata struct {
	EventType    string `json:"eventType"`
	ProjectID    string `json:"projectId,omitempty"`
	DeploymentID string `json:"deploymentId,omitempty"`
	Environment  string `json:"environment,omitempty"`
	Status       string `json:"status,omitempty"`
	URL          string `json:"url,omitempty"`
}
