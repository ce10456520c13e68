package api

import (
	"time"

	"github.com/quayside/shipbell/internal/notify"
)

// IngestResponse acknowledges an accepted notification on both ingestion
// endpoints. PlaySound tells the calling client it may play its own local
// audio cue; dashboards receive the same notification over the stream.
type IngestResponse struct {
	Success         bool                `json:"success"`
	Received        notify.Notification `json:"received"`
	PlaySound       bool                `json:"playSound"`
	ClientsNotified int                 `json:"clientsNotified"`
}

// ErrorResponse is returned on errors.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status        string    `json:"status"`
	Timestamp     time.Time `json:"timestamp"`
	UptimeSeconds int64     `json:"uptime_seconds"`
}
