package api

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/quayside/shipbell/internal/event"
	"github.com/quayside/shipbell/internal/notify"
)

// maxBodySize caps webhook request bodies at 1 MB.
const maxBodySize = 1 << 20

// recentCount is how many notifications GET /notifications returns.
const recentCount = 10

// handleWebhook ingests a structured deployment webhook: verify, parse,
// map, store, broadcast. Rejected requests mutate no state.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	limited := io.LimitReader(r.Body, maxBodySize+1)
	body, err := io.ReadAll(limited)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "failed to read request body")
		return
	}
	if int64(len(body)) > maxBodySize {
		s.respondError(w, http.StatusRequestEntityTooLarge, "payload too large")
		return
	}

	signature := r.Header.Get(s.config.SignatureHeader)
	if err := s.verifier.Verify(body, signature); err != nil {
		s.logger.Warn("webhook signature rejected",
			"header", s.config.SignatureHeader,
			"signature_present", signature != "",
		)
		s.respondError(w, http.StatusUnauthorized, "invalid signature")
		return
	}

	var payload event.Payload
	if err := json.Unmarshal(body, &payload); err != nil {
		s.respondError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}

	kind, message := event.Map(payload)

	project := "unknown"
	meta := &notify.ProviderMetadata{EventType: payload.Type}
	if payload.Project != nil {
		if payload.Project.Name != "" {
			project = payload.Project.Name
		}
		meta.ProjectID = payload.Project.ID
	}
	if payload.Deployment != nil {
		meta.DeploymentID = payload.Deployment.ID
		meta.Status = payload.Deployment.Status
		meta.URL = payload.Deployment.URL
	}
	if payload.Environment != nil {
		meta.Environment = payload.Environment.Name
	}

	now := time.Now().UTC()
	stored := s.store.Append(notify.Notification{
		Project:    project,
		Event:      string(kind),
		Timestamp:  now,
		ReceivedAt: now,
		Message:    message,
		Provider:   meta,
	})
	notified := s.hub.Publish(stored)

	s.logger.Info("webhook notification ingested",
		"project", stored.Project,
		"event", stored.Event,
		"clients_notified", notified,
	)

	s.respondJSON(w, http.StatusOK, IngestResponse{
		Success:         true,
		Received:        stored,
		PlaySound:       true,
		ClientsNotified: notified,
	})
}

// handleNotify is the legacy query-parameter entry point. Any method, every
// parameter optional, validation can never fail.
func (s *Server) handleNotify(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	project := q.Get("project")
	if project == "" {
		project = notify.DefaultProject
	}
	kind := q.Get("event")
	if kind == "" {
		kind = notify.DefaultEvent
	}

	now := time.Now().UTC()
	timestamp := now
	if raw := q.Get("timestamp"); raw != "" {
		// Unparseable timestamps fall back to ingestion time; the legacy
		// endpoint never rejects.
		if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
			timestamp = parsed
		}
	}

	stored := s.store.Append(notify.Notification{
		Project:    project,
		Event:      kind,
		Timestamp:  timestamp,
		ReceivedAt: now,
		Message:    q.Get("message"),
		IsLegacy:   true,
	})
	notified := s.hub.Publish(stored)

	s.logger.Info("legacy notification ingested",
		"project", stored.Project,
		"event", stored.Event,
		"clients_notified", notified,
	)

	s.respondJSON(w, http.StatusOK, IngestResponse{
		Success:         true,
		Received:        stored,
		PlaySound:       true,
		ClientsNotified: notified,
	})
}

// handleNotifications returns the most recent stored notifications,
// newest-first.
func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.store.Recent(recentCount))
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, HealthResponse{
		Status:        "ok",
		Timestamp:     time.Now().UTC(),
		UptimeSeconds: int64(time.Since(s.startedAt).Seconds()),
	})
}
