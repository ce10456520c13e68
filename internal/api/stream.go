package api

import (
	"io"
	"net/http"
)

// handleEvents opens the persistent notification stream: newline-delimited
// JSON frames, one object per line, flushed immediately. The connection
// persists until either side closes it; client disconnect unsubscribes
// synchronously via the request context.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		s.respondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "application/x-ndjson")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	id, ch := s.hub.Subscribe()
	defer s.hub.Unsubscribe(id)

	for {
		select {
		case <-r.Context().Done():
			return
		case line, ok := <-ch:
			if !ok {
				// Hub pruned us or is shutting down.
				return
			}
			// The frame slice is shared between subscribers; the newline is
			// written separately rather than appended to it.
			if _, err := w.Write(line); err != nil {
				return
			}
			if _, err := io.WriteString(w, "\n"); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
