package web

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/yourtube/app/enums"
	"github.com/umputun/yourtube/app/history"
	"github.com/umputun/yourtube/app/queue"
	"github.com/umputun/yourtube/app/stream"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 1000
)

// APIStatusResponse is the JSON response for /api/v1/status
type APIStatusResponse struct {
	Version   string              `json:"version"`
	Hostname  string              `json:"hostname,omitempty"`
	Uptime    string              `json:"uptime"`
	Session   *stream.SessionInfo `json:"session,omitempty"`
	Queue     *APIQueueStats      `json:"queue,omitempty"`
	Timestamp time.Time           `json:"timestamp"`
}

// APIQueueStats represents aggregated queue statistics in JSON API response
type APIQueueStats struct {
	Total      int `json:"total"`
	Active     int `json:"active"`
	Queued     int `json:"queued"`
	Processing int `json:"processing"`
	Completed  int `json:"completed"`
	Failed     int `json:"failed"`
}

// APIQueueResponse is the JSON response for queue listing and refresh
type APIQueueResponse struct {
	Items  []queue.Item  `json:"items"`
	Active []string      `json:"active"`
	Stats  APIQueueStats `json:"stats"`
}

// APIHistoryResponse is the JSON response for recorded outcomes
type APIHistoryResponse struct {
	Streams []history.StreamRecord `json:"streams"`
	Queue   []history.QueueRecord  `json:"queue"`
}

// handleStatus returns a summary of the tracked session and the queue, designed for CLI/jq consumption
func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	resp := APIStatusResponse{
		Version:   shortVersion(s.version),
		Hostname:  s.hostname,
		Uptime:    time.Since(s.startedAt).Truncate(time.Second).String(),
		Timestamp: time.Now(),
	}
	if s.sessions != nil {
		if info, ok := s.sessions.Session(); ok {
			info.Log = nil
			resp.Session = &info
		}
	}
	if s.queue != nil {
		stats := queueStats(s.queue.Items(), s.queue.Active())
		resp.Queue = &stats
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// handleSession returns the tracked session including the kept log lines
func (s *Server) handleSession(w http.ResponseWriter, _ *http.Request) {
	if s.sessions == nil {
		s.writeJSONError(w, http.StatusNotFound, "stream tracking not enabled")
		return
	}
	info, ok := s.sessions.Session()
	if !ok {
		s.writeJSONError(w, http.StatusNotFound, "no active session")
		return
	}
	s.writeJSON(w, http.StatusOK, info)
}

// handleQueue returns the displayed queue items, newest first
func (s *Server) handleQueue(w http.ResponseWriter, _ *http.Request) {
	if s.queue == nil {
		s.writeJSONError(w, http.StatusNotFound, "queue not enabled")
		return
	}
	s.writeJSON(w, http.StatusOK, s.queueResponse(s.queue.Items()))
}

// handleQueueRefresh replaces the queue with the full server listing
func (s *Server) handleQueueRefresh(w http.ResponseWriter, r *http.Request) {
	if s.queue == nil {
		s.writeJSONError(w, http.StatusNotFound, "queue not enabled")
		return
	}
	items, err := s.queue.RefreshAll(r.Context())
	if err != nil {
		log.Printf("[WARN] queue refresh requested by %s failed: %v", r.RemoteAddr, err)
		s.writeJSONError(w, http.StatusBadGateway, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, s.queueResponse(items))
}

// handleQueuePoll checks one queue item status right away
func (s *Server) handleQueuePoll(w http.ResponseWriter, r *http.Request) {
	if s.queue == nil {
		s.writeJSONError(w, http.StatusNotFound, "queue not enabled")
		return
	}
	id := r.PathValue("id")
	if id == "" {
		s.writeJSONError(w, http.StatusBadRequest, "queue id required")
		return
	}
	item, err := s.queue.Poll(r.Context(), id)
	if err != nil {
		log.Printf("[WARN] poll of %s failed: %v", id, err)
		s.writeJSONError(w, http.StatusBadGateway, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, item)
}

// handleHistory returns recorded stream and queue outcomes, newest first
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		s.writeJSONError(w, http.StatusNotFound, "history not enabled")
		return
	}

	limit := defaultHistoryLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil || l <= 0 {
			s.writeJSONError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = min(l, maxHistoryLimit)
	}

	streams, err := s.history.Streams(r.Context(), limit)
	if err != nil {
		log.Printf("[ERROR] failed to load stream history: %v", err)
		s.writeJSONError(w, http.StatusInternalServerError, "failed to load history")
		return
	}
	items, err := s.history.QueueItems(r.Context(), limit)
	if err != nil {
		log.Printf("[ERROR] failed to load queue history: %v", err)
		s.writeJSONError(w, http.StatusInternalServerError, "failed to load history")
		return
	}
	if streams == nil {
		streams = []history.StreamRecord{}
	}
	if items == nil {
		items = []history.QueueRecord{}
	}
	s.writeJSON(w, http.StatusOK, APIHistoryResponse{Streams: streams, Queue: items})
}

func (s *Server) queueResponse(items []queue.Item) APIQueueResponse {
	active := s.queue.Active()
	if items == nil {
		items = []queue.Item{}
	}
	if active == nil {
		active = []string{}
	}
	return APIQueueResponse{Items: items, Active: active, Stats: queueStats(items, active)}
}

func queueStats(items []queue.Item, active []string) APIQueueStats {
	res := APIQueueStats{Total: len(items), Active: len(active)}
	for _, item := range items {
		switch item.Status {
		case enums.QueueStatusQueued:
			res.Queued++
		case enums.QueueStatusProcessing:
			res.Processing++
		case enums.QueueStatusCompleted:
			res.Completed++
		case enums.QueueStatusFailed:
			res.Failed++
		}
	}
	return res
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("[WARN] failed to encode JSON response: %v", err)
	}
}

// writeJSONError writes a JSON error response
func (s *Server) writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := map[string]string{"error": message}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("[WARN] failed to encode JSON error response: %v", err)
	}
}
