package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"sort"
	"time"

	"github.com/sirenbot/sirenbot/internal/incident"
	"github.com/sirenbot/sirenbot/internal/utils"
)

// HTTPHandler exposes the read-only HTTP surface: a health check and a
// listing of the incidents currently being tracked.
type HTTPHandler struct {
	store *incident.Store
}

// NewHTTPHandler creates a new HTTP handler
func NewHTTPHandler(store *incident.Store) *HTTPHandler {
	return &HTTPHandler{store: store}
}

// SetupRoutes configures all HTTP routes
func (h *HTTPHandler) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", h.handleHealth)
	mux.HandleFunc("/api/incidents", h.handleIncidents)
}

// handleHealth returns a simple health check response
func (h *HTTPHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	response := map[string]string{
		"status": "ok",
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Error encoding health response: %v", err)
	}
}

// incidentSummary is the API view of an active incident.
type incidentSummary struct {
	ID             string `json:"id"`
	ConversationID string `json:"conversation_id"`
	Severity       string `json:"severity"`
	Status         string `json:"status"`
	Abstract       string `json:"abstract,omitempty"`
	Owner          string `json:"owner,omitempty"`
	ETA            string `json:"eta,omitempty"`
	TicketID       string `json:"ticket_id,omitempty"`
	Age            string `json:"age"`
	ActionCount    int    `json:"action_count"`
	LinkCount      int    `json:"link_count"`
}

// handleIncidents lists all actively tracked incidents, oldest first.
func (h *HTTPHandler) handleIncidents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	records := h.store.Active()
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})

	summaries := make([]incidentSummary, 0, len(records))
	for _, rec := range records {
		summaries = append(summaries, incidentSummary{
			ID:             rec.ID,
			ConversationID: rec.ConversationID,
			Severity:       rec.Severity,
			Status:         rec.Status,
			Abstract:       rec.Abstract,
			Owner:          rec.Owner,
			ETA:            rec.ETA,
			TicketID:       rec.TicketID,
			Age:            utils.FormatDuration(time.Since(rec.CreatedAt)),
			ActionCount:    len(rec.Actions),
			LinkCount:      len(rec.Links),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"incidents": summaries,
		"count":     len(summaries),
	}); err != nil {
		log.Printf("Error encoding incidents response: %v", err)
	}
}
