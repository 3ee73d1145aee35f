/* handlers.go
 * Contains the HTTP handlers: the results-feed webhook that kicks off a data refresh, and
 * read-only JSON endpoints for the leaderboard and the swing report
 */

package web

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"
)

// ResultEvent is the payload the results feed posts when a fixture changes
type ResultEvent struct {
	Event   string `json:"event"`
	MatchID string `json:"matchId"`
}

// refreshTimeout bounds the feed pull kicked off by a webhook
const refreshTimeout = 60 * time.Second

// ResultsWebhookHandler HTTP endpoint that receives a webhook from the results feed used to
// kick off updating stored match data and recomputing the leaderboard
// Preconditions: HTTP server has been started, receives HTTP ResponseWriter and Http Request
// Postconditions: Kicks off the refresh pipeline for match results and leaderboard data
func (s *Server) ResultsWebhookHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	defer r.Body.Close()

	var event ResultEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		log.Println("failed to decode webhook:", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	// Events that cannot change stored results are acknowledged and dropped
	if event.Event != "" && event.Event != "RESULT" && event.Event != "FIXTURE" {
		w.WriteHeader(http.StatusOK)
		return
	}

	log.Printf("results event=%s matchId=%s\n", event.Event, event.MatchID)

	// Kick the async pipeline, the webhook must return before the feed pull finishes
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()
		if err := s.refresh(ctx); err != nil {
			log.Println("refresh failed:", err)
		}
	}()

	w.WriteHeader(http.StatusOK)
}

// LeaderboardHandler HTTP endpoint that returns the current standings with movement as JSON
func (s *Server) LeaderboardHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	view, err := s.api.Leaderboard()
	if err != nil {
		log.Println("failed to load leaderboard:", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	writeJSON(w, view)
}

// SwingHandler HTTP endpoint that returns the swing report for open matches as JSON
func (s *Server) SwingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	report, err := s.api.SwingReport(time.Now().UTC())
	if err != nil {
		log.Println("failed to build swing report:", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	writeJSON(w, report)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println("failed to encode response:", err)
	}
}
