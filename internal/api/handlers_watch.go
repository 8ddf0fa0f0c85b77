package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/mwaldt/homestream/internal/models"
)

type progressRequest struct {
	ContentID   string             `json:"contentId"`
	ContentType models.ContentType `json:"contentType"`
	CurrentTime float64            `json:"currentTime"`
	Duration    float64            `json:"duration"`
	Completed   bool               `json:"completed"`
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	var req progressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ContentID == "" {
		s.respondError(w, http.StatusBadRequest, "contentId is required")
		return
	}

	err := s.library.RecordProgress(s.getUserID(r), req.ContentID, req.ContentType, req.CurrentTime, req.Duration, req.Completed)
	if err != nil {
		log.Printf("watch: progress upsert failed: %v", err)
		s.respondError(w, http.StatusInternalServerError, "failed to save progress")
		return
	}
	s.respondJSON(w, http.StatusOK, Response{Success: true})
}

type watchlistRequest struct {
	ContentID   string             `json:"contentId"`
	ContentType models.ContentType `json:"contentType"`
}

func (s *Server) handleGetWatchlist(w http.ResponseWriter, r *http.Request) {
	items, err := s.library.WatchlistView(s.getUserID(r))
	if err != nil {
		log.Printf("watch: watchlist load failed: %v", err)
		s.respondError(w, http.StatusInternalServerError, "failed to load watchlist")
		return
	}
	s.respondJSON(w, http.StatusOK, items)
}

func (s *Server) handleAddToWatchlist(w http.ResponseWriter, r *http.Request) {
	var req watchlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ContentID == "" {
		s.respondError(w, http.StatusBadRequest, "contentId is required")
		return
	}

	if err := s.library.AddToWatchlist(s.getUserID(r), req.ContentID, req.ContentType); err != nil {
		log.Printf("watch: watchlist add failed: %v", err)
		s.respondError(w, http.StatusInternalServerError, "failed to update watchlist")
		return
	}
	s.respondJSON(w, http.StatusOK, Response{Success: true})
}

func (s *Server) handleRemoveFromWatchlist(w http.ResponseWriter, r *http.Request) {
	contentID := r.PathValue("contentId")
	if contentID == "" {
		s.respondError(w, http.StatusBadRequest, "contentId is required")
		return
	}

	if err := s.library.RemoveFromWatchlist(s.getUserID(r), contentID); err != nil {
		log.Printf("watch: watchlist remove failed: %v", err)
		s.respondError(w, http.StatusInternalServerError, "failed to update watchlist")
		return
	}
	s.respondJSON(w, http.StatusOK, Response{Success: true})
}
