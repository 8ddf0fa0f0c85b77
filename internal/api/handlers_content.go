package api

import (
	"log"
	"net/http"
)

func (s *Server) handleMovies(w http.ResponseWriter, r *http.Request) {
	items, err := s.library.MovieView(s.getUserID(r))
	if err != nil {
		log.Printf("content: movie view failed: %v", err)
		s.respondError(w, http.StatusInternalServerError, "failed to load movies")
		return
	}
	s.respondJSON(w, http.StatusOK, items)
}

func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	items, err := s.library.SeriesView(s.getUserID(r))
	if err != nil {
		log.Printf("content: series view failed: %v", err)
		s.respondError(w, http.StatusInternalServerError, "failed to load series")
		return
	}
	s.respondJSON(w, http.StatusOK, items)
}

func (s *Server) handleSeriesDetails(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.library.SeriesDetails())
}

func (s *Server) handleContinueWatching(w http.ResponseWriter, r *http.Request) {
	items, err := s.library.ContinueWatching(s.getUserID(r))
	if err != nil {
		log.Printf("content: continue watching failed: %v", err)
		s.respondError(w, http.StatusInternalServerError, "failed to load watch history")
		return
	}
	s.respondJSON(w, http.StatusOK, items)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.library.Search(r.URL.Query().Get("q")))
}
