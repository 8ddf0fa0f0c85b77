package api

import (
	"errors"
	"net/http"

	"github.com/mwaldt/homestream/internal/contentid"
	"github.com/mwaldt/homestream/internal/stream"
)

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	filePath, err := s.resolver.Resolve(r.PathValue("id"))
	if err != nil {
		s.respondStreamError(w, err)
		return
	}
	stream.ServeFile(w, r, filePath)
}

func (s *Server) handleSubtitle(w http.ResponseWriter, r *http.Request) {
	filePath, err := s.resolver.ResolveSubtitle(r.PathValue("id"), r.PathValue("filename"))
	if err != nil {
		s.respondStreamError(w, err)
		return
	}
	stream.ServeSubtitle(w, filePath)
}

func (s *Server) respondStreamError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, contentid.ErrMalformedIdentifier), errors.Is(err, contentid.ErrInvalidPath):
		s.respondError(w, http.StatusBadRequest, "invalid content identifier")
	case errors.Is(err, stream.ErrNotFound):
		s.respondError(w, http.StatusNotFound, "content not found")
	default:
		s.respondError(w, http.StatusInternalServerError, "failed to resolve content")
	}
}
