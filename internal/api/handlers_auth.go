package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mwaldt/homestream/internal/auth"
	"github.com/mwaldt/homestream/internal/models"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" {
		s.respondError(w, http.StatusBadRequest, "username is required")
		return
	}
	if err := auth.ValidatePassword(req.Password); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	existing, err := s.users.GetByUsername(req.Username)
	if err != nil {
		log.Printf("auth: signup lookup failed: %v", err)
		s.respondError(w, http.StatusInternalServerError, "failed to create account")
		return
	}
	if existing != nil {
		s.respondError(w, http.StatusBadRequest, "username already taken")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		log.Printf("auth: password hash failed: %v", err)
		s.respondError(w, http.StatusInternalServerError, "failed to create account")
		return
	}

	user := &models.User{
		ID:           uuid.New(),
		Username:     req.Username,
		PasswordHash: hash,
	}
	if err := s.users.Create(user); err != nil {
		log.Printf("auth: user insert failed: %v", err)
		s.respondError(w, http.StatusInternalServerError, "failed to create account")
		return
	}

	sess, err := s.sessions.Create(user.ID, s.config.SessionTTL)
	if err != nil {
		log.Printf("auth: session create failed: %v", err)
		s.respondError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	s.setSessionCookie(w, sess.Token, sess.ExpiresAt)
	s.respondJSON(w, http.StatusCreated, Response{Success: true, Data: user})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := s.users.GetByUsername(strings.TrimSpace(req.Username))
	if err != nil {
		log.Printf("auth: login lookup failed: %v", err)
		s.respondError(w, http.StatusInternalServerError, "login failed")
		return
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		s.respondError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}

	sess, err := s.sessions.Create(user.ID, s.config.SessionTTL)
	if err != nil {
		log.Printf("auth: session create failed: %v", err)
		s.respondError(w, http.StatusInternalServerError, "login failed")
		return
	}

	s.setSessionCookie(w, sess.Token, sess.ExpiresAt)
	s.respondJSON(w, http.StatusOK, Response{Success: true, Data: user})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if token := extractToken(r); token != "" {
		if err := s.sessions.Delete(token); err != nil {
			log.Printf("auth: session delete failed: %v", err)
		}
	}
	s.clearSessionCookie(w)
	s.respondJSON(w, http.StatusOK, Response{Success: true})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user, err := s.users.GetByID(s.getUserID(r))
	if err != nil {
		log.Printf("auth: me lookup failed: %v", err)
		s.respondError(w, http.StatusInternalServerError, "failed to load user")
		return
	}
	if user == nil {
		s.respondError(w, http.StatusUnauthorized, "invalid session")
		return
	}
	s.respondJSON(w, http.StatusOK, Response{Success: true, Data: user})
}

func (s *Server) setSessionCookie(w http.ResponseWriter, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
