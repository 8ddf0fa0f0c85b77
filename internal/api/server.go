package api

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/mwaldt/homestream/internal/config"
	"github.com/mwaldt/homestream/internal/library"
	"github.com/mwaldt/homestream/internal/models"
	"github.com/mwaldt/homestream/internal/session"
	"github.com/mwaldt/homestream/internal/stream"
)

const sessionCookie = "session"

// UserStore is the account backend; the Postgres-backed repository satisfies
// it in production.
type UserStore interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
}

type Server struct {
	config   *config.Config
	users    UserStore
	sessions session.Store
	library  *library.Reconciler
	resolver *stream.Resolver
	limiter  *ipRateLimiter
	router   *http.ServeMux
}

type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func NewServer(cfg *config.Config, users UserStore, sessions session.Store, lib *library.Reconciler, resolver *stream.Resolver) *Server {
	s := &Server{
		config:   cfg,
		users:    users,
		sessions: sessions,
		library:  lib,
		resolver: resolver,
		limiter:  newIPRateLimiter(),
		router:   http.NewServeMux(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("GET /health", s.handleHealth)

	// Auth
	s.router.HandleFunc("POST /api/auth/signup", s.rlAuth(s.handleSignup))
	s.router.HandleFunc("POST /api/auth/login", s.rlAuth(s.handleLogin))
	s.router.HandleFunc("POST /api/auth/logout", s.handleLogout)
	s.router.HandleFunc("GET /api/auth/me", s.authMiddleware(s.handleMe))

	// Content listings
	s.router.HandleFunc("GET /api/content/movies", s.authMiddleware(s.handleMovies))
	s.router.HandleFunc("GET /api/content/series", s.authMiddleware(s.handleSeries))
	s.router.HandleFunc("GET /api/content/series-details", s.authMiddleware(s.handleSeriesDetails))
	s.router.HandleFunc("GET /api/content/continue-watching", s.authMiddleware(s.handleContinueWatching))
	s.router.HandleFunc("GET /api/content/search", s.authMiddleware(s.handleSearch))

	// Watch state
	s.router.HandleFunc("POST /api/progress", s.authMiddleware(s.handleProgress))
	s.router.HandleFunc("GET /api/watchlist", s.authMiddleware(s.handleGetWatchlist))
	s.router.HandleFunc("POST /api/watchlist", s.authMiddleware(s.handleAddToWatchlist))
	s.router.HandleFunc("DELETE /api/watchlist/{contentId}", s.authMiddleware(s.handleRemoveFromWatchlist))

	// Streaming
	s.router.HandleFunc("GET /api/stream/{id}", s.authMiddleware(s.handleStream))
	s.router.HandleFunc("GET /api/subtitles/{id}/{filename}", s.authMiddleware(s.handleSubtitle))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.securityHeadersMiddleware(s.corsMiddleware(s.router)).ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, Response{Success: true})
}

// ──────────────────── Middleware ────────────────────

// authMiddleware resolves the session cookie (or bearer token) against the
// session store and passes the user ID to the handler via header.
func (s *Server) authMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			s.respondError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		sess, err := s.sessions.Get(token)
		if err != nil {
			s.respondError(w, http.StatusInternalServerError, "session lookup failed")
			return
		}
		if sess == nil {
			s.respondError(w, http.StatusUnauthorized, "invalid or expired session")
			return
		}

		r.Header.Set("X-User-ID", sess.UserID.String())
		next(w, r)
	}
}

func extractToken(r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	const prefix = "Bearer "
	if h := r.Header.Get("Authorization"); len(h) > len(prefix) {
		return h[len(prefix):]
	}
	return ""
}

func (s *Server) securityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
			w.Header().Set("Vary", "Origin")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// ──────────────────── Helpers ────────────────────

func (s *Server) respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, statusCode int, message string) {
	s.respondJSON(w, statusCode, Response{Success: false, Error: message})
}

func (s *Server) getUserID(r *http.Request) uuid.UUID {
	id, _ := uuid.Parse(r.Header.Get("X-User-ID"))
	return id
}
