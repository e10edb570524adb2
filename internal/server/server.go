package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/dukerupert/choretrack/internal/database"
	"github.com/dukerupert/choretrack/internal/handler"
	"github.com/dukerupert/choretrack/internal/middleware"
	"github.com/dukerupert/choretrack/internal/store"
	"github.com/dukerupert/choretrack/internal/token"
	ws "github.com/dukerupert/choretrack/internal/websocket"
)

type Server struct {
	db            *database.DB
	hub           *ws.Hub
	tokens        *token.Manager
	authH         *handler.AuthHandler
	familyMemberH *handler.FamilyMemberHandler
	choreH        *handler.ChoreHandler
	rateLimiter   *middleware.RateLimiter
	logger        *slog.Logger
}

func New(db *database.DB, tokens *token.Manager, rateLimit int, rateWindow time.Duration, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	userStore := store.NewUserStore(db)
	familyMemberStore := store.NewFamilyMemberStore(db)
	choreStore := store.NewChoreStore(db)

	return &Server{
		db:            db,
		hub:           hub,
		tokens:        tokens,
		authH:         handler.NewAuthHandler(userStore, tokens, logger.With("component", "auth")),
		familyMemberH: handler.NewFamilyMemberHandler(familyMemberStore, hub, logger.With("component", "family_member")),
		choreH:        handler.NewChoreHandler(choreStore, familyMemberStore, hub, logger.With("component", "chore")),
		rateLimiter:   middleware.NewRateLimiter(rateLimit, rateWindow),
		logger:        logger,
	}
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Public routes (no auth required)
	outerMux.HandleFunc("POST /api/users/register", s.rateLimited(s.authH.Register))
	outerMux.HandleFunc("POST /api/users/login", s.rateLimited(s.authH.Login))
	outerMux.HandleFunc("GET /health", s.healthHandler)

	// Protected routes, wrapped with RequireAuth middleware
	protectedMux := http.NewServeMux()
	s.registerProtectedRoutes(protectedMux)

	authMiddleware := middleware.RequireAuth(s.tokens)
	outerMux.Handle("/api/", authMiddleware(protectedMux))
	outerMux.Handle("/ws", authMiddleware(protectedMux))

	return middleware.RequestLogger(s.logger.With("component", "http"))(outerMux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) rateLimited(h http.HandlerFunc) http.HandlerFunc {
	limited := middleware.Limit(s.rateLimiter)(h)
	return func(w http.ResponseWriter, r *http.Request) {
		limited.ServeHTTP(w, r)
	}
}

func (s *Server) registerProtectedRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/users/me", s.authH.Me)

	// Family member API routes
	mux.HandleFunc("GET /api/family", s.familyMemberH.List)
	mux.HandleFunc("POST /api/family", s.familyMemberH.Create)
	mux.HandleFunc("PUT /api/family/{id}", s.familyMemberH.Update)
	mux.HandleFunc("DELETE /api/family/{id}", s.familyMemberH.Delete)

	// Chore API routes
	mux.HandleFunc("GET /api/chores", s.choreH.List)
	mux.HandleFunc("GET /api/chores/member/{id}", s.choreH.ListByMember)
	mux.HandleFunc("POST /api/chores", s.choreH.Create)
	mux.HandleFunc("PUT /api/chores/{id}", s.choreH.Update)
	mux.HandleFunc("DELETE /api/chores/{id}", s.choreH.Delete)
	mux.HandleFunc("POST /api/chores/{id}/complete", s.choreH.Complete)

	// WebSocket for live updates
	mux.HandleFunc("GET /ws", ws.Handle(s.hub, s.logger.With("component", "websocket")))
}
