// Package httpserver exposes the notes and auth API over HTTP.
package httpserver

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/and161185/notes-keeper/internal/model"
	"github.com/and161185/notes-keeper/internal/service"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// TokenVerifier checks bearer tokens.
type TokenVerifier interface {
	Verify(tok string) (model.Claims, error)
}

// Server wires services into HTTP handlers.
type Server struct {
	auth      service.AuthService
	notes     service.NoteService
	tokens    TokenVerifier
	log       *zap.Logger
	notesAuth bool
}

// Options tune route protection.
type Options struct {
	// NotesRequireAuth guards /notes with the bearer-token check.
	NotesRequireAuth bool
}

// New constructs a Server with injected services.
func New(auth service.AuthService, notes service.NoteService, tokens TokenVerifier, log *zap.Logger, opts Options) *Server {
	return &Server{auth: auth, notes: notes, tokens: tokens, log: log, notesAuth: opts.NotesRequireAuth}
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(requestID, logging(s.log), recoverer(s.log))

	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/register", s.handleRegister).Methods(http.MethodPost)
	r.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)
	r.Handle("/me", s.requireAuth(http.HandlerFunc(s.handleMe))).Methods(http.MethodGet)

	notes := r.PathPrefix("/notes").Subrouter()
	if s.notesAuth {
		notes.Use(s.requireAuth)
	}
	notes.HandleFunc("", s.handleCreateNote).Methods(http.MethodPost)
	notes.HandleFunc("", s.handleListNotes).Methods(http.MethodGet)
	notes.HandleFunc("/{id}", s.handleUpdateNote).Methods(http.MethodPut)
	notes.HandleFunc("/{id}", s.handleDeleteNote).Methods(http.MethodDelete)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// internalError logs err and answers 500 without leaking details.
func (s *Server) internalError(w http.ResponseWriter, r *http.Request, op string, err error) {
	s.log.Error(op,
		zap.Error(err),
		zap.String("request_id", RequestIDFromCtx(r.Context())),
	)
	writeMessage(w, http.StatusInternalServerError, "internal error")
}
