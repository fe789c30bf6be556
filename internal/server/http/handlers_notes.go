package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

type noteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func decodeNote(w http.ResponseWriter, r *http.Request) (noteRequest, bool) {
	var n noteRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&n); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request payload")
		return noteRequest{}, false
	}
	return n, true
}

func noteID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid note ID")
		return 0, false
	}
	return id, true
}

func (s *Server) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeNote(w, r)
	if !ok {
		return
	}
	n, err := s.notes.Create(r.Context(), req.Title, req.Content)
	if err != nil {
		s.internalError(w, r, "create note", err)
		return
	}
	writeJSON(w, http.StatusCreated, n)
}

func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	ns, err := s.notes.List(r.Context())
	if err != nil {
		s.internalError(w, r, "list notes", err)
		return
	}
	writeJSON(w, http.StatusOK, ns)
}

func (s *Server) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	id, ok := noteID(w, r)
	if !ok {
		return
	}
	req, ok := decodeNote(w, r)
	if !ok {
		return
	}
	n, found, err := s.notes.Update(r.Context(), id, req.Title, req.Content)
	if err != nil {
		s.internalError(w, r, "update note", err)
		return
	}
	if !found {
		writeMessage(w, http.StatusNotFound, "Note not found")
		return
	}
	writeJSON(w, http.StatusOK, n)
}

func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	id, ok := noteID(w, r)
	if !ok {
		return
	}
	deleted, err := s.notes.Delete(r.Context(), id)
	if err != nil {
		s.internalError(w, r, "delete note", err)
		return
	}
	if !deleted {
		writeMessage(w, http.StatusNotFound, "Note not found")
		return
	}
	writeMessage(w, http.StatusOK, "Note deleted")
}
