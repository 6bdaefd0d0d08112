// Package partyapitest provides an in-memory implementation of the remote
// party API for tests.
package partyapitest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"

	"partyplanner/internal/model"
)

// Request records one call received by the fake.
type Request struct {
	Method string
	Path   string
	Body   string
}

// Server is a fake collection endpoint served at URL + "/events".
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	parties  []model.Party
	nextID   int
	requests []Request

	failGet      bool
	failList     bool
	rejectDelete bool
	rejectCreate bool
}

// SetFailGet makes GET /events/{id} answer with a non-JSON 500.
func (s *Server) SetFailGet(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failGet = v
}

// SetFailList makes GET /events answer with a non-JSON 500.
func (s *Server) SetFailList(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failList = v
}

// SetRejectCreate makes POST /events answer 400 {"error": ...} without
// adding anything.
func (s *Server) SetRejectCreate(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rejectCreate = v
}

// SetRejectDelete makes DELETE answer 404 without removing anything.
func (s *Server) SetRejectDelete(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rejectDelete = v
}

// NewServer starts a fake seeded with parties. Numeric ids of seeded parties
// advance the id counter so new parties never collide.
func NewServer(parties ...model.Party) *Server {
	s := &Server{nextID: 1}
	for _, p := range parties {
		s.parties = append(s.parties, p)
		if n, err := strconv.Atoi(string(p.ID)); err == nil && n >= s.nextID {
			s.nextID = n + 1
		}
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	return s
}

// EventsURL is the collection endpoint to hand to partyapi.NewClient.
func (s *Server) EventsURL() string {
	return s.URL + "/events"
}

// Parties returns a copy of the current collection.
func (s *Server) Parties() []model.Party {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Party, len(s.parties))
	copy(out, s.parties)
	return out
}

// Requests returns a copy of all recorded requests.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// RemoveExternally deletes a party as if another client had done it.
func (s *Server) RemoveExternally(id model.PartyID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remove(id)
}

func (s *Server) remove(id model.PartyID) bool {
	for i, p := range s.parties {
		if p.ID == id {
			s.parties = append(s.parties[:i], s.parties[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	body, _ := io.ReadAll(r.Body)
	s.requests = append(s.requests, Request{Method: r.Method, Path: r.URL.Path, Body: string(body)})

	rest, ok := strings.CutPrefix(r.URL.Path, "/events")
	if !ok {
		http.NotFound(w, r)
		return
	}
	id := model.PartyID(strings.TrimPrefix(rest, "/"))

	switch {
	case r.Method == http.MethodGet && id == "":
		if s.failList {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		writeData(w, http.StatusOK, append([]model.Party{}, s.parties...))

	case r.Method == http.MethodGet:
		if s.failGet {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		for _, p := range s.parties {
			if p.ID == id {
				writeData(w, http.StatusOK, p)
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]any{"data": nil, "error": "not found"})

	case r.Method == http.MethodPost && id == "":
		if s.rejectCreate {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "rejected"})
			return
		}
		var f model.PartyFields
		if err := json.Unmarshal(body, &f); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
			return
		}
		p := model.Party{
			ID:          model.PartyID(strconv.Itoa(s.nextID)),
			Name:        f.Name,
			Description: f.Description,
			Date:        f.Date,
			Location:    f.Location,
		}
		s.nextID++
		s.parties = append(s.parties, p)
		writeData(w, http.StatusCreated, p)

	case r.Method == http.MethodDelete && id != "":
		if s.rejectDelete || !s.remove(id) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func writeData(w http.ResponseWriter, status int, v any) {
	writeJSON(w, status, map[string]any{"data": v})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
