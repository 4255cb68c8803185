// Package apitest provides an in-process fake of the character catalog for tests.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/artpar/rickdex/internal/core"
	"github.com/gorilla/mux"
)

// CharacterPath is the route prefix served by the fake, matching the live API.
const CharacterPath = "/api/character/"

// Server wraps httptest.Server with a fixture catalog and request recording.
type Server struct {
	*httptest.Server

	mu         sync.Mutex
	characters map[int]core.Character
	requests   []*RecordedRequest
	delay      time.Duration
	failing    map[string]int
}

// RecordedRequest stores request details for verification.
type RecordedRequest struct {
	Method string
	Path   string
	Query  string
	Header http.Header
	Time   time.Time
}

// New starts a fake catalog serving the given characters. With no arguments
// it serves Fixtures().
func New(characters ...core.Character) *Server {
	if len(characters) == 0 {
		characters = Fixtures()
	}

	s := &Server{
		characters: make(map[int]core.Character, len(characters)),
		failing:    make(map[string]int),
	}
	for _, c := range characters {
		s.characters[c.ID] = c
	}

	r := mux.NewRouter()
	r.Use(s.record)
	api := r.PathPrefix("/api/character").Subrouter()
	api.HandleFunc("/", s.handleList).Methods(http.MethodGet)
	api.HandleFunc("", s.handleList).Methods(http.MethodGet)
	api.HandleFunc("/{id:[0-9]+}", s.handleByID).Methods(http.MethodGet)
	api.HandleFunc("/{id}", s.handleBadID).Methods(http.MethodGet)

	s.Server = httptest.NewServer(r)
	return s
}

// BaseURL returns the character endpoint of the fake, with trailing slash.
func (s *Server) BaseURL() string {
	return s.URL + CharacterPath
}

// SetDelay makes every response wait for d before being written.
func (s *Server) SetDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay = d
}

// FailWith makes requests for route (the path below the character endpoint,
// e.g. "7") answer with status and a plain-text body. Use "" for the
// list/search route.
func (s *Server) FailWith(route string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing[route] = status
}

// Requests returns a copy of all recorded requests.
func (s *Server) Requests() []*RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*RecordedRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

// RequestCount returns the number of requests received.
func (s *Server) RequestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

// LastRequest returns the last recorded request.
func (s *Server) LastRequest() *RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return nil
	}
	return s.requests[len(s.requests)-1]
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, &RecordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Header: r.Header.Clone(),
			Time:   time.Now(),
		})
		delay := s.delay
		status, fail := s.failing[strings.TrimPrefix(strings.TrimPrefix(r.URL.Path, "/api/character"), "/")]
		s.mu.Unlock()

		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-r.Context().Done():
				return
			}
		}
		if fail {
			w.WriteHeader(status)
			w.Write([]byte("upstream unavailable"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	name := strings.ToLower(r.URL.Query().Get("name"))

	s.mu.Lock()
	var matches []core.Character
	for _, c := range s.characters {
		if name == "" || strings.Contains(strings.ToLower(c.Name), name) {
			matches = append(matches, c)
		}
	}
	s.mu.Unlock()

	if len(matches) == 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "There is nothing here"})
		return
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })
	writeJSON(w, http.StatusOK, core.SearchResult{
		Info:    &core.PageInfo{Count: len(matches), Pages: 1},
		Results: matches,
	})
}

func (s *Server) handleByID(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	s.mu.Lock()
	c, ok := s.characters[id]
	s.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Character not found"})
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleBadID(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Hey! you must provide an id"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
