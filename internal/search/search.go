// Package search runs name queries against the catalog and tracks which
// query's result is current.
package search

import (
	"context"
	"io"
	"log"
	"os"
	"sync"

	"github.com/artpar/rickdex/internal/core"
)

// NoResultsMessage is shown when a query resolves to nothing or fails.
const NoResultsMessage = "No characters found."

// State is the lifecycle of one search interaction.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateLoaded
	StateEmpty
	StateErrored
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateEmpty:
		return "empty"
	case StateErrored:
		return "errored"
	default:
		return "unknown"
	}
}

// Lookup is the name-search capability the searcher needs.
type Lookup interface {
	FetchByName(ctx context.Context, name string) (*core.SearchResult, error)
}

// Ticket identifies one issued query.
type Ticket struct {
	Seq   uint64
	Query string
	ctx   context.Context
}

// Result is the resolved outcome of a query.
type Result struct {
	Seq        uint64
	Query      string
	State      State
	Characters []core.Character
	Message    string
	Err        error
}

// Searcher issues queries and discards superseded ones. Starting a new query
// cancels the one still in flight.
type Searcher struct {
	lookup Lookup
	logger *log.Logger

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

// Option is a function that configures the Searcher.
type Option func(*Searcher)

// WithLogger sets the logger used for failed queries.
func WithLogger(logger *log.Logger) Option {
	return func(s *Searcher) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a searcher over lookup.
func New(lookup Lookup, opts ...Option) *Searcher {
	s := &Searcher{
		lookup: lookup,
		logger: log.New(os.Stderr, "[search] ", log.LstdFlags),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Quiet returns an option that discards log output.
func Quiet() Option {
	return WithLogger(log.New(io.Discard, "", 0))
}

// Begin registers query as the latest one and cancels the previous in-flight query.
// The returned ticket is derived from parent.
func (s *Searcher) Begin(parent context.Context, query string) Ticket {
	ctx, cancel := context.WithCancel(parent)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
	s.seq++
	s.cancel = cancel
	return Ticket{Seq: s.seq, Query: query, ctx: ctx}
}

// Latest returns the sequence number of the most recently issued query.
func (s *Searcher) Latest() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq
}

// IsCurrent reports whether seq belongs to the most recently issued query.
func (s *Searcher) IsCurrent(seq uint64) bool {
	return seq == s.Latest()
}

// Run resolves the ticket's query. An empty query is Idle and makes no call.
func (s *Searcher) Run(t Ticket) Result {
	r := Result{Seq: t.Seq, Query: t.Query}
	ctx := t.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	defer s.release(t.Seq)

	if len(t.Query) == 0 {
		r.State = StateIdle
		return r
	}

	envelope, err := s.lookup.FetchByName(ctx, t.Query)
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Printf("search %q failed: %v", t.Query, err)
		}
		r.State = StateErrored
		r.Message = NoResultsMessage
		r.Err = err
		return r
	}

	if !envelope.HasResults() {
		r.State = StateEmpty
		r.Message = NoResultsMessage
		return r
	}

	r.State = StateLoaded
	r.Characters = envelope.Results
	return r
}

// Search begins and runs query in one step.
func (s *Searcher) Search(ctx context.Context, query string) Result {
	return s.Run(s.Begin(ctx, query))
}

// release drops the cancel func once the latest query has resolved.
func (s *Searcher) release(seq uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq == s.seq && s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
