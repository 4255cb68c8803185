package favorites

import (
	"context"
	"log"
	"sync"

	"github.com/artpar/rickdex/internal/core"
)

// Fetcher resolves a character by id.
type Fetcher interface {
	FetchByID(ctx context.Context, id int) (*core.Character, error)
}

// Hydration is the outcome of resolving a set of favorite ids.
// Characters keeps the order of the ids that resolved; Failed holds the rest.
type Hydration struct {
	Characters []core.Character
	Failed     map[int]error
}

// FailedIDs returns the ids that did not resolve, in request order.
func (h Hydration) FailedIDs(ids []int) []int {
	var out []int
	for _, id := range ids {
		if _, ok := h.Failed[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

// HydrateOption configures Hydrate.
type HydrateOption func(*hydrateConfig)

type hydrateConfig struct {
	concurrency int
	logger      *log.Logger
}

// WithConcurrency caps the number of lookups in flight. Zero or less means no cap.
func WithConcurrency(n int) HydrateOption {
	return func(c *hydrateConfig) {
		c.concurrency = n
	}
}

// WithHydrateLogger sets the logger used for failed lookups.
func WithHydrateLogger(logger *log.Logger) HydrateOption {
	return func(c *hydrateConfig) {
		c.logger = logger
	}
}

// Hydrate fetches every id concurrently. Lookups that fail are skipped and
// recorded in Failed; the rest are returned in id order.
func Hydrate(ctx context.Context, fetcher Fetcher, ids []int, opts ...HydrateOption) Hydration {
	cfg := hydrateConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	type outcome struct {
		character *core.Character
		err       error
	}
	outcomes := make([]outcome, len(ids))

	var sem chan struct{}
	if cfg.concurrency > 0 {
		sem = make(chan struct{}, cfg.concurrency)
	}

	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(i, id int) {
			defer wg.Done()
			if sem != nil {
				select {
				case sem <- struct{}{}:
					defer func() { <-sem }()
				case <-ctx.Done():
					outcomes[i] = outcome{err: ctx.Err()}
					return
				}
			}
			c, err := fetcher.FetchByID(ctx, id)
			if err == nil && c == nil {
				err = &core.NetworkError{Op: "fetch by id", Message: "empty response"}
			}
			outcomes[i] = outcome{character: c, err: err}
		}(i, id)
	}
	wg.Wait()

	h := Hydration{Failed: make(map[int]error)}
	for i, id := range ids {
		o := outcomes[i]
		if o.err != nil {
			h.Failed[id] = o.err
			if cfg.logger != nil {
				cfg.logger.Printf("skipping favorite %d: %v", id, o.err)
			}
			continue
		}
		h.Characters = append(h.Characters, *o.character)
	}
	return h
}
