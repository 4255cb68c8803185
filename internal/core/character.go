package core

import (
	"strings"
	"time"
)

// Place is a named reference to an origin or location resource.
type Place struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Character is a single record from the character catalog.
// Records are never modified locally.
type Character struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Status   string   `json:"status"`
	Species  string   `json:"species"`
	Type     string   `json:"type"`
	Gender   string   `json:"gender"`
	Origin   Place    `json:"origin"`
	Location Place    `json:"location"`
	Image    string   `json:"image"`
	Episode  []string `json:"episode"`
	URL      string   `json:"url"`
	Created  string   `json:"created"`
}

// FirstEpisode returns the episode number of the character's first appearance,
// taken from the last path segment of the first episode URL.
func (c *Character) FirstEpisode() string {
	if len(c.Episode) == 0 {
		return ""
	}
	ep := strings.TrimRight(c.Episode[0], "/")
	if idx := strings.LastIndex(ep, "/"); idx >= 0 {
		return ep[idx+1:]
	}
	return ep
}

// EpisodeCount returns the number of episodes the character appears in.
func (c *Character) EpisodeCount() int {
	return len(c.Episode)
}

// CreatedAt parses the created timestamp.
func (c *Character) CreatedAt() (time.Time, error) {
	return time.Parse(time.RFC3339Nano, c.Created)
}

// CreatedDate returns the creation date as dd/mm/yyyy, or "" when the
// timestamp is missing or malformed.
func (c *Character) CreatedDate() string {
	t, err := c.CreatedAt()
	if err != nil {
		return ""
	}
	return t.Format("02/01/2006")
}

// PageInfo is the pagination block of a list response.
type PageInfo struct {
	Count int    `json:"count"`
	Pages int    `json:"pages"`
	Next  string `json:"next"`
	Prev  string `json:"prev"`
}

// SearchResult is the envelope returned by list and name-search calls.
// Error holds the server's message when it answered with an error shape.
type SearchResult struct {
	Info    *PageInfo   `json:"info,omitempty"`
	Results []Character `json:"results"`
	Error   string      `json:"error,omitempty"`
}

// HasResults reports whether the envelope carries at least one character.
func (r *SearchResult) HasResults() bool {
	return r != nil && len(r.Results) > 0
}
