package core

import (
	"encoding/json"
	"fmt"
)

// FavoriteSet is an insertion-ordered set of character ids.
// Operations return a new set and leave the receiver untouched.
type FavoriteSet struct {
	ids []int
}

// NewFavoriteSet builds a set from ids, dropping duplicates.
func NewFavoriteSet(ids ...int) FavoriteSet {
	s := FavoriteSet{ids: make([]int, 0, len(ids))}
	seen := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		s.ids = append(s.ids, id)
	}
	return s
}

// Contains reports whether id is in the set.
func (s FavoriteSet) Contains(id int) bool {
	for _, v := range s.ids {
		if v == id {
			return true
		}
	}
	return false
}

// Len returns the number of ids.
func (s FavoriteSet) Len() int {
	return len(s.ids)
}

// IDs returns a copy of the ids in insertion order.
func (s FavoriteSet) IDs() []int {
	out := make([]int, len(s.ids))
	copy(out, s.ids)
	return out
}

// Toggle removes id when present, otherwise appends it.
func (s FavoriteSet) Toggle(id int) FavoriteSet {
	if s.Contains(id) {
		return s.Remove(id)
	}
	out := FavoriteSet{ids: make([]int, len(s.ids), len(s.ids)+1)}
	copy(out.ids, s.ids)
	out.ids = append(out.ids, id)
	return out
}

// Remove drops id if present.
func (s FavoriteSet) Remove(id int) FavoriteSet {
	out := FavoriteSet{ids: make([]int, 0, len(s.ids))}
	for _, v := range s.ids {
		if v != id {
			out.ids = append(out.ids, v)
		}
	}
	return out
}

// Equal reports whether both sets hold the same ids, ignoring order.
func (s FavoriteSet) Equal(other FavoriteSet) bool {
	if s.Len() != other.Len() {
		return false
	}
	for _, id := range s.ids {
		if !other.Contains(id) {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the set as a JSON array of ids.
func (s FavoriteSet) MarshalJSON() ([]byte, error) {
	if s.ids == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.ids)
}

// UnmarshalJSON decodes a JSON array of ids.
func (s *FavoriteSet) UnmarshalJSON(data []byte) error {
	var ids []int
	if err := json.Unmarshal(data, &ids); err != nil {
		return fmt.Errorf("invalid favorites payload: %w", err)
	}
	*s = NewFavoriteSet(ids...)
	return nil
}
