package mdsource

import (
	"sort"
)

// Wildcard matches every member of a type in a ComponentSet.
const Wildcard = "*"

// Member is the {fullName, type} pair handed to external collaborators such
// as manifest writers. Type is the registry display name (e.g. "ApexClass").
type Member struct {
	FullName string `json:"fullName"`
	Type     string `json:"type"`
}

// Key returns a stable identity for the member.
func (m Member) Key() string {
	return m.Type + "#" + m.FullName
}

// InclusiveFilter down-selects resolved components to a wanted set.
type InclusiveFilter interface {
	Has(m Member) bool
}

// ComponentSet is an insertion-ordered set of members.
// It is not safe for concurrent mutation.
type ComponentSet struct {
	members []Member
	index   map[string]struct{}
}

// NewComponentSet creates a set holding the given members.
func NewComponentSet(members ...Member) *ComponentSet {
	s := &ComponentSet{index: make(map[string]struct{})}
	for _, m := range members {
		s.Add(m)
	}
	return s
}

// Add inserts m, returning false when it was already present.
func (s *ComponentSet) Add(m Member) bool {
	if s.index == nil {
		s.index = make(map[string]struct{})
	}
	if _, ok := s.index[m.Key()]; ok {
		return false
	}
	s.index[m.Key()] = struct{}{}
	s.members = append(s.members, m)
	return true
}

// Has reports whether m is in the set, either directly or through a
// wildcard entry for its type.
func (s *ComponentSet) Has(m Member) bool {
	if s == nil || s.index == nil {
		return false
	}
	if _, ok := s.index[m.Key()]; ok {
		return true
	}
	_, ok := s.index[Member{FullName: Wildcard, Type: m.Type}.Key()]
	return ok
}

// Len returns the number of members.
func (s *ComponentSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.members)
}

// Members returns a copy of the members in insertion order.
func (s *ComponentSet) Members() []Member {
	if s == nil {
		return nil
	}
	out := make([]Member, len(s.members))
	copy(out, s.members)
	return out
}

// Types groups member names by type, both sorted, which is the shape
// manifest writers consume.
func (s *ComponentSet) Types() map[string][]string {
	grouped := make(map[string][]string)
	if s == nil {
		return grouped
	}
	for _, m := range s.members {
		grouped[m.Type] = append(grouped[m.Type], m.FullName)
	}
	for _, names := range grouped {
		sort.Strings(names)
	}
	return grouped
}

var _ InclusiveFilter = (*ComponentSet)(nil)
