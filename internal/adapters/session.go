package adapters

import (
	"github.com/vvka-141/mdsource/internal/component"
)

// Session carries state shared by the adapters of one resolve call. It
// replaces process-wide indices: every call builds its own and drops it when
// done. A nil *Session shares nothing.
type Session struct {
	parents map[string]*component.Component
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{parents: make(map[string]*component.Component)}
}

// parent returns the parent component already built for typeID at
// contentPath, building it on first use so that siblings share one parent.
func (s *Session) parent(typeID, contentPath string, build func() *component.Component) *component.Component {
	if s == nil {
		return build()
	}
	key := typeID + "|" + contentPath
	if c, ok := s.parents[key]; ok {
		return c
	}
	c := build()
	s.parents[key] = c
	return c
}
