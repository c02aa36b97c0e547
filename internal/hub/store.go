package hub

import (
	"modelhub/internal/proxy"
)

// Phase is the render branch selected by the visibility policy.
type Phase int

const (
	// PhaseLoading means the public flag is not known yet.
	PhaseLoading Phase = iota
	// PhasePublic renders the grid to any valid token holder.
	PhasePublic
	// PhaseAdmin renders the private admin variant regardless of the flag.
	PhaseAdmin
	// PhaseDisabled renders the "not enabled" placeholder.
	PhaseDisabled
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhasePublic:
		return "public"
	case PhaseAdmin:
		return "admin"
	default:
		return "disabled"
	}
}

// Store owns the hub page state: the fetched model list, the cached public
// flag, and the transient card selection. It has a single writer (the page)
// and all updates are total replacements, so no partial-update races exist.
type Store struct {
	adminView bool

	groups    []proxy.ModelGroup
	flag      bool
	flagKnown bool

	selected    proxy.ModelGroup
	hasSelected bool
}

func NewStore(adminView bool) *Store {
	return &Store{adminView: adminView}
}

// ReplaceGroups swaps in a freshly fetched model list. The list is never
// mutated in place; last fetch wins.
func (s *Store) ReplaceGroups(groups []proxy.ModelGroup) {
	next := make([]proxy.ModelGroup, len(groups))
	copy(next, groups)
	s.groups = next
}

func (s *Store) Groups() []proxy.ModelGroup { return s.groups }

// SetFlag records the public-hub flag once the settings fetch completes.
func (s *Store) SetFlag(v bool) {
	s.flag = v
	s.flagKnown = true
}

func (s *Store) Flag() bool      { return s.flag }
func (s *Store) FlagKnown() bool { return s.flagKnown }

// AdminView reports whether this page instance is the private admin variant.
func (s *Store) AdminView() bool { return s.adminView }

// Phase applies the visibility policy. The result is terminal until the
// access token changes (which re-creates the store).
func (s *Store) Phase() Phase {
	switch {
	case s.adminView:
		return PhaseAdmin
	case !s.flagKnown:
		return PhaseLoading
	case s.flag:
		return PhasePublic
	default:
		return PhaseDisabled
	}
}

// Select records a value copy of the opened card's model group.
func (s *Store) Select(g proxy.ModelGroup) {
	s.selected = g
	s.hasSelected = true
}

// Selected returns the current selection, if any.
func (s *Store) Selected() (proxy.ModelGroup, bool) {
	return s.selected, s.hasSelected
}

// ClearSelection drops the selection; called when any modal closes.
func (s *Store) ClearSelection() {
	s.selected = proxy.ModelGroup{}
	s.hasSelected = false
}
