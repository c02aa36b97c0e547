package hub

import (
	"testing"

	"modelhub/internal/proxy"
)

func TestPhaseTransitions(t *testing.T) {
	tests := []struct {
		name      string
		adminView bool
		setFlag   *bool
		want      Phase
	}{
		{name: "loading before settings fetch", want: PhaseLoading},
		{name: "public when flag true", setFlag: boolPtr(true), want: PhasePublic},
		{name: "disabled when flag false", setFlag: boolPtr(false), want: PhaseDisabled},
		{name: "admin regardless of flag", adminView: true, setFlag: boolPtr(false), want: PhaseAdmin},
		{name: "admin before settings fetch", adminView: true, want: PhaseAdmin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore(tt.adminView)
			if tt.setFlag != nil {
				s.SetFlag(*tt.setFlag)
			}
			if got := s.Phase(); got != tt.want {
				t.Errorf("Phase() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestToggleRerendersWithoutReload(t *testing.T) {
	s := NewStore(false)
	s.SetFlag(false)
	if s.Phase() != PhaseDisabled {
		t.Fatalf("Phase() = %v, want disabled", s.Phase())
	}
	// Admin write path succeeded; local flag flips and the next render is public.
	s.SetFlag(true)
	if s.Phase() != PhasePublic {
		t.Errorf("Phase() = %v, want public after toggle", s.Phase())
	}
}

func TestReplaceGroupsIsWholesale(t *testing.T) {
	s := NewStore(false)
	first := []proxy.ModelGroup{{ModelGroup: "gpt-4"}, {ModelGroup: "claude-3"}}
	s.ReplaceGroups(first)

	// Mutating the caller's slice must not leak into the store.
	first[0].ModelGroup = "mutated"
	if s.Groups()[0].ModelGroup != "gpt-4" {
		t.Error("store should hold its own copy of the list")
	}

	s.ReplaceGroups([]proxy.ModelGroup{{ModelGroup: "solo"}})
	if got := s.Groups(); len(got) != 1 || got[0].ModelGroup != "solo" {
		t.Errorf("Groups() = %v, want wholesale replacement", got)
	}
}

func TestSelection(t *testing.T) {
	s := NewStore(false)
	if _, ok := s.Selected(); ok {
		t.Fatal("no selection expected initially")
	}

	g := proxy.ModelGroup{ModelGroup: "gpt-4", Mode: "chat"}
	s.Select(g)
	sel, ok := s.Selected()
	if !ok || sel.ModelGroup != "gpt-4" {
		t.Fatalf("Selected() = %+v, %v", sel, ok)
	}

	s.ClearSelection()
	if _, ok := s.Selected(); ok {
		t.Error("selection should be cleared on modal close")
	}
}

func TestShareLink(t *testing.T) {
	if got := ShareLink("https://proxy.example.com/", "sk-1234"); got != "https://proxy.example.com/model_hub?key=sk-1234" {
		t.Errorf("ShareLink() = %q", got)
	}
	if got := ShareLink("https://proxy.example.com", "sk/12+34"); got != "https://proxy.example.com/model_hub?key=sk%2F12%2B34" {
		t.Errorf("ShareLink() = %q, token must be query-escaped", got)
	}
	if got := ShareLinkTemplate("https://proxy.example.com"); got != "https://proxy.example.com/model_hub?key=<your_api_key>" {
		t.Errorf("ShareLinkTemplate() = %q", got)
	}
}

func boolPtr(b bool) *bool { return &b }
