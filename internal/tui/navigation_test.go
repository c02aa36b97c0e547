package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"modelhub/internal/proxy"
)

func key(r rune) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}} }

func TestCursorStaysInBounds(t *testing.T) {
	m := newTestModel(t, false, "sk-test")
	m.Update(groupsMsg{groups: sampleGroups()})
	m.Update(settingMsg{value: true})

	m.Update(key('k'))
	if m.selected != 0 {
		t.Errorf("selected = %d, cursor must not go above the first card", m.selected)
	}

	for i := 0; i < 10; i++ {
		m.Update(key('j'))
	}
	if m.selected != 2 {
		t.Errorf("selected = %d, cursor must stop at the last card", m.selected)
	}
}

func TestFuzzyFilter(t *testing.T) {
	m := newTestModel(t, false, "sk-test")
	m.Update(groupsMsg{groups: sampleGroups()})
	m.Update(settingMsg{value: true})

	m.Update(key('/'))
	if !m.filterOn {
		t.Fatal("filter input should be active")
	}
	for _, r := range "embed" {
		m.Update(key(r))
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	got := m.visibleGroups()
	if len(got) != 1 || got[0].ModelGroup != "text-embedding-3-small" {
		t.Errorf("visibleGroups() = %v, want only the embedding model", names(got))
	}

	// Esc clears the filter and restores fetch order.
	m.Update(key('/'))
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if len(m.visibleGroups()) != 3 {
		t.Error("clearing the filter should restore the full list")
	}
}

func TestFilterResetsCursor(t *testing.T) {
	m := newTestModel(t, false, "sk-test")
	m.Update(groupsMsg{groups: sampleGroups()})
	m.Update(settingMsg{value: true})

	m.Update(key('j'))
	m.Update(key('j'))
	m.Update(key('/'))
	for _, r := range "gpt" {
		m.Update(key(r))
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if m.selected != 0 {
		t.Errorf("selected = %d, cursor must reset when the filter changes", m.selected)
	}
}

func TestRefetchReplacesListWholesale(t *testing.T) {
	m := newTestModel(t, false, "sk-test")
	m.Update(groupsMsg{groups: sampleGroups()})
	m.Update(settingMsg{value: true})
	m.Update(key('j'))
	m.Update(key('j'))

	m.Update(groupsMsg{groups: []proxy.ModelGroup{{ModelGroup: "only-one"}}})
	groups := m.visibleGroups()
	if len(groups) != 1 || groups[0].ModelGroup != "only-one" {
		t.Errorf("groups = %v, want wholesale replacement", names(groups))
	}
	if m.selected != 0 {
		t.Errorf("selected = %d, cursor must be clamped after shrink", m.selected)
	}
}

func TestDismissStatusLine(t *testing.T) {
	m := newTestModel(t, false, "sk-test")
	m.Update(settingMsg{value: true})
	m.status = "model list fetch failed: boom"

	m.Update(key('x'))
	if m.status != "" {
		t.Error("x should dismiss the status line")
	}
}

func names(groups []proxy.ModelGroup) []string {
	out := make([]string, len(groups))
	for i, g := range groups {
		out[i] = g.ModelGroup
	}
	return out
}
