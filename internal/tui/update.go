package tui

import (
	"sort"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/skratchdot/open-golang/open"

	"modelhub/internal/hub"
	"modelhub/internal/proxy"
)

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.w, m.h = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case groupsMsg:
		m.loadingGroups = false
		m.fromCache = msg.fromCache
		if msg.groups != nil {
			m.store.ReplaceGroups(msg.groups)
			if m.selected >= len(m.visibleGroups()) {
				m.selected = 0
			}
		}
		if msg.err != nil {
			m.status = "model list fetch failed: " + firstLine(msg.err.Error())
		}
		return m, nil

	case settingMsg:
		// Completion of the settings fetch drives the policy transition,
		// even when the read failed and we fell back to a cached value.
		m.store.SetFlag(msg.value)
		if msg.err != nil {
			m.status = "settings fetch failed: " + firstLine(msg.err.Error())
		}
		return m, nil

	case settingSavedMsg:
		m.saving = false
		if msg.err != nil {
			// Flag state is left unchanged on failure.
			m.status = "could not update visibility: " + firstLine(msg.err.Error())
			return m, nil
		}
		m.store.SetFlag(msg.value)
		if msg.value {
			m.showDetail = false
			m.showShare = true
			return m, m.toastCmd("public model hub enabled")
		}
		return m, m.toastCmd("public model hub disabled")

	case refreshTickMsg:
		cmds := []tea.Cmd{
			m.fetchGroupsCmd(),
			tea.Tick(m.refreshInterval(), func(t time.Time) tea.Msg { return refreshTickMsg(t) }),
		}
		return m, tea.Batch(cmds...)

	case toastMsg:
		if msg.text == m.toast {
			m.toast = ""
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.filterOn {
		return m.updateFilter(msg)
	}
	if m.showShare {
		return m.updateShareModal(msg)
	}
	if m.showDetail {
		return m.updateDetailModal(msg)
	}
	return m.updateList(msg)
}

func (m *Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	groups := m.visibleGroups()

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "x":
		m.status = ""
		return m, nil

	case "j", "down":
		if m.selected < len(groups)-1 {
			m.selected++
		}
		return m, nil

	case "k", "up":
		if m.selected > 0 {
			m.selected--
		}
		return m, nil

	case "/":
		m.filterOn = true
		m.filterInput.SetValue(m.filter)
		m.filterInput.Focus()
		return m, nil

	case "enter":
		if m.selected >= 0 && m.selected < len(groups) && m.canBrowse() {
			m.openDetail(groups[m.selected])
		}
		return m, nil

	case "c":
		if m.selected >= 0 && m.selected < len(groups) {
			name := groups[m.selected].ModelGroup
			if err := clipboard.WriteAll(name); err != nil {
				m.log.Warnf("clipboard: %v", err)
				return m, nil
			}
			return m, m.toastCmd("copied: " + name)
		}
		return m, nil

	case "r":
		if m.client.HasToken() {
			m.loadingGroups = true
			return m, tea.Batch(m.fetchGroupsCmd(), m.fetchSettingCmd())
		}
		return m, nil

	case "s":
		if m.store.AdminView() {
			m.showDetail = false
			m.showShare = true
		}
		return m, nil

	case "P":
		// Write path only reachable on the admin variant.
		if m.store.AdminView() && m.client.HasToken() && !m.saving {
			m.saving = true
			return m, m.saveSettingCmd(!m.store.Flag())
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "ctrl+j":
		m.filterOn = false
		m.filterInput.Blur()
		m.filter = strings.TrimSpace(m.filterInput.Value())
		m.selected = 0
		return m, nil
	case "esc":
		m.filterOn = false
		m.filterInput.SetValue("")
		m.filterInput.Blur()
		m.filter = ""
		m.selected = 0
		return m, nil
	}
	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	return m, cmd
}

func (m *Model) updateDetailModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.closeModals()
		return m, nil

	case "tab", "right", "l":
		if len(m.tabs) > 0 {
			m.detailTab = (m.detailTab + 1) % len(m.tabs)
		}
		return m, nil

	case "shift+tab", "left", "h":
		if len(m.tabs) > 0 {
			m.detailTab = (m.detailTab + len(m.tabs) - 1) % len(m.tabs)
		}
		return m, nil

	case "1", "2", "3", "4":
		idx := int(msg.String()[0] - '1')
		if idx < len(m.tabs) {
			m.detailTab = idx
		}
		return m, nil

	case "y":
		if m.detailTab < len(m.tabs) {
			if err := clipboard.WriteAll(m.tabs[m.detailTab].Body); err != nil {
				m.log.Warnf("clipboard: %v", err)
				return m, nil
			}
			return m, m.toastCmd("copied " + m.tabs[m.detailTab].Title + " snippet")
		}
		return m, nil

	case "c":
		if sel, ok := m.store.Selected(); ok {
			if err := clipboard.WriteAll(sel.ModelGroup); err != nil {
				m.log.Warnf("clipboard: %v", err)
				return m, nil
			}
			return m, m.toastCmd("copied: " + sel.ModelGroup)
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) updateShareModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.closeModals()
		return m, nil

	case "c":
		link := hub.ShareLink(m.cfg.Proxy.BaseURL, m.tokenForShare())
		if err := clipboard.WriteAll(link); err != nil {
			m.log.Warnf("clipboard: %v", err)
			return m, nil
		}
		return m, m.toastCmd("share link copied")

	case "o":
		link := hub.ShareLink(m.cfg.Proxy.BaseURL, m.tokenForShare())
		if err := open.Run(link); err != nil {
			m.log.Warnf("open browser: %v", err)
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) tokenForShare() string {
	return m.token
}

// canBrowse reports whether the current phase renders the grid at all.
func (m *Model) canBrowse() bool {
	p := m.store.Phase()
	return p == hub.PhasePublic || p == hub.PhaseAdmin
}

// visibleGroups applies the fuzzy filter over model group identifiers,
// ranked by match quality. With no filter, fetch order is preserved.
func (m *Model) visibleGroups() []proxy.ModelGroup {
	groups := m.store.Groups()
	if m.filter == "" {
		return groups
	}
	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = g.ModelGroup
	}
	ranks := fuzzy.RankFindFold(m.filter, names)
	sort.Sort(ranks)
	out := make([]proxy.ModelGroup, 0, len(ranks))
	for _, r := range ranks {
		out = append(out, groups[r.OriginalIndex])
	}
	return out
}

func (m *Model) toastCmd(text string) tea.Cmd {
	m.toast = text
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg { return toastMsg{text: text} })
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
