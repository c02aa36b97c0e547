package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"modelhub/internal/hub"
	"modelhub/internal/proxy"
)

func (m *Model) View() string {
	if m.w == 0 {
		m.w = 100
	}
	if m.h == 0 {
		m.h = 30
	}

	var sb strings.Builder
	sb.WriteString(m.renderHeader())
	sb.WriteString("\n")

	if m.showShare {
		sb.WriteString(m.renderShareModal())
		sb.WriteString("\n")
		sb.WriteString(m.renderStatusLine())
		return sb.String()
	}
	if m.showDetail {
		sb.WriteString(m.renderDetailModal())
		sb.WriteString("\n")
		sb.WriteString(m.renderStatusLine())
		return sb.String()
	}

	switch m.store.Phase() {
	case hub.PhaseLoading:
		sb.WriteString(m.th.label.Render("Loading model hub..."))
		sb.WriteString("\n")
	case hub.PhaseDisabled:
		sb.WriteString(m.renderDisabled())
	default:
		sb.WriteString(m.renderGrid())
	}

	sb.WriteString("\n")
	sb.WriteString(m.renderFooter())
	sb.WriteString("\n")
	sb.WriteString(m.renderStatusLine())
	return sb.String()
}

func (m *Model) renderHeader() string {
	title := m.th.title.Render("Model Hub")
	badge := m.th.label.Render(m.store.Phase().String())
	if m.store.AdminView() {
		badge = m.th.head.Render("admin")
	}
	var extras []string
	if !m.client.HasToken() {
		extras = append(extras, m.th.bad.Render("no key"))
	}
	if m.fromCache {
		extras = append(extras, m.th.label.Render("cached"))
	}
	if m.loadingGroups {
		extras = append(extras, m.th.label.Render("fetching..."))
	}
	line := title + "  " + badge
	if len(extras) > 0 {
		line += "  " + strings.Join(extras, " ")
	}
	return m.th.border.Width(m.w - 2).Render(line)
}

func (m *Model) renderDisabled() string {
	var sb strings.Builder
	sb.WriteString(m.th.head.Render("Public model hub is not enabled") + "\n\n")
	if !m.client.HasToken() {
		sb.WriteString(m.th.label.Render("No access key supplied. Pass --key or set the variable named by proxy.token_env.") + "\n")
	} else {
		sb.WriteString(m.th.label.Render("Ask your proxy admin to enable it, or open the admin variant (proxy.admin_view: true).") + "\n")
	}
	return sb.String()
}

func (m *Model) renderGrid() string {
	groups := m.visibleGroups()
	if len(groups) == 0 {
		if m.filter != "" {
			return m.th.label.Render(fmt.Sprintf("No models match %q.", m.filter)) + "\n"
		}
		return m.th.label.Render("No model groups available.") + "\n"
	}

	cardW := 34
	cols := m.w / (cardW + 2)
	if cols < 1 {
		cols = 1
	}
	if cols > 3 {
		cols = 3
	}

	var rows []string
	for start := 0; start < len(groups); start += cols {
		end := start + cols
		if end > len(groups) {
			end = len(groups)
		}
		cards := make([]string, 0, cols)
		for i := start; i < end; i++ {
			cards = append(cards, m.renderCard(groups[i], i == m.selected, cardW))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}

	var sb strings.Builder
	if m.filterOn {
		sb.WriteString(m.filterInput.View() + "\n")
	} else if m.filter != "" {
		sb.WriteString(m.th.label.Render(fmt.Sprintf("Filter: %q (%d match)", m.filter, len(groups))) + "\n")
	}
	sb.WriteString(strings.Join(rows, "\n"))
	return sb.String()
}

func (m *Model) renderCard(g proxy.ModelGroup, selected bool, width int) string {
	var sb strings.Builder
	sb.WriteString(m.th.head.Render(truncateMiddle(g.ModelGroup, width-4)) + "\n")
	if g.Mode != "" {
		sb.WriteString(m.th.label.Render("Mode: ") + g.Mode + "\n")
	}
	if !m.cfg.UI.Compact {
		sb.WriteString(m.th.label.Render("Function Calling: ") + yesNo(g.SupportsFunctionCalling) + "\n")
		sb.WriteString(m.th.label.Render("Supports Vision: ") + yesNo(g.SupportsVision) + "\n")
	}
	sb.WriteString(m.th.label.Render("Max Input Tokens: ") + tokenLimit(g.MaxInputTokens) + "\n")
	sb.WriteString(m.th.label.Render("Max Output Tokens: ") + tokenLimit(g.MaxOutputTokens))

	border := m.th.border
	if selected {
		border = m.th.borderFocus
	}
	return border.Width(width).Render(sb.String())
}

func (m *Model) renderDetailModal() string {
	sel, ok := m.store.Selected()
	if !ok {
		return m.th.label.Render("No selection")
	}

	var sb strings.Builder
	sb.WriteString(m.th.head.Render(sel.ModelGroup) + "\n")
	meta := fmt.Sprintf("Mode: %s  •  Function Calling: %s  •  Vision: %s  •  In: %s  •  Out: %s",
		sel.Mode, yesNo(sel.SupportsFunctionCalling), yesNo(sel.SupportsVision),
		tokenLimit(sel.MaxInputTokens), tokenLimit(sel.MaxOutputTokens))
	sb.WriteString(m.th.label.Render(meta) + "\n\n")

	var tabsLine []string
	for i, tab := range m.tabs {
		style := m.th.tabInactive
		if i == m.detailTab {
			style = m.th.tabActive
		}
		tabsLine = append(tabsLine, style.Render(fmt.Sprintf("%d %s", i+1, tab.Title)))
	}
	sb.WriteString(strings.Join(tabsLine, m.th.label.Render(" | ")) + "\n\n")

	if m.detailTab < len(m.tabs) {
		sb.WriteString(m.tabs[m.detailTab].Body)
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.th.footer.Render("tab/1-4 switch • y copy snippet • c copy model id • esc close"))
	return m.th.border.Width(m.w - 2).Render(sb.String())
}

func (m *Model) renderShareModal() string {
	var sb strings.Builder
	sb.WriteString(m.th.head.Render("Share the public model hub") + "\n\n")
	sb.WriteString(m.th.label.Render("Anyone with a valid key can browse the hub at:") + "\n")
	sb.WriteString(hub.ShareLinkTemplate(m.cfg.Proxy.BaseURL) + "\n\n")
	if !m.store.Flag() {
		sb.WriteString(m.th.bad.Render("The hub is not public yet. Press P on the grid to enable it.") + "\n\n")
	}
	sb.WriteString(m.th.footer.Render("c copy link with your key • o open in browser • esc close"))
	return m.th.border.Width(m.w - 2).Render(sb.String())
}

func (m *Model) renderFooter() string {
	keys := "j/k navigate • enter details • c copy id • / filter • r refresh • q quit"
	if m.store.AdminView() {
		action := "P make public"
		if m.store.Flag() {
			action = "P make private"
		}
		keys = keys + " • " + action + " • s share"
	}
	return m.th.border.Width(m.w - 2).Render(m.th.footer.Render(keys))
}

func (m *Model) renderStatusLine() string {
	if m.toast != "" {
		return m.th.ok.Render(m.toast)
	}
	if m.status != "" {
		return m.th.bad.Render(m.status) + m.th.label.Render("  (x to dismiss)")
	}
	return ""
}

// Presence rules: booleans render Yes/No, absent numeric limits render N/A.

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func tokenLimit(p *int64) string {
	if p == nil {
		return "N/A"
	}
	return humanize.Comma(*p)
}
