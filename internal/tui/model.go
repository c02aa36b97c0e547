package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"modelhub/internal/cache"
	"modelhub/internal/config"
	"modelhub/internal/hub"
	"modelhub/internal/logging"
	"modelhub/internal/proxy"
	"modelhub/internal/snippets"
)

// Model drives the Model Hub dashboard: a card grid over the proxy's model
// groups, a detail view with code-sample tabs, and the admin visibility
// toggle with its share-link dialog.
type Model struct {
	cfg    *config.Config
	log    *logging.Logger
	client *proxy.Client
	db     *cache.DB // nil when cache.enabled is false
	store  *hub.Store
	token  string // resolved access token, used for the real share link

	w, h int
	th   Theme

	selected    int
	filterOn    bool
	filter      string
	filterInput textinput.Model

	showDetail bool
	detailTab  int
	tabs       []snippets.Tab

	showShare bool

	loadingGroups bool
	fromCache     bool
	saving        bool

	status string // dismissible error line, non-blocking
	toast  string
}

type groupsMsg struct {
	groups    []proxy.ModelGroup
	fromCache bool
	err       error
}

type settingMsg struct {
	value bool
	err   error
}

type settingSavedMsg struct {
	value bool
	err   error
}

type refreshTickMsg time.Time

type toastMsg struct{ text string }

func New(cfg *config.Config, log *logging.Logger, client *proxy.Client, db *cache.DB, token string) *Model {
	fi := textinput.New()
	fi.Placeholder = "Filter models..."
	return &Model{
		cfg:         cfg,
		log:         log,
		client:      client,
		db:          db,
		token:       token,
		store:       hub.NewStore(cfg.Proxy.AdminView),
		th:          themeByName(cfg.UI.Theme),
		filterInput: fi,
	}
}

// Store exposes the view state for tests and the CLI.
func (m *Model) Store() *hub.Store { return m.store }

func (m *Model) Init() tea.Cmd {
	if !m.client.HasToken() {
		// Absent token suppresses fetching entirely; the policy settles on
		// the gated view.
		m.store.SetFlag(false)
		return nil
	}
	m.loadingGroups = true
	cmds := []tea.Cmd{m.fetchGroupsCmd(), m.fetchSettingCmd()}
	if d := m.refreshInterval(); d > 0 {
		cmds = append(cmds, tea.Tick(d, func(t time.Time) tea.Msg { return refreshTickMsg(t) }))
	}
	return tea.Batch(cmds...)
}

func (m *Model) refreshInterval() time.Duration {
	if m.cfg.UI.RefreshMinutes <= 0 {
		return 0
	}
	return time.Duration(m.cfg.UI.RefreshMinutes) * time.Minute
}

// fetchGroupsCmd loads the model list from the proxy, falling back to the
// cache when the proxy is unreachable. Errors are logged, never fatal.
func (m *Model) fetchGroupsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		groups, err := m.client.ModelGroups(ctx)
		if err == nil {
			if m.db != nil {
				if cerr := m.db.ReplaceModelGroups(groups); cerr != nil {
					m.log.Warnf("cache write failed: %v", cerr)
				}
			}
			return groupsMsg{groups: groups}
		}
		m.log.Errorf("model group fetch failed: %v", err)
		if m.db != nil {
			if cached, cerr := m.db.ListModelGroups(); cerr == nil && len(cached) > 0 {
				return groupsMsg{groups: cached, fromCache: true, err: err}
			}
		}
		return groupsMsg{err: err}
	}
}

func (m *Model) fetchSettingCmd() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		v, err := m.client.GetSetting(ctx, proxy.SettingPublicModelHub)
		if err == nil {
			if m.db != nil {
				if cerr := m.db.SetSetting(proxy.SettingPublicModelHub, v); cerr != nil {
					m.log.Warnf("cache write failed: %v", cerr)
				}
			}
			return settingMsg{value: v}
		}
		m.log.Errorf("setting fetch failed: %v", err)
		if m.db != nil {
			if cached, known, cerr := m.db.GetSetting(proxy.SettingPublicModelHub); cerr == nil && known {
				return settingMsg{value: cached, err: err}
			}
		}
		return settingMsg{value: false, err: err}
	}
}

// saveSettingCmd writes the public flag. The local flag is only updated once
// the proxy confirms (settingSavedMsg with nil err).
func (m *Model) saveSettingCmd(value bool) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if err := m.client.UpdateSetting(ctx, proxy.SettingPublicModelHub, value); err != nil {
			m.log.Errorf("setting update failed: %v", err)
			return settingSavedMsg{value: value, err: err}
		}
		if m.db != nil {
			if cerr := m.db.SetSetting(proxy.SettingPublicModelHub, value); cerr != nil {
				m.log.Warnf("cache write failed: %v", cerr)
			}
		}
		return settingSavedMsg{value: value}
	}
}

// openDetail selects a card and opens the detail view. Only one modal is
// visible at a time.
func (m *Model) openDetail(g proxy.ModelGroup) {
	m.store.Select(g)
	m.tabs = snippets.Tabs(g.ModelGroup, g.SupportedOpenAIParams, m.cfg.Proxy.BaseURL)
	m.detailTab = 0
	m.showShare = false
	m.showDetail = true
}

func (m *Model) closeModals() {
	m.showDetail = false
	m.showShare = false
	m.tabs = nil
	m.store.ClearSelection()
}
