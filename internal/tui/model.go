package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/healthtoday/healthtoday/internal/model"
	"github.com/rs/zerolog"
)

// ModalStackState holds the modal stack.
type ModalStackState struct {
	modalStack []Modal
}

// TabState holds the dashboard tabs and per-tab selection.
type TabState struct {
	tabs      []Tab
	activeTab int
	tabSelIdx []int
	mounted   []bool
}

// DashboardDeps wires the dashboard to its collaborators.
type DashboardDeps struct {
	Ctx       context.Context
	Session   Session
	Clicks    model.ClickCounter
	Exercises model.ExerciseSource
	News      model.NewsSource
	Nutrition model.NutritionSource
	Log       zerolog.Logger

	ExercisePageSize   int
	NewsPageSize       int
	ReverseScrollWheel bool
}

// DashboardModel is the signed-in screen: header, tab bar, active tab,
// click counter overlay, and status line.
// Sub-state is organized into embedded structs for readability.
type DashboardModel struct {
	ModalStackState
	TabState

	width  int
	height int

	keys    KeyMap
	ctx     context.Context
	session Session
	clicks  model.ClickCounter
	log     zerolog.Logger

	reverseScrollWheel bool

	// Transient status line message (auto-clears after noticeTTL).
	notice   string
	noticeAt time.Time

	// Inline handlers for text inputs owned by tabs (NOT modals).
	inlineHandlers []inlineHandlerEntry

	// spinning is true while a spinner tick chain is scheduled.
	spinning bool

	// nav is a pending page switch picked up by DashboardView.
	nav *PageNav
}

const noticeTTL = 5 * time.Second

// NewDashboardModel creates a new dashboard model.
func NewDashboardModel(deps DashboardDeps) *DashboardModel {
	ctx := deps.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	m := &DashboardModel{
		keys:               DefaultKeyMap(),
		ctx:                ctx,
		session:            deps.Session,
		clicks:             deps.Clicks,
		log:                deps.Log,
		reverseScrollWheel: deps.ReverseScrollWheel,
	}

	m.SetTabs(DefaultTabSpecs(), TabDeps{
		Ctx:                ctx,
		Exercises:          deps.Exercises,
		News:               deps.News,
		Nutrition:          deps.Nutrition,
		Clicks:             deps.Clicks,
		Log:                deps.Log,
		Keys:               m.keys,
		ExercisePageSize:   deps.ExercisePageSize,
		NewsPageSize:       deps.NewsPageSize,
		ReverseScrollWheel: deps.ReverseScrollWheel,
	})

	m.inlineHandlers = []inlineHandlerEntry{
		{isActive: inputFocused, handler: tabInputHandler{}},
	}
	return m
}

// SetTabs builds tabs from specs and resets tab state.
func (m *DashboardModel) SetTabs(specs []TabSpec, deps TabDeps) {
	tabs := make([]Tab, 0, len(specs))
	for _, spec := range specs {
		if spec.Build == nil {
			continue
		}
		tabs = append(tabs, spec.Build(deps))
	}
	m.tabs = tabs
	m.tabSelIdx = make([]int, len(tabs))
	m.mounted = make([]bool, len(tabs))
	m.activeTab = 0
}

func (m *DashboardModel) activeTabValue() Tab {
	if m.activeTab < 0 || m.activeTab >= len(m.tabs) {
		return nil
	}
	return m.tabs[m.activeTab]
}

func (m *DashboardModel) tabByID(id string) (Tab, int) {
	for i, t := range m.tabs {
		if t.ID() == id {
			return t, i
		}
	}
	return nil, -1
}

// activateTab switches to tab idx, mounting it on first activation.
// Previously mounted tabs keep their page, data, and selection.
func (m *DashboardModel) activateTab(idx int) tea.Cmd {
	if idx < 0 || idx >= len(m.tabs) {
		return nil
	}
	m.activeTab = idx
	if m.mounted[idx] {
		return nil
	}
	m.mounted[idx] = true
	cmd := m.tabs[idx].Mount()
	return tea.Batch(cmd, m.startSpinnerIfNeeded())
}

func (m *DashboardModel) nextTab() tea.Cmd {
	if len(m.tabs) <= 1 {
		return nil
	}
	return m.activateTab((m.activeTab + 1) % len(m.tabs))
}

func (m *DashboardModel) prevTab() tea.Cmd {
	if len(m.tabs) <= 1 {
		return nil
	}
	return m.activateTab((m.activeTab - 1 + len(m.tabs)) % len(m.tabs))
}

func (m *DashboardModel) moveSelection(delta int) {
	t := m.activeTabValue()
	if t == nil {
		return
	}
	m.tabSelIdx[m.activeTab] = clampSel(m.tabSelIdx[m.activeTab]+delta, t.ItemCount())
}

// resetTabs drops every tab's state so the next sign-in starts fresh.
func (m *DashboardModel) resetTabs() {
	for i, t := range m.tabs {
		t.Reset()
		m.mounted[i] = false
		m.tabSelIdx[i] = 0
	}
	m.activeTab = 0
	m.spinning = false
}

// viewContext builds a ViewContext snapshot for tab rendering.
func (m *DashboardModel) viewContext() ViewContext {
	ctx := ViewContext{
		ContentWidth:  m.width,
		ContentHeight: m.height,
	}
	if t := m.activeTabValue(); t != nil {
		ctx.Loading = t.Loading()
	}
	return ctx
}

func (m *DashboardModel) setNotice(text string) {
	m.notice = text
	m.noticeAt = time.Now()
}

// SetFlash shows a one-shot notice, e.g. after sign-in.
func (m *DashboardModel) SetFlash(text string) { m.setNotice(text) }

// Init mounts the active tab.
func (m *DashboardModel) Init() tea.Cmd {
	return m.activateTab(m.activeTab)
}

// PushModal pushes a modal onto the stack. Deduplicates by ID.
func (m *DashboardModel) PushModal(modal Modal) {
	for _, existing := range m.modalStack {
		if existing.ID() == modal.ID() {
			return
		}
	}
	m.modalStack = append(m.modalStack, modal)
}

// PopModal removes the topmost modal from the stack.
func (m *DashboardModel) PopModal() {
	if len(m.modalStack) > 0 {
		m.modalStack = m.modalStack[:len(m.modalStack)-1]
	}
}

// TopModal returns the topmost modal, or nil if the stack is empty.
func (m *DashboardModel) TopModal() Modal {
	if len(m.modalStack) == 0 {
		return nil
	}
	return m.modalStack[len(m.modalStack)-1]
}

// HasModal returns true if any modal is on the stack.
func (m *DashboardModel) HasModal() bool {
	return len(m.modalStack) > 0
}

// takeNav returns and clears a pending page switch.
func (m *DashboardModel) takeNav() *PageNav {
	nav := m.nav
	m.nav = nil
	return nav
}

// DashboardView adapts DashboardModel to the Page interface.
type DashboardView struct {
	Model *DashboardModel
}

// NewDashboardView wraps a DashboardModel as a Page.
func NewDashboardView(m *DashboardModel) *DashboardView {
	return &DashboardView{Model: m}
}

func (p *DashboardView) ID() string          { return PageDashboard }
func (p *DashboardView) Init() tea.Cmd       { return p.Model.Init() }
func (p *DashboardView) SetFlash(msg string) { p.Model.SetFlash(msg) }

func (p *DashboardView) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	_, cmd := p.Model.Update(msg)
	return cmd, p.Model.takeNav()
}

func (p *DashboardView) View(width, height int) string {
	p.Model.width = width
	p.Model.height = height
	return p.Model.View()
}
