package ui

import (
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/claimdeck/claimdeck/internal/cache"
	"github.com/claimdeck/claimdeck/internal/claims"
	"github.com/claimdeck/claimdeck/internal/form"
	"github.com/claimdeck/claimdeck/internal/logging/events"
	"github.com/claimdeck/claimdeck/internal/monday"
	"github.com/claimdeck/claimdeck/internal/theme"
	"github.com/claimdeck/claimdeck/internal/week"
)

// Mode is the interaction state the interface is in. Exactly one mode is
// active at a time; loading overlays whichever mode dispatched the work.
type Mode int

const (
	ModeNormal Mode = iota
	ModeAdd
	ModeEdit
	ModeDelete
	ModeReport
	ModeHelp
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeAdd:
		return "add"
	case ModeEdit:
		return "edit"
	case ModeDelete:
		return "delete"
	case ModeReport:
		return "report"
	case ModeHelp:
		return "help"
	}
	return "unknown"
}

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Model implements the Bubble Tea model for the claim browser.
type Model struct {
	svc     Service
	cacheDB CachePersistence
	store   *cache.Store
	version string

	user  monday.User
	today time.Time

	monday  time.Time
	windows map[string]*week.Window
	sel     week.Selection

	mode    Mode
	form    *form.Session
	confirm *claims.ClaimEntry

	epoch      int
	loading    bool
	loadingMsg string
	spin       spinner.Model

	errMsg   string
	infoMsg  string
	statuses []string

	width  int
	height int

	handlers map[reflect.Type]msgHandler
}

// NewModel initialises the UI around today's week. cacheDB may be nil, in
// which case quick selects live only for the session.
func NewModel(svc Service, cacheDB CachePersistence, version string, today time.Time) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	if styles.Loading != nil {
		sp.Style = *styles.Loading
	}
	m := &Model{
		svc:     svc,
		cacheDB: cacheDB,
		store:   cache.NewStore(nil),
		version: version,
		today:   today,
		monday:  claims.Monday(today),
		windows: make(map[string]*week.Window),
		sel:     week.NewSelection(weekdayIndex(today)),
		mode:    ModeNormal,
		spin:    sp,
	}
	m.registerHandlers()
	return m
}

// weekdayIndex maps a date to its window column, defaulting to Monday for
// weekend launches.
func weekdayIndex(t time.Time) int {
	if i := week.NewWindow(t).DayIndex(t); i >= 0 {
		return i
	}
	return 0
}

func weekKey(monday time.Time) string {
	return monday.Format(claims.DateFormat)
}

// window returns the displayed week, creating an empty one on first touch.
func (m *Model) window() *week.Window {
	key := weekKey(m.monday)
	w, ok := m.windows[key]
	if !ok {
		w = week.NewWindow(m.monday)
		m.windows[key] = w
	}
	return w
}

// Init is part of the tea.Model interface. It kicks off the identity fetch,
// the current week, the cache load and the quick-select rebuild in parallel.
func (m *Model) Init() tea.Cmd {
	m.loading = true
	m.loadingMsg = "loading week"
	return tea.Batch(
		m.spin.Tick,
		m.loadUserCmd(),
		m.fetchWeekCmd(m.monday),
		m.loadCacheCmd(),
		m.refreshCacheCmd(),
	)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if handler := m.handlerFor(msg); handler != nil {
		return m, handler(msg)
	}
	return m, nil
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(spinner.TickMsg{}):   m.handleSpinnerTick,
		reflect.TypeOf(userLoadedMsg{}):     m.handleUserLoadedMsg,
		reflect.TypeOf(weekLoadedMsg{}):     m.handleWeekLoadedMsg,
		reflect.TypeOf(claimSavedMsg{}):     m.handleClaimSavedMsg,
		reflect.TypeOf(claimDeletedMsg{}):   m.handleClaimDeletedMsg,
		reflect.TypeOf(cacheLoadedMsg{}):    m.handleCacheLoadedMsg,
		reflect.TypeOf(cacheRefreshedMsg{}): m.handleCacheRefreshedMsg,
		reflect.TypeOf(cacheSavedMsg{}):     m.handleCacheSavedMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	size, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	m.width = size.Width
	m.height = size.Height
	return nil
}

func (m *Model) handleSpinnerTick(msg tea.Msg) tea.Cmd {
	if !m.loading {
		return nil
	}
	var cmd tea.Cmd
	m.spin, cmd = m.spin.Update(msg)
	return cmd
}

func (m *Model) setMode(mode Mode) {
	if m.mode != mode {
		events.UI.ModeChange(m.mode.String(), mode.String())
	}
	m.mode = mode
}

// switchWeek moves the displayed window. Any in-flight work becomes stale;
// already-fetched weeks render immediately, others trigger a fetch.
func (m *Model) switchWeek(monday time.Time) tea.Cmd {
	m.cancelPending("")
	m.monday = monday
	m.sel = week.NewSelection(0).Clamp(m.window())
	m.errMsg = ""
	events.UI.WeekChange(weekKey(monday))
	if _, ok := m.windows[weekKey(monday)]; ok {
		return nil
	}
	return m.startLoading("loading week", m.fetchWeekCmd(monday))
}

// startLoading flags the pending operation and returns its command together
// with the spinner tick.
func (m *Model) startLoading(msg string, cmd tea.Cmd) tea.Cmd {
	m.loading = true
	m.loadingMsg = msg
	return tea.Batch(m.spin.Tick, cmd)
}

// cancelPending invalidates in-flight operations by bumping the epoch.
func (m *Model) cancelPending(info string) {
	if m.loading {
		m.epoch++
		events.UI.Cancel(m.epoch)
	}
	m.loading = false
	m.loadingMsg = ""
	if info != "" {
		m.setInfo(info)
	}
}

const maxStatuses = 5

// setInfo records a status message, replacing any error on screen.
func (m *Model) setInfo(text string) {
	m.infoMsg = text
	m.errMsg = ""
	m.pushStatus(text)
}

// setError records an error status message.
func (m *Model) setError(text string) {
	m.errMsg = text
	m.pushStatus("error: " + text)
}

func (m *Model) pushStatus(text string) {
	m.statuses = append([]string{text}, m.statuses...)
	if len(m.statuses) > maxStatuses {
		m.statuses = m.statuses[:maxStatuses]
	}
}

// RecentStatuses returns the latest status messages, most recent first.
func (m *Model) RecentStatuses() []string {
	out := make([]string, len(m.statuses))
	copy(out, m.statuses)
	return out
}

func (m *Model) finishLoading() {
	m.loading = false
	m.loadingMsg = ""
}

// Selected returns the focused entry, if any.
func (m *Model) Selected() (claims.ClaimEntry, bool) {
	return m.sel.Current(m.window())
}

// QuickSelects exposes the ranked cache for rendering and shortcuts.
func (m *Model) QuickSelects(limit int) []cache.Entry {
	return m.store.Entries(limit)
}
