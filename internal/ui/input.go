package ui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/claimdeck/claimdeck/internal/claims"
	"github.com/claimdeck/claimdeck/internal/form"
	"github.com/claimdeck/claimdeck/internal/logging/events"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	key := keyMsg.String()

	// While an operation is in flight only cancel, quit and week changes
	// are honoured. A week change abandons the pending fetch.
	if m.loading {
		switch key {
		case "ctrl+c":
			return tea.Quit
		case "esc":
			m.cancelPending("operation cancelled")
		case "[", "p", "]", "n", "t":
			if m.mode == ModeNormal {
				return m.handleNormalKey(key)
			}
		}
		return nil
	}

	switch m.mode {
	case ModeNormal:
		return m.handleNormalKey(key)
	case ModeAdd, ModeEdit:
		return m.handleFormKey(keyMsg, key)
	case ModeDelete:
		return m.handleDeleteKey(key)
	case ModeReport:
		return m.handleReportKey(key)
	case ModeHelp:
		return m.handleHelpKey(key)
	}
	return nil
}

func (m *Model) handleNormalKey(key string) tea.Cmd {
	w := m.window()
	switch key {
	case "ctrl+c", "q":
		return tea.Quit
	case "left", "h":
		m.sel = m.sel.Left(w)
		events.UI.Selection(m.sel.Day, m.sel.Entry)
	case "right", "l":
		m.sel = m.sel.Right(w)
		events.UI.Selection(m.sel.Day, m.sel.Entry)
	case "up", "k":
		m.sel = m.sel.Up(w)
		events.UI.Selection(m.sel.Day, m.sel.Entry)
	case "down", "j":
		m.sel = m.sel.Down(w)
		events.UI.Selection(m.sel.Day, m.sel.Entry)
	case "[", "p":
		return m.switchWeek(w.Prev())
	case "]", "n":
		return m.switchWeek(w.Next())
	case "t":
		return m.switchWeek(claims.Monday(m.today))
	case "a":
		return m.openAddForm()
	case "e", "enter":
		return m.openEditForm()
	case "d":
		m.openDeleteConfirm()
	case "r":
		m.setMode(ModeReport)
	case "?":
		m.setMode(ModeHelp)
	case "1", "2", "3", "4", "5":
		m.sel = m.sel.JumpTo(w, int(key[0]-'1'))
		events.UI.Selection(m.sel.Day, m.sel.Entry)
	case "R":
		delete(m.windows, weekKey(m.monday))
		m.cancelPending("")
		return tea.Batch(
			m.startLoading("refreshing week", m.fetchWeekCmd(m.monday)),
			m.refreshCacheCmd(),
		)
	}
	return nil
}

func (m *Model) openAddForm() tea.Cmd {
	m.form = form.NewAdd(m.window().Day(m.sel.Day))
	m.errMsg = ""
	m.infoMsg = ""
	m.setMode(ModeAdd)
	return m.refreshStaleCache()
}

func (m *Model) openEditForm() tea.Cmd {
	entry, ok := m.Selected()
	if !ok {
		m.setInfo("no entry selected")
		return nil
	}
	m.form = form.NewEdit(entry)
	m.errMsg = ""
	m.infoMsg = ""
	m.setMode(ModeEdit)
	return m.refreshStaleCache()
}

// refreshStaleCache rebuilds the quick selects when they have aged past the
// staleness threshold, so an editing session starts with current shortcuts.
func (m *Model) refreshStaleCache() tea.Cmd {
	if !m.store.Stale(m.today) {
		return nil
	}
	return m.refreshCacheCmd()
}

func (m *Model) openDeleteConfirm() {
	entry, ok := m.Selected()
	if !ok {
		m.setInfo("no entry selected")
		return
	}
	m.confirm = &entry
	m.setMode(ModeDelete)
}

func (m *Model) handleFormKey(keyMsg tea.KeyMsg, key string) tea.Cmd {
	switch key {
	case "ctrl+c":
		return tea.Quit
	case "esc":
		m.form = nil
		m.errMsg = ""
		m.setMode(ModeNormal)
		return nil
	case "tab":
		m.form.Next()
		return nil
	case "shift+tab":
		m.form.Prev()
		return nil
	case "enter":
		return m.submitForm()
	}
	if m.form.Focused() == form.FieldActivity {
		switch key {
		case "up", "left":
			m.form.CycleActivity(-1)
			return nil
		case "down", "right":
			m.form.CycleActivity(1)
			return nil
		}
	}
	if d, ok := digitKey(key); ok {
		if m.form.ApplyDigit(d, m.store) {
			return nil
		}
	}
	return m.form.Update(keyMsg)
}

func digitKey(key string) (int, bool) {
	if len(key) != 1 || key[0] < '0' || key[0] > '9' {
		return 0, false
	}
	return int(key[0] - '0'), true
}

func (m *Model) submitForm() tea.Cmd {
	entry, warnings, err := m.form.Result()
	if err != nil {
		var verr *claims.ValidationError
		if errors.As(err, &verr) {
			m.setError(verr.Error())
			return nil
		}
		m.setError(err.Error())
		return nil
	}
	m.errMsg = ""
	return m.startLoading("saving claim", m.saveClaimCmd(entry, warnings))
}

func (m *Model) handleDeleteKey(key string) tea.Cmd {
	switch key {
	case "ctrl+c":
		return tea.Quit
	case "y", "enter":
		if m.confirm == nil {
			m.setMode(ModeNormal)
			return nil
		}
		id := m.confirm.ID
		return m.startLoading("deleting claim", m.deleteClaimCmd(id))
	case "n", "esc":
		m.confirm = nil
		m.setMode(ModeNormal)
	}
	return nil
}

func (m *Model) handleReportKey(key string) tea.Cmd {
	switch key {
	case "ctrl+c":
		return tea.Quit
	case "esc", "q", "r":
		m.setMode(ModeNormal)
	case "[", "p", "]", "n", "t":
		// The report follows the displayed week.
		return m.handleNormalKey(key)
	}
	return nil
}

func (m *Model) handleHelpKey(key string) tea.Cmd {
	switch key {
	case "ctrl+c":
		return tea.Quit
	default:
		m.setMode(ModeNormal)
	}
	return nil
}
