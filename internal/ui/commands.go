package ui

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/claimdeck/claimdeck/internal/cache"
	"github.com/claimdeck/claimdeck/internal/claims"
	"github.com/claimdeck/claimdeck/internal/logging/events"
	"github.com/claimdeck/claimdeck/internal/monday"
	"github.com/claimdeck/claimdeck/internal/week"
)

const remoteTimeout = 30 * time.Second

type userLoadedMsg struct {
	user monday.User
	err  error
}

type weekLoadedMsg struct {
	monday  time.Time
	entries []claims.ClaimEntry
	err     error
	epoch   int
}

type claimSavedMsg struct {
	entry    claims.ClaimEntry
	created  bool
	warnings []string
	err      error
	epoch    int
}

type claimDeletedMsg struct {
	id    string
	err   error
	epoch int
}

type cacheLoadedMsg struct {
	entries []cache.Entry
	err     error
}

type cacheRefreshedMsg struct {
	entries []cache.Entry
	err     error
}

type cacheSavedMsg struct {
	err error
}

func remoteContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), remoteTimeout)
}

func (m *Model) loadUserCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := remoteContext()
		defer cancel()
		user, err := m.svc.Me(ctx)
		return userLoadedMsg{user: user, err: err}
	}
}

func (m *Model) fetchWeekCmd(monday time.Time) tea.Cmd {
	epoch := m.epoch
	events.Remote.Started("fetch-week", epoch)
	return func() tea.Msg {
		ctx, cancel := remoteContext()
		defer cancel()
		entries, err := m.svc.ClaimsBetween(ctx, monday, monday.AddDate(0, 0, week.Days-1))
		events.Remote.Finished("fetch-week", epoch, err)
		return weekLoadedMsg{monday: monday, entries: entries, err: err, epoch: epoch}
	}
}

func (m *Model) saveClaimCmd(entry claims.ClaimEntry, warnings []string) tea.Cmd {
	epoch := m.epoch
	created := entry.ID == ""
	op := "update-claim"
	if created {
		op = "create-claim"
	}
	events.Remote.Started(op, epoch)
	return func() tea.Msg {
		ctx, cancel := remoteContext()
		defer cancel()
		var err error
		if created {
			entry, err = m.svc.CreateClaim(ctx, entry)
		} else {
			err = m.svc.UpdateClaim(ctx, entry)
		}
		events.Remote.Finished(op, epoch, err)
		return claimSavedMsg{entry: entry, created: created, warnings: warnings, err: err, epoch: epoch}
	}
}

func (m *Model) deleteClaimCmd(id string) tea.Cmd {
	epoch := m.epoch
	events.Remote.Started("delete-claim", epoch)
	return func() tea.Msg {
		ctx, cancel := remoteContext()
		defer cancel()
		err := m.svc.DeleteClaim(ctx, id)
		events.Remote.Finished("delete-claim", epoch, err)
		return claimDeletedMsg{id: id, err: err, epoch: epoch}
	}
}

// loadCacheCmd reads persisted quick selects. The user id is not known yet
// at startup, so persistence uses the id once the identity arrives; before
// that the anonymous partition is used.
func (m *Model) loadCacheCmd() tea.Cmd {
	if m.cacheDB == nil {
		return nil
	}
	userID := m.user.ID
	return func() tea.Msg {
		entries, err := m.cacheDB.Load(userID)
		return cacheLoadedMsg{entries: entries, err: err}
	}
}

// refreshCacheCmd rebuilds the quick-select set from the trailing refresh
// window of claims. The result replaces the store wholesale. The rebuild
// never gates the interface; it runs alongside whatever else is pending.
func (m *Model) refreshCacheCmd() tea.Cmd {
	since := cache.RefreshSince(m.today)
	until := m.today
	return func() tea.Msg {
		ctx, cancel := remoteContext()
		defer cancel()
		entries, err := m.svc.ClaimsBetween(ctx, since, until)
		return cacheRefreshedMsg{entries: cache.FromEntries(entries), err: err}
	}
}

func (m *Model) saveCacheCmd() tea.Cmd {
	if m.cacheDB == nil {
		return nil
	}
	userID := m.user.ID
	entries := m.store.Entries(0)
	return func() tea.Msg {
		return cacheSavedMsg{err: m.cacheDB.Save(userID, entries)}
	}
}

func (m *Model) handleUserLoadedMsg(msg tea.Msg) tea.Cmd {
	loaded, ok := msg.(userLoadedMsg)
	if !ok {
		return nil
	}
	if loaded.err != nil {
		m.setError(loaded.err.Error())
		return nil
	}
	m.user = loaded.user
	// Reload quick selects under the real user partition.
	return m.loadCacheCmd()
}

func (m *Model) handleWeekLoadedMsg(msg tea.Msg) tea.Cmd {
	loaded, ok := msg.(weekLoadedMsg)
	if !ok {
		return nil
	}
	if loaded.epoch != m.epoch {
		events.Remote.Dropped("fetch-week", loaded.epoch, m.epoch)
		return nil
	}
	m.finishLoading()
	if loaded.err != nil {
		m.setError(loaded.err.Error())
		return nil
	}
	m.errMsg = ""
	w := week.NewWindow(loaded.monday)
	w.SetEntries(loaded.entries)
	m.windows[weekKey(loaded.monday)] = w
	if weekKey(loaded.monday) == weekKey(m.monday) {
		m.sel = m.sel.Clamp(w)
	}
	return nil
}

func (m *Model) handleClaimSavedMsg(msg tea.Msg) tea.Cmd {
	saved, ok := msg.(claimSavedMsg)
	if !ok {
		return nil
	}
	if saved.epoch != m.epoch {
		events.Remote.Dropped("save-claim", saved.epoch, m.epoch)
		return nil
	}
	m.finishLoading()
	if saved.err != nil {
		// The form stays open so nothing typed is lost.
		m.setError(saved.err.Error())
		return nil
	}
	m.form = nil
	m.setMode(ModeNormal)

	// An edit can move the entry into another week; scrub the id from every
	// cached window before placing the saved copy so no stale duplicate
	// survives.
	for _, w := range m.windows {
		w.Remove(saved.entry.ID)
	}
	key := weekKey(claims.Monday(saved.entry.Date))
	if w, ok := m.windows[key]; ok {
		w.Upsert(saved.entry)
	}
	m.sel = m.sel.Clamp(m.window())

	verb := "updated"
	if saved.created {
		verb = "added"
	}
	info := "claim " + verb
	if len(saved.warnings) > 0 {
		info += " (" + strings.Join(saved.warnings, "; ") + ")"
	}
	m.setInfo(info)
	m.store.Touch(saved.entry.Customer, saved.entry.WorkItem, saved.entry.Date)
	return m.saveCacheCmd()
}

func (m *Model) handleClaimDeletedMsg(msg tea.Msg) tea.Cmd {
	deleted, ok := msg.(claimDeletedMsg)
	if !ok {
		return nil
	}
	if deleted.epoch != m.epoch {
		events.Remote.Dropped("delete-claim", deleted.epoch, m.epoch)
		return nil
	}
	m.finishLoading()
	m.confirm = nil
	m.setMode(ModeNormal)
	if deleted.err != nil {
		m.setError(deleted.err.Error())
		return nil
	}
	m.setInfo("claim deleted")
	m.window().Remove(deleted.id)
	m.sel = m.sel.Clamp(m.window())
	return nil
}

func (m *Model) handleCacheLoadedMsg(msg tea.Msg) tea.Cmd {
	loaded, ok := msg.(cacheLoadedMsg)
	if !ok {
		return nil
	}
	if loaded.err != nil {
		events.Cache.Warn(loaded.err)
		return nil
	}
	if len(loaded.entries) > 0 {
		m.store.Replace(loaded.entries)
	}
	events.Cache.Loaded(m.store.Len())
	return nil
}

func (m *Model) handleCacheRefreshedMsg(msg tea.Msg) tea.Cmd {
	refreshed, ok := msg.(cacheRefreshedMsg)
	if !ok {
		return nil
	}
	if refreshed.err != nil {
		events.Cache.Warn(refreshed.err)
		return nil
	}
	m.store.Replace(refreshed.entries)
	events.Cache.Refreshed(m.store.Len())
	return m.saveCacheCmd()
}

func (m *Model) handleCacheSavedMsg(msg tea.Msg) tea.Cmd {
	saved, ok := msg.(cacheSavedMsg)
	if !ok {
		return nil
	}
	events.Cache.Warn(saved.err)
	return nil
}
