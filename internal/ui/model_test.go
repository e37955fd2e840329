package ui

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/claimdeck/claimdeck/internal/cache"
	"github.com/claimdeck/claimdeck/internal/claims"
	"github.com/claimdeck/claimdeck/internal/monday"
)

type fakeService struct {
	user    monday.User
	entries []claims.ClaimEntry
	failAll error

	created []claims.ClaimEntry
	updated []claims.ClaimEntry
	deleted []string
	nextID  int
}

func (f *fakeService) Me(ctx context.Context) (monday.User, error) {
	if f.failAll != nil {
		return monday.User{}, f.failAll
	}
	return f.user, nil
}

func (f *fakeService) ClaimsBetween(ctx context.Context, from, to time.Time) ([]claims.ClaimEntry, error) {
	if f.failAll != nil {
		return nil, f.failAll
	}
	var out []claims.ClaimEntry
	for _, e := range f.entries {
		if !e.Date.Before(from) && !e.Date.After(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeService) CreateClaim(ctx context.Context, entry claims.ClaimEntry) (claims.ClaimEntry, error) {
	if f.failAll != nil {
		return claims.ClaimEntry{}, f.failAll
	}
	f.nextID++
	entry.ID = fmt.Sprintf("created-%d", f.nextID)
	f.created = append(f.created, entry)
	f.entries = append(f.entries, entry)
	return entry, nil
}

func (f *fakeService) UpdateClaim(ctx context.Context, entry claims.ClaimEntry) error {
	if f.failAll != nil {
		return f.failAll
	}
	f.updated = append(f.updated, entry)
	return nil
}

func (f *fakeService) DeleteClaim(ctx context.Context, id string) error {
	if f.failAll != nil {
		return f.failAll
	}
	f.deleted = append(f.deleted, id)
	return nil
}

var testToday = time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC) // a Wednesday

func testEntry(id, day string, hours float64) claims.ClaimEntry {
	d, err := time.Parse(claims.DateFormat, day)
	if err != nil {
		panic(err)
	}
	return claims.ClaimEntry{
		ID: id, Date: d, Activity: claims.ActivityBillable,
		Customer: "Acme", WorkItem: "ACME-1", Hours: hours,
	}
}

func newTestModel(t *testing.T, svc *fakeService) *Model {
	t.Helper()
	if svc.user.ID == "" {
		svc.user = monday.User{ID: "u1", Name: "Jane Dev", Email: "jane@example.com"}
	}
	m := NewModel(svc, nil, "test", testToday)
	drain(t, m, m.Init())
	return m
}

// drain executes commands and feeds resulting messages back into the model,
// the way the runtime would. Spinner ticks are dropped to avoid looping.
func drain(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		return
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			drain(t, m, c)
		}
		return
	}
	if _, ok := msg.(spinner.TickMsg); ok {
		return
	}
	if msg == nil {
		return
	}
	_, next := m.Update(msg)
	drain(t, m, next)
}

// collect runs commands without feeding results back, for staleness tests.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	if _, ok := msg.(spinner.TickMsg); ok {
		return nil
	}
	return []tea.Msg{msg}
}

func press(t *testing.T, m *Model, keys ...string) {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "backspace":
			msg = tea.KeyMsg{Type: tea.KeyBackspace}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "shift+tab":
			msg = tea.KeyMsg{Type: tea.KeyShiftTab}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		_, cmd := m.Update(msg)
		drain(t, m, cmd)
	}
}

func TestInitLoadsCurrentWeek(t *testing.T) {
	svc := &fakeService{entries: []claims.ClaimEntry{
		testEntry("1", "2025-03-10", 8),
		testEntry("2", "2025-03-12", 4),
	}}
	m := newTestModel(t, svc)

	if m.loading {
		t.Fatal("loading should be done after init drained")
	}
	if got := m.window().WeekTotal(); got != 12 {
		t.Fatalf("week total = %v", got)
	}
	if m.user.Name != "Jane Dev" {
		t.Fatalf("user = %+v", m.user)
	}
	if m.sel.Day != 2 {
		t.Fatalf("launch day should be Wednesday, got %d", m.sel.Day)
	}
}

func TestInitRefreshesQuickSelects(t *testing.T) {
	// A pair used the week before is outside the displayed window but
	// inside the refresh window, so it must surface after startup.
	svc := &fakeService{entries: []claims.ClaimEntry{testEntry("5", "2025-03-04", 8)}}
	m := newTestModel(t, svc)

	qs := m.QuickSelects(0)
	if len(qs) != 1 || qs[0].Customer != "Acme" || qs[0].WorkItem != "ACME-1" {
		t.Fatalf("quick selects after init = %+v", qs)
	}
}

func TestStaleCacheRebuiltWhenFormOpens(t *testing.T) {
	svc := &fakeService{entries: []claims.ClaimEntry{testEntry("5", "2025-03-04", 8)}}
	m := newTestModel(t, svc)
	m.store = cache.NewStore([]cache.Entry{
		{Customer: "Old", WorkItem: "OLD-1", LastUsed: testToday.AddDate(0, 0, -3)},
	})

	press(t, m, "a")
	// The rebuild replaces the set; the aged pair does not survive it.
	qs := m.QuickSelects(0)
	if len(qs) != 1 || qs[0].Customer != "Acme" {
		t.Fatalf("quick selects after rebuild = %+v", qs)
	}
}

func TestWeekNavigationFetchesOnceAndCaches(t *testing.T) {
	svc := &fakeService{entries: []claims.ClaimEntry{testEntry("1", "2025-03-10", 8)}}
	m := newTestModel(t, svc)

	press(t, m, "]")
	if got := weekKey(m.monday); got != "2025-03-17" {
		t.Fatalf("next week = %s", got)
	}
	press(t, m, "[")
	if got := weekKey(m.monday); got != "2025-03-10" {
		t.Fatalf("back = %s", got)
	}
	// Both weeks are cached now; switching again must not set loading.
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("]")})
	if m.loading {
		t.Fatal("cached week should render without loading")
	}
	drain(t, m, cmd)
	press(t, m, "t")
	if got := weekKey(m.monday); got != "2025-03-10" {
		t.Fatalf("today = %s", got)
	}
}

func TestAddClaimFlow(t *testing.T) {
	svc := &fakeService{}
	m := newTestModel(t, svc)

	press(t, m, "a")
	if m.mode != ModeAdd {
		t.Fatalf("mode = %v", m.mode)
	}
	if got := m.form.Value(0); got != "2025-03-12" {
		t.Fatalf("form date should be the selected day, got %q", got)
	}
	press(t, m, "A", "c", "m", "e", "tab", "W", "I", "-", "1", "enter")

	if m.mode != ModeNormal {
		t.Fatalf("mode after save = %v", m.mode)
	}
	if len(svc.created) != 1 {
		t.Fatalf("created = %d", len(svc.created))
	}
	created := svc.created[0]
	if created.Customer != "Acme" || created.WorkItem != "WI-1" || created.Hours != 8 {
		t.Fatalf("created = %+v", created)
	}
	// The new entry lands in the displayed window without a refetch.
	entries := m.window().Entries(2)
	if len(entries) != 1 || entries[0].ID != "created-1" {
		t.Fatalf("window entries = %+v", entries)
	}
	// And the pair is now a quick select.
	if qs := m.QuickSelects(0); len(qs) != 1 || qs[0].Customer != "Acme" {
		t.Fatalf("quick selects = %+v", qs)
	}
}

func TestEditClaimFlow(t *testing.T) {
	svc := &fakeService{entries: []claims.ClaimEntry{testEntry("7", "2025-03-12", 8)}}
	m := newTestModel(t, svc)

	press(t, m, "down", "e")
	if m.mode != ModeEdit || !m.form.Editing() {
		t.Fatalf("mode = %v", m.mode)
	}
	press(t, m, "enter")
	if len(svc.updated) != 1 || svc.updated[0].ID != "7" {
		t.Fatalf("updated = %+v", svc.updated)
	}
	if m.mode != ModeNormal {
		t.Fatalf("mode after save = %v", m.mode)
	}
}

func TestEditMovingDateLeavesOldWeek(t *testing.T) {
	svc := &fakeService{entries: []claims.ClaimEntry{testEntry("7", "2025-03-12", 8)}}
	m := newTestModel(t, svc)

	// The edit session opens on the date field; rewrite 2025-03-12 to
	// 2025-03-17, the following week.
	press(t, m, "e")
	press(t, m, "backspace", "backspace", "1", "7", "enter")

	if len(svc.updated) != 1 || svc.updated[0].Date.Format(claims.DateFormat) != "2025-03-17" {
		t.Fatalf("updated = %+v", svc.updated)
	}
	if entries := m.window().Entries(2); len(entries) != 0 {
		t.Fatalf("moved entry still listed in the old week: %+v", entries)
	}
}

func TestDeleteClaimFlow(t *testing.T) {
	svc := &fakeService{entries: []claims.ClaimEntry{testEntry("7", "2025-03-12", 8)}}
	m := newTestModel(t, svc)

	press(t, m, "down", "d")
	if m.mode != ModeDelete {
		t.Fatalf("mode = %v", m.mode)
	}
	press(t, m, "n")
	if m.mode != ModeNormal || len(svc.deleted) != 0 {
		t.Fatal("n should keep the entry")
	}

	press(t, m, "down", "d", "y")
	if len(svc.deleted) != 1 || svc.deleted[0] != "7" {
		t.Fatalf("deleted = %v", svc.deleted)
	}
	if len(m.window().Entries(2)) != 0 {
		t.Fatal("entry should leave the window")
	}
	if m.sel.HasEntry() {
		t.Fatal("selection should fall back to the day header")
	}
}

func TestValidationErrorKeepsFormOpen(t *testing.T) {
	svc := &fakeService{}
	m := newTestModel(t, svc)

	press(t, m, "a", "tab", "tab") // customer -> work item -> hours
	press(t, m, "x", "enter")
	if m.mode != ModeAdd {
		t.Fatalf("mode = %v, form must stay open", m.mode)
	}
	if m.errMsg == "" {
		t.Fatal("expected a field error message")
	}
	if len(svc.created) != 0 {
		t.Fatal("nothing should be saved")
	}
}

func TestRemoteFailureSurfacesError(t *testing.T) {
	svc := &fakeService{failAll: fmt.Errorf("board unreachable")}
	m := NewModel(svc, nil, "test", testToday)
	drain(t, m, m.Init())

	if m.errMsg == "" {
		t.Fatal("expected error message after failed fetch")
	}
	if m.loading {
		t.Fatal("loading must clear on failure")
	}
}
