// Package week models the five-day window the interface displays: the days,
// the entries fetched for them, the selection cursor and derived totals.
package week

import (
	"time"

	"github.com/claimdeck/claimdeck/internal/claims"
)

// Days is the number of days shown per window, Monday through Friday.
const Days = 5

// Window holds one Monday-aligned week of claims.
type Window struct {
	Monday  time.Time
	entries [Days][]claims.ClaimEntry
}

// NewWindow returns an empty window anchored on the Monday of t's week.
func NewWindow(t time.Time) *Window {
	return &Window{Monday: claims.Monday(t)}
}

// Day returns the date of column i (0 = Monday).
func (w *Window) Day(i int) time.Time {
	return w.Monday.AddDate(0, 0, i)
}

// DayIndex maps a date to its column, or -1 when the date falls outside the
// window (including weekends).
func (w *Window) DayIndex(t time.Time) int {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, w.Monday.Location())
	diff := int(d.Sub(w.Monday).Hours() / 24)
	if diff < 0 || diff >= Days {
		return -1
	}
	return diff
}

// Entries returns the entries of column i in display order.
func (w *Window) Entries(i int) []claims.ClaimEntry {
	if i < 0 || i >= Days {
		return nil
	}
	return w.entries[i]
}

// SetEntries replaces the whole window content from a flat fetch result.
// Entries dated outside the window are dropped.
func (w *Window) SetEntries(all []claims.ClaimEntry) {
	w.entries = [Days][]claims.ClaimEntry{}
	for _, e := range all {
		if i := w.DayIndex(e.Date); i >= 0 {
			w.entries[i] = append(w.entries[i], e)
		}
	}
	for i := range w.entries {
		claims.SortEntries(w.entries[i])
	}
}

// Upsert inserts or replaces a single entry by id, keeping day order. Used
// after a create or edit completes so the window reflects the remote state
// without a refetch.
func (w *Window) Upsert(e claims.ClaimEntry) {
	w.Remove(e.ID)
	i := w.DayIndex(e.Date)
	if i < 0 {
		return
	}
	w.entries[i] = append(w.entries[i], e)
	claims.SortEntries(w.entries[i])
}

// Remove deletes the entry with the given id from whichever day holds it.
func (w *Window) Remove(id string) {
	if id == "" {
		return
	}
	for day := range w.entries {
		for j, e := range w.entries[day] {
			if e.ID == id {
				w.entries[day] = append(w.entries[day][:j], w.entries[day][j+1:]...)
				return
			}
		}
	}
}

// DayTotal returns the summed hours of column i.
func (w *Window) DayTotal(i int) float64 {
	return claims.TotalHours(w.Entries(i))
}

// WeekTotal returns the summed hours across the whole window.
func (w *Window) WeekTotal() float64 {
	var total float64
	for i := 0; i < Days; i++ {
		total += w.DayTotal(i)
	}
	return total
}

// All returns every entry in the window, Monday first.
func (w *Window) All() []claims.ClaimEntry {
	var out []claims.ClaimEntry
	for i := 0; i < Days; i++ {
		out = append(out, w.entries[i]...)
	}
	return out
}

// ActivityTotals returns per-activity-type hour sums for the window.
func (w *Window) ActivityTotals() map[claims.ActivityType]float64 {
	return claims.HoursByActivity(w.All())
}

// Prev returns the Monday of the preceding week.
func (w *Window) Prev() time.Time { return w.Monday.AddDate(0, 0, -7) }

// Next returns the Monday of the following week.
func (w *Window) Next() time.Time { return w.Monday.AddDate(0, 0, 7) }
