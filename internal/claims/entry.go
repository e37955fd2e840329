package claims

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// ClaimEntry is one tracked block of hours on the remote board. ID is the
// remote item id; it is empty for entries not yet created.
type ClaimEntry struct {
	ID       string
	Date     time.Time
	Activity ActivityType
	Customer string
	WorkItem string
	Hours    float64
	Comment  string
}

// Title returns the item name used on the board, "<customer> - <work item>".
func (e ClaimEntry) Title() string {
	return fmt.Sprintf("%s - %s", e.Customer, e.WorkItem)
}

// Matches reports whether the entry satisfies optional customer and work-item
// filters. Empty filter values match everything; comparison is case-insensitive
// substring.
func (e ClaimEntry) Matches(customer, workItem string) bool {
	if customer != "" && !strings.Contains(strings.ToLower(e.Customer), strings.ToLower(customer)) {
		return false
	}
	if workItem != "" && !strings.Contains(strings.ToLower(e.WorkItem), strings.ToLower(workItem)) {
		return false
	}
	return true
}

// ValidationError describes a field-level problem with user input. It keeps
// the form open instead of aborting the operation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// SortEntries orders entries by date, then customer, then work item, then id.
// Board results arrive in creation order, which is not useful for display.
func SortEntries(entries []ClaimEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.Customer != b.Customer {
			return a.Customer < b.Customer
		}
		if a.WorkItem != b.WorkItem {
			return a.WorkItem < b.WorkItem
		}
		return a.ID < b.ID
	})
}

// TotalHours sums the hours of the given entries.
func TotalHours(entries []ClaimEntry) float64 {
	var total float64
	for _, e := range entries {
		total += e.Hours
	}
	return total
}

// HoursByActivity aggregates weekly hours per activity type.
func HoursByActivity(entries []ClaimEntry) map[ActivityType]float64 {
	out := make(map[ActivityType]float64)
	for _, e := range entries {
		out[e.Activity] += e.Hours
	}
	return out
}
