// Package cache ranks recently used (customer, work item) pairs so the form
// can offer them as numbered quick selects. The persistent copy lives in
// cachedb; this package owns ranking, dedupe and staleness.
package cache

import (
	"sort"
	"strings"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/claimdeck/claimdeck/internal/claims"
)

const (
	// PanelLimit is how many pairs the side panel shows.
	PanelLimit = 15
	// CompactLimit is how many pairs the add-mode hint line shows.
	CompactLimit = 5
	// RetainLimit caps how many pairs are kept at all.
	RetainLimit = 50

	// StaleAfter is how old the newest pair may get before a background
	// refresh is worth scheduling.
	StaleAfter = 24 * time.Hour
	// RefreshWindowDays is how far back a refresh scans for used pairs.
	RefreshWindowDays = 28
)

// Entry is one remembered pair with the date it was last claimed against.
type Entry struct {
	Customer string
	WorkItem string
	LastUsed time.Time
}

// Key identifies a pair regardless of recency.
func (e Entry) Key() string {
	return strings.ToLower(e.Customer) + "\x00" + strings.ToLower(e.WorkItem)
}

// Store is an in-memory ranked set of pairs.
type Store struct {
	entries []Entry
}

// NewStore builds a store from raw entries, deduplicating and ranking them.
func NewStore(entries []Entry) *Store {
	s := &Store{}
	s.Replace(entries)
	return s
}

// Replace swaps the store content for a fresh set, deduplicating on the
// pair key keeping the most recent use, ordering by recency and trimming to
// the retention cap. Pairs with either field empty are not worth offering
// as shortcuts and are dropped.
func (s *Store) Replace(entries []Entry) {
	best := make(map[string]Entry, len(entries))
	for _, e := range entries {
		if e.Customer == "" || e.WorkItem == "" {
			continue
		}
		if cur, ok := best[e.Key()]; !ok || e.LastUsed.After(cur.LastUsed) {
			best[e.Key()] = e
		}
	}
	out := make([]Entry, 0, len(best))
	for _, e := range best {
		out = append(out, e)
	}
	sortEntries(out)
	if len(out) > RetainLimit {
		out = out[:RetainLimit]
	}
	s.entries = out
}

// Touch records a use of the pair, promoting it to the top.
func (s *Store) Touch(customer, workItem string, usedOn time.Time) {
	if customer == "" || workItem == "" {
		return
	}
	s.Replace(append(s.entries, Entry{Customer: customer, WorkItem: workItem, LastUsed: usedOn}))
}

// Entries returns up to limit pairs, most recent first. limit <= 0 means all.
func (s *Store) Entries(limit int) []Entry {
	n := len(s.entries)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]Entry, n)
	copy(out, s.entries[:n])
	return out
}

// At returns the pair at 1-based rank, matching the digit keys shown next
// to the list.
func (s *Store) At(rank int) (Entry, bool) {
	if rank < 1 || rank > len(s.entries) {
		return Entry{}, false
	}
	return s.entries[rank-1], true
}

// Len returns the number of retained pairs.
func (s *Store) Len() int { return len(s.entries) }

// Stale reports whether the store needs a refresh at the given time. An
// empty store is always stale.
func (s *Store) Stale(now time.Time) bool {
	if len(s.entries) == 0 {
		return true
	}
	return now.Sub(s.entries[0].LastUsed) > StaleAfter
}

// RefreshSince returns the start of the window a refresh should scan.
func RefreshSince(now time.Time) time.Time {
	return now.AddDate(0, 0, -RefreshWindowDays)
}

// Filter returns pairs fuzzily matching the query against the combined
// "customer work-item" label, preserving rank order. An empty query returns
// everything.
func (s *Store) Filter(query string, limit int) []Entry {
	if strings.TrimSpace(query) == "" {
		return s.Entries(limit)
	}
	var out []Entry
	for _, e := range s.entries {
		label := e.Customer + " " + e.WorkItem
		if fuzzy.MatchFold(query, label) {
			out = append(out, e)
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out
}

// FromEntries extracts pairs from fetched claims, one per claim date.
func FromEntries(entries []claims.ClaimEntry) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Customer == "" || e.WorkItem == "" {
			continue
		}
		out = append(out, Entry{Customer: e.Customer, WorkItem: e.WorkItem, LastUsed: e.Date})
	}
	return out
}

func sortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].LastUsed.Equal(entries[j].LastUsed) {
			return entries[i].LastUsed.After(entries[j].LastUsed)
		}
		if entries[i].Customer != entries[j].Customer {
			return entries[i].Customer < entries[j].Customer
		}
		return entries[i].WorkItem < entries[j].WorkItem
	})
}
