package week

import "github.com/claimdeck/claimdeck/internal/claims"

// NoEntry marks a selection on a day with no entries.
const NoEntry = -1

// Selection is the cursor over a window: a day column and an entry row
// within it. Entry is NoEntry exactly when the day is empty. Movement
// clamps at the edges rather than wrapping.
type Selection struct {
	Day   int
	Entry int
}

// NewSelection returns a cursor on the given day. Callers clamp it against
// a window to target the day's first entry.
func NewSelection(day int) Selection {
	if day < 0 {
		day = 0
	}
	if day >= Days {
		day = Days - 1
	}
	return Selection{Day: day, Entry: NoEntry}
}

// Clamp resnaps the selection to valid coordinates for w: an empty day
// clears the entry, otherwise the entry index is forced into range.
func (s Selection) Clamp(w *Window) Selection {
	if s.Day < 0 {
		s.Day = 0
	}
	if s.Day >= Days {
		s.Day = Days - 1
	}
	n := len(w.Entries(s.Day))
	switch {
	case n == 0:
		s.Entry = NoEntry
	case s.Entry < 0:
		s.Entry = 0
	case s.Entry >= n:
		s.Entry = n - 1
	}
	return s
}

// Left moves one day left, clamping at Monday. The new day's first entry
// becomes current.
func (s Selection) Left(w *Window) Selection {
	if s.Day > 0 {
		s.Day--
		s.Entry = 0
	}
	return s.Clamp(w)
}

// Right moves one day right, clamping at Friday. The new day's first entry
// becomes current.
func (s Selection) Right(w *Window) Selection {
	if s.Day < Days-1 {
		s.Day++
		s.Entry = 0
	}
	return s.Clamp(w)
}

// JumpTo moves directly to day index i, targeting its first entry.
func (s Selection) JumpTo(w *Window, i int) Selection {
	s.Day = i
	s.Entry = 0
	return s.Clamp(w)
}

// Down moves to the next entry of the day, clamping at the last.
func (s Selection) Down(w *Window) Selection {
	if s.Entry != NoEntry {
		s.Entry++
	}
	return s.Clamp(w)
}

// Up moves to the previous entry of the day, clamping at the first.
func (s Selection) Up(w *Window) Selection {
	if s.Entry > 0 {
		s.Entry--
	}
	return s.Clamp(w)
}

// Current returns the focused entry, if any.
func (s Selection) Current(w *Window) (claims.ClaimEntry, bool) {
	entries := w.Entries(s.Day)
	if s.Entry < 0 || s.Entry >= len(entries) {
		return claims.ClaimEntry{}, false
	}
	return entries[s.Entry], true
}

// HasEntry reports whether an entry is focused.
func (s Selection) HasEntry() bool { return s.Entry > NoEntry }
