// Package form owns the entry editor: a fixed sequence of fields, focus
// movement, digit shortcuts and save-time validation.
package form

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/claimdeck/claimdeck/internal/cache"
	"github.com/claimdeck/claimdeck/internal/claims"
)

// Field identifies one editor field. Order here is traversal order.
type Field int

const (
	FieldDate Field = iota
	FieldActivity
	FieldCustomer
	FieldWorkItem
	FieldHours
	FieldComment

	fieldCount
)

var fieldLabels = [fieldCount]string{
	FieldDate:     "Date",
	FieldActivity: "Activity",
	FieldCustomer: "Customer",
	FieldWorkItem: "Work item",
	FieldHours:    "Hours",
	FieldComment:  "Comment",
}

// Label returns the display label of the field.
func (f Field) Label() string {
	if f < 0 || f >= fieldCount {
		return "?"
	}
	return fieldLabels[f]
}

// Fields returns all fields in traversal order.
func Fields() []Field {
	out := make([]Field, 0, int(fieldCount))
	for f := Field(0); f < fieldCount; f++ {
		out = append(out, f)
	}
	return out
}

// DigitAction says what a digit key does given the focused field.
type DigitAction int

const (
	// DigitTypes means the digit is ordinary text for the focused input.
	DigitTypes DigitAction = iota
	// DigitSelectsActivity means the digit picks an activity type by code.
	DigitSelectsActivity
	// DigitSelectsPair means the digit picks a quick-select pair, filling
	// both customer and work item.
	DigitSelectsPair
)

// DispositionFor classifies a digit press for the focused field. Pure so
// the shortcut table is testable without a running editor.
func DispositionFor(f Field) DigitAction {
	switch f {
	case FieldActivity:
		return DigitSelectsActivity
	case FieldCustomer, FieldWorkItem:
		return DigitSelectsPair
	}
	return DigitTypes
}

// Session is one open editor, either for a new entry or an existing one.
type Session struct {
	inputs   [fieldCount]textinput.Model
	focus    Field
	activity claims.ActivityType

	// EntryID is set when editing; empty for a new entry.
	EntryID string
}

// NewAdd opens an editor for a new entry on the given date.
func NewAdd(date time.Time) *Session {
	s := newSession()
	s.inputs[FieldDate].SetValue(date.Format(claims.DateFormat))
	s.setActivity(claims.DefaultActivity)
	s.inputs[FieldHours].SetValue("8")
	s.Focus(FieldCustomer)
	return s
}

// NewEdit opens an editor preloaded with an existing entry.
func NewEdit(e claims.ClaimEntry) *Session {
	s := newSession()
	s.EntryID = e.ID
	s.inputs[FieldDate].SetValue(e.Date.Format(claims.DateFormat))
	s.setActivity(e.Activity)
	s.inputs[FieldCustomer].SetValue(e.Customer)
	s.inputs[FieldWorkItem].SetValue(e.WorkItem)
	s.inputs[FieldHours].SetValue(claims.FormatHours(e.Hours))
	s.inputs[FieldComment].SetValue(e.Comment)
	s.Focus(FieldDate)
	return s
}

func newSession() *Session {
	s := &Session{}
	for f := Field(0); f < fieldCount; f++ {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 120
		s.inputs[f] = ti
	}
	s.inputs[FieldDate].Placeholder = "YYYY-MM-DD"
	s.inputs[FieldHours].Placeholder = "8"
	s.inputs[FieldHours].CharLimit = 6
	return s
}

// Editing reports whether the session targets an existing entry.
func (s *Session) Editing() bool { return s.EntryID != "" }

// Focused returns the field that currently receives input.
func (s *Session) Focused() Field { return s.focus }

// Value returns the current text of a field.
func (s *Session) Value(f Field) string {
	if f == FieldActivity {
		return s.activity.String()
	}
	return s.inputs[f].Value()
}

// Activity returns the currently selected activity type.
func (s *Session) Activity() claims.ActivityType { return s.activity }

// Input exposes the textinput model of a field for rendering.
func (s *Session) Input(f Field) textinput.Model { return s.inputs[f] }

// Focus moves input focus to f.
func (s *Session) Focus(f Field) {
	for i := Field(0); i < fieldCount; i++ {
		s.inputs[i].Blur()
	}
	s.focus = f
	if f != FieldActivity {
		s.inputs[f].Focus()
		s.inputs[f].CursorEnd()
	}
}

// Next advances focus, wrapping from the last field to the first.
func (s *Session) Next() {
	s.Focus((s.focus + 1) % fieldCount)
}

// Prev moves focus back, wrapping from the first field to the last.
func (s *Session) Prev() {
	s.Focus((s.focus + fieldCount - 1) % fieldCount)
}

func (s *Session) setActivity(a claims.ActivityType) {
	s.activity = a
	s.inputs[FieldActivity].SetValue(a.String())
}

// CycleActivity steps through the activity catalogue by delta, wrapping.
func (s *Session) CycleActivity(delta int) {
	n := len(claims.Activities())
	next := (int(s.activity) + delta%n + n) % n
	s.setActivity(claims.ActivityType(next))
}

// ApplyDigit handles a digit key according to the focused field's
// disposition. It reports whether the digit was consumed as a shortcut; if
// not, the caller should feed it to the text input as a normal character.
func (s *Session) ApplyDigit(d int, store *cache.Store) bool {
	switch DispositionFor(s.focus) {
	case DigitSelectsActivity:
		if a, ok := claims.ActivityByDigit(d); ok {
			s.setActivity(a)
			return true
		}
		return true // swallow out-of-range digits on the activity field
	case DigitSelectsPair:
		if store == nil {
			return false
		}
		// Digits address the same filtered list the hint line shows, so
		// narrowing by typing keeps the labels and the shortcuts in step.
		entries := store.Filter(s.inputs[s.focus].Value(), 0)
		if d >= 1 && d <= len(entries) {
			e := entries[d-1]
			s.inputs[FieldCustomer].SetValue(e.Customer)
			s.inputs[FieldWorkItem].SetValue(e.WorkItem)
			s.inputs[s.focus].CursorEnd()
			return true
		}
		return false
	}
	return false
}

// Update routes a message to the focused text input.
func (s *Session) Update(msg tea.Msg) tea.Cmd {
	if s.focus == FieldActivity {
		return nil
	}
	var cmd tea.Cmd
	s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
	return cmd
}

// Result validates the fields and builds the entry to save. Warnings are
// non-blocking; an error keeps the editor open on the offending field.
func (s *Session) Result() (claims.ClaimEntry, []string, error) {
	date, err := claims.ParseDate(strings.TrimSpace(s.inputs[FieldDate].Value()))
	if err != nil {
		return claims.ClaimEntry{}, nil, err
	}
	hoursText := strings.TrimSpace(s.inputs[FieldHours].Value())
	hours, err := strconv.ParseFloat(hoursText, 64)
	if err != nil {
		return claims.ClaimEntry{}, nil, &claims.ValidationError{
			Field: "hours", Reason: fmt.Sprintf("%q is not a number", hoursText),
		}
	}
	if hours < 0 || hours > 24 {
		return claims.ClaimEntry{}, nil, &claims.ValidationError{
			Field: "hours", Reason: "must be between 0 and 24",
		}
	}

	entry := claims.ClaimEntry{
		ID:       s.EntryID,
		Date:     date,
		Activity: s.activity,
		Customer: strings.TrimSpace(s.inputs[FieldCustomer].Value()),
		WorkItem: strings.TrimSpace(s.inputs[FieldWorkItem].Value()),
		Hours:    hours,
		Comment:  strings.TrimSpace(s.inputs[FieldComment].Value()),
	}

	var warnings []string
	if entry.WorkItem == "" {
		if auto, ok := entry.Activity.AutoWorkItem(); ok {
			entry.WorkItem = auto
		} else {
			warnings = append(warnings, "work item is empty")
		}
	}
	if entry.Customer == "" {
		warnings = append(warnings, "customer is empty")
	}
	return entry, warnings, nil
}
