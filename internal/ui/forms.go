package ui

import (
	"fmt"
	"strings"

	"github.com/claimdeck/claimdeck/internal/cache"
	"github.com/claimdeck/claimdeck/internal/form"
)

func (m *Model) formView() string {
	if m.form == nil {
		return ""
	}
	title := "add claim"
	if m.form.Editing() {
		title = "edit claim"
	}
	var b strings.Builder
	b.WriteString(styles.PanelTitle.Render("  " + title))
	b.WriteString("\n")
	for _, f := range form.Fields() {
		label := fmt.Sprintf("  %-10s", f.Label())
		if f == m.form.Focused() {
			b.WriteString(styles.FormFocused.Render("> " + label))
		} else {
			b.WriteString(styles.FormLabel.Render("  " + label))
		}
		if f == form.FieldActivity {
			value := fmt.Sprintf("%s (%d)", m.form.Activity().Label(), m.form.Activity().Code())
			b.WriteString(styles.FormValue.Render(value))
		} else if f == m.form.Focused() {
			b.WriteString(m.form.Input(f).View())
		} else {
			b.WriteString(styles.FormValue.Render(m.form.Value(f)))
		}
		b.WriteString("\n")
	}
	if hints := m.compactQuickSelects(); hints != "" {
		b.WriteString(hints)
	}
	return strings.TrimRight(b.String(), "\n")
}

// compactQuickSelects shows the top pairs reachable via digit keys while
// the customer or work item field has focus.
func (m *Model) compactQuickSelects() string {
	if m.form == nil {
		return ""
	}
	if form.DispositionFor(m.form.Focused()) != form.DigitSelectsPair {
		return ""
	}
	// Narrow the hints fuzzily as the user types.
	entries := m.store.Filter(m.form.Value(m.form.Focused()), cache.CompactLimit)
	if len(entries) == 0 {
		return ""
	}
	var parts []string
	for i, e := range entries {
		parts = append(parts, fmt.Sprintf("%d:%s/%s", i+1, e.Customer, e.WorkItem))
	}
	return styles.PanelBody.Render("  recent: " + strings.Join(parts, "  "))
}
