package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/claimdeck/claimdeck/internal/cache"
	"github.com/claimdeck/claimdeck/internal/claims"
	"github.com/claimdeck/claimdeck/internal/week"
)

// View renders the whole screen for the current mode.
func (m *Model) View() string {
	var body string
	switch m.mode {
	case ModeAdd, ModeEdit:
		body = m.formView()
	case ModeReport:
		body = m.reportView()
	case ModeHelp:
		body = helpView()
	default:
		body = m.weekView()
	}

	sections := []string{m.headerView(), body}
	if status := m.statusView(); status != "" {
		sections = append(sections, status)
	}
	sections = append(sections, m.footerView())
	return strings.Join(sections, "\n")
}

func (m *Model) headerView() string {
	w := m.window()
	title := styles.Header.Render(fmt.Sprintf(
		"claimdeck  %s .. %s",
		w.Monday.Format(claims.DateFormat),
		w.Day(week.Days-1).Format(claims.DateFormat),
	))
	if m.user.Name == "" {
		return title
	}
	identity := styles.UserInfo.Render(fmt.Sprintf("%s <%s>", m.user.Name, m.user.Email))
	return title + "  " + identity
}

func (m *Model) weekView() string {
	w := m.window()
	var b strings.Builder
	for day := 0; day < week.Days; day++ {
		date := w.Day(day)
		header := fmt.Sprintf("%s %s  (%sh)",
			date.Format("Mon"), date.Format(claims.DateFormat), claims.FormatHours(w.DayTotal(day)))
		style := styles.DayHeader
		if day == m.sel.Day {
			style = styles.DaySelected
			if !m.sel.HasEntry() {
				header = "> " + header
			} else {
				header = "  " + header
			}
		} else {
			header = "  " + header
		}
		b.WriteString(style.Render(header))
		b.WriteString("\n")
		for i, e := range w.Entries(day) {
			line := fmt.Sprintf("    %s  %sh  [%s]", e.Title(), claims.FormatHours(e.Hours), e.Activity)
			if day == m.sel.Day && i == m.sel.Entry {
				b.WriteString(styles.EntrySelected.Render("  >" + line[3:]))
			} else {
				b.WriteString(styles.Entry.Render(line))
			}
			b.WriteString("\n")
		}
	}
	b.WriteString(styles.Total.Render(fmt.Sprintf("  week total: %sh", claims.FormatHours(w.WeekTotal()))))

	left := b.String()
	panels := []string{left}
	if panel := m.quickSelectPanel(); panel != "" {
		panels = append(panels, panel)
	}
	if details := m.detailsPanel(); details != "" {
		panels = append(panels, details)
	}
	if m.mode == ModeDelete && m.confirm != nil {
		confirm := styles.Confirm.Render(fmt.Sprintf(
			"delete %s on %s? (y/n)", m.confirm.Title(), m.confirm.Date.Format(claims.DateFormat)))
		return lipgloss.JoinHorizontal(lipgloss.Top, panels...) + "\n" + confirm
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, panels...)
}

func (m *Model) quickSelectPanel() string {
	entries := m.QuickSelects(cache.PanelLimit)
	if len(entries) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(styles.PanelTitle.Render("   recent"))
	b.WriteString("\n")
	for i, e := range entries {
		b.WriteString(styles.PanelBody.Render(fmt.Sprintf("   %2d. %s / %s", i+1, e.Customer, e.WorkItem)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) detailsPanel() string {
	entry, ok := m.Selected()
	if !ok {
		return ""
	}
	var b strings.Builder
	b.WriteString(styles.PanelTitle.Render("   details"))
	b.WriteString("\n")
	lines := []string{
		fmt.Sprintf("   date:      %s", entry.Date.Format(claims.DateFormat)),
		fmt.Sprintf("   activity:  %s", entry.Activity.Label()),
		fmt.Sprintf("   customer:  %s", entry.Customer),
		fmt.Sprintf("   work item: %s", entry.WorkItem),
		fmt.Sprintf("   hours:     %s", claims.FormatHours(entry.Hours)),
	}
	if entry.Comment != "" {
		lines = append(lines, fmt.Sprintf("   comment:   %s", entry.Comment))
	}
	for _, line := range lines {
		b.WriteString(styles.PanelBody.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) reportView() string {
	rows := week.Report(m.window())
	if len(rows) == 0 {
		return styles.Info.Render("  no claims this week")
	}
	var b strings.Builder
	b.WriteString(styles.PanelTitle.Render("  weekly report"))
	b.WriteString("\n")
	for _, row := range rows {
		label := row.Customer
		if !row.Billable {
			label = row.Activity
		}
		b.WriteString(styles.PanelBody.Render(fmt.Sprintf(
			"  %-24s %-20s %6sh", label, row.WorkItem, claims.FormatHours(row.Hours))))
		b.WriteString("\n")
	}
	totals := m.window().ActivityTotals()
	if len(totals) > 0 {
		b.WriteString(styles.PanelTitle.Render("  by activity"))
		b.WriteString("\n")
		for _, a := range claims.Activities() {
			if hours, ok := totals[a]; ok {
				b.WriteString(styles.PanelBody.Render(fmt.Sprintf("  %-24s %6sh", a.Label(), claims.FormatHours(hours))))
				b.WriteString("\n")
			}
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) statusView() string {
	if m.loading {
		return styles.Loading.Render(fmt.Sprintf("%s %s… (esc cancels)", m.spin.View(), m.loadingMsg))
	}
	if m.errMsg != "" {
		return styles.Error.Render("error: " + m.errMsg)
	}
	if m.infoMsg != "" {
		return styles.Info.Render(m.infoMsg)
	}
	return ""
}

func (m *Model) footerView() string {
	var hint string
	switch m.mode {
	case ModeAdd, ModeEdit:
		hint = "tab: next field · digits: quick select · enter: save · esc: discard"
	case ModeDelete:
		hint = "y: delete · n: keep"
	case ModeReport:
		hint = "esc: back"
	case ModeHelp:
		hint = "any key: back"
	default:
		hint = "←→↑↓ move · [ ] weeks · a add · e edit · d delete · r report · ? help · q quit"
	}
	return styles.Footer.Render(hint)
}

func helpView() string {
	lines := []string{
		"  navigation",
		"    left/right, h/l     switch day",
		"    up/down, k/j        move between entries",
		"    1-5                 jump to a weekday",
		"    [ / ], p / n        previous / next week",
		"    t                   jump to the current week",
		"  claims",
		"    a                   add a claim on the selected day",
		"    e, enter            edit the selected claim",
		"    d                   delete the selected claim",
		"    R                   refetch the week from the board",
		"  other",
		"    r                   weekly report",
		"    esc                 cancel a running operation",
		"    q, ctrl+c           quit",
		"  in the editor",
		"    tab / shift+tab     next / previous field",
		"    0-9 on activity     pick the activity type by code",
		"    1-9 on customer or  fill customer and work item from",
		"         work item      the recent list",
	}
	return styles.PanelBody.Render(strings.Join(lines, "\n"))
}
