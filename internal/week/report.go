package week

import "sort"

// ReportRow aggregates the window's hours for one (customer, work item)
// pair. Non-billable time keeps its activity name in Activity so the report
// can label it.
type ReportRow struct {
	Customer string
	WorkItem string
	Activity string
	Hours    float64
	Billable bool
}

// Report groups the window's entries by customer and work item, ordered by
// descending hours, ties broken by customer then work item ascending.
func Report(w *Window) []ReportRow {
	type key struct {
		customer, workItem string
	}
	acc := make(map[key]*ReportRow)
	var order []key
	for _, e := range w.All() {
		k := key{e.Customer, e.WorkItem}
		row, ok := acc[k]
		if !ok {
			row = &ReportRow{
				Customer: e.Customer,
				WorkItem: e.WorkItem,
				Activity: e.Activity.String(),
				Billable: e.Activity.Billable(),
			}
			acc[k] = row
			order = append(order, k)
		}
		row.Hours += e.Hours
		if e.Activity.Billable() {
			row.Billable = true
		}
	}
	rows := make([]ReportRow, 0, len(order))
	for _, k := range order {
		rows = append(rows, *acc[k])
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Hours != rows[j].Hours {
			return rows[i].Hours > rows[j].Hours
		}
		if rows[i].Customer != rows[j].Customer {
			return rows[i].Customer < rows[j].Customer
		}
		return rows[i].WorkItem < rows[j].WorkItem
	})
	return rows
}
