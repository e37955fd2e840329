package monday

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/claimdeck/claimdeck/internal/claims"
)

// Board column ids used by the time-tracking board.
const (
	colDate     = "date4"
	colActivity = "status"
	colCustomer = "text__1"
	colWorkItem = "text8__1"
	colHours    = "numbers__1"
	colComment  = "text2__1"
)

// DefaultBoardID is the production time-tracking board.
const DefaultBoardID = "6500270039"

// fallbackGroupID receives items when no group matches the claim's year.
const fallbackGroupID = "new_group_mkkbbd2q"

// User is the authenticated account the token belongs to.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type columnValue struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Value string `json:"value"`
}

type item struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	ColumnValues []columnValue `json:"column_values"`
}

type group struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// entryFromItem decodes a board item into a claim. Items without a parseable
// date are skipped by the caller.
func entryFromItem(it item) (claims.ClaimEntry, error) {
	e := claims.ClaimEntry{ID: it.ID, Activity: claims.DefaultActivity}
	parts := strings.SplitN(it.Name, " - ", 2)
	if len(parts) == 2 {
		e.Customer, e.WorkItem = parts[0], parts[1]
	}
	for _, cv := range it.ColumnValues {
		switch cv.ID {
		case colDate:
			if cv.Text == "" {
				continue
			}
			d, err := time.Parse(claims.DateFormat, cv.Text)
			if err != nil {
				return e, fmt.Errorf("item %s: bad date %q", it.ID, cv.Text)
			}
			e.Date = d
		case colActivity:
			if idx, ok := statusIndex(cv.Value); ok {
				if a := claims.ActivityType(idx); a.Valid() {
					e.Activity = a
				}
			} else if a, err := claims.ParseActivity(cv.Text); err == nil {
				e.Activity = a
			}
		case colCustomer:
			if cv.Text != "" {
				e.Customer = cv.Text
			}
		case colWorkItem:
			if cv.Text != "" {
				e.WorkItem = cv.Text
			}
		case colHours:
			if cv.Text != "" {
				h, err := strconv.ParseFloat(cv.Text, 64)
				if err != nil {
					return e, fmt.Errorf("item %s: bad hours %q", it.ID, cv.Text)
				}
				e.Hours = h
			}
		case colComment:
			e.Comment = cv.Text
		}
	}
	if e.Date.IsZero() {
		return e, fmt.Errorf("item %s: no date", it.ID)
	}
	return e, nil
}

// statusIndex extracts the numeric index from a status column's raw value,
// which arrives as JSON like {"index":3}.
func statusIndex(raw string) (int, bool) {
	if raw == "" {
		return 0, false
	}
	var v struct {
		Index *int `json:"index"`
	}
	if err := json.Unmarshal([]byte(raw), &v); err != nil || v.Index == nil {
		return 0, false
	}
	return *v.Index, true
}

// columnValuesJSON encodes a claim's fields for create and update mutations.
func columnValuesJSON(e claims.ClaimEntry) (string, error) {
	payload := map[string]any{
		colDate:     map[string]string{"date": e.Date.Format(claims.DateFormat)},
		colActivity: map[string]int{"index": e.Activity.Code()},
		colCustomer: e.Customer,
		colWorkItem: e.WorkItem,
		colHours:    claims.FormatHours(e.Hours),
		colComment:  e.Comment,
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode column values: %w", err)
	}
	return string(raw), nil
}
