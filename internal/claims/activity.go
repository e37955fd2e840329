package claims

import (
	"fmt"
	"strconv"
	"strings"
)

// ActivityType is the numeric code the tracking board uses for the status
// column of a claim. Codes are stable; new types are appended.
type ActivityType int

const (
	ActivityVacation ActivityType = iota
	ActivityBillable
	ActivityHolding
	ActivityEducation
	ActivityWorkReduction
	ActivityTBD
	ActivityHoliday
	ActivityPresales
	ActivityIllness
	ActivityPaidNotWorked
	ActivityIntellectualCapital
	ActivityBusinessDevelopment
	ActivityOverhead

	activityCount
)

// DefaultActivity is used when a claim carries no recognisable status.
const DefaultActivity = ActivityBillable

var activityNames = [activityCount]string{
	ActivityVacation:            "vacation",
	ActivityBillable:            "billable",
	ActivityHolding:             "holding",
	ActivityEducation:           "education",
	ActivityWorkReduction:       "work_reduction",
	ActivityTBD:                 "tbd",
	ActivityHoliday:             "holiday",
	ActivityPresales:            "presales",
	ActivityIllness:             "illness",
	ActivityPaidNotWorked:       "paid_not_worked",
	ActivityIntellectualCapital: "intellectual_capital",
	ActivityBusinessDevelopment: "business_development",
	ActivityOverhead:            "overhead",
}

var activityLabels = [activityCount]string{
	ActivityVacation:            "Vacation",
	ActivityBillable:            "Billable (default)",
	ActivityHolding:             "Holding",
	ActivityEducation:           "Education",
	ActivityWorkReduction:       "Work Reduction",
	ActivityTBD:                 "TBD",
	ActivityHoliday:             "Holiday",
	ActivityPresales:            "Presales",
	ActivityIllness:             "Illness",
	ActivityPaidNotWorked:       "Paid Not Worked",
	ActivityIntellectualCapital: "Intellectual Capital",
	ActivityBusinessDevelopment: "Business Development",
	ActivityOverhead:            "Overhead",
}

// Work items substituted on save when the user leaves the field blank for
// types that have no real work item of their own.
const (
	AbsenceWorkItem  = "ABSENCE"
	LearningWorkItem = "LEARNING"
)

// Activities returns every known type in code order.
func Activities() []ActivityType {
	out := make([]ActivityType, 0, int(activityCount))
	for a := ActivityType(0); a < activityCount; a++ {
		out = append(out, a)
	}
	return out
}

// Valid reports whether the code is within the known range.
func (a ActivityType) Valid() bool {
	return a >= 0 && a < activityCount
}

func (a ActivityType) String() string {
	if !a.Valid() {
		return fmt.Sprintf("unknown(%d)", int(a))
	}
	return activityNames[a]
}

// Label returns the human-readable display name.
func (a ActivityType) Label() string {
	if !a.Valid() {
		return a.String()
	}
	return activityLabels[a]
}

// Code returns the numeric board value for the type.
func (a ActivityType) Code() int { return int(a) }

// Billable reports whether time of this type is charged to a customer.
func (a ActivityType) Billable() bool { return a == ActivityBillable }

// AutoWorkItem returns the placeholder work item used for types that never
// have a real one, and whether such a placeholder applies.
func (a ActivityType) AutoWorkItem() (string, bool) {
	switch a {
	case ActivityVacation, ActivityIllness, ActivityHoliday,
		ActivityPaidNotWorked, ActivityWorkReduction:
		return AbsenceWorkItem, true
	case ActivityEducation, ActivityIntellectualCapital:
		return LearningWorkItem, true
	}
	return "", false
}

// ParseActivity resolves a type from its name or numeric code.
func ParseActivity(s string) (ActivityType, error) {
	trimmed := strings.ToLower(strings.TrimSpace(s))
	if trimmed == "" {
		return 0, &ValidationError{Field: "activity-type", Reason: "value is required"}
	}
	if n, err := strconv.Atoi(trimmed); err == nil {
		a := ActivityType(n)
		if !a.Valid() {
			return 0, &ValidationError{Field: "activity-type", Reason: fmt.Sprintf("code %d out of range", n)}
		}
		return a, nil
	}
	for a, name := range activityNames {
		if name == trimmed {
			return ActivityType(a), nil
		}
	}
	return 0, &ValidationError{Field: "activity-type", Reason: fmt.Sprintf("unknown type %q", s)}
}

// ActivityByDigit resolves a type from a single digit key press. Types with
// codes above 9 are unreachable this way and need full text entry.
func ActivityByDigit(d int) (ActivityType, bool) {
	if d < 0 || d > 9 {
		return 0, false
	}
	a := ActivityType(d)
	return a, a.Valid()
}
