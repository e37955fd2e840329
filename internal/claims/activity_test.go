package claims

import (
	"errors"
	"testing"
)

func TestParseActivityByName(t *testing.T) {
	a, err := ParseActivity("education")
	if err != nil {
		t.Fatalf("ParseActivity returned error: %v", err)
	}
	if a != ActivityEducation {
		t.Fatalf("expected education, got %v", a)
	}
}

func TestParseActivityByCode(t *testing.T) {
	a, err := ParseActivity("12")
	if err != nil {
		t.Fatalf("ParseActivity returned error: %v", err)
	}
	if a != ActivityOverhead {
		t.Fatalf("expected overhead, got %v", a)
	}
}

func TestParseActivityRejectsUnknown(t *testing.T) {
	for _, input := range []string{"", "13", "-1", "lunch"} {
		_, err := ParseActivity(input)
		if err == nil {
			t.Fatalf("expected error for %q", input)
		}
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected ValidationError for %q, got %T", input, err)
		}
	}
}

func TestActivityByDigit(t *testing.T) {
	a, ok := ActivityByDigit(0)
	if !ok || a != ActivityVacation {
		t.Fatalf("digit 0: got %v, %v", a, ok)
	}
	a, ok = ActivityByDigit(9)
	if !ok || a != ActivityPaidNotWorked {
		t.Fatalf("digit 9: got %v, %v", a, ok)
	}
	if _, ok := ActivityByDigit(10); ok {
		t.Fatal("digit 10 should not resolve")
	}
}

func TestAutoWorkItem(t *testing.T) {
	cases := []struct {
		activity ActivityType
		want     string
		applies  bool
	}{
		{ActivityVacation, AbsenceWorkItem, true},
		{ActivityIllness, AbsenceWorkItem, true},
		{ActivityHoliday, AbsenceWorkItem, true},
		{ActivityPaidNotWorked, AbsenceWorkItem, true},
		{ActivityWorkReduction, AbsenceWorkItem, true},
		{ActivityEducation, LearningWorkItem, true},
		{ActivityIntellectualCapital, LearningWorkItem, true},
		{ActivityBillable, "", false},
		{ActivityPresales, "", false},
	}
	for _, c := range cases {
		got, ok := c.activity.AutoWorkItem()
		if ok != c.applies || got != c.want {
			t.Fatalf("%v: got %q/%v, want %q/%v", c.activity, got, ok, c.want, c.applies)
		}
	}
}

func TestActivityCatalogue(t *testing.T) {
	all := Activities()
	if len(all) != 13 {
		t.Fatalf("expected 13 activity types, got %d", len(all))
	}
	if DefaultActivity != ActivityBillable {
		t.Fatalf("default should be billable, got %v", DefaultActivity)
	}
	for _, a := range all {
		if a.String() == "" || a.Label() == "" {
			t.Fatalf("activity %d has empty name or label", a.Code())
		}
	}
}
