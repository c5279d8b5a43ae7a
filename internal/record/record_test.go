// internal/record/record_test.go
//
// Unit-tests for input validation and follow-up derivation.
//
// Run: go test ./internal/record -v

package record

import (
	"errors"
	"testing"
)

func TestFollowUpDerivation(t *testing.T) {
	cases := []struct {
		applied string
		want    string
	}{
		{"2026-01-01", "2026-01-11"},
		{"2026-02-25", "2026-03-07"}, // month rollover
		{"2026-12-28", "2027-01-07"}, // year rollover
		{"2028-02-20", "2028-03-01"}, // leap year, crosses Feb 29
		{"2027-02-20", "2027-03-02"}, // same dates, non-leap year
	}
	for _, c := range cases {
		got, err := FollowUp(c.applied)
		if err != nil {
			t.Fatalf("FollowUp(%s): %v", c.applied, err)
		}
		if got != c.want {
			t.Errorf("FollowUp(%s) = %s, want %s", c.applied, got, c.want)
		}
	}
}

func TestValidateRejections(t *testing.T) {
	valid := Input{
		Company:     "Acme",
		Role:        "Intern",
		DateApplied: "2026-01-01",
		Status:      StatusApplied,
	}

	cases := []struct {
		name      string
		mutate    func(*Input)
		wantField string
	}{
		{"empty company", func(in *Input) { in.Company = "   " }, "company"},
		{"empty role", func(in *Input) { in.Role = "" }, "role"},
		{"missing date", func(in *Input) { in.DateApplied = "" }, "date_applied"},
		{"impossible date", func(in *Input) { in.DateApplied = "2026-13-40" }, "date_applied"},
		{"wrong date format", func(in *Input) { in.DateApplied = "01/02/2026" }, "date_applied"},
		{"unknown status", func(in *Input) { in.Status = "Pending" }, "status"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			in := valid
			c.mutate(&in)
			_, err := in.Validate()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("want *ValidationError, got %v", err)
			}
			if verr.Field != c.wantField {
				t.Errorf("failing field = %q, want %q", verr.Field, c.wantField)
			}
		})
	}
}

func TestValidateTrims(t *testing.T) {
	in := Input{
		Company:     "  Acme  ",
		Role:        " Intern ",
		DateApplied: " 2026-01-01 ",
		Status:      StatusPlanned,
		Notes:       "  met recruiter  ",
	}
	got, err := in.Validate()
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if got.Company != "Acme" || got.Role != "Intern" ||
		got.DateApplied != "2026-01-01" || got.Notes != "met recruiter" {
		t.Errorf("unexpected trim result: %+v", got)
	}
}

func TestValidStatusCoversEnum(t *testing.T) {
	for _, s := range Statuses() {
		if !ValidStatus(s) {
			t.Errorf("ValidStatus(%s) = false", s)
		}
	}
	if ValidStatus("Pending") {
		t.Error("ValidStatus accepted a value outside the enum")
	}
}
