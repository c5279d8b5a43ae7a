// internal/record/record.go
//
// Apptrack – application record model and input validation.
//
// Context
// -------
// One Application row per tracked job or internship application.  Dates are
// stored as ISO-8601 strings (`YYYY-MM-DD`), matching the TEXT columns in
// the Applications table, so a row written by an older build or edited by
// hand can still be read back; parsing happens at the edges (validation and
// due-item classification), never during a scan.
//
// The follow-up date is derived, never supplied: always date_applied plus
// ten calendar days.  There is no override path.
//
// Notes
// -----
// • Oxford commas, two spaces after periods.
package record

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the on-disk and on-screen date format.
const DateLayout = "2006-01-02"

// followUpOffsetDays is the fixed gap between applying and checking in.
const followUpOffsetDays = 10

//
// Status enum
//

// Status is the workflow state of an application.  The set is fixed; any
// value may follow any other on edit, except that Archive() is the only
// path into StatusArchived.
type Status string

const (
	StatusPlanned        Status = "Planned"
	StatusApplied        Status = "Applied"
	StatusFollowUpNeeded Status = "Follow-up Needed"
	StatusInterviewing   Status = "Interviewing"
	StatusOffer          Status = "Offer"
	StatusRejected       Status = "Rejected"
	StatusArchived       Status = "Archived"
)

// Statuses lists every valid Status in display order.
func Statuses() []Status {
	return []Status{
		StatusPlanned,
		StatusApplied,
		StatusFollowUpNeeded,
		StatusInterviewing,
		StatusOffer,
		StatusRejected,
		StatusArchived,
	}
}

// ValidStatus reports whether s is a member of the fixed enum.
func ValidStatus(s Status) bool {
	for _, v := range Statuses() {
		if v == s {
			return true
		}
	}
	return false
}

//
// Model
//

// Application is one persisted row.  The application_link and location
// columns exist in the table for future use but are not mapped; every
// query names its columns explicitly.
type Application struct {
	ID           int64  `db:"application_id"`
	Company      string `db:"company_name"`
	Role         string `db:"role_title"`
	DateApplied  string `db:"date_applied"`
	Status       Status `db:"status"`
	FollowUpDate string `db:"follow_up_date"`
	Notes        string `db:"notes"`
	Archived     bool   `db:"archived"`
}

// Input carries the caller-supplied fields for Create and Update.  The id
// and archived flag are never part of an Input; Validate returns the
// trimmed form or the first field failure.
type Input struct {
	Company     string
	Role        string
	DateApplied string
	Status      Status
	Notes       string
}

//
// Validation
//

// ValidationError reports a single rejected input field.  No write happens
// once one is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validate trims every text field and checks the create/update rules:
// non-empty company and role, a real calendar date, and a known status.
// It returns the normalized Input, or a *ValidationError naming the first
// field that failed.
func (in Input) Validate() (Input, error) {
	in.Company = strings.TrimSpace(in.Company)
	in.Role = strings.TrimSpace(in.Role)
	in.DateApplied = strings.TrimSpace(in.DateApplied)
	in.Status = Status(strings.TrimSpace(string(in.Status)))
	in.Notes = strings.TrimSpace(in.Notes)

	if in.Company == "" {
		return in, &ValidationError{Field: "company", Reason: "required"}
	}
	if in.Role == "" {
		return in, &ValidationError{Field: "role", Reason: "required"}
	}
	if in.DateApplied == "" {
		return in, &ValidationError{Field: "date_applied", Reason: "required"}
	}
	if _, err := time.Parse(DateLayout, in.DateApplied); err != nil {
		return in, &ValidationError{
			Field:  "date_applied",
			Reason: fmt.Sprintf("must be a valid date in %s form", "YYYY-MM-DD"),
		}
	}
	if !ValidStatus(in.Status) {
		return in, &ValidationError{Field: "status", Reason: "not an allowed status"}
	}
	return in, nil
}

// FollowUp derives the follow-up date from a valid applied date: exactly
// ten calendar days later, month and year rollovers included.
func FollowUp(dateApplied string) (string, error) {
	d, err := time.Parse(DateLayout, dateApplied)
	if err != nil {
		return "", err
	}
	return d.AddDate(0, 0, followUpOffsetDays).Format(DateLayout), nil
}
