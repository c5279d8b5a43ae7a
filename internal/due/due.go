// internal/due/due.go
//
// Apptrack – due-item classification.
//
// Context
// -------
// Given "today" and the current rows, pick out every non-archived
// application whose follow-up date has arrived or passed, label each one,
// and report the aggregate counts the shell shows above the table.
//
// Stored dates are ISO-8601 strings, so ordering is lexicographic string
// order, which coincides with chronological order for well-formed values.
// A row whose stored follow-up date no longer parses is surfaced anyway
// with a generic label rather than dropped or treated as fatal; a corrupt
// row is exactly the row the user most needs to see.
package due

import (
	"sort"
	"time"

	"github.com/yanizio/apptrack/internal/record"
)

// Label classifies one due item relative to today.
type Label string

const (
	LabelOverdue  Label = "Overdue"
	LabelDueToday Label = "Due Today"
	// LabelDue is the fallback when the stored follow-up date cannot be
	// parsed and no finer comparison is possible.
	LabelDue Label = "Due"
)

// Item pairs a record with its classification.
type Item struct {
	Record record.Application
	Label  Label
}

// Counts aggregates a classification run.  Corrupt-date rows count toward
// Total only.
type Counts struct {
	Total    int
	Overdue  int
	DueToday int
}

// Classify partitions the non-archived records into due items, ordered by
// follow-up date ascending with ties broken by id ascending.  Records with
// a follow-up date after today are excluded.
func Classify(today time.Time, recs []record.Application) ([]Item, Counts) {
	todayStr := today.Format(record.DateLayout)

	items := make([]Item, 0, len(recs))
	var counts Counts
	for _, r := range recs {
		if r.Archived {
			continue
		}
		if _, err := time.Parse(record.DateLayout, r.FollowUpDate); err != nil {
			items = append(items, Item{Record: r, Label: LabelDue})
			counts.Total++
			continue
		}
		switch {
		case r.FollowUpDate < todayStr:
			items = append(items, Item{Record: r, Label: LabelOverdue})
			counts.Total++
			counts.Overdue++
		case r.FollowUpDate == todayStr:
			items = append(items, Item{Record: r, Label: LabelDueToday})
			counts.Total++
			counts.DueToday++
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].Record, items[j].Record
		if a.FollowUpDate != b.FollowUpDate {
			return a.FollowUpDate < b.FollowUpDate
		}
		return a.ID < b.ID
	})
	return items, counts
}
