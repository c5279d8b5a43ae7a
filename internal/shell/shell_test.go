// internal/shell/shell_test.go
//
// Scripted end-to-end tests: feed the shell a fixed command script over an
// in-memory store and assert on the rendered output.
//
// Run: go test ./internal/shell -v

package shell

import (
	"context"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/yanizio/apptrack/internal/database"
	"github.com/yanizio/apptrack/internal/record"
)

func newTestStore(t *testing.T) *record.Store {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	s := record.New(db)
	if err := s.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return s
}

// runScript executes the shell against script (one line per user input)
// and returns everything it printed.
func runScript(t *testing.T, store *record.Store, script string, now time.Time) string {
	t.Helper()
	var out strings.Builder
	sh := New(store, zap.NewNop().Sugar(), strings.NewReader(script), &out)
	sh.now = func() time.Time { return now }
	if err := sh.Run(context.Background()); err != nil {
		t.Fatalf("shell run: %v", err)
	}
	return out.String()
}

func TestAddArchiveDeleteFlow(t *testing.T) {
	store := newTestStore(t)

	// add form: company, role, date, status (enter keeps Applied), notes.
	script := strings.Join([]string{
		"add",
		"Acme",
		"Intern",
		"2026-01-01",
		"",
		"",
		"archive 1",
		"delete 1",
		"quit",
	}, "\n")
	out := runScript(t, store, script, time.Now())

	if !strings.Contains(out, "created #1") {
		t.Errorf("missing create confirmation:\n%s", out)
	}
	if !strings.Contains(out, "2026-01-11") {
		t.Errorf("derived follow-up date not rendered:\n%s", out)
	}

	// The record is gone: a fresh query must come back empty.
	recs, err := store.List(context.Background(), record.Filter{IncludeArchived: true})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("delete did not stick: %+v", recs)
	}
}

func TestEditKeepsOldValuesOnEnter(t *testing.T) {
	store := newTestStore(t)
	id, err := store.Create(context.Background(), record.Input{
		Company: "Acme", Role: "Intern", DateApplied: "2026-01-01",
		Status: record.StatusApplied, Notes: "original",
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	// Change only the status; every other prompt is answered with enter.
	script := strings.Join([]string{
		"edit 1",
		"",
		"",
		"",
		"Interviewing",
		"",
		"quit",
	}, "\n")
	out := runScript(t, store, script, time.Now())
	if !strings.Contains(out, "updated #1") {
		t.Fatalf("missing update confirmation:\n%s", out)
	}

	rec, err := store.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec.Company != "Acme" || rec.Notes != "original" {
		t.Errorf("enter did not keep old values: %+v", rec)
	}
	if rec.Status != record.StatusInterviewing {
		t.Errorf("status = %s, want Interviewing", rec.Status)
	}
}

func TestValidationFailureKeepsShellAlive(t *testing.T) {
	store := newTestStore(t)

	script := strings.Join([]string{
		"add",
		"Acme",
		"Intern",
		"2026-13-40", // impossible date
		"",
		"",
		"summary",
		"quit",
	}, "\n")
	out := runScript(t, store, script, time.Now())

	if !strings.Contains(out, "invalid date_applied") {
		t.Errorf("validation message missing:\n%s", out)
	}
	if !strings.Contains(out, "0 application(s) total.") {
		t.Errorf("rejected create left state behind:\n%s", out)
	}
}

func TestDueCommand(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	seed := func(date string) {
		t.Helper()
		_, err := store.Create(ctx, record.Input{
			Company: "Acme", Role: "Intern", DateApplied: date, Status: record.StatusApplied,
		})
		if err != nil {
			t.Fatalf("seed %s: %v", date, err)
		}
	}
	seed("2026-01-31") // follow-up 2026-02-10 → overdue
	seed("2026-02-05") // follow-up 2026-02-15 → due today
	seed("2026-02-10") // follow-up 2026-02-20 → not due

	today, _ := time.Parse(record.DateLayout, "2026-02-15")
	out := runScript(t, store, "due\nquit", today)

	if !strings.Contains(out, "Overdue") || !strings.Contains(out, "Due Today") {
		t.Errorf("labels missing:\n%s", out)
	}
	if !strings.Contains(out, "2 due (1 overdue, 1 due today)") {
		t.Errorf("counts line missing:\n%s", out)
	}
	if strings.Contains(out, "2026-02-20") {
		t.Errorf("future follow-up rendered as due:\n%s", out)
	}
}

func TestUnknownIDReportsNotFound(t *testing.T) {
	store := newTestStore(t)
	out := runScript(t, store, "archive 42\nquit", time.Now())
	if !strings.Contains(out, "no application with that id") {
		t.Errorf("not-found message missing:\n%s", out)
	}
}
