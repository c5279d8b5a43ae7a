// internal/record/store.go
//
// Apptrack – SQL-backed Record Store.
//
// Context
// -------
// The store owns the single Applications table and is the only writer.
// Every operation is synchronous, touches at most one row, and either
// fully applies or not at all; validation runs before the first statement
// so a rejected input never reaches the database.  Callers supply a
// context so lookups respect deadlines, matching the rest of the codebase.
//
// The shell treats this package as the source of truth: it re-queries
// List() after every mutation instead of patching an in-memory copy.
//
// Notes
// -----
// • Oxford commas, two spaces after periods.
package record

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"
)

// ErrNotFound is returned when an operation targets an id that no longer
// exists, e.g. a stale selection after a delete.
var ErrNotFound = errors.New("application not found")

// Store wraps the shared *sqlx.DB.  It holds no other state.
type Store struct {
	db *sqlx.DB
}

// New constructs a Store over an open database handle.
func New(db *sqlx.DB) *Store { return &Store{db: db} }

// Migrate creates the Applications table when absent.  application_link
// and location are reserved columns; no operation populates them yet.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
        CREATE TABLE IF NOT EXISTS Applications (
            application_id INTEGER PRIMARY KEY AUTOINCREMENT,
            company_name   TEXT NOT NULL,
            role_title     TEXT NOT NULL,
            date_applied   TEXT NOT NULL,
            status         TEXT NOT NULL,
            follow_up_date TEXT NOT NULL,
            application_link TEXT,
            location         TEXT,
            notes          TEXT,
            archived       INTEGER NOT NULL DEFAULT 0
        );`)
	return err
}

// selectCols is the column list shared by every read so scans line up with
// the Application struct.
const selectCols = `application_id, company_name, role_title, date_applied,
                    status, follow_up_date, notes, archived`

//
// Mutations
//

// Create validates in, derives the follow-up date, and inserts one row
// with archived = false.  It returns the freshly assigned id.
func (s *Store) Create(ctx context.Context, in Input) (int64, error) {
	in, err := in.Validate()
	if err != nil {
		return 0, err
	}
	followUp, err := FollowUp(in.DateApplied)
	if err != nil {
		return 0, err
	}

	const q = `
        INSERT INTO Applications
            (company_name, role_title, date_applied, status, follow_up_date, notes, archived)
        VALUES (?, ?, ?, ?, ?, ?, 0);`
	res, err := s.db.ExecContext(ctx, q,
		in.Company, in.Role, in.DateApplied, in.Status, followUp, in.Notes)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Update validates in like Create, recomputes the follow-up date from the
// possibly new applied date, and overwrites every field except the id and
// the archived flag.
func (s *Store) Update(ctx context.Context, id int64, in Input) error {
	in, err := in.Validate()
	if err != nil {
		return err
	}
	followUp, err := FollowUp(in.DateApplied)
	if err != nil {
		return err
	}

	const q = `
        UPDATE Applications
           SET company_name = ?, role_title = ?, date_applied = ?,
               status = ?, follow_up_date = ?, notes = ?
         WHERE application_id = ?;`
	res, err := s.db.ExecContext(ctx, q,
		in.Company, in.Role, in.DateApplied, in.Status, followUp, in.Notes, id)
	if err != nil {
		return err
	}
	return oneRowOrNotFound(res)
}

// Archive flips the row into its terminal shelf state: archived = true and
// status = "Archived", set together in one statement.  Archiving an
// already-archived row is a no-op success; there is no un-archive.
func (s *Store) Archive(ctx context.Context, id int64) error {
	const q = `
        UPDATE Applications
           SET status = ?, archived = 1
         WHERE application_id = ?;`
	res, err := s.db.ExecContext(ctx, q, StatusArchived, id)
	if err != nil {
		return err
	}
	return oneRowOrNotFound(res)
}

// Delete removes the row permanently.  The id is never reused.
func (s *Store) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM Applications WHERE application_id = ?;`
	res, err := s.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	return oneRowOrNotFound(res)
}

// oneRowOrNotFound maps "zero rows matched" onto ErrNotFound.
func oneRowOrNotFound(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

//
// Reads
//

// GetByID returns the full row, or ErrNotFound.  The shell uses it to
// pre-populate the edit form.
func (s *Store) GetByID(ctx context.Context, id int64) (*Application, error) {
	const q = `
        SELECT ` + selectCols + `
          FROM Applications
         WHERE application_id = ?
         LIMIT 1;`
	var rec Application
	if err := s.db.GetContext(ctx, &rec, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// Filter narrows List.  The zero value hides archived rows and applies no
// status or text filter; set fields combine with logical AND.
type Filter struct {
	IncludeArchived bool
	Status          Status // empty means all statuses
	SearchText      string // case-insensitive substring match
}

// List returns rows matching f, newest first (application_id descending).
// SearchText matches company, role, or notes.
func (s *Store) List(ctx context.Context, f Filter) ([]Application, error) {
	conds := make([]string, 0, 3)
	args := make([]any, 0, 4)

	if !f.IncludeArchived {
		conds = append(conds, `archived = 0`)
	}
	if f.Status != "" {
		conds = append(conds, `status = ?`)
		args = append(args, f.Status)
	}
	if text := strings.TrimSpace(f.SearchText); text != "" {
		conds = append(conds, `(LOWER(company_name) LIKE ? ESCAPE '\'
            OR LOWER(role_title) LIKE ? ESCAPE '\'
            OR LOWER(notes) LIKE ? ESCAPE '\')`)
		needle := likePattern(text)
		args = append(args, needle, needle, needle)
	}

	q := `SELECT ` + selectCols + ` FROM Applications`
	if len(conds) > 0 {
		q += ` WHERE ` + strings.Join(conds, ` AND `)
	}
	q += ` ORDER BY application_id DESC;`

	rows := make([]Application, 0, 16)
	if err := s.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, err
	}
	return rows, nil
}

// likePattern builds a %substring% pattern, escaping LIKE metacharacters
// so user text is matched literally.
func likePattern(text string) string {
	esc := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + esc.Replace(strings.ToLower(text)) + "%"
}

// StatusCount is one row of the summary view.
type StatusCount struct {
	Status Status `db:"status"`
	Count  int    `db:"n"`
}

// SummaryCounts groups the currently visible rows by status, sorted by
// status name for stable display.
func (s *Store) SummaryCounts(ctx context.Context, includeArchived bool) ([]StatusCount, error) {
	q := `SELECT status, COUNT(*) AS n FROM Applications`
	if !includeArchived {
		q += ` WHERE archived = 0`
	}
	q += ` GROUP BY status ORDER BY status;`

	counts := make([]StatusCount, 0, 8)
	if err := s.db.SelectContext(ctx, &counts, q); err != nil {
		return nil, err
	}
	return counts, nil
}
