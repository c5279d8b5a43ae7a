// internal/shell/shell.go
//
// Apptrack – interactive terminal front end.
//
// Context
// -------
// The shell is pure presentation: it reads a command line, calls the
// Record Store or the due classifier, and renders whatever comes back.
// It holds no authoritative rows — after every mutating call it re-queries
// List() and redraws the table, so a stale local copy can never be shown.
//
// One form routine serves both add and edit, driven by a small intent
// value; the edit path pre-populates each prompt from the stored row and
// keeps the old value when the user just presses enter.
//
// Every failure is per-action: validation and not-found errors print a
// message and drop back to the prompt.  Nothing here terminates the
// process.
//
// Notes
// -----
// • Oxford commas, two spaces after periods.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"go.uber.org/zap"

	"github.com/yanizio/apptrack/internal/due"
	"github.com/yanizio/apptrack/internal/record"
)

const prompt = "apptrack> "

// Shell wires user input to the Record Store.
type Shell struct {
	store *record.Store
	log   *zap.SugaredLogger
	in    *bufio.Scanner
	out   io.Writer
	now   func() time.Time // injectable for tests
}

// New builds a Shell reading commands from in and rendering to out.
func New(store *record.Store, log *zap.SugaredLogger, in io.Reader, out io.Writer) *Shell {
	return &Shell{
		store: store,
		log:   log,
		in:    bufio.NewScanner(in),
		out:   out,
		now:   time.Now,
	}
}

// Run shows the current table and then loops until quit or EOF.  Only a
// broken store on the very first listing is fatal; every later error is
// reported and swallowed.
func (sh *Shell) Run(ctx context.Context) error {
	fmt.Fprintln(sh.out, "apptrack — application tracker.  Type 'help' for commands.")
	if err := sh.renderDefault(ctx); err != nil {
		return err
	}

	for {
		fmt.Fprint(sh.out, prompt)
		if !sh.in.Scan() {
			fmt.Fprintln(sh.out)
			return sh.in.Err()
		}
		line := strings.TrimSpace(sh.in.Text())
		if line == "" {
			continue
		}
		if quit := sh.dispatch(ctx, line); quit {
			return nil
		}
	}
}

// dispatch runs one command line.  It returns true when the user quits.
func (sh *Shell) dispatch(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	var err error
	switch cmd {
	case "help":
		sh.printHelp()
	case "add":
		err = sh.runForm(ctx, formIntent{})
	case "edit":
		err = sh.withID(ctx, args, func(ctx context.Context, id int64) error {
			return sh.runForm(ctx, formIntent{edit: true, id: id})
		})
	case "archive":
		err = sh.withID(ctx, args, sh.store.Archive)
	case "delete":
		err = sh.withID(ctx, args, sh.store.Delete)
	case "list":
		err = sh.cmdList(ctx, line, args)
	case "due":
		err = sh.cmdDue(ctx)
	case "summary":
		err = sh.cmdSummary(ctx, args)
	case "quit", "exit":
		return true
	default:
		fmt.Fprintf(sh.out, "unknown command %q, type 'help'\n", cmd)
		return false
	}

	switch {
	case err == nil:
		// Mutating commands re-render inside their handlers.
	case errors.Is(err, record.ErrNotFound):
		fmt.Fprintln(sh.out, "no application with that id — it may have been deleted")
	default:
		var verr *record.ValidationError
		if errors.As(err, &verr) {
			fmt.Fprintln(sh.out, verr.Error())
			break
		}
		sh.log.Errorw("command failed", "cmd", cmd, "err", err)
		fmt.Fprintf(sh.out, "error: %v\n", err)
	}
	return false
}

func (sh *Shell) printHelp() {
	fmt.Fprint(sh.out, `commands:
  add                         create an application (interactive form)
  edit <id>                   edit an application (enter keeps the old value)
  archive <id>                archive an application (one-way)
  delete <id>                 permanently delete an application
  list [all] [status=<s>] [search=<text>]
                              list applications, newest first
  due                         show follow-ups that are due or overdue
  summary [all]               count applications per status
  quit                        exit
`)
}

// withID parses the single id argument and applies fn to it, then redraws
// the table on success.
func (sh *Shell) withID(ctx context.Context, args []string, fn func(context.Context, int64) error) error {
	if len(args) != 1 {
		fmt.Fprintln(sh.out, "usage: <command> <id>")
		return nil
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintf(sh.out, "%q is not an id\n", args[0])
		return nil
	}
	if err := fn(ctx, id); err != nil {
		return err
	}
	return sh.renderDefault(ctx)
}

//
// Add / edit form
//

// formIntent tags one form submission as a create or as an edit of id.
type formIntent struct {
	edit bool
	id   int64
}

// runForm gathers the five input fields and submits them to Create or
// Update depending on the intent.  Validation failures are printed and the
// form is abandoned; the user re-runs the command to retry, mirroring the
// one-shot dialog of a desktop form.
func (sh *Shell) runForm(ctx context.Context, intent formIntent) error {
	var current record.Input
	if intent.edit {
		rec, err := sh.store.GetByID(ctx, intent.id)
		if err != nil {
			return err
		}
		current = record.Input{
			Company:     rec.Company,
			Role:        rec.Role,
			DateApplied: rec.DateApplied,
			Status:      rec.Status,
			Notes:       rec.Notes,
		}
	} else {
		current.Status = record.StatusApplied
	}

	in := record.Input{
		Company:     sh.promptField("Company name", current.Company),
		Role:        sh.promptField("Role title", current.Role),
		DateApplied: sh.promptField("Date applied (YYYY-MM-DD)", current.DateApplied),
		Status:      record.Status(sh.promptField(statusLabel(), string(current.Status))),
		Notes:       sh.promptField("Notes", current.Notes),
	}

	if intent.edit {
		if err := sh.store.Update(ctx, intent.id, in); err != nil {
			return err
		}
		fmt.Fprintf(sh.out, "updated #%d\n", intent.id)
	} else {
		id, err := sh.store.Create(ctx, in)
		if err != nil {
			return err
		}
		fmt.Fprintf(sh.out, "created #%d\n", id)
	}
	return sh.renderDefault(ctx)
}

// promptField asks for one value; an empty answer keeps def.
func (sh *Shell) promptField(label, def string) string {
	if def != "" {
		fmt.Fprintf(sh.out, "%s [%s]: ", label, def)
	} else {
		fmt.Fprintf(sh.out, "%s: ", label)
	}
	if !sh.in.Scan() {
		return def
	}
	if v := strings.TrimSpace(sh.in.Text()); v != "" {
		return v
	}
	return def
}

func statusLabel() string {
	names := make([]string, 0, 7)
	for _, s := range record.Statuses() {
		names = append(names, string(s))
	}
	return "Status (" + strings.Join(names, " | ") + ")"
}

//
// Listing commands
//

// cmdList parses `list [all] [status=<s>] [search=<text>]`.  The search
// text runs to the end of the line so multi-word needles work.
func (sh *Shell) cmdList(ctx context.Context, line string, args []string) error {
	var f record.Filter
	for _, a := range args {
		switch {
		case a == "all":
			f.IncludeArchived = true
		case strings.HasPrefix(a, "status="):
			f.Status = record.Status(strings.TrimPrefix(a, "status="))
		case strings.HasPrefix(a, "search="):
			// Everything after "search=" in the raw line, spaces included.
			idx := strings.Index(line, "search=")
			f.SearchText = strings.TrimSpace(line[idx+len("search="):])
		default:
			fmt.Fprintf(sh.out, "unknown list argument %q\n", a)
			return nil
		}
		if f.SearchText != "" {
			break
		}
	}
	recs, err := sh.store.List(ctx, f)
	if err != nil {
		return err
	}
	sh.renderTable(recs)
	return nil
}

// renderDefault shows the default view: non-archived rows, newest first.
func (sh *Shell) renderDefault(ctx context.Context) error {
	recs, err := sh.store.List(ctx, record.Filter{})
	if err != nil {
		return err
	}
	sh.renderTable(recs)
	return nil
}

func (sh *Shell) renderTable(recs []record.Application) {
	w := tabwriter.NewWriter(sh.out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCOMPANY\tROLE\tAPPLIED\tSTATUS\tFOLLOW-UP\tARCHIVED")
	for _, r := range recs {
		archived := "No"
		if r.Archived {
			archived = "Yes"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.Company, r.Role, r.DateApplied, r.Status, r.FollowUpDate, archived)
	}
	w.Flush()
	fmt.Fprintf(sh.out, "Loaded %d application(s).\n", len(recs))
}

// cmdDue classifies the non-archived rows against today and renders the
// due table plus its counts.
func (sh *Shell) cmdDue(ctx context.Context) error {
	recs, err := sh.store.List(ctx, record.Filter{})
	if err != nil {
		return err
	}
	items, counts := due.Classify(sh.now(), recs)

	w := tabwriter.NewWriter(sh.out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCOMPANY\tROLE\tFOLLOW-UP\tSTATE")
	for _, it := range items {
		r := it.Record
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			r.ID, r.Company, r.Role, r.FollowUpDate, it.Label)
	}
	w.Flush()
	fmt.Fprintf(sh.out, "%d due (%d overdue, %d due today)\n",
		counts.Total, counts.Overdue, counts.DueToday)
	return nil
}

// cmdSummary prints per-status counts; `summary all` includes archived.
func (sh *Shell) cmdSummary(ctx context.Context, args []string) error {
	includeArchived := len(args) == 1 && args[0] == "all"
	counts, err := sh.store.SummaryCounts(ctx, includeArchived)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(sh.out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "STATUS\tCOUNT")
	total := 0
	for _, c := range counts {
		fmt.Fprintf(w, "%s\t%d\n", c.Status, c.Count)
		total += c.Count
	}
	w.Flush()
	fmt.Fprintf(sh.out, "%d application(s) total.\n", total)
	return nil
}
