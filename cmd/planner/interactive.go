package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rohitbamniya4141/Smart-Study-Planner/internal/chart"
	"github.com/rohitbamniya4141/Smart-Study-Planner/internal/config"
	"github.com/rohitbamniya4141/Smart-Study-Planner/internal/domain"
	"github.com/rohitbamniya4141/Smart-Study-Planner/internal/export"
	"github.com/rohitbamniya4141/Smart-Study-Planner/internal/render"
	"github.com/rohitbamniya4141/Smart-Study-Planner/internal/session"
)

const helpText = `Commands:
  add                      add a subject
  list                     show current subjects
  generate [hours]         generate the plan (hours per day)
  schedule                 show the daily schedule
  charts                   show time allocation and progress charts
  export csv|xlsx [path]   export the plan
  help                     show this help
  quit                     leave (the session is discarded)`

// repl reads one command per line and dispatches it to a handler that
// updates the session and prints the result.
type repl struct {
	session *session.Session
	in      *bufio.Scanner
	out     io.Writer
	cfg     config.Config
}

func newREPL(s *session.Session, in io.Reader, out io.Writer, cfg config.Config) *repl {
	return &repl{session: s, in: bufio.NewScanner(in), out: out, cfg: cfg}
}

func (r *repl) Run() error {
	fmt.Fprintln(r.out, "Smart Study Planner. Type 'help' for commands.")
	for {
		fmt.Fprint(r.out, "> ")
		if !r.in.Scan() {
			fmt.Fprintln(r.out)
			return r.in.Err()
		}

		fields := strings.Fields(r.in.Text())
		if len(fields) == 0 {
			continue
		}

		var err error
		switch cmd, args := fields[0], fields[1:]; cmd {
		case "add":
			err = r.add()
		case "list":
			err = r.list()
		case "generate":
			err = r.generate(args)
		case "schedule":
			err = r.schedule()
		case "charts":
			err = r.charts()
		case "export":
			err = r.export(args)
		case "help":
			fmt.Fprintln(r.out, helpText)
		case "quit", "exit":
			return nil
		default:
			err = fmt.Errorf("unknown command %q", cmd)
		}
		if err != nil {
			fmt.Fprintln(r.out, "error:", err)
		}
	}
}

func (r *repl) add() error {
	var s domain.Subject
	var err error

	s.Name = r.ask("Subject Name", "")
	if s.TotalHours, err = strconv.ParseFloat(r.ask("Total Study Hours", "0"), 64); err != nil {
		return fmt.Errorf("total hours: %w", err)
	}
	if s.Importance, err = strconv.Atoi(r.ask("Importance (1-5)", strconv.Itoa(domain.DefaultImportance))); err != nil {
		return fmt.Errorf("importance: %w", err)
	}
	if s.Difficulty, err = strconv.Atoi(r.ask("Difficulty (1-5)", strconv.Itoa(domain.DefaultDifficulty))); err != nil {
		return fmt.Errorf("difficulty: %w", err)
	}
	if s.DeadlineDays, err = strconv.Atoi(r.ask("Deadline (in Days)", strconv.Itoa(domain.DefaultDeadlineDays))); err != nil {
		return fmt.Errorf("deadline: %w", err)
	}
	s.Notes = r.ask("Additional Notes", "")

	added, err := r.session.AddSubject(s)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "Added subject: %s\n", added.Name)
	return nil
}

func (r *repl) list() error {
	subjects, err := r.session.Subjects()
	if err != nil {
		return err
	}
	return render.Subjects(r.out, subjects)
}

func (r *repl) generate(args []string) error {
	hours := r.cfg.Planner.DefaultHoursPerDay
	if len(args) > 0 {
		h, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("hours per day: %w", err)
		}
		hours = h
	}

	plan, err := r.session.GeneratePlan(hours)
	if err != nil {
		return err
	}
	fmt.Fprintln(r.out, "Study plan generated successfully!")
	return render.Schedule(r.out, plan)
}

func (r *repl) schedule() error {
	plan, err := r.session.Plan()
	if err != nil {
		return err
	}
	return render.Schedule(r.out, plan)
}

func (r *repl) charts() error {
	plan, err := r.session.Plan()
	if err != nil {
		return err
	}
	return render.Charts(r.out, chart.Build(plan))
}

func (r *repl) export(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: export csv|xlsx [path]")
	}

	var path string
	var write func(io.Writer, *domain.Plan) error
	switch args[0] {
	case "csv":
		path, write = r.cfg.Export.CSVFileName, export.WriteCSV
	case "xlsx":
		path, write = r.cfg.Export.XLSXFileName, export.WriteXLSX
	default:
		return fmt.Errorf("unknown export format %q", args[0])
	}
	if len(args) > 1 {
		path = args[1]
	}

	plan, err := r.session.Plan()
	if err != nil {
		return err
	}
	if err := writeFile(path, plan, write); err != nil {
		return err
	}
	fmt.Fprintf(r.out, "Exported %s\n", path)
	return nil
}

// ask prompts for one value; an empty answer or end of input yields def
func (r *repl) ask(label, def string) string {
	if def != "" {
		fmt.Fprintf(r.out, "%s [%s]: ", label, def)
	} else {
		fmt.Fprintf(r.out, "%s: ", label)
	}
	if !r.in.Scan() {
		return def
	}
	if v := strings.TrimSpace(r.in.Text()); v != "" {
		return v
	}
	return def
}
