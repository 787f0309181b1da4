package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/rohitbamniya4141/Smart-Study-Planner/internal/chart"
	"github.com/rohitbamniya4141/Smart-Study-Planner/internal/domain"
)

const barWidth = 40

// Subjects writes the subject list as an aligned table
func Subjects(w io.Writer, subjects []domain.Subject) error {
	if len(subjects) == 0 {
		_, err := fmt.Fprintln(w, "No subjects yet.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "SUBJECT\tHOURS\tIMPORTANCE\tDIFFICULTY\tDEADLINE\tNOTES"); err != nil {
		return err
	}
	for _, s := range subjects {
		if _, err := fmt.Fprintf(tw, "%s\t%g\t%d\t%d\t%d\t%s\n",
			s.Name, s.TotalHours, s.Importance, s.Difficulty, s.DeadlineDays, oneLine(s.Notes)); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// Schedule writes each day that has allocations followed by its entries
func Schedule(w io.Writer, plan *domain.Plan) error {
	for _, d := range plan.Days {
		if len(d.Allocations) == 0 {
			continue
		}
		if _, err := fmt.Fprintln(w, d.Label()); err != nil {
			return err
		}
		for _, a := range d.Allocations {
			if _, err := fmt.Fprintf(w, "- %s: %s\n", a.Subject, domain.FormatMinutes(a.Minutes)); err != nil {
				return err
			}
		}
	}
	return nil
}

// Charts writes the pie chart as percentage bars and the progress chart as
// a day by subject table of cumulative minutes.
func Charts(w io.Writer, c chart.Charts) error {
	if _, err := fmt.Fprintln(w, chart.PieTitle); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, s := range c.Pie {
		n := int(s.Percent * barWidth / 100)
		if _, err := fmt.Fprintf(tw, "%s\t%.1f%%\t%s\n", s.Subject, s.Percent, strings.Repeat("#", n)); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "\n%s (%s)\n", c.Progress.Title, c.Progress.YLabel); err != nil {
		return err
	}
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	header := []string{c.Progress.XLabel}
	for _, l := range c.Progress.Lines {
		header = append(header, l.Subject)
	}
	if _, err := fmt.Fprintln(tw, strings.Join(header, "\t")+"\t"); err != nil {
		return err
	}
	for i, day := range c.Progress.Days {
		row := []string{fmt.Sprint(day)}
		for _, l := range c.Progress.Lines {
			row = append(row, fmt.Sprint(l.Points[i]))
		}
		if _, err := fmt.Fprintln(tw, strings.Join(row, "\t")+"\t"); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
