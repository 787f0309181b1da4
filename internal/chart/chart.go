// Package chart turns a plan into the data behind its two charts: the share
// of total study time per subject and the cumulative progress per subject.
package chart

import "github.com/rohitbamniya4141/Smart-Study-Planner/internal/domain"

const (
	PieTitle   = "Time Allocation per Subject"
	LineTitle  = "Progress Over Time"
	LineXLabel = "Day"
	LineYLabel = "Cumulative Minutes"
)

// Slice is one subject's share of the total allocated time
type Slice struct {
	Subject string  `json:"subject"`
	Minutes int     `json:"minutes"`
	Percent float64 `json:"percent"`
}

// Line is one subject's cumulative minutes, one point per day
type Line struct {
	Subject string `json:"subject"`
	Points  []int  `json:"points"`
}

// Lines is the progress chart with its title and axis labels
type Lines struct {
	Title  string `json:"title"`
	XLabel string `json:"x_label"`
	YLabel string `json:"y_label"`
	Days   []int  `json:"days"`
	Lines  []Line `json:"lines"`
}

// Charts holds the data for both plan charts
type Charts struct {
	Pie      []Slice `json:"pie"`
	Progress Lines   `json:"progress"`
}

// Pie totals minutes per subject, in order of first appearance in the plan.
// Subjects that never received time are left out.
func Pie(plan *domain.Plan) []Slice {
	var slices []Slice
	index := make(map[string]int)
	grand := 0
	for _, d := range plan.Days {
		for _, a := range d.Allocations {
			i, ok := index[a.Subject]
			if !ok {
				i = len(slices)
				index[a.Subject] = i
				slices = append(slices, Slice{Subject: a.Subject})
			}
			slices[i].Minutes += a.Minutes
			grand += a.Minutes
		}
	}
	for i := range slices {
		slices[i].Percent = float64(slices[i].Minutes) * 100 / float64(grand)
	}
	return slices
}

// Progress returns one line per subject over days 1..n
func Progress(plan *domain.Plan) Lines {
	l := Lines{
		Title:  LineTitle,
		XLabel: LineXLabel,
		YLabel: LineYLabel,
		Days:   make([]int, len(plan.Days)),
	}
	for i := range plan.Days {
		l.Days[i] = i + 1
	}
	for _, s := range plan.Progress {
		l.Lines = append(l.Lines, Line{Subject: s.Subject, Points: s.Cumulative})
	}
	return l
}

// Build computes both charts for a plan
func Build(plan *domain.Plan) Charts {
	return Charts{Pie: Pie(plan), Progress: Progress(plan)}
}
