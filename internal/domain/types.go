package domain

import "time"

// Subject represents a course or topic to study
type Subject struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	TotalHours   float64   `json:"total_hours"`
	Importance   int       `json:"importance"`
	Difficulty   int       `json:"difficulty"`
	DeadlineDays int       `json:"deadline_days"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// TotalMinutes returns the study need in whole minutes (truncated)
func (s Subject) TotalMinutes() int {
	return int(s.TotalHours * 60)
}

// Allocation is a block of minutes given to one subject on one day
type Allocation struct {
	Subject string `json:"subject"`
	Minutes int    `json:"minutes"`
}

// Day holds the allocations of a single plan day
type Day struct {
	Day         int          `json:"day"`
	Allocations []Allocation `json:"allocations"`
}

// Label returns the display name of the day, e.g. "Day 3"
func (d Day) Label() string {
	return DayLabel(d.Day)
}

// Series is the cumulative allocated minutes of a subject, one entry per day
type Series struct {
	Subject    string `json:"subject"`
	Cumulative []int  `json:"cumulative"`
}

// Plan is the result of one plan generation
type Plan struct {
	BudgetMinutes int            `json:"budget_minutes"`
	Days          []Day          `json:"days"`
	Progress      []Series       `json:"progress"`
	Remaining     map[string]int `json:"remaining"`
	GeneratedAt   time.Time      `json:"generated_at"`
}

// Allocations returns the number of (day, subject) allocations in the plan
func (p *Plan) Allocations() int {
	n := 0
	for _, d := range p.Days {
		n += len(d.Allocations)
	}
	return n
}

// AllocatedMinutes returns the minutes allocated across all days
func (p *Plan) AllocatedMinutes() int {
	total := 0
	for _, d := range p.Days {
		for _, a := range d.Allocations {
			total += a.Minutes
		}
	}
	return total
}

// UnscheduledMinutes returns the minutes left over once the plan ends
func (p *Plan) UnscheduledMinutes() int {
	total := 0
	for _, m := range p.Remaining {
		total += m
	}
	return total
}
