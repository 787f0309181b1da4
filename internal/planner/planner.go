package planner

import (
	"errors"
	"math"
	"time"

	"github.com/rohitbamniya4141/Smart-Study-Planner/internal/domain"
)

var (
	ErrNoSubjects    = errors.New("no subjects to plan")
	ErrInvalidBudget = errors.New("daily budget must be positive")
)

// BudgetMinutes converts daily study hours to whole minutes (truncated)
func BudgetMinutes(hoursPerDay float64) int {
	return int(hoursPerDay * 60)
}

// MaxDeadline returns the furthest deadline among subjects
func MaxDeadline(subjects []domain.Subject) int {
	max := 0
	for _, s := range subjects {
		if s.DeadlineDays > max {
			max = s.DeadlineDays
		}
	}
	return max
}

// Weight scores a subject's priority. Subjects with a looser deadline than
// the furthest one get a bonus equal to the slack.
func Weight(s domain.Subject, maxDeadline int) float64 {
	return float64(s.Importance)*2 + float64(s.Difficulty)*1.5 + float64(maxDeadline-s.DeadlineDays)
}

// Generate distributes budgetMinutes per day across subjects for days
// 1..MaxDeadline(subjects). Each day the budget is split in proportion to
// weight/days_left among subjects still before their deadline with minutes
// remaining. Truncated minutes are not redistributed, and minutes still
// remaining after a subject's deadline are left in Plan.Remaining.
func Generate(subjects []domain.Subject, budgetMinutes int) (*domain.Plan, error) {
	if len(subjects) == 0 {
		return nil, ErrNoSubjects
	}
	if budgetMinutes <= 0 {
		return nil, ErrInvalidBudget
	}

	maxDay := MaxDeadline(subjects)

	weights := make([]float64, len(subjects))
	remaining := make([]int, len(subjects))
	for i, s := range subjects {
		weights[i] = Weight(s, maxDay)
		remaining[i] = s.TotalMinutes()
	}

	plan := &domain.Plan{
		BudgetMinutes: budgetMinutes,
		Days:          make([]domain.Day, maxDay),
		Progress:      make([]domain.Series, len(subjects)),
		Remaining:     make(map[string]int, len(subjects)),
		GeneratedAt:   time.Now(),
	}
	for i, s := range subjects {
		plan.Progress[i] = domain.Series{Subject: s.Name, Cumulative: make([]int, 0, maxDay)}
	}

	adjusted := make([]float64, len(subjects))
	today := make([]int, len(subjects))

	for day := 1; day <= maxDay; day++ {
		totalWeight := 0.0
		for i, s := range subjects {
			adjusted[i] = 0
			today[i] = 0
			if s.DeadlineDays < day || remaining[i] <= 0 {
				continue
			}
			daysLeft := s.DeadlineDays - (day - 1)
			if daysLeft < 1 {
				daysLeft = 1
			}
			adjusted[i] = weights[i] / float64(daysLeft)
			totalWeight += adjusted[i]
		}

		var allocs []domain.Allocation
		for i, s := range subjects {
			if s.DeadlineDays < day || remaining[i] <= 0 {
				continue
			}
			share := 0.0
			if totalWeight != 0 {
				share = adjusted[i] / totalWeight
			}
			allocated := int(math.Floor(share * float64(budgetMinutes)))
			if allocated > remaining[i] {
				allocated = remaining[i]
			}
			if allocated > 0 {
				allocs = append(allocs, domain.Allocation{Subject: s.Name, Minutes: allocated})
				remaining[i] -= allocated
				today[i] = allocated
			}
		}

		plan.Days[day-1] = domain.Day{Day: day, Allocations: allocs}

		for i := range subjects {
			prev := 0
			if n := len(plan.Progress[i].Cumulative); n > 0 {
				prev = plan.Progress[i].Cumulative[n-1]
			}
			plan.Progress[i].Cumulative = append(plan.Progress[i].Cumulative, prev+today[i])
		}
	}

	for i, s := range subjects {
		plan.Remaining[s.Name] = remaining[i]
	}

	return plan, nil
}
