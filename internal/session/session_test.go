package session

import (
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rohitbamniya4141/Smart-Study-Planner/internal/domain"
	"github.com/rohitbamniya4141/Smart-Study-Planner/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T, m *metrics.Metrics) *Session {
	t.Helper()
	s, err := New(slog.New(slog.NewTextHandler(io.Discard, nil)), m, 0.5)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAddSubjectValidation(t *testing.T) {
	s := newTestSession(t, nil)

	valid := domain.Subject{Name: "Math", TotalHours: 2, Importance: 3, Difficulty: 3, DeadlineDays: 1}

	cases := map[string]func(*domain.Subject){
		"blank name":        func(s *domain.Subject) { s.Name = "   " },
		"negative hours":    func(s *domain.Subject) { s.TotalHours = -1 },
		"importance low":    func(s *domain.Subject) { s.Importance = 0 },
		"importance high":   func(s *domain.Subject) { s.Importance = 6 },
		"difficulty low":    func(s *domain.Subject) { s.Difficulty = 0 },
		"difficulty high":   func(s *domain.Subject) { s.Difficulty = 6 },
		"deadline too soon": func(s *domain.Subject) { s.DeadlineDays = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			sub := valid
			mutate(&sub)
			_, err := s.AddSubject(sub)
			assert.ErrorIs(t, err, ErrInvalidSubject)
		})
	}

	subjects, err := s.Subjects()
	require.NoError(t, err)
	assert.Empty(t, subjects)
}

func TestAddSubjectTrimsAndRejectsDuplicates(t *testing.T) {
	m := metrics.New()
	s := newTestSession(t, m)

	added, err := s.AddSubject(domain.Subject{Name: "  Math ", TotalHours: 2, Importance: 3, Difficulty: 3, DeadlineDays: 1})
	require.NoError(t, err)
	assert.Equal(t, "Math", added.Name)

	_, err = s.AddSubject(domain.Subject{Name: "Math", TotalHours: 1, Importance: 1, Difficulty: 1, DeadlineDays: 1})
	assert.ErrorIs(t, err, ErrDuplicateSubject)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.SubjectsAdded))
}

func TestGeneratePlanErrors(t *testing.T) {
	s := newTestSession(t, nil)

	_, err := s.GeneratePlan(3)
	assert.ErrorIs(t, err, ErrNoSubjects)

	_, err = s.AddSubject(domain.Subject{Name: "Math", TotalHours: 2, Importance: 3, Difficulty: 3, DeadlineDays: 1})
	require.NoError(t, err)

	_, err = s.GeneratePlan(0.25)
	assert.ErrorIs(t, err, ErrInvalidBudget)

	_, err = s.Plan()
	assert.ErrorIs(t, err, ErrNoPlan)
}

func TestGeneratePlanReplacesPrevious(t *testing.T) {
	m := metrics.New()
	s := newTestSession(t, m)

	_, err := s.AddSubject(domain.Subject{Name: "A", TotalHours: 2, Importance: 5, Difficulty: 5, DeadlineDays: 2})
	require.NoError(t, err)
	_, err = s.AddSubject(domain.Subject{Name: "B", TotalHours: 1, Importance: 1, Difficulty: 1, DeadlineDays: 2})
	require.NoError(t, err)

	first, err := s.GeneratePlan(1)
	require.NoError(t, err)
	assert.Equal(t, 60, first.BudgetMinutes)

	_, err = s.AddSubject(domain.Subject{Name: "C", TotalHours: 1, Importance: 3, Difficulty: 3, DeadlineDays: 4})
	require.NoError(t, err)

	second, err := s.GeneratePlan(3)
	require.NoError(t, err)
	assert.Len(t, second.Days, 4)

	got, err := s.Plan()
	require.NoError(t, err)
	assert.Equal(t, 180, got.BudgetMinutes)
	assert.Equal(t, second.Days, got.Days)
	assert.Equal(t, second.Progress, got.Progress)
	assert.Equal(t, second.Remaining, got.Remaining)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.PlansGenerated))
}

func TestAddSubjectRejectsExtremeValues(t *testing.T) {
	s := newTestSession(t, nil)

	valid := domain.Subject{Name: "Math", TotalHours: 2, Importance: 3, Difficulty: 3, DeadlineDays: 2}

	cases := map[string]func(*domain.Subject){
		"huge hours":     func(s *domain.Subject) { s.TotalHours = 1e300 },
		"infinite hours": func(s *domain.Subject) { s.TotalHours = math.Inf(1) },
		"NaN hours":      func(s *domain.Subject) { s.TotalHours = math.NaN() },
		"hours over cap": func(s *domain.Subject) { s.TotalHours = MaxTotalHours + 1 },
		"huge deadline":  func(s *domain.Subject) { s.DeadlineDays = 1 << 50 },
		"deadline cap":   func(s *domain.Subject) { s.DeadlineDays = MaxDeadlineDays + 1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			sub := valid
			mutate(&sub)
			_, err := s.AddSubject(sub)
			assert.ErrorIs(t, err, ErrInvalidSubject)
		})
	}

	_, err := s.GeneratePlan(3)
	assert.ErrorIs(t, err, ErrNoSubjects)
}

func TestGeneratePlanAtLimits(t *testing.T) {
	s := newTestSession(t, nil)

	_, err := s.AddSubject(domain.Subject{Name: "Thesis", TotalHours: MaxTotalHours, Importance: 5, Difficulty: 5, DeadlineDays: MaxDeadlineDays})
	require.NoError(t, err)

	plan, err := s.GeneratePlan(3)
	require.NoError(t, err)
	require.Len(t, plan.Days, MaxDeadlineDays)
	for _, d := range plan.Days {
		require.Len(t, d.Allocations, 1)
		assert.Equal(t, 180, d.Allocations[0].Minutes)
	}
	assert.Greater(t, plan.UnscheduledMinutes(), 0)
}

func TestGeneratePlanRejectsNonFiniteBudget(t *testing.T) {
	s := newTestSession(t, nil)
	_, err := s.AddSubject(domain.Subject{Name: "Math", TotalHours: 2, Importance: 3, Difficulty: 3, DeadlineDays: 2})
	require.NoError(t, err)

	for _, hours := range []float64{math.NaN(), math.Inf(1), 25} {
		_, err := s.GeneratePlan(hours)
		assert.ErrorIs(t, err, ErrInvalidBudget, "hours %v", hours)
	}
}
