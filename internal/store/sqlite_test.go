package store

import (
	"testing"

	"github.com/google/uuid"
	"github.com/rohitbamniya4141/Smart-Study-Planner/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(uuid.NewString())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAddAndListSubjects(t *testing.T) {
	s := newTestStore(t)

	a, err := s.AddSubject(domain.Subject{Name: "Math", TotalHours: 2, Importance: 5, Difficulty: 4, DeadlineDays: 3, Notes: "ch. 1-4"})
	require.NoError(t, err)
	assert.NotEmpty(t, a.ID)
	assert.False(t, a.CreatedAt.IsZero())

	_, err = s.AddSubject(domain.Subject{Name: "Art", TotalHours: 1.5, Importance: 1, Difficulty: 2, DeadlineDays: 7})
	require.NoError(t, err)

	subjects, err := s.ListSubjects()
	require.NoError(t, err)
	require.Len(t, subjects, 2)
	assert.Equal(t, "Math", subjects[0].Name)
	assert.Equal(t, "ch. 1-4", subjects[0].Notes)
	assert.Equal(t, a.ID, subjects[0].ID)
	assert.Equal(t, "Art", subjects[1].Name)
	assert.Equal(t, 1.5, subjects[1].TotalHours)
}

func TestAddSubjectDuplicateName(t *testing.T) {
	s := newTestStore(t)

	_, err := s.AddSubject(domain.Subject{Name: "Math", TotalHours: 1, Importance: 3, Difficulty: 3, DeadlineDays: 1})
	require.NoError(t, err)

	_, err = s.AddSubject(domain.Subject{Name: "Math", TotalHours: 2, Importance: 3, Difficulty: 3, DeadlineDays: 1})
	assert.ErrorIs(t, err, ErrDuplicateSubject)
}

func TestStoresAreIsolated(t *testing.T) {
	a := newTestStore(t)
	b := newTestStore(t)

	_, err := a.AddSubject(domain.Subject{Name: "Math", TotalHours: 1, Importance: 3, Difficulty: 3, DeadlineDays: 1})
	require.NoError(t, err)

	subjects, err := b.ListSubjects()
	require.NoError(t, err)
	assert.Empty(t, subjects)
}

func TestGetPlanBeforeSave(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetPlan()
	assert.ErrorIs(t, err, ErrNoPlan)
}

func TestSaveAndGetPlan(t *testing.T) {
	s := newTestStore(t)

	plan := &domain.Plan{
		BudgetMinutes: 60,
		Days: []domain.Day{
			{Day: 1, Allocations: []domain.Allocation{{Subject: "A", Minutes: 50}, {Subject: "B", Minutes: 10}}},
			{Day: 2},
			{Day: 3, Allocations: []domain.Allocation{{Subject: "B", Minutes: 25}}},
		},
		Progress: []domain.Series{
			{Subject: "A", Cumulative: []int{50, 50, 50}},
			{Subject: "B", Cumulative: []int{10, 10, 35}},
		},
		Remaining: map[string]int{"A": 0, "B": 5},
	}
	require.NoError(t, s.SavePlan(plan))

	got, err := s.GetPlan()
	require.NoError(t, err)
	assert.Equal(t, plan.BudgetMinutes, got.BudgetMinutes)
	assert.Equal(t, plan.Days, got.Days)
	assert.Equal(t, plan.Progress, got.Progress)
	assert.Equal(t, plan.Remaining, got.Remaining)
}

func TestSavePlanReplacesPrevious(t *testing.T) {
	s := newTestStore(t)

	first := &domain.Plan{
		BudgetMinutes: 60,
		Days:          []domain.Day{{Day: 1, Allocations: []domain.Allocation{{Subject: "A", Minutes: 60}}}, {Day: 2}},
		Progress:      []domain.Series{{Subject: "A", Cumulative: []int{60, 60}}},
		Remaining:     map[string]int{"A": 0},
	}
	require.NoError(t, s.SavePlan(first))

	second := &domain.Plan{
		BudgetMinutes: 30,
		Days:          []domain.Day{{Day: 1, Allocations: []domain.Allocation{{Subject: "C", Minutes: 30}}}},
		Progress:      []domain.Series{{Subject: "C", Cumulative: []int{30}}},
		Remaining:     map[string]int{"C": 90},
	}
	require.NoError(t, s.SavePlan(second))

	got, err := s.GetPlan()
	require.NoError(t, err)
	assert.Equal(t, 30, got.BudgetMinutes)
	assert.Equal(t, second.Days, got.Days)
	assert.Equal(t, second.Remaining, got.Remaining)
}
