package chart

import (
	"testing"

	"github.com/rohitbamniya4141/Smart-Study-Planner/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePlan() *domain.Plan {
	return &domain.Plan{
		Days: []domain.Day{
			{Day: 1, Allocations: []domain.Allocation{{Subject: "B", Minutes: 30}, {Subject: "A", Minutes: 10}}},
			{Day: 2},
			{Day: 3, Allocations: []domain.Allocation{{Subject: "A", Minutes: 40}}},
		},
		Progress: []domain.Series{
			{Subject: "A", Cumulative: []int{10, 10, 50}},
			{Subject: "B", Cumulative: []int{30, 30, 30}},
			{Subject: "C", Cumulative: []int{0, 0, 0}},
		},
	}
}

func TestPie(t *testing.T) {
	slices := Pie(samplePlan())
	require.Len(t, slices, 2)

	assert.Equal(t, "B", slices[0].Subject)
	assert.Equal(t, 30, slices[0].Minutes)
	assert.InDelta(t, 37.5, slices[0].Percent, 1e-9)

	assert.Equal(t, "A", slices[1].Subject)
	assert.Equal(t, 50, slices[1].Minutes)
	assert.InDelta(t, 62.5, slices[1].Percent, 1e-9)
}

func TestPieEmptyPlan(t *testing.T) {
	assert.Empty(t, Pie(&domain.Plan{Days: []domain.Day{{Day: 1}}}))
}

func TestProgress(t *testing.T) {
	l := Progress(samplePlan())

	assert.Equal(t, []int{1, 2, 3}, l.Days)
	assert.Equal(t, LineYLabel, l.YLabel)
	require.Len(t, l.Lines, 3)
	assert.Equal(t, "C", l.Lines[2].Subject)
	assert.Equal(t, []int{10, 10, 50}, l.Lines[0].Points)
}
