package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xerschedule/core/internal/entity"
)

func checkByName(t *testing.T, report DCMAReport, name string) CheckResult {
	t.Helper()
	for _, c := range report.Checks {
		if c.Name == name {
			return c
		}
	}
	require.Fail(t, "check not found", name)
	return CheckResult{}
}

func TestDCMAReportsElevenChecks(t *testing.T) {
	schedule := entity.NewSchedule()
	report := DCMA(schedule)
	assert.Len(t, report.Checks, 11)
}

func TestDCMALogicCheckFailsBelowThreshold(t *testing.T) {
	schedule := entity.NewSchedule()
	schedule.AddTask(&entity.Task{ID: "A", ProjectID: "P1"})
	schedule.AddTask(&entity.Task{ID: "B", ProjectID: "P1"})
	// Only one relationship across two tasks: ratio 0.5, below the 1.5 threshold.
	schedule.Relationships = []*entity.Relationship{
		{PredecessorTaskID: "A", SuccessorTaskID: "B", Type: entity.FinishToStart},
	}

	report := DCMA(schedule)
	logic := checkByName(t, report, "Logic")
	assert.False(t, logic.Passed)
	assert.Equal(t, 0.5, logic.ActualValue)
}

func TestDCMANegativeFloatCheckFailsWhenAnyTaskNegative(t *testing.T) {
	schedule := entity.NewSchedule()
	neg := -4.0
	schedule.AddTask(&entity.Task{ID: "A", ProjectID: "P1", TotalFloatHours: &neg})

	report := DCMA(schedule)
	negFloat := checkByName(t, report, "Negative Float")
	assert.False(t, negFloat.Passed)
}

func TestDCMAHardConstraintsAlwaysNotApplicable(t *testing.T) {
	schedule := entity.NewSchedule()
	report := DCMA(schedule)
	hc := checkByName(t, report, "Hard Constraints")
	assert.True(t, hc.NotApplicable)
	assert.True(t, hc.Passed)
}

func TestDCMAOverallScoreIsPassedFraction(t *testing.T) {
	schedule := entity.NewSchedule()
	report := DCMA(schedule)
	passed := 0
	for _, c := range report.Checks {
		if c.Passed {
			passed++
		}
	}
	expected := round2(float64(passed) / float64(len(report.Checks)) * 100)
	assert.Equal(t, expected, report.OverallScore)
}
