package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xerschedule/core/internal/cpm"
	"github.com/xerschedule/core/internal/entity"
)

func floatTask(id entity.TaskID, taskType entity.TaskType, hours float64) *entity.Task {
	return &entity.Task{ID: id, ProjectID: "P1", Type: taskType, TargetDurationHours: hours}
}

func TestCriticalPathSortsAscendingAndSumsDuration(t *testing.T) {
	schedule := entity.NewSchedule()
	a := floatTask("A", entity.TaskDependent, 8)
	b := floatTask("B", entity.TaskDependent, 40)
	schedule.AddTask(a)
	schedule.AddTask(b)
	schedule.Relationships = []*entity.Relationship{
		{PredecessorTaskID: "A", SuccessorTaskID: "B", Type: entity.FinishToStart},
	}

	cpm.Run(schedule)

	report := CriticalPath(schedule)
	require.Len(t, report.Tasks, 2)
	assert.Equal(t, "A", report.Tasks[0].ID)
	assert.Equal(t, "B", report.Tasks[1].ID)
	assert.Equal(t, 1+5, report.TotalDurationDays) // 8h=1day, 40h=5days
}

func TestFloatBucketsClassifyByThreshold(t *testing.T) {
	schedule := entity.NewSchedule()
	a := floatTask("A", entity.TaskDependent, 8)
	b := floatTask("B", entity.TaskDependent, 8)
	c := floatTask("C", entity.TaskDependent, 100)
	schedule.AddTask(a)
	schedule.AddTask(b)
	schedule.AddTask(c)
	// A and C both feed B; C is much longer so A gets high float, B/C critical.
	schedule.Relationships = []*entity.Relationship{
		{PredecessorTaskID: "A", SuccessorTaskID: "B", Type: entity.FinishToStart},
		{PredecessorTaskID: "C", SuccessorTaskID: "B", Type: entity.FinishToStart},
	}

	cpm.Run(schedule)

	buckets := Float(schedule, DefaultFloatThresholdDays)
	assert.Contains(t, buckets.HighFloat, a)
	assert.NotContains(t, buckets.NegativeFloat, a)
}

func TestLogicCheckFindsOpenStartsAndEndsExcludingMilestones(t *testing.T) {
	schedule := entity.NewSchedule()
	start := floatTask("S", entity.StartMilestone, 0)
	mid := floatTask("M", entity.TaskDependent, 8)
	end := floatTask("E", entity.FinishMilestone, 0)
	schedule.AddTask(start)
	schedule.AddTask(mid)
	schedule.AddTask(end)
	// mid has no predecessor and no successor declared -> open start/end,
	// but start/end milestones are excluded from that classification.
	schedule.Relationships = nil

	report := LogicCheck(schedule)
	var openStartIDs, openEndIDs []string
	for _, t := range report.OpenStarts {
		openStartIDs = append(openStartIDs, t.ID)
	}
	for _, t := range report.OpenEnds {
		openEndIDs = append(openEndIDs, t.ID)
	}

	assert.Contains(t, openStartIDs, "M")
	assert.NotContains(t, openStartIDs, "S")
	assert.Contains(t, openEndIDs, "M")
	assert.NotContains(t, openEndIDs, "E")
}

func TestLogicCheckFlagsDanglingRelationship(t *testing.T) {
	schedule := entity.NewSchedule()
	a := floatTask("A", entity.TaskDependent, 8)
	schedule.AddTask(a)
	schedule.Relationships = []*entity.Relationship{
		{PredecessorTaskID: "A", SuccessorTaskID: "MISSING", Type: entity.FinishToStart},
	}

	report := LogicCheck(schedule)
	require.Len(t, report.DanglingRelationships, 1)
	assert.Equal(t, "MISSING", report.DanglingRelationships[0].SuccessorTaskID)
}

func TestResourceLoadingSumsQuantityPerResource(t *testing.T) {
	schedule := entity.NewSchedule()
	schedule.Assignments = []*entity.ResourceAssignment{
		{TaskID: "A", ResourceID: "R1", TargetQuantity: 10},
		{TaskID: "B", ResourceID: "R1", TargetQuantity: 5},
		{TaskID: "C", ResourceID: "R2", TargetQuantity: 3},
	}

	loads := ResourceLoading(schedule)
	require.Len(t, loads, 2)
	assert.Equal(t, "R1", loads[0].ResourceID)
	assert.Equal(t, 15.0, loads[0].TotalQuantity)
	assert.Equal(t, 2, loads[0].AssignmentCount)
	assert.False(t, loads[0].OverAllocated)
}
