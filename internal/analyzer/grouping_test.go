package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xerschedule/core/internal/entity"
)

func TestGroupByBucketsTasksByActivityCode(t *testing.T) {
	schedule := entity.NewSchedule()
	schedule.AddTask(&entity.Task{ID: "A", ProjectID: "P1"})
	schedule.AddTask(&entity.Task{ID: "B", ProjectID: "P1"})
	schedule.ActivityCodes = []*entity.ActivityCode{
		{ID: "PHASE1", TypeID: "PHASE", Name: "Design"},
		{ID: "PHASE2", TypeID: "PHASE", Name: "Build"},
	}
	schedule.TaskActivityCodes = []*entity.TaskActivityCode{
		{TaskID: "A", CodeID: "PHASE1", TypeID: "PHASE"},
		{TaskID: "B", CodeID: "PHASE2", TypeID: "PHASE"},
	}

	groups := GroupBy(schedule, GroupKey{CodeTypeID: "PHASE"})
	require.Len(t, groups, 2)
	assert.Equal(t, "Design", groups[0].CodeName)
	require.Len(t, groups[0].Tasks, 1)
	assert.Equal(t, "A", groups[0].Tasks[0].ID)
}

func TestGroupByIgnoresOtherCodeTypes(t *testing.T) {
	schedule := entity.NewSchedule()
	schedule.AddTask(&entity.Task{ID: "A", ProjectID: "P1"})
	schedule.TaskActivityCodes = []*entity.TaskActivityCode{
		{TaskID: "A", CodeID: "AREA1", TypeID: "AREA"},
	}

	groups := GroupBy(schedule, GroupKey{CodeTypeID: "PHASE"})
	assert.Empty(t, groups)
}

func TestCalendarCoverageReportCountsBoundTasks(t *testing.T) {
	schedule := entity.NewSchedule()
	clndrID := "CAL1"
	schedule.AddTask(&entity.Task{ID: "A", ProjectID: "P1", CalendarID: &clndrID})
	schedule.AddTask(&entity.Task{ID: "B", ProjectID: "P1", CalendarID: &clndrID})
	schedule.AddTask(&entity.Task{ID: "C", ProjectID: "P1"})
	schedule.Calendars = []*entity.WorkCalendar{
		{ID: "CAL1", Name: "Standard", IsDefault: true},
	}

	report := CalendarCoverageReport(schedule)
	require.Len(t, report, 1)
	assert.Equal(t, 2, report[0].TaskCount)
}
