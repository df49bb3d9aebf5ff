package analyzer

import "github.com/xerschedule/core/internal/entity"

// GroupKey is the tagged-variant grouping key used by GroupBy: equality
// and hashing consider only the activity-code-type id, per the design
// note "polymorphism over grouping" — a sum type with one variant
// today, not an inheritance hierarchy.
type GroupKey struct {
	CodeTypeID entity.ActivityCodeTypeID
}

// CodeGroup is one ActivityCode value's bucket of tasks under a given
// code type, with its own mini critical-path/float summary.
type CodeGroup struct {
	CodeID              entity.ActivityCodeID
	CodeName            string
	Tasks               []*entity.Task
	CriticalTaskCount    int
	AverageFloatHours    float64
}

// GroupBy buckets every task carrying a code of the given type (via
// TaskActivityCode) into one CodeGroup per code value, with a mini
// critical-path/float summary computed within each bucket.
func GroupBy(schedule *entity.Schedule, key GroupKey) []CodeGroup {
	codeNames := make(map[entity.ActivityCodeID]string)
	for _, c := range schedule.ActivityCodes {
		if c.TypeID == key.CodeTypeID {
			codeNames[c.ID] = c.Name
		}
	}

	taskToCode := make(map[entity.TaskID]entity.ActivityCodeID)
	for _, tac := range schedule.TaskActivityCodes {
		if tac.TypeID == key.CodeTypeID {
			taskToCode[tac.TaskID] = tac.CodeID
		}
	}

	byCode := make(map[entity.ActivityCodeID]*CodeGroup)
	var order []entity.ActivityCodeID
	for _, t := range schedule.Tasks {
		codeID, ok := taskToCode[t.ID]
		if !ok {
			continue
		}
		group, exists := byCode[codeID]
		if !exists {
			group = &CodeGroup{CodeID: codeID, CodeName: codeNames[codeID]}
			byCode[codeID] = group
			order = append(order, codeID)
		}
		group.Tasks = append(group.Tasks, t)
		if t.IsCritical() {
			group.CriticalTaskCount++
		}
	}

	out := make([]CodeGroup, 0, len(order))
	for _, id := range order {
		g := byCode[id]
		var sum float64
		for _, t := range g.Tasks {
			if t.TotalFloatHours != nil {
				sum += *t.TotalFloatHours
			}
		}
		if len(g.Tasks) > 0 {
			g.AverageFloatHours = sum / float64(len(g.Tasks))
		}
		out = append(out, *g)
	}
	return out
}

// CalendarCoverage is one WorkCalendar's usage count, informational
// only since CPM never consults calendars.
type CalendarCoverage struct {
	CalendarID entity.CalendarID
	Name        string
	IsDefault   bool
	TaskCount   int
}

// CalendarCoverageReport returns, per WorkCalendar, how many tasks
// nominally bind to it.
func CalendarCoverageReport(schedule *entity.Schedule) []CalendarCoverage {
	counts := make(map[entity.CalendarID]int)
	for _, t := range schedule.Tasks {
		if t.CalendarID != nil {
			counts[*t.CalendarID]++
		}
	}
	out := make([]CalendarCoverage, 0, len(schedule.Calendars))
	for _, c := range schedule.Calendars {
		out = append(out, CalendarCoverage{
			CalendarID: c.ID,
			Name:        c.Name,
			IsDefault:   c.IsDefault,
			TaskCount:   counts[c.ID],
		})
	}
	return out
}
