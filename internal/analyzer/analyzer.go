// Package analyzer computes schedule-quality views over a CPM-populated
// entity.Schedule: critical-path summary, float-bucket distribution,
// logic-completeness gaps, resource loading, and the DCMA-style
// 11-point quality panel. Nothing here mutates the Schedule.
package analyzer

import (
	"math"
	"sort"
	"time"

	"github.com/xerschedule/core/internal/entity"
)

// farFutureSentinel stands in for a nil targetStart when sorting the
// critical path ascending — such a task sorts last.
var farFutureSentinel = time.Unix(1<<62, 0)

// CriticalPathReport is the analyzer's critical-path summary.
type CriticalPathReport struct {
	Tasks               []*entity.Task
	TotalDurationDays int
}

// CriticalPath returns every critical task, sorted by TargetStart
// ascending (nil sorts last), along with the sum of their DurationDays.
func CriticalPath(schedule *entity.Schedule) CriticalPathReport {
	var tasks []*entity.Task
	for _, t := range schedule.Tasks {
		if t.IsCritical() {
			tasks = append(tasks, t)
		}
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		return targetStartOrFar(tasks[i]).Before(targetStartOrFar(tasks[j]))
	})

	total := 0
	for _, t := range tasks {
		total += t.DurationDays()
	}
	return CriticalPathReport{Tasks: tasks, TotalDurationDays: total}
}

func targetStartOrFar(t *entity.Task) time.Time {
	if t.TargetStart == nil {
		return farFutureSentinel
	}
	return *t.TargetStart
}

// FloatBuckets is the float-distribution report, parametrized by a
// threshold in days (default DefaultFloatThresholdDays).
type FloatBuckets struct {
	HighFloat     []*entity.Task
	NegativeFloat []*entity.Task
	NearCritical  []*entity.Task
	AverageFloatHours float64
}

// DefaultFloatThresholdDays is the default float-bucket threshold (5 days).
const DefaultFloatThresholdDays = 5

// Float buckets tasks by floatDays/totalFloatHours against thresholdDays.
func Float(schedule *entity.Schedule, thresholdDays int) FloatBuckets {
	var report FloatBuckets
	var sum float64
	for _, t := range schedule.Tasks {
		if t.TotalFloatHours != nil {
			sum += *t.TotalFloatHours
			if *t.TotalFloatHours < 0 {
				report.NegativeFloat = append(report.NegativeFloat, t)
			}
		}
		floatDays := t.FloatDays()
		switch {
		case floatDays > thresholdDays:
			report.HighFloat = append(report.HighFloat, t)
		case floatDays > 0 && floatDays <= thresholdDays:
			report.NearCritical = append(report.NearCritical, t)
		}
	}
	if len(schedule.Tasks) > 0 {
		report.AverageFloatHours = sum / float64(len(schedule.Tasks))
	}
	return report
}

// LogicCheckReport is the logic-completeness gap report.
type LogicCheckReport struct {
	OpenStarts             []*entity.Task
	OpenEnds                []*entity.Task
	DanglingRelationships []*entity.Relationship
}

// LogicCheck finds tasks with no incoming/outgoing edges (excluding
// milestones of the matching polarity) and edges naming unknown tasks.
func LogicCheck(schedule *entity.Schedule) LogicCheckReport {
	graph := schedule.BuildGraph()

	var report LogicCheckReport
	for _, t := range schedule.Tasks {
		if t.Type != entity.StartMilestone && len(graph.Predecessors[t.ID]) == 0 {
			report.OpenStarts = append(report.OpenStarts, t)
		}
		if t.Type != entity.FinishMilestone && len(graph.Successors[t.ID]) == 0 {
			report.OpenEnds = append(report.OpenEnds, t)
		}
	}
	for _, rel := range schedule.Relationships {
		_, succOK := schedule.TaskByID(rel.SuccessorTaskID)
		_, predOK := schedule.TaskByID(rel.PredecessorTaskID)
		if !succOK || !predOK {
			report.DanglingRelationships = append(report.DanglingRelationships, rel)
		}
	}
	return report
}

// ResourceLoad is one resource's rollup across its assignments.
type ResourceLoad struct {
	ResourceID       entity.ResourceID
	TotalQuantity    float64
	AssignmentCount  int
	OverAllocated    bool
}

// overAllocatedThreshold is the heuristic assignment-count cutoff.
const overAllocatedThreshold = 10

// ResourceLoading sums targetQuantity and counts assignments per resource.
func ResourceLoading(schedule *entity.Schedule) []ResourceLoad {
	byResource := make(map[entity.ResourceID]*ResourceLoad)
	var order []entity.ResourceID
	for _, a := range schedule.Assignments {
		load, ok := byResource[a.ResourceID]
		if !ok {
			load = &ResourceLoad{ResourceID: a.ResourceID}
			byResource[a.ResourceID] = load
			order = append(order, a.ResourceID)
		}
		load.TotalQuantity += a.TargetQuantity
		load.AssignmentCount++
	}
	out := make([]ResourceLoad, 0, len(order))
	for _, id := range order {
		load := byResource[id]
		load.OverAllocated = load.AssignmentCount > overAllocatedThreshold
		out = append(out, *load)
	}
	return out
}

func ratioPercent(count, total int) float64 {
	denom := total
	if denom < 1 {
		denom = 1
	}
	return float64(count) / float64(denom) * 100
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
