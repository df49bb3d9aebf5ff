// Package cpm implements the Critical Path Method forward/backward pass
// over a built entity.Schedule: early/late dates and total float per
// task. The traversal is an explicit work-stack depth-first walk rather
// than native recursion, so pathological linear graphs of well over
// 100k tasks do not risk a call-stack overflow; the visited-set still
// breaks cycles exactly as a recursive walk would, so computed fields
// are unchanged from the straightforward recursive reading of the
// algorithm on any acyclic (or even cyclic) input.
package cpm

import (
	"time"

	"github.com/xerschedule/core/internal/entity"
)

const secondsPerDay = 86400
const secondsPerHour = 3600

// Run mutates every Task in schedule in place, filling EarlyStart,
// EarlyEnd, LateStart, LateEnd, TotalFloatHours, and FreeFloatHours.
// Traversal order is deterministic given the Tasks slice's declaration
// order, so repeated runs on the same Schedule value are idempotent.
func Run(schedule *entity.Schedule) {
	if len(schedule.Tasks) == 0 {
		return
	}
	graph := schedule.BuildGraph()

	early := make(map[entity.TaskID]*span, len(schedule.Tasks))
	forwardPass(schedule, graph, early)

	projectEnd := maxEarlyEnd(schedule, early)

	late := make(map[entity.TaskID]*span, len(schedule.Tasks))
	backwardPass(schedule, graph, early, late, projectEnd)

	for _, t := range schedule.Tasks {
		e := early[t.ID]
		l := late[t.ID]
		es, ee := e.start, e.end
		ls, lf := l.start, l.end
		t.EarlyStart = &es
		t.EarlyEnd = &ee
		t.LateStart = &ls
		t.LateEnd = &lf

		totalFloat := ls.Sub(es).Seconds() / secondsPerHour
		t.TotalFloatHours = &totalFloat
		ff := freeFloatHours(t, graph, early)
		t.FreeFloatHours = &ff
	}
}

type span struct {
	start time.Time
	end   time.Time
}

// farPastSentinel stands in for "very early" when a task has no
// targetStart: Go's zero time.Time already predates any realistic
// schedule date, so it serves directly as that sentinel.
var farPastSentinel = time.Time{}

func forwardPass(schedule *entity.Schedule, graph *entity.Graph, early map[entity.TaskID]*span) {
	visited := make(map[entity.TaskID]bool, len(schedule.Tasks))
	visiting := make(map[entity.TaskID]bool, len(schedule.Tasks))

	for _, t := range schedule.Tasks {
		forwardVisit(t.ID, schedule, graph, early, visited, visiting)
	}
}

// forwardVisit computes ES/EE for taskID, first ensuring every
// predecessor has been computed. It uses an explicit stack of pending
// work rather than recursing, since a predecessor chain in a large
// linear schedule can be tens of thousands of tasks deep.
func forwardVisit(start entity.TaskID, schedule *entity.Schedule, graph *entity.Graph, early map[entity.TaskID]*span, visited, visiting map[entity.TaskID]bool) {
	type frame struct {
		id        entity.TaskID
		predIdx   int
		preds     []*entity.Relationship
	}

	if visited[start] {
		return
	}

	stack := []*frame{{id: start, preds: graph.Predecessors[start]}}
	visiting[start] = true

	for len(stack) > 0 {
		top := stack[len(stack)-1]

		if top.predIdx < len(top.preds) {
			rel := top.preds[top.predIdx]
			top.predIdx++
			predID := rel.PredecessorTaskID
			if visited[predID] || visiting[predID] {
				// Already done, or a cycle back-edge: use whatever the
				// predecessor currently has (possibly not yet computed for
				// a cycle member, in which case it is simply absent and
				// skipped below).
				continue
			}
			if _, ok := schedule.TaskByID(predID); !ok {
				continue
			}
			visiting[predID] = true
			stack = append(stack, &frame{id: predID, preds: graph.Predecessors[predID]})
			continue
		}

		// All predecessors of top.id are resolved (or intentionally
		// skipped); compute its early span now.
		task, _ := schedule.TaskByID(top.id)
		computeEarly(task, graph, early, visited)
		visited[top.id] = true
		delete(visiting, top.id)
		stack = stack[:len(stack)-1]
	}
}

func computeEarly(t *entity.Task, graph *entity.Graph, early map[entity.TaskID]*span, visited map[entity.TaskID]bool) {
	durationSeconds := t.TargetDurationHours * secondsPerHour

	es := farPastSentinel
	if t.TargetStart != nil {
		es = *t.TargetStart
	}

	for _, rel := range graph.Predecessors[t.ID] {
		predSpan, ok := early[rel.PredecessorTaskID]
		if !ok {
			continue
		}
		lagSeconds := rel.LagDays * secondsPerDay

		var candidate time.Time
		switch rel.Type {
		case entity.StartToStart:
			candidate = predSpan.start
		case entity.FinishToFinish:
			candidate = predSpan.end.Add(-time.Duration(durationSeconds) * time.Second)
		case entity.StartToFinish:
			candidate = predSpan.start.Add(-time.Duration(durationSeconds) * time.Second)
		default: // FinishToStart
			candidate = predSpan.end
		}
		candidate = candidate.Add(time.Duration(lagSeconds) * time.Second)

		if candidate.After(es) {
			es = candidate
		}
	}

	ee := es.Add(time.Duration(durationSeconds) * time.Second)
	early[t.ID] = &span{start: es, end: ee}
}

func maxEarlyEnd(schedule *entity.Schedule, early map[entity.TaskID]*span) time.Time {
	var max time.Time
	found := false
	for _, t := range schedule.Tasks {
		s, ok := early[t.ID]
		if !ok {
			continue
		}
		if !found || s.end.After(max) {
			max = s.end
			found = true
		}
	}
	if !found {
		return time.Now().UTC()
	}
	return max
}

func backwardPass(schedule *entity.Schedule, graph *entity.Graph, early, late map[entity.TaskID]*span, projectEnd time.Time) {
	visited := make(map[entity.TaskID]bool, len(schedule.Tasks))
	visiting := make(map[entity.TaskID]bool, len(schedule.Tasks))

	for _, t := range schedule.Tasks {
		backwardVisit(t.ID, schedule, graph, early, late, projectEnd, visited, visiting)
	}
}

func backwardVisit(start entity.TaskID, schedule *entity.Schedule, graph *entity.Graph, early, late map[entity.TaskID]*span, projectEnd time.Time, visited, visiting map[entity.TaskID]bool) {
	type frame struct {
		id      entity.TaskID
		succIdx int
		succs   []*entity.Relationship
	}

	if visited[start] {
		return
	}

	stack := []*frame{{id: start, succs: graph.Successors[start]}}
	visiting[start] = true

	for len(stack) > 0 {
		top := stack[len(stack)-1]

		if top.succIdx < len(top.succs) {
			rel := top.succs[top.succIdx]
			top.succIdx++
			succID := rel.SuccessorTaskID
			if visited[succID] || visiting[succID] {
				continue
			}
			if _, ok := schedule.TaskByID(succID); !ok {
				continue
			}
			visiting[succID] = true
			stack = append(stack, &frame{id: succID, succs: graph.Successors[succID]})
			continue
		}

		task, _ := schedule.TaskByID(top.id)
		computeLate(task, graph, early, late, projectEnd)
		visited[top.id] = true
		delete(visiting, top.id)
		stack = stack[:len(stack)-1]
	}
}

func computeLate(t *entity.Task, graph *entity.Graph, early, late map[entity.TaskID]*span, projectEnd time.Time) {
	durationSeconds := t.TargetDurationHours * secondsPerHour

	lf := projectEnd

	for _, rel := range graph.Successors[t.ID] {
		succLate, ok := late[rel.SuccessorTaskID]
		if !ok {
			continue
		}
		lagSeconds := rel.LagDays * secondsPerDay

		var candidate time.Time
		switch rel.Type {
		case entity.StartToStart:
			candidate = succLate.start.Add(time.Duration(durationSeconds) * time.Second)
		case entity.FinishToFinish:
			candidate = succLate.end
		case entity.StartToFinish:
			// Open question: the source sets this candidate to the
			// successor's lateEnd, unadjusted by duration, even though
			// the forward pass's SF case does subtract duration. Preserved
			// verbatim rather than "fixed" per the design note on SF
			// back-edge semantics.
			candidate = succLate.end
		default: // FinishToStart
			candidate = succLate.start
		}
		candidate = candidate.Add(-time.Duration(lagSeconds) * time.Second)

		if candidate.Before(lf) {
			lf = candidate
		}
	}

	ls := lf.Add(-time.Duration(durationSeconds) * time.Second)
	late[t.ID] = &span{start: ls, end: lf}
}

// freeFloatHours is the amount a task can slip without delaying the
// early start of any successor. Not specified by formula in the data
// model (only declared as a field); this resolves that open point as
// min(successor.earlyStart) - t.earlyEnd across FS successors, falling
// back to the task's own total float when it has no FS successor (a
// task with no FS successor cannot delay any downstream FS start, so
// its free float is bounded only by the project, matching total float).
func freeFloatHours(t *entity.Task, graph *entity.Graph, early map[entity.TaskID]*span) float64 {
	ownEarly, ok := early[t.ID]
	if !ok {
		return 0
	}

	var minSuccStart time.Time
	found := false
	for _, rel := range graph.Successors[t.ID] {
		if rel.Type != entity.FinishToStart {
			continue
		}
		succEarly, ok := early[rel.SuccessorTaskID]
		if !ok {
			continue
		}
		if !found || succEarly.start.Before(minSuccStart) {
			minSuccStart = succEarly.start
			found = true
		}
	}
	if !found {
		if t.TotalFloatHours != nil {
			return *t.TotalFloatHours
		}
		return 0
	}
	return minSuccStart.Sub(ownEarly.end).Seconds() / secondsPerHour
}
