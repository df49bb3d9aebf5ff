// Package entity is the normalized schedule model: the in-memory
// entities, their ids, and cross-references described in the data
// model. Identifiers are opaque strings exactly as they appear in the
// source export — callers must never assume a numeric form.
package entity

import "time"

// Opaque id aliases. Kept distinct by name (not by Go type, since Go
// lacks nominal typing for string aliases) purely for readability at
// call sites.
type (
	ProjectID           = string
	WBSID               = string
	TaskID              = string
	ResourceID          = string
	CalendarID           = string
	ActivityCodeTypeID  = string
	ActivityCodeID      = string
)

// HoursPerDay is the fixed constant the core uses to convert hours to
// days, independent of any WorkCalendar (Non-goal: calendar-aware CPM).
const HoursPerDay = 8.0

// Project is the root of ownership for WBS elements and tasks.
type Project struct {
	ID        ProjectID
	ShortName string
	Name      string
	PlanStart *time.Time
	PlanEnd   *time.Time
	DataDate  *time.Time
}

// WBSElement is one node in the per-project WBS forest.
type WBSElement struct {
	ID             WBSID
	ProjectID      ProjectID
	ParentID       *WBSID
	Name           string
	ShortName      string
	SequenceNumber int
}

// Task is a schedule activity. EarlyStart/EarlyEnd/LateStart/LateEnd/
// TotalFloatHours/FreeFloatHours are nil until the CPM engine runs;
// after that single write-pass they are always populated together.
type Task struct {
	ID                      TaskID
	ProjectID               ProjectID
	WBSID                   *WBSID
	CalendarID              *CalendarID
	Code                    string
	Name                    string
	Type                    TaskType
	Status                  TaskStatus
	PercentComplete         float64
	TargetStart             *time.Time
	TargetEnd               *time.Time
	ActualStart             *time.Time
	ActualEnd               *time.Time
	TargetDurationHours     float64
	RemainingDurationHours  float64

	// Computed by the CPM engine; nil until Run has executed.
	EarlyStart      *time.Time
	EarlyEnd        *time.Time
	LateStart       *time.Time
	LateEnd         *time.Time
	TotalFloatHours *float64
	FreeFloatHours  *float64
}

// DurationDays is floor(TargetDurationHours / HoursPerDay), per the
// fixed-constant duration rule (calendars are never consulted).
func (t *Task) DurationDays() int {
	return floorDiv(t.TargetDurationHours, HoursPerDay)
}

// FloatDays is floor(TotalFloatHours / HoursPerDay). Returns 0 if the
// CPM engine has not yet run.
func (t *Task) FloatDays() int {
	if t.TotalFloatHours == nil {
		return 0
	}
	return floorDiv(*t.TotalFloatHours, HoursPerDay)
}

// IsCritical is true iff TotalFloatHours <= 0. A Task the CPM engine
// has not yet processed is never critical.
func (t *Task) IsCritical() bool {
	return t.TotalFloatHours != nil && *t.TotalFloatHours <= 0
}

func floorDiv(hours, per float64) int {
	v := hours / per
	f := int(v)
	if v < 0 && float64(f) != v {
		f--
	}
	return f
}

// Relationship is a directed predecessor->successor edge. Its identity
// is the composite (SuccessorTaskID, PredecessorTaskID, Type, LagDays).
// Edges referencing a missing task are retained here — the Analyzer,
// not the builder, classifies them as dangling.
type Relationship struct {
	SuccessorTaskID   TaskID
	PredecessorTaskID TaskID
	Type              RelationshipType
	LagDays           float64
}

// Resource is a labor/non-labor/material pool, global within the export.
type Resource struct {
	ID                  ResourceID
	ShortName           string
	Name                string
	Type                ResourceType
	Unit                string
	DefaultUnitsPerTime float64
}

// ResourceAssignment links a Task to a Resource. Its identity is the
// composite (TaskID, ResourceID).
type ResourceAssignment struct {
	TaskID           TaskID
	ResourceID       ResourceID
	ProjectID        ProjectID
	TargetQuantity   float64
	ActualQuantity   float64
	RemainingQuantity float64
	TargetCost       float64
	ActualCost       float64
}

// WorkCalendar is parsed but never consulted by the CPM engine
// (Non-goal: calendar-aware CPM). It is retained for the Analyzer's
// informational calendar-coverage report.
type WorkCalendar struct {
	ID             CalendarID
	Name           string
	ProjectID      *ProjectID
	IsDefault      bool
	HoursPerDay    float64
	HoursPerWeek   float64
	HoursPerMonth  float64
	HoursPerYear   float64
	Exceptions     []*CalendarException
}

// CalendarException decorates a WorkCalendar with a date whose working
// hours differ from the calendar's normal pattern; HoursWorked == 0
// marks a holiday.
type CalendarException struct {
	CalendarID  CalendarID
	Date        time.Time
	HoursWorked float64
}

// ActivityCodeType is a grouping category (e.g. "Phase", "Area").
type ActivityCodeType struct {
	ID             ActivityCodeTypeID
	Name           string
	ShortLength    int
	SequenceNumber int
	ProjectID      *ProjectID
	Scope          ActivityCodeScope
}

// ActivityCode is one value within an ActivityCodeType; may be
// hierarchical via ParentID.
type ActivityCode struct {
	ID             ActivityCodeID
	TypeID         ActivityCodeTypeID
	ParentID       *ActivityCodeID
	Name           string
	ShortName      string
	SequenceNumber int
	Color          *string
}

// TaskActivityCode assigns an ActivityCode to a Task. Its identity is
// the composite (TaskID, CodeID).
type TaskActivityCode struct {
	TaskID    TaskID
	CodeID    ActivityCodeID
	TypeID    ActivityCodeTypeID
	ProjectID ProjectID
}
