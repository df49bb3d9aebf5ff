package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAndLookupByID(t *testing.T) {
	s := NewSchedule()
	s.AddProject(&Project{ID: "P1", Name: "Demo"})
	s.AddTask(&Task{ID: "T1", ProjectID: "P1"})
	s.AddResource(&Resource{ID: "R1", Name: "Crew A"})

	p, ok := s.ProjectByID("P1")
	require.True(t, ok)
	assert.Equal(t, "Demo", p.Name)

	task, ok := s.TaskByID("T1")
	require.True(t, ok)
	assert.Equal(t, "P1", task.ProjectID)

	r, ok := s.ResourceByID("R1")
	require.True(t, ok)
	assert.Equal(t, "Crew A", r.Name)

	_, ok = s.TaskByID("MISSING")
	assert.False(t, ok)
}

func TestBuildGraphIndexesBothEndpointsAndRetainsDanglingEdges(t *testing.T) {
	s := NewSchedule()
	s.AddTask(&Task{ID: "A", ProjectID: "P1"})

	s.Relationships = []*Relationship{
		{PredecessorTaskID: "A", SuccessorTaskID: "MISSING", Type: FinishToStart},
	}

	g := s.BuildGraph()
	assert.Len(t, g.Successors["A"], 1)
	assert.Len(t, g.Predecessors["MISSING"], 1)

	_, ok := s.TaskByID("MISSING")
	assert.False(t, ok)
}

func TestTaskIsCriticalAndFloatDays(t *testing.T) {
	task := &Task{ID: "T1", TargetDurationHours: 24}
	assert.False(t, task.IsCritical()) // no CPM data yet
	assert.Equal(t, 0, task.FloatDays())
	assert.Equal(t, 3, task.DurationDays())

	zero := 0.0
	task.TotalFloatHours = &zero
	assert.True(t, task.IsCritical())

	positive := 40.0
	task.TotalFloatHours = &positive
	assert.False(t, task.IsCritical())
	assert.Equal(t, 5, task.FloatDays())

	negative := -8.0
	task.TotalFloatHours = &negative
	assert.True(t, task.IsCritical())
}
