package entity

// Schedule is the normalized, in-memory schedule model produced by a
// builder. Entities are immutable for their descriptive fields; the
// only mutation after construction is the CPM engine's single
// write-pass over each Task's computed fields. Slices preserve the
// order entities were declared in the source, since CPM determinism
// depends on task declaration order.
type Schedule struct {
	Projects           []*Project
	WBSElements        []*WBSElement
	Tasks              []*Task
	Relationships      []*Relationship
	Resources          []*Resource
	Assignments        []*ResourceAssignment
	Calendars          []*WorkCalendar
	ActivityCodeTypes  []*ActivityCodeType
	ActivityCodes      []*ActivityCode
	TaskActivityCodes  []*TaskActivityCode

	taskByID     map[TaskID]*Task
	projectByID  map[ProjectID]*Project
	resourceByID map[ResourceID]*Resource
}

// NewSchedule returns an empty Schedule with its indexes initialized.
func NewSchedule() *Schedule {
	return &Schedule{
		taskByID:     make(map[TaskID]*Task),
		projectByID:  make(map[ProjectID]*Project),
		resourceByID: make(map[ResourceID]*Resource),
	}
}

// AddProject appends a Project and indexes it by id.
func (s *Schedule) AddProject(p *Project) {
	s.Projects = append(s.Projects, p)
	s.projectByID[p.ID] = p
}

// AddTask appends a Task and indexes it by id. Callers are responsible
// for upholding the "later row wins" duplicate-id rule (the builder
// does this by collecting rows in an id-keyed registry, where a later
// row replaces an earlier one, and calling AddTask once per id).
func (s *Schedule) AddTask(t *Task) {
	s.Tasks = append(s.Tasks, t)
	s.taskByID[t.ID] = t
}

// AddResource appends a Resource and indexes it by id.
func (s *Schedule) AddResource(r *Resource) {
	s.Resources = append(s.Resources, r)
	s.resourceByID[r.ID] = r
}

// TaskByID looks up a Task by id; ok is false if no such task exists
// (e.g. it was dropped as an orphan, or a Relationship names an id that
// was never declared).
func (s *Schedule) TaskByID(id TaskID) (*Task, bool) {
	t, ok := s.taskByID[id]
	return t, ok
}

// ProjectByID looks up a Project by id.
func (s *Schedule) ProjectByID(id ProjectID) (*Project, bool) {
	p, ok := s.projectByID[id]
	return p, ok
}

// ResourceByID looks up a Resource by id.
func (s *Schedule) ResourceByID(id ResourceID) (*Resource, bool) {
	r, ok := s.resourceByID[id]
	return r, ok
}

// Graph is the predecessor/successor adjacency built once per CPM run
// (or analyzer pass) rather than once per task, per the resource-model
// guidance for large schedules.
type Graph struct {
	Predecessors map[TaskID][]*Relationship // successor id -> incoming edges
	Successors   map[TaskID][]*Relationship // predecessor id -> outgoing edges
}

// BuildGraph indexes every Relationship under both endpoint ids,
// whether or not a task with that id exists (so a dangling edge is
// still visible from its live side); callers that walk an edge must
// check TaskByID before dereferencing the other end.
func (s *Schedule) BuildGraph() *Graph {
	g := &Graph{
		Predecessors: make(map[TaskID][]*Relationship, len(s.Tasks)),
		Successors:   make(map[TaskID][]*Relationship, len(s.Tasks)),
	}
	for _, rel := range s.Relationships {
		g.Predecessors[rel.SuccessorTaskID] = append(g.Predecessors[rel.SuccessorTaskID], rel)
		g.Successors[rel.PredecessorTaskID] = append(g.Successors[rel.PredecessorTaskID], rel)
	}
	return g
}
