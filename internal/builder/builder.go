// Package builder maps a tabular.Document's recognized tables into the
// normalized entity.Schedule model, applying the coercion and
// referential-integrity rules from the data model section: tolerant
// defaults for malformed values, orphan-dropping for tasks naming an
// unknown project, and last-row-wins for duplicate task ids.
package builder

import (
	"fmt"

	"github.com/xerschedule/core/internal/entity"
	"github.com/xerschedule/core/internal/schederr"
	"github.com/xerschedule/core/internal/tabular"
	"github.com/xerschedule/core/internal/validation"
)

// Build walks every recognized table in doc and emits a Schedule.
// Missing tables other than PROJECT silently yield empty collections;
// PROJECT's absence fails with MissingRequiredTable.
func Build(doc *tabular.Document) (*entity.Schedule, *validation.Result, error) {
	result := validation.NewResult()

	projectTable, ok := doc.Tables["PROJECT"]
	if !ok || len(projectTable.Rows) == 0 {
		return nil, result, schederr.NewMissingRequiredTable("PROJECT")
	}

	schedule := entity.NewSchedule()

	projects := newOrderedRegistry[entity.ProjectID, *entity.Project]()
	for _, row := range projectTable.Rows {
		p := buildProject(projectTable, row)
		if p.ID == "" {
			continue
		}
		projects.put(p.ID, p)
	}
	for _, p := range projects.values() {
		schedule.AddProject(p)
	}

	if t, ok := doc.Tables["PROJWBS"]; ok {
		wbs := newOrderedRegistry[entity.WBSID, *entity.WBSElement]()
		for _, row := range t.Rows {
			w := buildWBS(t, row)
			if w.ID == "" {
				continue
			}
			wbs.put(w.ID, w)
		}
		schedule.WBSElements = wbs.values()
	}

	if t, ok := doc.Tables["CALENDAR"]; ok {
		cals := newOrderedRegistry[entity.CalendarID, *entity.WorkCalendar]()
		for _, row := range t.Rows {
			c := buildCalendar(t, row)
			if c.ID == "" {
				continue
			}
			cals.put(c.ID, c)
		}
		schedule.Calendars = cals.values()
	}

	if t, ok := doc.Tables["TASK"]; ok {
		tasks := newOrderedRegistry[entity.TaskID, *entity.Task]()
		for _, row := range t.Rows {
			task := buildTask(t, row)
			if task.ID == "" {
				continue
			}
			if _, exists := schedule.ProjectByID(task.ProjectID); !exists {
				result.AddWarningf(validation.CodeOrphanTask, "task %q names unknown project %q; dropped", task.ID, task.ProjectID)
				continue
			}
			if !tasks.put(task.ID, task) {
				result.AddWarningf(validation.CodeDuplicateTaskID, "duplicate task id %q; later row wins", task.ID)
			}
		}
		for _, task := range tasks.values() {
			schedule.AddTask(task)
		}
	}

	if t, ok := doc.Tables["TASKPRED"]; ok {
		for _, row := range t.Rows {
			rel := buildRelationship(t, row)
			if rel.SuccessorTaskID == "" || rel.PredecessorTaskID == "" {
				continue
			}
			schedule.Relationships = append(schedule.Relationships, rel)
		}
	}

	if t, ok := doc.Tables["RSRC"]; ok {
		resources := newOrderedRegistry[entity.ResourceID, *entity.Resource]()
		for _, row := range t.Rows {
			r := buildResource(t, row)
			if r.ID == "" {
				continue
			}
			resources.put(r.ID, r)
		}
		for _, r := range resources.values() {
			schedule.AddResource(r)
		}
	}

	if t, ok := doc.Tables["TASKRSRC"]; ok {
		for _, row := range t.Rows {
			a := buildAssignment(t, row)
			if a.TaskID == "" || a.ResourceID == "" {
				continue
			}
			schedule.Assignments = append(schedule.Assignments, a)
		}
	}

	if t, ok := doc.Tables["ACTVTYPE"]; ok {
		types := newOrderedRegistry[entity.ActivityCodeTypeID, *entity.ActivityCodeType]()
		for _, row := range t.Rows {
			ct := buildActivityCodeType(t, row)
			if ct.ID == "" {
				continue
			}
			types.put(ct.ID, ct)
		}
		schedule.ActivityCodeTypes = types.values()
	}

	if t, ok := doc.Tables["ACTVCODE"]; ok {
		codes := newOrderedRegistry[entity.ActivityCodeID, *entity.ActivityCode]()
		for _, row := range t.Rows {
			c := buildActivityCode(t, row)
			if c.ID == "" {
				continue
			}
			codes.put(c.ID, c)
		}
		schedule.ActivityCodes = codes.values()
	}

	if t, ok := doc.Tables["TASKACTV"]; ok {
		for _, row := range t.Rows {
			tac := buildTaskActivityCode(t, row)
			if tac.TaskID == "" || tac.CodeID == "" {
				continue
			}
			schedule.TaskActivityCodes = append(schedule.TaskActivityCodes, tac)
		}
	}

	return schedule, result, nil
}

func buildProject(t *tabular.Table, row tabular.Row) *entity.Project {
	id, _ := cell(t, row, "proj_id")
	shortName, _ := cell(t, row, "proj_short_name")
	name, _ := cell(t, row, "proj_name")
	planStart, planStartOK := cell(t, row, "plan_start_date")
	planEnd, planEndOK := cell(t, row, "plan_end_date")
	dataDate, dataDateOK := cell(t, row, "last_recalc_date")
	return &entity.Project{
		ID:        id,
		ShortName: shortName,
		Name:      name,
		PlanStart: parseDate(planStart, planStartOK),
		PlanEnd:   parseDate(planEnd, planEndOK),
		DataDate:  parseDate(dataDate, dataDateOK),
	}
}

func buildWBS(t *tabular.Table, row tabular.Row) *entity.WBSElement {
	id, _ := cell(t, row, "wbs_id")
	projID, _ := cell(t, row, "proj_id")
	parent, parentOK := cell(t, row, "parent_wbs_id")
	name, _ := cell(t, row, "wbs_name")
	shortName, _ := cell(t, row, "wbs_short_name")
	seq, seqOK := cell(t, row, "seq_num")
	return &entity.WBSElement{
		ID:             id,
		ProjectID:      projID,
		ParentID:       optionalString(parent, parentOK),
		Name:           name,
		ShortName:      shortName,
		SequenceNumber: parseIntDefault(seq, seqOK, 0),
	}
}

func buildCalendar(t *tabular.Table, row tabular.Row) *entity.WorkCalendar {
	id, _ := cell(t, row, "clndr_id")
	name, _ := cell(t, row, "clndr_name")
	projID, projOK := cell(t, row, "proj_id")
	flag, flagOK := cell(t, row, "default_flag")
	dayHr, dayHrOK := cell(t, row, "day_hr_cnt")
	weekHr, weekHrOK := cell(t, row, "week_hr_cnt")
	monthHr, monthHrOK := cell(t, row, "month_hr_cnt")
	yearHr, yearHrOK := cell(t, row, "year_hr_cnt")

	c := &entity.WorkCalendar{
		ID:            id,
		Name:          name,
		IsDefault:     parseBoolFlag(flag, flagOK),
		HoursPerDay:   parseFloatDefault(dayHr, dayHrOK, 8),
		HoursPerWeek:  parseFloatDefault(weekHr, weekHrOK, 40),
		HoursPerMonth: parseFloatDefault(monthHr, monthHrOK, 172),
		HoursPerYear:  parseFloatDefault(yearHr, yearHrOK, 2080),
	}
	if projOK {
		c.ProjectID = &projID
	}
	return c
}

func buildTask(t *tabular.Table, row tabular.Row) *entity.Task {
	id, _ := cell(t, row, "task_id")
	projID, _ := cell(t, row, "proj_id")
	wbsID, wbsOK := cell(t, row, "wbs_id")
	code, _ := cell(t, row, "task_code")
	name, _ := cell(t, row, "task_name")
	taskType, _ := cell(t, row, "task_type")
	status, _ := cell(t, row, "status_code")
	pctComplete, pctOK := cell(t, row, "phys_complete_pct")
	targetStart, targetStartOK := cell(t, row, "target_start_date")
	targetEnd, targetEndOK := cell(t, row, "target_end_date")
	actualStart, actualStartOK := cell(t, row, "act_start_date")
	actualEnd, actualEndOK := cell(t, row, "act_end_date")
	targetDur, targetDurOK := cell(t, row, "target_drtn_hr_cnt")
	remainDur, remainDurOK := cell(t, row, "remain_drtn_hr_cnt")
	clndrID, clndrOK := cell(t, row, "clndr_id")

	task := &entity.Task{
		ID:                     id,
		ProjectID:              projID,
		Code:                   code,
		Name:                   name,
		Type:                   entity.ParseTaskType(taskType),
		Status:                 entity.ParseTaskStatus(status),
		PercentComplete:        parseFloatDefault(pctComplete, pctOK, 0),
		TargetStart:            parseDate(targetStart, targetStartOK),
		TargetEnd:              parseDate(targetEnd, targetEndOK),
		ActualStart:            parseDate(actualStart, actualStartOK),
		ActualEnd:              parseDate(actualEnd, actualEndOK),
		TargetDurationHours:    parseFloatDefault(targetDur, targetDurOK, 0),
		RemainingDurationHours: parseFloatDefault(remainDur, remainDurOK, 0),
	}
	if wbsOK {
		task.WBSID = &wbsID
	}
	if clndrOK {
		task.CalendarID = &clndrID
	}
	return task
}

func buildRelationship(t *tabular.Table, row tabular.Row) *entity.Relationship {
	successor, _ := cell(t, row, "task_id")
	predecessor, _ := cell(t, row, "pred_task_id")
	predType, _ := cell(t, row, "pred_type")
	lagHr, lagOK := cell(t, row, "lag_hr_cnt")
	lagHours := parseFloatDefault(lagHr, lagOK, 0)
	return &entity.Relationship{
		SuccessorTaskID:   successor,
		PredecessorTaskID: predecessor,
		Type:              entity.ParseRelationshipType(predType),
		LagDays:           lagHours / entity.HoursPerDay,
	}
}

func buildResource(t *tabular.Table, row tabular.Row) *entity.Resource {
	id, _ := cell(t, row, "rsrc_id")
	shortName, _ := cell(t, row, "rsrc_short_name")
	name, _ := cell(t, row, "rsrc_name")
	rsrcType, _ := cell(t, row, "rsrc_type")
	unit, _ := cell(t, row, "unit_of_measure")
	units, unitsOK := cell(t, row, "cur_default_units_per_time")
	return &entity.Resource{
		ID:                  id,
		ShortName:           shortName,
		Name:                name,
		Type:                entity.ParseResourceType(rsrcType),
		Unit:                unit,
		DefaultUnitsPerTime: parseFloatDefault(units, unitsOK, 1),
	}
}

func buildAssignment(t *tabular.Table, row tabular.Row) *entity.ResourceAssignment {
	taskID, _ := cell(t, row, "task_id")
	rsrcID, _ := cell(t, row, "rsrc_id")
	projID, _ := cell(t, row, "proj_id")
	targetQty, targetQtyOK := cell(t, row, "target_qty")
	actualQty, actualQtyOK := cell(t, row, "act_qty")
	remainQty, remainQtyOK := cell(t, row, "remain_qty")
	targetCost, targetCostOK := cell(t, row, "target_cost")
	actualCost, actualCostOK := cell(t, row, "act_cost")
	return &entity.ResourceAssignment{
		TaskID:            taskID,
		ResourceID:        rsrcID,
		ProjectID:         projID,
		TargetQuantity:    parseFloatDefault(targetQty, targetQtyOK, 0),
		ActualQuantity:    parseFloatDefault(actualQty, actualQtyOK, 0),
		RemainingQuantity: parseFloatDefault(remainQty, remainQtyOK, 0),
		TargetCost:        parseFloatDefault(targetCost, targetCostOK, 0),
		ActualCost:        parseFloatDefault(actualCost, actualCostOK, 0),
	}
}

func buildActivityCodeType(t *tabular.Table, row tabular.Row) *entity.ActivityCodeType {
	id, _ := cell(t, row, "actv_code_type_id")
	name, _ := cell(t, row, "actv_code_type")
	shortLen, shortLenOK := cell(t, row, "actv_short_len")
	seq, seqOK := cell(t, row, "seq_num")
	projID, projOK := cell(t, row, "proj_id")
	scope, _ := cell(t, row, "actv_code_type_scope")

	ct := &entity.ActivityCodeType{
		ID:             id,
		Name:           name,
		ShortLength:    parseIntDefault(shortLen, shortLenOK, 0),
		SequenceNumber: parseIntDefault(seq, seqOK, 0),
		Scope:          entity.ParseActivityCodeScope(scope),
	}
	if projOK {
		ct.ProjectID = &projID
	}
	return ct
}

func buildActivityCode(t *tabular.Table, row tabular.Row) *entity.ActivityCode {
	id, _ := cell(t, row, "actv_code_id")
	typeID, _ := cell(t, row, "actv_code_type_id")
	parent, parentOK := cell(t, row, "parent_actv_code_id")
	name, _ := cell(t, row, "actv_code_name")
	shortName, _ := cell(t, row, "short_name")
	seq, seqOK := cell(t, row, "seq_num")
	color, colorOK := cell(t, row, "color")

	c := &entity.ActivityCode{
		ID:             id,
		TypeID:         typeID,
		Name:           name,
		ShortName:      shortName,
		SequenceNumber: parseIntDefault(seq, seqOK, 0),
	}
	if parentOK {
		c.ParentID = &parent
	}
	if colorOK {
		c.Color = &color
	}
	return c
}

func buildTaskActivityCode(t *tabular.Table, row tabular.Row) *entity.TaskActivityCode {
	taskID, _ := cell(t, row, "task_id")
	codeID, _ := cell(t, row, "actv_code_id")
	typeID, _ := cell(t, row, "actv_code_type_id")
	projID, _ := cell(t, row, "proj_id")
	return &entity.TaskActivityCode{
		TaskID:    taskID,
		CodeID:    codeID,
		TypeID:    typeID,
		ProjectID: projID,
	}
}

// describeTable formats a table's name and row count for diagnostic
// messages.
func describeTable(t *tabular.Table) string {
	return fmt.Sprintf("%s (%d rows)", t.Name, len(t.Rows))
}
