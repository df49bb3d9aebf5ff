package analyzer

import "github.com/xerschedule/core/internal/entity"

// highFloatThresholdDays and highDurationThresholdDays are the DCMA
// panel's fixed thresholds (44 days, the standard DCMA figure), compared
// against FloatDays/DurationDays, which count 8-hour days.
const (
	highFloatThresholdDays    = 44
	highDurationThresholdDays = 44
)

// CheckResult is one row of the DCMA panel.
type CheckResult struct {
	Name        string
	Description string
	Threshold   string
	ActualValue float64
	Passed      bool
	NotApplicable bool
}

// DCMAReport is the full 11-point panel plus its roll-up score. The
// source names it "14-point" while implementing 11; that mismatch is
// preserved rather than corrected.
type DCMAReport struct {
	Checks       []CheckResult
	OverallScore float64
}

// DCMA runs the 11-point schedule-quality panel.
func DCMA(schedule *entity.Schedule) DCMAReport {
	tasks := schedule.Tasks
	rels := schedule.Relationships
	totalTasks := len(tasks)
	totalRels := len(rels)

	var leads, lags, nonFS int
	for _, r := range rels {
		switch {
		case r.LagDays < 0:
			leads++
		case r.LagDays > 0:
			lags++
		}
		if r.Type != entity.FinishToStart {
			nonFS++
		}
	}

	var highFloat, negFloat, highDuration, invalidDates int
	for _, t := range tasks {
		if t.FloatDays() > highFloatThresholdDays {
			highFloat++
		}
		if t.TotalFloatHours != nil && *t.TotalFloatHours < 0 {
			negFloat++
		}
		if t.DurationDays() > highDurationThresholdDays {
			highDuration++
		}
		if t.ActualStart != nil && t.ActualEnd != nil && t.ActualEnd.Before(*t.ActualStart) {
			invalidDates++
		}
	}

	logic := LogicCheck(schedule)
	openStarts := len(logic.OpenStarts)
	openEnds := len(logic.OpenEnds)

	logicRatio := float64(totalRels) / float64(maxInt(totalTasks, 1))
	leadsPct := ratioPercent(leads, totalRels)
	lagsPct := ratioPercent(lags, totalRels)
	nonFSPct := ratioPercent(nonFS, totalRels)
	highFloatPct := ratioPercent(highFloat, totalTasks)
	negFloatPct := ratioPercent(negFloat, totalTasks)
	highDurationPct := ratioPercent(highDuration, totalTasks)
	missingPredPct := ratioPercent(openStarts, totalTasks)
	missingSuccPct := ratioPercent(openEnds, totalTasks)

	checks := []CheckResult{
		{Name: "Logic", Description: "relationships per task", Threshold: ">= 1.5", ActualValue: round2(logicRatio), Passed: logicRatio >= 1.5},
		{Name: "Leads", Description: "relationships with negative lag", Threshold: "< 5%", ActualValue: round2(leadsPct), Passed: leadsPct < 5},
		{Name: "Lags", Description: "relationships with positive lag", Threshold: "< 5%", ActualValue: round2(lagsPct), Passed: lagsPct < 5},
		{Name: "Relationship Types", Description: "relationships not finish-to-start", Threshold: "< 10%", ActualValue: round2(nonFSPct), Passed: nonFSPct < 10},
		{Name: "Hard Constraints", Description: "not computable without constraint data", Threshold: "N/A", ActualValue: 0, Passed: true, NotApplicable: true},
		{Name: "High Float", Description: "tasks with float > 44 days", Threshold: "< 5%", ActualValue: round2(highFloatPct), Passed: highFloatPct < 5},
		{Name: "Negative Float", Description: "tasks with negative total float", Threshold: "= 0%", ActualValue: round2(negFloatPct), Passed: negFloatPct == 0},
		{Name: "High Duration", Description: "tasks with duration > 44 days", Threshold: "< 5%", ActualValue: round2(highDurationPct), Passed: highDurationPct < 5},
		{Name: "Invalid Dates", Description: "tasks with actualEnd before actualStart", Threshold: "= 0", ActualValue: float64(invalidDates), Passed: invalidDates == 0},
		{Name: "Missing Predecessors", Description: "open-start tasks per total tasks", Threshold: "< 5%", ActualValue: round2(missingPredPct), Passed: missingPredPct < 5},
		{Name: "Missing Successors", Description: "open-end tasks per total tasks", Threshold: "< 5%", ActualValue: round2(missingSuccPct), Passed: missingSuccPct < 5},
	}

	passed := 0
	for _, c := range checks {
		if c.Passed {
			passed++
		}
	}
	return DCMAReport{
		Checks:       checks,
		OverallScore: round2(float64(passed) / float64(maxInt(len(checks), 1)) * 100),
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
