package entity

import "strings"

// TaskType is the normalized form of the XER task_type token.
type TaskType string

const (
	TaskDependent     TaskType = "TaskDependent"
	ResourceDependent TaskType = "ResourceDependent"
	LevelOfEffort     TaskType = "LevelOfEffort"
	StartMilestone    TaskType = "StartMilestone"
	FinishMilestone   TaskType = "FinishMilestone"
	WBSSummary        TaskType = "WBSSummary"
)

var taskTypeRawToEnum = map[string]TaskType{
	"TT_Task":    TaskDependent,
	"TT_Rsrc":    ResourceDependent,
	"TT_LOE":     LevelOfEffort,
	"TT_Mile":    StartMilestone,
	"TT_FinMile": FinishMilestone,
	"TT_WBS":     WBSSummary,
}

var taskTypeEnumToRaw = invertTaskType(taskTypeRawToEnum)

func invertTaskType(m map[string]TaskType) map[TaskType]string {
	out := make(map[TaskType]string, len(m))
	for raw, enum := range m {
		out[enum] = raw
	}
	return out
}

// ParseTaskType decodes a raw task_type token, defaulting to
// TaskDependent for anything unrecognized.
func ParseTaskType(raw string) TaskType {
	if t, ok := taskTypeRawToEnum[strings.TrimSpace(raw)]; ok {
		return t
	}
	return TaskDependent
}

// RawToken returns the canonical XER token for a TaskType.
func (t TaskType) RawToken() string { return taskTypeEnumToRaw[t] }

// TaskStatus is the normalized form of the XER status_code token.
type TaskStatus string

const (
	NotStarted TaskStatus = "NotStarted"
	Active     TaskStatus = "Active"
	Complete   TaskStatus = "Complete"
)

var taskStatusRawToEnum = map[string]TaskStatus{
	"TK_NotStart": NotStarted,
	"TK_Active":   Active,
	"TK_Complete": Complete,
}

var taskStatusEnumToRaw = map[TaskStatus]string{
	NotStarted: "TK_NotStart",
	Active:     "TK_Active",
	Complete:   "TK_Complete",
}

// ParseTaskStatus decodes a raw status_code token, defaulting to NotStarted.
func ParseTaskStatus(raw string) TaskStatus {
	if s, ok := taskStatusRawToEnum[strings.TrimSpace(raw)]; ok {
		return s
	}
	return NotStarted
}

// RawToken returns the canonical XER token for a TaskStatus.
func (s TaskStatus) RawToken() string { return taskStatusEnumToRaw[s] }

// RelationshipType is the normalized form of the XER pred_type token.
type RelationshipType string

const (
	FinishToStart  RelationshipType = "FS"
	StartToStart   RelationshipType = "SS"
	FinishToFinish RelationshipType = "FF"
	StartToFinish  RelationshipType = "SF"
)

var relTypeRawToEnum = map[string]RelationshipType{
	"PR_FS": FinishToStart,
	"PR_SS": StartToStart,
	"PR_FF": FinishToFinish,
	"PR_SF": StartToFinish,
}

var relTypeEnumToRaw = map[RelationshipType]string{
	FinishToStart:  "PR_FS",
	StartToStart:   "PR_SS",
	FinishToFinish: "PR_FF",
	StartToFinish:  "PR_SF",
}

// ParseRelationshipType decodes a raw pred_type token, defaulting to FS.
func ParseRelationshipType(raw string) RelationshipType {
	if t, ok := relTypeRawToEnum[strings.TrimSpace(raw)]; ok {
		return t
	}
	return FinishToStart
}

// RawToken returns the canonical XER token for a RelationshipType.
func (t RelationshipType) RawToken() string { return relTypeEnumToRaw[t] }

// ResourceType is the normalized form of the XER rsrc_type token.
type ResourceType string

const (
	Labor    ResourceType = "Labor"
	NonLabor ResourceType = "NonLabor"
	Material ResourceType = "Material"
)

var resourceTypeRawToEnum = map[string]ResourceType{
	"RT_Labor": Labor,
	"RT_Equip": NonLabor,
	"RT_Mat":   Material,
}

var resourceTypeEnumToRaw = map[ResourceType]string{
	Labor:    "RT_Labor",
	NonLabor: "RT_Equip",
	Material: "RT_Mat",
}

// ParseResourceType decodes a raw rsrc_type token, defaulting to Labor.
func ParseResourceType(raw string) ResourceType {
	if t, ok := resourceTypeRawToEnum[strings.TrimSpace(raw)]; ok {
		return t
	}
	return Labor
}

// RawToken returns the canonical XER token for a ResourceType.
func (t ResourceType) RawToken() string { return resourceTypeEnumToRaw[t] }

// ActivityCodeScope is the normalized form of the XER actv_code_type scope token.
type ActivityCodeScope string

const (
	ScopeGlobal  ActivityCodeScope = "Global"
	ScopeEPS     ActivityCodeScope = "EPS"
	ScopeProject ActivityCodeScope = "Project"
)

var scopeRawToEnum = map[string]ActivityCodeScope{
	"AS_Global":  ScopeGlobal,
	"AS_EPS":     ScopeEPS,
	"AS_Project": ScopeProject,
}

var scopeEnumToRaw = map[ActivityCodeScope]string{
	ScopeGlobal:  "AS_Global",
	ScopeEPS:     "AS_EPS",
	ScopeProject: "AS_Project",
}

// ParseActivityCodeScope decodes a raw scope token, defaulting to Project.
func ParseActivityCodeScope(raw string) ActivityCodeScope {
	if s, ok := scopeRawToEnum[strings.TrimSpace(raw)]; ok {
		return s
	}
	return ScopeProject
}

// RawToken returns the canonical XER token for an ActivityCodeScope.
func (s ActivityCodeScope) RawToken() string { return scopeEnumToRaw[s] }
