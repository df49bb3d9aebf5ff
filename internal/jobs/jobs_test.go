package jobs

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jobsXERFixture = "ERMHDR\t1\t2026-01-01\n" +
	"%T\tPROJECT\n%F\tproj_id\n%R\tP1\n%E\n" +
	"%T\tTASK\n%F\ttask_id\tproj_id\ttarget_drtn_hr_cnt\n%R\tT1\tP1\t8\n%E\n"

func newTaskFor(t *testing.T, payload ParseAndAnalyzePayload) *asynq.Task {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return asynq.NewTask(TypeParseAndAnalyze, raw)
}

func TestHandleParseAndAnalyzeSuccess(t *testing.T) {
	var gotRunID, gotFilename string
	var gotResult Result
	var successCalled bool

	h := NewHandlers(
		func(runID, filename string, err error) { t.Fatalf("unexpected failure callback: %v", err) },
		func(runID, filename string, result Result) {
			successCalled = true
			gotRunID, gotFilename, gotResult = runID, filename, result
		},
	)

	task := newTaskFor(t, ParseAndAnalyzePayload{RunID: "run-1", SourceFilename: "demo.xer", Data: []byte(jobsXERFixture)})
	err := h.HandleParseAndAnalyze(context.Background(), task)
	require.NoError(t, err)

	assert.True(t, successCalled)
	assert.Equal(t, "run-1", gotRunID)
	assert.Equal(t, "demo.xer", gotFilename)
	assert.Equal(t, 1, gotResult.TaskCount)
}

func TestHandleParseAndAnalyzeFailureInvokesOnFailure(t *testing.T) {
	var failureCalled bool

	h := NewHandlers(
		func(runID, filename string, err error) { failureCalled = true },
		func(runID, filename string, result Result) { t.Fatalf("unexpected success callback") },
	)

	task := newTaskFor(t, ParseAndAnalyzePayload{RunID: "run-2", SourceFilename: "bad.xer", Data: []byte("not an xer file at all")})
	err := h.HandleParseAndAnalyze(context.Background(), task)
	require.Error(t, err)
	assert.True(t, failureCalled)
}

func TestHandleParseAndAnalyzeMalformedPayloadSkipsRetry(t *testing.T) {
	h := NewHandlers(nil, nil)
	task := asynq.NewTask(TypeParseAndAnalyze, []byte("not json"))

	err := h.HandleParseAndAnalyze(context.Background(), task)
	require.Error(t, err)
	assert.ErrorIs(t, err, asynq.SkipRetry)
}
