// Package jobs is the async job host: an Asynq-backed queue letting a
// caller enqueue a large-file parse+analyze instead of blocking a
// request goroutine, adapted from the teacher's internal/job
// (scheduler.go's client/payload/enqueue shape, handlers.go's
// ServeMux registration). The task handler below invokes the same
// synchronous core pipeline (detect.Parse + analyzer) the HTTP host
// calls directly — Asynq supplies host-level queuing and retry, not
// internal parallelism within the core.
package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/xerschedule/core/internal/analyzer"
	"github.com/xerschedule/core/internal/detect"
)

// TypeParseAndAnalyze is the Asynq task type for a full parse+analyze run.
const TypeParseAndAnalyze = "schedule:parse_and_analyze"

// ParseAndAnalyzePayload is the task payload: the raw export bytes plus
// identifying metadata for the run ledger and logs.
type ParseAndAnalyzePayload struct {
	RunID          string `json:"run_id"`
	SourceFilename string `json:"source_filename"`
	Data           []byte `json:"data"`
}

// Scheduler enqueues parse+analyze jobs onto the Asynq/Redis broker.
type Scheduler struct {
	client *asynq.Client
}

// NewScheduler connects to redisAddr and verifies it with a ping.
func NewScheduler(redisAddr string) (*Scheduler, error) {
	client := asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})
	if err := client.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return &Scheduler{client: client}, nil
}

// EnqueueParseAndAnalyze enqueues a background parse+analyze job,
// sized for large uploads that would otherwise block an HTTP request.
func (s *Scheduler) EnqueueParseAndAnalyze(ctx context.Context, runID, sourceFilename string, data []byte) (*asynq.TaskInfo, error) {
	payload := ParseAndAnalyzePayload{RunID: runID, SourceFilename: sourceFilename, Data: data}
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	task := asynq.NewTask(TypeParseAndAnalyze, payloadBytes)
	info, err := s.client.EnqueueContext(ctx, task, asynq.MaxRetry(2), asynq.Timeout(10*time.Minute))
	if err != nil {
		return nil, fmt.Errorf("failed to enqueue parse+analyze job: %w", err)
	}
	return info, nil
}

// Close releases the scheduler's Redis connection.
func (s *Scheduler) Close() error { return s.client.Close() }

// Result is what a completed parse+analyze job produced, for a caller
// that polls the run ledger after enqueueing.
type Result struct {
	TaskCount        int
	RelationshipCount int
	DCMAOverallScore  float64
	ErrorKind         string
}

// Handlers registers and executes parse+analyze task handlers.
// onFailure and onSuccess let a host wire its own run-ledger write and
// logger call without this package depending directly on postgres or
// any particular logging library.
type Handlers struct {
	onFailure func(runID, filename string, err error)
	onSuccess func(runID, filename string, result Result)
}

// NewHandlers constructs a Handlers reporting outcomes through the
// given callbacks.
func NewHandlers(onFailure func(runID, filename string, err error), onSuccess func(runID, filename string, result Result)) *Handlers {
	return &Handlers{onFailure: onFailure, onSuccess: onSuccess}
}

// RegisterHandlers wires every task type into mux.
func (h *Handlers) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeParseAndAnalyze, h.HandleParseAndAnalyze)
}

// HandleParseAndAnalyze runs the synchronous core pipeline inside the
// worker: detect format, build the Schedule, run CPM (via detect.Parse),
// then the DCMA panel.
func (h *Handlers) HandleParseAndAnalyze(ctx context.Context, t *asynq.Task) error {
	var payload ParseAndAnalyzePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", asynq.SkipRetry)
	}

	schedule, _, err := detect.Parse(payload.Data)
	if err != nil {
		if h.onFailure != nil {
			h.onFailure(payload.RunID, payload.SourceFilename, err)
		}
		return fmt.Errorf("parse failed: %w", err)
	}

	report := analyzer.DCMA(schedule)
	if h.onSuccess != nil {
		h.onSuccess(payload.RunID, payload.SourceFilename, Result{
			TaskCount:         len(schedule.Tasks),
			RelationshipCount: len(schedule.Relationships),
			DCMAOverallScore:  report.OverallScore,
		})
	}
	return nil
}
