package httpapi

import (
	"bytes"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/xerschedule/core/internal/analyzer"
	"github.com/xerschedule/core/internal/config"
	"github.com/xerschedule/core/internal/detect"
	"github.com/xerschedule/core/internal/entity"
	"github.com/xerschedule/core/internal/metrics"
	"github.com/xerschedule/core/internal/schederr"
)

var mppMagicBytes = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// Handlers holds the dependencies every route needs: the config for
// upload limits, a metrics registry, and an in-memory store of
// previously parsed schedules keyed by run id so :analyze can run
// against a :parse result without re-uploading the file.
type Handlers struct {
	cfg     config.HostConfig
	metrics *metrics.Registry

	mu        sync.RWMutex
	schedules map[string]*entity.Schedule
}

// NewHandlers constructs Handlers with an empty schedule cache.
func NewHandlers(cfg config.HostConfig, reg *metrics.Registry) *Handlers {
	return &Handlers{cfg: cfg, metrics: reg, schedules: make(map[string]*entity.Schedule)}
}

// ParseResponse is the body of a successful :parse call.
type ParseResponse struct {
	RunID    string           `json:"run_id"`
	Schedule *entity.Schedule `json:"schedule"`
}

// Parse handles POST /api/v1/schedules:parse — upload XER or MSP-XML
// bytes, auto-detect format, build the Schedule, run CPM, and cache
// the result under a new run id for a later :analyze call.
func (h *Handlers) Parse(c echo.Context) error {
	data, err := io.ReadAll(io.LimitReader(c.Request().Body, h.cfg.MaxUploadBytes+1))
	if err != nil {
		return ErrorResponse(c, http.StatusBadRequest, "READ_FAILED", err.Error())
	}
	if int64(len(data)) > h.cfg.MaxUploadBytes {
		return ErrorResponse(c, http.StatusRequestEntityTooLarge, "UPLOAD_TOO_LARGE", "upload exceeds configured maximum")
	}

	start := time.Now()
	schedule, result, err := detect.Parse(data)
	duration := time.Since(start).Seconds()

	if err != nil {
		if perr, ok := err.(*schederr.Error); ok {
			if h.metrics != nil {
				h.metrics.RecordParseFailure(string(perr.Kind))
			}
			return ErrorResponse(c, errorStatusFor(string(perr.Kind)), string(perr.Kind), perr.Message)
		}
		if h.metrics != nil {
			h.metrics.RecordParseFailure("Unknown")
		}
		return ErrorResponse(c, http.StatusInternalServerError, "UNKNOWN", err.Error())
	}

	if h.metrics != nil {
		h.metrics.RecordParse(detectedFormatLabel(data), duration)
	}

	runID := uuid.NewString()
	h.mu.Lock()
	h.schedules[runID] = schedule
	h.mu.Unlock()

	return SuccessResponse(c, http.StatusOK, ParseResponse{RunID: runID, Schedule: schedule}, result)
}

// AnalyzeResponse is the body of a successful :analyze call.
type AnalyzeResponse struct {
	CriticalPath analyzer.CriticalPathReport   `json:"criticalPath"`
	Float        analyzer.FloatBuckets         `json:"float"`
	LogicCheck   analyzer.LogicCheckReport     `json:"logicCheck"`
	Resources    []analyzer.ResourceLoad       `json:"resources"`
	DCMA         analyzer.DCMAReport           `json:"dcma"`
}

// Analyze handles POST /api/v1/schedules:analyze?run_id=... — runs the
// full analyzer suite against a previously parsed Schedule.
func (h *Handlers) Analyze(c echo.Context) error {
	runID := c.QueryParam("run_id")
	h.mu.RLock()
	schedule, ok := h.schedules[runID]
	h.mu.RUnlock()
	if !ok {
		return ErrorResponse(c, http.StatusNotFound, "RUN_NOT_FOUND", "no parsed schedule for that run_id")
	}

	report := AnalyzeResponse{
		CriticalPath: analyzer.CriticalPath(schedule),
		Float:        analyzer.Float(schedule, analyzer.DefaultFloatThresholdDays),
		LogicCheck:   analyzer.LogicCheck(schedule),
		Resources:    analyzer.ResourceLoading(schedule),
		DCMA:         analyzer.DCMA(schedule),
	}

	if h.metrics != nil && len(schedule.Projects) > 0 {
		h.metrics.SetDCMAScore(schedule.Projects[0].ID, report.DCMA.OverallScore)
	}

	return SuccessResponse(c, http.StatusOK, report, nil)
}

// Health handles GET /api/health.
func (h *Handlers) Health(c echo.Context) error {
	return SuccessResponse(c, http.StatusOK, map[string]string{"status": "ok"}, nil)
}

// detectedFormatLabel mirrors detect's own sniffing so the metric
// label matches what the parser actually chose, without detect needing
// to expose its internal routing decision as a return value.
func detectedFormatLabel(data []byte) string {
	if len(data) >= len(mppMagicBytes) && bytes.Equal(data[:len(mppMagicBytes)], mppMagicBytes) {
		return "mpp"
	}
	window := data
	if len(window) > 100 {
		window = window[:100]
	}
	if bytes.Contains(window, []byte("<?xml")) || bytes.Contains(window, []byte("<Project")) {
		return "xml"
	}
	return "xer"
}
