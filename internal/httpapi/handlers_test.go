package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xerschedule/core/internal/config"
	"github.com/xerschedule/core/internal/metrics"
)

const handlerXERFixture = "ERMHDR\t1\t2026-01-01\n" +
	"%T\tPROJECT\n%F\tproj_id\n%R\tP1\n%E\n" +
	"%T\tTASK\n%F\ttask_id\tproj_id\ttarget_drtn_hr_cnt\n%R\tT1\tP1\t8\n%E\n"

func newTestHandlers() *Handlers {
	cfg := config.HostConfig{MaxUploadBytes: 1024 * 1024}
	reg := metrics.NewRegistryWithRegisterer(prometheus.NewRegistry())
	return NewHandlers(cfg, reg)
}

func TestHandlersParseReturnsRunIDAndSchedule(t *testing.T) {
	e := echo.New()
	h := newTestHandlers()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/schedules:parse", strings.NewReader(handlerXERFixture))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Parse(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	assert.NotEmpty(t, data["run_id"])
}

func TestHandlersParseRejectsOversizedUpload(t *testing.T) {
	e := echo.New()
	h := newTestHandlers()
	h.cfg.MaxUploadBytes = 4

	req := httptest.NewRequest(http.MethodPost, "/api/v1/schedules:parse", strings.NewReader(handlerXERFixture))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Parse(c))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestHandlersParseReportsMissingProjectAsUnprocessable(t *testing.T) {
	e := echo.New()
	h := newTestHandlers()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/schedules:parse", strings.NewReader("%T\tTASK\n%F\ttask_id\n%R\tT1\n%E\n"))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Parse(c))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestHandlersAnalyzeUnknownRunIDReturnsNotFound(t *testing.T) {
	e := echo.New()
	h := newTestHandlers()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/schedules:analyze?run_id=nope", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Analyze(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlersParseThenAnalyzeRoundTrips(t *testing.T) {
	e := echo.New()
	h := newTestHandlers()

	parseReq := httptest.NewRequest(http.MethodPost, "/api/v1/schedules:parse", strings.NewReader(handlerXERFixture))
	parseRec := httptest.NewRecorder()
	parseCtx := e.NewContext(parseReq, parseRec)
	require.NoError(t, h.Parse(parseCtx))

	var parseBody map[string]interface{}
	require.NoError(t, json.Unmarshal(parseRec.Body.Bytes(), &parseBody))
	runID := parseBody["data"].(map[string]interface{})["run_id"].(string)

	analyzeReq := httptest.NewRequest(http.MethodPost, "/api/v1/schedules:analyze?run_id="+runID, nil)
	analyzeRec := httptest.NewRecorder()
	analyzeCtx := e.NewContext(analyzeReq, analyzeRec)
	require.NoError(t, h.Analyze(analyzeCtx))
	assert.Equal(t, http.StatusOK, analyzeRec.Code)
}

func TestHandlersHealthReturnsOK(t *testing.T) {
	e := echo.New()
	h := newTestHandlers()

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Health(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDetectedFormatLabel(t *testing.T) {
	assert.Equal(t, "xer", detectedFormatLabel([]byte("ERMHDR\t1")))
	assert.Equal(t, "xml", detectedFormatLabel([]byte("<?xml version=\"1.0\"?><Project/>")))
	assert.Equal(t, "mpp", detectedFormatLabel(mppMagicBytes))
}
