// Package logger provides a structured zap logger adapted from the
// teacher's internal/logger: development (console) and production (JSON)
// profiles selected by environment, plus run-id context propagation
// for correlating log lines with a single parse+analyze invocation.
// No other package in this module imports it; the tabular reader and
// builder record anomalies on a validation.Result instead of logging.
package logger

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type contextKey string

const runIDKey contextKey = "run-id"

// New builds a SugaredLogger for the given environment. If env is
// empty, it reads APP_ENV, defaulting to production if unset or
// unrecognized.
func New(env string) (*zap.SugaredLogger, error) {
	if env == "" {
		env = os.Getenv("APP_ENV")
	}

	var config zap.Config
	switch env {
	case "development", "dev":
		config = zap.NewDevelopmentConfig()
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		config.OutputPaths = []string{"stdout"}
		config.ErrorOutputPaths = []string{"stderr"}
	default:
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
		config.OutputPaths = []string{"stdout"}
		config.ErrorOutputPaths = []string{"stderr"}
		config.EncoderConfig.CallerKey = "caller"
		config.EncoderConfig.LevelKey = "level"
		config.EncoderConfig.MessageKey = "message"
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	built, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return built.Sugar(), nil
}

// WithRunID injects a run id into ctx, identifying one parse+analyze
// invocation for correlation across log lines and the run ledger.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// ExtractRunID retrieves the run id from ctx, or "" if absent.
func ExtractRunID(ctx context.Context) string {
	if id, ok := ctx.Value(runIDKey).(string); ok {
		return id
	}
	return ""
}

// LogAnomalies emits one log line per anomaly message, so operators can
// see parse anomalies without re-running the parse with a debugger
// attached.
func LogAnomalies(log *zap.SugaredLogger, runID string, messages []AnomalyMessage) {
	for _, m := range messages {
		log.Infow("schedule anomaly",
			"run_id", runID,
			"severity", m.Severity,
			"code", m.Code,
			"text", m.Text,
		)
	}
}

// AnomalyMessage mirrors the fields of validation.Message that logging
// cares about, avoiding an import cycle between logger and validation.
type AnomalyMessage struct {
	Severity string
	Code     string
	Text     string
}

// LogParseFailure logs a schederr.Error (or any error) encountered
// while parsing a schedule, with the run id and source filename for
// correlation.
func LogParseFailure(log *zap.SugaredLogger, runID, filename string, err error) {
	log.Errorw("schedule parse failed",
		"run_id", runID,
		"filename", filename,
		"error", err,
	)
}
