package logger

import (
	"context"

	"go.uber.org/zap"
)

// Standard field names for consistent structured logging across gridmap.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Identity and context
	FieldRunID   = "run_id"
	FieldProject = "project"

	// Components
	FieldComponent = "component"
	FieldStage     = "stage"

	// Inputs and outputs
	FieldConfig  = "config"
	FieldNetwork = "network"
	FieldOutput  = "output"
	FieldFormat  = "format"
	FieldTable   = "table"
	FieldSource  = "source"

	// Report contents
	FieldRegions    = "regions"
	FieldEdges      = "edges"
	FieldSuppressed = "suppressed"
	FieldSnapshots  = "snapshots"
	FieldTimestep   = "timestep_hours"

	// Timing
	FieldDurationMS = "duration_ms"

	// Errors
	FieldError = "error"

	// Counts
	FieldCount = "count"
)

// Context keys for propagating logging context
type contextKey string

const (
	runIDKey     contextKey = "logger_run_id"
	projectKey   contextKey = "logger_project"
	componentKey contextKey = "logger_component"
)

// WithRunID adds a run ID to the context for logging
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// WithProject adds a report id to the context for logging
func WithProject(ctx context.Context, project string) context.Context {
	return context.WithValue(ctx, projectKey, project)
}

// WithComponent adds a component name to the context for logging
func WithComponent(ctx context.Context, component string) context.Context {
	return context.WithValue(ctx, componentKey, component)
}

// FieldsFromContext extracts logging fields from context.
// Returns key-value pairs suitable for use with Infow/Errorw/etc.
func FieldsFromContext(ctx context.Context) []interface{} {
	var fields []interface{}

	if runID, ok := ctx.Value(runIDKey).(string); ok && runID != "" {
		fields = append(fields, FieldRunID, runID)
	}
	if project, ok := ctx.Value(projectKey).(string); ok && project != "" {
		fields = append(fields, FieldProject, project)
	}
	if component, ok := ctx.Value(componentKey).(string); ok && component != "" {
		fields = append(fields, FieldComponent, component)
	}

	return fields
}

// LoggerFromContext returns a logger with fields extracted from context.
func LoggerFromContext(ctx context.Context) *zap.SugaredLogger {
	fields := FieldsFromContext(ctx)
	if len(fields) == 0 {
		return Logger
	}
	return Logger.With(fields...)
}

// ComponentLogger returns a named logger for a specific component.
// This is the preferred way to get a logger for dependency injection.
//
// Example:
//
//	func NewSQLiteReader() *SQLiteReader {
//	    return &SQLiteReader{
//	        logger: logger.ComponentLogger("network.sqlite"),
//	    }
//	}
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}
