package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// stripANSI removes ANSI color codes from a string for testing
func stripANSI(str string) string {
	ansiRegex := regexp.MustCompile(`\x1b\[[0-9;]*m`)
	return ansiRegex.ReplaceAllString(str, "")
}

func TestInitialize(t *testing.T) {
	tests := []struct {
		name       string
		jsonOutput bool
	}{
		{name: "JSON output mode", jsonOutput: true},
		{name: "Console output mode", jsonOutput: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Logger = nil
			JSONOutput = false

			require.NoError(t, Initialize(tt.jsonOutput, VerbosityInfo))
			require.NotNil(t, Logger)
			assert.Equal(t, tt.jsonOutput, JSONOutput)

			Logger = zap.NewNop().Sugar()
		})
	}
}

func TestInitializeJSONWritesStructuredEntries(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, initialize(&buf, true, VerbosityInfo))
	t.Cleanup(func() { Logger = zap.NewNop().Sugar() })

	Logger.Infow("Report written", FieldRegions, 2, FieldOutput, "output/demo/network_map.html")
	Cleanup()

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Report written", entry["msg"])
	assert.EqualValues(t, 2, entry[FieldRegions])
	assert.Equal(t, "output/demo/network_map.html", entry[FieldOutput])
}

func TestVerbosityFiltersLevels(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, initialize(&buf, false, VerbosityUser))
	t.Cleanup(func() { Logger = zap.NewNop().Sugar() })

	Logger.Infow("hidden at default verbosity")
	Logger.Warnw("shown at default verbosity")

	out := stripANSI(buf.String())
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "shown at default verbosity")
}

func TestVerbosityToLevel(t *testing.T) {
	assert.Equal(t, zapcore.WarnLevel, VerbosityToLevel(0))
	assert.Equal(t, zapcore.InfoLevel, VerbosityToLevel(1))
	assert.Equal(t, zapcore.DebugLevel, VerbosityToLevel(2))
	assert.Equal(t, zapcore.DebugLevel, VerbosityToLevel(7))
	assert.Equal(t, zapcore.WarnLevel, VerbosityToLevel(-1))
}

func TestShouldOutput(t *testing.T) {
	assert.True(t, ShouldOutput(VerbosityUser, OutputResults))
	assert.False(t, ShouldOutput(VerbosityUser, OutputStages))
	assert.True(t, ShouldOutput(VerbosityInfo, OutputStages))
	assert.False(t, ShouldOutput(VerbosityInfo, OutputTiming))
	assert.True(t, ShouldOutput(VerbosityTrace, OutputDataDump))
	assert.False(t, ShouldOutput(VerbosityDebug, OutputCategory(99)))
}

// The minimal encoder must never silently discard a field, whether it was
// passed with the entry or attached earlier through With().
func TestMinimalEncoderKeepsAllFields(t *testing.T) {
	encoder := newMinimalEncoder(false)
	encoder.AddString(FieldRunID, "abc-123")

	entry := zapcore.Entry{
		Level:      zapcore.WarnLevel,
		Time:       time.Date(2024, 1, 1, 13, 4, 35, 0, time.UTC),
		LoggerName: "report",
		Message:    "Timestep fell back to default",
	}
	fields := []zapcore.Field{
		zap.Int(FieldSnapshots, 1),
		zap.Float64(FieldTimestep, 1.0),
		zap.String(FieldError, "need at least 2 snapshots"),
		zap.Bool("fallback", true),
	}

	buf, err := encoder.EncodeEntry(entry, fields)
	require.NoError(t, err)
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "13:04:35  WARN  report  Timestep fell back to default"))
	for _, want := range []string{
		"snapshots=1",
		"timestep_hours=1",
		"error=need at least 2 snapshots",
		"fallback=true",
		"run_id=abc-123",
	} {
		assert.Contains(t, out, want)
	}
	assert.Less(t, strings.Index(out, "fallback=true"), strings.Index(out, "run_id=abc-123"),
		"entry fields come before context fields")
}

func TestMinimalEncoderCloneIsolatesContext(t *testing.T) {
	parent := newMinimalEncoder(false)
	parent.AddString(FieldProject, "demo")

	child := parent.Clone().(*minimalEncoder)
	child.AddInt(FieldRegions, 3)

	assert.NotContains(t, parent.Fields, FieldRegions)
	assert.Equal(t, "demo", child.Fields[FieldProject])
}

func TestLoggerFromContext(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, initialize(&buf, false, VerbosityInfo))
	t.Cleanup(func() { Logger = zap.NewNop().Sugar() })

	ctx := WithRunID(context.Background(), "run-1")
	ctx = WithProject(ctx, "demo")

	LoggerFromContext(ctx).Infow("Pipeline started")

	out := stripANSI(buf.String())
	assert.Contains(t, out, "run_id=run-1")
	assert.Contains(t, out, "project=demo")
	assert.Same(t, Logger, LoggerFromContext(context.Background()))
}
