package pipeline

import (
	"encoding/json"
	"io"
	"os"
	"sort"
	"time"

	"github.com/pterm/pterm"
	"github.com/teranos/gridmap/logger"
)

// ProgressEmitter receives stage announcements from a run.
//
// Implementations include:
// - CLIEmitter: Pretty-printed terminal output using pterm
// - JSONEmitter: Structured JSON events, one per line
// - NopEmitter: Discards everything (tests, watch rebuilds in JSON log mode)
type ProgressEmitter interface {
	EmitStage(stage string, message string)
	EmitInfo(message string)
	EmitComplete(summary map[string]interface{})
	EmitError(stage string, err error)
}

// Stage names reported by Run
const (
	StageConfig  = "config"
	StageFetch   = "fetch"
	StageNetwork = "network"
	StageReport  = "report"
	StageRender  = "render"
)

// CLIEmitter outputs pretty-printed progress to terminal using pterm
type CLIEmitter struct {
	verbosity int
}

// NewCLIEmitter creates a CLI progress emitter for terminal output
func NewCLIEmitter(verbosity int) *CLIEmitter {
	return &CLIEmitter{verbosity: verbosity}
}

// EmitStage prints a stage announcement to terminal
func (e *CLIEmitter) EmitStage(stage string, message string) {
	pterm.Printf("%s %s\n", pterm.LightCyan(stage+":"), message)
}

// EmitInfo prints informational message
func (e *CLIEmitter) EmitInfo(message string) {
	if logger.ShouldOutput(e.verbosity, logger.OutputStages) {
		pterm.Info.Println(message)
	}
}

// EmitComplete prints completion summary
func (e *CLIEmitter) EmitComplete(summary map[string]interface{}) {
	if path, ok := summary["output"].(string); ok && path != "" {
		pterm.Success.Printf("Saved map to: %s\n", path)
	} else {
		pterm.Success.Println("Report built")
	}
	if logger.ShouldOutput(e.verbosity, logger.OutputSummary) {
		for _, key := range sortedKeys(summary) {
			pterm.Printf("  %s: %v\n", key, summary[key])
		}
	}
}

// EmitError prints the failing stage. The error itself is reported by the
// command's caller, so only verbose runs print it here.
func (e *CLIEmitter) EmitError(stage string, err error) {
	if logger.ShouldOutput(e.verbosity, logger.OutputStages) {
		pterm.Error.Printf("Error in %s: %v\n", stage, err)
	}
}

// ProgressEvent represents a structured JSON progress event
type ProgressEvent struct {
	Type      string                 `json:"type"`      // "stage", "info", "complete", "error"
	Timestamp time.Time              `json:"timestamp"` // When this event occurred
	Data      map[string]interface{} `json:"data"`      // Event-specific data
}

// JSONEmitter outputs structured JSON events
type JSONEmitter struct {
	encoder *json.Encoder
}

// NewJSONEmitter creates a JSON progress emitter writing to w, stdout when nil
func NewJSONEmitter(w io.Writer) *JSONEmitter {
	if w == nil {
		w = os.Stdout
	}
	return &JSONEmitter{encoder: json.NewEncoder(w)}
}

func (e *JSONEmitter) emit(eventType string, data map[string]interface{}) {
	_ = e.encoder.Encode(ProgressEvent{
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
	})
}

// EmitStage emits a stage event as JSON
func (e *JSONEmitter) EmitStage(stage string, message string) {
	e.emit("stage", map[string]interface{}{"stage": stage, "message": message})
}

// EmitInfo emits an info event as JSON
func (e *JSONEmitter) EmitInfo(message string) {
	e.emit("info", map[string]interface{}{"message": message})
}

// EmitComplete emits a completion event as JSON
func (e *JSONEmitter) EmitComplete(summary map[string]interface{}) {
	e.emit("complete", summary)
}

// EmitError emits an error event as JSON
func (e *JSONEmitter) EmitError(stage string, err error) {
	e.emit("error", map[string]interface{}{"stage": stage, "error": err.Error()})
}

// NopEmitter discards all progress
type NopEmitter struct{}

func (NopEmitter) EmitStage(string, string)            {}
func (NopEmitter) EmitInfo(string)                     {}
func (NopEmitter) EmitComplete(map[string]interface{}) {}
func (NopEmitter) EmitError(string, error)             {}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
