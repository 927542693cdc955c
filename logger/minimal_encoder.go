package logger

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

const (
	colorReset = "\x1b[0m"
	colorBold  = "\x1b[1m"
	colorTime  = "\x1b[38;5;108m"
	colorName  = "\x1b[38;5;208m"
	colorKey   = "\x1b[38;5;245m"
	colorWarn  = "\x1b[38;5;214m"
	colorError = "\x1b[38;5;167m"
)

var bufferPool = buffer.NewPool()

// minimalEncoder implements a calm, compact console encoder.
// Format: "13:04:35  report  Regions selected  regions=2 run_id=..."
//
// Context fields added through With() land in the embedded map encoder and are
// printed (sorted by key) after the entry's own fields, so nothing is dropped.
type minimalEncoder struct {
	*zapcore.MapObjectEncoder
	color bool
}

func newMinimalEncoder(color bool) *minimalEncoder {
	return &minimalEncoder{
		MapObjectEncoder: zapcore.NewMapObjectEncoder(),
		color:            color,
	}
}

func (enc *minimalEncoder) Clone() zapcore.Encoder {
	clone := newMinimalEncoder(enc.color)
	for k, v := range enc.Fields {
		clone.Fields[k] = v
	}
	return clone
}

func (enc *minimalEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	final := bufferPool.Get()

	final.AppendString(enc.paint(colorTime, ent.Time.Format("15:04:05")))

	// Level: only shown when it is not INFO
	if ent.Level != zapcore.InfoLevel {
		final.AppendString("  ")
		final.AppendString(enc.levelString(ent.Level))
	}

	if ent.LoggerName != "" {
		final.AppendString("  ")
		final.AppendString(enc.paint(colorName, ent.LoggerName))
	}

	final.AppendString("  ")
	final.AppendString(ent.Message)

	if pairs := enc.fieldPairs(fields); len(pairs) > 0 {
		final.AppendString("  ")
		final.AppendString(strings.Join(pairs, " "))
	}

	final.AppendString("\n")
	return final, nil
}

// fieldPairs renders entry fields in call order followed by context fields sorted by key
func (enc *minimalEncoder) fieldPairs(fields []zapcore.Field) []string {
	entry := zapcore.NewMapObjectEncoder()
	var order []string
	for _, f := range fields {
		if f.Type == zapcore.SkipType {
			continue
		}
		f.AddTo(entry)
		order = append(order, f.Key)
	}

	pairs := make([]string, 0, len(order)+len(enc.Fields))
	seen := make(map[string]bool, len(order))
	for _, key := range order {
		if seen[key] {
			continue
		}
		seen[key] = true
		pairs = append(pairs, enc.pair(key, entry.Fields[key]))
	}

	contextKeys := make([]string, 0, len(enc.Fields))
	for key := range enc.Fields {
		if !seen[key] {
			contextKeys = append(contextKeys, key)
		}
	}
	sort.Strings(contextKeys)
	for _, key := range contextKeys {
		pairs = append(pairs, enc.pair(key, enc.Fields[key]))
	}
	return pairs
}

func (enc *minimalEncoder) pair(key string, value interface{}) string {
	return enc.paint(colorKey, key+"=") + fmt.Sprintf("%v", value)
}

func (enc *minimalEncoder) levelString(level zapcore.Level) string {
	switch level {
	case zapcore.WarnLevel:
		return enc.paint(colorBold+colorWarn, "WARN")
	case zapcore.ErrorLevel, zapcore.DPanicLevel, zapcore.PanicLevel, zapcore.FatalLevel:
		return enc.paint(colorBold+colorError, level.CapitalString())
	default:
		return level.CapitalString()
	}
}

func (enc *minimalEncoder) paint(color, s string) string {
	if !enc.color {
		return s
	}
	return color + s + colorReset
}
