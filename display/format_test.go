package display

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string  `json:"name" yaml:"name" toml:"name"`
	Zoom  int     `json:"zoom" yaml:"zoom" toml:"zoom"`
	Ratio float64 `json:"ratio" yaml:"ratio" toml:"ratio"`
}

func TestMarshal(t *testing.T) {
	v := sample{Name: "demo", Zoom: 6, Ratio: 0.5}

	tests := []struct {
		format string
		want   []string
	}{
		{FormatJSON, []string{`"name": "demo"`, `"zoom": 6`}},
		{FormatYAML, []string{"name: demo", "zoom: 6"}},
		{FormatTOML, []string{"name = 'demo'", "zoom = 6"}},
		{"JSON", []string{`"ratio": 0.5`}},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			data, err := Marshal(tt.format, v)
			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, string(data), w)
			}
		})
	}
}

func TestMarshal_Unsupported(t *testing.T) {
	_, err := Marshal("xml", sample{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "json, toml, yaml")
}

func TestWrite_Header(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatYAML, "gridmap settings", sample{Name: "x"}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("# gridmap settings\n")))

	buf.Reset()
	require.NoError(t, Write(&buf, FormatJSON, "gridmap settings", sample{Name: "x"}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("{")), "JSON has no comment header")
}

func TestShouldOutputJSON(t *testing.T) {
	cmd := &cobra.Command{Use: "x"}
	assert.False(t, ShouldOutputJSON(cmd))

	cmd.Flags().Bool("json", false, "")
	assert.False(t, ShouldOutputJSON(cmd))

	require.NoError(t, cmd.Flags().Set("json", "true"))
	assert.True(t, ShouldOutputJSON(cmd))
	assert.False(t, ShouldOutputJSON(nil))
}

func TestOutputJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, OutputJSON(&buf, map[string]int{"b": 2, "a": 1}))
	assert.Equal(t, "{\n  \"a\": 1,\n  \"b\": 2\n}\n", buf.String())
}
