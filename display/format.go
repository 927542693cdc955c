// Package display renders command output in the formats gridmap supports.
package display

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"github.com/teranos/gridmap/errors"
	"gopkg.in/yaml.v3"
)

// Output formats
const (
	FormatTOML = "toml"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

var formats = map[string]func(v interface{}) ([]byte, error){
	FormatTOML: toml.Marshal,
	FormatJSON: MarshalJSON,
	FormatYAML: yaml.Marshal,
}

// Formats lists the supported output formats
func Formats() []string {
	out := make([]string, 0, len(formats))
	for f := range formats {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// MarshalJSON marshals JSON with pretty formatting
func MarshalJSON(v interface{}) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Marshal encodes v in the named format
func Marshal(format string, v interface{}) ([]byte, error) {
	marshal, ok := formats[strings.ToLower(format)]
	if !ok {
		return nil, errors.Newf("unsupported format: %s (supported: %s)", format, strings.Join(Formats(), ", "))
	}
	data, err := marshal(v)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal %s", format)
	}
	return data, nil
}

// Write encodes v in the named format to w. TOML and YAML get a comment header.
func Write(w io.Writer, format, header string, v interface{}) error {
	data, err := Marshal(format, v)
	if err != nil {
		return err
	}
	if header != "" && strings.ToLower(format) != FormatJSON {
		if _, err := fmt.Fprintf(w, "# %s\n", header); err != nil {
			return err
		}
	}
	_, err = w.Write(data)
	return err
}

// ShouldOutputJSON reports whether the command's --json flag is set
func ShouldOutputJSON(cmd *cobra.Command) bool {
	if cmd == nil {
		return false
	}
	if f := cmd.Flags().Lookup("json"); f != nil {
		on, _ := cmd.Flags().GetBool("json")
		return on
	}
	return false
}

// OutputJSON writes v as pretty JSON to w
func OutputJSON(w io.Writer, v interface{}) error {
	data, err := MarshalJSON(v)
	if err != nil {
		return errors.Wrap(err, "failed to marshal JSON")
	}
	_, err = w.Write(data)
	return err
}
