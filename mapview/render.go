package mapview

import (
	"bytes"
	"embed"
	"html/template"
	"io"
	"os"
	"path/filepath"

	"github.com/teranos/gridmap/config"
	"github.com/teranos/gridmap/errors"
	"github.com/teranos/gridmap/version"
)

// leafletBase is the CDN folder of the Leaflet release the document loads
const leafletBase = "https://cdn.jsdelivr.net/npm/leaflet@" + version.LeafletVersion + "/dist/"

//go:embed templates/map.html.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/map.html.tmpl"))

type pageData struct {
	Title      string
	LeafletCSS string
	LeafletJS  string
	InlineCSS  template.CSS
	InlineJS   template.JS
	Map        *Map
}

// Leaflet dist files read by LoadAssets
const (
	LeafletCSSFile = "leaflet.css"
	LeafletJSFile  = "leaflet.js"
)

// Assets is a local Leaflet distribution inlined into the document, so the
// map opens without network access (tiles aside)
type Assets struct {
	CSS string
	JS  string
}

// LoadAssets reads leaflet.css and leaflet.js from a Leaflet dist folder
func LoadAssets(dir string) (*Assets, error) {
	css, err := os.ReadFile(filepath.Join(dir, LeafletCSSFile))
	if err != nil {
		return nil, errors.WithHintf(
			errors.Wrapf(err, "failed to read Leaflet stylesheet from %s", dir),
			"map.leaflet_dir must hold the leaflet@%s dist files (%s, %s)",
			version.LeafletVersion, LeafletCSSFile, LeafletJSFile,
		)
	}
	js, err := os.ReadFile(filepath.Join(dir, LeafletJSFile))
	if err != nil {
		return nil, errors.WithHintf(
			errors.Wrapf(err, "failed to read Leaflet script from %s", dir),
			"map.leaflet_dir must hold the leaflet@%s dist files (%s, %s)",
			version.LeafletVersion, LeafletCSSFile, LeafletJSFile,
		)
	}
	return &Assets{CSS: string(css), JS: string(js)}, nil
}

// Render writes the map document to w. Output is byte-identical for
// identical maps.
func (m *Map) Render(w io.Writer) error {
	data := pageData{
		Title:      m.Title,
		LeafletCSS: leafletBase + "leaflet.css",
		LeafletJS:  leafletBase + "leaflet.js",
		Map:        m,
	}
	if m.Assets != nil {
		// Local dist files are trusted input, written verbatim
		data.InlineCSS = template.CSS(m.Assets.CSS)
		data.InlineJS = template.JS(m.Assets.JS)
	}
	if err := pageTemplate.ExecuteTemplate(w, "map.html.tmpl", data); err != nil {
		return errors.Wrap(err, "failed to render map document")
	}
	return nil
}

// Save renders the document to path, creating parent directories as needed.
// The file is only replaced once rendering succeeded.
func (m *Map) Save(path string) error {
	var buf bytes.Buffer
	if err := m.Render(&buf); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), config.DefaultDirPermissions); err != nil {
		return errors.Wrapf(err, "failed to create output directory %s", filepath.Dir(path))
	}
	if err := os.WriteFile(path, buf.Bytes(), config.DefaultFilePermissions); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}
