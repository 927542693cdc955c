// Package mapview renders a report as a Leaflet map document.
package mapview

import (
	"fmt"
	"html"
	"strings"

	"github.com/teranos/gridmap/report"
)

// Map is the complete description of the document, serialized into the page
// and drawn by the page script.
type Map struct {
	Title   string         `json:"-"`
	Center  [2]float64     `json:"center"` // latitude, longitude
	Zoom    int            `json:"zoom"`
	Tiles   TileLayer      `json:"tiles"`
	Lines   []PolyLine     `json:"lines"`
	Markers []CircleMarker `json:"markers"`

	// Assets, when set, are inlined instead of loading Leaflet from the CDN
	Assets *Assets `json:"-"`
}

// TileLayer is a base map layer
type TileLayer struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Attribution string `json:"attribution"`
	Subdomains  string `json:"subdomains,omitempty"`
	MaxZoom     int    `json:"max_zoom"`
}

// PolyLine is a drawn transmission edge
type PolyLine struct {
	Locations [2][2]float64 `json:"locations"` // [[lat0, lon0], [lat1, lon1]]
	Color     string        `json:"color"`
	Weight    int           `json:"weight"`
	Opacity   float64       `json:"opacity"`
	Tooltip   string        `json:"tooltip"`
}

// CircleMarker is a drawn region
type CircleMarker struct {
	ID            string     `json:"id"`
	Location      [2]float64 `json:"location"` // latitude, longitude
	Radius        int        `json:"radius"`
	Color         string     `json:"color"`
	Fill          bool       `json:"fill"`
	FillColor     string     `json:"fill_color"`
	Popup         string     `json:"popup"`
	PopupMaxWidth int        `json:"popup_max_width"`
	Tooltip       string     `json:"tooltip"`
}

// EdgeStyle is the stroke of one transmission element kind
type EdgeStyle struct {
	Color   string
	Weight  int
	Opacity float64
}

// Edge styles per kind
var EdgeStyles = map[report.Kind]EdgeStyle{
	report.KindLine: {Color: "gray", Weight: 2, Opacity: 0.8},
	report.KindLink: {Color: "orange", Weight: 2, Opacity: 0.9},
}

// Region marker style
const (
	MarkerColor    = "red"
	MarkerRadius   = 5
	PopupMaxWidth  = 350
	DefaultZoom    = 6
	DefaultTileSet = "cartodbpositron"
)

// TileLayers are the supported base layers by name
var TileLayers = map[string]TileLayer{
	"cartodbpositron": {
		Name:        "cartodbpositron",
		URL:         "https://{s}.basemaps.cartocdn.com/light_all/{z}/{x}/{y}{r}.png",
		Attribution: `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors &copy; <a href="https://carto.com/attributions">CARTO</a>`,
		Subdomains:  "abcd",
		MaxZoom:     20,
	},
	"openstreetmap": {
		Name:        "openstreetmap",
		URL:         "https://tile.openstreetmap.org/{z}/{x}/{y}.png",
		Attribution: `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors`,
		MaxZoom:     19,
	},
}

// Options configures map construction
type Options struct {
	Title  string
	Tiles  string
	Zoom   int
	Assets *Assets
}

// New lays out a report as a map. Edges are drawn before markers so markers
// stay clickable on top.
func New(rep *report.Report, opts Options) *Map {
	tiles, ok := TileLayers[opts.Tiles]
	if !ok {
		tiles = TileLayers[DefaultTileSet]
	}
	zoom := opts.Zoom
	if zoom <= 0 {
		zoom = DefaultZoom
	}

	m := &Map{
		Title:   opts.Title,
		Center:  [2]float64{rep.CenterLat, rep.CenterLon},
		Zoom:    zoom,
		Tiles:   tiles,
		Lines:   make([]PolyLine, 0, len(rep.Edges)),
		Markers: make([]CircleMarker, 0, len(rep.Regions)),
		Assets:  opts.Assets,
	}

	coords := make(map[string][2]float64, len(rep.Regions))
	for _, r := range rep.Regions {
		coords[r.ID] = [2]float64{r.Y, r.X}
	}

	for _, e := range rep.Edges {
		style := EdgeStyles[e.Kind]
		m.Lines = append(m.Lines, PolyLine{
			Locations: [2][2]float64{coords[e.Bus0], coords[e.Bus1]},
			Color:     style.Color,
			Weight:    style.Weight,
			Opacity:   style.Opacity,
			Tooltip:   EdgeTooltip(e),
		})
	}

	for _, r := range rep.Regions {
		m.Markers = append(m.Markers, CircleMarker{
			ID:            r.ID,
			Location:      [2]float64{r.Y, r.X},
			Radius:        MarkerRadius,
			Color:         MarkerColor,
			Fill:          true,
			FillColor:     MarkerColor,
			Popup:         RegionPopup(r),
			PopupMaxWidth: PopupMaxWidth,
			Tooltip:       RegionTooltip(r),
		})
	}

	return m
}

// EdgeTooltip is the hover text of a transmission edge
func EdgeTooltip(e report.Edge) string {
	return strings.Join([]string{
		e.Kind.Title() + " " + html.EscapeString(e.Name),
		"Bus0: " + html.EscapeString(e.Bus0),
		"Bus1: " + html.EscapeString(e.Bus1),
		"Transfer capacity: " + e.Capacity.Label(),
	}, "<br>")
}

// RegionTooltip is the hover text of a region marker
func RegionTooltip(r report.Region) string {
	return fmt.Sprintf("%s:<br>Load: %.6f TWh<br>Total installed capacities: %.6f GW",
		html.EscapeString(r.ID), r.Energy, r.Capacity)
}

// RegionPopup is the click panel of a region marker
func RegionPopup(r report.Region) string {
	parts := []string{
		"<b>" + html.EscapeString(r.ID) + "</b>",
		fmt.Sprintf("Coordinates: %.4f, %.4f", r.X, r.Y),
		fmt.Sprintf("Total demand: %.6f TWh", r.Energy),
		fmt.Sprintf("Total installed capacity: %.6f GW", r.Capacity),
		"<hr>",
		"<b>Installed capacities by type (GW)</b>",
	}

	parts = append(parts, "<u>Generators</u>")
	parts = append(parts, techLines(r.SortedGeneration())...)
	parts = append(parts, "<u>Storage</u>")
	parts = append(parts, techLines(r.SortedStorage())...)

	return strings.Join(parts, "<br>")
}

func techLines(rows []report.TechCapacity) []string {
	if len(rows) == 0 {
		return []string{"none"}
	}
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, fmt.Sprintf("%s: %.6f GW", html.EscapeString(row.Label), row.GW))
	}
	return out
}
