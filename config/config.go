package config

// Settings represents the gridmap tool configuration.
// Per-report inputs live in Project (config/<report-id>/onepager.yaml).
type Settings struct {
	BaseDir   string        `mapstructure:"base_dir" json:"base_dir" yaml:"base_dir" toml:"base_dir"`       // Root for config/, output/ and relative network paths (default: ".")
	OutputDir string        `mapstructure:"output_dir" json:"output_dir" yaml:"output_dir" toml:"output_dir"` // Output root, relative to BaseDir unless absolute (default: "output")
	CacheDir  string        `mapstructure:"cache_dir" json:"cache_dir" yaml:"cache_dir" toml:"cache_dir"`     // Fetched remote network models (default: ".cache")
	Map       MapSettings   `mapstructure:"map" json:"map" yaml:"map" toml:"map"`
	Fetch     FetchSettings `mapstructure:"fetch" json:"fetch" yaml:"fetch" toml:"fetch"`
	Log       LogSettings   `mapstructure:"log" json:"log" yaml:"log" toml:"log"`
}

// MapSettings configures the rendered map document
type MapSettings struct {
	Tiles       string  `mapstructure:"tiles" json:"tiles" yaml:"tiles" toml:"tiles"`                             // Base layer: cartodbpositron, openstreetmap
	ZoomStart   int     `mapstructure:"zoom_start" json:"zoom_start" yaml:"zoom_start" toml:"zoom_start"`         // Initial zoom level (default: 6)
	FallbackLat float64 `mapstructure:"fallback_lat" json:"fallback_lat" yaml:"fallback_lat" toml:"fallback_lat"` // Center when no region is selected
	FallbackLon float64 `mapstructure:"fallback_lon" json:"fallback_lon" yaml:"fallback_lon" toml:"fallback_lon"` // Center when no region is selected
	Open        bool    `mapstructure:"open" json:"open" yaml:"open" toml:"open"`                                 // Open the written document in a browser
	LeafletDir  string  `mapstructure:"leaflet_dir" json:"leaflet_dir" yaml:"leaflet_dir" toml:"leaflet_dir"`     // Local Leaflet dist folder to inline; empty loads Leaflet from the CDN
}

// FetchSettings configures downloads of remote network_file sources over http(s)
type FetchSettings struct {
	TimeoutSeconds int  `mapstructure:"timeout_seconds" json:"timeout_seconds" yaml:"timeout_seconds" toml:"timeout_seconds"` // 0 disables the timeout (default: 300)
	BlockPrivate   bool `mapstructure:"block_private" json:"block_private" yaml:"block_private" toml:"block_private"`       // Refuse loopback and private network hosts
}

// LogSettings configures log output
type LogSettings struct {
	JSON bool `mapstructure:"json" json:"json" yaml:"json" toml:"json"` // Structured JSON logs instead of console lines
}

// Project is the per-report configuration record read from
// config/<report-id>/onepager.yaml.
type Project struct {
	// ID is the report identifier given on the command line
	ID string `yaml:"-" json:"id" toml:"id"`

	// Name is the optional display name; defaults to ID
	Name string `yaml:"project" json:"project" toml:"project"`

	// NetworkFile is the configured network model location, as written in the file
	NetworkFile string `yaml:"network_file" json:"network_file" toml:"network_file"`

	// ConfigPath is the resolved path of the onepager.yaml that was read
	ConfigPath string `yaml:"-" json:"config_path" toml:"config_path"`
}

// File system constants
const (
	DefaultDirPermissions  = 0755 // Standard directory permissions (rwxr-xr-x)
	DefaultFilePermissions = 0644 // Standard file permissions (rw-r--r--)
)

// File names used by the layout under BaseDir
const (
	SettingsFileName = "gridmap.toml"
	ProjectDirName   = "config"
	ProjectFileName  = "onepager.yaml"
	OutputFileName   = "network_map.html"
)
