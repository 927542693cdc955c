package config

import "github.com/spf13/viper"

// Default map values
const (
	DefaultTiles       = "cartodbpositron"
	DefaultZoomStart   = 6
	DefaultFallbackLat = 49.0
	DefaultFallbackLon = 31.0

	DefaultFetchTimeoutSeconds = 300
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("base_dir", ".")
	v.SetDefault("output_dir", "output")
	v.SetDefault("cache_dir", ".cache")

	v.SetDefault("map.tiles", DefaultTiles)
	v.SetDefault("map.zoom_start", DefaultZoomStart)
	v.SetDefault("map.fallback_lat", DefaultFallbackLat)
	v.SetDefault("map.fallback_lon", DefaultFallbackLon)
	v.SetDefault("map.open", false)
	v.SetDefault("map.leaflet_dir", "")

	v.SetDefault("fetch.timeout_seconds", DefaultFetchTimeoutSeconds)
	v.SetDefault("fetch.block_private", false)

	v.SetDefault("log.json", false)
}
