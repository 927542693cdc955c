package config

import (
	"strings"

	"github.com/teranos/gridmap/errors"
)

// KnownTiles lists the base layers the map renderer can draw
var KnownTiles = []string{"cartodbpositron", "openstreetmap"}

// Validate checks that the settings are usable
func (s *Settings) Validate() error {
	if strings.TrimSpace(s.OutputDir) == "" {
		return errors.NewInvalidConfigError("output_dir cannot be empty")
	}
	if strings.TrimSpace(s.CacheDir) == "" {
		return errors.NewInvalidConfigError("cache_dir cannot be empty")
	}

	if !isKnownTiles(s.Map.Tiles) {
		return errors.NewInvalidConfigError("map.tiles must be one of %s, got %q",
			strings.Join(KnownTiles, ", "), s.Map.Tiles)
	}

	// Leaflet zoom levels for raster tiles run 0..18
	if s.Map.ZoomStart < 0 || s.Map.ZoomStart > 18 {
		return errors.NewInvalidConfigError("map.zoom_start must be within 0..18, got %d", s.Map.ZoomStart)
	}
	if s.Map.FallbackLat < -90 || s.Map.FallbackLat > 90 {
		return errors.NewInvalidConfigError("map.fallback_lat must be within -90..90, got %f", s.Map.FallbackLat)
	}
	if s.Map.FallbackLon < -180 || s.Map.FallbackLon > 180 {
		return errors.NewInvalidConfigError("map.fallback_lon must be within -180..180, got %f", s.Map.FallbackLon)
	}

	if s.Fetch.TimeoutSeconds < 0 {
		return errors.NewInvalidConfigError("fetch.timeout_seconds cannot be negative, got %d", s.Fetch.TimeoutSeconds)
	}

	return nil
}

// ValidateReportID checks that a report id names a single directory segment,
// since it is used both under config/ and under the output directory.
func ValidateReportID(id string) error {
	if id == "" {
		return errors.NewInvalidConfigError("report id cannot be empty")
	}
	if strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return errors.NewInvalidConfigError("report id %q must be a single path segment", id)
	}
	return nil
}

// Validate checks the per-report record after loading
func (p *Project) Validate() error {
	if err := ValidateReportID(p.ID); err != nil {
		return err
	}
	if p.NetworkFile == "" {
		return errors.Wrapf(errors.ErrMissingKey, "'network_file' key missing in %s", p.ConfigPath)
	}
	return nil
}

func isKnownTiles(tiles string) bool {
	for _, known := range KnownTiles {
		if tiles == known {
			return true
		}
	}
	return false
}
