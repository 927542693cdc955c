package config

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teranos/gridmap/errors"
)

func writeProject(t *testing.T, base, id, body string) string {
	t.Helper()
	dir := filepath.Join(base, ProjectDirName, id)
	require.NoError(t, os.MkdirAll(dir, DefaultDirPermissions))
	path := filepath.Join(dir, ProjectFileName)
	require.NoError(t, os.WriteFile(path, []byte(body), DefaultFilePermissions))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	// Isolated viper instance, no settings file
	v := viper.New()
	SetDefaults(v)

	settings, err := LoadWithViper(v)
	require.NoError(t, err)

	assert.True(t, filepath.IsAbs(settings.BaseDir))
	assert.Equal(t, "output", settings.OutputDir)
	assert.Equal(t, ".cache", settings.CacheDir)
	assert.Equal(t, DefaultTiles, settings.Map.Tiles)
	assert.Equal(t, DefaultZoomStart, settings.Map.ZoomStart)
	assert.Equal(t, DefaultFallbackLat, settings.Map.FallbackLat)
	assert.Equal(t, DefaultFallbackLon, settings.Map.FallbackLon)
	assert.Equal(t, DefaultFetchTimeoutSeconds, settings.Fetch.TimeoutSeconds)
	assert.False(t, settings.Fetch.BlockPrivate)
	assert.False(t, settings.Log.JSON)
	require.NoError(t, settings.Validate())
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, SettingsFileName)
	require.NoError(t, os.WriteFile(path, []byte(`
base_dir = "/srv/reports"
output_dir = "public"

[map]
tiles = "openstreetmap"
zoom_start = 5
`), DefaultFilePermissions))

	settings, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/reports", settings.BaseDir)
	assert.Equal(t, "public", settings.OutputDir)
	assert.Equal(t, "openstreetmap", settings.Map.Tiles)
	assert.Equal(t, 5, settings.Map.ZoomStart)
	assert.Equal(t, DefaultFallbackLat, settings.Map.FallbackLat, "unset keys keep defaults")
}

func TestLoadFromFile_EnvOverride(t *testing.T) {
	t.Setenv("GRIDMAP_MAP_ZOOM_START", "8")
	t.Setenv("GRIDMAP_OUTPUT_DIR", "site")

	v, err := NewViper("")
	require.NoError(t, err)
	settings, err := LoadWithViper(v)
	require.NoError(t, err)

	assert.Equal(t, 8, settings.Map.ZoomStart)
	assert.Equal(t, "site", settings.OutputDir)
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.toml")
}

func TestSettingsPaths(t *testing.T) {
	settings := &Settings{BaseDir: "/base", OutputDir: "output", CacheDir: "/var/cache/gridmap"}

	assert.Equal(t, "/base/output/demo/network_map.html", settings.OutputPath("demo"))
	assert.Equal(t, "/var/cache/gridmap/demo", settings.CachePath("demo"))
	assert.Equal(t, "/abs/model.sqlite", settings.ResolvePath("/abs/model.sqlite"))
	assert.Equal(t, "/base/rel/model.sqlite", settings.ResolvePath("rel/model.sqlite"))
}

func TestValidate(t *testing.T) {
	valid := func() Settings {
		return Settings{
			BaseDir:   "/base",
			OutputDir: "output",
			CacheDir:  ".cache",
			Map: MapSettings{
				Tiles:       DefaultTiles,
				ZoomStart:   DefaultZoomStart,
				FallbackLat: DefaultFallbackLat,
				FallbackLon: DefaultFallbackLon,
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr string
	}{
		{"defaults are valid", func(*Settings) {}, ""},
		{"empty output dir", func(s *Settings) { s.OutputDir = " " }, "output_dir"},
		{"empty cache dir", func(s *Settings) { s.CacheDir = "" }, "cache_dir"},
		{"unknown tiles", func(s *Settings) { s.Map.Tiles = "stamen" }, "map.tiles"},
		{"zoom too large", func(s *Settings) { s.Map.ZoomStart = 19 }, "map.zoom_start"},
		{"negative zoom", func(s *Settings) { s.Map.ZoomStart = -1 }, "map.zoom_start"},
		{"latitude out of range", func(s *Settings) { s.Map.FallbackLat = 91 }, "map.fallback_lat"},
		{"longitude out of range", func(s *Settings) { s.Map.FallbackLon = -181 }, "map.fallback_lon"},
		{"negative fetch timeout", func(s *Settings) { s.Fetch.TimeoutSeconds = -1 }, "fetch.timeout_seconds"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			tt.mutate(&s)
			err := s.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrInvalidConfig))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateReportID(t *testing.T) {
	assert.NoError(t, ValidateReportID("load_shedding_update"))
	assert.Error(t, ValidateReportID(""))
	assert.Error(t, ValidateReportID("../etc"))
	assert.Error(t, ValidateReportID("a/b"))
	assert.Error(t, ValidateReportID(".."))
}

func TestLoadProject(t *testing.T) {
	base := t.TempDir()
	path := writeProject(t, base, "demo", "project: Demo run\nnetwork_file: network_files/demo.sqlite\n")

	project, err := LoadProject(base, "demo")
	require.NoError(t, err)

	assert.Equal(t, "demo", project.ID)
	assert.Equal(t, "Demo run", project.Name)
	assert.Equal(t, "network_files/demo.sqlite", project.NetworkFile)
	assert.Equal(t, path, project.ConfigPath)
	assert.Equal(t, filepath.Join(base, "network_files/demo.sqlite"), project.NetworkPath(base))
	assert.NoError(t, project.Validate())
}

func TestLoadProject_NameDefaultsToID(t *testing.T) {
	base := t.TempDir()
	writeProject(t, base, "demo", "network_file: /data/model.sqlite\n")

	project, err := LoadProject(base, "demo")
	require.NoError(t, err)
	assert.Equal(t, "demo", project.Name)
	assert.Equal(t, "/data/model.sqlite", project.NetworkPath(base))
}

func TestLoadProject_MissingFile(t *testing.T) {
	base := t.TempDir()

	_, err := LoadProject(base, "ghost")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrConfigNotFound))
	assert.Contains(t, err.Error(), ProjectConfigPath(base, "ghost"))
	assert.Contains(t, errors.FlattenHints(err), "config/ghost/onepager.yaml")
}

func TestLoadProject_MissingKey(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty document", ""},
		{"other keys only", "project: demo\nscenarios: {}\n"},
		{"blank value", "network_file: '   '\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := t.TempDir()
			path := writeProject(t, base, "demo", tt.body)

			_, err := LoadProject(base, "demo")
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrMissingKey))
			assert.Contains(t, err.Error(), path)
		})
	}
}

func TestLoadProject_InvalidYAML(t *testing.T) {
	base := t.TempDir()
	writeProject(t, base, "demo", "network_file: [unclosed\n")

	_, err := LoadProject(base, "demo")
	require.Error(t, err)
	assert.False(t, errors.IsConfigError(err))
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestWatcher_FiresOnceForBurst(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ProjectFileName)
	require.NoError(t, os.WriteFile(path, []byte("network_file: a\n"), DefaultFilePermissions))

	w, err := NewWatcher([]string{path}, 50*time.Millisecond)
	require.NoError(t, err)

	var calls atomic.Int32
	w.OnChange(func() error {
		calls.Add(1)
		return nil
	})
	w.Start()
	t.Cleanup(func() { w.Stop() })

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte("network_file: b\n"), DefaultFilePermissions))
	}

	assert.Eventually(t, func() bool { return calls.Load() >= 1 }, 3*time.Second, 20*time.Millisecond)
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestWatcher_SurvivesAtomicSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ProjectFileName)
	require.NoError(t, os.WriteFile(path, []byte("network_file: a\n"), DefaultFilePermissions))

	w, err := NewWatcher([]string{path}, 50*time.Millisecond)
	require.NoError(t, err)

	var calls atomic.Int32
	w.OnChange(func() error {
		calls.Add(1)
		return nil
	})
	w.Start()
	t.Cleanup(func() { w.Stop() })

	// Editors write a temp file and rename it over the original, replacing the inode
	save := func(body string) {
		tmp := filepath.Join(dir, "onepager.yaml.tmp")
		require.NoError(t, os.WriteFile(tmp, []byte(body), DefaultFilePermissions))
		require.NoError(t, os.Rename(tmp, path))
	}

	save("network_file: b\n")
	assert.Eventually(t, func() bool { return calls.Load() == 1 }, 3*time.Second, 20*time.Millisecond)

	save("network_file: c\n")
	assert.Eventually(t, func() bool { return calls.Load() == 2 }, 3*time.Second, 20*time.Millisecond)
}

func TestWatcher_IgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ProjectFileName)
	require.NoError(t, os.WriteFile(path, []byte("network_file: a\n"), DefaultFilePermissions))

	w, err := NewWatcher([]string{path}, 20*time.Millisecond)
	require.NoError(t, err)

	var calls atomic.Int32
	w.OnChange(func() error {
		calls.Add(1)
		return nil
	})
	w.Start()
	t.Cleanup(func() { w.Stop() })

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("x"), DefaultFilePermissions))
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}

func TestWatcher_DirectoryTarget(t *testing.T) {
	dir := t.TempDir()

	w, err := NewWatcher([]string{dir}, 20*time.Millisecond)
	require.NoError(t, err)

	var calls atomic.Int32
	w.OnChange(func() error {
		calls.Add(1)
		return nil
	})
	w.Start()
	t.Cleanup(func() { w.Stop() })

	require.NoError(t, os.WriteFile(filepath.Join(dir, "buses.csv"), []byte("name,x,y\n"), DefaultFilePermissions))
	assert.Eventually(t, func() bool { return calls.Load() >= 1 }, 3*time.Second, 20*time.Millisecond)
}

func TestNewWatcher_MissingPath(t *testing.T) {
	_, err := NewWatcher([]string{filepath.Join(t.TempDir(), "missing.yaml")}, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.yaml")
}
