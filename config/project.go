package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/teranos/gridmap/errors"
	"gopkg.in/yaml.v3"
)

// ProjectConfigPath returns <base>/config/<report-id>/onepager.yaml
func ProjectConfigPath(baseDir, reportID string) string {
	return filepath.Join(baseDir, ProjectDirName, reportID, ProjectFileName)
}

// LoadProject reads the per-report configuration record.
//
// It fails with ErrConfigNotFound when the file is absent and with ErrMissingKey
// when network_file is missing or empty; both errors name the resolved path.
func LoadProject(baseDir, reportID string) (*Project, error) {
	path := ProjectConfigPath(baseDir, reportID)

	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return nil, errors.WithHintf(
			errors.Wrapf(errors.ErrConfigNotFound, "config file not found at %s", path),
			"expected path: %s/%s/%s", ProjectDirName, reportID, ProjectFileName,
		)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", path)
	}

	var project Project
	if err := yaml.Unmarshal(data, &project); err != nil {
		return nil, errors.Wrapf(err, "failed to parse config file %s", path)
	}

	project.ID = reportID
	project.ConfigPath = path
	project.Name = strings.TrimSpace(project.Name)
	if project.Name == "" {
		project.Name = reportID
	}
	project.NetworkFile = strings.TrimSpace(project.NetworkFile)

	if project.NetworkFile == "" {
		return nil, errors.WithHint(
			errors.Wrapf(errors.ErrMissingKey, "'network_file' key missing in %s", path),
			"add e.g. network_file: 'network_files/<name>.sqlite'",
		)
	}

	return &project, nil
}

// NetworkPath resolves a local network_file against baseDir unless it is absolute
func (p *Project) NetworkPath(baseDir string) string {
	if filepath.IsAbs(p.NetworkFile) {
		return p.NetworkFile
	}
	return filepath.Join(baseDir, p.NetworkFile)
}
