package mapview

import (
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/teranos/gridmap/errors"
)

// openCommand builds the platform command that opens a file in the default
// browser. Replaced in tests.
var openCommand = func(target string) (*exec.Cmd, error) {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", target), nil
	case "linux", "freebsd", "openbsd":
		return exec.Command("xdg-open", target), nil
	case "windows":
		return exec.Command("cmd", "/c", "start", "", target), nil
	default:
		return nil, errors.Newf("no browser opener for %s", runtime.GOOS)
	}
}

// Preview opens a written document in the default browser without waiting
// for it. Callers treat failure as a warning only.
func Preview(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrapf(err, "failed to resolve %s", path)
	}

	cmd, err := openCommand("file://" + filepath.ToSlash(abs))
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return errors.Wrapf(err, "failed to open browser for %s", abs)
	}
	// Reap the opener process in the background
	go func() { _ = cmd.Wait() }()
	return nil
}
