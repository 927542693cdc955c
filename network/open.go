package network

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/teranos/gridmap/errors"
)

// Reader loads a Network and releases its input before returning
type Reader interface {
	Read(ctx context.Context) (*Network, error)
	Source() string
}

// Format names reported by Open
const (
	FormatCSV    = "csv"
	FormatSQLite = "sqlite"
)

var sqliteExtensions = map[string]bool{
	".db":      true,
	".sqlite":  true,
	".sqlite3": true,
}

// Open picks a reader for path. The path must exist; a missing path wraps
// errors.ErrNetworkNotFound.
func Open(path string) (Reader, string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, "", errors.Wrapf(errors.ErrNetworkNotFound, "network file not found: %s", path)
	}

	if info.IsDir() {
		return NewCSVReader(path), FormatCSV, nil
	}

	if sqliteExtensions[strings.ToLower(filepath.Ext(path))] {
		return NewSQLiteReader(path), FormatSQLite, nil
	}

	return nil, "", errors.WithHint(
		errors.Wrapf(errors.ErrUnsupportedFormat, "cannot read %s", path),
		"export the model as a CSV folder (n.export_to_csv_folder) or a SQLite database (.sqlite)",
	)
}

// LoadPath opens path and reads the network in one step
func LoadPath(ctx context.Context, path string) (*Network, error) {
	reader, _, err := Open(path)
	if err != nil {
		return nil, err
	}
	return reader.Read(ctx)
}
