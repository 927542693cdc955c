package network

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"

	"github.com/teranos/gridmap/errors"
	"github.com/teranos/gridmap/logger"
	"go.uber.org/zap"
)

// CSVReader reads a network exported as a folder of CSV files,
// one file per table (buses.csv, loads-p_set.csv, ...)
type CSVReader struct {
	dir    string
	logger *zap.SugaredLogger
}

// NewCSVReader creates a reader for the given export folder
func NewCSVReader(dir string) *CSVReader {
	return &CSVReader{
		dir:    dir,
		logger: logger.ComponentLogger("network.csv"),
	}
}

// Source returns the folder being read
func (r *CSVReader) Source() string {
	return r.dir
}

// Read loads every known table. Absent files are treated as empty tables.
func (r *CSVReader) Read(ctx context.Context) (*Network, error) {
	frames := make(Frames, len(Tables))
	for _, table := range Tables {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		path := filepath.Join(r.dir, table+".csv")
		frame, err := readCSVFrame(path, table)
		if os.IsNotExist(err) {
			r.logger.Debugw("Table file absent", logger.FieldTable, table, logger.FieldSource, path)
			continue
		}
		if err != nil {
			return nil, err
		}

		r.logger.Debugw("Read table",
			logger.FieldTable, table,
			logger.FieldCount, frame.Len())
		frames[table] = frame
	}
	return FromFrames(frames), nil
}

// readCSVFrame reads one file fully and closes it before returning
func readCSVFrame(path, table string) (*Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return &Frame{Name: table}, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read header of %s", path)
	}

	frame := &Frame{Name: table, Columns: header}
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read %s", path)
		}
		frame.Rows = append(frame.Rows, record)
	}
	return frame, nil
}
