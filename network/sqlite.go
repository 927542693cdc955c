package network

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/teranos/gridmap/errors"
	"github.com/teranos/gridmap/logger"
	"go.uber.org/zap"
)

// sqlTableNames maps table names to the SQLite layout, which cannot use '-'
var sqlTableNames = map[string]string{
	TableLoadsPSet: "loads_t_p_set",
}

// SQLTableName returns the SQLite table a network table is stored in
func SQLTableName(table string) string {
	if name, ok := sqlTableNames[table]; ok {
		return name
	}
	return table
}

// SQLiteReader reads a network stored as one SQLite table per network table
type SQLiteReader struct {
	path   string
	logger *zap.SugaredLogger
}

// NewSQLiteReader creates a reader for the database file at path
func NewSQLiteReader(path string) *SQLiteReader {
	return &SQLiteReader{
		path:   path,
		logger: logger.ComponentLogger("network.sqlite"),
	}
}

// Source returns the database file being read
func (r *SQLiteReader) Source() string {
	return r.path
}

// Read opens the database read-only, loads every table and closes it
func (r *SQLiteReader) Read(ctx context.Context) (*Network, error) {
	dsn := fmt.Sprintf("file:%s?mode=ro", r.path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", r.path)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", r.path)
	}

	return ReadDB(ctx, db)
}

// ReadDB loads a network from an open database. Tables that do not exist are
// treated as empty.
func ReadDB(ctx context.Context, db *sql.DB) (*Network, error) {
	log := logger.ComponentLogger("network.sqlite")

	existing, err := listTables(ctx, db)
	if err != nil {
		return nil, err
	}

	frames := make(Frames, len(Tables))
	for _, table := range Tables {
		name := SQLTableName(table)
		if !existing[name] {
			log.Debugw("Table absent", logger.FieldTable, name)
			continue
		}

		frame, err := readSQLFrame(ctx, db, table, name)
		if err != nil {
			return nil, err
		}
		log.Debugw("Read table",
			logger.FieldTable, name,
			logger.FieldCount, frame.Len())
		frames[table] = frame
	}
	return FromFrames(frames), nil
}

func listTables(ctx context.Context, db *sql.DB) (map[string]bool, error) {
	rows, err := db.QueryContext(ctx, "SELECT name FROM sqlite_master WHERE type='table'")
	if err != nil {
		return nil, errors.Wrap(err, "failed to list tables")
	}
	defer rows.Close()

	tables := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, errors.Wrap(err, "failed to scan table name")
		}
		tables[name] = true
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to list tables")
	}
	return tables, nil
}

func readSQLFrame(ctx context.Context, db *sql.DB, table, name string) (*Frame, error) {
	query := fmt.Sprintf(`SELECT * FROM "%s"`, strings.ReplaceAll(name, `"`, `""`))
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to query table %s", name)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read columns of %s", name)
	}

	frame := &Frame{Name: table, Columns: columns}
	values := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, errors.Wrapf(err, "failed to scan row of %s", name)
		}
		record := make([]string, len(columns))
		for i, v := range values {
			record[i] = cellString(v)
		}
		frame.Rows = append(frame.Rows, record)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to read table %s", name)
	}
	return frame, nil
}

// cellString renders a scanned SQLite value the way a CSV export would
func cellString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(val)
	case string:
		return val
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case time.Time:
		return val.UTC().Format(time.RFC3339Nano)
	default:
		return fmt.Sprint(val)
	}
}
