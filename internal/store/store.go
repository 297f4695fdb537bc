// Package store owns the CSV file that doubles as the batch's durable state.
// Rows are kept as raw maps so columns the pipeline does not know about
// survive every rewrite byte-for-byte.
package store

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"etf-grader/internal/candidate"
)

// managedColumns are appended to the header when missing so a fresh form
// export becomes a valid state file on first load.
var managedColumns = []string{
	candidate.ColStatus,
	candidate.ColGradeEducation,
	candidate.ColGradeCommunity,
	candidate.ColGradeHack,
	candidate.ColGradeResearch,
	candidate.ColGradeStartup,
	candidate.ColTrustScore,
	candidate.ColEuropeReason,
	candidate.ColChartPath,
	candidate.ColErrorMessage,
	candidate.ColProcessedAt,
}

// Table is the in-memory view of the CSV. Mutations touch memory only;
// Persist writes the whole file back.
type Table struct {
	path   string
	header []string
	rows   []map[string]string
	logger *zap.Logger
}

// Load reads the CSV, normalizes the header with the managed columns and
// defaults every blank status to pending.
func Load(path string, logger *zap.Logger) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, eris.Wrapf(err, "parse %s", path)
	}
	if len(records) == 0 {
		return nil, eris.Errorf("%s has no header row", path)
	}

	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	known := make(map[string]struct{}, len(header))
	for _, col := range header {
		known[col] = struct{}{}
	}
	added := 0
	for _, col := range managedColumns {
		if _, ok := known[col]; !ok {
			header = append(header, col)
			added++
		}
	}

	rows := make([]map[string]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(rec) {
				row[col] = rec[i]
			} else {
				row[col] = ""
			}
		}
		if strings.TrimSpace(row[candidate.ColStatus]) == "" {
			row[candidate.ColStatus] = string(candidate.StatusPending)
		}
		rows = append(rows, row)
	}

	logger.Info("loaded batch file",
		zap.String("path", path),
		zap.Int("rows", len(rows)),
		zap.Int("columns_added", added),
	)

	return &Table{path: path, header: header, rows: rows, logger: logger}, nil
}

// Len returns the row count.
func (t *Table) Len() int { return len(t.rows) }

// Row returns the raw row map. The map is live; writes through it are
// persisted on the next Persist call.
func (t *Table) Row(i int) map[string]string { return t.rows[i] }

// Set writes one cell.
func (t *Table) Set(i int, col, value string) {
	t.rows[i][col] = value
}

// Status returns the row's current status.
func (t *Table) Status(i int) candidate.Status {
	return candidate.Status(t.rows[i][candidate.ColStatus])
}

// SetStatus transitions the row.
func (t *Table) SetStatus(i int, s candidate.Status) {
	t.rows[i][candidate.ColStatus] = string(s)
}

// Record decodes the typed view of row i.
func (t *Table) Record(i int) (*candidate.Record, error) {
	rec, err := candidate.DecodeRecord(t.rows[i])
	if err != nil {
		return nil, eris.Wrapf(err, "row %d", i)
	}
	return rec, nil
}

// Persist rewrites the whole CSV. The file is written aside and swapped in
// so a crash mid-write cannot truncate the batch state.
func (t *Table) Persist() error {
	tmp, err := os.CreateTemp(filepath.Dir(t.path), ".batch-*.csv")
	if err != nil {
		return eris.Wrap(err, "create temp batch file")
	}
	tmpPath := tmp.Name()

	writer := csv.NewWriter(tmp)
	if err := writer.Write(t.header); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return eris.Wrap(err, "write header")
	}

	line := make([]string, len(t.header))
	for _, row := range t.rows {
		for i, col := range t.header {
			line[i] = row[col]
		}
		if err := writer.Write(line); err != nil {
			tmp.Close()
			os.Remove(tmpPath)
			return eris.Wrap(err, "write row")
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return eris.Wrap(err, "flush batch file")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return eris.Wrap(err, "close temp batch file")
	}

	if err := os.Rename(tmpPath, t.path); err != nil {
		os.Remove(tmpPath)
		return eris.Wrapf(err, "replace %s", t.path)
	}
	return nil
}
