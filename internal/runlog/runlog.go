package runlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Entry is one row in the run log: a single pipeline stage outcome.
type Entry struct {
	Timestamp time.Time
	Stage     string // daily, historical, means, render, write
	Details   string
	Rows      int
	Skipped   int
}

// Header is the CSV header for run-log.csv.
const Header = "timestamp,stage,details,rows,skipped"

const (
	numFields    = 5
	logFile      = "run-log.csv"
	colTimestamp = 0
	colStage     = 1
	colDetails   = 2
	colRows      = 3
	colSkipped   = 4
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colStage] = e.Stage
	row[colDetails] = e.Details
	row[colRows] = strconv.Itoa(e.Rows)
	row[colSkipped] = strconv.Itoa(e.Skipped)
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	rows, err := strconv.Atoi(record[colRows])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing rows %q: %w", record[colRows], err)
	}

	skipped, err := strconv.Atoi(record[colSkipped])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing skipped %q: %w", record[colSkipped], err)
	}

	return Entry{
		Timestamp: ts,
		Stage:     record[colStage],
		Details:   record[colDetails],
		Rows:      rows,
		Skipped:   skipped,
	}, nil
}

// Append writes entries to <dir>/run-log.csv, creating the file and
// header if needed.
func Append(dir string, entries []Entry) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating log dir: %w", err)
	}

	path := filepath.Join(dir, logFile)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	return cw.Error()
}

// Read returns all entries from <dir>/run-log.csv.
// Returns an empty slice if the file does not exist.
func Read(dir string) ([]Entry, error) {
	path := filepath.Join(dir, logFile)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading run log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
