// Package replylog persists one record per sent reply in an
// append-only CSV log and aggregates that log into a summary report.
package replylog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/nhle/mail-assistant/internal/model"
)

// LogFileName is the CSV file the writer appends to inside its
// directory.
const LogFileName = "email_log.csv"

// header is the fixed first row written when the log file is created.
var header = []string{
	"timestamp", "from", "subject", "category", "urgent", "attachments", "mode",
}

// LogError indicates the reply log could not be read, typically
// because no reply has ever been logged.
type LogError struct {
	Path string
	Err  error
}

func (e *LogError) Error() string {
	return fmt.Sprintf("reply log %s: %v", e.Path, e.Err)
}

func (e *LogError) Unwrap() error { return e.Err }

// IsLogError reports whether err (or any error in its chain) is a
// LogError.
func IsLogError(err error) bool {
	var logErr *LogError
	return errors.As(err, &logErr)
}

// Writer appends reply records to a CSV log in dir and summarizes it.
type Writer struct {
	dir string
}

// NewWriter returns a Writer rooted at dir. The directory and log file
// are created lazily on first append.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Path returns the full path of the log file.
func (w *Writer) Path() string {
	return filepath.Join(w.dir, LogFileName)
}

// Append writes one record to the log, creating the file with its
// header row first if it does not exist yet. Existing rows are never
// rewritten or reordered.
func (w *Writer) Append(rec model.LogRecord) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("creating log directory %s: %w", w.dir, err)
	}

	path := w.Path()
	writeHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		writeHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening reply log %s: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if writeHeader {
		if err := cw.Write(header); err != nil {
			return fmt.Errorf("writing log header: %w", err)
		}
	}

	urgent := "0"
	if rec.Urgent {
		urgent = "1"
	}

	row := []string{
		rec.Timestamp.Format(model.LogTimeFormat),
		rec.From,
		rec.Subject,
		string(rec.Category),
		urgent,
		strconv.Itoa(rec.Attachments),
		string(rec.Mode),
	}
	if err := cw.Write(row); err != nil {
		return fmt.Errorf("writing log row: %w", err)
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing reply log: %w", err)
	}

	return f.Sync()
}

// Summary aggregates the reply log.
type Summary struct {
	Total       int
	Urgent      int
	PerCategory map[string]int
}

// CategoryOrder returns the category labels in report display order:
// the fixed category set first, then any unrecognized labels sorted
// alphabetically.
func (s *Summary) CategoryOrder() []string {
	order := make([]string, 0, len(model.Categories))
	seen := make(map[string]bool, len(model.Categories))
	for _, c := range model.Categories {
		order = append(order, string(c))
		seen[string(c)] = true
	}

	var extra []string
	for label := range s.PerCategory {
		if !seen[label] {
			extra = append(extra, label)
		}
	}
	sort.Strings(extra)

	return append(order, extra...)
}

// Summarize reads every row of the log and counts the total, the rows
// whose urgent field holds a truthy token ("1"/"true"/"yes",
// case-insensitive), and the rows per category. Unrecognized category
// strings are counted under their own label. A missing log file is a
// LogError, not an empty summary.
func (w *Writer) Summarize() (*Summary, error) {
	path := w.Path()

	f, err := os.Open(path)
	if err != nil {
		return nil, &LogError{Path: path, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, &LogError{Path: path, Err: err}
	}

	s := &Summary{PerCategory: make(map[string]int, len(model.Categories))}
	for _, c := range model.Categories {
		s.PerCategory[string(c)] = 0
	}

	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		s.Total++

		category := "Other"
		if len(row) > 3 && row[3] != "" {
			category = row[3]
		}
		s.PerCategory[category]++

		if len(row) > 4 && isTruthy(row[4]) {
			s.Urgent++
		}
	}

	return s, nil
}

// isTruthy mirrors the tokens the log format accepts for urgency.
func isTruthy(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "yes":
		return true
	}
	return false
}
