package store

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/abhisek/adaptlearn/internal/subject"
)

// csvHeader is the column layout of the flat progress file.
var csvHeader = []string{"student_id", "subject", "completion_rate", "average_score", "completed_materials"}

// CSVProgressRepo stores progress in a flat CSV file, one row per
// (learner, subject), with completed materials joined by "|".
// Every update rewrites the whole file through a temp file and rename.
type CSVProgressRepo struct {
	path        string
	catalogSize int

	// fileMu serializes whole-file rewrites; locks serializes each key's
	// read-modify-write cycle.
	fileMu sync.Mutex
	locks  *keyLocker
}

// NewCSVProgressRepo returns a repo over the CSV file at path. The file is
// created on first update.
func NewCSVProgressRepo(path string, catalogSize int) *CSVProgressRepo {
	return &CSVProgressRepo{
		path:        path,
		catalogSize: normalizeCatalogSize(catalogSize),
		locks:       newKeyLocker(),
	}
}

// Path returns the backing file path.
func (r *CSVProgressRepo) Path() string { return r.path }

func (r *CSVProgressRepo) Get(_ context.Context, learnerID, subj string) (*ProgressRecord, error) {
	r.fileMu.Lock()
	rows, err := r.readAll()
	r.fileMu.Unlock()
	if err != nil {
		return nil, err
	}
	key := keyOf(learnerID, subj)
	for i := range rows {
		if key.matches(&rows[i]) {
			rec := rows[i]
			return &rec, nil
		}
	}
	return EmptyProgress(key.learner, subject.Clean(subj)), nil
}

func (r *CSVProgressRepo) Update(_ context.Context, u ProgressUpdate) (*ProgressRecord, error) {
	if err := u.Validate(); err != nil {
		return nil, err
	}
	u = u.normalized()
	key := keyOf(u.LearnerID, u.Subject)

	unlock := r.locks.Lock(key)
	defer unlock()

	r.fileMu.Lock()
	defer r.fileMu.Unlock()

	rows, err := r.readAll()
	if err != nil {
		return nil, err
	}

	idx := -1
	cur := EmptyProgress(u.LearnerID, u.Subject)
	for i := range rows {
		if key.matches(&rows[i]) {
			idx = i
			cur = &rows[i]
			break
		}
	}

	next := merge(cur, u, r.catalogSize)
	if idx >= 0 {
		rows[idx] = *next
	} else {
		rows = append(rows, *next)
	}

	if err := r.writeAll(rows); err != nil {
		return nil, err
	}
	return next, nil
}

func (r *CSVProgressRepo) List(_ context.Context, learnerID string) ([]ProgressRecord, error) {
	r.fileMu.Lock()
	rows, err := r.readAll()
	r.fileMu.Unlock()
	if err != nil {
		return nil, err
	}

	learnerID = strings.TrimSpace(learnerID)
	var out []ProgressRecord
	for _, rec := range rows {
		if rec.LearnerID == learnerID {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Subject < out[j].Subject })
	return out, nil
}

func (r *CSVProgressRepo) readAll() ([]ProgressRecord, error) {
	f, err := os.Open(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open progress file: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read progress header: %w", err)
	}
	cols, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var out []ProgressRecord
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read progress line %d: %w", line, err)
		}
		rec, err := parseRow(row, cols)
		if err != nil {
			return nil, fmt.Errorf("progress line %d: %w", line, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func (r *CSVProgressRepo) writeAll(rows []ProgressRecord) error {
	if err := EnsureDir(r.path); err != nil {
		return fmt.Errorf("create progress dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), ".progress-*.csv")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(csvHeader); err != nil {
		tmp.Close()
		return fmt.Errorf("write header: %w", err)
	}
	for _, rec := range rows {
		if err := w.Write(formatRow(rec)); err != nil {
			tmp.Close()
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("flush progress file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("replace progress file: %w", err)
	}
	return nil
}

func columnIndex(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(h)] = i
	}
	for _, want := range csvHeader {
		if _, ok := cols[want]; !ok {
			return nil, fmt.Errorf("progress file missing column %q", want)
		}
	}
	return cols, nil
}

func parseRow(row []string, cols map[string]int) (ProgressRecord, error) {
	field := func(name string) string {
		i := cols[name]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	rec := ProgressRecord{
		LearnerID: field("student_id"),
		Subject:   field("subject"),
		Found:     true,
	}
	var err error
	if rec.CompletionRate, err = parseFloat(field("completion_rate")); err != nil {
		return rec, fmt.Errorf("completion_rate: %w", err)
	}
	if rec.AverageScore, err = parseFloat(field("average_score")); err != nil {
		return rec, fmt.Errorf("average_score: %w", err)
	}

	set := make(map[string]bool)
	for _, m := range strings.Split(field("completed_materials"), "|") {
		if m = strings.TrimSpace(m); m != "" {
			set[m] = true
		}
	}
	rec.CompletedMaterials = sortedKeys(set)
	return rec, nil
}

func formatRow(rec ProgressRecord) []string {
	return []string{
		rec.LearnerID,
		rec.Subject,
		strconv.FormatFloat(rec.CompletionRate, 'f', -1, 64),
		strconv.FormatFloat(rec.AverageScore, 'f', -1, 64),
		strings.Join(rec.CompletedMaterials, "|"),
	}
}

func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}
