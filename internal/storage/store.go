package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/24dai03-saifchaus/algonexus/internal/experiment"
	"github.com/24dai03-saifchaus/algonexus/internal/input"
	"github.com/24dai03-saifchaus/algonexus/internal/trace"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var ErrRunNotFound = errors.New("storage: run not found")

const (
	metadataFile = "metadata.json"
	stepsFile    = "steps.csv"
)

var stepsHeader = []string{"index", "kind", "line", "found", "highlights", "swaps", "array", "description"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Algorithm string             `json:"algorithm"`
	Input     []int              `json:"input"`
	Target    *int               `json:"target,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
	Steps     int                `json:"steps"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Config rebuilds the request that produced the run.
func (m *RunMetadata) Config() experiment.Config {
	cfg := experiment.Config{Algorithm: m.Algorithm, Input: trace.Snapshot(m.Input)}
	if m.Target != nil {
		cfg.Target = trace.TargetOf(*m.Target)
	}
	return cfg
}

func NewRunID(algorithm string) string {
	return fmt.Sprintf("%s_%s", algorithm, uuid.NewString()[:8])
}

// Save writes the run under a fresh id and returns it.
func (s *Store) Save(result *experiment.Result) (string, error) {
	if result == nil || len(result.Trace) == 0 {
		return "", trace.ErrEmptyTrace
	}
	runID := NewRunID(result.Config.Algorithm)
	if err := s.saveAs(runID, result); err != nil {
		return "", err
	}
	return runID, nil
}

// saveAs writes result into the run directory for runID. A failed write
// removes the directory so List never sees a partial run.
func (s *Store) saveAs(runID string, result *experiment.Result) (err error) {
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return err
	}
	defer func() {
		if err != nil {
			os.RemoveAll(runDir)
		}
	}()

	meta := RunMetadata{
		ID:        runID,
		Algorithm: result.Config.Algorithm,
		Input:     trace.Snapshot(result.Config.Input),
		Timestamp: time.Now(),
		Steps:     len(result.Trace),
		Metrics:   result.Metrics,
	}
	if result.Config.Target.Valid {
		v := result.Config.Target.Value
		meta.Target = &v
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return err
	}
	return writeFile(filepath.Join(runDir, stepsFile), func(w io.Writer) error {
		return WriteCSV(w, result.Trace)
	})
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("storage: %s metadata: %w", runID, err)
	}
	return &meta, nil
}

func (s *Store) LoadTrace(runID string) (trace.Trace, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, stepsFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f)
}

// WriteCSV writes one row per step. Index lists are space separated and an
// absent found index is an empty cell.
func WriteCSV(w io.Writer, tr trace.Trace) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(stepsHeader); err != nil {
		return err
	}
	for i, s := range tr {
		found := ""
		if s.HasFound() {
			found = strconv.Itoa(*s.Found)
		}
		row := []string{
			strconv.Itoa(i),
			string(s.Kind),
			strconv.Itoa(s.Line),
			found,
			joinInts(s.Highlights),
			joinInts(s.Swaps),
			joinInts(s.Array),
			s.Description,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func ReadCSV(r io.Reader) (trace.Trace, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(stepsHeader)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, trace.ErrEmptyTrace
	}

	tr := make(trace.Trace, 0, len(records)-1)
	for i, rec := range records[1:] {
		line, err := strconv.Atoi(rec[2])
		if err != nil {
			return nil, &trace.StepError{Index: i, Reason: "bad line", Wrapped: err}
		}
		step := trace.Step{
			Kind:        trace.Kind(rec[1]),
			Line:        line,
			Description: rec[7],
		}
		if rec[3] != "" {
			f, err := strconv.Atoi(rec[3])
			if err != nil {
				return nil, &trace.StepError{Index: i, Reason: "bad found index", Wrapped: err}
			}
			step.Found = &f
		}
		if step.Highlights, err = splitInts(rec[4]); err != nil {
			return nil, &trace.StepError{Index: i, Reason: "bad highlights", Wrapped: err}
		}
		if step.Swaps, err = splitInts(rec[5]); err != nil {
			return nil, &trace.StepError{Index: i, Reason: "bad swaps", Wrapped: err}
		}
		if step.Array, err = splitInts(rec[6]); err != nil {
			return nil, &trace.StepError{Index: i, Reason: "bad array", Wrapped: err}
		}
		tr = append(tr, step)
	}
	return tr, nil
}

type ExportData struct {
	Algorithm string             `json:"algorithm"`
	Input     []int              `json:"input"`
	Target    *int               `json:"target,omitempty"`
	Steps     trace.Trace        `json:"steps"`
	Metrics   map[string]float64 `json:"metrics"`
}

func newExportData(result *experiment.Result) ExportData {
	data := ExportData{
		Algorithm: result.Config.Algorithm,
		Input:     trace.Snapshot(result.Config.Input),
		Steps:     result.Trace,
		Metrics:   result.Metrics,
	}
	if result.Config.Target.Valid {
		v := result.Config.Target.Value
		data.Target = &v
	}
	return data
}

func ExportJSON(path string, result *experiment.Result) error {
	return writeJSON(path, newExportData(result))
}

func ExportJSONTo(w io.Writer, result *experiment.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(newExportData(result))
}

func writeJSON(path string, v any) error {
	return writeFile(path, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	})
}

// writeFile creates path and runs write against it. The close error is
// returned when write succeeds.
func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func joinInts(v []int) string {
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, " ")
}

func splitInts(s string) ([]int, error) {
	fields := strings.Fields(s)
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// Describe renders a one-line summary for listings.
func (m *RunMetadata) Describe() string {
	target := "-"
	if m.Target != nil {
		target = strconv.Itoa(*m.Target)
	}
	return fmt.Sprintf("%s  %-14s  [%s]  target=%s  steps=%d",
		m.Timestamp.Format("2006-01-02 15:04:05"), m.Algorithm, input.FormatDataset(m.Input), target, m.Steps)
}
