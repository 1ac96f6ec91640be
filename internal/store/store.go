package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/nld/internal/nld"
	"github.com/san-kum/nld/internal/qerror"
	"github.com/san-kum/nld/internal/series"
)

// Store persists estimation and validation runs as one directory per run:
// metadata.json plus, for estimate runs, the raw window as samples.csv.
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
	ID        string          `json:"id"`
	Kind      string          `json:"kind"` // "estimate" or "validate"
	Timestamp time.Time       `json:"timestamp"`
	Signal    string          `json:"signal"`
	Seed      int64           `json:"seed"`
	Rate      float64         `json:"rate"`
	Length    int             `json:"length"`
	Params    nld.Params      `json:"params"`
	Features  *nld.Features   `json:"features,omitempty"`
	Report    *qerror.Report  `json:"report,omitempty"`
}

// SaveEstimate records one window and its descriptors.
func (s *Store) SaveEstimate(signal string, seed int64, ts series.TimeSeries, params nld.Params, f nld.Features) (string, error) {
	meta := RunMetadata{
		Kind:      "estimate",
		Timestamp: time.Now(),
		Signal:    signal,
		Seed:      seed,
		Rate:      ts.Rate,
		Length:    ts.Len(),
		Params:    params,
		Features:  &f,
	}

	runDir, runID, err := s.createRun(&meta)
	if err != nil {
		return "", err
	}

	if err := writeSamples(filepath.Join(runDir, "samples.csv"), ts); err != nil {
		return "", err
	}
	return runID, nil
}

// SaveReport records a Monte-Carlo validation campaign.
func (s *Store) SaveReport(params nld.Params, seed int64, report *qerror.Report) (string, error) {
	meta := RunMetadata{
		Kind:      "validate",
		Timestamp: time.Now(),
		Signal:    report.Signal,
		Seed:      seed,
		Rate:      report.Rate,
		Length:    report.Length,
		Params:    params,
		Report:    report,
	}

	_, runID, err := s.createRun(&meta)
	return runID, err
}

func (s *Store) createRun(meta *RunMetadata) (string, string, error) {
	runID := fmt.Sprintf("%s_%s_%d", meta.Kind, meta.Signal, time.Now().UnixNano())
	meta.ID = runID

	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", "", err
	}
	return runDir, runID, nil
}

func writeSamples(path string, ts series.TimeSeries) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write([]string{"time", "value"}); err != nil {
		return err
	}
	for i, v := range ts.Samples {
		row := []string{
			strconv.FormatFloat(float64(i)/ts.Rate, 'f', 6, 64),
			strconv.FormatFloat(v, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
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
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadSamples reads back an estimate run's window.
func (s *Store) LoadSamples(runID string) (series.TimeSeries, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return series.TimeSeries{}, err
	}

	file, err := os.Open(filepath.Join(s.baseDir, runID, "samples.csv"))
	if err != nil {
		return series.TimeSeries{}, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return series.TimeSeries{}, err
	}

	samples := make([]float64, 0, len(records))
	for i, record := range records {
		if i == 0 || len(record) < 2 {
			continue
		}
		v, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		samples = append(samples, v)
	}
	return series.New(samples, meta.Rate), nil
}
