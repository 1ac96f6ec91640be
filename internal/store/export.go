package store

import (
	"encoding/json"
	"io"
	"os"
)

// ExportJSON writes a run's metadata (including features or the validation
// report) to w.
func (s *Store) ExportJSON(runID string, w io.Writer) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

// ExportJSONFile writes a run's metadata to a file.
func (s *Store) ExportJSONFile(runID, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return s.ExportJSON(runID, file)
}
