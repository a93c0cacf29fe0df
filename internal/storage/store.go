// Package storage persists simulation runs under a base directory, one
// subdirectory per run: metadata.json with the configuration, modes.csv with
// the complex trajectory, and optionally field.csv with a reconstructed
// space-time grid.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/kflame/internal/config"
	"github.com/san-kum/kflame/internal/sim"
	"github.com/san-kum/kflame/internal/spectral"
)

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
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	N         int       `json:"n"`
	K         float64   `json:"k"`
	Dt        float64   `json:"dt"`
	Steps     int       `json:"steps"`
	Eps       float64   `json:"eps"`
	A         float64   `json:"a"`
	Form      string    `json:"form"`
	Seed      int64     `json:"seed"`
}

// Save writes one run and returns its generated id.
func (s *Store) Save(cfg *config.Config, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("ks_%d", time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Timestamp: time.Now(),
		N:         cfg.N,
		K:         cfg.K,
		Dt:        cfg.Dt,
		Steps:     len(result.Modes),
		Eps:       cfg.Eps,
		A:         cfg.A,
		Form:      cfg.Form,
		Seed:      cfg.Seed,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := s.writeModes(filepath.Join(runDir, "modes.csv"), result); err != nil {
		return "", err
	}

	return runID, nil
}

func (s *Store) writeModes(path string, result *sim.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if len(result.Modes) == 0 {
		return nil
	}

	header := []string{"time"}
	for m := range result.Modes[0] {
		header = append(header, fmt.Sprintf("re%d", m), fmt.Sprintf("im%d", m))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	row := make([]string, 0, len(header))
	for i, c := range result.Modes {
		row = row[:0]
		row = append(row, strconv.FormatFloat(result.Times[i], 'g', -1, 64))
		for _, v := range c {
			row = append(row,
				strconv.FormatFloat(real(v), 'g', -1, 64),
				strconv.FormatFloat(imag(v), 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

// SaveField writes a reconstructed space-time grid next to the run's modes.
func (s *Store) SaveField(runID string, grid [][]float64) error {
	runDir := filepath.Join(s.baseDir, runID)
	if _, err := os.Stat(runDir); err != nil {
		return fmt.Errorf("%w: %s", spectral.ErrNotFound, runID)
	}

	file, err := os.Create(filepath.Join(runDir, "field.csv"))
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	row := []string{}
	for _, slice := range grid {
		row = row[:0]
		for _, v := range slice {
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

// List returns stored run ids, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.LoadMeta(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) LoadMeta(runID string) (RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return RunMetadata{}, fmt.Errorf("%w: %s", spectral.ErrNotFound, runID)
		}
		return RunMetadata{}, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return RunMetadata{}, err
	}
	return meta, nil
}

// LoadModes reads a stored trajectory back into memory.
func (s *Store) LoadModes(runID string) (*sim.Result, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "modes.csv"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", spectral.ErrNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 1 {
		return &sim.Result{}, nil
	}

	nCols := len(records[0])
	result := &sim.Result{
		Modes: make([]spectral.ModeVector, 0, len(records)-1),
		Times: make([]float64, 0, len(records)-1),
	}

	for _, rec := range records[1:] {
		if len(rec) != nCols {
			return nil, fmt.Errorf("storage: ragged row in %s/modes.csv", runID)
		}
		t, err := strconv.ParseFloat(rec[0], 64)
		if err != nil {
			return nil, err
		}
		c := make(spectral.ModeVector, 0, (nCols-1)/2)
		for j := 1; j+1 < nCols; j += 2 {
			re, err := strconv.ParseFloat(rec[j], 64)
			if err != nil {
				return nil, err
			}
			im, err := strconv.ParseFloat(rec[j+1], 64)
			if err != nil {
				return nil, err
			}
			c = append(c, complex(re, im))
		}
		result.Modes = append(result.Modes, c)
		result.Times = append(result.Times, t)
	}
	result.StepsTaken = len(result.Modes) - 1
	return result, nil
}
