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

	"github.com/google/uuid"

	"github.com/phmalek/hoomd-blue/internal/sim"
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

// RunInfo describes the run being saved.
type RunInfo struct {
	Name      string
	Mode      string
	Particles int
	Forces    []string
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Timestamp  time.Time          `json:"timestamp"`
	Mode       string             `json:"mode"`
	Particles  int                `json:"particles"`
	Forces     []string           `json:"forces"`
	StepsTaken int                `json:"steps_taken"`
	Errors     []string           `json:"errors,omitempty"`
	Metrics    map[string]float64 `json:"metrics"`
}

// EnergyColumns returns the energies.csv header for result.
func EnergyColumns(result *sim.Result) []string {
	header := []string{"step", "energy", "virial"}
	return append(header, forceColumns(result)...)
}

func forceColumns(result *sim.Result) []string {
	names := make([]string, 0, len(result.ForceEnergies))
	for name := range result.ForceEnergies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Store) Save(info RunInfo, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("%s_%s", info.Name, uuid.NewString())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Name:       info.Name,
		Timestamp:  time.Now(),
		Mode:       info.Mode,
		Particles:  info.Particles,
		Forces:     info.Forces,
		StepsTaken: result.StepsTaken,
		Metrics:    result.Metrics,
	}
	for _, err := range result.Errors {
		meta.Errors = append(meta.Errors, err.Error())
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "energies.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write(EnergyColumns(result)); err != nil {
		return "", err
	}

	forces := forceColumns(result)
	for i := 0; i < result.StepsTaken; i++ {
		row := []string{
			strconv.Itoa(i),
			strconv.FormatFloat(result.Energies[i], 'g', 12, 64),
			strconv.FormatFloat(result.Virials[i], 'g', 12, 64),
		}
		for _, name := range forces {
			val := 0.0
			if series := result.ForceEnergies[name]; i < len(series) {
				val = series[i]
			}
			row = append(row, strconv.FormatFloat(val, 'g', 12, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return runID, nil
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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadEnergies reads energies.csv back as its header and numeric rows.
func (s *Store) LoadEnergies(runID string) ([]string, [][]float64, error) {
	csvPath := filepath.Join(s.baseDir, runID, "energies.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("%s: empty energies.csv", runID)
	}

	rows := make([][]float64, 0, len(records)-1)
	for i, record := range records[1:] {
		row := make([]float64, len(record))
		for j, field := range record {
			val, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("%s: row %d column %d: %w", runID, i+1, j, err)
			}
			row[j] = val
		}
		rows = append(rows, row)
	}

	return records[0], rows, nil
}
