package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/phmalek/hoomd-blue/internal/sim"
)

type ExportData struct {
	Name          string               `json:"name"`
	Mode          string               `json:"mode"`
	Steps         int                  `json:"steps"`
	Energies      []float64            `json:"energies"`
	Virials       []float64            `json:"virials"`
	ForceEnergies map[string][]float64 `json:"force_energies"`
	Metrics       map[string]float64   `json:"metrics"`
}

func newExport(info RunInfo, result *sim.Result) ExportData {
	return ExportData{
		Name:          info.Name,
		Mode:          info.Mode,
		Steps:         result.StepsTaken,
		Energies:      result.Energies,
		Virials:       result.Virials,
		ForceEnergies: result.ForceEnergies,
		Metrics:       result.Metrics,
	}
}

func ExportJSON(path string, info RunInfo, result *sim.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, info, result)
}

func WriteJSON(w io.Writer, info RunInfo, result *sim.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(newExport(info, result))
}
