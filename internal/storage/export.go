package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
)

type ExportData struct {
	ID       string             `json:"id"`
	Segments int                `json:"segments"`
	Dt       float64            `json:"dt"`
	Duration float64            `json:"duration"`
	Steps    int                `json:"steps"`
	Times    []float64          `json:"times"`
	Speeds   []float64          `json:"speeds"`
	HingeX   []float64          `json:"hinge_x"`
	Metrics  map[string]float64 `json:"metrics"`
}

// ExportJSON writes a stored run as a single JSON document.
func ExportJSON(w io.Writer, meta *RunMetadata, times, speeds, hingeX []float64) error {
	data := ExportData{
		ID:       meta.ID,
		Segments: meta.Segments,
		Dt:       meta.Dt,
		Duration: meta.Duration,
		Steps:    meta.Steps,
		Times:    times,
		Speeds:   speeds,
		HingeX:   hingeX,
		Metrics:  meta.Metrics,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportCSV writes a stored run's series with a header row.
func ExportCSV(w io.Writer, times, speeds, hingeX []float64) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"time", "speed", "hinge_x"}); err != nil {
		return err
	}

	for i := range times {
		row := []string{
			strconv.FormatFloat(times[i], 'f', 5, 64),
			strconv.FormatFloat(speeds[i], 'f', 10, 64),
			strconv.FormatFloat(hingeX[i], 'f', 10, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	return cw.Error()
}
