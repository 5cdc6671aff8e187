package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shiyuanhu/microalgal-swimming/internal/scallop"
)

const seriesFile = "series.txt"

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
	Timestamp time.Time          `json:"timestamp"`
	ThetaA    float64            `json:"theta_a"`
	Theta0    float64            `json:"theta_0"`
	Segments  int                `json:"segments"`
	Length    float64            `json:"length"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Tau       float64            `json:"tau"`
	Delta     float64            `json:"delta"`
	Nfine     int                `json:"nfine"`
	Steps     int                `json:"steps"`
	Metrics   map[string]float64 `json:"metrics"`
}

func metadataFromParams(id string, p scallop.Params) RunMetadata {
	return RunMetadata{
		ID:        id,
		Timestamp: time.Now(),
		ThetaA:    p.ThetaA,
		Theta0:    p.Theta0,
		Segments:  p.N,
		Length:    p.L,
		Dt:        p.Dt,
		Duration:  p.Duration,
		Tau:       p.Tau,
		Delta:     p.Delta,
		Nfine:     p.Nfine,
	}
}

// Run is one in-progress simulation run. The series file is opened once at
// Begin and written through a buffered writer; the driver flushes it after
// every step, so rows written before an interruption stay on disk.
type Run struct {
	id  string
	dir string
	f   *os.File
	w   *bufio.Writer
}

// Begin allocates a run directory and opens its series file.
func (s *Store) Begin() (*Run, error) {
	if err := s.Init(); err != nil {
		return nil, err
	}

	id := fmt.Sprintf("scallop_%d", time.Now().UnixNano())
	dir := filepath.Join(s.baseDir, id)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	f, err := os.Create(filepath.Join(dir, seriesFile))
	if err != nil {
		return nil, err
	}

	return &Run{id: id, dir: dir, f: f, w: bufio.NewWriter(f)}, nil
}

func (r *Run) ID() string { return r.id }

// Writer exposes the buffered series sink; it satisfies the driver's flusher
// interface so each step's row reaches the OS before the next solve.
func (r *Run) Writer() io.Writer { return r.w }

// Finish closes the series file and writes run metadata.
func (r *Run) Finish(p scallop.Params, result *scallop.Result) error {
	if err := r.close(); err != nil {
		return err
	}

	meta := metadataFromParams(r.id, p)
	meta.Steps = result.StepsTaken
	meta.Metrics = result.Metrics

	f, err := os.Create(filepath.Join(r.dir, "metadata.json"))
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

// Abort closes the series file, keeping whatever rows were flushed.
func (r *Run) Abort() error {
	return r.close()
}

func (r *Run) close() error {
	if r.f == nil {
		return nil
	}
	flushErr := r.w.Flush()
	closeErr := r.f.Close()
	r.f = nil
	if flushErr != nil {
		return flushErr
	}
	return closeErr
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

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
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

// LoadSeries reads a run's time series: one line per step, three
// whitespace-separated columns (time, translation speed, hinge x-position).
// Malformed lines are skipped, so a series truncated by an interrupted run
// still loads.
func (s *Store) LoadSeries(runID string) (times, speeds, hingeX []float64, err error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, seriesFile))
	if err != nil {
		return nil, nil, nil, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) != 3 {
			continue
		}

		t, err1 := strconv.ParseFloat(fields[0], 64)
		u, err2 := strconv.ParseFloat(fields[1], 64)
		x, err3 := strconv.ParseFloat(fields[2], 64)
		if err1 != nil || err2 != nil || err3 != nil {
			continue
		}

		times = append(times, t)
		speeds = append(speeds, u)
		hingeX = append(hingeX, x)
	}
	if err := sc.Err(); err != nil {
		return nil, nil, nil, err
	}

	return times, speeds, hingeX, nil
}
