package storage

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shiyuanhu/microalgal-swimming/internal/scallop"
)

func testParams() scallop.Params {
	return scallop.Params{
		ThetaA: 1.0, Theta0: 1.0, N: 10, L: 1.0,
		Dt: 0.002, Duration: 0.01, Tau: 1.0, Delta: 0.01, Nfine: 6,
	}
}

func writeRun(t *testing.T, st *Store) string {
	t.Helper()

	run, err := st.Begin()
	if err != nil {
		t.Fatalf("begin failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		tm := float64(i) * 0.002
		fmt.Fprintf(run.Writer(), "%.5f %.10f %.10f\n", tm, 0.1*float64(i), 0.01*float64(i))
	}

	result := &scallop.Result{
		StepsTaken: 3,
		Metrics:    map[string]float64{"peak_speed": 0.2},
	}
	if err := run.Finish(testParams(), result); err != nil {
		t.Fatalf("finish failed: %v", err)
	}

	return run.ID()
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())

	runID := writeRun(t, st)
	if runID == "" {
		t.Fatal("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if meta.Segments != 10 {
		t.Errorf("expected 10 segments, got %d", meta.Segments)
	}
	if meta.Steps != 3 {
		t.Errorf("expected 3 steps, got %d", meta.Steps)
	}
	if meta.Metrics["peak_speed"] != 0.2 {
		t.Errorf("expected peak_speed 0.2, got %f", meta.Metrics["peak_speed"])
	}

	times, speeds, hingeX, err := st.LoadSeries(runID)
	if err != nil {
		t.Fatalf("load series failed: %v", err)
	}
	if len(times) != 3 || len(speeds) != 3 || len(hingeX) != 3 {
		t.Fatalf("expected 3 rows, got %d/%d/%d", len(times), len(speeds), len(hingeX))
	}
	if times[1] != 0.002 {
		t.Errorf("expected time 0.002, got %f", times[1])
	}
	if speeds[2] != 0.2 {
		t.Errorf("expected speed 0.2, got %f", speeds[2])
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	writeRun(t, st)

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestAbortKeepsPartialSeries(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)

	run, err := st.Begin()
	if err != nil {
		t.Fatalf("begin failed: %v", err)
	}

	fmt.Fprintf(run.Writer(), "0.00000 0.1000000000 0.0002000000\n")
	if err := run.Abort(); err != nil {
		t.Fatalf("abort failed: %v", err)
	}

	times, _, _, err := st.LoadSeries(run.ID())
	if err != nil {
		t.Fatalf("load series failed: %v", err)
	}
	if len(times) != 1 {
		t.Errorf("expected 1 flushed row, got %d", len(times))
	}

	// An aborted run has no metadata and must not show up in listings.
	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected aborted run to be unlisted, got %d runs", len(runs))
	}
}

func TestLoadSeriesSkipsTruncatedRows(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)

	runID := "scallop_1"
	runDir := filepath.Join(dir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		t.Fatal(err)
	}
	series := "0.00000 0.1 0.2\n0.00200 0.3"
	if err := os.WriteFile(filepath.Join(runDir, "series.txt"), []byte(series), 0644); err != nil {
		t.Fatal(err)
	}

	times, _, _, err := st.LoadSeries(runID)
	if err != nil {
		t.Fatalf("load series failed: %v", err)
	}
	if len(times) != 1 {
		t.Errorf("expected truncated row to be skipped, got %d rows", len(times))
	}
}

func TestExportCSV(t *testing.T) {
	var buf bytes.Buffer
	err := ExportCSV(&buf, []float64{0, 0.002}, []float64{0.1, -0.2}, []float64{0.0002, -0.0002})
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "time,speed,hinge_x" {
		t.Errorf("unexpected header %q", lines[0])
	}
}

func TestExportJSON(t *testing.T) {
	var buf bytes.Buffer
	meta := &RunMetadata{ID: "scallop_1", Segments: 100, Dt: 0.002, Duration: 1.0, Steps: 2}

	err := ExportJSON(&buf, meta, []float64{0, 0.002}, []float64{0.1, 0.2}, []float64{0, 0.001})
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if !strings.Contains(buf.String(), `"hinge_x"`) {
		t.Error("expected hinge_x field in JSON output")
	}
}
