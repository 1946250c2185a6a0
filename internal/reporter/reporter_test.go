package reporter

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"benchdiff/internal/summary"
	"benchdiff/internal/threshold"
)

const baseSummary = `{
	"total_time": 10.0,
	"average_memory": 2048,
	"max_memory": 4096,
	"average_cpu": 50.0,
	"std_dev_total_time": 0.1,
	"std_dev_average_memory": 10,
	"std_dev_max_memory": 20,
	"std_dev_average_cpu": 1.0
}`

const slowerSummary = `{
	"total_time": 12.0,
	"average_memory": 2048,
	"max_memory": 4096,
	"average_cpu": 50.0,
	"std_dev_total_time": 0.1,
	"std_dev_average_memory": 10,
	"std_dev_max_memory": 20,
	"std_dev_average_cpu": 1.0
}`

func writeBenchmark(t *testing.T, root, name, content string) {
	t.Helper()
	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, summary.DefaultFileName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func twoRuns(t *testing.T) (oldRoot, newRoot string) {
	t.Helper()
	oldRoot = t.TempDir()
	newRoot = t.TempDir()
	writeBenchmark(t, oldRoot, "alloc", baseSummary)
	writeBenchmark(t, newRoot, "alloc", slowerSummary)
	return oldRoot, newRoot
}

func TestRunPrintsComparisonTable(t *testing.T) {
	oldRoot, newRoot := twoRuns(t)

	var stdout, stderr bytes.Buffer
	r := New(Options{
		OldRoot: oldRoot,
		NewRoot: newRoot,
		Stdout:  &stdout,
		Stderr:  &stderr,
	})

	if err := r.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	out := stdout.String()
	if !strings.Contains(out, "alloc") {
		t.Error("expected benchmark name in output")
	}
	if !strings.Contains(out, "10.00 sec") || !strings.Contains(out, "12.00 sec") {
		t.Error("expected old and new total_time in output")
	}
	if !strings.Contains(out, "+20.00%") {
		t.Error("expected total_time delta in output")
	}
	if !strings.Contains(out, "2.00 KiB") {
		t.Error("expected scaled memory value in output")
	}
}

func TestRunDeterministicOrder(t *testing.T) {
	oldRoot := t.TempDir()
	newRoot := t.TempDir()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		writeBenchmark(t, oldRoot, name, baseSummary)
		writeBenchmark(t, newRoot, name, slowerSummary)
	}

	var stdout bytes.Buffer
	r := New(Options{OldRoot: oldRoot, NewRoot: newRoot, Stdout: &stdout, Stderr: &stdout})
	if err := r.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	out := stdout.String()
	alpha := strings.Index(out, "alpha")
	mid := strings.Index(out, "mid")
	zeta := strings.Index(out, "zeta")
	if alpha == -1 || mid == -1 || zeta == -1 {
		t.Fatalf("missing benchmarks in output:\n%s", out)
	}
	if !(alpha < mid && mid < zeta) {
		t.Errorf("benchmarks out of order: alpha=%d mid=%d zeta=%d", alpha, mid, zeta)
	}
}

func TestRunWorkersMatchSequentialOutput(t *testing.T) {
	oldRoot := t.TempDir()
	newRoot := t.TempDir()
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		writeBenchmark(t, oldRoot, name, baseSummary)
		writeBenchmark(t, newRoot, name, slowerSummary)
	}

	var sequential, parallel bytes.Buffer

	if err := New(Options{OldRoot: oldRoot, NewRoot: newRoot, Workers: 1, Stdout: &sequential, Stderr: &sequential}).Run(); err != nil {
		t.Fatal(err)
	}
	if err := New(Options{OldRoot: oldRoot, NewRoot: newRoot, Workers: 4, Stdout: &parallel, Stderr: &parallel}).Run(); err != nil {
		t.Fatal(err)
	}

	if sequential.String() != parallel.String() {
		t.Error("parallel output differs from sequential output")
	}
}

func TestRunMissingRoot(t *testing.T) {
	var buf bytes.Buffer
	r := New(Options{
		OldRoot: filepath.Join(t.TempDir(), "nope"),
		NewRoot: t.TempDir(),
		Stdout:  &buf,
		Stderr:  &buf,
	})

	if err := r.Run(); !errors.Is(err, ErrMissingRoot) {
		t.Errorf("Run() error = %v, want ErrMissingRoot", err)
	}
}

func TestRunMissingNewSideFails(t *testing.T) {
	oldRoot := t.TempDir()
	newRoot := t.TempDir()
	writeBenchmark(t, oldRoot, "alloc", baseSummary)

	var buf bytes.Buffer
	r := New(Options{OldRoot: oldRoot, NewRoot: newRoot, Stdout: &buf, Stderr: &buf})

	err := r.Run()
	if !errors.Is(err, summary.ErrNotFound) {
		t.Errorf("Run() error = %v, want ErrNotFound", err)
	}
	if !strings.Contains(err.Error(), "alloc") {
		t.Errorf("error %q should name the benchmark", err)
	}
}

func TestRunKeepGoing(t *testing.T) {
	oldRoot := t.TempDir()
	newRoot := t.TempDir()
	writeBenchmark(t, oldRoot, "bad", `{"total_time": `)
	writeBenchmark(t, newRoot, "bad", baseSummary)
	writeBenchmark(t, oldRoot, "good", baseSummary)
	writeBenchmark(t, newRoot, "good", slowerSummary)

	var stdout, stderr bytes.Buffer
	r := New(Options{
		OldRoot:   oldRoot,
		NewRoot:   newRoot,
		KeepGoing: true,
		Stdout:    &stdout,
		Stderr:    &stderr,
	})

	err := r.Run()
	if err == nil {
		t.Fatal("Run() expected non-nil error with a failed benchmark")
	}
	if !strings.Contains(err.Error(), "1 of 2 benchmarks failed") {
		t.Errorf("Run() error = %v, want failure count", err)
	}
	if !strings.Contains(stdout.String(), "good") {
		t.Error("expected surviving benchmark in output")
	}
	if !strings.Contains(stderr.String(), "bad") {
		t.Error("expected warning about failing benchmark on stderr")
	}
}

func TestRunSkipsPlainFiles(t *testing.T) {
	oldRoot, newRoot := twoRuns(t)
	if err := os.WriteFile(filepath.Join(oldRoot, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	r := New(Options{OldRoot: oldRoot, NewRoot: newRoot, Stdout: &buf, Stderr: &buf})
	if err := r.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if strings.Contains(buf.String(), "notes.txt") {
		t.Error("plain files should not be compared")
	}
}

func TestRunJSONOutput(t *testing.T) {
	oldRoot, newRoot := twoRuns(t)

	var stdout bytes.Buffer
	r := New(Options{
		OldRoot:    oldRoot,
		NewRoot:    newRoot,
		JSONOutput: true,
		Stdout:     &stdout,
		Stderr:     &stdout,
	})
	if err := r.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var decoded []struct {
		Benchmark string `json:"benchmark"`
		Rows      []struct {
			Field        string  `json:"field"`
			PercentDelta float64 `json:"percent_delta"`
		} `json:"rows"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, stdout.String())
	}
	if len(decoded) != 1 || decoded[0].Benchmark != "alloc" {
		t.Fatalf("decoded = %+v, want one alloc comparison", decoded)
	}
	if decoded[0].Rows[0].Field != "total_time" || decoded[0].Rows[0].PercentDelta != 20 {
		t.Errorf("first row = %+v, want total_time at +20", decoded[0].Rows[0])
	}
}

func TestRunThresholds(t *testing.T) {
	oldRoot, newRoot := twoRuns(t)

	thresholds, err := threshold.ParseMultiple([]string{"total_time < 5"})
	if err != nil {
		t.Fatal(err)
	}

	var stdout bytes.Buffer
	r := New(Options{
		OldRoot:    oldRoot,
		NewRoot:    newRoot,
		Thresholds: thresholds,
		Stdout:     &stdout,
		Stderr:     &stdout,
	})

	err = r.Run()
	if err == nil || !strings.Contains(err.Error(), "1 thresholds failed") {
		t.Errorf("Run() error = %v, want threshold failure", err)
	}
	if !strings.Contains(stdout.String(), "Thresholds:") {
		t.Error("expected threshold section in output")
	}
}

func TestRunWritesHTMLReport(t *testing.T) {
	oldRoot, newRoot := twoRuns(t)
	htmlPath := filepath.Join(t.TempDir(), "report.html")

	var buf bytes.Buffer
	r := New(Options{
		OldRoot:  oldRoot,
		NewRoot:  newRoot,
		HTMLPath: htmlPath,
		Stdout:   &buf,
		Stderr:   &buf,
	})
	if err := r.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	data, err := os.ReadFile(htmlPath)
	if err != nil {
		t.Fatalf("expected HTML report at %s: %v", htmlPath, err)
	}
	if !strings.Contains(string(data), "alloc") {
		t.Error("expected benchmark name in HTML report")
	}
}

func TestRunEmptyRoots(t *testing.T) {
	var buf bytes.Buffer
	r := New(Options{OldRoot: t.TempDir(), NewRoot: t.TempDir(), Stdout: &buf, Stderr: &buf})
	if err := r.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output for empty runs, got %q", buf.String())
	}
}
