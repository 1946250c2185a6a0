// Package summary loads per-benchmark metric summaries from run directories.
package summary

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
)

// DefaultFileName is the summary file expected inside each benchmark
// directory.
const DefaultFileName = "summary.json"

var (
	// ErrNotFound indicates the benchmark directory has no summary file.
	ErrNotFound = errors.New("summary file not found")

	// ErrMalformed indicates the summary file is not a flat JSON object of
	// numeric values, or lacks an expected field.
	ErrMalformed = errors.New("malformed summary")
)

// Summary is the immutable metric mapping parsed from one summary file.
type Summary struct {
	path   string
	values map[string]float64
}

// FromMap builds a summary directly from a metric mapping. The mapping is
// copied.
func FromMap(values map[string]float64) *Summary {
	copied := make(map[string]float64, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return &Summary{values: copied}
}

// Load reads and parses the named summary file inside dir. An empty fileName
// falls back to DefaultFileName.
func Load(dir, fileName string) (*Summary, error) {
	if fileName == "" {
		fileName = DefaultFileName
	}
	path := filepath.Join(dir, fileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("read summary %s: %w", path, err)
	}

	values, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &Summary{path: path, values: values}, nil
}

// parse validates that data is a flat JSON object mapping string keys to
// numbers and returns the mapping.
func parse(data []byte) (map[string]float64, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrMalformed)
	}

	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, fmt.Errorf("%w: expected a JSON object, got %s", ErrMalformed, doc.Type)
	}

	values := make(map[string]float64)
	var parseErr error
	doc.ForEach(func(key, value gjson.Result) bool {
		if value.Type != gjson.Number {
			parseErr = fmt.Errorf("%w: field %q is not numeric", ErrMalformed, key.String())
			return false
		}
		values[key.String()] = value.Num
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return values, nil
}

// Path returns the file the summary was loaded from.
func (s *Summary) Path() string {
	return s.path
}

// Value returns the metric recorded under name.
func (s *Summary) Value(name string) (float64, error) {
	v, ok := s.values[name]
	if !ok {
		return 0, fmt.Errorf("%w: missing field %q in %s", ErrMalformed, name, s.path)
	}
	return v, nil
}

// StdDev returns the standard deviation recorded for the base field f.
func (s *Summary) StdDev(f Field) (float64, error) {
	return s.Value(f.StdDevName())
}
