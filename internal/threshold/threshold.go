// Package threshold evaluates regression assertions against comparison
// deltas.
package threshold

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"benchdiff/internal/compare"
	"benchdiff/internal/summary"
)

// Threshold asserts that the percent delta of a base field stays on one side
// of a limit, e.g. "total_time < 5".
type Threshold struct {
	Field    summary.Field
	Operator string
	Value    float64 // limit, in percent
	Raw      string  // original threshold string for display
}

// Result is the outcome of evaluating one threshold against one benchmark.
type Result struct {
	Threshold Threshold
	Benchmark string
	Actual    float64
	Pass      bool
	Message   string
}

// Evaluator applies a set of thresholds to run comparisons.
type Evaluator struct {
	thresholds []Threshold
}

// NewEvaluator creates an evaluator over the given thresholds.
func NewEvaluator(thresholds []Threshold) *Evaluator {
	return &Evaluator{thresholds: thresholds}
}

// Evaluate checks every threshold against the percent deltas of one
// benchmark's comparison.
func (e *Evaluator) Evaluate(benchmark string, c *compare.RunComparison) ([]Result, error) {
	if len(e.thresholds) == 0 {
		return nil, nil
	}

	results := make([]Result, 0, len(e.thresholds))
	for _, t := range e.thresholds {
		actual, err := c.PercentDelta(t.Field)
		if err != nil {
			return nil, fmt.Errorf("threshold %q on %s: %w", t.Raw, benchmark, err)
		}

		pass := compareValues(actual, t.Operator, t.Value)
		status := "✓"
		if !pass {
			status = "✗"
		}

		results = append(results, Result{
			Threshold: t,
			Benchmark: benchmark,
			Actual:    actual,
			Pass:      pass,
			Message:   fmt.Sprintf("%s %s: %s %+.2f%% %s %.2f%%", status, benchmark, t.Field, actual, t.Operator, t.Value),
		})
	}
	return results, nil
}

// thresholdPattern matches "field operator value", e.g. "total_time < 5".
var thresholdPattern = regexp.MustCompile(`^([a-z_]+)\s*([<>=!]+)\s*(-?[0-9.]+)$`)

// Parse parses a threshold string into a Threshold struct.
// Supported format: "<field> <operator> <percent>", where field is one of the
// base summary fields and operator is <, <=, >, >= or ==.
func Parse(s string) (Threshold, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Threshold{}, fmt.Errorf("empty threshold string")
	}

	matches := thresholdPattern.FindStringSubmatch(s)
	if matches == nil {
		return Threshold{}, fmt.Errorf("invalid threshold format: %q (expected format: field operator value, e.g. 'total_time < 5')", s)
	}

	field := summary.Field(matches[1])
	operator := matches[2]
	valueStr := matches[3]

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return Threshold{}, fmt.Errorf("invalid threshold value %q: %v", valueStr, err)
	}

	if !field.Known() {
		return Threshold{}, fmt.Errorf("unsupported field: %q (supported: total_time, average_memory, max_memory, average_cpu)", field)
	}

	if !isValidOperator(operator) {
		return Threshold{}, fmt.Errorf("unsupported operator: %q (supported: <, <=, >, >=, ==)", operator)
	}

	return Threshold{
		Field:    field,
		Operator: operator,
		Value:    value,
		Raw:      s,
	}, nil
}

// ParseMultiple parses multiple threshold strings.
func ParseMultiple(thresholds []string) ([]Threshold, error) {
	if len(thresholds) == 0 {
		return nil, nil
	}

	result := make([]Threshold, 0, len(thresholds))
	var errs []string

	for i, s := range thresholds {
		t, err := Parse(s)
		if err != nil {
			errs = append(errs, fmt.Sprintf("threshold[%d]: %v", i, err))
			continue
		}
		result = append(result, t)
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("threshold parsing errors: %s", strings.Join(errs, "; "))
	}

	return result, nil
}

func isValidOperator(operator string) bool {
	valid := []string{"<", "<=", ">", ">=", "=="}
	for _, v := range valid {
		if operator == v {
			return true
		}
	}
	return false
}

func compareValues(actual float64, operator string, limit float64) bool {
	switch operator {
	case "<":
		return actual < limit
	case "<=":
		return actual <= limit
	case ">":
		return actual > limit
	case ">=":
		return actual >= limit
	case "==":
		return actual == limit
	default:
		return false
	}
}
