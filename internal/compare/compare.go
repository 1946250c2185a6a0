// Package compare formats and diffs two benchmark summaries field by field.
package compare

import (
	"errors"
	"fmt"

	"benchdiff/internal/summary"
)

// ErrZeroBaseline indicates a percent delta could not be computed because the
// old-run value is zero.
var ErrZeroBaseline = errors.New("old value is zero, percent delta undefined")

// RunComparison pairs the summaries of an old and a new benchmark run. It
// holds no other state; every view is computed on demand.
type RunComparison struct {
	oldRun *summary.Summary
	newRun *summary.Summary
}

// New builds a comparison of two summaries.
func New(oldRun, newRun *summary.Summary) *RunComparison {
	return &RunComparison{oldRun: oldRun, newRun: newRun}
}

// OldValue returns the formatted old-run value of f.
func (c *RunComparison) OldValue(f summary.Field) (string, error) {
	return formattedValue(c.oldRun, f)
}

// NewValue returns the formatted new-run value of f.
func (c *RunComparison) NewValue(f summary.Field) (string, error) {
	return formattedValue(c.newRun, f)
}

// OldStdDev returns the formatted old-run standard deviation of f.
func (c *RunComparison) OldStdDev(f summary.Field) (string, error) {
	return formattedStdDev(c.oldRun, f)
}

// NewStdDev returns the formatted new-run standard deviation of f.
func (c *RunComparison) NewStdDev(f summary.Field) (string, error) {
	return formattedStdDev(c.newRun, f)
}

// OldSuffix returns the unit label displayed beside the old-run value of f.
// For memory fields the label depends on the magnitude of the value itself.
func (c *RunComparison) OldSuffix(f summary.Field) (string, error) {
	return suffix(c.oldRun, f)
}

// NewSuffix returns the unit label displayed beside the new-run value of f.
func (c *RunComparison) NewSuffix(f summary.Field) (string, error) {
	return suffix(c.newRun, f)
}

// PercentDelta returns (new-old)/old*100 for the base field f.
func (c *RunComparison) PercentDelta(f summary.Field) (float64, error) {
	oldVal, err := c.oldRun.Value(string(f))
	if err != nil {
		return 0, err
	}
	newVal, err := c.newRun.Value(string(f))
	if err != nil {
		return 0, err
	}
	if oldVal == 0 {
		return 0, fmt.Errorf("%w: field %q", ErrZeroBaseline, f)
	}
	return (newVal - oldVal) / oldVal * 100, nil
}

func formattedValue(s *summary.Summary, f summary.Field) (string, error) {
	v, err := s.Value(string(f))
	if err != nil {
		return "", err
	}
	return formatField(f, v), nil
}

func formattedStdDev(s *summary.Summary, f summary.Field) (string, error) {
	v, err := s.StdDev(f)
	if err != nil {
		return "", err
	}
	return formatField(f, v), nil
}

func suffix(s *summary.Summary, f summary.Field) (string, error) {
	switch f.Category() {
	case summary.CategoryTime:
		return "sec", nil
	case summary.CategoryMemory:
		v, err := s.Value(string(f))
		if err != nil {
			return "", err
		}
		_, unit := formatMemory(v)
		return unit, nil
	default:
		return "", nil
	}
}
