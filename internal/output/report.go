// Package output renders run comparisons as console tables, JSON, and HTML.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"

	"benchdiff/internal/compare"
	"benchdiff/internal/summary"
)

// Row is one formatted comparison line.
type Row struct {
	Field        string  `json:"field"`
	OldValue     string  `json:"old_value"`
	OldSuffix    string  `json:"old_suffix,omitempty"`
	OldStdDev    string  `json:"old_std_dev"`
	NewValue     string  `json:"new_value"`
	NewSuffix    string  `json:"new_suffix,omitempty"`
	NewStdDev    string  `json:"new_std_dev"`
	PercentDelta float64 `json:"percent_delta"`
}

// Comparison is the fully formatted comparison of one benchmark.
type Comparison struct {
	Benchmark string `json:"benchmark"`
	Rows      []Row  `json:"rows"`
}

// BuildComparison formats every known field of a run comparison into rows.
func BuildComparison(benchmark string, c *compare.RunComparison) (Comparison, error) {
	result := Comparison{Benchmark: benchmark}

	for f := range summary.Fields() {
		row := Row{Field: string(f)}
		var err error

		if row.OldValue, err = c.OldValue(f); err != nil {
			return Comparison{}, err
		}
		if row.OldSuffix, err = c.OldSuffix(f); err != nil {
			return Comparison{}, err
		}
		if row.OldStdDev, err = c.OldStdDev(f); err != nil {
			return Comparison{}, err
		}
		if row.NewValue, err = c.NewValue(f); err != nil {
			return Comparison{}, err
		}
		if row.NewSuffix, err = c.NewSuffix(f); err != nil {
			return Comparison{}, err
		}
		if row.NewStdDev, err = c.NewStdDev(f); err != nil {
			return Comparison{}, err
		}
		if row.PercentDelta, err = c.PercentDelta(f); err != nil {
			return Comparison{}, err
		}

		result.Rows = append(result.Rows, row)
	}

	return result, nil
}

// PrintComparison writes one benchmark's comparison table. Colors covers the
// header and the delta column; deltas color green when negative (lower is
// better) and red otherwise.
func PrintComparison(w io.Writer, comp Comparison, colors bool) {
	fmt.Fprintln(w, headerText(comp.Benchmark, colors))
	fmt.Fprintln(w, headerText(fmt.Sprintf("  %-16s %12s %-5s %12s %12s %-5s %12s %10s",
		"field", "old", "unit", "std dev", "new", "unit", "std dev", "delta"), colors))

	for _, row := range comp.Rows {
		fmt.Fprintf(w, "  %-16s %12s %-5s %12s %12s %-5s %12s %s\n",
			row.Field,
			row.OldValue,
			row.OldSuffix,
			row.OldStdDev,
			row.NewValue,
			row.NewSuffix,
			row.NewStdDev,
			deltaText(row.PercentDelta, colors),
		)
	}
}

// PrintJSONReport writes all comparisons as one indented JSON document.
func PrintJSONReport(w io.Writer, comps []Comparison) error {
	if comps == nil {
		comps = []Comparison{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(comps)
}

func headerText(s string, colors bool) string {
	if !colors {
		return s
	}
	return color.New(color.FgHiWhite, color.Bold).Sprint(s)
}

// deltaText renders a percent delta, colored by whether it is an improvement.
// Padding happens before coloring so escape codes do not skew the column.
func deltaText(delta float64, colors bool) string {
	text := fmt.Sprintf("%10s", fmt.Sprintf("%+.2f%%", delta))
	if !colors {
		return text
	}
	if delta < 0 {
		return color.New(color.FgGreen).Sprint(text)
	}
	return color.New(color.FgRed).Sprint(text)
}
