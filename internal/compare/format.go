package compare

import (
	"fmt"
	"math"

	"benchdiff/internal/summary"
)

// memoryUnits are the binary units tried in order once a value reaches 1024
// bytes.
var memoryUnits = []string{"KiB", "MiB", "GiB", "TiB", "PiB", "EiB"}

// formatField renders v according to the field's category. Time values are
// fixed point with a minimum width of three characters, memory values are
// scaled to the largest binary unit that keeps them under 1024, everything
// else is plain fixed point.
func formatField(f summary.Field, v float64) string {
	switch f.Category() {
	case summary.CategoryTime:
		return fmt.Sprintf("%3.2f", v)
	case summary.CategoryMemory:
		value, _ := formatMemory(v)
		return value
	default:
		return fmt.Sprintf("%.2f", v)
	}
}

// formatMemory scales a byte count to its display value and unit label.
// Values below 1024 stay as integer byte counts; exactly 1 reads "1 Byte".
func formatMemory(v float64) (value, unit string) {
	if v == 1 {
		return "1", "Byte"
	}
	if v < 1024 {
		return fmt.Sprintf("%d", int64(v)), "Bytes"
	}

	for i, u := range memoryUnits {
		scale := math.Pow(1024, float64(i+2))
		if math.Round(v/scale*1024) < 1024 {
			return fmt.Sprintf("%.2f", v*1024/scale), u
		}
	}

	// Beyond EiB there is nothing larger to scale to.
	last := len(memoryUnits)
	return fmt.Sprintf("%.2f", v/math.Pow(1024, float64(last))), memoryUnits[last-1]
}
