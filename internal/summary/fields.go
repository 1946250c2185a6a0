package summary

import "iter"

// Field is a named metric recorded in every benchmark summary.
type Field string

const (
	FieldTotalTime     Field = "total_time"
	FieldAverageMemory Field = "average_memory"
	FieldMaxMemory     Field = "max_memory"
	FieldAverageCPU    Field = "average_cpu"
)

// StdDevPrefix is prepended to a base field name to form the name of its
// standard deviation counterpart.
const StdDevPrefix = "std_dev_"

// Category determines how a field's values are formatted and which unit
// suffix is displayed beside them.
type Category int

const (
	CategoryTime Category = iota
	CategoryMemory
	CategoryOther
)

// fieldCategories is the fixed classification table. Fields are never
// classified by name inspection.
var fieldCategories = map[Field]Category{
	FieldTotalTime:     CategoryTime,
	FieldAverageMemory: CategoryMemory,
	FieldMaxMemory:     CategoryMemory,
	FieldAverageCPU:    CategoryOther,
}

// fieldOrder lists all known fields grouped by category: time fields first,
// then memory fields, then unitless fields.
var fieldOrder = []Field{
	FieldTotalTime,
	FieldAverageMemory,
	FieldMaxMemory,
	FieldAverageCPU,
}

// Category returns the formatting category for the field. Unknown fields
// report CategoryOther.
func (f Field) Category() Category {
	if c, ok := fieldCategories[f]; ok {
		return c
	}
	return CategoryOther
}

// StdDevName returns the summary key of the field's standard deviation
// counterpart, e.g. "std_dev_total_time".
func (f Field) StdDevName() string {
	return StdDevPrefix + string(f)
}

// Known reports whether f is one of the known base fields.
func (f Field) Known() bool {
	_, ok := fieldCategories[f]
	return ok
}

// Fields returns a restartable sequence over all known fields in display
// order.
func Fields() iter.Seq[Field] {
	return func(yield func(Field) bool) {
		for _, f := range fieldOrder {
			if !yield(f) {
				return
			}
		}
	}
}
