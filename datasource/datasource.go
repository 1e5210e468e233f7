// Package datasource defines the shared vocabulary of zenframe's loader
// collaborators. Loaders produce an (Index, Columns) pair satisfying the
// Table invariants; the core performs the single validation pass.
package datasource

import (
	"github.com/zenframe/zenframe"
)

// ColumnSpec declares one column a loader should produce: its label and
// element type. For the JSONL parser the label doubles as a gjson path.
type ColumnSpec struct {
	Name string
	Type zenframe.ColumnType
}
