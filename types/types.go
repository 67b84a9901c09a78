package types

import (
	"time"
)

const (
	CPUVariant    Variant = "cpu"
	MemoryVariant Variant = "memory"
	IOVariant     Variant = "io"
	AllVariant    Variant = "all"
)

type Variant string

// Result is the outcome of a single workload. Statistic is deterministic for
// a given workload; Elapsed is not.
type Result struct {
	Variant     Variant       `json:"variant"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	StatLabel   string        `json:"stat_label"`
	Statistic   int           `json:"statistic"`
	Elapsed     time.Duration `json:"elapsed"`
}

type Report struct {
	Variant Variant   `json:"variant"`
	Results []*Result `json:"results"`

	// For single workloads this equals Results[0].Elapsed; for 'all' it is
	// measured by its own timer around the whole sequence.
	TotalElapsed time.Duration `json:"total_elapsed"`

	// Rendered by bench; this is what gets sent to the channel
	Text string `json:"text"`
}
