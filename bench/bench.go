package bench

import (
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/batchcorp/benchbot/types"
)

const (
	PrimeBound = 100000

	MapInserts = 1000000
	MapProbes  = 10000

	NumSequences   = 100
	SequenceLength = 10000
	SequenceModulo = 255
)

// Bench runs the fixed synthetic workloads. It holds no mutable state, so a
// single instance may be shared by concurrently running handlers.
type Bench struct {
	log *logrus.Entry
}

func New() *Bench {
	return &Bench{
		log: logrus.WithField("pkg", "bench"),
	}
}

// ParseVariant maps a command token to a variant. Anything that is not one of
// the individual workloads falls back to AllVariant.
func ParseVariant(token string) types.Variant {
	switch types.Variant(token) {
	case types.CPUVariant, types.MemoryVariant, types.IOVariant:
		return types.Variant(token)
	default:
		return types.AllVariant
	}
}

// Run executes the requested workload synchronously and returns a rendered
// report. Unknown variants run everything.
func (b *Bench) Run(variant types.Variant) *types.Report {
	llog := b.log.WithField("variant", variant)
	llog.Debug("starting benchmark")

	var report *types.Report

	switch variant {
	case types.CPUVariant:
		report = single(b.CPU())
	case types.MemoryVariant:
		report = single(b.Memory())
	case types.IOVariant:
		report = single(b.IO())
	default:
		report = b.All()
	}

	llog.Debugf("benchmark finished in %s", report.TotalElapsed)

	return report
}

// All runs cpu, memory and io in that order. The total is measured by its own
// timer, independent of the per-workload timers.
func (b *Bench) All() *types.Report {
	start := time.Now()

	results := []*types.Result{
		b.CPU(),
		b.Memory(),
		b.IO(),
	}

	elapsed := time.Since(start)

	sections := make([]string, 0, len(results))

	for _, r := range results {
		sections = append(sections, FormatResult(r))
	}

	return &types.Report{
		Variant:      types.AllVariant,
		Results:      results,
		TotalElapsed: elapsed,
		Text:         formatAll(sections, elapsed),
	}
}

func single(r *types.Result) *types.Report {
	return &types.Report{
		Variant:      r.Variant,
		Results:      []*types.Result{r},
		TotalElapsed: r.Elapsed,
		Text:         FormatResult(r),
	}
}

func formatAll(sections []string, total time.Duration) string {
	var sb strings.Builder

	sb.WriteString("# Benchmark results\n\n")

	for _, s := range sections {
		sb.WriteString(s)
		sb.WriteString("\n\n")
	}

	sb.WriteString("**Total time: " + FormatDuration(total) + "**\n\n")
	sb.WriteString("Use `?benchmark cpu`, `?benchmark memory` or `?benchmark io` to run a single test.")

	return sb.String()
}
