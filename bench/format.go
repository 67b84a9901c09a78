package bench

import (
	"fmt"
	"math"
	"time"

	"github.com/batchcorp/benchbot/types"
)

// FormatResult renders a single workload section.
func FormatResult(r *types.Result) string {
	return fmt.Sprintf("**%s**\n• Test: %s\n• %s: %d\n• Elapsed time: %s",
		r.Title, r.Description, r.StatLabel, r.Statistic, FormatDuration(r.Elapsed))
}

// FormatDuration picks a unit so the value reads naturally and prints it with
// two decimals.
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%.2fµs", float64(d)/float64(time.Microsecond))
	case d < time.Second:
		return fmt.Sprintf("%.2fms", float64(d)/float64(time.Millisecond))
	default:
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
}

// Milliseconds returns d in ms, truncated to two decimal places.
func Milliseconds(d time.Duration) float64 {
	return round(float64(d)/float64(time.Millisecond), 2)
}

func round(f float64, places int) float64 {
	pow := math.Pow(10., float64(places))
	rounded := float64(int(f*pow)) / pow
	return rounded
}
