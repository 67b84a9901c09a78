package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(commandsTotal.WithLabelValues("cpu", "test"))

	IncCommand("cpu", "test")
	IncCommand("cpu", "test")

	if got := testutil.ToFloat64(commandsTotal.WithLabelValues("cpu", "test")); got != before+2 {
		t.Fatalf("expected %v commands, got %v", before+2, got)
	}

	IncSendError(AckStage)

	if got := testutil.ToFloat64(sendErrorsTotal.WithLabelValues(AckStage)); got < 1 {
		t.Fatalf("expected ack send error to be counted, got %v", got)
	}
}

func TestObserveDuration(t *testing.T) {
	ObserveDuration("io", 3*time.Millisecond)

	if n := testutil.CollectAndCount(benchmarkDuration); n < 1 {
		t.Fatalf("expected at least one histogram series, got %d", n)
	}
}
