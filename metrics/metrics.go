package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	AckStage    = "ack"
	ResultStage = "result"
	PingStage   = "ping"
)

var (
	commandsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "benchbot", Name: "commands_total", Help: "Benchmark commands received.",
	}, []string{"variant", "source"})

	sendErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "benchbot", Name: "send_errors_total", Help: "Replies that could not be delivered.",
	}, []string{"stage"})

	benchmarkDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "benchbot", Name: "benchmark_duration_seconds", Help: "Wall-clock time of benchmark workloads.",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 14),
	}, []string{"variant"})
)

func init() {
	prometheus.MustRegister(commandsTotal, sendErrorsTotal, benchmarkDuration)
}

func IncCommand(variant, source string) {
	commandsTotal.WithLabelValues(variant, source).Inc()
}

func IncSendError(stage string) {
	sendErrorsTotal.WithLabelValues(stage).Inc()
}

func ObserveDuration(variant string, d time.Duration) {
	benchmarkDuration.WithLabelValues(variant).Observe(d.Seconds())
}
