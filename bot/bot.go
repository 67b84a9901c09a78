package bot

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/batchcorp/benchbot/bench"
	"github.com/batchcorp/benchbot/metrics"
	"github.com/batchcorp/benchbot/types"
)

const (
	Trigger     = "?benchmark"
	PingCommand = "?ping"
)

// Sender delivers a text reply to a channel. Implemented by each gateway
// (discord session, nats connection).
type Sender interface {
	Send(channelID, content string) error
}

type Runner interface {
	Run(variant types.Variant) *types.Report
}

// LatencyFunc reports the gateway round-trip latency for ?ping.
type LatencyFunc func() (time.Duration, error)

type Bot struct {
	runner Runner
	source string
	log    *logrus.Entry
}

// New creates a dispatcher. Source labels metrics and logs with the gateway
// the commands arrive from.
func New(runner Runner, source string) (*Bot, error) {
	if runner == nil {
		return nil, errors.New("runner cannot be nil")
	}

	if source == "" {
		return nil, errors.New("source cannot be empty")
	}

	return &Bot{
		runner: runner,
		source: source,
		log:    logrus.WithFields(logrus.Fields{"pkg": "bot", "source": source}),
	}, nil
}

// Parse reports whether content is a benchmark request and which variant it
// asks for. Any message starting with Trigger qualifies; the second token
// selects the variant and anything unrecognized means all.
func Parse(content string) (types.Variant, bool) {
	if !strings.HasPrefix(content, Trigger) {
		return "", false
	}

	parts := strings.Fields(content)

	if len(parts) < 2 {
		return types.AllVariant, true
	}

	return bench.ParseVariant(parts[1]), true
}

func Acknowledgement(variant types.Variant) string {
	return fmt.Sprintf("Running benchmark '%s'...", variant)
}

// Handle processes one inbound message and returns true if it was a
// benchmark request. The benchmark only runs after the acknowledgement was
// delivered; a failed result send is logged and dropped.
func (b *Bot) Handle(s Sender, channelID, content string) bool {
	variant, ok := Parse(content)
	if !ok {
		return false
	}

	llog := b.log.WithFields(logrus.Fields{
		"channel_id": channelID,
		"variant":    variant,
	})

	llog.Info("Received benchmark request")

	metrics.IncCommand(string(variant), b.source)

	if err := s.Send(channelID, Acknowledgement(variant)); err != nil {
		metrics.IncSendError(metrics.AckStage)
		llog.Errorf("unable to send acknowledgement, aborting: %s", err)

		return true
	}

	report := b.runner.Run(variant)

	for _, r := range report.Results {
		metrics.ObserveDuration(string(r.Variant), r.Elapsed)
	}

	if variant == types.AllVariant {
		metrics.ObserveDuration(string(types.AllVariant), report.TotalElapsed)
	}

	if err := s.Send(channelID, report.Text); err != nil {
		metrics.IncSendError(metrics.ResultStage)
		llog.Errorf("unable to send benchmark results: %s", err)

		return true
	}

	llog.Infof("Benchmark complete in %s", report.TotalElapsed)

	return true
}

// HandlePing answers ?ping with the gateway latency. Returns true if content
// was a ping command.
func (b *Bot) HandlePing(s Sender, channelID, content string, latency LatencyFunc) bool {
	parts := strings.Fields(content)

	if len(parts) == 0 || parts[0] != PingCommand {
		return false
	}

	reply := "Pong!"

	if latency != nil {
		d, err := latency()
		if err != nil {
			b.log.Warningf("unable to determine latency: %s", err)
		} else {
			reply = fmt.Sprintf("Pong! Latency: %dms", d.Milliseconds())
		}
	}

	if err := s.Send(channelID, reply); err != nil {
		metrics.IncSendError(metrics.PingStage)
		b.log.Errorf("unable to send ping reply to channel '%s': %s", channelID, err)
	}

	return true
}
