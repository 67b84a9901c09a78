package discordsvc

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/batchcorp/benchbot/bot"
	"github.com/batchcorp/benchbot/cli"
	"github.com/batchcorp/benchbot/types"
)

// fakeSession records outbound messages instead of talking to discord.
type fakeSession struct {
	mu       sync.Mutex
	handlers []interface{}
	sent     []string
	opened   bool
	sendErr  error
}

func (f *fakeSession) AddHandler(handler interface{}) func() {
	f.handlers = append(f.handlers, handler)
	return func() {}
}

func (f *fakeSession) Open() error  { f.opened = true; return nil }
func (f *fakeSession) Close() error { f.opened = false; return nil }

func (f *fakeSession) ChannelMessageSend(channelID string, content string, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.sendErr != nil {
		return nil, f.sendErr
	}

	f.sent = append(f.sent, channelID+"|"+content)

	return &discordgo.Message{ChannelID: channelID, Content: content}, nil
}

func (f *fakeSession) HeartbeatLatency() time.Duration { return 7 * time.Millisecond }

type staticRunner struct {
	runs int
}

func (r *staticRunner) Run(v types.Variant) *types.Report {
	r.runs++
	return &types.Report{Variant: v, Text: "done"}
}

func newTestService(t *testing.T) (*DiscordService, *fakeSession, *staticRunner) {
	t.Helper()

	r := &staticRunner{}

	b, err := bot.New(r, Source)
	if err != nil {
		t.Fatalf("bot.New: %v", err)
	}

	fs := &fakeSession{}

	return newWithSession(fs, b), fs, r
}

func message(authorID, channelID, content string) *discordgo.MessageCreate {
	return &discordgo.MessageCreate{Message: &discordgo.Message{
		ChannelID: channelID,
		Content:   content,
		Author:    &discordgo.User{ID: authorID},
	}}
}

func TestNewRequiresToken(t *testing.T) {
	if _, err := New(&cli.Params{}, nil); err == nil {
		t.Fatal("expected error for missing token")
	}

	if _, err := New(nil, nil); err == nil {
		t.Fatal("expected error for nil params")
	}
}

func TestStartRegistersHandlers(t *testing.T) {
	d, fs, _ := newTestService(t)

	if err := d.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	if !fs.opened {
		t.Fatal("expected session to be opened")
	}

	if len(fs.handlers) != 2 {
		t.Fatalf("expected 2 handlers, got %d", len(fs.handlers))
	}
}

func TestOnMessageBenchmark(t *testing.T) {
	d, fs, r := newTestService(t)

	d.onMessage(message("user-1", "chan-1", "?benchmark cpu"))

	if r.runs != 1 {
		t.Fatalf("expected one run, got %d", r.runs)
	}

	want := []string{"chan-1|" + bot.Acknowledgement(types.CPUVariant), "chan-1|done"}
	if len(fs.sent) != 2 || fs.sent[0] != want[0] || fs.sent[1] != want[1] {
		t.Fatalf("unexpected messages %v", fs.sent)
	}
}

func TestOnMessageIgnoresSelf(t *testing.T) {
	d, fs, r := newTestService(t)

	d.onReady(&discordgo.Ready{User: &discordgo.User{ID: "bot-id", Username: "benchbot"}})
	d.onMessage(message("bot-id", "chan-1", "?benchmark"))

	if r.runs != 0 || len(fs.sent) != 0 {
		t.Fatalf("expected own message to be ignored, got %d runs and %v", r.runs, fs.sent)
	}
}

func TestOnMessagePing(t *testing.T) {
	d, fs, r := newTestService(t)

	d.onMessage(message("user-1", "chan-1", "?ping"))

	if r.runs != 0 {
		t.Fatalf("ping must not run a benchmark")
	}

	if len(fs.sent) != 1 || fs.sent[0] != "chan-1|Pong! Latency: 7ms" {
		t.Fatalf("unexpected ping reply %v", fs.sent)
	}
}

func TestOnMessageAckFailure(t *testing.T) {
	d, fs, r := newTestService(t)
	fs.sendErr = errors.New("missing permissions")

	d.onMessage(message("user-1", "chan-1", "?benchmark io"))

	if r.runs != 0 {
		t.Fatalf("expected no benchmark run after failed ack, got %d", r.runs)
	}
}

func TestOnMessageNil(t *testing.T) {
	d, fs, _ := newTestService(t)

	d.onMessage(nil)
	d.onMessage(&discordgo.MessageCreate{})

	if len(fs.sent) != 0 {
		t.Fatalf("expected nothing sent, got %v", fs.sent)
	}
}
