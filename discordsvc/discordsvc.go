package discordsvc

import (
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/batchcorp/benchbot/bot"
	"github.com/batchcorp/benchbot/cli"
)

const Source = "discord"

const Intents = discordgo.IntentGuildMessages |
	discordgo.IntentDirectMessages |
	discordgo.IntentMessageContent

// Session is the subset of *discordgo.Session used by the service.
type Session interface {
	AddHandler(handler interface{}) func()
	Open() error
	Close() error
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	HeartbeatLatency() time.Duration
}

type DiscordService struct {
	session     Session
	bot         *bot.Bot
	selfID      string
	selfIDMutex *sync.RWMutex
	log         *logrus.Entry
}

func New(params *cli.Params, b *bot.Bot) (*DiscordService, error) {
	if err := validateParams(params); err != nil {
		return nil, errors.Wrap(err, "unable to validate params")
	}

	if b == nil {
		return nil, errors.New("bot cannot be nil")
	}

	s, err := discordgo.New("Bot " + params.DiscordToken)
	if err != nil {
		return nil, errors.Wrap(err, "unable to create discord session")
	}

	s.Identify.Intents = Intents

	return newWithSession(s, b), nil
}

func newWithSession(s Session, b *bot.Bot) *DiscordService {
	return &DiscordService{
		session:     s,
		bot:         b,
		selfIDMutex: &sync.RWMutex{},
		log:         logrus.WithField("pkg", "discordsvc"),
	}
}

// Start registers event handlers and opens the gateway connection. Heartbeats
// and reconnects are handled by discordgo.
func (d *DiscordService) Start() error {
	d.session.AddHandler(d.readyHandler)
	d.session.AddHandler(d.messageCreateHandler)

	if err := d.session.Open(); err != nil {
		return errors.Wrap(err, "unable to open discord gateway connection")
	}

	return nil
}

func (d *DiscordService) Stop() error {
	if err := d.session.Close(); err != nil {
		return errors.Wrap(err, "unable to close discord session")
	}

	return nil
}

// Send implements bot.Sender.
func (d *DiscordService) Send(channelID, content string) error {
	if _, err := d.session.ChannelMessageSend(channelID, content); err != nil {
		return errors.Wrapf(err, "unable to send message to channel '%s'", channelID)
	}

	return nil
}

func (d *DiscordService) latency() (time.Duration, error) {
	return d.session.HeartbeatLatency(), nil
}

func (d *DiscordService) setSelfID(id string) {
	d.selfIDMutex.Lock()
	defer d.selfIDMutex.Unlock()

	d.selfID = id
}

func (d *DiscordService) isSelf(id string) bool {
	d.selfIDMutex.RLock()
	defer d.selfIDMutex.RUnlock()

	return d.selfID != "" && d.selfID == id
}

func validateParams(params *cli.Params) error {
	if params == nil {
		return errors.New("params cannot be nil")
	}

	if params.DiscordToken == "" {
		return errors.New("discord token cannot be empty")
	}

	return nil
}
