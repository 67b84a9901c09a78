package discordsvc

import (
	"github.com/bwmarrin/discordgo"
)

func (d *DiscordService) readyHandler(s *discordgo.Session, r *discordgo.Ready) {
	d.onReady(r)
}

func (d *DiscordService) onReady(r *discordgo.Ready) {
	if r.User != nil {
		d.setSelfID(r.User.ID)
	}

	d.log.Infof("connected to discord as '%s' (%d guilds)", userName(r.User), len(r.Guilds))
}

// messageCreateHandler is invoked by discordgo in its own goroutine per event,
// so a long-running benchmark does not block other messages.
func (d *DiscordService) messageCreateHandler(s *discordgo.Session, m *discordgo.MessageCreate) {
	d.onMessage(m)
}

func (d *DiscordService) onMessage(m *discordgo.MessageCreate) {
	if m == nil || m.Message == nil {
		return
	}

	// Never react to our own replies
	if m.Author != nil && d.isSelf(m.Author.ID) {
		return
	}

	if d.bot.HandlePing(d, m.ChannelID, m.Content, d.latency) {
		return
	}

	d.bot.Handle(d, m.ChannelID, m.Content)
}

func userName(u *discordgo.User) string {
	if u == nil {
		return "unknown"
	}

	return u.Username
}
