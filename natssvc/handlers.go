package natssvc

import (
	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
)

// commandHandler treats the message body as chat text. nats.go delivers
// messages for one subscription sequentially, so benchmarks requested over
// NATS run one at a time per instance.
func (n *NATSService) commandHandler(msg *nats.Msg) {
	content := string(msg.Data)
	channel := n.replySubject(msg)

	n.log.WithFields(logrus.Fields{
		"subject":  msg.Subject,
		"reply_to": channel,
	}).Debugf("received command %q", content)

	if n.bot.HandlePing(n, channel, content, n.conn.RTT) {
		return
	}

	if !n.bot.Handle(n, channel, content) {
		n.log.Debugf("ignoring non-command message on %s", msg.Subject)
	}
}
