package natssvc

import (
	"crypto/tls"
	"crypto/x509"
	"io/ioutil"
	"net/url"
	"os"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/batchcorp/benchbot/bot"
	"github.com/batchcorp/benchbot/cli"
)

const (
	Source = "nats"

	// QueueGroup lets several bot instances share one command subject; each
	// command is handled by exactly one of them.
	QueueGroup = "benchbot"

	RepliesSuffix = ".replies"
)

// Conn is the subset of *nats.Conn used by the service.
type Conn interface {
	Publish(subj string, data []byte) error
	QueueSubscribe(subj, queue string, cb nats.MsgHandler) (*nats.Subscription, error)
	RTT() (time.Duration, error)
	Drain() error
}

type NATSService struct {
	params *cli.Params
	conn   Conn
	bot    *bot.Bot
	sub    *nats.Subscription
	log    *logrus.Entry
}

func New(params *cli.Params, b *bot.Bot) (*NATSService, error) {
	if err := validateParams(params); err != nil {
		return nil, errors.Wrap(err, "unable to validate params")
	}

	if b == nil {
		return nil, errors.New("bot cannot be nil")
	}

	c, err := newConn(params)
	if err != nil {
		return nil, errors.Wrap(err, "unable to create new Nats client")
	}

	return &NATSService{
		params: params,
		conn:   c,
		bot:    b,
		log:    logrus.WithField("pkg", "natssvc"),
	}, nil
}

func (n *NATSService) Start() error {
	n.log.Debugf("subscribing to %s", n.params.NATSSubject)

	sub, err := n.conn.QueueSubscribe(n.params.NATSSubject, QueueGroup, n.commandHandler)
	if err != nil {
		return errors.Wrapf(err, "unable to subscribe to subject '%s'", n.params.NATSSubject)
	}

	n.sub = sub

	return nil
}

func (n *NATSService) Stop() error {
	if err := n.conn.Drain(); err != nil {
		return errors.Wrap(err, "unable to drain nats connection")
	}

	return nil
}

// Send implements bot.Sender; the channel is a NATS subject.
func (n *NATSService) Send(channelID, content string) error {
	if err := n.conn.Publish(channelID, []byte(content)); err != nil {
		return errors.Wrapf(err, "unable to publish msg to subj '%s'", channelID)
	}

	return nil
}

// replySubject is where replies for msg go: its reply inbox if the sender set
// one, otherwise the shared replies subject.
func (n *NATSService) replySubject(msg *nats.Msg) string {
	if msg.Reply != "" {
		return msg.Reply
	}

	return n.params.NATSSubject + RepliesSuffix
}

// newConn creates a new Nats client connection
func newConn(params *cli.Params) (*nats.Conn, error) {
	_, err := url.Parse(params.NATSAddress[0])
	if err != nil {
		return nil, errors.Wrap(err, "unable to parse NATS address")
	}

	opts := []nats.Option{
		nats.Name("benchbot"),
	}

	if params.NATSUseTLS {
		tlsConfig, err := generateTLSConfig(
			params.NATSTLSCaCert,
			params.NATSTLSClientCert,
			params.NATSTLSClientKey,
			params.NATSTLSSkipVerify,
		)
		if err != nil {
			return nil, errors.Wrap(err, "Unable to generate TLS Config")
		}

		opts = append(opts, nats.Secure(tlsConfig))
	}

	c, err := nats.Connect(params.NATSAddress[0], opts...)
	if err != nil {
		return nil, errors.Wrap(err, "unable to create new nats client")
	}

	return c, nil
}

func validateParams(params *cli.Params) error {
	if params == nil {
		return errors.New("params cannot be nil")
	}

	if len(params.NATSAddress) == 0 {
		return errors.New("nats address cannot be empty or nil")
	}

	if params.NATSSubject == "" {
		return errors.New("nats subject cannot be empty")
	}

	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func generateTLSConfig(caCert, clientCert, clientKey string, skipVerify bool) (*tls.Config, error) {
	certpool := x509.NewCertPool()

	if len(caCert) > 0 && fileExists(caCert) {
		pemCerts, err := ioutil.ReadFile(caCert)
		if err == nil {
			certpool.AppendCertsFromPEM(pemCerts)
		}
	}

	certs := make([]tls.Certificate, 0)

	if len(clientCert) > 0 && len(clientKey) > 0 && fileExists(clientCert) {
		cert, err := tls.LoadX509KeyPair(clientCert, clientKey)
		if err != nil {
			return nil, errors.Wrap(err, "unable to load client certificate")
		}

		cert.Leaf, err = x509.ParseCertificate(cert.Certificate[0])
		if err != nil {
			return nil, errors.Wrap(err, "unable to parse certificate")
		}

		certs = append(certs, cert)
	}

	return &tls.Config{
		RootCAs:            certpool,
		InsecureSkipVerify: skipVerify,
		Certificates:       certs,
		MinVersion:         tls.VersionTLS12,
	}, nil
}
