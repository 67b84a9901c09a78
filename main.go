package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/batchcorp/benchbot/bench"
	"github.com/batchcorp/benchbot/bot"
	"github.com/batchcorp/benchbot/cli"
	"github.com/batchcorp/benchbot/discordsvc"
	"github.com/batchcorp/benchbot/httpsvc"
	"github.com/batchcorp/benchbot/natssvc"
)

var (
	VERSION = "UNSET"

	params = &cli.Params{}
)

func init() {
	loadEnvFile()

	kingpin.Flag("discord-token", "Discord bot token").
		Envar("DISCORD_GO_TOKEN").
		Required().
		StringVar(&params.DiscordToken)

	kingpin.Flag("debug", "Enable debug output").
		Envar("BENCHBOT_DEBUG").
		BoolVar(&params.Debug)

	kingpin.Flag("http-address", "What address to bind local HTTP server to").
		Default(":5000").
		Envar("BENCHBOT_HTTP_ADDRESS").
		StringVar(&params.HTTPAddress)

	kingpin.Flag("enable-pprof", "Enable pprof (exposes /debug/pprof/*").
		Envar("BENCHBOT_ENABLE_PPROF").
		BoolVar(&params.EnablePprof)

	kingpin.Flag("nats-address", "NATS address to accept benchmark commands on (disabled if empty)").
		Envar("BENCHBOT_NATS_ADDRESS").
		StringsVar(&params.NATSAddress)

	kingpin.Flag("nats-subject", "NATS subject to receive benchmark commands on").
		Default("benchbot.commands").
		Envar("BENCHBOT_NATS_SUBJECT").
		StringVar(&params.NATSSubject)

	kingpin.Flag("nats-use-tls", "Whether to use TLS for NATS communication").
		Default("false").
		Envar("BENCHBOT_NATS_USE_TLS").
		BoolVar(&params.NATSUseTLS)

	kingpin.Flag("nats-tls-cert", "Path to the TLS certificate for NATS communication").
		Envar("BENCHBOT_NATS_TLS_CERT").
		ExistingFileVar(&params.NATSTLSClientCert)

	kingpin.Flag("nats-tls-key", "Path to the TLS key for NATS communication").
		Envar("BENCHBOT_NATS_TLS_KEY").
		ExistingFileVar(&params.NATSTLSClientKey)

	kingpin.Flag("nats-tls-ca", "Path to the TLS CA for NATS communication").
		Envar("BENCHBOT_NATS_TLS_CA").
		ExistingFileVar(&params.NATSTLSCaCert)

	kingpin.Flag("nats-tls-skip-verify", "Skip NATS server certificate verification").
		Envar("BENCHBOT_NATS_TLS_SKIP_VERIFY").
		BoolVar(&params.NATSTLSSkipVerify)

	kingpin.CommandLine.HelpFlag.Short('h')
	kingpin.Parse()
}

// loadEnvFile populates the environment from a dotenv file so kingpin's
// Envar bindings can see it. Variables already set are not overridden.
func loadEnvFile() {
	path := os.Getenv("BENCHBOT_ENV_FILE")
	if path == "" {
		path = ".env"
	}

	if err := godotenv.Load(path); err != nil {
		logrus.Debugf("not loading env file '%s': %s", path, err)
	}
}

func main() {
	if params.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	logrus.Infof("benchbot is starting...")

	// Create dependencies
	b := bench.New()

	discordBot, err := bot.New(b, discordsvc.Source)
	if err != nil {
		logrus.Fatal("Unable to setup discord dispatcher: ", err)
	}

	d, err := discordsvc.New(params, discordBot)
	if err != nil {
		logrus.Fatal("Unable to setup discord service: ", err)
	}

	h, err := httpsvc.New(params, b, VERSION)
	if err != nil {
		logrus.Fatal("Unable to setup HTTP service: ", err)
	}

	var n *natssvc.NATSService

	if len(params.NATSAddress) > 0 {
		natsBot, err := bot.New(b, natssvc.Source)
		if err != nil {
			logrus.Fatal("Unable to setup NATS dispatcher: ", err)
		}

		n, err = natssvc.New(params, natsBot)
		if err != nil {
			logrus.Fatal("Unable to setup NATS service: ", err)
		}
	}

	// Start services
	if err := d.Start(); err != nil {
		logrus.Fatal("Unable to start discord service: ", err)
	}

	if err := h.Start(); err != nil {
		logrus.Fatal("Unable to start HTTP service: ", err)
	}

	if n != nil {
		if err := n.Start(); err != nil {
			logrus.Fatal("Unable to start NATS service: ", err)
		}
	}

	logrus.Infof("HTTP server listening on:     %s", params.HTTPAddress)
	logrus.Infof("NATS command subject:         %s", natsSubject(n))
	logrus.Infof("Version:                      %s", VERSION)
	logrus.Info("")
	logrus.Info("benchbot is ready. Send '?benchmark [cpu|memory|io]' in any channel it can read.")

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	sig := <-c
	logrus.Debugf("Caught signal: %s", sig)

	if n != nil {
		if err := n.Stop(); err != nil {
			logrus.Errorf("Unable to stop NATS service: %s", err)
		}
	}

	if err := d.Stop(); err != nil {
		logrus.Errorf("Unable to stop discord service: %s", err)
	}
}

func natsSubject(n *natssvc.NATSService) string {
	if n == nil {
		return "disabled"
	}

	return params.NATSSubject
}
