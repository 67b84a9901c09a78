package httpsvc

import (
	"encoding/json"
	"errors"
	"net/http"
	_ "net/http/pprof"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/batchcorp/benchbot/bot"
	"github.com/batchcorp/benchbot/cli"
)

const Source = "http"

type HTTPService struct {
	params  *cli.Params
	log     *logrus.Entry
	runner  bot.Runner
	version string
}

func New(params *cli.Params, r bot.Runner, version string) (*HTTPService, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}

	if r == nil {
		return nil, errors.New("runner cannot be nil")
	}

	return &HTTPService{
		params:  params,
		log:     logrus.WithField("pkg", "httpsvc"),
		version: version,
		runner:  r,
	}, nil
}

func (h *HTTPService) Start() error {
	server := &http.Server{Addr: h.params.HTTPAddress, Handler: h.router()}

	go func() {
		if err := server.ListenAndServe(); err != nil {
			h.log.Errorf("HTTP server error: %s", err)
		}
	}()

	return nil
}

func (h *HTTPService) router() *httprouter.Router {
	router := httprouter.New()

	router.HandlerFunc("GET", "/health-check", h.healthCheckHandler)
	router.HandlerFunc("GET", "/version", h.versionHandler)
	router.Handler("GET", "/metrics", promhttp.Handler())

	router.HandlerFunc("GET", "/bench", h.runAllBenchmarksHandler)
	router.Handle("GET", "/bench/:variant", h.runBenchmarkHandler)

	if h.params.EnablePprof {
		// net/http/pprof registers itself on the default mux
		router.Handler("GET", "/debug/pprof/*item", http.DefaultServeMux)
	}

	return router
}

func writeJSON(statusCode int, data interface{}, w http.ResponseWriter) {
	w.Header().Add("Content-type", "application/json")

	jsonData, err := json.Marshal(data)
	if err != nil {
		w.WriteHeader(500)
		logrus.Errorf("Unable to marshal data in WriteJSON: %s", err)
		return
	}

	w.WriteHeader(statusCode)

	if _, err := w.Write(jsonData); err != nil {
		logrus.Errorf("Unable to write response data: %s", err)
		return
	}
}

func writeErrorJSON(statusCode int, msg string, w http.ResponseWriter) {
	writeJSON(statusCode, map[string]string{"error": msg}, w)
}

func validateParams(params *cli.Params) error {
	if params == nil {
		return errors.New("params cannot be nil")
	}

	if params.HTTPAddress == "" {
		return errors.New("HTTP address cannot be empty")
	}

	return nil
}
