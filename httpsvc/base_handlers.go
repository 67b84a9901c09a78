package httpsvc

import (
	"net/http"
)

func (h *HTTPService) healthCheckHandler(rw http.ResponseWriter, r *http.Request) {
	rw.WriteHeader(http.StatusOK)

	if _, err := rw.Write([]byte("ok")); err != nil {
		h.log.Errorf("unable to write health output: %s", err)
	}
}

func (h *HTTPService) versionHandler(rw http.ResponseWriter, r *http.Request) {
	writeJSON(http.StatusOK, map[string]string{"version": h.version}, rw)
}
