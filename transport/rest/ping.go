package rest

import (
	"io"
	"net/http"
)

// ping - liveness probe for the process.
func ping(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	_, _ = io.WriteString(w, "pong")
}
