package handlers

import "net/http"

// KeepAlive answers the hosting platform's liveness probe and the
// self-ping worker.
func KeepAlive(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("✅ AlboomX bot is running"))
}
