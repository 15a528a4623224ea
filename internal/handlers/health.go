package handlers

import "net/http"

// Health reports that the server is up. It does not touch the database.
func Health(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, "Server is running", map[string]string{"status": "ok"})
}

// NotFound is the catch-all handler for unmatched routes.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Route not found")
}
