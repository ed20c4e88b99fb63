package main

import "net/http"

// @Summary		Health check
// @Description	returns the status of the service and whether the database answers
// @Tags			Health
// @Produce		json
// @Success		200	{object}	map[string]string
// @Failure		503	{object}	map[string]string
// @Router			/health [get]
func (app *application) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	app.mu.Lock()
	ok := app.console.Ping(r.Context())
	app.mu.Unlock()

	data := map[string]string{
		"status":   "available",
		"version":  "0.1.0",
		"database": "ok",
	}
	status := http.StatusOK
	if !ok {
		data["status"] = "degraded"
		data["database"] = "unreachable"
		status = http.StatusServiceUnavailable
	}

	if err := writeJSON(w, status, data); err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
	}
}
