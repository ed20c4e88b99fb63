package main

import (
	"net/http"

	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/response"
	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/store"
)

type RequestsResponse = response.APIResponse[[]store.Request]

// @Summary		Pending requests
// @Tags			Requests
// @Produce		json
// @Param			code		query		string	false	"Product code"
// @Param			state		query		string	false	"Request state"
// @Param			priority	query		string	false	"Priority"
// @Param			search		query		string	false	"Free text"
// @Param			limit		query		int		false	"Maximum rows"
// @Success		200			{object}	RequestsResponse
// @Router			/requests [get]
func (app *application) handleGetRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := runQuery[[]store.Request](app, r, "requests", queryParams(r))
	if err != nil {
		writeError(w, "failed to get requests", err)
		return
	}

	writeJSON(w, http.StatusOK, RequestsResponse{
		Success: true,
		Data:    requests,
	})
}
