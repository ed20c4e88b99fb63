package main

import (
	"net/http"

	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/response"
	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/store"
)

type ExecutionResponse = response.APIResponse[[]store.ExecutionItem]
type CallRollupResponse = response.APIResponse[[]store.CallRollup]

// @Summary		Contract execution
// @Description	Execution items joined with the stock band of their product
// @Tags			Execution
// @Produce		json
// @Param			call_id		query		int		false	"Call id"
// @Param			code		query		string	false	"Product code"
// @Param			supplier	query		string	false	"Supplier"
// @Param			search		query		string	false	"Free text"
// @Param			limit		query		int		false	"Maximum rows"
// @Success		200			{object}	ExecutionResponse
// @Failure		400			{object}	response.ErrorResponse
// @Router			/execution [get]
func (app *application) handleGetExecution(w http.ResponseWriter, r *http.Request) {
	items, err := runQuery[[]store.ExecutionItem](app, r, "execution", queryParams(r))
	if err != nil {
		writeError(w, "failed to get execution", err)
		return
	}

	writeJSON(w, http.StatusOK, ExecutionResponse{
		Success: true,
		Data:    items,
	})
}

// @Summary		Execution per call
// @Description	Average issued percentage and pending amount per call, least executed first
// @Tags			Execution
// @Produce		json
// @Param			call_id		query		int		false	"Call id"
// @Param			supplier	query		string	false	"Supplier"
// @Success		200			{object}	CallRollupResponse
// @Failure		400			{object}	response.ErrorResponse
// @Router			/execution/calls [get]
func (app *application) handleGetCallRollup(w http.ResponseWriter, r *http.Request) {
	rollup, err := runQuery[[]store.CallRollup](app, r, "call_rollup", queryParams(r))
	if err != nil {
		writeError(w, "failed to get call rollup", err)
		return
	}

	writeJSON(w, http.StatusOK, CallRollupResponse{
		Success: true,
		Data:    rollup,
	})
}
