package main

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/response"
	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/siciap"
	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/store"
)

type CallsResponse = response.APIResponse[[]store.CallSummary]
type CallResponse = response.APIResponse[*store.CallSummary]

// AnnotationPayload is the editable part of a call annotation.
type AnnotationPayload struct {
	Tender         *string `json:"licitacion"`
	Supplier       *string `json:"proveedor"`
	Description    *string `json:"descripcion"`
	ContractNumber *string `json:"numero_contrato"`
	StartDate      *string `json:"fecha_inicio"`
	EndDate        *string `json:"fecha_fin"`
	Recipient      *string `json:"destinatario"`
	Locations      *string `json:"lugares_entrega"`
}

// @Summary		Calls
// @Description	Call annotations with vigency and execution rollup
// @Tags			Calls
// @Produce		json
// @Param			search	query		string	false	"Free text"
// @Param			vigency	query		string	false	"Sí or Indeterminado"
// @Param			limit	query		int		false	"Maximum rows"
// @Success		200		{object}	CallsResponse
// @Router			/calls [get]
func (app *application) handleGetCalls(w http.ResponseWriter, r *http.Request) {
	params := queryParams(r)
	if v, ok := params["vigencia"]; ok {
		params["vigency"] = v
	}

	calls, err := runQuery[[]store.CallSummary](app, r, "calls", params)
	if err != nil {
		writeError(w, "failed to get calls", err)
		return
	}

	writeJSON(w, http.StatusOK, CallsResponse{
		Success: true,
		Data:    calls,
	})
}

// @Summary		Call detail
// @Tags			Calls
// @Produce		json
// @Param			id	path		int	true	"Call id"
// @Success		200	{object}	CallResponse
// @Failure		404	{object}	response.ErrorResponse
// @Router			/calls/{id} [get]
func (app *application) handleGetCall(w http.ResponseWriter, r *http.Request) {
	call, err := runQuery[*store.CallSummary](app, r, "call", siciap.Params{"call_id": chi.URLParam(r, "id")})
	if err != nil {
		writeError(w, "failed to get call", err)
		return
	}

	writeJSON(w, http.StatusOK, CallResponse{
		Success: true,
		Data:    call,
	})
}

// @Summary		Edit a call annotation
// @Description	Creates the annotation or overwrites every field of the existing one
// @Tags			Calls
// @Accept			json
// @Produce		json
// @Param			id		path		int					true	"Call id"
// @Param			body	body		AnnotationPayload	true	"Annotation fields"
// @Success		200		{object}	CallResponse
// @Failure		400		{object}	response.ErrorResponse
// @Router			/calls/{id} [put]
func (app *application) handleUpsertCall(w http.ResponseWriter, r *http.Request) {
	callID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid call id: "+err.Error())
		return
	}

	var payload AnnotationPayload
	if err := readJSON(w, r, &payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid annotation: "+err.Error())
		return
	}

	app.mu.Lock()
	call, err := app.console.Annotate(r.Context(), store.Annotation{
		CallID:         callID,
		Tender:         payload.Tender,
		Supplier:       payload.Supplier,
		Description:    payload.Description,
		ContractNumber: payload.ContractNumber,
		StartDate:      payload.StartDate,
		EndDate:        payload.EndDate,
		Recipient:      payload.Recipient,
		Locations:      payload.Locations,
	})
	app.mu.Unlock()
	if err != nil {
		writeError(w, "failed to save annotation", err)
		return
	}

	app.log.Info(component, "Annotation saved: call=%d", callID)
	writeJSON(w, http.StatusOK, CallResponse{
		Success: true,
		Message: "annotation saved",
		Data:    call,
	})
}
