package main

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/response"
	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/siciap"
	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/siciap/load"
	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/siciap/types"
)

type IngestionResponse = response.APIResponse[*load.Result]
type DatasetCountsResponse = response.APIResponse[[]siciap.DatasetCount]

// @Summary		Load a dataset file
// @Description	Replaces the contents of the dataset table with the uploaded workbook or delimited file
// @Tags			Ingestion
// @Accept			multipart/form-data
// @Produce		json
// @Param			dataset	path		string	true	"Dataset slug (ordenes, ejecucion, stock, pedidos)"
// @Param			file	formData	file	true	"Workbook (.xlsx, .xls) or delimited text"
// @Success		201		{object}	IngestionResponse
// @Failure		400		{object}	response.ErrorResponse
// @Failure		422		{object}	response.ErrorResponse
// @Failure		500		{object}	response.ErrorResponse
// @Failure		503		{object}	response.ErrorResponse
// @Router			/ingestion/{dataset} [post]
func (app *application) handleCreateIngestion(w http.ResponseWriter, r *http.Request) {
	kind, err := types.ParseDatasetKind(chi.URLParam(r, "dataset"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, app.config.maxUploadSize)
	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSONError(w, http.StatusRequestEntityTooLarge, "file exceeds the upload limit")
			return
		}
		writeJSONError(w, http.StatusBadRequest, "missing multipart field file: "+err.Error())
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "failed to read upload: "+err.Error())
		return
	}

	app.mu.Lock()
	result, err := app.console.Load(r.Context(), kind, data, header.Filename)
	app.mu.Unlock()
	if err != nil {
		app.log.Warn(component, "Load rejected: dataset=%s file=%s error=%v", kind, header.Filename, err)
		writeError(w, "failed to load "+kind.String(), err)
		return
	}

	writeJSON(w, http.StatusCreated, IngestionResponse{
		Success: true,
		Message: "dataset loaded",
		Data:    result,
	})
}

// @Summary		Dataset row counts
// @Tags			Ingestion
// @Produce		json
// @Success		200	{object}	DatasetCountsResponse
// @Failure		503	{object}	response.ErrorResponse
// @Router			/datasets [get]
func (app *application) handleGetDatasetCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := runQuery[[]siciap.DatasetCount](app, r, "counts", nil)
	if err != nil {
		writeError(w, "failed to count datasets", err)
		return
	}

	writeJSON(w, http.StatusOK, DatasetCountsResponse{
		Success: true,
		Data:    counts,
	})
}
