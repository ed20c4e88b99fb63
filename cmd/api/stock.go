package main

import (
	"net/http"

	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/response"
	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/store"
)

type StockResponse = response.APIResponse[[]store.StockItem]
type StockBandsResponse = response.APIResponse[[]store.BandCount]

// @Summary		Critical stock
// @Description	Stock rows with their criticality band and months of coverage
// @Tags			Stock
// @Produce		json
// @Param			search	query		string	false	"Matches code or product"
// @Param			band	query		string	false	"Sin DMP, Sin Stock, Atención, Precaución or Óptimo"
// @Param			limit	query		int		false	"Maximum rows"
// @Success		200		{object}	StockResponse
// @Failure		400		{object}	response.ErrorResponse
// @Router			/stock [get]
func (app *application) handleGetStock(w http.ResponseWriter, r *http.Request) {
	items, err := runQuery[[]store.StockItem](app, r, "stock", queryParams(r))
	if err != nil {
		writeError(w, "failed to get stock", err)
		return
	}

	writeJSON(w, http.StatusOK, StockResponse{
		Success: true,
		Data:    items,
	})
}

// @Summary		Stock per criticality band
// @Tags			Stock
// @Produce		json
// @Success		200	{object}	StockBandsResponse
// @Router			/stock/bands [get]
func (app *application) handleGetStockBands(w http.ResponseWriter, r *http.Request) {
	bands, err := runQuery[[]store.BandCount](app, r, "stock_bands", nil)
	if err != nil {
		writeError(w, "failed to get stock bands", err)
		return
	}

	writeJSON(w, http.StatusOK, StockBandsResponse{
		Success: true,
		Data:    bands,
	})
}
