package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/response"
	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/siciap"
	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/store"
)

type ProductResponse = response.APIResponse[*store.ProductOverview]

// @Summary		Product overview
// @Description	Stock, execution, orders and requests of one product code
// @Tags			Products
// @Produce		json
// @Param			code	path		string	true	"Product code"
// @Success		200		{object}	ProductResponse
// @Failure		404		{object}	response.ErrorResponse
// @Router			/products/{code} [get]
func (app *application) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	overview, err := runQuery[*store.ProductOverview](app, r, "product", siciap.Params{"code": chi.URLParam(r, "code")})
	if err != nil {
		writeError(w, "failed to get product", err)
		return
	}

	writeJSON(w, http.StatusOK, ProductResponse{
		Success: true,
		Data:    overview,
	})
}
