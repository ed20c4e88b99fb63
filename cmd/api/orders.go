package main

import (
	"net/http"

	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/response"
	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/store"
)

type OrdersResponse = response.APIResponse[[]store.Order]
type OverdueResponse = response.APIResponse[[]store.SupplierOverdue]

// @Summary		Purchase orders
// @Tags			Orders
// @Produce		json
// @Param			call_id	query		int		false	"Call id"
// @Param			code	query		string	false	"Product code"
// @Param			state	query		string	false	"Order state"
// @Param			overdue	query		bool	false	"Only orders with overdue days"
// @Param			search	query		string	false	"Free text"
// @Param			limit	query		int		false	"Maximum rows"
// @Success		200		{object}	OrdersResponse
// @Failure		400		{object}	response.ErrorResponse
// @Router			/orders [get]
func (app *application) handleGetOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := runQuery[[]store.Order](app, r, "orders", queryParams(r))
	if err != nil {
		writeError(w, "failed to get orders", err)
		return
	}

	writeJSON(w, http.StatusOK, OrdersResponse{
		Success: true,
		Data:    orders,
	})
}

// @Summary		Overdue orders per supplier
// @Tags			Orders
// @Produce		json
// @Success		200	{object}	OverdueResponse
// @Router			/orders/overdue [get]
func (app *application) handleGetOverdueSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := runQuery[[]store.SupplierOverdue](app, r, "overdue", nil)
	if err != nil {
		writeError(w, "failed to get overdue summary", err)
		return
	}

	writeJSON(w, http.StatusOK, OverdueResponse{
		Success: true,
		Data:    summary,
	})
}
