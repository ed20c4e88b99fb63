package store

import (
	"context"
	"errors"
	"fmt"
)

type ProductStore struct {
	stock     *StockStore
	execution *ExecutionStore
	orders    *OrderStore
	requests  *RequestStore
}

// ProductOverview cross-references the four datasets around one product code.
type ProductOverview struct {
	Code      string          `json:"codigo"`
	Stock     *StockItem      `json:"stock"`
	Execution []ExecutionItem `json:"ejecucion"`
	Orders    []Order         `json:"ordenes"`
	Requests  []Request       `json:"pedidos"`
}

func (ps *ProductStore) Overview(ctx context.Context, code string) (*ProductOverview, error) {
	if code == "" {
		return nil, errors.New("product code is required")
	}
	out := &ProductOverview{Code: code}

	stock, err := ps.stock.GetByCode(ctx, code)
	switch {
	case errors.Is(err, ErrNotFound):
	case err != nil:
		return nil, err
	default:
		out.Stock = stock
	}

	if out.Execution, err = ps.execution.List(ctx, ExecutionFilter{Code: code, Limit: maxLimit}); err != nil {
		return nil, err
	}
	if out.Orders, err = ps.orders.List(ctx, OrderFilter{Code: code, Limit: maxLimit}); err != nil {
		return nil, err
	}
	if out.Requests, err = ps.requests.List(ctx, RequestFilter{Code: code, Limit: maxLimit}); err != nil {
		return nil, err
	}

	if out.Stock == nil && len(out.Execution) == 0 && len(out.Orders) == 0 && len(out.Requests) == 0 {
		return nil, fmt.Errorf("product %s: %w", code, ErrNotFound)
	}
	return out, nil
}
