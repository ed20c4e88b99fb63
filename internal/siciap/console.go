// Package siciap is the operational surface of the procurement console:
// load a dataset file, run a named query, ping the database.
package siciap

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/db"
	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/logger"
	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/siciap/load"
	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/siciap/profile"
	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/siciap/types"
	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/store"
)

// ErrInvalidParams marks a query rejected before it reached the database.
var ErrInvalidParams = errors.New("invalid query")

type Console struct {
	DB      *db.Manager
	Storage *store.Storage
	loader  *load.Loader
	log     *logger.Logger
}

func NewConsole(m *db.Manager, log *logger.Logger) *Console {
	s := store.NewStorage(m)
	return &Console{
		DB:      m,
		Storage: s,
		loader:  load.NewLoader(m, s, log),
		log:     log,
	}
}

// Load ingests one file into the dataset table of kind.
func (c *Console) Load(ctx context.Context, kind types.DatasetKind, data []byte, filename string) (*load.Result, error) {
	return c.loader.Load(ctx, kind, data, filename)
}

// Annotate writes the operator fields of one call and returns the refreshed
// summary.
func (c *Console) Annotate(ctx context.Context, a store.Annotation) (*store.CallSummary, error) {
	if a.CallID <= 0 {
		return nil, fmt.Errorf("%w: id_llamado must be positive", ErrInvalidParams)
	}
	if err := c.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	if err := c.Storage.Calls.Upsert(ctx, a); err != nil {
		return nil, err
	}
	return c.Storage.Calls.Get(ctx, a.CallID)
}

func (c *Console) Ping(ctx context.Context) bool {
	return c.DB.Ping(ctx)
}

// Params are the string parameters of a named query.
type Params map[string]string

func (p Params) integer(key string) (int64, error) {
	v := strings.TrimSpace(p[key])
	if v == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: parameter %s must be an integer: %v", ErrInvalidParams, key, err)
	}
	return n, nil
}

func (p Params) limit() (int, error) {
	n, err := p.integer("limit")
	return int(n), err
}

func (p Params) flag(key string) bool {
	v, _ := strconv.ParseBool(p[key])
	return v
}

type queryFunc func(ctx context.Context, c *Console, p Params) (any, error)

var queries = map[string]queryFunc{
	"stock":       queryStock,
	"stock_bands": queryStockBands,
	"execution":   queryExecution,
	"call_rollup": queryCallRollup,
	"calls":       queryCalls,
	"call":        queryCall,
	"orders":      queryOrders,
	"overdue":     queryOverdue,
	"requests":    queryRequests,
	"product":     queryProduct,
	"counts":      queryCounts,
}

// QueryNames lists the accepted query names, sorted.
func QueryNames() []string {
	names := make([]string, 0, len(queries))
	for name := range queries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Query runs a named read. Tables that were never loaded are created empty
// first so reads on a fresh database return no rows instead of failing.
func (c *Console) Query(ctx context.Context, name string, params Params) (any, error) {
	fn, ok := queries[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown query %q, expected one of %s", ErrInvalidParams, name, strings.Join(QueryNames(), ", "))
	}
	if err := c.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	return fn(ctx, c, params)
}

// EnsureSchema creates the namespace and every dataset table if absent.
func (c *Console) EnsureSchema(ctx context.Context) error {
	if err := c.Storage.Schema.EnsureNamespace(ctx); err != nil {
		return err
	}
	for _, p := range profile.All() {
		if err := c.Storage.Schema.EnsureTable(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func queryStock(ctx context.Context, c *Console, p Params) (any, error) {
	limit, err := p.limit()
	if err != nil {
		return nil, err
	}
	return c.Storage.Stock.List(ctx, store.StockFilter{Search: p["search"], Band: p["band"], Limit: limit})
}

func queryStockBands(ctx context.Context, c *Console, _ Params) (any, error) {
	return c.Storage.Stock.BandSummary(ctx)
}

func executionFilter(p Params) (store.ExecutionFilter, error) {
	callID, err := p.integer("call_id")
	if err != nil {
		return store.ExecutionFilter{}, err
	}
	limit, err := p.limit()
	if err != nil {
		return store.ExecutionFilter{}, err
	}
	return store.ExecutionFilter{
		CallID:   callID,
		Code:     p["code"],
		Supplier: p["supplier"],
		Search:   p["search"],
		Limit:    limit,
	}, nil
}

func queryExecution(ctx context.Context, c *Console, p Params) (any, error) {
	f, err := executionFilter(p)
	if err != nil {
		return nil, err
	}
	return c.Storage.Execution.List(ctx, f)
}

func queryCallRollup(ctx context.Context, c *Console, p Params) (any, error) {
	f, err := executionFilter(p)
	if err != nil {
		return nil, err
	}
	return c.Storage.Execution.CallRollup(ctx, f)
}

func queryCalls(ctx context.Context, c *Console, p Params) (any, error) {
	limit, err := p.limit()
	if err != nil {
		return nil, err
	}
	return c.Storage.Calls.List(ctx, store.CallFilter{Search: p["search"], Vigency: p["vigency"], Limit: limit})
}

func queryCall(ctx context.Context, c *Console, p Params) (any, error) {
	id, err := p.integer("call_id")
	if err != nil {
		return nil, err
	}
	if id == 0 {
		return nil, fmt.Errorf("%w: parameter call_id is required", ErrInvalidParams)
	}
	return c.Storage.Calls.Get(ctx, id)
}

func queryOrders(ctx context.Context, c *Console, p Params) (any, error) {
	callID, err := p.integer("call_id")
	if err != nil {
		return nil, err
	}
	limit, err := p.limit()
	if err != nil {
		return nil, err
	}
	return c.Storage.Orders.List(ctx, store.OrderFilter{
		CallID:      callID,
		Code:        p["code"],
		State:       p["state"],
		Search:      p["search"],
		OverdueOnly: p.flag("overdue"),
		Limit:       limit,
	})
}

func queryOverdue(ctx context.Context, c *Console, _ Params) (any, error) {
	return c.Storage.Orders.OverdueSummary(ctx)
}

func queryRequests(ctx context.Context, c *Console, p Params) (any, error) {
	limit, err := p.limit()
	if err != nil {
		return nil, err
	}
	return c.Storage.Requests.List(ctx, store.RequestFilter{
		Code:     p["code"],
		State:    p["state"],
		Priority: p["priority"],
		Search:   p["search"],
		Limit:    limit,
	})
}

func queryProduct(ctx context.Context, c *Console, p Params) (any, error) {
	code := strings.TrimSpace(p["code"])
	if code == "" {
		return nil, fmt.Errorf("%w: parameter code is required", ErrInvalidParams)
	}
	return c.Storage.Products.Overview(ctx, code)
}

// DatasetCount is the row count of one dataset table.
type DatasetCount struct {
	Dataset string `json:"dataset" csv:"dataset"`
	Table   string `json:"table" csv:"table"`
	Rows    int64  `json:"rows" csv:"rows"`
}

func queryCounts(ctx context.Context, c *Console, _ Params) (any, error) {
	var out []DatasetCount
	for _, p := range profile.All() {
		n, err := c.Storage.Datasets.Count(ctx, p.Kind)
		if err != nil {
			return nil, err
		}
		out = append(out, DatasetCount{Dataset: p.Kind.String(), Table: p.Table, Rows: n})
	}
	return out, nil
}
