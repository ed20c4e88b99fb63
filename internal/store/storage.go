package store

import (
	"context"

	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/db"
	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/siciap/profile"
	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/siciap/types"
)

type Storage struct {
	Schema interface {
		EnsureNamespace(ctx context.Context) error
		EnsureTable(ctx context.Context, p profile.Profile) error
	}

	Datasets interface {
		Replace(ctx context.Context, q db.Queryer, p profile.Profile, rows [][]any) (int64, error)
		Count(ctx context.Context, kind types.DatasetKind) (int64, error)
	}

	Stock interface {
		List(ctx context.Context, f StockFilter) ([]StockItem, error)
		GetByCode(ctx context.Context, code string) (*StockItem, error)
		BandSummary(ctx context.Context) ([]BandCount, error)
	}

	Execution interface {
		List(ctx context.Context, f ExecutionFilter) ([]ExecutionItem, error)
		CallRollup(ctx context.Context, f ExecutionFilter) ([]CallRollup, error)
	}

	Orders interface {
		List(ctx context.Context, f OrderFilter) ([]Order, error)
		OverdueSummary(ctx context.Context) ([]SupplierOverdue, error)
	}

	Requests interface {
		List(ctx context.Context, f RequestFilter) ([]Request, error)
	}

	Calls interface {
		List(ctx context.Context, f CallFilter) ([]CallSummary, error)
		Get(ctx context.Context, callID int64) (*CallSummary, error)
		Upsert(ctx context.Context, a Annotation) error
		SyncFromExecution(ctx context.Context) (int64, error)
	}

	Products interface {
		Overview(ctx context.Context, code string) (*ProductOverview, error)
	}
}

func NewStorage(m *db.Manager) *Storage {
	stock := &StockStore{db: m}
	execution := &ExecutionStore{db: m}
	orders := &OrderStore{db: m}
	requests := &RequestStore{db: m}

	return &Storage{
		Schema:    &SchemaStore{db: m},
		Datasets:  &DatasetStore{db: m},
		Stock:     stock,
		Execution: execution,
		Orders:    orders,
		Requests:  requests,
		Calls:     &CallStore{db: m},
		Products: &ProductStore{
			stock:     stock,
			execution: execution,
			orders:    orders,
			requests:  requests,
		},
	}
}
