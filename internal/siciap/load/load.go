// Package load ingests one uploaded file into its dataset table, replacing
// the previous contents in a single transaction.
package load

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/db"
	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/logger"
	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/siciap/mapping"
	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/siciap/profile"
	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/siciap/types"
	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/siciap/workbook"
	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/store"
)

const component = "Loader"

type Result struct {
	RunID    string            `json:"run_id"`
	Kind     types.DatasetKind `json:"-"`
	Dataset  string            `json:"dataset"`
	Table    string            `json:"table"`
	Strategy string            `json:"strategy"`
	Rows     int64             `json:"rows"`
	Warnings []types.Warning   `json:"warnings"`
	// Synced counts annotations created after an execution load.
	Synced  int64  `json:"synced"`
	SyncErr string `json:"sync_error,omitempty"`
}

type Loader struct {
	db      *db.Manager
	storage *store.Storage
	reader  *workbook.Reader
	log     *logger.Logger
}

func NewLoader(m *db.Manager, storage *store.Storage, log *logger.Logger) *Loader {
	return &Loader{
		db:      m,
		storage: storage,
		reader:  workbook.NewReader(log),
		log:     log,
	}
}

// Load reads data, maps and coerces it to the dataset profile and swaps the
// table contents. A failed load leaves the previous rows in place and
// returns a *types.Error.
func (l *Loader) Load(ctx context.Context, kind types.DatasetKind, data []byte, filename string) (*Result, error) {
	start := time.Now()
	runID := uuid.NewString()
	log := l.log.With("run", runID)

	p, ok := profile.Get(kind)
	if !ok || !kind.Loadable() {
		return nil, types.NewError(types.KindSchemaMismatch, nil, "dataset %s cannot be loaded from a file", kind)
	}
	res := &Result{RunID: runID, Kind: kind, Dataset: kind.String(), Table: p.Table, Warnings: []types.Warning{}}
	log.Info(component, "Load started: dataset=%s file=%s bytes=%d", kind, filename, len(data))

	if err := l.ensureTable(ctx, p); err != nil {
		log.Error(component, "Schema setup failed: error=%v", err)
		return nil, err
	}

	tbl, strategy := l.reader.Read(data, filename, func(columns []string) bool {
		return mapping.Recognized(columns, p) > 0
	})
	if tbl == nil {
		return nil, types.NewError(types.KindUnreadableInput, nil, "%s is not a readable table", filename)
	}
	res.Strategy = strategy

	mapped := mapping.Map(tbl, p, log)
	if mapped.Matched() == 0 {
		return nil, types.NewError(types.KindSchemaMismatch, nil,
			"none of the %d columns of %s belong to dataset %s", tbl.NumCols(), filename, kind)
	}
	res.Warnings = append(res.Warnings, mapped.Warnings...)

	rows, warnings := Coerce(mapped.Table, p)
	res.Warnings = append(res.Warnings, warnings...)
	for _, w := range warnings {
		log.Warn(component, "Coercion: %s", w.Message)
	}
	if len(rows) == 0 {
		return nil, types.NewError(types.KindSchemaMismatch, nil,
			"%s has no rows with values for dataset %s", filename, kind)
	}

	err := l.db.InTx(ctx, func(q db.Queryer) error {
		n, err := l.storage.Datasets.Replace(ctx, q, p, rows)
		res.Rows = n
		return err
	})
	if err != nil {
		log.Error(component, "Load rolled back: table=%s error=%v", p.Table, err)
		if types.KindOf(err) == types.KindConnectionFailed {
			return nil, err
		}
		return nil, types.NewError(types.KindLoadFailed, err, "load of %s rolled back", p.Table)
	}
	log.Info(component, "Load committed: table=%s rows=%d strategy=%s elapsed=%s",
		p.Table, res.Rows, strategy, time.Since(start).Round(time.Millisecond))

	if kind == types.Execution {
		l.sync(ctx, log, res)
	}
	return res, nil
}

func (l *Loader) ensureTable(ctx context.Context, p profile.Profile) error {
	if err := l.storage.Schema.EnsureNamespace(ctx); err != nil {
		return l.schemaError(err)
	}
	if err := l.storage.Schema.EnsureTable(ctx, p); err != nil {
		return l.schemaError(err)
	}
	if p.Kind == types.Execution {
		// the synchronizer writes annotations right after the commit
		if err := l.storage.Schema.EnsureTable(ctx, profile.Annotations()); err != nil {
			return l.schemaError(err)
		}
	}
	return nil
}

func (l *Loader) schemaError(err error) error {
	if types.KindOf(err) != "" {
		return err
	}
	return types.NewError(types.KindLoadFailed, err, "failed to prepare schema")
}

// sync extends the annotations with the call ids of a fresh execution load.
// A failure is reported in res and never undoes the load.
func (l *Loader) sync(ctx context.Context, log *logger.Logger, res *Result) {
	created, err := l.storage.Calls.SyncFromExecution(ctx)
	if err != nil {
		log.Error("Synchronizer", "Annotation sync failed: error=%v", err)
		res.SyncErr = err.Error()
		res.Warnings = append(res.Warnings, types.Warning{
			Kind:    types.KindSyncFailed,
			Message: err.Error(),
		})
		return
	}
	res.Synced = created
	log.Info("Synchronizer", "Annotations synced: created=%d", created)
}
