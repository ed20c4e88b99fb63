package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/config"
	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/logger"
	"github.com/Brunogomez94/sistema-mspbs-sub000/internal/siciap/types"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

const component = "DB"

// Queryer is satisfied by both the pooled handle and an open transaction.
type Queryer interface {
	sqlx.ExtContext
}

var ErrTxOpen = errors.New("transaction already open")
var ErrNoTx = errors.New("no transaction open")

// Manager owns the single database handle of the process. It connects lazily
// and is not safe for concurrent use; callers serialize access.
type Manager struct {
	cfg     config.DB
	dialect Dialect
	log     *logger.Logger

	db *sqlx.DB
	tx *sqlx.Tx
}

func NewManager(cfg config.DB, log *logger.Logger) *Manager {
	cfg = cfg.Resolve()
	return &Manager{
		cfg:     cfg,
		dialect: NewDialect(cfg.Driver, cfg.Namespace),
		log:     log,
	}
}

func (m *Manager) Dialect() Dialect {
	return m.dialect
}

// Connect opens the handle and verifies it with a ping bounded by the
// configured connect timeout. It is a no-op when already connected.
func (m *Manager) Connect(ctx context.Context) error {
	if m.db != nil {
		return nil
	}

	conn, err := sqlx.Open(m.dialect.Driver, m.cfg.DSN())
	if err != nil {
		return types.NewError(types.KindConnectionFailed, err, "failed to open %s", m.cfg.Redacted())
	}

	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	if m.dialect.IsSQLite() {
		// an in-memory database lives only as long as its single connection
		conn.SetConnMaxLifetime(0)
		conn.SetConnMaxIdleTime(0)
	} else {
		conn.SetConnMaxIdleTime(15 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, m.cfg.ConnectTimeout)
	defer cancel()

	if err := conn.PingContext(pingCtx); err != nil {
		conn.Close()
		return types.NewError(types.KindConnectionFailed, err, "failed to reach %s", m.cfg.Redacted())
	}

	m.db = conn
	m.log.Info(component, "Database connection established: target=%s", m.cfg.Redacted())
	return nil
}

// Ping runs SELECT 1 and reports whether it succeeded.
func (m *Manager) Ping(ctx context.Context) bool {
	q, err := m.Cursor(ctx)
	if err != nil {
		m.log.Warn(component, "Ping failed: error=%v", err)
		return false
	}
	var one int
	if err := sqlx.GetContext(ctx, q, &one, "SELECT 1"); err != nil {
		m.log.Warn(component, "Ping failed: error=%v", err)
		return false
	}
	return one == 1
}

// Cursor returns the open transaction when autocommit is off, otherwise the
// pooled handle. A handle that is not connected is connected, retrying once.
func (m *Manager) Cursor(ctx context.Context) (Queryer, error) {
	if m.tx != nil {
		return m.tx, nil
	}
	if m.db == nil {
		if err := m.Connect(ctx); err != nil {
			m.log.Warn(component, "Connect failed, retrying once: error=%v", err)
			if err := m.Connect(ctx); err != nil {
				return nil, err
			}
		}
	}
	return m.db, nil
}

func (m *Manager) Begin(ctx context.Context) error {
	if m.tx != nil {
		return ErrTxOpen
	}
	if _, err := m.Cursor(ctx); err != nil {
		return err
	}
	tx, err := m.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	m.tx = tx
	return nil
}

func (m *Manager) Commit() error {
	if m.tx == nil {
		return ErrNoTx
	}
	tx := m.tx
	m.tx = nil
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Rollback discards the open transaction, if any.
func (m *Manager) Rollback() error {
	if m.tx == nil {
		return nil
	}
	tx := m.tx
	m.tx = nil
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	return nil
}

func (m *Manager) Autocommit() bool {
	return m.tx == nil
}

// SetAutocommit(false) opens a transaction; SetAutocommit(true) rolls back
// whatever was not committed and returns to statement-level commits.
func (m *Manager) SetAutocommit(ctx context.Context, on bool) error {
	if on {
		return m.Rollback()
	}
	return m.Begin(ctx)
}

// InTx runs fn inside a transaction. fn's error rolls the transaction back;
// autocommit is restored on every path.
func (m *Manager) InTx(ctx context.Context, fn func(q Queryer) error) (err error) {
	if err := m.SetAutocommit(ctx, false); err != nil {
		return err
	}
	defer func() {
		if rerr := m.SetAutocommit(ctx, true); rerr != nil {
			m.log.Error(component, "Failed to restore autocommit: error=%v", rerr)
			if err == nil {
				err = rerr
			}
		}
	}()

	if err := fn(m.tx); err != nil {
		if rbErr := m.Rollback(); rbErr != nil {
			m.log.Error(component, "Rollback failed: error=%v", rbErr)
		}
		return err
	}
	return m.Commit()
}

// Dispose rolls back any open transaction and closes the handle.
func (m *Manager) Dispose() error {
	if err := m.Rollback(); err != nil {
		m.log.Warn(component, "Rollback on dispose failed: error=%v", err)
	}
	if m.db == nil {
		return nil
	}
	err := m.db.Close()
	m.db = nil
	return err
}
