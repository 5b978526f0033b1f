package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Inventario-wms/internal/application/inventory"
	"github.com/jhoicas/Inventario-wms/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción READ COMMITTED, ejecuta fn con repos atados a la tx y hace Commit
// o Rollback. Los bloqueos de fila (FOR UPDATE) y advisory se liberan al terminar.
// Un id con formato inválido (22P02) se devuelve como domain.ErrInvalidInput.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.Repos) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(Repos(tx)); err != nil {
		return translateError(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Repos repositorios atados a q (pool o tx).
func Repos(q Querier) repository.Repos {
	return repository.Repos{
		Movements: NewMovementRepository(q),
		Balances:  NewBalanceRepository(q),
		Products:  NewProductRepository(q),
		Lots:      NewLotRepository(q),
		Locations: NewLocationRepository(q),
		Orders:    NewOrderRepository(q),
		Waves:     NewWaveRepository(q),
		Scans:     NewScanRepository(q),
	}
}
