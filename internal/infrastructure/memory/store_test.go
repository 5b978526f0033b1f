package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jhoicas/Inventario-wms/internal/domain"
	"github.com/jhoicas/Inventario-wms/internal/domain/entity"
	"github.com/jhoicas/Inventario-wms/internal/domain/repository"
	"github.com/jhoicas/Inventario-wms/internal/infrastructure/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_RollbackDiscardsWrites(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.Run(ctx, func(r repository.Repos) error {
		require.NoError(t, r.Movements.Create(ctx, &entity.StockMovement{ID: "m1", ProductID: "p", Quantity: decimal.NewFromInt(1), Type: entity.MovementReceipt}))
		require.NoError(t, r.Balances.Upsert(ctx, &entity.StockBalance{BalanceKey: entity.BalanceKey{ProductID: "p", LotID: "l", LocationID: "x"}, Balance: entity.Balance{OnHand: decimal.NewFromInt(1)}}))
		_, _, err := r.Lots.FindOrCreate(ctx, "p", "B-1", nil)
		require.NoError(t, err)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	err = s.Run(ctx, func(r repository.Repos) error {
		list, err := r.Movements.List(ctx, entity.MovementFilter{}, 0, 0)
		require.NoError(t, err)
		assert.Empty(t, list)
		b, err := r.Balances.Get(ctx, entity.BalanceKey{ProductID: "p", LotID: "l", LocationID: "x"})
		require.NoError(t, err)
		assert.Nil(t, b)
		_, created, err := r.Lots.FindOrCreate(ctx, "p", "B-1", nil)
		require.NoError(t, err)
		assert.True(t, created)
		return nil
	})
	require.NoError(t, err)
}

func TestRun_CommitIsVisible(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	key := entity.BalanceKey{ProductID: "p", LotID: "l", LocationID: "x"}

	require.NoError(t, s.Run(ctx, func(r repository.Repos) error {
		return r.Balances.Upsert(ctx, &entity.StockBalance{BalanceKey: key, Balance: entity.Balance{OnHand: decimal.NewFromInt(4)}})
	}))
	require.NoError(t, s.Run(ctx, func(r repository.Repos) error {
		b, err := r.Balances.Get(ctx, key)
		require.NoError(t, err)
		require.NotNil(t, b)
		assert.True(t, b.OnHand.Equal(decimal.NewFromInt(4)))
		return nil
	}))
}

func TestRun_CancelledContext(t *testing.T) {
	s := memory.NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err := s.Run(ctx, func(repository.Repos) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestScans_DuplicateRequestID(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	err := s.Run(ctx, func(r repository.Repos) error {
		require.NoError(t, r.Scans.CreatePickScan(ctx, &entity.PickScan{ID: "1", RequestID: "req"}))
		return r.Scans.CreatePickScan(ctx, &entity.PickScan{ID: "2", RequestID: "req"})
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestStore_BarcodesAreNormalized(t *testing.T) {
	s := memory.NewStore()
	p := s.AddProduct(entity.Product{SKU: " abc ", Barcodes: []string{" ７７０ ", ""}})
	assert.Equal(t, "ABC", p.SKU)
	assert.Equal(t, []string{"770"}, p.Barcodes)

	ctx := context.Background()
	require.NoError(t, s.Run(ctx, func(r repository.Repos) error {
		ids, err := r.Products.ResolveBarcode(ctx, "770")
		require.NoError(t, err)
		assert.Equal(t, []string{p.ID}, ids)
		id, err := r.Products.ResolveSKU(ctx, "ABC")
		require.NoError(t, err)
		assert.Equal(t, p.ID, id)
		return nil
	}))
}
