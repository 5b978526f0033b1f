package inventory_test

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/jhoicas/Inventario-wms/internal/application/inventory"
	"github.com/jhoicas/Inventario-wms/internal/domain"
	"github.com/jhoicas/Inventario-wms/internal/domain/entity"
	"github.com/jhoicas/Inventario-wms/internal/domain/ledger"
	"github.com/jhoicas/Inventario-wms/internal/domain/repository"
	"github.com/jhoicas/Inventario-wms/internal/infrastructure/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func clock() time.Time { return now }

type countingObserver struct {
	mu        sync.Mutex
	movements map[entity.MovementType]int
	shortages int
}

func (o *countingObserver) MovementRecorded(t entity.MovementType) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.movements == nil {
		o.movements = map[entity.MovementType]int{}
	}
	o.movements[t]++
}

func (o *countingObserver) AllocationShortage() {
	o.mu.Lock()
	o.shortages++
	o.mu.Unlock()
}

type env struct {
	store     *memory.Store
	obs       *countingObserver
	movements *inventory.RegisterMovementUseCase
	balances  *inventory.BalanceUseCase
	orders    *inventory.AllocateOrderUseCase
	product   *entity.Product
	shelfA    *entity.Location
	shelfB    *entity.Location
	damaged   *entity.Location
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store := memory.NewStore()
	obs := &countingObserver{}
	recorder := inventory.NewRecorder(obs, clock)
	allocator := inventory.NewAllocator(recorder, obs, clock)
	return &env{
		store:     store,
		obs:       obs,
		movements: inventory.NewRegisterMovementUseCase(store, recorder),
		balances:  inventory.NewBalanceUseCase(store),
		orders:    inventory.NewAllocateOrderUseCase(store, allocator, false),
		product:   store.AddProduct(entity.Product{SKU: "ARROZ-500", Name: "Arroz 500g", Barcodes: []string{"7700000000011"}}),
		shelfA:    store.AddLocation(entity.Location{Code: "A-01", Zone: entity.ZoneNormal, Active: true}),
		shelfB:    store.AddLocation(entity.Location{Code: "B-01", Zone: entity.ZoneNormal, Active: true}),
		damaged:   store.AddLocation(entity.Location{Code: "DMG-01", Zone: entity.ZoneDamaged, Active: true}),
	}
}

func q(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func date(d int) *time.Time {
	t := now.AddDate(0, 0, d)
	return &t
}

func (e *env) receive(t *testing.T, batch string, expiry *time.Time, loc *entity.Location, qty int64) *inventory.ReceiptResult {
	t.Helper()
	res, err := e.movements.Receive(context.Background(), inventory.ReceiptInput{
		ProductID: e.product.ID, Batch: batch, ExpiryDate: expiry, LocationID: loc.ID, Quantity: q(qty), UserID: "u1",
	})
	require.NoError(t, err)
	return res
}

func (e *env) balance(t *testing.T, lotID, locationID string) entity.Balance {
	t.Helper()
	b, err := e.balances.Balance(context.Background(), e.product.ID, lotID, locationID)
	require.NoError(t, err)
	return b
}

func TestReceive_FindOrCreateLot(t *testing.T) {
	e := newEnv(t)
	first := e.receive(t, "L-1", date(30), e.shelfA, 5)
	assert.True(t, first.LotCreated)
	assert.Equal(t, entity.MovementReceipt, first.Movement.Type)
	assert.Equal(t, entity.DocumentReceipt, first.Movement.SourceDocType)

	second := e.receive(t, " L-1 ", date(30), e.shelfB, 2)
	assert.False(t, second.LotCreated)
	assert.Equal(t, first.Lot.ID, second.Lot.ID)

	other := e.receive(t, "L-1", date(31), e.shelfA, 1)
	assert.True(t, other.LotCreated)
	assert.NotEqual(t, first.Lot.ID, other.Lot.ID)

	assert.True(t, e.balance(t, "", "").OnHand.Equal(q(8)))
	assert.Equal(t, 3, e.obs.movements[entity.MovementReceipt])
}

func TestReceive_OpeningBalance(t *testing.T) {
	e := newEnv(t)
	res, err := e.movements.Receive(context.Background(), inventory.ReceiptInput{
		ProductID: e.product.ID, Batch: "INI", LocationID: e.shelfA.ID, Quantity: q(4), Opening: true,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.MovementOpeningBalance, res.Movement.Type)
	assert.True(t, e.balance(t, "", "").OnHand.Equal(q(4)))
}

func TestReceive_Rejections(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.movements.Receive(ctx, inventory.ReceiptInput{ProductID: "nope", Batch: "L", LocationID: e.shelfA.ID, Quantity: q(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = e.movements.Receive(ctx, inventory.ReceiptInput{ProductID: e.product.ID, Batch: "L", LocationID: "nope", Quantity: q(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = e.movements.Receive(ctx, inventory.ReceiptInput{ProductID: e.product.ID, Batch: "", LocationID: e.shelfA.ID, Quantity: q(1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = e.movements.Receive(ctx, inventory.ReceiptInput{ProductID: e.product.ID, Batch: "L", LocationID: e.shelfA.ID, Quantity: q(0)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	list, err := e.balances.Movements(ctx, entity.MovementFilter{}, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestAdjust(t *testing.T) {
	e := newEnv(t)
	lot := e.receive(t, "L-1", nil, e.shelfA, 3).Lot
	ctx := context.Background()

	_, err := e.movements.Adjust(ctx, inventory.AdjustInput{ProductID: e.product.ID, LotID: lot.ID, LocationID: e.shelfA.ID, Quantity: q(-4)})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, e.balance(t, lot.ID, e.shelfA.ID).OnHand.Equal(q(3)))

	mov, err := e.movements.Adjust(ctx, inventory.AdjustInput{ProductID: e.product.ID, LotID: lot.ID, LocationID: e.shelfA.ID, Quantity: q(-3)})
	require.NoError(t, err)
	assert.Equal(t, entity.MovementAdjust, mov.Type)
	assert.True(t, e.balance(t, lot.ID, e.shelfA.ID).OnHand.IsZero())

	_, err = e.movements.Adjust(ctx, inventory.AdjustInput{ProductID: e.product.ID, LotID: lot.ID, LocationID: e.shelfA.ID, Quantity: q(0)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTransfer_PairsShareTransaction(t *testing.T) {
	e := newEnv(t)
	lot := e.receive(t, "L-1", nil, e.shelfA, 10).Lot

	list, err := e.movements.Transfer(context.Background(), inventory.TransferInput{
		ProductID: e.product.ID, LotID: lot.ID, FromLocationID: e.shelfA.ID, ToLocationID: e.shelfB.ID, Quantity: q(4),
	})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, list[0].TransactionID, list[1].TransactionID)
	assert.Equal(t, entity.MovementTransferOut, list[0].Type)
	assert.Equal(t, entity.MovementTransferIn, list[1].Type)

	assert.True(t, e.balance(t, lot.ID, e.shelfA.ID).OnHand.Equal(q(6)))
	assert.True(t, e.balance(t, lot.ID, e.shelfB.ID).OnHand.Equal(q(4)))
	assert.True(t, e.balance(t, "", "").OnHand.Equal(q(10)))
}

func TestTransfer_InsufficientLeavesNoTrace(t *testing.T) {
	e := newEnv(t)
	lot := e.receive(t, "L-1", nil, e.shelfA, 2).Lot

	_, err := e.movements.Transfer(context.Background(), inventory.TransferInput{
		ProductID: e.product.ID, LotID: lot.ID, FromLocationID: e.shelfA.ID, ToLocationID: e.shelfB.ID, Quantity: q(3),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	list, err := e.balances.Movements(context.Background(), entity.MovementFilter{ProductID: e.product.ID}, 0, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = e.movements.Transfer(context.Background(), inventory.TransferInput{
		ProductID: e.product.ID, LotID: lot.ID, FromLocationID: e.shelfA.ID, ToLocationID: e.shelfA.ID, Quantity: q(1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTransfer_Putaway(t *testing.T) {
	e := newEnv(t)
	lot := e.receive(t, "L-1", nil, e.shelfA, 2).Lot
	list, err := e.movements.Transfer(context.Background(), inventory.TransferInput{
		ProductID: e.product.ID, LotID: lot.ID, FromLocationID: e.shelfA.ID, ToLocationID: e.shelfB.ID, Quantity: q(2), Putaway: true,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.MovementPutaway, list[0].Type)
	assert.True(t, list[0].Quantity.IsNegative())
	assert.Equal(t, entity.MovementPutaway, list[1].Type)
	assert.True(t, e.balance(t, lot.ID, e.shelfB.ID).OnHand.Equal(q(2)))
}

func TestAllocateForOrder_FEFOAcrossLots(t *testing.T) {
	e := newEnv(t)
	late := e.receive(t, "TARDE", date(60), e.shelfA, 10).Lot
	soon := e.receive(t, "PRONTO", date(10), e.shelfB, 3).Lot
	e.receive(t, "VENCIDO", date(-1), e.shelfA, 50)
	e.receive(t, "AVERIADO", date(5), e.damaged, 50)

	order := e.store.AddOrder(entity.Order{Number: "P-1", Lines: []entity.OrderLine{{SKU: "arroz-500", Quantity: q(5)}}})
	res, err := e.orders.AllocateForOrder(context.Background(), order.ID, "u1", nil)
	require.NoError(t, err)
	assert.True(t, res.Committed)
	require.Len(t, res.Lines, 1)
	line := res.Lines[0]
	require.Len(t, line.Reservations, 2)
	assert.Equal(t, soon.ID, line.Reservations[0].LotID)
	assert.True(t, line.Reservations[0].Quantity.Equal(q(3)))
	assert.Equal(t, late.ID, line.Reservations[1].LotID)
	assert.True(t, line.Reservations[1].Quantity.Equal(q(2)))

	assert.True(t, e.balance(t, late.ID, e.shelfA.ID).Reserved.Equal(q(2)))
	assert.True(t, e.balance(t, soon.ID, e.shelfB.ID).Available().IsZero())

	_, err = e.orders.AllocateForOrder(context.Background(), order.ID, "u1", nil)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestAllocateForOrder_PartialShortageIsData(t *testing.T) {
	e := newEnv(t)
	e.receive(t, "L-1", nil, e.shelfA, 2)
	order := e.store.AddOrder(entity.Order{Number: "P-2", Lines: []entity.OrderLine{{Barcode: "7700000000011", Quantity: q(5)}}})

	res, err := e.orders.AllocateForOrder(context.Background(), order.ID, "u1", nil)
	require.NoError(t, err)
	assert.True(t, res.Committed)
	require.Len(t, res.Shortages, 1)
	assert.True(t, res.Shortages[0].Shortage.Equal(q(3)))
	assert.True(t, e.balance(t, "", "").Reserved.Equal(q(2)))
	assert.Equal(t, 1, e.obs.shortages)
}

func TestAllocateForOrder_AllOrNothingWritesNothing(t *testing.T) {
	e := newEnv(t)
	e.receive(t, "L-1", nil, e.shelfA, 2)
	order := e.store.AddOrder(entity.Order{Number: "P-3", Lines: []entity.OrderLine{{ProductID: e.product.ID, Quantity: q(5)}}})

	strict := true
	res, err := e.orders.AllocateForOrder(context.Background(), order.ID, "u1", &strict)
	require.NoError(t, err)
	assert.False(t, res.Committed)
	require.Len(t, res.Lines, 1)
	assert.Empty(t, res.Lines[0].Reservations)
	assert.True(t, res.Lines[0].Allocated.Equal(q(2)))
	assert.True(t, e.balance(t, "", "").Reserved.IsZero())

	posted, err := e.balances.Movements(context.Background(), entity.MovementFilter{SourceDocType: entity.DocumentOrder, SourceDocID: order.ID}, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, posted)
}

func TestAllocateForOrder_Rejections(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.orders.AllocateForOrder(ctx, "missing", "u1", nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	picked := e.store.AddOrder(entity.Order{Number: "P-4", HasPickingDocument: true, Lines: []entity.OrderLine{{ProductID: e.product.ID, Quantity: q(1)}}})
	_, err = e.orders.AllocateForOrder(ctx, picked.ID, "u1", nil)
	assert.ErrorIs(t, err, domain.ErrConflict)

	unknown := e.store.AddOrder(entity.Order{Number: "P-5", Lines: []entity.OrderLine{{Barcode: "999", Quantity: q(1)}}})
	_, err = e.orders.AllocateForOrder(ctx, unknown.ID, "u1", nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReconcile(t *testing.T) {
	e := newEnv(t)
	lot := e.receive(t, "L-1", nil, e.shelfA, 5).Lot
	order := e.store.AddOrder(entity.Order{Number: "P-6", Lines: []entity.OrderLine{{ProductID: e.product.ID, Quantity: q(2)}}})
	_, err := e.orders.AllocateForOrder(context.Background(), order.ID, "u1", nil)
	require.NoError(t, err)

	diffs, err := e.balances.Reconcile(context.Background(), e.product.ID)
	require.NoError(t, err)
	assert.Empty(t, diffs)

	b := e.balance(t, lot.ID, e.shelfA.ID)
	assert.True(t, b.OnHand.Equal(q(5)))
	assert.True(t, b.Reserved.Equal(q(2)))

	_, err = e.balances.Reconcile(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMovements_Pagination(t *testing.T) {
	e := newEnv(t)
	for i := 0; i < 5; i++ {
		e.receive(t, "L-1", nil, e.shelfA, 1)
	}
	page, err := e.balances.Movements(context.Background(), entity.MovementFilter{ProductID: e.product.ID}, 2, 3)
	require.NoError(t, err)
	assert.Len(t, page, 2)

	all, err := e.balances.Movements(context.Background(), entity.MovementFilter{ProductID: e.product.ID}, 0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestRecorder_RandomOperationsMatchLedger(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		seed := seed
		t.Run(fmt.Sprintf("seed_%d", seed), func(t *testing.T) {
			e := newEnv(t)
			ctx := context.Background()
			rng := rand.New(rand.NewSource(seed))
			locs := []*entity.Location{e.shelfA, e.shelfB, e.damaged}
			var lots []string

			for i := 0; i < 80; i++ {
				loc := locs[rng.Intn(len(locs))]
				qty := q(rng.Int63n(8) + 1)
				var err error
				switch op := rng.Intn(4); {
				case op == 0 || len(lots) == 0:
					res := e.receive(t, fmt.Sprintf("L-%d", rng.Intn(4)), date(1+rng.Intn(90)), loc, qty.IntPart())
					lots = append(lots, res.Lot.ID)
				case op == 1:
					if rng.Intn(2) == 0 {
						qty = qty.Neg()
					}
					_, err = e.movements.Adjust(ctx, inventory.AdjustInput{
						ProductID: e.product.ID, LotID: lots[rng.Intn(len(lots))], LocationID: loc.ID, Quantity: qty,
					})
				case op == 2:
					to := locs[rng.Intn(len(locs))]
					if to.ID == loc.ID {
						continue
					}
					_, err = e.movements.Transfer(ctx, inventory.TransferInput{
						ProductID: e.product.ID, LotID: lots[rng.Intn(len(lots))], FromLocationID: loc.ID, ToLocationID: to.ID,
						Quantity: qty, Putaway: rng.Intn(2) == 0,
					})
				default:
					order := e.store.AddOrder(entity.Order{
						Number: fmt.Sprintf("R-%d", i),
						Lines:  []entity.OrderLine{{ProductID: e.product.ID, Quantity: qty}},
					})
					_, err = e.orders.AllocateForOrder(ctx, order.ID, "u1", nil)
				}
				if err != nil {
					require.ErrorIs(t, err, domain.ErrInsufficientStock, "op %d", i)
				}
			}

			diffs, err := e.balances.Reconcile(ctx, e.product.ID)
			require.NoError(t, err)
			assert.Empty(t, diffs)

			all, err := e.balances.Movements(ctx, entity.MovementFilter{ProductID: e.product.ID}, 0, 0)
			require.NoError(t, err)
			replayed := ledger.FoldByKey(all)
			require.NoError(t, e.store.Run(ctx, func(r repository.Repos) error {
				for key, want := range replayed {
					row, err := r.Balances.Get(ctx, key)
					require.NoError(t, err)
					require.NotNil(t, row, "%+v sin proyección", key)
					assert.True(t, want.OnHand.Equal(row.OnHand), "%+v on_hand %s != %s", key, row.OnHand, want.OnHand)
					assert.True(t, want.Reserved.Equal(row.Reserved), "%+v reserved %s != %s", key, row.Reserved, want.Reserved)
					assert.True(t, ledger.CheckNonNegative(row.Balance), "%+v negativo", key)
				}
				return nil
			}))
			total := ledger.Fold(all)
			got := e.balance(t, "", "")
			assert.True(t, total.OnHand.Equal(got.OnHand))
			assert.True(t, total.Reserved.Equal(got.Reserved))
		})
	}
}
