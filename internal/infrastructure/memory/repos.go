package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Inventario-wms/internal/domain"
	"github.com/jhoicas/Inventario-wms/internal/domain/entity"
	"github.com/jhoicas/Inventario-wms/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var (
	_ repository.StockMovementRepository = (*movementRepo)(nil)
	_ repository.StockBalanceRepository  = (*balanceRepo)(nil)
	_ repository.ProductRepository       = (*productRepo)(nil)
	_ repository.LotRepository           = (*lotRepo)(nil)
	_ repository.LocationRepository      = (*locationRepo)(nil)
	_ repository.OrderRepository         = (*orderRepo)(nil)
	_ repository.WaveRepository          = (*waveRepo)(nil)
	_ repository.ScanRepository          = (*scanRepo)(nil)
)

// --- movimientos ---

type movementRepo struct{ st *state }

func (r *movementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	cp := *m
	r.st.movements = append(r.st.movements, &cp)
	return nil
}

func matches(m *entity.StockMovement, f entity.MovementFilter) bool {
	return (f.ProductID == "" || m.ProductID == f.ProductID) &&
		(f.LotID == "" || m.LotID == f.LotID) &&
		(f.LocationID == "" || m.LocationID == f.LocationID) &&
		(f.SourceDocType == "" || m.SourceDocType == f.SourceDocType) &&
		(f.SourceDocID == "" || m.SourceDocID == f.SourceDocID)
}

func (r *movementRepo) TotalsByType(_ context.Context, f entity.MovementFilter) (map[entity.MovementType]decimal.Decimal, error) {
	out := make(map[entity.MovementType]decimal.Decimal)
	for _, m := range r.st.movements {
		if matches(m, f) {
			out[m.Type] = out[m.Type].Add(m.Quantity)
		}
	}
	return out, nil
}

func (r *movementRepo) List(_ context.Context, f entity.MovementFilter, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	skipped := 0
	for _, m := range r.st.movements {
		if !matches(m, f) {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		cp := *m
		out = append(out, &cp)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *movementRepo) ExistsForDocument(_ context.Context, docType, docID string, t entity.MovementType) (bool, error) {
	for _, m := range r.st.movements {
		if m.SourceDocType == docType && m.SourceDocID == docID && m.Type == t {
			return true, nil
		}
	}
	return false, nil
}

// --- saldos ---

type balanceRepo struct{ st *state }

func (r *balanceRepo) Get(_ context.Context, key entity.BalanceKey) (*entity.StockBalance, error) {
	b, ok := r.st.balances[key]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *balanceRepo) GetForUpdate(ctx context.Context, key entity.BalanceKey) (*entity.StockBalance, error) {
	b, err := r.Get(ctx, key)
	if err != nil || b != nil {
		return b, err
	}
	return &entity.StockBalance{
		BalanceKey: key,
		Balance:    entity.Balance{OnHand: decimal.Zero, Reserved: decimal.Zero},
	}, nil
}

func (r *balanceRepo) Upsert(_ context.Context, b *entity.StockBalance) error {
	cp := *b
	r.st.balances[b.BalanceKey] = &cp
	return nil
}

func (r *balanceRepo) ListByProduct(_ context.Context, productID string) ([]*entity.StockBalance, error) {
	var out []*entity.StockBalance
	for _, b := range r.st.balances {
		if b.ProductID == productID {
			cp := *b
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LotID != out[j].LotID {
			return out[i].LotID < out[j].LotID
		}
		return out[i].LocationID < out[j].LocationID
	})
	return out, nil
}

func (r *balanceRepo) ListAllocatable(_ context.Context, productID string, asOf time.Time) ([]entity.AllocationCandidate, error) {
	var out []entity.AllocationCandidate
	for _, b := range r.st.balances {
		if b.ProductID != productID || !b.Available().IsPositive() {
			continue
		}
		loc, ok := r.st.locations[b.LocationID]
		if !ok || !loc.Allocatable() {
			continue
		}
		lot, ok := r.st.lots[b.LotID]
		if !ok {
			continue
		}
		if lot.ExpiryDate != nil && !lot.ExpiryDate.After(asOf) {
			continue
		}
		out = append(out, entity.AllocationCandidate{
			LotID:        lot.ID,
			LocationID:   loc.ID,
			LocationCode: loc.Code,
			Batch:        lot.Batch,
			ExpiryDate:   lot.ExpiryDate,
			Zone:         loc.Zone,
			Active:       loc.Active,
			Available:    b.Available(),
		})
	}
	return out, nil
}

// --- catálogo ---

type productRepo struct{ st *state }

func (r *productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.st.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *productRepo) ResolveBarcode(_ context.Context, code string) ([]string, error) {
	return append([]string(nil), r.st.barcodes[code]...), nil
}

func (r *productRepo) ResolveSKU(_ context.Context, sku string) (string, error) {
	for _, p := range r.st.products {
		if p.SKU == sku {
			return p.ID, nil
		}
	}
	return "", nil
}

// LockProduct no-op: Store.Run ya serializa todas las transacciones.
func (r *productRepo) LockProduct(context.Context, string) error { return nil }

type lotRepo struct{ st *state }

func (r *lotRepo) GetByID(_ context.Context, id string) (*entity.Lot, error) {
	l, ok := r.st.lots[id]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (r *lotRepo) FindOrCreate(_ context.Context, productID, batch string, expiry *time.Time) (*entity.Lot, bool, error) {
	expiry = entity.NormalizeExpiry(expiry)
	for _, l := range r.st.lots {
		if l.SameIdentity(productID, batch, expiry) {
			cp := *l
			return &cp, false, nil
		}
	}
	l := &entity.Lot{
		ID:         uuid.New().String(),
		ProductID:  productID,
		Batch:      batch,
		ExpiryDate: expiry,
		CreatedAt:  time.Now(),
	}
	r.st.lots[l.ID] = l
	cp := *l
	return &cp, true, nil
}

type locationRepo struct{ st *state }

func (r *locationRepo) GetByID(_ context.Context, id string) (*entity.Location, error) {
	l, ok := r.st.locations[id]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (r *locationRepo) GetByCode(_ context.Context, code string) (*entity.Location, error) {
	for _, l := range r.st.locations {
		if l.Code == code {
			cp := *l
			return &cp, nil
		}
	}
	return nil, nil
}

type orderRepo struct{ st *state }

func (r *orderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	o, ok := r.st.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	cp.Lines = append([]entity.OrderLine(nil), o.Lines...)
	return &cp, nil
}

// --- olas ---

type waveRepo struct{ st *state }

func (r *waveRepo) NextNumber(context.Context) (string, error) {
	r.st.waveSeq++
	return fmt.Sprintf("W-%06d", r.st.waveSeq), nil
}

func (r *waveRepo) Create(_ context.Context, w *entity.Wave) error {
	if _, ok := r.st.waves[w.ID]; ok {
		return domain.ErrDuplicate
	}
	header := *w
	header.Lines, header.Bins = nil, nil
	r.st.waves[w.ID] = &header
	for _, l := range w.Lines {
		cp := *l
		cp.Allocations = nil
		r.st.waveLines[l.ID] = &cp
	}
	order := make([]string, 0, len(w.Bins))
	for _, b := range w.Bins {
		cp := *b
		r.st.bins[b.ID] = &cp
		order = append(order, b.ID)
	}
	r.st.binOrder[w.ID] = order
	return nil
}

func (r *waveRepo) GetByID(_ context.Context, id string) (*entity.Wave, error) {
	w, ok := r.st.waves[id]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (r *waveRepo) GetDetail(ctx context.Context, id string) (*entity.Wave, error) {
	w, err := r.GetByID(ctx, id)
	if err != nil || w == nil {
		return w, err
	}
	lines, err := r.ListLines(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, l := range lines {
		l.Allocations = r.allocationsOf(l.ID)
	}
	w.Lines = lines
	for _, binID := range r.st.binOrder[id] {
		cp := *r.st.bins[binID]
		w.Bins = append(w.Bins, &cp)
	}
	return w, nil
}

func (r *waveRepo) GetForUpdate(ctx context.Context, id string) (*entity.Wave, error) {
	return r.GetByID(ctx, id)
}

func (r *waveRepo) UpdateStatus(_ context.Context, w *entity.Wave) error {
	cur, ok := r.st.waves[w.ID]
	if !ok {
		return domain.NotFound("ola %s", w.ID)
	}
	cp := *cur
	cp.Status, cp.UpdatedAt, cp.CompletedAt = w.Status, w.UpdatedAt, w.CompletedAt
	r.st.waves[w.ID] = &cp
	return nil
}

func (r *waveRepo) Delete(_ context.Context, id string) error {
	delete(r.st.waves, id)
	for lineID, l := range r.st.waveLines {
		if l.WaveID != id {
			continue
		}
		for allocID, a := range r.st.waveAllocs {
			if a.WaveLineID == lineID {
				delete(r.st.waveAllocs, allocID)
			}
		}
		delete(r.st.waveLines, lineID)
	}
	for _, binID := range r.st.binOrder[id] {
		delete(r.st.bins, binID)
	}
	delete(r.st.binOrder, id)
	return nil
}

func (r *waveRepo) WaveIDForOrder(_ context.Context, orderID string) (string, error) {
	for _, b := range r.st.bins {
		if b.OrderID == orderID {
			return b.WaveID, nil
		}
	}
	return "", nil
}

func (r *waveRepo) ListLines(_ context.Context, waveID string) ([]*entity.WaveLine, error) {
	var out []*entity.WaveLine
	for _, l := range r.st.waveLines {
		if l.WaveID == waveID {
			cp := *l
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out, nil
}

func (r *waveRepo) allocationsOf(lineID string) []*entity.WaveAllocation {
	var out []*entity.WaveAllocation
	for _, a := range r.st.waveAllocs {
		if a.WaveLineID == lineID {
			cp := *a
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out
}

func (r *waveRepo) GetLineForUpdate(_ context.Context, waveID, code string) (*entity.WaveLine, error) {
	for _, l := range r.st.waveLines {
		if l.WaveID == waveID && l.Barcode == code {
			cp := *l
			cp.Allocations = r.allocationsOf(l.ID)
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *waveRepo) UpdateLine(_ context.Context, l *entity.WaveLine) error {
	if _, ok := r.st.waveLines[l.ID]; !ok {
		return domain.NotFound("línea %s", l.ID)
	}
	cp := *l
	cp.Allocations = nil
	r.st.waveLines[l.ID] = &cp
	return nil
}

func (r *waveRepo) CountPendingLines(_ context.Context, waveID string) (int, error) {
	n := 0
	for _, l := range r.st.waveLines {
		if l.WaveID == waveID && l.Status == entity.LinePending {
			n++
		}
	}
	return n, nil
}

func (r *waveRepo) CreateAllocations(_ context.Context, allocations []*entity.WaveAllocation) error {
	for _, a := range allocations {
		cp := *a
		r.st.waveAllocs[a.ID] = &cp
	}
	return nil
}

func (r *waveRepo) UpdateAllocation(_ context.Context, a *entity.WaveAllocation) error {
	if _, ok := r.st.waveAllocs[a.ID]; !ok {
		return domain.NotFound("reserva %s", a.ID)
	}
	cp := *a
	r.st.waveAllocs[a.ID] = &cp
	return nil
}

func (r *waveRepo) GetBinForUpdate(_ context.Context, waveID, orderID string) (*entity.SortingBin, error) {
	for _, binID := range r.st.binOrder[waveID] {
		b := r.st.bins[binID]
		if b.OrderID == orderID {
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *waveRepo) UpdateBin(_ context.Context, b *entity.SortingBin) error {
	cur, ok := r.st.bins[b.ID]
	if !ok {
		return domain.NotFound("bin %s", b.ID)
	}
	cp := *cur
	cp.Status = b.Status
	r.st.bins[b.ID] = &cp
	return nil
}

func (r *waveRepo) CountOpenBins(_ context.Context, waveID string) (int, error) {
	n := 0
	for _, binID := range r.st.binOrder[waveID] {
		if r.st.bins[binID].Status == entity.BinOpen {
			n++
		}
	}
	return n, nil
}

// --- lecturas ---

type scanRepo struct{ st *state }

func (r *scanRepo) GetPickScan(_ context.Context, requestID string) (*entity.PickScan, error) {
	s, ok := r.st.pickScans[requestID]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *scanRepo) CreatePickScan(_ context.Context, s *entity.PickScan) error {
	if _, ok := r.st.pickScans[s.RequestID]; ok {
		return domain.ErrDuplicate
	}
	cp := *s
	r.st.pickScans[s.RequestID] = &cp
	return nil
}

func (r *scanRepo) GetSortingScan(_ context.Context, requestID string) (*entity.SortingScan, error) {
	s, ok := r.st.sortingScans[requestID]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *scanRepo) CreateSortingScan(_ context.Context, s *entity.SortingScan) error {
	if _, ok := r.st.sortingScans[s.RequestID]; ok {
		return domain.ErrDuplicate
	}
	cp := *s
	r.st.sortingScans[s.RequestID] = &cp
	return nil
}

func (r *scanRepo) SumSorted(_ context.Context, waveID, orderID, code string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, s := range r.st.sortingScans {
		if s.WaveID == waveID && s.OrderID == orderID && (code == "" || s.Barcode == code) {
			total = total.Add(s.Quantity)
		}
	}
	return total, nil
}
