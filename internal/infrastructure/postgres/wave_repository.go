package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Inventario-wms/internal/domain"
	"github.com/jhoicas/Inventario-wms/internal/domain/entity"
	"github.com/jhoicas/Inventario-wms/internal/domain/repository"
)

var _ repository.WaveRepository = (*WaveRepo)(nil)

// WaveRepo olas, líneas, reservas y bins sobre PostgreSQL (usable con pool o tx).
type WaveRepo struct {
	q Querier
}

// NewWaveRepository construye el adaptador de olas.
func NewWaveRepository(q Querier) *WaveRepo {
	return &WaveRepo{q: q}
}

const waveColumns = `id, number, status, note, created_by, created_at, updated_at, completed_at`

// NextNumber W-000001, W-000002… desde la secuencia wave_number_seq.
func (r *WaveRepo) NextNumber(ctx context.Context) (string, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT nextval('wave_number_seq')`).Scan(&n); err != nil {
		return "", fmt.Errorf("next wave number: %w", err)
	}
	return fmt.Sprintf("W-%06d", n), nil
}

// Create inserta cabecera, líneas, bins y líneas de bin. Un pedido ya asignado a otra ola
// viola sorting_bins_order_id_key y se reporta como conflicto.
func (r *WaveRepo) Create(ctx context.Context, w *entity.Wave) error {
	_, err := r.q.Exec(ctx, `INSERT INTO waves (`+waveColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		w.ID, w.Number, string(w.Status), w.Note, w.CreatedBy, w.CreatedAt, w.UpdatedAt, w.CompletedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert wave: %w", err)
	}
	for _, l := range w.Lines {
		_, err := r.q.Exec(ctx, `
			INSERT INTO wave_lines (id, wave_id, seq, barcode, product_id, total_qty, picked_qty, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			l.ID, w.ID, l.Seq, l.Barcode, l.ProductID, l.TotalQty, l.PickedQty, string(l.Status))
		if err != nil {
			return fmt.Errorf("insert wave line: %w", err)
		}
	}
	for i, b := range w.Bins {
		_, err := r.q.Exec(ctx, `
			INSERT INTO sorting_bins (id, wave_id, seq, order_id, status, required_qty)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			b.ID, w.ID, i+1, b.OrderID, string(b.Status), b.RequiredQty)
		if err != nil {
			if isUniqueViolation(err) && constraintName(err) == "sorting_bins_order_id_key" {
				return domain.Conflict("el pedido %s ya pertenece a una ola", b.OrderID)
			}
			return fmt.Errorf("insert sorting bin: %w", err)
		}
		for _, bl := range b.Lines {
			_, err := r.q.Exec(ctx, `
				INSERT INTO sorting_bin_lines (bin_id, barcode, product_id, required_qty)
				VALUES ($1, $2, $3, $4)`,
				b.ID, bl.Barcode, bl.ProductID, bl.RequiredQty)
			if err != nil {
				return fmt.Errorf("insert sorting bin line: %w", err)
			}
		}
	}
	return nil
}

// GetByID cabecera de la ola.
func (r *WaveRepo) GetByID(ctx context.Context, id string) (*entity.Wave, error) {
	return r.getHeader(ctx, `SELECT `+waveColumns+` FROM waves WHERE id = $1`, id)
}

// GetForUpdate cabecera con la fila bloqueada hasta el fin de la transacción.
func (r *WaveRepo) GetForUpdate(ctx context.Context, id string) (*entity.Wave, error) {
	return r.getHeader(ctx, `SELECT `+waveColumns+` FROM waves WHERE id = $1 FOR UPDATE`, id)
}

func (r *WaveRepo) getHeader(ctx context.Context, query, id string) (*entity.Wave, error) {
	var w entity.Wave
	var status string
	err := r.q.QueryRow(ctx, query, id).Scan(&w.ID, &w.Number, &status, &w.Note, &w.CreatedBy,
		&w.CreatedAt, &w.UpdatedAt, &w.CompletedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get wave: %w", err)
	}
	w.Status = entity.WaveStatus(status)
	return &w, nil
}

// GetDetail ola completa: líneas con reservas y bins con sus líneas.
func (r *WaveRepo) GetDetail(ctx context.Context, id string) (*entity.Wave, error) {
	w, err := r.GetByID(ctx, id)
	if err != nil || w == nil {
		return w, err
	}
	if w.Lines, err = r.ListLines(ctx, id); err != nil {
		return nil, err
	}
	byLine := make(map[string]*entity.WaveLine, len(w.Lines))
	for _, l := range w.Lines {
		byLine[l.ID] = l
	}
	rows, err := r.q.Query(ctx, `
		SELECT a.id, a.wave_line_id, a.seq, a.lot_id, a.location_id, a.allocated_qty, a.picked_qty
		FROM wave_allocations a JOIN wave_lines l ON l.id = a.wave_line_id
		WHERE l.wave_id = $1 ORDER BY l.seq, a.seq`, id)
	if err != nil {
		return nil, fmt.Errorf("list wave allocations: %w", err)
	}
	for rows.Next() {
		a, err := scanAllocation(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		if l, ok := byLine[a.WaveLineID]; ok {
			l.Allocations = append(l.Allocations, a)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	binRows, err := r.q.Query(ctx, `
		SELECT id, wave_id, order_id, status, required_qty
		FROM sorting_bins WHERE wave_id = $1 ORDER BY seq`, id)
	if err != nil {
		return nil, fmt.Errorf("list sorting bins: %w", err)
	}
	for binRows.Next() {
		b, err := scanBin(binRows)
		if err != nil {
			binRows.Close()
			return nil, err
		}
		w.Bins = append(w.Bins, b)
	}
	binRows.Close()
	if err := binRows.Err(); err != nil {
		return nil, err
	}
	for _, b := range w.Bins {
		if b.Lines, err = r.binLines(ctx, b.ID); err != nil {
			return nil, err
		}
	}
	return w, nil
}

// UpdateStatus persiste estado y marcas de tiempo.
func (r *WaveRepo) UpdateStatus(ctx context.Context, w *entity.Wave) error {
	tag, err := r.q.Exec(ctx, `UPDATE waves SET status = $2, updated_at = $3, completed_at = $4 WHERE id = $1`,
		w.ID, string(w.Status), w.UpdatedAt, w.CompletedAt)
	if err != nil {
		return fmt.Errorf("update wave status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("ola %s", w.ID)
	}
	return nil
}

// Delete elimina la ola; líneas, reservas y bins caen por ON DELETE CASCADE.
func (r *WaveRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM waves WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete wave: %w", err)
	}
	return nil
}

// WaveIDForOrder ola que contiene al pedido ("" si ninguna).
func (r *WaveRepo) WaveIDForOrder(ctx context.Context, orderID string) (string, error) {
	var id string
	err := r.q.QueryRow(ctx, `SELECT wave_id FROM sorting_bins WHERE order_id = $1`, orderID).Scan(&id)
	if err != nil {
		if isNoRows(err) {
			return "", nil
		}
		return "", fmt.Errorf("wave for order: %w", err)
	}
	return id, nil
}

const lineColumns = `id, wave_id, seq, barcode, product_id, total_qty, picked_qty, status`

// ListLines líneas de la ola por seq (sin reservas).
func (r *WaveRepo) ListLines(ctx context.Context, waveID string) ([]*entity.WaveLine, error) {
	rows, err := r.q.Query(ctx, `SELECT `+lineColumns+` FROM wave_lines WHERE wave_id = $1 ORDER BY seq`, waveID)
	if err != nil {
		return nil, fmt.Errorf("list wave lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.WaveLine
	for rows.Next() {
		l, err := scanLine(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

// GetLineForUpdate bloquea la línea (wave, barcode) y sus reservas.
func (r *WaveRepo) GetLineForUpdate(ctx context.Context, waveID, code string) (*entity.WaveLine, error) {
	l, err := scanLine(r.q.QueryRow(ctx, `SELECT `+lineColumns+` FROM wave_lines
		WHERE wave_id = $1 AND barcode = $2 FOR UPDATE`, waveID, code))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, wave_line_id, seq, lot_id, location_id, allocated_qty, picked_qty
		FROM wave_allocations WHERE wave_line_id = $1 ORDER BY seq FOR UPDATE`, l.ID)
	if err != nil {
		return nil, fmt.Errorf("list line allocations: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		a, err := scanAllocation(rows)
		if err != nil {
			return nil, err
		}
		l.Allocations = append(l.Allocations, a)
	}
	return l, rows.Err()
}

// UpdateLine persiste cantidad recogida y estado.
func (r *WaveRepo) UpdateLine(ctx context.Context, l *entity.WaveLine) error {
	_, err := r.q.Exec(ctx, `UPDATE wave_lines SET picked_qty = $2, status = $3 WHERE id = $1`,
		l.ID, l.PickedQty, string(l.Status))
	if err != nil {
		return fmt.Errorf("update wave line: %w", err)
	}
	return nil
}

// CountPendingLines líneas aún en PENDING.
func (r *WaveRepo) CountPendingLines(ctx context.Context, waveID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT count(*) FROM wave_lines WHERE wave_id = $1 AND status = 'PENDING'`, waveID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count pending lines: %w", err)
	}
	return n, nil
}

// CreateAllocations inserta las reservas de una línea.
func (r *WaveRepo) CreateAllocations(ctx context.Context, allocations []*entity.WaveAllocation) error {
	for _, a := range allocations {
		_, err := r.q.Exec(ctx, `
			INSERT INTO wave_allocations (id, wave_line_id, seq, lot_id, location_id, allocated_qty, picked_qty)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			a.ID, a.WaveLineID, a.Seq, a.LotID, a.LocationID, a.AllocatedQty, a.PickedQty)
		if err != nil {
			return fmt.Errorf("insert wave allocation: %w", err)
		}
	}
	return nil
}

// UpdateAllocation persiste la cantidad recogida de la reserva.
func (r *WaveRepo) UpdateAllocation(ctx context.Context, a *entity.WaveAllocation) error {
	_, err := r.q.Exec(ctx, `UPDATE wave_allocations SET picked_qty = $2 WHERE id = $1`, a.ID, a.PickedQty)
	if err != nil {
		return fmt.Errorf("update wave allocation: %w", err)
	}
	return nil
}

// GetBinForUpdate bloquea el bin del pedido y carga sus requerimientos.
func (r *WaveRepo) GetBinForUpdate(ctx context.Context, waveID, orderID string) (*entity.SortingBin, error) {
	b, err := scanBin(r.q.QueryRow(ctx, `
		SELECT id, wave_id, order_id, status, required_qty
		FROM sorting_bins WHERE wave_id = $1 AND order_id = $2 FOR UPDATE`, waveID, orderID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	if b.Lines, err = r.binLines(ctx, b.ID); err != nil {
		return nil, err
	}
	return b, nil
}

// UpdateBin persiste el estado del bin.
func (r *WaveRepo) UpdateBin(ctx context.Context, b *entity.SortingBin) error {
	_, err := r.q.Exec(ctx, `UPDATE sorting_bins SET status = $2 WHERE id = $1`, b.ID, string(b.Status))
	if err != nil {
		return fmt.Errorf("update sorting bin: %w", err)
	}
	return nil
}

// CountOpenBins bins aún en OPEN.
func (r *WaveRepo) CountOpenBins(ctx context.Context, waveID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT count(*) FROM sorting_bins WHERE wave_id = $1 AND status = 'OPEN'`, waveID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count open bins: %w", err)
	}
	return n, nil
}

func (r *WaveRepo) binLines(ctx context.Context, binID string) ([]entity.SortingBinLine, error) {
	rows, err := r.q.Query(ctx, `
		SELECT barcode, product_id, required_qty FROM sorting_bin_lines
		WHERE bin_id = $1 ORDER BY barcode`, binID)
	if err != nil {
		return nil, fmt.Errorf("list sorting bin lines: %w", err)
	}
	defer rows.Close()
	var list []entity.SortingBinLine
	for rows.Next() {
		var bl entity.SortingBinLine
		if err := rows.Scan(&bl.Barcode, &bl.ProductID, &bl.RequiredQty); err != nil {
			return nil, fmt.Errorf("scan sorting bin line: %w", err)
		}
		list = append(list, bl)
	}
	return list, rows.Err()
}

func scanLine(row rowScanner) (*entity.WaveLine, error) {
	var l entity.WaveLine
	var status string
	if err := row.Scan(&l.ID, &l.WaveID, &l.Seq, &l.Barcode, &l.ProductID, &l.TotalQty, &l.PickedQty, &status); err != nil {
		if isNoRows(err) {
			return nil, err
		}
		return nil, fmt.Errorf("scan wave line: %w", err)
	}
	l.Status = entity.WaveLineStatus(status)
	return &l, nil
}

func scanAllocation(row rowScanner) (*entity.WaveAllocation, error) {
	var a entity.WaveAllocation
	if err := row.Scan(&a.ID, &a.WaveLineID, &a.Seq, &a.LotID, &a.LocationID, &a.AllocatedQty, &a.PickedQty); err != nil {
		return nil, fmt.Errorf("scan wave allocation: %w", err)
	}
	return &a, nil
}

func scanBin(row rowScanner) (*entity.SortingBin, error) {
	var b entity.SortingBin
	var status string
	if err := row.Scan(&b.ID, &b.WaveID, &b.OrderID, &status, &b.RequiredQty); err != nil {
		if isNoRows(err) {
			return nil, err
		}
		return nil, fmt.Errorf("scan sorting bin: %w", err)
	}
	b.Status = entity.BinStatus(status)
	return &b, nil
}
