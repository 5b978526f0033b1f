package wave_test

import (
	"testing"

	"github.com/jhoicas/Inventario-wms/internal/domain"
	"github.com/jhoicas/Inventario-wms/internal/domain/entity"
	"github.com/jhoicas/Inventario-wms/internal/domain/wave"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransition_ForwardOnly(t *testing.T) {
	w := &entity.Wave{Number: "W-000001", Status: entity.WaveDraft}
	require.NoError(t, wave.Transition(w, entity.WavePicking))
	require.NoError(t, wave.Transition(w, entity.WaveSorting))
	require.NoError(t, wave.Transition(w, entity.WaveCompleted))
	assert.Equal(t, entity.WaveCompleted, w.Status)

	assert.ErrorIs(t, wave.Transition(w, entity.WaveDraft), domain.ErrConflict)
	assert.Equal(t, entity.WaveCompleted, w.Status)
}

func TestCanTransition_NoSkips(t *testing.T) {
	assert.False(t, wave.CanTransition(entity.WaveDraft, entity.WaveSorting))
	assert.False(t, wave.CanTransition(entity.WavePicking, entity.WaveCompleted))
	assert.False(t, wave.CanTransition(entity.WaveSorting, entity.WavePicking))
	assert.False(t, wave.CanTransition(entity.WaveCompleted, entity.WaveCompleted))
}

func TestRequireStatusAndDeletable(t *testing.T) {
	w := &entity.Wave{Status: entity.WavePicking}
	assert.NoError(t, wave.RequireStatus(w, entity.WavePicking))
	assert.ErrorIs(t, wave.RequireStatus(w, entity.WaveDraft), domain.ErrConflict)
	assert.False(t, wave.Deletable(w))
	assert.True(t, wave.Deletable(&entity.Wave{Status: entity.WaveDraft}))
}

func qty(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func TestAggregate_SumsAcrossOrders(t *testing.T) {
	d := wave.Aggregate([]string{"o1", "o2"}, []wave.ResolvedLine{
		{OrderID: "o1", Barcode: "111", ProductIDs: []string{"p1"}, Quantity: qty(2)},
		{OrderID: "o2", Barcode: "111", ProductIDs: []string{"p1"}, Quantity: qty(3)},
		{OrderID: "o2", Barcode: "222", ProductIDs: []string{"p2"}, Quantity: qty(1)},
		{OrderID: "o1", Barcode: "111", ProductIDs: []string{"p1"}, Quantity: qty(1)},
	})

	require.Len(t, d.Lines, 2)
	assert.Equal(t, "111", d.Lines[0].Barcode)
	assert.Equal(t, "p1", d.Lines[0].ProductID)
	assert.True(t, d.Lines[0].Total.Equal(qty(6)))
	assert.True(t, d.Lines[1].Total.Equal(qty(1)))

	require.Len(t, d.Bins, 2)
	assert.Equal(t, "o1", d.Bins[0].OrderID)
	assert.True(t, d.Bins[0].Total.Equal(qty(3)))
	required, ok := (&entity.SortingBin{Lines: d.Bins[1].Lines}).Required("111")
	require.True(t, ok)
	assert.True(t, required.Equal(qty(3)))
	assert.True(t, d.Bins[1].Total.Equal(qty(4)))
	assert.Empty(t, d.Unresolved)
}

func TestAggregate_ConflictingAndUnresolved(t *testing.T) {
	d := wave.Aggregate([]string{"o1", "o2"}, []wave.ResolvedLine{
		{OrderID: "o1", Barcode: "333", ProductIDs: []string{"p1"}, Quantity: qty(1)},
		{OrderID: "o2", Barcode: "333", ProductIDs: []string{"p9"}, Quantity: qty(1)},
		{OrderID: "o2", SKU: "SIN-CODIGO", Quantity: qty(1)},
		{OrderID: "o1", Barcode: "444", Quantity: qty(1)},
		{OrderID: "o1", Barcode: "555", ProductIDs: []string{"p5"}, Quantity: qty(2)},
	})

	require.Len(t, d.Lines, 1)
	assert.Equal(t, "555", d.Lines[0].Barcode)
	require.Len(t, d.Unresolved, 4)
	reasons := map[string]int{}
	for _, u := range d.Unresolved {
		reasons[u.Reason]++
	}
	assert.Equal(t, 2, reasons[wave.ReasonConflict])
	assert.Equal(t, 2, reasons[wave.ReasonUnresolved])

	// o2 se queda con bin vacío.
	require.Len(t, d.Bins, 2)
	assert.Empty(t, d.Bins[1].Lines)
	assert.True(t, d.Bins[1].Total.IsZero())
}
