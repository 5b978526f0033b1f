package wave

import (
	"sort"

	"github.com/jhoicas/Inventario-wms/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Motivos por los que una línea queda fuera de la agregación.
const (
	ReasonUnresolved = "unresolved"
	ReasonConflict   = "conflicting_products"
)

// ResolvedLine línea de pedido después de consultar el resolvedor de productos.
// ProductIDs contiene todos los productos asociados al código (incluido el declarado en el pedido).
type ResolvedLine struct {
	OrderID    string
	Barcode    string
	SKU        string
	ProductIDs []string
	Quantity   decimal.Decimal
}

// DemandLine demanda agregada por código de barras.
type DemandLine struct {
	Barcode   string
	ProductID string
	Total     decimal.Decimal
}

// BinDemand demanda de un pedido.
type BinDemand struct {
	OrderID string
	Lines   []entity.SortingBinLine
	Total   decimal.Decimal
}

// Unresolved línea descartada de la agregación.
type Unresolved struct {
	OrderID string
	Barcode string
	SKU     string
	Reason  string
}

// Demand resultado de la agregación.
type Demand struct {
	Lines      []DemandLine
	Bins       []BinDemand
	Unresolved []Unresolved
}

// Aggregate suma cantidades por código de barras en todos los pedidos. Un código que
// resuelve a productos distintos (en cualquier línea) se rechaza completo, no se mezcla.
// orderIDs fija el orden de los bins; cada pedido obtiene bin aunque quede sin líneas.
func Aggregate(orderIDs []string, lines []ResolvedLine) Demand {
	products := make(map[string]map[string]struct{})
	var keys []string
	for _, l := range lines {
		if l.Barcode == "" {
			continue
		}
		set, ok := products[l.Barcode]
		if !ok {
			set = make(map[string]struct{})
			products[l.Barcode] = set
			keys = append(keys, l.Barcode)
		}
		for _, id := range l.ProductIDs {
			if id != "" {
				set[id] = struct{}{}
			}
		}
	}

	var d Demand
	resolved := make(map[string]string, len(keys))
	for _, k := range keys {
		if len(products[k]) == 1 {
			for id := range products[k] {
				resolved[k] = id
			}
		}
	}

	totals := make(map[string]decimal.Decimal)
	perOrder := make(map[string]map[string]decimal.Decimal)
	orderKeys := make(map[string][]string)
	for _, l := range lines {
		if _, ok := resolved[l.Barcode]; l.Barcode == "" || !ok {
			reason := ReasonUnresolved
			if l.Barcode != "" && len(products[l.Barcode]) > 1 {
				reason = ReasonConflict
			}
			d.Unresolved = append(d.Unresolved, Unresolved{OrderID: l.OrderID, Barcode: l.Barcode, SKU: l.SKU, Reason: reason})
			continue
		}
		totals[l.Barcode] = totals[l.Barcode].Add(l.Quantity)
		m, ok := perOrder[l.OrderID]
		if !ok {
			m = make(map[string]decimal.Decimal)
			perOrder[l.OrderID] = m
		}
		if _, seen := m[l.Barcode]; !seen {
			orderKeys[l.OrderID] = append(orderKeys[l.OrderID], l.Barcode)
		}
		m[l.Barcode] = m[l.Barcode].Add(l.Quantity)
	}

	for _, k := range keys {
		if t, ok := totals[k]; ok {
			d.Lines = append(d.Lines, DemandLine{Barcode: k, ProductID: resolved[k], Total: t})
		}
	}
	for _, orderID := range orderIDs {
		bin := BinDemand{OrderID: orderID, Total: decimal.Zero}
		for _, k := range orderKeys[orderID] {
			q := perOrder[orderID][k]
			bin.Lines = append(bin.Lines, entity.SortingBinLine{Barcode: k, ProductID: resolved[k], RequiredQty: q})
			bin.Total = bin.Total.Add(q)
		}
		d.Bins = append(d.Bins, bin)
	}
	sort.SliceStable(d.Unresolved, func(i, j int) bool { return d.Unresolved[i].OrderID < d.Unresolved[j].OrderID })
	return d
}
