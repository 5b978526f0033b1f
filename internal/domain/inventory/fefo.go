package inventory

import (
	"sort"
	"time"

	"github.com/jhoicas/Inventario-wms/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Selection cantidad tomada de un par (lote, ubicación).
type Selection struct {
	LotID        string
	LocationID   string
	LocationCode string
	ExpiryDate   *time.Time
	Quantity     decimal.Decimal
}

// Plan resultado del planificador FEFO. Shortage = requerido - asignado (nunca negativo).
type Plan struct {
	Selections []Selection
	Allocated  decimal.Decimal
	Shortage   decimal.Decimal
}

// Eligible un par entra al plan si su ubicación es NORMAL y activa, tiene disponible
// y el lote no vence (vencimiento nulo o posterior a asOf).
func Eligible(c entity.AllocationCandidate, asOf time.Time) bool {
	if !c.Active || c.Zone != entity.ZoneNormal {
		return false
	}
	if !c.Available.IsPositive() {
		return false
	}
	return c.ExpiryDate == nil || c.ExpiryDate.After(asOf)
}

// SortFEFO ordena por vencimiento ascendente con nulos al final; empate por código de ubicación
// y luego por lote, para que la asignación sea reproducible.
func SortFEFO(cands []entity.AllocationCandidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		switch {
		case a.ExpiryDate == nil && b.ExpiryDate != nil:
			return false
		case a.ExpiryDate != nil && b.ExpiryDate == nil:
			return true
		case a.ExpiryDate != nil && b.ExpiryDate != nil && !a.ExpiryDate.Equal(*b.ExpiryDate):
			return a.ExpiryDate.Before(*b.ExpiryDate)
		}
		if a.LocationCode != b.LocationCode {
			return a.LocationCode < b.LocationCode
		}
		return a.LotID < b.LotID
	})
}

// PlanFEFO consume los pares en orden FEFO tomando min(disponible, restante) de cada uno
// hasta cubrir required o agotar los pares.
func PlanFEFO(cands []entity.AllocationCandidate, required decimal.Decimal, asOf time.Time) Plan {
	eligible := make([]entity.AllocationCandidate, 0, len(cands))
	for _, c := range cands {
		if Eligible(c, asOf) {
			eligible = append(eligible, c)
		}
	}
	SortFEFO(eligible)

	plan := Plan{Allocated: decimal.Zero}
	remaining := required
	for _, c := range eligible {
		if !remaining.IsPositive() {
			break
		}
		take := decimal.Min(c.Available, remaining)
		plan.Selections = append(plan.Selections, Selection{
			LotID:        c.LotID,
			LocationID:   c.LocationID,
			LocationCode: c.LocationCode,
			ExpiryDate:   c.ExpiryDate,
			Quantity:     take,
		})
		plan.Allocated = plan.Allocated.Add(take)
		remaining = remaining.Sub(take)
	}
	if remaining.IsPositive() {
		plan.Shortage = remaining
	} else {
		plan.Shortage = decimal.Zero
	}
	return plan
}
