// Package wave define la máquina de estados de una ola y la agregación de demanda.
package wave

import (
	"github.com/jhoicas/Inventario-wms/internal/domain"
	"github.com/jhoicas/Inventario-wms/internal/domain/entity"
)

// next única transición hacia adelante permitida desde cada estado.
var next = map[entity.WaveStatus]entity.WaveStatus{
	entity.WaveDraft:   entity.WavePicking,
	entity.WavePicking: entity.WaveSorting,
	entity.WaveSorting: entity.WaveCompleted,
}

// CanTransition DRAFT → PICKING → SORTING → COMPLETED, sin retrocesos ni saltos.
func CanTransition(from, to entity.WaveStatus) bool {
	n, ok := next[from]
	return ok && n == to
}

// Transition aplica la transición o devuelve ErrConflict.
func Transition(w *entity.Wave, to entity.WaveStatus) error {
	if !CanTransition(w.Status, to) {
		return domain.Conflict("la ola %s está en %s, no puede pasar a %s", w.Number, w.Status, to)
	}
	w.Status = to
	return nil
}

// RequireStatus ErrConflict si la ola no está en el estado esperado.
func RequireStatus(w *entity.Wave, want entity.WaveStatus) error {
	if w.Status != want {
		return domain.Conflict("la ola %s está en %s, se esperaba %s", w.Number, w.Status, want)
	}
	return nil
}

// Deletable solo las olas en DRAFT se pueden eliminar.
func Deletable(w *entity.Wave) bool {
	return w.Status == entity.WaveDraft
}
