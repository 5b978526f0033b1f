// Package memory implementación en memoria de los repositorios, usada por los tests y por
// STORE=memory. Las transacciones se serializan y trabajan sobre una copia del estado que solo
// reemplaza al original si fn termina sin error.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Inventario-wms/internal/domain/entity"
	"github.com/jhoicas/Inventario-wms/internal/domain/repository"
	"github.com/jhoicas/Inventario-wms/pkg/barcode"
)

type state struct {
	products  map[string]*entity.Product
	barcodes  map[string][]string
	lots      map[string]*entity.Lot
	locations map[string]*entity.Location
	orders    map[string]*entity.Order

	movements []*entity.StockMovement
	balances  map[entity.BalanceKey]*entity.StockBalance

	waveSeq    int
	waves      map[string]*entity.Wave
	waveLines  map[string]*entity.WaveLine
	waveAllocs map[string]*entity.WaveAllocation
	bins       map[string]*entity.SortingBin
	binOrder   map[string][]string

	pickScans    map[string]*entity.PickScan
	sortingScans map[string]*entity.SortingScan
}

func newState() *state {
	return &state{
		products:     map[string]*entity.Product{},
		barcodes:     map[string][]string{},
		lots:         map[string]*entity.Lot{},
		locations:    map[string]*entity.Location{},
		orders:       map[string]*entity.Order{},
		balances:     map[entity.BalanceKey]*entity.StockBalance{},
		waves:        map[string]*entity.Wave{},
		waveLines:    map[string]*entity.WaveLine{},
		waveAllocs:   map[string]*entity.WaveAllocation{},
		bins:         map[string]*entity.SortingBin{},
		binOrder:     map[string][]string{},
		pickScans:    map[string]*entity.PickScan{},
		sortingScans: map[string]*entity.SortingScan{},
	}
}

// clone copia superficial por registro: los repositorios nunca modifican un registro en sitio,
// siempre lo reemplazan por una copia.
func (s *state) clone() *state {
	c := &state{
		products:     copyMap(s.products),
		barcodes:     copyMap(s.barcodes),
		lots:         copyMap(s.lots),
		locations:    copyMap(s.locations),
		orders:       copyMap(s.orders),
		movements:    s.movements[:len(s.movements):len(s.movements)],
		balances:     copyMap(s.balances),
		waveSeq:      s.waveSeq,
		waves:        copyMap(s.waves),
		waveLines:    copyMap(s.waveLines),
		waveAllocs:   copyMap(s.waveAllocs),
		bins:         copyMap(s.bins),
		binOrder:     copyMap(s.binOrder),
		pickScans:    copyMap(s.pickScans),
		sortingScans: copyMap(s.sortingScans),
	}
	return c
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Store almacén en memoria.
type Store struct {
	mu    sync.Mutex
	state *state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{state: newState()}
}

// Run ejecuta fn con repositorios sobre una copia del estado; confirma solo si fn no falla.
func (s *Store) Run(ctx context.Context, fn func(r repository.Repos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	work := s.state.clone()
	if err := fn(reposFor(work)); err != nil {
		return err
	}
	s.state = work
	return nil
}

func reposFor(st *state) repository.Repos {
	return repository.Repos{
		Movements: &movementRepo{st},
		Balances:  &balanceRepo{st},
		Products:  &productRepo{st},
		Lots:      &lotRepo{st},
		Locations: &locationRepo{st},
		Orders:    &orderRepo{st},
		Waves:     &waveRepo{st},
		Scans:     &scanRepo{st},
	}
}

// AddProduct registra un producto y sus códigos de barras (normalizados).
func (s *Store) AddProduct(p entity.Product) *entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	p.SKU = barcode.NormalizeSKU(p.SKU)
	codes := make([]string, 0, len(p.Barcodes))
	for _, b := range p.Barcodes {
		if code := barcode.Normalize(b); code != "" {
			codes = append(codes, code)
			s.state.barcodes[code] = append(append([]string(nil), s.state.barcodes[code]...), p.ID)
		}
	}
	p.Barcodes = codes
	s.state.products[p.ID] = &p
	cp := p
	return &cp
}

// AddLocation registra una ubicación.
func (s *Store) AddLocation(l entity.Location) *entity.Location {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now()
	}
	s.state.locations[l.ID] = &l
	cp := l
	return &cp
}

// AddOrder registra un pedido de la fuente externa.
func (s *Store) AddOrder(o entity.Order) *entity.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	o.Lines = append([]entity.OrderLine(nil), o.Lines...)
	s.state.orders[o.ID] = &o
	cp := o
	return &cp
}
