// Package memory implementa los puertos del motor sobre un estado en memoria
// con semántica snapshot-commit: Run clona el estado, ejecuta el callback
// contra el clon y recién al terminar sin error lo promueve a estado actual.
// Una falla a mitad de camino no deja ningún efecto observable, igual que el
// rollback de la transacción PostgreSQL. Se usa en tests y en modo demo.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/distribucion-api/internal/application/store"
	"github.com/jhoicas/distribucion-api/internal/domain/entity"
	"github.com/jhoicas/distribucion-api/internal/domain/repository"
)

var _ store.TxRunner = (*Store)(nil)

type lotKey struct {
	depotID   string
	productID string
	lote      string
}

type state struct {
	depots      map[string]entity.Depot
	products    map[string]entity.Product
	lots        map[lotKey]entity.Lot
	transfers   map[string]entity.Transfer
	adjustments map[string]entity.Adjustment
	sales       map[string]entity.SaleOrder
	movements   []entity.Movement
}

func newState() *state {
	return &state{
		depots:      map[string]entity.Depot{},
		products:    map[string]entity.Product{},
		lots:        map[lotKey]entity.Lot{},
		transfers:   map[string]entity.Transfer{},
		adjustments: map[string]entity.Adjustment{},
		sales:       map[string]entity.SaleOrder{},
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.depots {
		c.depots[k] = v
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.lots {
		c.lots[k] = v
	}
	for k, v := range s.transfers {
		v.Lots = append([]entity.TransferLot(nil), v.Lots...)
		v.DirectSales = append([]entity.TransferLot(nil), v.DirectSales...)
		c.transfers[k] = v
	}
	for k, v := range s.adjustments {
		c.adjustments[k] = v
	}
	for k, v := range s.sales {
		c.sales[k] = v
	}
	c.movements = append([]entity.Movement(nil), s.movements...)
	return c
}

// Store almacén en memoria. Un único mutex serializa las transacciones; las
// lecturas fuera de transacción también pasan por él.
type Store struct {
	mu sync.Mutex
	st *state
}

// NewStore construye un almacén vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// Run ejecuta fn contra un clon del estado y lo promueve solo si fn no falla.
func (s *Store) Run(ctx context.Context, fn func(
	ledgerRepo repository.LedgerRepository,
	movRepo repository.MovementRepository,
	transferRepo repository.TransferRepository,
	adjustmentRepo repository.AdjustmentRepository,
	saleRepo repository.SaleOrderRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	work := s.st.clone()
	if err := fn(txLedger{work}, txMovements{work}, txTransfers{work}, txAdjustments{work}, txSales{work}); err != nil {
		return err
	}
	s.st = work
	return nil
}

// locked ejecuta fn con el mutex tomado, para las vistas de solo lectura.
func (s *Store) locked(fn func(st *state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.st)
}

// Depots repositorio de depósitos respaldado por el almacén.
func (s *Store) Depots() repository.DepotRepository { return depotsView{s} }

// Products repositorio de productos respaldado por el almacén.
func (s *Store) Products() repository.ProductRepository { return productsView{s} }

// Ledger repositorio del libro de lotes respaldado por el almacén.
func (s *Store) Ledger() repository.LedgerRepository { return ledgerView{s} }

// Movements repositorio de movimientos respaldado por el almacén.
func (s *Store) Movements() repository.MovementRepository { return movementsView{s} }

// Transfers repositorio de traslados respaldado por el almacén.
func (s *Store) Transfers() repository.TransferRepository { return transfersView{s} }

// Adjustments repositorio de ajustes respaldado por el almacén.
func (s *Store) Adjustments() repository.AdjustmentRepository { return adjustmentsView{s} }

// Sales repositorio de órdenes de venta respaldado por el almacén.
func (s *Store) Sales() repository.SaleOrderRepository { return salesView{s} }
