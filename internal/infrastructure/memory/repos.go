package memory

import (
	"sort"

	"github.com/jhoicas/distribucion-api/internal/domain/entity"
	"github.com/jhoicas/distribucion-api/internal/domain/repository"
)

// ── Repositorios atados a una transacción (Run sostiene el mutex) ────────────

type txLedger struct{ st *state }

func (r txLedger) Get(depotID, productID string) ([]entity.Lot, error) {
	var out []entity.Lot
	for k, l := range r.st.lots {
		if k.depotID == depotID && k.productID == productID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Lote < out[j].Lote })
	return out, nil
}

func (r txLedger) GetForUpdate(depotID, productID string) ([]entity.Lot, error) {
	return r.Get(depotID, productID)
}

func (r txLedger) GetLotForUpdate(depotID, productID, lote string) (*entity.Lot, error) {
	if l, ok := r.st.lots[lotKey{depotID, productID, lote}]; ok {
		return &l, nil
	}
	return nil, nil
}

func (r txLedger) Apply(depotID, productID string, lots []entity.Lot) error {
	for _, l := range lots {
		k := lotKey{depotID, productID, l.Lote}
		if l.Cantidad == 0 {
			delete(r.st.lots, k)
			continue
		}
		l.DepotID = depotID
		l.ProductID = productID
		r.st.lots[k] = l
	}
	return nil
}

func (r txLedger) AddQuantity(depotID, productID, lote string, qty int64) error {
	k := lotKey{depotID, productID, lote}
	l := r.st.lots[k]
	l.DepotID, l.ProductID, l.Lote = depotID, productID, lote
	l.Cantidad += qty
	r.st.lots[k] = l
	return nil
}

func (r txLedger) Snapshot(depotID string) ([]repository.LedgerEntry, error) {
	byProduct := map[string][]entity.Lot{}
	for k, l := range r.st.lots {
		if k.depotID == depotID && l.Cantidad > 0 {
			byProduct[k.productID] = append(byProduct[k.productID], l)
		}
	}
	var ids []string
	for id := range byProduct {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	var out []repository.LedgerEntry
	for _, id := range ids {
		lots := byProduct[id]
		sort.Slice(lots, func(i, j int) bool { return lots[i].Lote < lots[j].Lote })
		entry := repository.LedgerEntry{ProductID: id, Lots: lots}
		if p, ok := r.st.products[id]; ok {
			entry.ProductName = p.Name
		}
		out = append(out, entry)
	}
	return out, nil
}

func (r txLedger) DepotAggregate(depotID string) (int64, error) {
	var total int64
	for k, l := range r.st.lots {
		if k.depotID == depotID {
			total += l.Cantidad
		}
	}
	return total, nil
}

type txMovements struct{ st *state }

func (r txMovements) Create(m *entity.Movement) error {
	r.st.movements = append(r.st.movements, *m)
	return nil
}

func (r txMovements) List(depotID, productID string, limit, offset int) ([]*entity.Movement, error) {
	var out []*entity.Movement
	// Más recientes primero: el slice se llena en orden de inserción.
	for i := len(r.st.movements) - 1; i >= 0; i-- {
		m := r.st.movements[i]
		if depotID != "" && m.DepotID != depotID {
			continue
		}
		if productID != "" && m.ProductID != productID {
			continue
		}
		out = append(out, &m)
	}
	return page(out, limit, offset), nil
}

type txTransfers struct{ st *state }

func (r txTransfers) Create(t *entity.Transfer) error {
	r.st.transfers[t.ID] = cloneTransfer(*t)
	return nil
}

func (r txTransfers) GetByID(id string) (*entity.Transfer, error) {
	if t, ok := r.st.transfers[id]; ok {
		t = cloneTransfer(t)
		return &t, nil
	}
	return nil, nil
}

func (r txTransfers) GetForUpdate(id string) (*entity.Transfer, error) {
	return r.GetByID(id)
}

func (r txTransfers) Update(t *entity.Transfer) error {
	r.st.transfers[t.ID] = cloneTransfer(*t)
	return nil
}

func (r txTransfers) List(status string, limit, offset int) ([]*entity.Transfer, error) {
	var out []*entity.Transfer
	for _, t := range r.st.transfers {
		if status != "" && t.Status != status {
			continue
		}
		t := cloneTransfer(t)
		out = append(out, &t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return page(out, limit, offset), nil
}

func cloneTransfer(t entity.Transfer) entity.Transfer {
	t.Lots = append([]entity.TransferLot(nil), t.Lots...)
	t.DirectSales = append([]entity.TransferLot(nil), t.DirectSales...)
	return t
}

type txAdjustments struct{ st *state }

func (r txAdjustments) Create(a *entity.Adjustment) error {
	r.st.adjustments[a.ID] = *a
	return nil
}

func (r txAdjustments) GetByID(id string) (*entity.Adjustment, error) {
	if a, ok := r.st.adjustments[id]; ok {
		return &a, nil
	}
	return nil, nil
}

func (r txAdjustments) GetForUpdate(id string) (*entity.Adjustment, error) {
	return r.GetByID(id)
}

func (r txAdjustments) Update(a *entity.Adjustment) error {
	r.st.adjustments[a.ID] = *a
	return nil
}

func (r txAdjustments) List(status string, limit, offset int) ([]*entity.Adjustment, error) {
	var out []*entity.Adjustment
	for _, a := range r.st.adjustments {
		if status != "" && a.Status != status {
			continue
		}
		a := a
		out = append(out, &a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return page(out, limit, offset), nil
}

type txSales struct{ st *state }

func (r txSales) Create(o *entity.SaleOrder) error {
	r.st.sales[o.ID] = *o
	return nil
}

func (r txSales) GetByID(id string) (*entity.SaleOrder, error) {
	if o, ok := r.st.sales[id]; ok {
		return &o, nil
	}
	return nil, nil
}

func (r txSales) GetForUpdate(id string) (*entity.SaleOrder, error) {
	return r.GetByID(id)
}

func (r txSales) Update(o *entity.SaleOrder) error {
	r.st.sales[o.ID] = *o
	return nil
}

func (r txSales) List(status string, limit, offset int) ([]*entity.SaleOrder, error) {
	var out []*entity.SaleOrder
	for _, o := range r.st.sales {
		if status != "" && o.Status != status {
			continue
		}
		o := o
		out = append(out, &o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return page(out, limit, offset), nil
}

// ── Vistas fuera de transacción (toman el mutex del Store) ───────────────────

type depotsView struct{ s *Store }

func (v depotsView) Create(d *entity.Depot) error {
	return v.s.locked(func(st *state) error {
		st.depots[d.ID] = *d
		return nil
	})
}

func (v depotsView) GetByID(id string) (out *entity.Depot, err error) {
	err = v.s.locked(func(st *state) error {
		if d, ok := st.depots[id]; ok {
			out = &d
		}
		return nil
	})
	return out, err
}

func (v depotsView) List(limit, offset int) (out []*entity.Depot, err error) {
	err = v.s.locked(func(st *state) error {
		for _, d := range st.depots {
			d := d
			out = append(out, &d)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
		out = page(out, limit, offset)
		return nil
	})
	return out, err
}

func (v depotsView) Delete(id string) error {
	return v.s.locked(func(st *state) error {
		delete(st.depots, id)
		return nil
	})
}

type productsView struct{ s *Store }

func (v productsView) Create(p *entity.Product) error {
	return v.s.locked(func(st *state) error {
		st.products[p.ID] = *p
		return nil
	})
}

func (v productsView) GetByID(id string) (out *entity.Product, err error) {
	err = v.s.locked(func(st *state) error {
		if p, ok := st.products[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

func (v productsView) List(limit, offset int) (out []*entity.Product, err error) {
	err = v.s.locked(func(st *state) error {
		for _, p := range st.products {
			p := p
			out = append(out, &p)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
		out = page(out, limit, offset)
		return nil
	})
	return out, err
}

type ledgerView struct{ s *Store }

func (v ledgerView) Get(depotID, productID string) (out []entity.Lot, err error) {
	err = v.s.locked(func(st *state) error {
		out, err = txLedger{st}.Get(depotID, productID)
		return err
	})
	return out, err
}

func (v ledgerView) GetForUpdate(depotID, productID string) ([]entity.Lot, error) {
	return v.Get(depotID, productID)
}

func (v ledgerView) GetLotForUpdate(depotID, productID, lote string) (out *entity.Lot, err error) {
	err = v.s.locked(func(st *state) error {
		out, err = txLedger{st}.GetLotForUpdate(depotID, productID, lote)
		return err
	})
	return out, err
}

func (v ledgerView) Apply(depotID, productID string, lots []entity.Lot) error {
	return v.s.locked(func(st *state) error {
		return txLedger{st}.Apply(depotID, productID, lots)
	})
}

func (v ledgerView) AddQuantity(depotID, productID, lote string, qty int64) error {
	return v.s.locked(func(st *state) error {
		return txLedger{st}.AddQuantity(depotID, productID, lote, qty)
	})
}

func (v ledgerView) Snapshot(depotID string) (out []repository.LedgerEntry, err error) {
	err = v.s.locked(func(st *state) error {
		out, err = txLedger{st}.Snapshot(depotID)
		return err
	})
	return out, err
}

func (v ledgerView) DepotAggregate(depotID string) (out int64, err error) {
	err = v.s.locked(func(st *state) error {
		out, err = txLedger{st}.DepotAggregate(depotID)
		return err
	})
	return out, err
}

type movementsView struct{ s *Store }

func (v movementsView) Create(m *entity.Movement) error {
	return v.s.locked(func(st *state) error {
		return txMovements{st}.Create(m)
	})
}

func (v movementsView) List(depotID, productID string, limit, offset int) (out []*entity.Movement, err error) {
	err = v.s.locked(func(st *state) error {
		out, err = txMovements{st}.List(depotID, productID, limit, offset)
		return err
	})
	return out, err
}

type transfersView struct{ s *Store }

func (v transfersView) Create(t *entity.Transfer) error {
	return v.s.locked(func(st *state) error { return txTransfers{st}.Create(t) })
}

func (v transfersView) GetByID(id string) (out *entity.Transfer, err error) {
	err = v.s.locked(func(st *state) error {
		out, err = txTransfers{st}.GetByID(id)
		return err
	})
	return out, err
}

func (v transfersView) GetForUpdate(id string) (*entity.Transfer, error) {
	return v.GetByID(id)
}

func (v transfersView) Update(t *entity.Transfer) error {
	return v.s.locked(func(st *state) error { return txTransfers{st}.Update(t) })
}

func (v transfersView) List(status string, limit, offset int) (out []*entity.Transfer, err error) {
	err = v.s.locked(func(st *state) error {
		out, err = txTransfers{st}.List(status, limit, offset)
		return err
	})
	return out, err
}

type adjustmentsView struct{ s *Store }

func (v adjustmentsView) Create(a *entity.Adjustment) error {
	return v.s.locked(func(st *state) error { return txAdjustments{st}.Create(a) })
}

func (v adjustmentsView) GetByID(id string) (out *entity.Adjustment, err error) {
	err = v.s.locked(func(st *state) error {
		out, err = txAdjustments{st}.GetByID(id)
		return err
	})
	return out, err
}

func (v adjustmentsView) GetForUpdate(id string) (*entity.Adjustment, error) {
	return v.GetByID(id)
}

func (v adjustmentsView) Update(a *entity.Adjustment) error {
	return v.s.locked(func(st *state) error { return txAdjustments{st}.Update(a) })
}

func (v adjustmentsView) List(status string, limit, offset int) (out []*entity.Adjustment, err error) {
	err = v.s.locked(func(st *state) error {
		out, err = txAdjustments{st}.List(status, limit, offset)
		return err
	})
	return out, err
}

type salesView struct{ s *Store }

func (v salesView) Create(o *entity.SaleOrder) error {
	return v.s.locked(func(st *state) error { return txSales{st}.Create(o) })
}

func (v salesView) GetByID(id string) (out *entity.SaleOrder, err error) {
	err = v.s.locked(func(st *state) error {
		out, err = txSales{st}.GetByID(id)
		return err
	})
	return out, err
}

func (v salesView) GetForUpdate(id string) (*entity.SaleOrder, error) {
	return v.GetByID(id)
}

func (v salesView) Update(o *entity.SaleOrder) error {
	return v.s.locked(func(st *state) error { return txSales{st}.Update(o) })
}

func (v salesView) List(status string, limit, offset int) (out []*entity.SaleOrder, err error) {
	err = v.s.locked(func(st *state) error {
		out, err = txSales{st}.List(status, limit, offset)
		return err
	})
	return out, err
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
