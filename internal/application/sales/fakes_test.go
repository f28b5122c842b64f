package sales_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/ventaspro/internal/application/sales"
	"github.com/tu-usuario/ventaspro/internal/domain/entity"
	"github.com/tu-usuario/ventaspro/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
//
// memStore simula la base de datos: catálogo, ledger append-only y órdenes.
// El mutex del store protege los accesos concurrentes (lecturas de validación
// fuera de la transacción). El fakeTxRunner serializa las transacciones con su
// propio mutex, igual que los locks de fila serializan dos órdenes sobre el
// mismo artículo, y toma un snapshot antes de ejecutar fn que restaura si fn
// falla, reproduciendo el rollback: ningún test debe observar movimientos de
// una orden abortada.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu         sync.Mutex
	items      map[string]*entity.Item
	movements  []*entity.StockMovement
	seq        int64
	sales      map[string]*entity.Sale
	saleLines  map[string][]*entity.SaleItem
	purchases  map[string]*entity.Purchase
	purchLines map[string][]*entity.PurchaseItem
	customers  map[string]*entity.Customer
	suppliers  map[string]*entity.Supplier
	saleSeq    int64
	purchSeq   int64
}

func newMemStore() *memStore {
	return &memStore{
		items:      make(map[string]*entity.Item),
		sales:      make(map[string]*entity.Sale),
		saleLines:  make(map[string][]*entity.SaleItem),
		purchases:  make(map[string]*entity.Purchase),
		purchLines: make(map[string][]*entity.PurchaseItem),
		customers:  make(map[string]*entity.Customer),
		suppliers:  make(map[string]*entity.Supplier),
	}
}

// clone copia el estado (no el mutex). El caller debe tener s.mu.
func (s *memStore) clone() *memStore {
	cp := newMemStore()
	cp.seq, cp.saleSeq, cp.purchSeq = s.seq, s.saleSeq, s.purchSeq
	for id, it := range s.items {
		c := *it
		cp.items[id] = &c
	}
	cp.movements = append(cp.movements, s.movements...)
	for id, sl := range s.sales {
		c := *sl
		cp.sales[id] = &c
	}
	for id, lines := range s.saleLines {
		cp.saleLines[id] = append([]*entity.SaleItem(nil), lines...)
	}
	for id, p := range s.purchases {
		c := *p
		cp.purchases[id] = &c
	}
	for id, lines := range s.purchLines {
		cp.purchLines[id] = append([]*entity.PurchaseItem(nil), lines...)
	}
	for id, c := range s.customers {
		cc := *c
		cp.customers[id] = &cc
	}
	for id, sp := range s.suppliers {
		cc := *sp
		cp.suppliers[id] = &cc
	}
	return cp
}

func (s *memStore) snapshot() *memStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clone()
}

// restoreFrom reescribe el estado con el snapshot, sin tocar el mutex.
func (s *memStore) restoreFrom(sn *memStore) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = sn.items
	s.movements = sn.movements
	s.seq = sn.seq
	s.sales = sn.sales
	s.saleLines = sn.saleLines
	s.purchases = sn.purchases
	s.purchLines = sn.purchLines
	s.customers = sn.customers
	s.suppliers = sn.suppliers
	s.saleSeq = sn.saleSeq
	s.purchSeq = sn.purchSeq
}

// ── TxRunner ──

type fakeTxRunner struct {
	store *memStore
	txMu  sync.Mutex // una transacción a la vez, como los locks de fila
}

var _ sales.TxRunner = (*fakeTxRunner)(nil)

func (r *fakeTxRunner) RunSales(_ context.Context, fn func(repository.MovementRepository, repository.ItemRepository, repository.SaleRepository) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()
	snapshot := r.store.snapshot()
	err := fn(&fakeMovementRepo{r.store}, &fakeItemRepo{r.store}, &fakeSaleRepo{r.store})
	if err != nil {
		r.store.restoreFrom(snapshot)
	}
	return err
}

func (r *fakeTxRunner) RunPurchases(_ context.Context, fn func(repository.MovementRepository, repository.ItemRepository, repository.PurchaseRepository) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()
	snapshot := r.store.snapshot()
	err := fn(&fakeMovementRepo{r.store}, &fakeItemRepo{r.store}, &fakePurchaseRepo{r.store})
	if err != nil {
		r.store.restoreFrom(snapshot)
	}
	return err
}

// ── MovementRepository ──

type fakeMovementRepo struct{ store *memStore }

var _ repository.MovementRepository = (*fakeMovementRepo)(nil)

func (r *fakeMovementRepo) Create(m *entity.StockMovement) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.seq++
	m.Seq = r.store.seq
	cp := *m
	r.store.movements = append(r.store.movements, &cp)
	return nil
}

func (r *fakeMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, m := range r.store.movements {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

func (r *fakeMovementRepo) List(filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.StockMovement
	for _, m := range r.store.movements {
		if filter.ItemID != "" && m.ItemID != filter.ItemID {
			continue
		}
		if filter.Type != "" && m.Type != filter.Type {
			continue
		}
		if filter.From != nil && m.MovementDate.Before(*filter.From) {
			continue
		}
		if filter.To != nil && m.MovementDate.After(*filter.To) {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].MovementDate.Equal(out[j].MovementDate) {
			return out[i].MovementDate.Before(out[j].MovementDate)
		}
		return out[i].Seq < out[j].Seq
	})
	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return nil, nil
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(out) {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *fakeMovementRepo) ListByReference(referenceType, referenceID string) ([]*entity.StockMovement, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.StockMovement
	for _, m := range r.store.movements {
		if m.ReferenceType == referenceType && m.ReferenceID == referenceID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) SumByItem(itemID string) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var total int64
	for _, m := range r.store.movements {
		if m.ItemID == itemID {
			total += m.Quantity
		}
	}
	return total, nil
}

func (r *fakeMovementRepo) SummaryByType(from, to *time.Time) ([]repository.MovementTypeSummary, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	byType := make(map[string]*repository.MovementTypeSummary)
	for _, m := range r.store.movements {
		if from != nil && m.MovementDate.Before(*from) {
			continue
		}
		if to != nil && m.MovementDate.After(*to) {
			continue
		}
		s, ok := byType[m.Type]
		if !ok {
			s = &repository.MovementTypeSummary{Type: m.Type}
			byType[m.Type] = s
		}
		s.TotalQuantity += m.Quantity
		s.MovementCount++
	}
	var out []repository.MovementTypeSummary
	for _, s := range byType {
		out = append(out, *s)
	}
	return out, nil
}

// ── ItemRepository ──

type fakeItemRepo struct{ store *memStore }

var _ repository.ItemRepository = (*fakeItemRepo)(nil)

func (r *fakeItemRepo) Create(item *entity.Item) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *item
	r.store.items[item.ID] = &cp
	return nil
}

func (r *fakeItemRepo) GetByID(id string) (*entity.Item, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	item, ok := r.store.items[id]
	if !ok {
		return nil, nil
	}
	cp := *item
	return &cp, nil
}

func (r *fakeItemRepo) GetByCode(code string) (*entity.Item, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, item := range r.store.items {
		if item.Code == code {
			cp := *item
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeItemRepo) GetForUpdate(id string) (*entity.Item, error) {
	return r.GetByID(id)
}

func (r *fakeItemRepo) Update(item *entity.Item) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	existing, ok := r.store.items[item.ID]
	if !ok {
		return nil
	}
	stock, cost, price := existing.CurrentStock, existing.Cost, existing.PurchasePrice
	cp := *item
	cp.CurrentStock, cp.Cost, cp.PurchasePrice = stock, cost, price
	r.store.items[item.ID] = &cp
	return nil
}

func (r *fakeItemRepo) UpdateStock(id string, currentStock int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if item, ok := r.store.items[id]; ok {
		item.CurrentStock = currentStock
	}
	return nil
}

func (r *fakeItemRepo) UpdateCosting(id string, cost, purchasePrice decimal.Decimal) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if item, ok := r.store.items[id]; ok {
		item.Cost = cost
		item.PurchasePrice = purchasePrice
	}
	return nil
}

func (r *fakeItemRepo) ListActive() ([]*entity.Item, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.Item
	for _, item := range r.store.items {
		if item.Active {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (r *fakeItemRepo) List(limit, offset int) ([]*entity.Item, error) {
	return r.ListActive()
}

func (r *fakeItemRepo) Deactivate(id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if item, ok := r.store.items[id]; ok {
		item.Active = false
	}
	return nil
}

// ── SaleRepository ──

type fakeSaleRepo struct{ store *memStore }

var _ repository.SaleRepository = (*fakeSaleRepo)(nil)

func (r *fakeSaleRepo) Create(sale *entity.Sale, items []*entity.SaleItem) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *sale
	r.store.sales[sale.ID] = &cp
	r.store.saleLines[sale.ID] = append([]*entity.SaleItem(nil), items...)
	return nil
}

func (r *fakeSaleRepo) GetByID(id string) (*entity.Sale, []*entity.SaleItem, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	sale, ok := r.store.sales[id]
	if !ok {
		return nil, nil, nil
	}
	cp := *sale
	return &cp, r.store.saleLines[id], nil
}

func (r *fakeSaleRepo) List(from, to *time.Time, limit, offset int) ([]*entity.Sale, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.Sale
	for _, s := range r.store.sales {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *fakeSaleRepo) UpdateStatus(id, status string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if sale, ok := r.store.sales[id]; ok {
		sale.Status = status
	}
	return nil
}

func (r *fakeSaleRepo) NextInvoiceNumber() (string, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.saleSeq++
	return fmt.Sprintf("INV-%06d", r.store.saleSeq), nil
}

// ── PurchaseRepository ──

type fakePurchaseRepo struct{ store *memStore }

var _ repository.PurchaseRepository = (*fakePurchaseRepo)(nil)

func (r *fakePurchaseRepo) Create(purchase *entity.Purchase, items []*entity.PurchaseItem) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *purchase
	r.store.purchases[purchase.ID] = &cp
	r.store.purchLines[purchase.ID] = append([]*entity.PurchaseItem(nil), items...)
	return nil
}

func (r *fakePurchaseRepo) GetByID(id string) (*entity.Purchase, []*entity.PurchaseItem, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	purchase, ok := r.store.purchases[id]
	if !ok {
		return nil, nil, nil
	}
	cp := *purchase
	return &cp, r.store.purchLines[id], nil
}

func (r *fakePurchaseRepo) List(from, to *time.Time, limit, offset int) ([]*entity.Purchase, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.Purchase
	for _, p := range r.store.purchases {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *fakePurchaseRepo) UpdateStatus(id, status string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if purchase, ok := r.store.purchases[id]; ok {
		purchase.Status = status
	}
	return nil
}

func (r *fakePurchaseRepo) NextInvoiceNumber() (string, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.purchSeq++
	return fmt.Sprintf("PUR-%06d", r.store.purchSeq), nil
}

// ── CustomerRepository / SupplierRepository ──

type fakeCustomerRepo struct{ store *memStore }

var _ repository.CustomerRepository = (*fakeCustomerRepo)(nil)

func (r *fakeCustomerRepo) Create(c *entity.Customer) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *c
	r.store.customers[c.ID] = &cp
	return nil
}

func (r *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c, ok := r.store.customers[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCustomerRepo) Update(c *entity.Customer) error { return r.Create(c) }

func (r *fakeCustomerRepo) List(limit, offset int) ([]*entity.Customer, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.Customer
	for _, c := range r.store.customers {
		out = append(out, c)
	}
	return out, nil
}

type fakeSupplierRepo struct{ store *memStore }

var _ repository.SupplierRepository = (*fakeSupplierRepo)(nil)

func (r *fakeSupplierRepo) Create(s *entity.Supplier) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *s
	r.store.suppliers[s.ID] = &cp
	return nil
}

func (r *fakeSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	s, ok := r.store.suppliers[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSupplierRepo) Update(s *entity.Supplier) error { return r.Create(s) }

func (r *fakeSupplierRepo) List(limit, offset int) ([]*entity.Supplier, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.Supplier
	for _, s := range r.store.suppliers {
		out = append(out, s)
	}
	return out, nil
}
