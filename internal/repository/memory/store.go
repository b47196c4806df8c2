// Package memory is a Store kept in process memory. A transaction works on a
// private copy of the committed state and replaces it on commit; one transaction is
// open at a time, so the copy never goes stale. Foreign keys and the composite key
// of order_products are enforced the way the Postgres schema enforces them.
package memory

import (
	"context"
	"database/sql"
	"maps"
	"sync"

	"golang.org/x/sync/semaphore"

	"supplychain-admin/internal/models"
	"supplychain-admin/internal/repository"
)

type state struct {
	orders     map[int64]models.Order
	items      map[int64]map[int64]int
	deliveries map[int64]models.Delivery

	consumers  map[int64]string
	products   map[int64]string
	batches    map[int64]int64
	warehouses map[int64]models.Warehouse
	vendors    map[int64]string

	orderSeq    int64
	deliverySeq int64
}

func newState() *state {
	return &state{
		orders:     make(map[int64]models.Order),
		items:      make(map[int64]map[int64]int),
		deliveries: make(map[int64]models.Delivery),
		consumers:  make(map[int64]string),
		products:   make(map[int64]string),
		batches:    make(map[int64]int64),
		warehouses: make(map[int64]models.Warehouse),
		vendors:    make(map[int64]string),
	}
}

func (s *state) clone() *state {
	c := &state{
		orders:      maps.Clone(s.orders),
		items:       make(map[int64]map[int64]int, len(s.items)),
		deliveries:  maps.Clone(s.deliveries),
		consumers:   maps.Clone(s.consumers),
		products:    maps.Clone(s.products),
		batches:     maps.Clone(s.batches),
		warehouses:  maps.Clone(s.warehouses),
		vendors:     maps.Clone(s.vendors),
		orderSeq:    s.orderSeq,
		deliverySeq: s.deliverySeq,
	}
	for id, set := range s.items {
		c.items[id] = maps.Clone(set)
	}
	// nullable links are pointers; copy them so the snapshot owns its values
	for id, o := range c.orders {
		if o.DeliveryID != nil {
			o.DeliveryID = models.IDPtr(*o.DeliveryID)
			c.orders[id] = o
		}
	}
	for id, d := range c.deliveries {
		if d.OrderID != nil {
			d.OrderID = models.IDPtr(*d.OrderID)
		}
		if d.VendorID != nil {
			d.VendorID = models.IDPtr(*d.VendorID)
		}
		c.deliveries[id] = d
	}
	return c
}

type Store struct {
	mu        sync.RWMutex
	committed *state

	// held from Begin until Commit/Rollback, and around autocommit writes
	writer *semaphore.Weighted

	faultMu sync.Mutex
	faults  map[string]*fault
}

type fault struct {
	remaining int
	err       error
}

type Option func(*Store)

// WithOrderSeq makes the next created order get id n+1.
func WithOrderSeq(n int64) Option { return func(s *Store) { s.committed.orderSeq = n } }

// WithDeliverySeq makes the next created delivery get id n+1.
func WithDeliverySeq(n int64) Option { return func(s *Store) { s.committed.deliverySeq = n } }

func NewStore(opts ...Option) *Store {
	s := &Store{
		committed: newState(),
		writer:    semaphore.NewWeighted(1),
		faults:    make(map[string]*fault),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

var _ repository.Store = (*Store)(nil)

func (s *Store) Repository() *repository.Repository {
	return newRepository(handle{store: s})
}

// Begin waits for the open transaction, if any, to finish. It gives up with
// ctx.Err() when ctx is done first.
func (s *Store) Begin(ctx context.Context) (repository.Tx, error) {
	if err := s.writer.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	s.mu.RLock()
	work := s.committed.clone()
	s.mu.RUnlock()

	t := &Tx{store: s, ctx: ctx, work: work}
	t.repo = newRepository(handle{store: s, tx: t})
	return t, nil
}

// InjectFault makes the n-th next execution of op fail with err. Operation names are
// "<table>.<verb>", e.g. "orders.create" or "order_products.insert" (counted per row).
func (s *Store) InjectFault(op string, n int, err error) {
	s.faultMu.Lock()
	defer s.faultMu.Unlock()
	s.faults[op] = &fault{remaining: n, err: err}
}

func (s *Store) fault(op string) error {
	s.faultMu.Lock()
	defer s.faultMu.Unlock()
	f, ok := s.faults[op]
	if !ok {
		return nil
	}
	f.remaining--
	if f.remaining > 0 {
		return nil
	}
	delete(s.faults, op)
	return f.err
}

func (s *Store) AddConsumer(id int64, name string) {
	s.seed(func(st *state) { st.consumers[id] = name })
}

func (s *Store) AddProduct(id int64, name string) {
	s.seed(func(st *state) { st.products[id] = name })
}

func (s *Store) AddBatch(id, productID int64) {
	s.seed(func(st *state) { st.batches[id] = productID })
}

func (s *Store) AddWarehouse(id int64, name, location string) {
	s.seed(func(st *state) { st.warehouses[id] = models.Warehouse{ID: id, Name: name, Location: location} })
}

func (s *Store) AddVendor(id int64, name string) {
	s.seed(func(st *state) { st.vendors[id] = name })
}

func (s *Store) seed(fn func(st *state)) {
	_ = s.writer.Acquire(context.Background(), 1)
	defer s.writer.Release(1)
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.committed)
}

type Tx struct {
	store *Store
	ctx   context.Context
	work  *state
	repo  *repository.Repository
	done  bool
}

func (t *Tx) Repository() *repository.Repository { return t.repo }

func (t *Tx) Commit() error {
	if t.done {
		return sql.ErrTxDone
	}
	t.done = true
	defer t.store.writer.Release(1)
	if err := t.ctx.Err(); err != nil {
		return err
	}
	t.store.mu.Lock()
	t.store.committed = t.work
	t.store.mu.Unlock()
	return nil
}

func (t *Tx) Rollback() error {
	if t.done {
		return nil
	}
	t.done = true
	t.store.writer.Release(1)
	return nil
}

// handle runs statements either inside a transaction or, without one, directly on
// the committed state.
type handle struct {
	store *Store
	tx    *Tx
}

func (h handle) read(ctx context.Context, op string, fn func(st *state) error) error {
	if err := h.check(ctx, op); err != nil {
		return err
	}
	if h.tx != nil {
		return fn(h.tx.work)
	}
	h.store.mu.RLock()
	defer h.store.mu.RUnlock()
	return fn(h.store.committed)
}

func (h handle) write(ctx context.Context, op string, fn func(st *state) error) error {
	if err := h.check(ctx, op); err != nil {
		return err
	}
	if h.tx != nil {
		return fn(h.tx.work)
	}
	if err := h.store.writer.Acquire(ctx, 1); err != nil {
		return err
	}
	defer h.store.writer.Release(1)
	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	// autocommit: a failed statement leaves nothing behind
	work := h.store.committed.clone()
	if err := fn(work); err != nil {
		return err
	}
	h.store.committed = work
	return nil
}

func (h handle) check(ctx context.Context, op string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if h.tx != nil {
		if h.tx.done {
			return sql.ErrTxDone
		}
		if err := h.tx.ctx.Err(); err != nil {
			return err
		}
	}
	return h.store.fault(op)
}

func newRepository(h handle) *repository.Repository {
	return &repository.Repository{
		Orders:     orderRepo{h},
		LineItems:  lineItemRepo{h},
		Deliveries: deliveryRepo{h},
		References: referenceRepo{h},
		Integrity:  integrityRepo{h},
	}
}
