package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"supplychain-admin/internal/models"
	"supplychain-admin/internal/repository/memory"
	svc "supplychain-admin/internal/service"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []svc.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, _ []byte, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	var ev svc.Event
	if err := json.Unmarshal(payload, &ev); err != nil {
		return err
	}
	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Type)
	}
	return out
}

func newStore() *memory.Store {
	st := memory.NewStore(memory.WithOrderSeq(100), memory.WithDeliverySeq(54))
	st.AddConsumer(7, "Meadow Farms")
	st.AddConsumer(8, "City Grill")
	st.AddProduct(3, "sirloin")
	st.AddProduct(4, "mince")
	st.AddProduct(6, "shank")
	st.AddBatch(5, 3)
	st.AddBatch(6, 4)
	st.AddWarehouse(2, "Cold Store 2", "Leeds")
	st.AddWarehouse(3, "Cold Store 3", "York")
	st.AddVendor(9, "Northern Haulage")
	return st
}

func newService(t *testing.T, opts ...svc.Option) (*svc.Service, *memory.Store) {
	t.Helper()
	st := newStore()
	return svc.NewService(st, opts...), st
}

func date(s string) *models.Date {
	d, err := models.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return &d
}

func orderCmd(items ...models.OrderLineItem) models.CreateOrder {
	return models.CreateOrder{
		OrderDate:  date("2024-01-01"),
		TotalPrice: decimal.RequireFromString("99.50"),
		Quantity:   2,
		ConsumerID: 7,
		Products:   items,
	}
}

func deliveryCmd(orderID *int64) models.CreateDelivery {
	return models.CreateDelivery{
		Type:        models.DeliveryStandard,
		Date:        date("2024-01-02"),
		Status:      models.StatusPending,
		BatchID:     5,
		WarehouseID: 2,
		OrderID:     orderID,
	}
}

func requireConsistent(t *testing.T, s *svc.Service) {
	t.Helper()
	broken, err := s.CheckLinks(context.Background())
	require.NoError(t, err)
	require.Empty(t, broken)
}

func TestService_CreateThenLink(t *testing.T) {
	ctx := context.Background()
	s, _ := newService(t)

	oid, err := s.CreateOrder(ctx, orderCmd(models.OrderLineItem{ProductID: 3, Quantity: 2}))
	require.NoError(t, err)
	require.Equal(t, int64(101), oid)

	did, err := s.CreateDelivery(ctx, deliveryCmd(models.IDPtr(101)))
	require.NoError(t, err)
	require.Equal(t, int64(55), did)

	o, err := s.GetOrder(ctx, 101)
	require.NoError(t, err)
	require.Equal(t, int64(55), *o.DeliveryID)
	require.Equal(t, models.DeliveryStandard, *o.DeliveryType)
	require.Equal(t, []models.OrderLineItem{{OrderID: 101, ProductID: 3, Quantity: 2}}, o.Products)

	d, err := s.GetDelivery(ctx, 55)
	require.NoError(t, err)
	require.Equal(t, int64(101), *d.OrderID)
	requireConsistent(t, s)
}

func TestService_RelinkOnDeliveryUpdate(t *testing.T) {
	ctx := context.Background()
	s, _ := newService(t)

	_, err := s.CreateOrder(ctx, orderCmd())
	require.NoError(t, err)
	_, err = s.CreateOrder(ctx, orderCmd())
	require.NoError(t, err)
	_, err = s.CreateDelivery(ctx, deliveryCmd(models.IDPtr(101)))
	require.NoError(t, err)

	require.NoError(t, s.UpdateDelivery(ctx, 55, models.UpdateDelivery{OrderID: models.SomeID(102)}))

	o101, err := s.GetOrder(ctx, 101)
	require.NoError(t, err)
	require.Nil(t, o101.DeliveryID)

	o102, err := s.GetOrder(ctx, 102)
	require.NoError(t, err)
	require.Equal(t, int64(55), *o102.DeliveryID)

	d, err := s.GetDelivery(ctx, 55)
	require.NoError(t, err)
	require.Equal(t, int64(102), *d.OrderID)
	requireConsistent(t, s)

	require.NoError(t, s.UpdateDelivery(ctx, 55, models.UpdateDelivery{OrderID: models.NullID()}))
	o102, err = s.GetOrder(ctx, 102)
	require.NoError(t, err)
	require.Nil(t, o102.DeliveryID)
	requireConsistent(t, s)
}

func TestService_UpdateDeliveryKeepsLinkWhenOrderAbsent(t *testing.T) {
	ctx := context.Background()
	s, _ := newService(t)

	_, err := s.CreateOrder(ctx, orderCmd())
	require.NoError(t, err)
	_, err = s.CreateDelivery(ctx, deliveryCmd(models.IDPtr(101)))
	require.NoError(t, err)

	transit := models.StatusTransit
	require.NoError(t, s.UpdateDelivery(ctx, 55, models.UpdateDelivery{Status: &transit, VendorID: models.SomeID(9)}))

	d, err := s.GetDelivery(ctx, 55)
	require.NoError(t, err)
	require.Equal(t, models.StatusTransit, d.Status)
	require.Equal(t, int64(101), *d.OrderID)
	require.Equal(t, "Northern Haulage", *d.VendorName)
	requireConsistent(t, s)
}

func TestService_DeleteOrderWithLineItems(t *testing.T) {
	ctx := context.Background()
	s, _ := newService(t)

	_, err := s.CreateOrder(ctx, orderCmd(
		models.OrderLineItem{ProductID: 3, Quantity: 2},
		models.OrderLineItem{ProductID: 4, Quantity: 1},
	))
	require.NoError(t, err)

	require.NoError(t, s.DeleteOrder(ctx, 101))

	_, err = s.GetOrder(ctx, 101)
	require.ErrorIs(t, err, svc.ErrNotFound)
	require.ErrorIs(t, s.DeleteOrder(ctx, 101), svc.ErrNotFound)
}

func TestService_DeleteOrderClearsDelivery(t *testing.T) {
	ctx := context.Background()
	s, _ := newService(t)

	_, err := s.CreateOrder(ctx, orderCmd())
	require.NoError(t, err)
	_, err = s.CreateDelivery(ctx, deliveryCmd(models.IDPtr(101)))
	require.NoError(t, err)

	require.NoError(t, s.DeleteOrder(ctx, 101))

	d, err := s.GetDelivery(ctx, 55)
	require.NoError(t, err)
	require.Nil(t, d.OrderID)
	requireConsistent(t, s)
}

func TestService_DeleteDeliveryUnlinksOrder(t *testing.T) {
	ctx := context.Background()
	s, _ := newService(t)

	_, err := s.CreateOrder(ctx, orderCmd())
	require.NoError(t, err)
	_, err = s.CreateDelivery(ctx, deliveryCmd(models.IDPtr(101)))
	require.NoError(t, err)

	prior, err := s.DeleteDelivery(ctx, 55)
	require.NoError(t, err)
	require.Equal(t, int64(101), *prior)

	o, err := s.GetOrder(ctx, 101)
	require.NoError(t, err)
	require.Nil(t, o.DeliveryID)
	require.Nil(t, o.DeliveryType)

	_, err = s.DeleteDelivery(ctx, 55)
	require.ErrorIs(t, err, svc.ErrNotFound)
	requireConsistent(t, s)
}

func TestService_ConflictLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	s, _ := newService(t)

	_, err := s.CreateOrder(ctx, orderCmd()) // A = 101
	require.NoError(t, err)
	_, err = s.CreateOrder(ctx, orderCmd()) // B = 102
	require.NoError(t, err)
	_, err = s.CreateDelivery(ctx, deliveryCmd(models.IDPtr(101))) // D1 = 55
	require.NoError(t, err)

	err = s.UpdateOrder(ctx, 102, models.UpdateOrder{DeliveryID: models.SomeID(55)})
	require.ErrorIs(t, err, svc.ErrConflict)

	_, err = s.CreateOrder(ctx, func() models.CreateOrder {
		c := orderCmd()
		c.DeliveryID = models.IDPtr(55)
		return c
	}())
	require.ErrorIs(t, err, svc.ErrConflict)

	_, err = s.CreateDelivery(ctx, deliveryCmd(models.IDPtr(101)))
	require.ErrorIs(t, err, svc.ErrConflict)

	a, err := s.GetOrder(ctx, 101)
	require.NoError(t, err)
	require.Equal(t, int64(55), *a.DeliveryID)
	b, err := s.GetOrder(ctx, 102)
	require.NoError(t, err)
	require.Nil(t, b.DeliveryID)
	d1, err := s.GetDelivery(ctx, 55)
	require.NoError(t, err)
	require.Equal(t, int64(101), *d1.OrderID)

	orders, err := s.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	deliveries, err := s.ListDeliveries(ctx)
	require.NoError(t, err)
	require.Len(t, deliveries, 1)
	requireConsistent(t, s)
}

func TestService_OrderSideRelink(t *testing.T) {
	ctx := context.Background()
	s, _ := newService(t)

	_, err := s.CreateOrder(ctx, orderCmd())
	require.NoError(t, err)
	_, err = s.CreateDelivery(ctx, deliveryCmd(models.IDPtr(101))) // 55
	require.NoError(t, err)
	_, err = s.CreateDelivery(ctx, deliveryCmd(nil)) // 56
	require.NoError(t, err)

	require.NoError(t, s.UpdateOrder(ctx, 101, models.UpdateOrder{DeliveryID: models.SomeID(56)}))

	d55, err := s.GetDelivery(ctx, 55)
	require.NoError(t, err)
	require.Nil(t, d55.OrderID)
	d56, err := s.GetDelivery(ctx, 56)
	require.NoError(t, err)
	require.Equal(t, int64(101), *d56.OrderID)
	requireConsistent(t, s)

	require.ErrorIs(t, s.UpdateOrder(ctx, 101, models.UpdateOrder{DeliveryID: models.SomeID(99)}), svc.ErrNotFound)
}

func TestService_AtomicityOnLineItemFault(t *testing.T) {
	ctx := context.Background()
	s, st := newService(t)
	st.InjectFault("order_products.insert", 2, errors.New("connection reset"))

	_, err := s.CreateOrder(ctx, orderCmd(
		models.OrderLineItem{ProductID: 3, Quantity: 1},
		models.OrderLineItem{ProductID: 4, Quantity: 1},
		models.OrderLineItem{ProductID: 6, Quantity: 1},
	))
	require.ErrorIs(t, err, svc.ErrStore)

	orders, err := s.ListOrders(ctx)
	require.NoError(t, err)
	require.Empty(t, orders)

	// the failed attempt did not consume an id
	oid, err := s.CreateOrder(ctx, orderCmd())
	require.NoError(t, err)
	require.Equal(t, int64(101), oid)
}

func TestService_ReplaceLineItems(t *testing.T) {
	ctx := context.Background()
	s, _ := newService(t)

	_, err := s.CreateOrder(ctx, orderCmd(models.OrderLineItem{ProductID: 3, Quantity: 2}))
	require.NoError(t, err)

	set := []models.OrderLineItem{{ProductID: 4, Quantity: 5}, {ProductID: 6, Quantity: 1}}
	want := []models.OrderLineItem{{OrderID: 101, ProductID: 4, Quantity: 5}, {OrderID: 101, ProductID: 6, Quantity: 1}}
	for range 2 {
		require.NoError(t, s.UpdateOrder(ctx, 101, models.UpdateOrder{Products: &set}))
		o, err := s.GetOrder(ctx, 101)
		require.NoError(t, err)
		require.Equal(t, want, o.Products)
	}

	qty := 9
	require.NoError(t, s.UpdateOrder(ctx, 101, models.UpdateOrder{Quantity: &qty}))
	o, err := s.GetOrder(ctx, 101)
	require.NoError(t, err)
	require.Equal(t, want, o.Products, "omitted products keep the current set")
	require.Equal(t, 9, o.Quantity)

	empty := []models.OrderLineItem{}
	require.NoError(t, s.UpdateOrder(ctx, 101, models.UpdateOrder{Products: &empty}))
	o, err = s.GetOrder(ctx, 101)
	require.NoError(t, err)
	require.Empty(t, o.Products)
}

func TestService_Validation(t *testing.T) {
	ctx := context.Background()
	s, _ := newService(t)

	cases := []struct {
		name string
		cmd  models.CreateOrder
	}{
		{"missing date", func() models.CreateOrder { c := orderCmd(); c.OrderDate = nil; return c }()},
		{"missing consumer", func() models.CreateOrder { c := orderCmd(); c.ConsumerID = 0; return c }()},
		{"negative price", func() models.CreateOrder { c := orderCmd(); c.TotalPrice = decimal.NewFromInt(-1); return c }()},
		{"zero quantity line", orderCmd(models.OrderLineItem{ProductID: 3, Quantity: 0})},
		{"duplicate product", orderCmd(
			models.OrderLineItem{ProductID: 3, Quantity: 1},
			models.OrderLineItem{ProductID: 3, Quantity: 2},
		)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.CreateOrder(ctx, tc.cmd)
			require.ErrorIs(t, err, svc.ErrValidation)
		})
	}

	bad := models.DeliveryType("Teleport")
	require.ErrorIs(t, s.UpdateDelivery(ctx, 55, models.UpdateDelivery{Type: &bad}), svc.ErrValidation)

	orders, err := s.ListOrders(ctx)
	require.NoError(t, err)
	require.Empty(t, orders)
}

func TestService_MissingReferences(t *testing.T) {
	ctx := context.Background()
	s, _ := newService(t)

	c := orderCmd()
	c.ConsumerID = 70
	_, err := s.CreateOrder(ctx, c)
	require.ErrorIs(t, err, svc.ErrNotFound)

	_, err = s.CreateOrder(ctx, orderCmd(models.OrderLineItem{ProductID: 404, Quantity: 1}))
	require.ErrorIs(t, err, svc.ErrNotFound)
	require.Contains(t, err.Error(), "404")

	d := deliveryCmd(nil)
	d.BatchID = 77
	_, err = s.CreateDelivery(ctx, d)
	require.ErrorIs(t, err, svc.ErrNotFound)

	d = deliveryCmd(nil)
	d.WarehouseID = 77
	_, err = s.CreateDelivery(ctx, d)
	require.ErrorIs(t, err, svc.ErrNotFound)

	_, err = s.CreateDelivery(ctx, deliveryCmd(models.IDPtr(300)))
	require.ErrorIs(t, err, svc.ErrNotFound)

	_, err = s.CreateDelivery(ctx, deliveryCmd(nil))
	require.NoError(t, err)
	wh := int64(99)
	require.ErrorIs(t, s.UpdateDelivery(ctx, 55, models.UpdateDelivery{WarehouseID: &wh}), svc.ErrNotFound)
	require.ErrorIs(t, s.UpdateDelivery(ctx, 55, models.UpdateDelivery{OrderID: models.SomeID(300)}), svc.ErrNotFound)
	require.ErrorIs(t, s.UpdateDelivery(ctx, 56, models.UpdateDelivery{}), svc.ErrNotFound)
	require.ErrorIs(t, s.UpdateOrder(ctx, 500, models.UpdateOrder{}), svc.ErrNotFound)
}

func TestService_CanceledContextIsTimeout(t *testing.T) {
	s, _ := newService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.CreateOrder(ctx, orderCmd())
	require.ErrorIs(t, err, svc.ErrTimeout)

	orders, err := s.ListOrders(context.Background())
	require.NoError(t, err)
	require.Empty(t, orders)
}

func TestService_EventsOnlyAfterCommit(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{}
	s, _ := newService(t, svc.WithPublisher(pub))

	_, err := s.CreateOrder(ctx, orderCmd())
	require.NoError(t, err)
	_, err = s.CreateDelivery(ctx, deliveryCmd(models.IDPtr(101)))
	require.NoError(t, err)
	_, err = s.CreateDelivery(ctx, deliveryCmd(models.IDPtr(101)))
	require.ErrorIs(t, err, svc.ErrConflict)
	_, err = s.DeleteDelivery(ctx, 55)
	require.NoError(t, err)

	require.Equal(t, []string{svc.EventOrderCreated, svc.EventDeliveryCreated, svc.EventDeliveryDeleted}, pub.types())
	require.Equal(t, int64(101), *pub.events[2].OrderID)
}

func TestService_PublishFailureIsLogged(t *testing.T) {
	hook := logtest.NewGlobal()
	defer hook.Reset()

	pub := &recordingPublisher{err: errors.New("broker down")}
	s, _ := newService(t, svc.WithPublisher(pub))

	_, err := s.CreateOrder(context.Background(), orderCmd())
	require.NoError(t, err, "a lost event must not fail the committed write")

	found := false
	for _, e := range hook.AllEntries() {
		if e.Level == log.WarnLevel && e.Message == "publish event failed" && e.Data["event"] == svc.EventOrderCreated {
			found = true
			break
		}
	}
	require.True(t, found, "expected warn log for failed publish")
}

func TestService_HandleStatusMessage(t *testing.T) {
	ctx := context.Background()
	s, _ := newService(t)

	require.ErrorIs(t, s.HandleStatusMessage(ctx, []byte("not json")), svc.ErrDecode)
	require.ErrorIs(t, s.HandleStatusMessage(ctx, []byte(`{"delivery_ID":55,"delivery_Status":"lost"}`)), svc.ErrValidation)
	require.ErrorIs(t, s.HandleStatusMessage(ctx, []byte(`{"delivery_ID":55,"delivery_Status":"transit"}`)), svc.ErrNotFound)

	_, err := s.CreateDelivery(ctx, deliveryCmd(nil))
	require.NoError(t, err)
	require.NoError(t, s.HandleStatusMessage(ctx, []byte(`{"delivery_ID":55,"delivery_Status":"delivered"}`)))

	d, err := s.GetDelivery(ctx, 55)
	require.NoError(t, err)
	require.Equal(t, models.StatusDelivered, d.Status)
}

func TestService_CheckLinksReportsStagedBreakage(t *testing.T) {
	ctx := context.Background()
	s, st := newService(t)

	_, err := s.CreateOrder(ctx, orderCmd())
	require.NoError(t, err)
	_, err = s.CreateDelivery(ctx, deliveryCmd(nil))
	require.NoError(t, err)
	st.ForceDeliveryLink(55, models.IDPtr(101))

	broken, err := s.CheckLinks(ctx)
	require.NoError(t, err)
	require.Equal(t, []models.LinkViolation{{OrderID: 101, DeliveryID: 55, Side: models.SideDelivery}}, broken)

	// linking through the order repairs both sides
	require.NoError(t, s.UpdateOrder(ctx, 101, models.UpdateOrder{DeliveryID: models.SomeID(55)}))
	requireConsistent(t, s)
}

// Random sequences of link-touching operations never commit a broken pair.
func TestService_LinkInvariantHoldsUnderRandomOperations(t *testing.T) {
	ctx := context.Background()
	s, _ := newService(t)
	f := gofakeit.New(20240101)

	var orders, deliveries []int64
	for i := 0; i < 400; i++ {
		pickOrder := func() *int64 {
			if len(orders) == 0 || f.Bool() {
				return nil
			}
			return models.IDPtr(orders[f.IntRange(0, len(orders)-1)])
		}
		pickDelivery := func() *int64 {
			if len(deliveries) == 0 || f.Bool() {
				return nil
			}
			return models.IDPtr(deliveries[f.IntRange(0, len(deliveries)-1)])
		}
		optional := func(id *int64) models.OptionalID {
			if id == nil {
				return models.NullID()
			}
			return models.SomeID(*id)
		}

		var err error
		switch f.IntRange(0, 6) {
		case 0:
			c := orderCmd()
			c.DeliveryID = pickDelivery()
			var id int64
			if id, err = s.CreateOrder(ctx, c); err == nil {
				orders = append(orders, id)
			}
		case 1:
			var id int64
			if id, err = s.CreateDelivery(ctx, deliveryCmd(pickOrder())); err == nil {
				deliveries = append(deliveries, id)
			}
		case 2:
			if o := pickOrder(); o != nil {
				err = s.UpdateOrder(ctx, *o, models.UpdateOrder{DeliveryID: optional(pickDelivery())})
			}
		case 3, 4:
			if d := pickDelivery(); d != nil {
				err = s.UpdateDelivery(ctx, *d, models.UpdateDelivery{OrderID: optional(pickOrder())})
			}
		case 5:
			if o := pickOrder(); o != nil {
				if err = s.DeleteOrder(ctx, *o); err == nil {
					orders = without(orders, *o)
				}
			}
		case 6:
			if d := pickDelivery(); d != nil {
				if _, err = s.DeleteDelivery(ctx, *d); err == nil {
					deliveries = without(deliveries, *d)
				}
			}
		}
		if err != nil {
			require.ErrorIs(t, err, svc.ErrConflict, "step %d", i)
		}
		requireConsistent(t, s)
	}
}

func without(ids []int64, id int64) []int64 {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func TestService_ConcurrentLinkersOneWins(t *testing.T) {
	ctx := context.Background()
	s, _ := newService(t)

	_, err := s.CreateDelivery(ctx, deliveryCmd(nil))
	require.NoError(t, err)

	const n = 8
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c := orderCmd()
			c.DeliveryID = models.IDPtr(55)
			_, errs[i] = s.CreateOrder(ctx, c)
		}(i)
	}
	wg.Wait()

	won := 0
	for _, err := range errs {
		if err == nil {
			won++
			continue
		}
		require.ErrorIs(t, err, svc.ErrConflict)
	}
	require.Equal(t, 1, won)
	requireConsistent(t, s)
}

func TestService_TimeoutOption(t *testing.T) {
	s, _ := newService(t, svc.WithTxTimeout(time.Nanosecond))
	_, err := s.CreateOrder(context.Background(), orderCmd())
	require.ErrorIs(t, err, svc.ErrTimeout)
}

func TestService_QueuedUnitOfWorkTimesOut(t *testing.T) {
	s, st := newService(t, svc.WithTxTimeout(50*time.Millisecond))
	held, err := st.Begin(context.Background())
	require.NoError(t, err)
	defer func() { require.NoError(t, held.Rollback()) }()

	start := time.Now()
	_, err = s.CreateOrder(context.Background(), orderCmd())
	require.ErrorIs(t, err, svc.ErrTimeout)
	require.Less(t, time.Since(start), time.Second)
}

func TestService_DuplicateProductsRejectedBeforeStore(t *testing.T) {
	ctx := context.Background()
	s, st := newService(t, svc.WithTxTimeout(50*time.Millisecond))
	dup := []models.OrderLineItem{{ProductID: 4, Quantity: 1}, {ProductID: 4, Quantity: 3}}

	// with the store busy, anything that reaches it would time out
	held, err := st.Begin(ctx)
	require.NoError(t, err)
	defer func() { require.NoError(t, held.Rollback()) }()

	_, err = s.CreateOrder(ctx, orderCmd(dup...))
	require.ErrorIs(t, err, svc.ErrValidation)
	require.Contains(t, err.Error(), "duplicate product_ID 4")

	// validation wins over the missing order
	err = s.UpdateOrder(ctx, 500, models.UpdateOrder{Products: &dup})
	require.ErrorIs(t, err, svc.ErrValidation)
}
