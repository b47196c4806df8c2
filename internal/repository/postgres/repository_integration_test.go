package postgres_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jinzhu/gorm"
	"github.com/ory/dockertest/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"supplychain-admin/internal/models"
	repo "supplychain-admin/internal/repository"
	"supplychain-admin/internal/repository/dberr"
	pg "supplychain-admin/internal/repository/postgres"
	"supplychain-admin/internal/service"
)

type pgEnv struct {
	pool     *dockertest.Pool
	resource *dockertest.Resource
	DB       *gorm.DB
	Store    repo.Store
	R        *repo.Repository
}

func upPostgres(t *testing.T) *pgEnv {
	t.Helper()
	if testing.Short() {
		t.Skip("postgres integration test")
	}

	pool, err := dockertest.NewPool("")
	require.NoError(t, err)
	pool.MaxWait = 90 * time.Second

	resource, err := pool.Run("postgres", "16-alpine", []string{
		"POSTGRES_DB=supplychain",
		"POSTGRES_USER=app",
		"POSTGRES_PASSWORD=app",
	})
	require.NoError(t, err)

	env := &pgEnv{pool: pool, resource: resource}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	require.NoError(t, pool.Retry(func() error {
		db, err := pg.ConnectDB(pg.Config{
			Host:     "localhost",
			Port:     resource.GetPort("5432/tcp"),
			Username: "app",
			Password: "app",
			DbName:   "supplychain",
			SslMode:  "disable",
			MaxConns: 10,
		})
		if err != nil {
			return err
		}
		if err := db.DB().Ping(); err != nil {
			_ = db.Close()
			return err
		}
		env.DB = db
		return nil
	}))
	t.Cleanup(func() { _ = env.DB.Close() })

	require.NoError(t, pg.Migrate(env.DB))
	seed(t, env.DB)

	env.Store = repo.NewStore(env.DB)
	env.R = env.Store.Repository()
	return env
}

func seed(t *testing.T, db *gorm.DB) {
	t.Helper()
	rows := []any{
		&models.Consumer{ID: 7, Name: "Meadow Farms"},
		&models.Product{ID: 3, Name: "sirloin"},
		&models.Product{ID: 4, Name: "mince"},
		&models.Batch{ID: 5, ProductID: 3},
		&models.Warehouse{ID: 2, Name: "Cold Store 2", Location: "Leeds"},
		&models.Vendor{ID: 9, Name: "Northern Haulage"},
	}
	for _, r := range rows {
		require.NoError(t, db.Create(r).Error)
	}
	require.NoError(t, db.Exec(`ALTER SEQUENCE orders_order_id_seq RESTART WITH 101`).Error)
	require.NoError(t, db.Exec(`ALTER SEQUENCE deliveries_delivery_id_seq RESTART WITH 55`).Error)
}

func day(s string) models.Date {
	d, err := models.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func Test_Postgres_Repositories(t *testing.T) {
	env := upPostgres(t)
	ctx := context.Background()

	o := &models.Order{OrderDate: day("2024-01-01"), TotalPrice: decimal.RequireFromString("99.50"), Quantity: 2, ConsumerID: 7}
	require.NoError(t, env.R.Orders.Create(ctx, o))
	require.Equal(t, int64(101), o.ID)

	require.NoError(t, env.R.LineItems.InsertBatch(ctx, o.ID, []models.OrderLineItem{
		{OrderID: o.ID, ProductID: 4, Quantity: 1},
		{OrderID: o.ID, ProductID: 3, Quantity: 2},
	}))
	err := env.R.LineItems.InsertBatch(ctx, o.ID, []models.OrderLineItem{{OrderID: o.ID, ProductID: 3, Quantity: 9}})
	require.ErrorIs(t, err, dberr.ErrUnique)

	d := &models.Delivery{Type: models.DeliveryStandard, Date: day("2024-01-02"), Status: models.StatusPending,
		BatchID: 5, WarehouseID: 2, VendorID: models.IDPtr(9)}
	require.NoError(t, env.R.Deliveries.Create(ctx, d))
	require.Equal(t, int64(55), d.ID)
	require.NoError(t, env.R.Orders.SetDelivery(ctx, o.ID, &d.ID))
	require.NoError(t, env.R.Deliveries.SetOrder(ctx, d.ID, &o.ID))

	view, err := env.R.Orders.View(ctx, o.ID)
	require.NoError(t, err)
	require.Equal(t, "Meadow Farms", view.ConsumerName)
	require.Equal(t, "2024-01-01", view.OrderDate.String())
	require.True(t, view.TotalPrice.Equal(decimal.RequireFromString("99.5")))
	require.Equal(t, models.DeliveryStandard, *view.DeliveryType)
	require.Equal(t, []models.OrderLineItem{
		{OrderID: 101, ProductID: 3, Quantity: 2},
		{OrderID: 101, ProductID: 4, Quantity: 1},
	}, view.Products)

	dv, err := env.R.Deliveries.View(ctx, d.ID)
	require.NoError(t, err)
	require.Equal(t, "Northern Haulage", *dv.VendorName)
	require.Equal(t, int64(3), dv.BatchProductID)
	require.Equal(t, "Leeds", dv.WarehouseLocate)
	require.Equal(t, "2024-01-01", dv.OrderDate.String())

	got, err := env.R.Deliveries.Get(ctx, d.ID)
	require.NoError(t, err)
	require.Equal(t, o.ID, *got.OrderID)

	missing, err := env.R.References.MissingProducts(ctx, []int64{3, 4, 40})
	require.NoError(t, err)
	require.Equal(t, []int64{40}, missing)

	broken, err := env.R.Integrity.BrokenLinks(ctx)
	require.NoError(t, err)
	require.Empty(t, broken)

	require.ErrorIs(t, env.R.Orders.Delete(ctx, o.ID), dberr.ErrForeignKey)
	require.ErrorIs(t, env.R.Orders.Delete(ctx, 999), dberr.ErrNoRows)
	_, err = env.R.Orders.Get(ctx, 999)
	require.ErrorIs(t, err, dberr.ErrNoRows)

	bad := &models.Order{OrderDate: day("2024-01-01"), ConsumerID: 70}
	require.ErrorIs(t, env.R.Orders.Create(ctx, bad), dberr.ErrForeignKey)
}

func Test_Postgres_ServiceScenarios(t *testing.T) {
	env := upPostgres(t)
	ctx := context.Background()
	s := service.NewService(env.Store)

	oid, err := s.CreateOrder(ctx, models.CreateOrder{
		OrderDate:  datePtr("2024-01-01"),
		TotalPrice: decimal.RequireFromString("99.50"),
		Quantity:   2,
		ConsumerID: 7,
		Products:   []models.OrderLineItem{{ProductID: 3, Quantity: 2}},
	})
	require.NoError(t, err)
	require.Equal(t, int64(101), oid)

	did, err := s.CreateDelivery(ctx, models.CreateDelivery{
		Type: models.DeliveryStandard, Date: datePtr("2024-01-02"), Status: models.StatusPending,
		BatchID: 5, WarehouseID: 2, OrderID: models.IDPtr(101),
	})
	require.NoError(t, err)
	require.Equal(t, int64(55), did)

	o, err := s.GetOrder(ctx, 101)
	require.NoError(t, err)
	require.Equal(t, int64(55), *o.DeliveryID)

	other, err := s.CreateOrder(ctx, models.CreateOrder{OrderDate: datePtr("2024-02-01"), ConsumerID: 7})
	require.NoError(t, err)

	require.ErrorIs(t, s.UpdateOrder(ctx, other, models.UpdateOrder{DeliveryID: models.SomeID(55)}), service.ErrConflict)

	require.NoError(t, s.UpdateDelivery(ctx, 55, models.UpdateDelivery{OrderID: models.SomeID(other)}))
	o, err = s.GetOrder(ctx, 101)
	require.NoError(t, err)
	require.Nil(t, o.DeliveryID)

	require.NoError(t, s.DeleteOrder(ctx, other))
	d, err := s.GetDelivery(ctx, 55)
	require.NoError(t, err)
	require.Nil(t, d.OrderID)

	require.NoError(t, s.DeleteOrder(ctx, 101))
	_, err = s.GetOrder(ctx, 101)
	require.ErrorIs(t, err, service.ErrNotFound)

	broken, err := s.CheckLinks(ctx)
	require.NoError(t, err)
	require.Empty(t, broken)
}

func Test_Postgres_RollbackAndTimeout(t *testing.T) {
	env := upPostgres(t)
	ctx := context.Background()
	c := service.NewCoordinator(env.Store, time.Second)

	boom := errors.New("boom")
	err := c.Run(ctx, "rollback", func(ctx context.Context, r *repo.Repository) error {
		o := &models.Order{OrderDate: day("2024-01-01"), ConsumerID: 7}
		if err := r.Orders.Create(ctx, o); err != nil {
			return err
		}
		if err := r.LineItems.InsertBatch(ctx, o.ID, []models.OrderLineItem{{OrderID: o.ID, ProductID: 3, Quantity: 1}}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, service.ErrStore)
	require.ErrorIs(t, err, boom)

	views, err := env.R.Orders.ListViews(ctx)
	require.NoError(t, err)
	require.Empty(t, views)

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	err = c.Run(canceled, "canceled", func(ctx context.Context, r *repo.Repository) error { return nil })
	require.ErrorIs(t, err, service.ErrTimeout)
}

// Concurrent transactions linking the same delivery serialize on its row lock and
// exactly one of them commits.
func Test_Postgres_ConcurrentLinkRace(t *testing.T) {
	env := upPostgres(t)
	ctx := context.Background()
	s := service.NewService(env.Store)

	did, err := s.CreateDelivery(ctx, models.CreateDelivery{
		Type: models.DeliveryBulk, Date: datePtr("2024-03-01"), Status: models.StatusPending,
		BatchID: 5, WarehouseID: 2,
	})
	require.NoError(t, err)

	const n = 8
	ids := make([]int64, n)
	for i := range ids {
		ids[i], err = s.CreateOrder(ctx, models.CreateOrder{OrderDate: datePtr("2024-03-01"), ConsumerID: 7})
		require.NoError(t, err)
	}

	errs := make([]error, n)
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			errs[i] = s.UpdateOrder(ctx, ids[i], models.UpdateOrder{DeliveryID: models.SomeID(did)})
		}(i)
	}
	close(start)
	wg.Wait()

	won := 0
	for _, err := range errs {
		if err == nil {
			won++
			continue
		}
		require.ErrorIs(t, err, service.ErrConflict)
	}
	require.Equal(t, 1, won)

	broken, err := s.CheckLinks(ctx)
	require.NoError(t, err)
	require.Empty(t, broken)
}

func datePtr(s string) *models.Date {
	d := day(s)
	return &d
}
