package repository

import (
	"context"

	"supplychain-admin/internal/models"
)

// Every method returns dberr kinds for missing rows and violated constraints.

type Orders interface {
	Create(ctx context.Context, o *models.Order) error
	Get(ctx context.Context, id int64) (models.Order, error)
	// Lock reads the row with a row-level write lock held until the transaction ends.
	Lock(ctx context.Context, id int64) (models.Order, error)
	Update(ctx context.Context, id int64, f models.OrderFields) error
	SetDelivery(ctx context.Context, id int64, deliveryID *int64) error
	// ClearDelivery nulls delivery_id on every order pointing at deliveryID.
	ClearDelivery(ctx context.Context, deliveryID int64) (int64, error)
	Delete(ctx context.Context, id int64) error
	View(ctx context.Context, id int64) (models.OrderView, error)
	ListViews(ctx context.Context) ([]models.OrderView, error)
}

type LineItems interface {
	InsertBatch(ctx context.Context, orderID int64, items []models.OrderLineItem) error
	DeleteByOrder(ctx context.Context, orderID int64) (int64, error)
	ListByOrder(ctx context.Context, orderID int64) ([]models.OrderLineItem, error)
}

type Deliveries interface {
	Create(ctx context.Context, d *models.Delivery) error
	Get(ctx context.Context, id int64) (models.Delivery, error)
	Lock(ctx context.Context, id int64) (models.Delivery, error)
	// Update writes every scalar column except order_id.
	Update(ctx context.Context, d models.Delivery) error
	SetOrder(ctx context.Context, id int64, orderID *int64) error
	// ClearOrder nulls order_id on every delivery pointing at orderID.
	ClearOrder(ctx context.Context, orderID int64) (int64, error)
	Delete(ctx context.Context, id int64) error
	View(ctx context.Context, id int64) (models.DeliveryView, error)
	ListViews(ctx context.Context) ([]models.DeliveryView, error)
}

type References interface {
	ConsumerExists(ctx context.Context, id int64) (bool, error)
	// MissingProducts returns the ids in ids that have no products row.
	MissingProducts(ctx context.Context, ids []int64) ([]int64, error)
	BatchExists(ctx context.Context, id int64) (bool, error)
	WarehouseExists(ctx context.Context, id int64) (bool, error)
	VendorExists(ctx context.Context, id int64) (bool, error)
}

type Integrity interface {
	BrokenLinks(ctx context.Context) ([]models.LinkViolation, error)
}

type Repository struct {
	Orders     Orders
	LineItems  LineItems
	Deliveries Deliveries
	References References
	Integrity  Integrity
}

// Store is the relational store adapter: repositories over the shared pool, and
// transactions whose repositories run on a single connection.
type Store interface {
	Repository() *Repository
	Begin(ctx context.Context) (Tx, error)
}

type Tx interface {
	Repository() *Repository
	Commit() error
	Rollback() error
}
