package postgres

import (
	"context"

	"github.com/jinzhu/gorm"

	"supplychain-admin/internal/models"
	"supplychain-admin/internal/repository/dberr"
)

type OrderPostgresRepo struct {
	db *gorm.DB
}

func NewOrderPostgres(db *gorm.DB) *OrderPostgresRepo {
	return &OrderPostgresRepo{db: db}
}

func (r *OrderPostgresRepo) Create(ctx context.Context, o *models.Order) error {
	hdr := models.Order{
		OrderDate:  o.OrderDate,
		TotalPrice: o.TotalPrice,
		Quantity:   o.Quantity,
		ConsumerID: o.ConsumerID,
		DeliveryID: o.DeliveryID,
	}
	if err := r.db.Create(&hdr).Error; err != nil {
		return wrap(err, "orders: create")
	}
	o.ID = hdr.ID
	return nil
}

func (r *OrderPostgresRepo) Get(ctx context.Context, id int64) (models.Order, error) {
	var o models.Order
	err := r.db.Where("order_id = ?", id).First(&o).Error
	return o, wrapf(err, "orders: get %d", id)
}

func (r *OrderPostgresRepo) Lock(ctx context.Context, id int64) (models.Order, error) {
	var o models.Order
	err := r.db.Set("gorm:query_option", "FOR UPDATE").
		Where("order_id = ?", id).
		First(&o).Error
	return o, wrapf(err, "orders: lock %d", id)
}

func (r *OrderPostgresRepo) Update(ctx context.Context, id int64, f models.OrderFields) error {
	q := r.db.Model(&models.Order{}).
		Where("order_id = ?", id).
		Updates(map[string]interface{}{
			"order_date":  f.OrderDate,
			"total_price": f.TotalPrice,
			"quantity":    f.Quantity,
			"consumer_id": f.ConsumerID,
		})
	return affectedOne(q, "orders: update %d", id)
}

func (r *OrderPostgresRepo) SetDelivery(ctx context.Context, id int64, deliveryID *int64) error {
	q := r.db.Exec(`UPDATE orders SET delivery_id = ? WHERE order_id = ?`, deliveryID, id)
	return affectedOne(q, "orders: set delivery of %d", id)
}

func (r *OrderPostgresRepo) ClearDelivery(ctx context.Context, deliveryID int64) (int64, error) {
	q := r.db.Exec(`UPDATE orders SET delivery_id = NULL WHERE delivery_id = ?`, deliveryID)
	if q.Error != nil {
		return 0, wrapf(q.Error, "orders: clear delivery %d", deliveryID)
	}
	return q.RowsAffected, nil
}

func (r *OrderPostgresRepo) Delete(ctx context.Context, id int64) error {
	q := r.db.Exec(`DELETE FROM orders WHERE order_id = ?`, id)
	return affectedOne(q, "orders: delete %d", id)
}

const orderViewQuery = `
SELECT o.order_id, o.order_date, o.total_price, o.quantity, o.consumer_id, o.delivery_id,
       c.name AS consumer_name,
       d.delivery_type, d.delivery_status
FROM orders o
LEFT JOIN consumers c ON c.consumer_id = o.consumer_id
LEFT JOIN deliveries d ON d.delivery_id = o.delivery_id`

func (r *OrderPostgresRepo) View(ctx context.Context, id int64) (models.OrderView, error) {
	var rows []models.OrderView
	if err := r.db.Raw(orderViewQuery+` WHERE o.order_id = ?`, id).Scan(&rows).Error; err != nil {
		return models.OrderView{}, wrapf(err, "orders: view %d", id)
	}
	if len(rows) == 0 {
		return models.OrderView{}, wrapf(dberr.ErrNoRows, "orders: view %d", id)
	}
	v := rows[0]
	items, err := NewLineItemPostgres(r.db).ListByOrder(ctx, id)
	if err != nil {
		return models.OrderView{}, err
	}
	v.Products = items
	return v, nil
}

func (r *OrderPostgresRepo) ListViews(ctx context.Context) ([]models.OrderView, error) {
	var out []models.OrderView
	if err := r.db.Raw(orderViewQuery + ` ORDER BY o.order_id`).Scan(&out).Error; err != nil {
		return nil, wrap(err, "orders: list")
	}
	if len(out) == 0 {
		return []models.OrderView{}, nil
	}

	var items []models.OrderLineItem
	if err := r.db.Order("order_id, product_id").Find(&items).Error; err != nil {
		return nil, wrap(err, "order_products: list")
	}
	byOrder := make(map[int64][]models.OrderLineItem, len(out))
	for _, it := range items {
		byOrder[it.OrderID] = append(byOrder[it.OrderID], it)
	}
	for i := range out {
		out[i].Products = byOrder[out[i].ID]
		if out[i].Products == nil {
			out[i].Products = []models.OrderLineItem{}
		}
	}
	return out, nil
}

// affectedOne turns "no row matched" into dberr.ErrNoRows.
func affectedOne(q *gorm.DB, format string, args ...any) error {
	if q.Error != nil {
		return wrapf(q.Error, format, args...)
	}
	if q.RowsAffected == 0 {
		return wrapf(dberr.ErrNoRows, format, args...)
	}
	return nil
}
