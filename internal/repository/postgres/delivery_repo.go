package postgres

import (
	"context"

	"github.com/jinzhu/gorm"

	"supplychain-admin/internal/models"
	"supplychain-admin/internal/repository/dberr"
)

type DeliveryPostgresRepo struct {
	db *gorm.DB
}

func NewDeliveryPostgres(db *gorm.DB) *DeliveryPostgresRepo {
	return &DeliveryPostgresRepo{db: db}
}

func (r *DeliveryPostgresRepo) Create(ctx context.Context, d *models.Delivery) error {
	row := *d
	row.ID = 0
	if err := r.db.Create(&row).Error; err != nil {
		return wrap(err, "deliveries: create")
	}
	d.ID = row.ID
	return nil
}

func (r *DeliveryPostgresRepo) Get(ctx context.Context, id int64) (models.Delivery, error) {
	var d models.Delivery
	err := r.db.Where("delivery_id = ?", id).First(&d).Error
	return d, wrapf(err, "deliveries: get %d", id)
}

func (r *DeliveryPostgresRepo) Lock(ctx context.Context, id int64) (models.Delivery, error) {
	var d models.Delivery
	err := r.db.Set("gorm:query_option", "FOR UPDATE").
		Where("delivery_id = ?", id).
		First(&d).Error
	return d, wrapf(err, "deliveries: lock %d", id)
}

func (r *DeliveryPostgresRepo) Update(ctx context.Context, d models.Delivery) error {
	q := r.db.Model(&models.Delivery{}).
		Where("delivery_id = ?", d.ID).
		Updates(map[string]interface{}{
			"delivery_type":   d.Type,
			"date":            d.Date,
			"delivery_status": d.Status,
			"vendor_id":       d.VendorID,
			"batch_id":        d.BatchID,
			"warehouse_id":    d.WarehouseID,
		})
	return affectedOne(q, "deliveries: update %d", d.ID)
}

func (r *DeliveryPostgresRepo) SetOrder(ctx context.Context, id int64, orderID *int64) error {
	q := r.db.Exec(`UPDATE deliveries SET order_id = ? WHERE delivery_id = ?`, orderID, id)
	return affectedOne(q, "deliveries: set order of %d", id)
}

func (r *DeliveryPostgresRepo) ClearOrder(ctx context.Context, orderID int64) (int64, error) {
	q := r.db.Exec(`UPDATE deliveries SET order_id = NULL WHERE order_id = ?`, orderID)
	if q.Error != nil {
		return 0, wrapf(q.Error, "deliveries: clear order %d", orderID)
	}
	return q.RowsAffected, nil
}

func (r *DeliveryPostgresRepo) Delete(ctx context.Context, id int64) error {
	q := r.db.Exec(`DELETE FROM deliveries WHERE delivery_id = ?`, id)
	return affectedOne(q, "deliveries: delete %d", id)
}

const deliveryViewQuery = `
SELECT d.delivery_id, d.delivery_type, d.date, d.delivery_status, d.vendor_id,
       d.batch_id, d.warehouse_id, d.order_id,
       o.order_date, o.total_price,
       v.name AS vendor_name,
       b.product_id AS batch_product_id,
       w.name AS warehouse_name, w.location AS warehouse_location
FROM deliveries d
LEFT JOIN orders o ON o.order_id = d.order_id
LEFT JOIN vendors v ON v.vendor_id = d.vendor_id
LEFT JOIN product_batches b ON b.batch_id = d.batch_id
LEFT JOIN warehouses w ON w.warehouse_id = d.warehouse_id`

func (r *DeliveryPostgresRepo) View(ctx context.Context, id int64) (models.DeliveryView, error) {
	var rows []models.DeliveryView
	if err := r.db.Raw(deliveryViewQuery+` WHERE d.delivery_id = ?`, id).Scan(&rows).Error; err != nil {
		return models.DeliveryView{}, wrapf(err, "deliveries: view %d", id)
	}
	if len(rows) == 0 {
		return models.DeliveryView{}, wrapf(dberr.ErrNoRows, "deliveries: view %d", id)
	}
	return rows[0], nil
}

func (r *DeliveryPostgresRepo) ListViews(ctx context.Context) ([]models.DeliveryView, error) {
	out := []models.DeliveryView{}
	if err := r.db.Raw(deliveryViewQuery + ` ORDER BY d.delivery_id`).Scan(&out).Error; err != nil {
		return nil, wrap(err, "deliveries: list")
	}
	return out, nil
}
