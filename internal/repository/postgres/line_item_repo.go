package postgres

import (
	"context"
	"strings"

	"github.com/jinzhu/gorm"

	"supplychain-admin/internal/models"
)

type LineItemPostgresRepo struct {
	db *gorm.DB
}

func NewLineItemPostgres(db *gorm.DB) *LineItemPostgresRepo {
	return &LineItemPostgresRepo{db: db}
}

// InsertBatch writes all items in one multi-row INSERT.
func (r *LineItemPostgresRepo) InsertBatch(ctx context.Context, orderID int64, items []models.OrderLineItem) error {
	if len(items) == 0 {
		return nil
	}
	values := make([]string, 0, len(items))
	args := make([]interface{}, 0, len(items)*3)
	for _, it := range items {
		values = append(values, "(?, ?, ?)")
		args = append(args, orderID, it.ProductID, it.Quantity)
	}
	sql := `INSERT INTO order_products (order_id, product_id, quantity) VALUES ` + strings.Join(values, ", ")
	if err := r.db.Exec(sql, args...).Error; err != nil {
		return wrapf(err, "order_products: insert %d rows for order %d", len(items), orderID)
	}
	return nil
}

func (r *LineItemPostgresRepo) DeleteByOrder(ctx context.Context, orderID int64) (int64, error) {
	q := r.db.Exec(`DELETE FROM order_products WHERE order_id = ?`, orderID)
	if q.Error != nil {
		return 0, wrapf(q.Error, "order_products: delete for order %d", orderID)
	}
	return q.RowsAffected, nil
}

func (r *LineItemPostgresRepo) ListByOrder(ctx context.Context, orderID int64) ([]models.OrderLineItem, error) {
	items := []models.OrderLineItem{}
	err := r.db.Where("order_id = ?", orderID).Order("product_id").Find(&items).Error
	if err != nil {
		return nil, wrapf(err, "order_products: list for order %d", orderID)
	}
	return items, nil
}
