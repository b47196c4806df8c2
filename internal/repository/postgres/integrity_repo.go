package postgres

import (
	"context"

	"github.com/jinzhu/gorm"

	"supplychain-admin/internal/models"
)

type IntegrityPostgresRepo struct {
	db *gorm.DB
}

func NewIntegrityPostgres(db *gorm.DB) *IntegrityPostgresRepo {
	return &IntegrityPostgresRepo{db: db}
}

type linkRow struct {
	OrderID         int64  `gorm:"column:order_id"`
	DeliveryID      int64  `gorm:"column:delivery_id"`
	CounterpartLink *int64 `gorm:"column:counterpart_link"`
}

// Orders whose delivery does not point back, then deliveries whose order does not.
const (
	brokenFromOrders = `
SELECT o.order_id, o.delivery_id, d.order_id AS counterpart_link
FROM orders o
LEFT JOIN deliveries d ON d.delivery_id = o.delivery_id
WHERE o.delivery_id IS NOT NULL
  AND (d.order_id IS NULL OR d.order_id <> o.order_id)
ORDER BY o.order_id`

	brokenFromDeliveries = `
SELECT d.order_id, d.delivery_id, o.delivery_id AS counterpart_link
FROM deliveries d
LEFT JOIN orders o ON o.order_id = d.order_id
WHERE d.order_id IS NOT NULL
  AND (o.delivery_id IS NULL OR o.delivery_id <> d.delivery_id)
ORDER BY d.delivery_id`
)

func (r *IntegrityPostgresRepo) BrokenLinks(ctx context.Context) ([]models.LinkViolation, error) {
	out := []models.LinkViolation{}
	for _, q := range []struct {
		sql  string
		side string
	}{
		{brokenFromOrders, models.SideOrder},
		{brokenFromDeliveries, models.SideDelivery},
	} {
		var rows []linkRow
		if err := r.db.Raw(q.sql).Scan(&rows).Error; err != nil {
			return nil, wrapf(err, "integrity: %s side", q.side)
		}
		for _, row := range rows {
			out = append(out, models.LinkViolation{
				OrderID:         row.OrderID,
				DeliveryID:      row.DeliveryID,
				CounterpartLink: row.CounterpartLink,
				Side:            q.side,
			})
		}
	}
	return out, nil
}
