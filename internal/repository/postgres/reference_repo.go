package postgres

import (
	"context"

	"github.com/jinzhu/gorm"
)

// ReferencePostgresRepo answers "does row X exist" for the tables orders and
// deliveries point at.
type ReferencePostgresRepo struct {
	db *gorm.DB
}

func NewReferencePostgres(db *gorm.DB) *ReferencePostgresRepo {
	return &ReferencePostgresRepo{db: db}
}

func (r *ReferencePostgresRepo) ConsumerExists(ctx context.Context, id int64) (bool, error) {
	return exists(r.db, "consumers", "consumer_id", id)
}

func (r *ReferencePostgresRepo) BatchExists(ctx context.Context, id int64) (bool, error) {
	return exists(r.db, "product_batches", "batch_id", id)
}

func (r *ReferencePostgresRepo) WarehouseExists(ctx context.Context, id int64) (bool, error) {
	return exists(r.db, "warehouses", "warehouse_id", id)
}

func (r *ReferencePostgresRepo) VendorExists(ctx context.Context, id int64) (bool, error) {
	return exists(r.db, "vendors", "vendor_id", id)
}

func (r *ReferencePostgresRepo) MissingProducts(ctx context.Context, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var found []int64
	if err := r.db.Table("products").Where("product_id IN (?)", ids).Pluck("product_id", &found).Error; err != nil {
		return nil, wrap(err, "products: lookup")
	}
	seen := make(map[int64]struct{}, len(found))
	for _, id := range found {
		seen[id] = struct{}{}
	}
	var missing []int64
	for _, id := range ids {
		if _, ok := seen[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}
