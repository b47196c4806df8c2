package memory

import (
	"context"

	"github.com/pkg/errors"

	"supplychain-admin/internal/models"
	"supplychain-admin/internal/repository/dberr"
)

type lineItemRepo struct{ h handle }

// InsertBatch checks faults per row, so a test can fail the n-th line of a batch.
func (r lineItemRepo) InsertBatch(ctx context.Context, orderID int64, items []models.OrderLineItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.h.write(ctx, "order_products.insert_batch", func(st *state) error {
		if _, ok := st.orders[orderID]; !ok {
			return errors.Wrapf(dberr.ErrForeignKey, "order_products: order %d", orderID)
		}
		set := st.items[orderID]
		if set == nil {
			set = make(map[int64]int, len(items))
			st.items[orderID] = set
		}
		for _, it := range items {
			if err := r.h.store.fault("order_products.insert"); err != nil {
				return err
			}
			if _, ok := st.products[it.ProductID]; !ok {
				return errors.Wrapf(dberr.ErrForeignKey, "order_products: product %d", it.ProductID)
			}
			if _, dup := set[it.ProductID]; dup {
				return errors.Wrapf(dberr.ErrUnique, "order_products: (%d, %d)", orderID, it.ProductID)
			}
			set[it.ProductID] = it.Quantity
		}
		return nil
	})
}

func (r lineItemRepo) DeleteByOrder(ctx context.Context, orderID int64) (int64, error) {
	var n int64
	err := r.h.write(ctx, "order_products.delete", func(st *state) error {
		n = int64(len(st.items[orderID]))
		delete(st.items, orderID)
		return nil
	})
	return n, err
}

func (r lineItemRepo) ListByOrder(ctx context.Context, orderID int64) ([]models.OrderLineItem, error) {
	var out []models.OrderLineItem
	err := r.h.read(ctx, "order_products.list", func(st *state) error {
		out = st.lineItems(orderID)
		return nil
	})
	return out, err
}

func (st *state) lineItems(orderID int64) []models.OrderLineItem {
	set := st.items[orderID]
	out := make([]models.OrderLineItem, 0, len(set))
	for _, pid := range sortedKeys(set) {
		out = append(out, models.OrderLineItem{OrderID: orderID, ProductID: pid, Quantity: set[pid]})
	}
	return out
}
