package memory

import (
	"context"
	"slices"

	"github.com/pkg/errors"

	"supplychain-admin/internal/models"
	"supplychain-admin/internal/repository/dberr"
)

type orderRepo struct{ h handle }

func (r orderRepo) Create(ctx context.Context, o *models.Order) error {
	return r.h.write(ctx, "orders.create", func(st *state) error {
		if _, ok := st.consumers[o.ConsumerID]; !ok {
			return errors.Wrapf(dberr.ErrForeignKey, "orders: consumer %d", o.ConsumerID)
		}
		if o.DeliveryID != nil {
			if _, ok := st.deliveries[*o.DeliveryID]; !ok {
				return errors.Wrapf(dberr.ErrForeignKey, "orders: delivery %d", *o.DeliveryID)
			}
		}
		st.orderSeq++
		row := *o
		row.ID = st.orderSeq
		row.DeliveryID = copyID(o.DeliveryID)
		st.orders[row.ID] = row
		o.ID = row.ID
		return nil
	})
}

func (r orderRepo) Get(ctx context.Context, id int64) (models.Order, error) {
	var out models.Order
	err := r.h.read(ctx, "orders.get", func(st *state) error {
		o, ok := st.orders[id]
		if !ok {
			return errors.Wrapf(dberr.ErrNoRows, "orders: get %d", id)
		}
		out = o
		out.DeliveryID = copyID(o.DeliveryID)
		return nil
	})
	return out, err
}

// Lock is Get: the open transaction already excludes every other writer.
func (r orderRepo) Lock(ctx context.Context, id int64) (models.Order, error) {
	return r.Get(ctx, id)
}

func (r orderRepo) Update(ctx context.Context, id int64, f models.OrderFields) error {
	return r.h.write(ctx, "orders.update", func(st *state) error {
		o, ok := st.orders[id]
		if !ok {
			return errors.Wrapf(dberr.ErrNoRows, "orders: update %d", id)
		}
		if _, ok := st.consumers[f.ConsumerID]; !ok {
			return errors.Wrapf(dberr.ErrForeignKey, "orders: consumer %d", f.ConsumerID)
		}
		o.OrderDate, o.TotalPrice, o.Quantity, o.ConsumerID = f.OrderDate, f.TotalPrice, f.Quantity, f.ConsumerID
		st.orders[id] = o
		return nil
	})
}

func (r orderRepo) SetDelivery(ctx context.Context, id int64, deliveryID *int64) error {
	return r.h.write(ctx, "orders.set_delivery", func(st *state) error {
		o, ok := st.orders[id]
		if !ok {
			return errors.Wrapf(dberr.ErrNoRows, "orders: set delivery of %d", id)
		}
		if deliveryID != nil {
			if _, ok := st.deliveries[*deliveryID]; !ok {
				return errors.Wrapf(dberr.ErrForeignKey, "orders: delivery %d", *deliveryID)
			}
		}
		o.DeliveryID = copyID(deliveryID)
		st.orders[id] = o
		return nil
	})
}

func (r orderRepo) ClearDelivery(ctx context.Context, deliveryID int64) (int64, error) {
	var n int64
	err := r.h.write(ctx, "orders.clear_delivery", func(st *state) error {
		for id, o := range st.orders {
			if o.DeliveryID != nil && *o.DeliveryID == deliveryID {
				o.DeliveryID = nil
				st.orders[id] = o
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r orderRepo) Delete(ctx context.Context, id int64) error {
	return r.h.write(ctx, "orders.delete", func(st *state) error {
		if _, ok := st.orders[id]; !ok {
			return errors.Wrapf(dberr.ErrNoRows, "orders: delete %d", id)
		}
		if len(st.items[id]) > 0 {
			return errors.Wrapf(dberr.ErrForeignKey, "orders: %d has order_products", id)
		}
		for _, d := range st.deliveries {
			if d.OrderID != nil && *d.OrderID == id {
				return errors.Wrapf(dberr.ErrForeignKey, "orders: %d referenced by delivery %d", id, d.ID)
			}
		}
		delete(st.orders, id)
		delete(st.items, id)
		return nil
	})
}

func (r orderRepo) View(ctx context.Context, id int64) (models.OrderView, error) {
	var out models.OrderView
	err := r.h.read(ctx, "orders.view", func(st *state) error {
		o, ok := st.orders[id]
		if !ok {
			return errors.Wrapf(dberr.ErrNoRows, "orders: view %d", id)
		}
		out = st.orderView(o)
		return nil
	})
	return out, err
}

func (r orderRepo) ListViews(ctx context.Context) ([]models.OrderView, error) {
	out := []models.OrderView{}
	err := r.h.read(ctx, "orders.list", func(st *state) error {
		for _, id := range sortedKeys(st.orders) {
			out = append(out, st.orderView(st.orders[id]))
		}
		return nil
	})
	return out, err
}

func (st *state) orderView(o models.Order) models.OrderView {
	o.DeliveryID = copyID(o.DeliveryID)
	v := models.OrderView{
		Order:        o,
		ConsumerName: st.consumers[o.ConsumerID],
		Products:     st.lineItems(o.ID),
	}
	if o.DeliveryID != nil {
		if d, ok := st.deliveries[*o.DeliveryID]; ok {
			typ, status := d.Type, d.Status
			v.DeliveryType, v.DeliveryStatus = &typ, &status
		}
	}
	return v
}

func copyID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	return models.IDPtr(*id)
}

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
