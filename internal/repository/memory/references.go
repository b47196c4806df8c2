package memory

import (
	"context"

	"supplychain-admin/internal/models"
)

type referenceRepo struct{ h handle }

func (r referenceRepo) ConsumerExists(ctx context.Context, id int64) (bool, error) {
	return r.exists(ctx, func(st *state) bool { _, ok := st.consumers[id]; return ok })
}

func (r referenceRepo) MissingProducts(ctx context.Context, ids []int64) ([]int64, error) {
	var missing []int64
	err := r.h.read(ctx, "products.exists", func(st *state) error {
		for _, id := range ids {
			if _, ok := st.products[id]; !ok {
				missing = append(missing, id)
			}
		}
		return nil
	})
	return missing, err
}

func (r referenceRepo) BatchExists(ctx context.Context, id int64) (bool, error) {
	return r.exists(ctx, func(st *state) bool { _, ok := st.batches[id]; return ok })
}

func (r referenceRepo) WarehouseExists(ctx context.Context, id int64) (bool, error) {
	return r.exists(ctx, func(st *state) bool { _, ok := st.warehouses[id]; return ok })
}

func (r referenceRepo) VendorExists(ctx context.Context, id int64) (bool, error) {
	return r.exists(ctx, func(st *state) bool { _, ok := st.vendors[id]; return ok })
}

func (r referenceRepo) exists(ctx context.Context, probe func(st *state) bool) (bool, error) {
	var ok bool
	err := r.h.read(ctx, "references.exists", func(st *state) error {
		ok = probe(st)
		return nil
	})
	return ok, err
}

type integrityRepo struct{ h handle }

func (r integrityRepo) BrokenLinks(ctx context.Context) ([]models.LinkViolation, error) {
	out := []models.LinkViolation{}
	err := r.h.read(ctx, "integrity.broken_links", func(st *state) error {
		for _, id := range sortedKeys(st.orders) {
			o := st.orders[id]
			if o.DeliveryID == nil {
				continue
			}
			var back *int64
			if d, ok := st.deliveries[*o.DeliveryID]; ok {
				back = copyID(d.OrderID)
			}
			if back == nil || *back != o.ID {
				out = append(out, models.LinkViolation{
					OrderID: o.ID, DeliveryID: *o.DeliveryID, CounterpartLink: back, Side: models.SideOrder,
				})
			}
		}
		for _, id := range sortedKeys(st.deliveries) {
			d := st.deliveries[id]
			if d.OrderID == nil {
				continue
			}
			var back *int64
			if o, ok := st.orders[*d.OrderID]; ok {
				back = copyID(o.DeliveryID)
			}
			if back == nil || *back != d.ID {
				out = append(out, models.LinkViolation{
					OrderID: *d.OrderID, DeliveryID: d.ID, CounterpartLink: back, Side: models.SideDelivery,
				})
			}
		}
		return nil
	})
	return out, err
}

// ForceOrderLink writes orders.delivery_id without any check. Used to stage data
// that predates the link synchronizer.
func (s *Store) ForceOrderLink(orderID int64, deliveryID *int64) {
	s.seed(func(st *state) {
		if o, ok := st.orders[orderID]; ok {
			o.DeliveryID = copyID(deliveryID)
			st.orders[orderID] = o
		}
	})
}

// ForceDeliveryLink writes deliveries.order_id without any check.
func (s *Store) ForceDeliveryLink(deliveryID int64, orderID *int64) {
	s.seed(func(st *state) {
		if d, ok := st.deliveries[deliveryID]; ok {
			d.OrderID = copyID(orderID)
			st.deliveries[deliveryID] = d
		}
	})
}
