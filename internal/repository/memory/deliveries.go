package memory

import (
	"context"

	"github.com/pkg/errors"

	"supplychain-admin/internal/models"
	"supplychain-admin/internal/repository/dberr"
)

type deliveryRepo struct{ h handle }

func (st *state) deliveryRefs(d models.Delivery) error {
	if _, ok := st.batches[d.BatchID]; !ok {
		return errors.Wrapf(dberr.ErrForeignKey, "deliveries: batch %d", d.BatchID)
	}
	if _, ok := st.warehouses[d.WarehouseID]; !ok {
		return errors.Wrapf(dberr.ErrForeignKey, "deliveries: warehouse %d", d.WarehouseID)
	}
	if d.VendorID != nil {
		if _, ok := st.vendors[*d.VendorID]; !ok {
			return errors.Wrapf(dberr.ErrForeignKey, "deliveries: vendor %d", *d.VendorID)
		}
	}
	return nil
}

func (r deliveryRepo) Create(ctx context.Context, d *models.Delivery) error {
	return r.h.write(ctx, "deliveries.create", func(st *state) error {
		if err := st.deliveryRefs(*d); err != nil {
			return err
		}
		if d.OrderID != nil {
			if _, ok := st.orders[*d.OrderID]; !ok {
				return errors.Wrapf(dberr.ErrForeignKey, "deliveries: order %d", *d.OrderID)
			}
		}
		st.deliverySeq++
		row := *d
		row.ID = st.deliverySeq
		row.OrderID = copyID(d.OrderID)
		row.VendorID = copyID(d.VendorID)
		st.deliveries[row.ID] = row
		d.ID = row.ID
		return nil
	})
}

func (r deliveryRepo) Get(ctx context.Context, id int64) (models.Delivery, error) {
	var out models.Delivery
	err := r.h.read(ctx, "deliveries.get", func(st *state) error {
		d, ok := st.deliveries[id]
		if !ok {
			return errors.Wrapf(dberr.ErrNoRows, "deliveries: get %d", id)
		}
		out = d
		out.OrderID = copyID(d.OrderID)
		out.VendorID = copyID(d.VendorID)
		return nil
	})
	return out, err
}

func (r deliveryRepo) Lock(ctx context.Context, id int64) (models.Delivery, error) {
	return r.Get(ctx, id)
}

func (r deliveryRepo) Update(ctx context.Context, d models.Delivery) error {
	return r.h.write(ctx, "deliveries.update", func(st *state) error {
		cur, ok := st.deliveries[d.ID]
		if !ok {
			return errors.Wrapf(dberr.ErrNoRows, "deliveries: update %d", d.ID)
		}
		if err := st.deliveryRefs(d); err != nil {
			return err
		}
		d.OrderID = cur.OrderID
		d.VendorID = copyID(d.VendorID)
		st.deliveries[d.ID] = d
		return nil
	})
}

func (r deliveryRepo) SetOrder(ctx context.Context, id int64, orderID *int64) error {
	return r.h.write(ctx, "deliveries.set_order", func(st *state) error {
		d, ok := st.deliveries[id]
		if !ok {
			return errors.Wrapf(dberr.ErrNoRows, "deliveries: set order of %d", id)
		}
		if orderID != nil {
			if _, ok := st.orders[*orderID]; !ok {
				return errors.Wrapf(dberr.ErrForeignKey, "deliveries: order %d", *orderID)
			}
		}
		d.OrderID = copyID(orderID)
		st.deliveries[id] = d
		return nil
	})
}

func (r deliveryRepo) ClearOrder(ctx context.Context, orderID int64) (int64, error) {
	var n int64
	err := r.h.write(ctx, "deliveries.clear_order", func(st *state) error {
		for id, d := range st.deliveries {
			if d.OrderID != nil && *d.OrderID == orderID {
				d.OrderID = nil
				st.deliveries[id] = d
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r deliveryRepo) Delete(ctx context.Context, id int64) error {
	return r.h.write(ctx, "deliveries.delete", func(st *state) error {
		if _, ok := st.deliveries[id]; !ok {
			return errors.Wrapf(dberr.ErrNoRows, "deliveries: delete %d", id)
		}
		for _, o := range st.orders {
			if o.DeliveryID != nil && *o.DeliveryID == id {
				return errors.Wrapf(dberr.ErrForeignKey, "deliveries: %d referenced by order %d", id, o.ID)
			}
		}
		delete(st.deliveries, id)
		return nil
	})
}

func (r deliveryRepo) View(ctx context.Context, id int64) (models.DeliveryView, error) {
	var out models.DeliveryView
	err := r.h.read(ctx, "deliveries.view", func(st *state) error {
		d, ok := st.deliveries[id]
		if !ok {
			return errors.Wrapf(dberr.ErrNoRows, "deliveries: view %d", id)
		}
		out = st.deliveryView(d)
		return nil
	})
	return out, err
}

func (r deliveryRepo) ListViews(ctx context.Context) ([]models.DeliveryView, error) {
	out := []models.DeliveryView{}
	err := r.h.read(ctx, "deliveries.list", func(st *state) error {
		for _, id := range sortedKeys(st.deliveries) {
			out = append(out, st.deliveryView(st.deliveries[id]))
		}
		return nil
	})
	return out, err
}

func (st *state) deliveryView(d models.Delivery) models.DeliveryView {
	d.OrderID = copyID(d.OrderID)
	d.VendorID = copyID(d.VendorID)
	w := st.warehouses[d.WarehouseID]
	v := models.DeliveryView{
		Delivery:        d,
		BatchProductID:  st.batches[d.BatchID],
		WarehouseName:   w.Name,
		WarehouseLocate: w.Location,
	}
	if d.OrderID != nil {
		if o, ok := st.orders[*d.OrderID]; ok {
			date, total := o.OrderDate, o.TotalPrice
			v.OrderDate, v.OrderTotal = &date, &total
		}
	}
	if d.VendorID != nil {
		if name, ok := st.vendors[*d.VendorID]; ok {
			v.VendorName = &name
		}
	}
	return v
}
