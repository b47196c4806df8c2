package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"supplychain-admin/internal/models"
	"supplychain-admin/internal/repository"
)

func (s *Service) CreateDelivery(ctx context.Context, cmd models.CreateDelivery) (int64, error) {
	if err := s.validate(cmd); err != nil {
		return 0, err
	}

	var id int64
	err := s.tx.Run(ctx, "create_delivery", func(ctx context.Context, repo *repository.Repository) error {
		d := models.Delivery{
			Type:        cmd.Type,
			Date:        *cmd.Date,
			Status:      cmd.Status,
			VendorID:    cmd.VendorID,
			BatchID:     cmd.BatchID,
			WarehouseID: cmd.WarehouseID,
		}
		if err := deliveryRefsExist(ctx, repo, d, true, true, true); err != nil {
			return err
		}
		if cmd.OrderID != nil {
			if err := claimOrder(ctx, repo, *cmd.OrderID, 0); err != nil {
				return err
			}
		}

		if err := repo.Deliveries.Create(ctx, &d); err != nil {
			return err
		}
		if cmd.OrderID != nil {
			if err := linkPair(ctx, repo, *cmd.OrderID, d.ID); err != nil {
				return err
			}
		}
		id = d.ID
		return nil
	})
	if err != nil {
		return 0, err
	}

	logrus.WithField("delivery_id", id).Info("delivery created")
	s.publish(ctx, Event{Type: EventDeliveryCreated, OrderID: cmd.OrderID, DeliveryID: &id})
	return id, nil
}

// UpdateDelivery writes the supplied fields. A changed order_ID releases the old
// order before the new one is linked.
func (s *Service) UpdateDelivery(ctx context.Context, id int64, cmd models.UpdateDelivery) error {
	if err := s.validate(cmd); err != nil {
		return err
	}

	var linked *int64
	err := s.tx.Run(ctx, "update_delivery", func(ctx context.Context, repo *repository.Repository) error {
		cur, err := repo.Deliveries.Lock(ctx, id)
		if err != nil {
			return storeErr(ctx, err, fmt.Sprintf("delivery %d", id))
		}

		next := cur
		if cmd.Type != nil {
			next.Type = *cmd.Type
		}
		if cmd.Date != nil {
			next.Date = *cmd.Date
		}
		if cmd.Status != nil {
			next.Status = *cmd.Status
		}
		if cmd.BatchID != nil {
			next.BatchID = *cmd.BatchID
		}
		if cmd.WarehouseID != nil {
			next.WarehouseID = *cmd.WarehouseID
		}
		if cmd.VendorID.Set {
			next.VendorID = cmd.VendorID.Ptr()
		}
		err = deliveryRefsExist(ctx, repo, next,
			next.BatchID != cur.BatchID,
			next.WarehouseID != cur.WarehouseID,
			!models.SameID(next.VendorID, cur.VendorID),
		)
		if err != nil {
			return err
		}

		relink := cmd.OrderID.Set && !models.SameID(cur.OrderID, cmd.OrderID.Ptr())
		if relink && cmd.OrderID.Valid {
			if err := claimOrder(ctx, repo, cmd.OrderID.ID, id); err != nil {
				return err
			}
		}

		if err := repo.Deliveries.Update(ctx, next); err != nil {
			return err
		}

		linked = cur.OrderID
		if !relink {
			return nil
		}
		linked = cmd.OrderID.Ptr()
		if linked == nil {
			return unlinkDelivery(ctx, repo, id)
		}
		return linkPair(ctx, repo, *linked, id)
	})
	if err != nil {
		return err
	}

	s.publish(ctx, Event{Type: EventDeliveryUpdated, OrderID: linked, DeliveryID: &id})
	return nil
}

// DeleteDelivery clears every order pointing at the delivery, then removes the row.
func (s *Service) DeleteDelivery(ctx context.Context, id int64) (*int64, error) {
	var prior *int64
	err := s.tx.Run(ctx, "delete_delivery", func(ctx context.Context, repo *repository.Repository) error {
		cur, err := repo.Deliveries.Lock(ctx, id)
		if err != nil {
			return storeErr(ctx, err, fmt.Sprintf("delivery %d", id))
		}
		prior = cur.OrderID

		if _, err := repo.Orders.ClearDelivery(ctx, id); err != nil {
			return err
		}
		return repo.Deliveries.Delete(ctx, id)
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"delivery_id": id, "order_id": prior}).Info("delivery deleted")
	s.publish(ctx, Event{Type: EventDeliveryDeleted, OrderID: prior, DeliveryID: &id})
	return prior, nil
}

func (s *Service) GetDelivery(ctx context.Context, id int64) (models.DeliveryView, error) {
	v, err := s.store.Repository().Deliveries.View(ctx, id)
	if err != nil {
		return models.DeliveryView{}, storeErr(ctx, err, fmt.Sprintf("delivery %d", id))
	}
	return v, nil
}

func (s *Service) ListDeliveries(ctx context.Context) ([]models.DeliveryView, error) {
	out, err := s.store.Repository().Deliveries.ListViews(ctx)
	if err != nil {
		return nil, storeErr(ctx, err, "list deliveries")
	}
	return out, nil
}

type refProbe struct {
	what   string
	id     int64
	exists func(context.Context, int64) (bool, error)
}

func deliveryRefsExist(ctx context.Context, repo *repository.Repository, d models.Delivery, batch, warehouse, vendor bool) error {
	var probes []refProbe
	if batch {
		probes = append(probes, refProbe{"batch", d.BatchID, repo.References.BatchExists})
	}
	if warehouse {
		probes = append(probes, refProbe{"warehouse", d.WarehouseID, repo.References.WarehouseExists})
	}
	if vendor && d.VendorID != nil {
		probes = append(probes, refProbe{"vendor", *d.VendorID, repo.References.VendorExists})
	}
	for _, p := range probes {
		ok, err := p.exists(ctx, p.id)
		if err != nil {
			return err
		}
		if !ok {
			return notFound("%s %d", p.what, p.id)
		}
	}
	return nil
}
