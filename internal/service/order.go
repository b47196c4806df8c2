package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"supplychain-admin/internal/models"
	"supplychain-admin/internal/repository"
)

func (s *Service) CreateOrder(ctx context.Context, cmd models.CreateOrder) (int64, error) {
	if err := s.validate(cmd); err != nil {
		return 0, err
	}
	if cmd.TotalPrice.IsNegative() {
		return 0, invalid("total_price must not be negative")
	}
	if err := validateLineItems(cmd.Products); err != nil {
		return 0, err
	}

	var id int64
	err := s.tx.Run(ctx, "create_order", func(ctx context.Context, repo *repository.Repository) error {
		if err := consumerExists(ctx, repo, cmd.ConsumerID); err != nil {
			return err
		}
		if err := checkLineItems(ctx, repo, cmd.Products); err != nil {
			return err
		}
		if cmd.DeliveryID != nil {
			if err := claimDelivery(ctx, repo, *cmd.DeliveryID, 0); err != nil {
				return err
			}
		}

		o := models.Order{
			OrderDate:  *cmd.OrderDate,
			TotalPrice: cmd.TotalPrice,
			Quantity:   cmd.Quantity,
			ConsumerID: cmd.ConsumerID,
		}
		if err := repo.Orders.Create(ctx, &o); err != nil {
			return err
		}
		if err := insertLineItems(ctx, repo, o.ID, cmd.Products); err != nil {
			return err
		}
		if cmd.DeliveryID != nil {
			if err := linkPair(ctx, repo, o.ID, *cmd.DeliveryID); err != nil {
				return err
			}
		}
		id = o.ID
		return nil
	})
	if err != nil {
		return 0, err
	}

	logrus.WithField("order_id", id).Info("order created")
	s.publish(ctx, Event{Type: EventOrderCreated, OrderID: &id, DeliveryID: cmd.DeliveryID})
	return id, nil
}

// UpdateOrder writes the supplied scalar fields, replaces the line items when
// products is present and moves the delivery link when delivery_ID is present.
func (s *Service) UpdateOrder(ctx context.Context, id int64, cmd models.UpdateOrder) error {
	if err := s.validate(cmd); err != nil {
		return err
	}
	if cmd.TotalPrice != nil && cmd.TotalPrice.IsNegative() {
		return invalid("total_price must not be negative")
	}
	if cmd.Products != nil {
		if err := validateLineItems(*cmd.Products); err != nil {
			return err
		}
	}

	var linked *int64
	err := s.tx.Run(ctx, "update_order", func(ctx context.Context, repo *repository.Repository) error {
		cur, err := repo.Orders.Lock(ctx, id)
		if err != nil {
			return storeErr(ctx, err, fmt.Sprintf("order %d", id))
		}

		f := cur.Fields()
		if cmd.OrderDate != nil {
			f.OrderDate = *cmd.OrderDate
		}
		if cmd.TotalPrice != nil {
			f.TotalPrice = *cmd.TotalPrice
		}
		if cmd.Quantity != nil {
			f.Quantity = *cmd.Quantity
		}
		if cmd.ConsumerID != nil && *cmd.ConsumerID != cur.ConsumerID {
			if err := consumerExists(ctx, repo, *cmd.ConsumerID); err != nil {
				return err
			}
			f.ConsumerID = *cmd.ConsumerID
		}
		if cmd.Products != nil {
			if err := checkLineItems(ctx, repo, *cmd.Products); err != nil {
				return err
			}
		}
		relink := cmd.DeliveryID.Set && !models.SameID(cur.DeliveryID, cmd.DeliveryID.Ptr())
		if relink && cmd.DeliveryID.Valid {
			if err := claimDelivery(ctx, repo, cmd.DeliveryID.ID, id); err != nil {
				return err
			}
		}

		if err := repo.Orders.Update(ctx, id, f); err != nil {
			return err
		}
		if cmd.Products != nil {
			if err := replaceLineItems(ctx, repo, id, *cmd.Products); err != nil {
				return err
			}
		}

		linked = cur.DeliveryID
		if !relink {
			return nil
		}
		linked = cmd.DeliveryID.Ptr()
		if linked == nil {
			return unlinkOrder(ctx, repo, id)
		}
		return linkPair(ctx, repo, id, *linked)
	})
	if err != nil {
		return err
	}

	s.publish(ctx, Event{Type: EventOrderUpdated, OrderID: &id, DeliveryID: linked})
	return nil
}

// DeleteOrder removes the line items, releases the linked delivery and then the row.
func (s *Service) DeleteOrder(ctx context.Context, id int64) error {
	var linked *int64
	err := s.tx.Run(ctx, "delete_order", func(ctx context.Context, repo *repository.Repository) error {
		cur, err := repo.Orders.Lock(ctx, id)
		if err != nil {
			return storeErr(ctx, err, fmt.Sprintf("order %d", id))
		}
		linked = cur.DeliveryID

		if err := deleteLineItems(ctx, repo, id); err != nil {
			return err
		}
		if _, err := repo.Deliveries.ClearOrder(ctx, id); err != nil {
			return err
		}
		return repo.Orders.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	logrus.WithField("order_id", id).Info("order deleted")
	s.publish(ctx, Event{Type: EventOrderDeleted, OrderID: &id, DeliveryID: linked})
	return nil
}

func (s *Service) GetOrder(ctx context.Context, id int64) (models.OrderView, error) {
	v, err := s.store.Repository().Orders.View(ctx, id)
	if err != nil {
		return models.OrderView{}, storeErr(ctx, err, fmt.Sprintf("order %d", id))
	}
	return v, nil
}

func (s *Service) ListOrders(ctx context.Context) ([]models.OrderView, error) {
	out, err := s.store.Repository().Orders.ListViews(ctx)
	if err != nil {
		return nil, storeErr(ctx, err, "list orders")
	}
	return out, nil
}

func consumerExists(ctx context.Context, repo *repository.Repository, id int64) error {
	ok, err := repo.References.ConsumerExists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return notFound("consumer %d", id)
	}
	return nil
}
