package service

import (
	"context"
	"fmt"

	"supplychain-admin/internal/models"
	"supplychain-admin/internal/repository"
)

// The synchronizer is the single writer of orders.delivery_id and deliveries.order_id.
// Every method runs inside the caller's unit of work; claims lock the counterpart row
// first so concurrent linkers of the same row serialize and the loser sees Conflict.

// claimDelivery locks deliveryID and checks it is free for orderID. Pass 0 for an
// order that does not exist yet.
func claimDelivery(ctx context.Context, repo *repository.Repository, deliveryID, orderID int64) error {
	d, err := repo.Deliveries.Lock(ctx, deliveryID)
	if err != nil {
		return storeErr(ctx, err, fmt.Sprintf("delivery %d", deliveryID))
	}
	if d.OrderID != nil && *d.OrderID != orderID {
		return conflict("delivery %d is linked to order %d", deliveryID, *d.OrderID)
	}
	return nil
}

// claimOrder locks orderID and checks it is free for deliveryID.
func claimOrder(ctx context.Context, repo *repository.Repository, orderID, deliveryID int64) error {
	o, err := repo.Orders.Lock(ctx, orderID)
	if err != nil {
		return storeErr(ctx, err, fmt.Sprintf("order %d", orderID))
	}
	if o.DeliveryID != nil && *o.DeliveryID != deliveryID {
		return conflict("order %d is linked to delivery %d", orderID, *o.DeliveryID)
	}
	return nil
}

// linkPair points the order and the delivery at each other and releases whatever
// either of them, or anything else, pointed at before.
func linkPair(ctx context.Context, repo *repository.Repository, orderID, deliveryID int64) error {
	if _, err := repo.Deliveries.ClearOrder(ctx, orderID); err != nil {
		return err
	}
	if _, err := repo.Orders.ClearDelivery(ctx, deliveryID); err != nil {
		return err
	}
	if err := repo.Orders.SetDelivery(ctx, orderID, &deliveryID); err != nil {
		return err
	}
	return repo.Deliveries.SetOrder(ctx, deliveryID, &orderID)
}

// unlinkOrder clears both directions of the order's link.
func unlinkOrder(ctx context.Context, repo *repository.Repository, orderID int64) error {
	if _, err := repo.Deliveries.ClearOrder(ctx, orderID); err != nil {
		return err
	}
	return repo.Orders.SetDelivery(ctx, orderID, nil)
}

// unlinkDelivery clears both directions of the delivery's link.
func unlinkDelivery(ctx context.Context, repo *repository.Repository, deliveryID int64) error {
	if _, err := repo.Orders.ClearDelivery(ctx, deliveryID); err != nil {
		return err
	}
	return repo.Deliveries.SetOrder(ctx, deliveryID, nil)
}

// CheckLinks reports every order/delivery pair whose pointers disagree.
func (s *Service) CheckLinks(ctx context.Context) ([]models.LinkViolation, error) {
	out, err := s.store.Repository().Integrity.BrokenLinks(ctx)
	if err != nil {
		return nil, storeErr(ctx, err, "check links")
	}
	return out, nil
}
