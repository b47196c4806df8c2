package service

import (
	"context"
	"slices"

	"supplychain-admin/internal/models"
	"supplychain-admin/internal/repository"
)

// validateLineItems checks a submitted item set without touching the store.
func validateLineItems(items []models.OrderLineItem) error {
	seen := make(map[int64]struct{}, len(items))
	for _, it := range items {
		if it.ProductID <= 0 {
			return invalid("product_ID must be positive, got %d", it.ProductID)
		}
		if it.Quantity <= 0 {
			return invalid("quantity of product %d must be positive, got %d", it.ProductID, it.Quantity)
		}
		if _, dup := seen[it.ProductID]; dup {
			return invalid("duplicate product_ID %d", it.ProductID)
		}
		seen[it.ProductID] = struct{}{}
	}
	return nil
}

// checkLineItems fails with NotFound when any product does not exist.
func checkLineItems(ctx context.Context, repo *repository.Repository, items []models.OrderLineItem) error {
	if len(items) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}

	missing, err := repo.References.MissingProducts(ctx, ids)
	if err != nil {
		return storeErr(ctx, err, "check products")
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return notFound("products %v", missing)
	}
	return nil
}

// replaceLineItems makes the order's items exactly items. An empty set removes all.
func replaceLineItems(ctx context.Context, repo *repository.Repository, orderID int64, items []models.OrderLineItem) error {
	if err := deleteLineItems(ctx, repo, orderID); err != nil {
		return err
	}
	return insertLineItems(ctx, repo, orderID, items)
}

func deleteLineItems(ctx context.Context, repo *repository.Repository, orderID int64) error {
	_, err := repo.LineItems.DeleteByOrder(ctx, orderID)
	return err
}

func insertLineItems(ctx context.Context, repo *repository.Repository, orderID int64, items []models.OrderLineItem) error {
	if len(items) == 0 {
		return nil
	}
	rows := make([]models.OrderLineItem, len(items))
	for i, it := range items {
		rows[i] = models.OrderLineItem{OrderID: orderID, ProductID: it.ProductID, Quantity: it.Quantity}
	}
	return repo.LineItems.InsertBatch(ctx, orderID, rows)
}
