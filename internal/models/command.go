package models

import "github.com/shopspring/decimal"

type CreateOrder struct {
	OrderDate  *Date           `json:"order_date"  validate:"required"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Quantity   int             `json:"quantity"    validate:"gte=0"`
	ConsumerID int64           `json:"consumer_ID" validate:"required,gt=0"`
	DeliveryID *int64          `json:"delivery_ID" validate:"omitempty,gt=0"`
	Products   []OrderLineItem `json:"products"    validate:"dive"`
}

type UpdateOrder struct {
	OrderDate  *Date            `json:"order_date"`
	TotalPrice *decimal.Decimal `json:"total_price"`
	Quantity   *int             `json:"quantity"    validate:"omitempty,gte=0"`
	ConsumerID *int64           `json:"consumer_ID" validate:"omitempty,gt=0"`
	DeliveryID OptionalID       `json:"delivery_ID"`
	// nil keeps the current items; a non-nil empty slice removes all of them.
	Products *[]OrderLineItem `json:"products" validate:"omitempty,dive"`
}

type CreateDelivery struct {
	Type        DeliveryType   `json:"delivery_Type"   validate:"required,oneof=Standard Express Bulk"`
	Date        *Date          `json:"date"            validate:"required"`
	Status      DeliveryStatus `json:"delivery_Status" validate:"required,oneof=pending transit delivered"`
	OrderID     *int64         `json:"order_ID"        validate:"omitempty,gt=0"`
	VendorID    *int64         `json:"vendor_ID"       validate:"omitempty,gt=0"`
	BatchID     int64          `json:"batch_ID"        validate:"required,gt=0"`
	WarehouseID int64          `json:"warehouse_ID"    validate:"required,gt=0"`
}

type UpdateDelivery struct {
	Type        *DeliveryType   `json:"delivery_Type"   validate:"omitempty,oneof=Standard Express Bulk"`
	Date        *Date           `json:"date"`
	Status      *DeliveryStatus `json:"delivery_Status" validate:"omitempty,oneof=pending transit delivered"`
	OrderID     OptionalID      `json:"order_ID"`
	VendorID    OptionalID      `json:"vendor_ID"`
	BatchID     *int64          `json:"batch_ID"        validate:"omitempty,gt=0"`
	WarehouseID *int64          `json:"warehouse_ID"    validate:"omitempty,gt=0"`
}

// DeliveryStatusMessage is the payload of the delivery-status topic.
type DeliveryStatusMessage struct {
	DeliveryID int64          `json:"delivery_ID"     validate:"required,gt=0"`
	Status     DeliveryStatus `json:"delivery_Status" validate:"required,oneof=pending transit delivered"`
}
