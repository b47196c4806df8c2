package models

import "github.com/shopspring/decimal"

type OrderView struct {
	Order
	ConsumerName   string          `json:"consumer_name"             gorm:"column:consumer_name"`
	DeliveryType   *DeliveryType   `json:"delivery_Type,omitempty"   gorm:"column:delivery_type"`
	DeliveryStatus *DeliveryStatus `json:"delivery_Status,omitempty" gorm:"column:delivery_status"`
	Products       []OrderLineItem `json:"products"                  gorm:"-"`
}

type DeliveryView struct {
	Delivery
	OrderDate       *Date            `json:"order_date,omitempty"  gorm:"column:order_date"`
	OrderTotal      *decimal.Decimal `json:"total_price,omitempty" gorm:"column:total_price"`
	VendorName      *string          `json:"vendor_name,omitempty" gorm:"column:vendor_name"`
	BatchProductID  int64            `json:"batch_product_ID"      gorm:"column:batch_product_id"`
	WarehouseName   string           `json:"warehouse_name"        gorm:"column:warehouse_name"`
	WarehouseLocate string           `json:"warehouse_location"    gorm:"column:warehouse_location"`
}

// LinkViolation is one side of an order/delivery pair whose pointers disagree.
type LinkViolation struct {
	OrderID         int64  `json:"order_ID"`
	DeliveryID      int64  `json:"delivery_ID"`
	CounterpartLink *int64 `json:"counterpart_link"`
	Side            string `json:"side"`
}

const (
	SideOrder    = "order"
	SideDelivery = "delivery"
)
