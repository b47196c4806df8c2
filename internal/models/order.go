package models

import "github.com/shopspring/decimal"

type Order struct {
	ID         int64           `json:"order_ID"    gorm:"column:order_id;primary_key"`
	OrderDate  Date            `json:"order_date"  gorm:"column:order_date;type:date;not null"`
	TotalPrice decimal.Decimal `json:"total_price" gorm:"column:total_price;type:numeric(12,2);not null"`
	Quantity   int             `json:"quantity"    gorm:"column:quantity;not null"`
	ConsumerID int64           `json:"consumer_ID" gorm:"column:consumer_id;not null;index"`
	DeliveryID *int64          `json:"delivery_ID" gorm:"column:delivery_id;index"`
}

func (Order) TableName() string { return "orders" }

// OrderFields are the scalar columns of an order; the delivery link is owned by the
// link synchronizer and is written separately.
type OrderFields struct {
	OrderDate  Date
	TotalPrice decimal.Decimal
	Quantity   int
	ConsumerID int64
}

func (o Order) Fields() OrderFields {
	return OrderFields{
		OrderDate:  o.OrderDate,
		TotalPrice: o.TotalPrice,
		Quantity:   o.Quantity,
		ConsumerID: o.ConsumerID,
	}
}

type OrderLineItem struct {
	OrderID   int64 `json:"-"          gorm:"column:order_id;primary_key;auto_increment:false"`
	ProductID int64 `json:"product_ID" gorm:"column:product_id;primary_key;auto_increment:false" validate:"required,gt=0"`
	Quantity  int   `json:"quantity"   gorm:"column:quantity;not null"                            validate:"gt=0"`
}

func (OrderLineItem) TableName() string { return "order_products" }
