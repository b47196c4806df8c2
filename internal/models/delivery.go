package models

type DeliveryType string

const (
	DeliveryStandard DeliveryType = "Standard"
	DeliveryExpress  DeliveryType = "Express"
	DeliveryBulk     DeliveryType = "Bulk"
)

type DeliveryStatus string

const (
	StatusPending   DeliveryStatus = "pending"
	StatusTransit   DeliveryStatus = "transit"
	StatusDelivered DeliveryStatus = "delivered"
)

type Delivery struct {
	ID          int64          `json:"delivery_ID"     gorm:"column:delivery_id;primary_key"`
	Type        DeliveryType   `json:"delivery_Type"   gorm:"column:delivery_type;type:varchar(16);not null"`
	Date        Date           `json:"date"            gorm:"column:date;type:date;not null"`
	Status      DeliveryStatus `json:"delivery_Status" gorm:"column:delivery_status;type:varchar(16);not null"`
	VendorID    *int64         `json:"vendor_ID"       gorm:"column:vendor_id"`
	BatchID     int64          `json:"batch_ID"        gorm:"column:batch_id;not null"`
	WarehouseID int64          `json:"warehouse_ID"    gorm:"column:warehouse_id;not null"`
	OrderID     *int64         `json:"order_ID"        gorm:"column:order_id;index"`
}

func (Delivery) TableName() string { return "deliveries" }
