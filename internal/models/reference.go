package models

// Reference rows owned by other parts of the application. Only the columns the
// order/delivery views join on are mapped.

type Consumer struct {
	ID   int64  `json:"consumer_ID" gorm:"column:consumer_id;primary_key"`
	Name string `json:"name"        gorm:"column:name;not null"`
}

func (Consumer) TableName() string { return "consumers" }

type Product struct {
	ID   int64  `json:"product_ID" gorm:"column:product_id;primary_key"`
	Name string `json:"name"       gorm:"column:name;not null"`
}

func (Product) TableName() string { return "products" }

type Batch struct {
	ID        int64 `json:"batch_ID"   gorm:"column:batch_id;primary_key"`
	ProductID int64 `json:"product_ID" gorm:"column:product_id;not null"`
}

func (Batch) TableName() string { return "product_batches" }

type Warehouse struct {
	ID       int64  `json:"warehouse_ID" gorm:"column:warehouse_id;primary_key"`
	Name     string `json:"name"         gorm:"column:name;not null"`
	Location string `json:"location"     gorm:"column:location"`
}

func (Warehouse) TableName() string { return "warehouses" }

type Vendor struct {
	ID   int64  `json:"vendor_ID" gorm:"column:vendor_id;primary_key"`
	Name string `json:"name"      gorm:"column:name;not null"`
}

func (Vendor) TableName() string { return "vendors" }
