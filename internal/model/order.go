package model

import "github.com/google/uuid"

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderConfirmed  OrderStatus = "confirmed"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// Order carries a derived TotalAmount that always equals the sum of its
// items' TotalPrice. Only the recalculation step writes it; callers never set
// it directly. Status transitions are unrestricted: any of the six statuses
// may follow any other.
type Order struct {
	BaseModel
	ClientID    uuid.UUID   `gorm:"type:uuid;not null;index" json:"client_id" validate:"uuid_required"`
	Client      *User       `gorm:"foreignKey:ClientID" json:"client,omitempty" validate:"-"`
	OrderNumber string      `gorm:"type:varchar(40);uniqueIndex;not null" json:"order_number"`
	Status      OrderStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status" validate:"omitempty,oneof=pending confirmed processing shipped delivered cancelled"`

	TotalAmount     float64 `gorm:"type:decimal(10,2);not null;default:0" json:"total_amount"`
	ShippingAddress string  `gorm:"type:text;not null" json:"shipping_address" validate:"required"`
	BillingAddress  string  `gorm:"type:text" json:"billing_address,omitempty"`
	Notes           string  `gorm:"type:text" json:"notes,omitempty"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty" validate:"-"`
}

// OrderItem captures the unit price at the time of addition, independent of
// the product's current catalog price. TotalPrice = Quantity * UnitPrice.
type OrderItem struct {
	BaseModel
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id" validate:"uuid_required"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id" validate:"uuid_required"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty" validate:"-"`

	Quantity   int     `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	UnitPrice  float64 `gorm:"type:decimal(10,2);not null" json:"unit_price" validate:"required,gt=0"`
	TotalPrice float64 `gorm:"type:decimal(10,2);not null" json:"total_price"`
}
