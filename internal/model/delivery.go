package model

import (
	"time"

	"github.com/google/uuid"
)

type DeliveryStatus string

const (
	DeliveryPending        DeliveryStatus = "pending"
	DeliveryInTransit      DeliveryStatus = "in_transit"
	DeliveryOutForDelivery DeliveryStatus = "out_for_delivery"
	DeliveryDelivered      DeliveryStatus = "delivered"
	DeliveryFailed         DeliveryStatus = "failed"
)

// Delivery tracks shipment state for an order. One delivery per order in
// practice, though no uniqueness constraint enforces it.
type Delivery struct {
	BaseModel
	OrderID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"order_id" validate:"uuid_required"`
	Order          *Order         `gorm:"foreignKey:OrderID" json:"order,omitempty" validate:"-"`
	TrackingNumber string         `gorm:"type:varchar(40);uniqueIndex;not null" json:"tracking_number"`
	Status         DeliveryStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status" validate:"omitempty,oneof=pending in_transit out_for_delivery delivered failed"`
	Carrier        string         `gorm:"type:varchar(100)" json:"carrier,omitempty"`

	EstimatedDeliveryDate *time.Time `json:"estimated_delivery_date,omitempty"`
	ActualDeliveryDate    *time.Time `json:"actual_delivery_date,omitempty"`
	Notes                 string     `gorm:"type:text" json:"notes,omitempty"`
}
