package model

import "github.com/google/uuid"

// Inventory is a stock ledger row scoping quantities to one (client, product)
// pair. Quantity is the total stock on hand; ReservedQuantity is the soft-held
// portion of it. Reserve/Release keep 0 <= reserved <= quantity; a direct
// Update can bypass that check (admin repair hatch).
//
// (client_id, product_id) is deliberately NOT unique: duplicate ledger rows
// for the same pair are allowed, and reserve/release act on the oldest row.
type Inventory struct {
	BaseModel
	ClientID  uuid.UUID `gorm:"type:uuid;not null;index" json:"client_id" validate:"uuid_required"`
	Client    *User     `gorm:"foreignKey:ClientID" json:"client,omitempty" validate:"-"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id" validate:"uuid_required"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty" validate:"-"`

	Quantity          int    `gorm:"not null;default:0" json:"quantity" validate:"gte=0"`
	ReservedQuantity  int    `gorm:"not null;default:0" json:"reserved_quantity" validate:"gte=0"`
	WarehouseLocation string `gorm:"type:varchar(100)" json:"warehouse_location,omitempty"`
}

// Available is the unreserved portion of the stock. Derived, never stored.
func (i *Inventory) Available() int {
	return i.Quantity - i.ReservedQuantity
}
