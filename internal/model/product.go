package model

type Product struct {
	BaseModel
	SKU         string  `gorm:"type:varchar(50);uniqueIndex;not null" json:"sku" validate:"required"`
	Name        string  `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Description string  `gorm:"type:text" json:"description,omitempty"`
	UnitPrice   float64 `gorm:"type:decimal(10,2);not null" json:"unit_price" validate:"gte=0"`
	Weight      float64 `gorm:"type:decimal(10,2)" json:"weight,omitempty" validate:"omitempty,gt=0"`
	Dimensions  string  `gorm:"type:varchar(100)" json:"dimensions,omitempty"`
}
