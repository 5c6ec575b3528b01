package model

// Derived stock states, surfaced only through query filters. Never stored.
const (
	StockStateIn  = "in_stock"
	StockStateLow = "low_stock"
	StockStateOut = "out_of_stock"
)

type InventoryItem struct {
	BaseModel
	SKU               string  `gorm:"type:varchar(50);uniqueIndex;not null" json:"sku" validate:"required"`
	Name              string  `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Category          *string `gorm:"type:varchar(100)" json:"category,omitempty"`
	Quantity          int     `gorm:"not null;default:0" json:"quantity" validate:"gte=0"`
	LowStockThreshold int     `gorm:"not null;default:5" json:"low_stock_threshold" validate:"gte=0"`

	Transactions []InventoryTransaction `gorm:"foreignKey:ItemID" json:"transactions,omitempty"`
}

// StockState derives the display state from quantity and threshold.
func (i *InventoryItem) StockState() string {
	switch {
	case i.Quantity == 0:
		return StockStateOut
	case i.Quantity <= i.LowStockThreshold:
		return StockStateLow
	default:
		return StockStateIn
	}
}
