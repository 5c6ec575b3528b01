package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransactionType string

const (
	TxAddition    TransactionType = "Addition"
	TxSubtraction TransactionType = "Subtraction"
	TxAdjustment  TransactionType = "Adjustment"
)

// InventoryTransaction is an append-only ledger entry. Rows are created
// inside the same database transaction as the quantity change they record
// and are never updated or deleted afterwards.
type InventoryTransaction struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	ItemID         uuid.UUID       `gorm:"type:uuid;not null;index" json:"item_id"`
	Item           *InventoryItem  `gorm:"foreignKey:ItemID" json:"item,omitempty"`
	QuantityChange int             `gorm:"not null" json:"quantity_change"`
	Type           TransactionType `gorm:"type:varchar(20);not null" json:"type"`
	Note           string          `json:"note"`
	PerformedBy    *uuid.UUID      `gorm:"type:uuid" json:"performed_by"`
	Performer      *User           `gorm:"foreignKey:PerformedBy" json:"performer,omitempty"`
	CreatedAt      time.Time       `json:"timestamp"`
}

func (t *InventoryTransaction) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}
