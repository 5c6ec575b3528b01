package service

import (
	"errors"
	"fmt"

	"bizflow-backend/internal/model"
	"bizflow-backend/internal/repository"
	"bizflow-backend/internal/ws"
	"bizflow-backend/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrItemNotFound      = errors.New("item not found")
	ErrSKUExists         = errors.New("item with this SKU already exists")
	ErrInsufficientStock = errors.New("insufficient stock for this transaction")
)

// AdjustmentRequest is the payload for a ledger adjustment.
type AdjustmentRequest struct {
	ItemID         uuid.UUID             `json:"item_id" validate:"uuid_required"`
	QuantityChange int                   `json:"quantity_change" validate:"required"`
	Type           model.TransactionType `json:"type" validate:"required,oneof=Addition Subtraction Adjustment"`
	Note           string                `json:"note"`
}

// UpdateItemRequest covers metadata edits. Quantity is deliberately absent:
// stock only moves through Adjust or the admin-only OverrideQuantity.
type UpdateItemRequest struct {
	Name              *string `json:"name"`
	Category          *string `json:"category"`
	LowStockThreshold *int    `json:"low_stock_threshold" validate:"omitempty,gte=0"`
}

type InventoryService interface {
	CreateItem(item *model.InventoryItem) error
	UpdateItem(id uuid.UUID, req *UpdateItemRequest) (*model.InventoryItem, error)
	DeleteItem(id uuid.UUID) error
	GetItem(id uuid.UUID) (*model.InventoryItem, error)
	ListItems(state string) ([]model.InventoryItem, error)
	ListLowStock() ([]model.InventoryItem, error)

	Adjust(req *AdjustmentRequest, actor *model.User) (*model.InventoryItem, *model.InventoryTransaction, error)
	OverrideQuantity(id uuid.UUID, newQuantity int, note string, actor *model.User) (*model.InventoryItem, *model.InventoryTransaction, error)
	ListTransactions() ([]model.InventoryTransaction, error)
	ListItemTransactions(itemID uuid.UUID) ([]model.InventoryTransaction, error)
}

type inventoryService struct {
	itemRepo repository.InventoryItemRepository
	txRepo   repository.InventoryTransactionRepository
	db       *gorm.DB
	wsHub    *ws.Hub
}

func NewInventoryService(itemRepo repository.InventoryItemRepository, txRepo repository.InventoryTransactionRepository, db *gorm.DB, hub *ws.Hub) InventoryService {
	return &inventoryService{
		itemRepo: itemRepo,
		txRepo:   txRepo,
		db:       db,
		wsHub:    hub,
	}
}

// lockForUpdate takes a row lock so concurrent adjustments on the same item
// serialize around the negative-stock check. sqlite has no FOR UPDATE; its
// single-writer model already serializes writes, so the clause is skipped.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

func (s *inventoryService) CreateItem(item *model.InventoryItem) error {
	if errs := validator.ValidateStruct(item); len(errs) > 0 {
		firstErr := errs[0]
		return fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	existing, _ := s.itemRepo.FindBySKU(item.SKU)
	if existing != nil && existing.ID != uuid.Nil {
		return ErrSKUExists
	}

	return s.itemRepo.Create(item)
}

func (s *inventoryService) UpdateItem(id uuid.UUID, req *UpdateItemRequest) (*model.InventoryItem, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	item, err := s.itemRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Category != nil {
		item.Category = req.Category
	}
	if req.LowStockThreshold != nil {
		item.LowStockThreshold = *req.LowStockThreshold
	}

	if err := s.itemRepo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *inventoryService) DeleteItem(id uuid.UUID) error {
	if _, err := s.itemRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrItemNotFound
		}
		return err
	}
	return s.itemRepo.Delete(id)
}

func (s *inventoryService) GetItem(id uuid.UUID) (*model.InventoryItem, error) {
	item, err := s.itemRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *inventoryService) ListItems(state string) ([]model.InventoryItem, error) {
	if state == "" {
		return s.itemRepo.FindAll()
	}
	return s.itemRepo.FindByState(state)
}

func (s *inventoryService) ListLowStock() ([]model.InventoryItem, error) {
	return s.itemRepo.FindLowStock()
}

// Adjust applies a signed quantity delta and appends the ledger entry as one
// atomic unit. Either both the new quantity and the transaction row become
// visible, or neither does.
func (s *inventoryService) Adjust(req *AdjustmentRequest, actor *model.User) (*model.InventoryItem, *model.InventoryTransaction, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	var updated *model.InventoryItem
	var record *model.InventoryTransaction

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var item model.InventoryItem
		if err := lockForUpdate(tx).First(&item, "id = ?", req.ItemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrItemNotFound
			}
			return err
		}

		newQuantity := item.Quantity + req.QuantityChange
		if newQuantity < 0 {
			return ErrInsufficientStock
		}

		if err := s.itemRepo.UpdateQuantity(tx, item.ID, newQuantity); err != nil {
			return err
		}
		item.Quantity = newQuantity

		record = &model.InventoryTransaction{
			ItemID:         item.ID,
			QuantityChange: req.QuantityChange,
			Type:           req.Type,
			Note:           req.Note,
		}
		if actor != nil {
			actorID := actor.ID
			record.PerformedBy = &actorID
		}
		if err := tx.Create(record).Error; err != nil {
			return err
		}

		updated = &item
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	s.publishStockEvent(updated, record, actor)
	return updated, record, nil
}

// OverrideQuantity is the explicit administrative escape hatch for setting a
// quantity directly. It still routes through the ledger, recording the
// implied delta as an Adjustment so quantity and log stay reconciled.
func (s *inventoryService) OverrideQuantity(id uuid.UUID, newQuantity int, note string, actor *model.User) (*model.InventoryItem, *model.InventoryTransaction, error) {
	if newQuantity < 0 {
		return nil, nil, ErrInsufficientStock
	}

	var updated *model.InventoryItem
	var record *model.InventoryTransaction

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var item model.InventoryItem
		if err := lockForUpdate(tx).First(&item, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrItemNotFound
			}
			return err
		}

		delta := newQuantity - item.Quantity
		if delta == 0 {
			updated = &item
			return nil
		}

		if err := s.itemRepo.UpdateQuantity(tx, item.ID, newQuantity); err != nil {
			return err
		}
		item.Quantity = newQuantity

		record = &model.InventoryTransaction{
			ItemID:         item.ID,
			QuantityChange: delta,
			Type:           model.TxAdjustment,
			Note:           note,
		}
		if actor != nil {
			actorID := actor.ID
			record.PerformedBy = &actorID
		}
		if err := tx.Create(record).Error; err != nil {
			return err
		}

		updated = &item
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	if record != nil {
		s.publishStockEvent(updated, record, actor)
	}
	return updated, record, nil
}

func (s *inventoryService) ListTransactions() ([]model.InventoryTransaction, error) {
	return s.txRepo.FindAll()
}

func (s *inventoryService) ListItemTransactions(itemID uuid.UUID) ([]model.InventoryTransaction, error) {
	if _, err := s.itemRepo.FindByID(itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return s.txRepo.FindByItem(itemID)
}

// publishStockEvent broadcasts after commit so clients never see a rolled
// back adjustment.
func (s *inventoryService) publishStockEvent(item *model.InventoryItem, record *model.InventoryTransaction, actor *model.User) {
	if s.wsHub == nil {
		return
	}
	go func() {
		payload := map[string]interface{}{
			"type":   "stock_update",
			"action": "transaction_created",
			"item": map[string]interface{}{
				"id":          item.ID,
				"sku":         item.SKU,
				"name":        item.Name,
				"quantity":    item.Quantity,
				"stock_state": item.StockState(),
			},
			"transaction": map[string]interface{}{
				"id":              record.ID,
				"quantity_change": record.QuantityChange,
				"type":            record.Type,
			},
			"low_stock": item.Quantity <= item.LowStockThreshold,
		}
		if actor != nil {
			payload["user"] = map[string]interface{}{
				"id":    actor.ID,
				"email": actor.Email,
			}
		}
		s.wsHub.Publish(payload)
	}()
}
