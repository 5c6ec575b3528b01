package repository

import (
	"bizflow-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InventoryItemRepository interface {
	Create(item *model.InventoryItem) error
	FindAll() ([]model.InventoryItem, error)
	FindByState(state string) ([]model.InventoryItem, error)
	FindByID(id uuid.UUID) (*model.InventoryItem, error)
	FindBySKU(sku string) (*model.InventoryItem, error)
	FindLowStock() ([]model.InventoryItem, error)
	Update(item *model.InventoryItem) error
	UpdateQuantity(tx *gorm.DB, id uuid.UUID, newQuantity int) error
	Delete(id uuid.UUID) error
}

type itemRepo struct {
	db *gorm.DB
}

func NewInventoryItemRepo(db *gorm.DB) InventoryItemRepository {
	return &itemRepo{db}
}

func (r *itemRepo) Create(item *model.InventoryItem) error {
	return r.db.Create(item).Error
}

func (r *itemRepo) FindAll() ([]model.InventoryItem, error) {
	var items []model.InventoryItem
	err := r.db.Order("created_at ASC").Find(&items).Error
	return items, err
}

func (r *itemRepo) FindByState(state string) ([]model.InventoryItem, error) {
	q := r.db.Order("created_at ASC")
	switch state {
	case model.StockStateOut:
		q = q.Where("quantity = 0")
	case model.StockStateLow:
		q = q.Where("quantity > 0 AND quantity <= low_stock_threshold")
	case model.StockStateIn:
		q = q.Where("quantity > low_stock_threshold")
	}
	var items []model.InventoryItem
	err := q.Find(&items).Error
	return items, err
}

func (r *itemRepo) FindByID(id uuid.UUID) (*model.InventoryItem, error) {
	var item model.InventoryItem
	err := r.db.First(&item, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepo) FindBySKU(sku string) (*model.InventoryItem, error) {
	var item model.InventoryItem
	err := r.db.First(&item, "sku = ?", sku).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepo) FindLowStock() ([]model.InventoryItem, error) {
	var items []model.InventoryItem
	err := r.db.Where("quantity <= low_stock_threshold").Order("quantity ASC").Find(&items).Error
	return items, err
}

func (r *itemRepo) Update(item *model.InventoryItem) error {
	return r.db.Save(item).Error
}

// UpdateQuantity runs on the caller's transaction so the quantity change and
// its ledger entry commit or roll back together.
func (r *itemRepo) UpdateQuantity(tx *gorm.DB, id uuid.UUID, newQuantity int) error {
	return tx.Model(&model.InventoryItem{}).
		Where("id = ?", id).
		Update("quantity", newQuantity).Error
}

func (r *itemRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.InventoryItem{}, "id = ?", id).Error
}
