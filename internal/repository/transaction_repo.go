package repository

import (
	"bizflow-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InventoryTransactionRepository interface {
	FindAll() ([]model.InventoryTransaction, error)
	FindByItem(itemID uuid.UUID) ([]model.InventoryTransaction, error)
	FindByID(id uuid.UUID) (*model.InventoryTransaction, error)
	CountByItem(itemID uuid.UUID) (int64, error)
}

type transactionRepo struct {
	db *gorm.DB
}

func NewInventoryTransactionRepo(db *gorm.DB) InventoryTransactionRepository {
	return &transactionRepo{db}
}

func (r *transactionRepo) FindAll() ([]model.InventoryTransaction, error) {
	var txs []model.InventoryTransaction
	err := r.db.Preload("Item").Order("created_at DESC").Find(&txs).Error
	return txs, err
}

func (r *transactionRepo) FindByItem(itemID uuid.UUID) ([]model.InventoryTransaction, error) {
	var txs []model.InventoryTransaction
	err := r.db.Where("item_id = ?", itemID).Order("created_at DESC").Find(&txs).Error
	return txs, err
}

func (r *transactionRepo) FindByID(id uuid.UUID) (*model.InventoryTransaction, error) {
	var tx model.InventoryTransaction
	err := r.db.Preload("Item").First(&tx, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

func (r *transactionRepo) CountByItem(itemID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.InventoryTransaction{}).Where("item_id = ?", itemID).Count(&count).Error
	return count, err
}
