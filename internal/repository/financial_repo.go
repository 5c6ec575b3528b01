package repository

import (
	"bizflow-backend/internal/model"

	"gorm.io/gorm"
)

type FinancialRecordRepository interface {
	Create(record *model.FinancialRecord) error
	FindAll() ([]model.FinancialRecord, error)
	SumByType() (map[model.RecordType]float64, error)
}

type financialRepo struct {
	db *gorm.DB
}

func NewFinancialRecordRepo(db *gorm.DB) FinancialRecordRepository {
	return &financialRepo{db}
}

func (r *financialRepo) Create(record *model.FinancialRecord) error {
	return r.db.Create(record).Error
}

func (r *financialRepo) FindAll() ([]model.FinancialRecord, error) {
	var records []model.FinancialRecord
	err := r.db.Order("created_at DESC").Find(&records).Error
	return records, err
}

func (r *financialRepo) SumByType() (map[model.RecordType]float64, error) {
	type row struct {
		Type  model.RecordType
		Total float64
	}
	var rows []row
	err := r.db.Model(&model.FinancialRecord{}).
		Select("type, COALESCE(SUM(amount), 0) as total").
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	sums := map[model.RecordType]float64{
		model.RecordExpense: 0,
		model.RecordRevenue: 0,
	}
	for _, r := range rows {
		sums[r.Type] = r.Total
	}
	return sums, nil
}
