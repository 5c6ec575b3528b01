package service

import (
	"bizflow-backend/internal/model"
	"bizflow-backend/internal/repository"
)

// FinancialSummary aggregates all financial records.
type FinancialSummary struct {
	TotalExpense float64 `json:"total_expense"`
	TotalRevenue float64 `json:"total_revenue"`
	Net          float64 `json:"net"`
}

type ReportService interface {
	FinancialSummary() (*FinancialSummary, error)
	TaskStatusCount() (map[string]int64, error)
	InventorySnapshot() (map[string]int, error)
	AccountingByProject() ([]repository.AccountingSummary, error)
	AccountingByTask() ([]repository.AccountingSummary, error)
}

type reportService struct {
	financialRepo  repository.FinancialRecordRepository
	taskRepo       repository.TaskRepository
	itemRepo       repository.InventoryItemRepository
	accountingRepo repository.AccountingEntryRepository
}

func NewReportService(
	financialRepo repository.FinancialRecordRepository,
	taskRepo repository.TaskRepository,
	itemRepo repository.InventoryItemRepository,
	accountingRepo repository.AccountingEntryRepository,
) ReportService {
	return &reportService{
		financialRepo:  financialRepo,
		taskRepo:       taskRepo,
		itemRepo:       itemRepo,
		accountingRepo: accountingRepo,
	}
}

func (s *reportService) FinancialSummary() (*FinancialSummary, error) {
	sums, err := s.financialRepo.SumByType()
	if err != nil {
		return nil, err
	}
	return &FinancialSummary{
		TotalExpense: sums[model.RecordExpense],
		TotalRevenue: sums[model.RecordRevenue],
		Net:          sums[model.RecordRevenue] - sums[model.RecordExpense],
	}, nil
}

func (s *reportService) TaskStatusCount() (map[string]int64, error) {
	counts, err := s.taskRepo.CountByStatus(nil)
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(counts))
	for status, count := range counts {
		out[string(status)] = count
	}
	return out, nil
}

func (s *reportService) InventorySnapshot() (map[string]int, error) {
	items, err := s.itemRepo.FindAll()
	if err != nil {
		return nil, err
	}
	snapshot := make(map[string]int, len(items))
	for _, item := range items {
		snapshot[item.Name] = item.Quantity
	}
	return snapshot, nil
}

func (s *reportService) AccountingByProject() ([]repository.AccountingSummary, error) {
	return s.accountingRepo.SummarizeByProject()
}

func (s *reportService) AccountingByTask() ([]repository.AccountingSummary, error) {
	return s.accountingRepo.SummarizeByTask()
}
