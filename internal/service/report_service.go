package service

import (
	"fmt"

	"erp-ledger/internal/models"

	"github.com/shopspring/decimal"
)

// ReportStore is the read access the reporting layer consumes.
type ReportStore interface {
	TrialBalance() ([]models.TrialBalanceRow, error)
	LedgerForAccount(accountCode string) ([]models.LedgerRow, error)
}

// ReportService exposes ledger data for the reporting/UI layer. It holds
// no formatting; callers render the rows themselves.
type ReportService struct {
	entries ReportStore
}

func NewReportService(entries ReportStore) *ReportService {
	return &ReportService{entries: entries}
}

// TrialBalance returns per-account debit/credit totals plus the grand
// totals, which are equal for a ledger of balanced entries.
func (s *ReportService) TrialBalance() ([]models.TrialBalanceRow, decimal.Decimal, decimal.Decimal, error) {
	rows, err := s.entries.TrialBalance()
	if err != nil {
		return nil, decimal.Zero, decimal.Zero, fmt.Errorf("trial balance: %w", err)
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, row := range rows {
		totalDebit = totalDebit.Add(row.TotalDebit)
		totalCredit = totalCredit.Add(row.TotalCredit)
	}
	return rows, totalDebit, totalCredit, nil
}

// Ledger lists every posted line for one account in entry order.
func (s *ReportService) Ledger(accountCode string) ([]models.LedgerRow, error) {
	rows, err := s.entries.LedgerForAccount(accountCode)
	if err != nil {
		return nil, fmt.Errorf("ledger for %s: %w", accountCode, err)
	}
	return rows, nil
}
