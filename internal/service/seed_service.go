package service

import (
	"fmt"
	"strings"
	"time"

	"erp-ledger/internal/models"
	"erp-ledger/internal/repository"
	"erp-ledger/internal/utils"
)

// seedAccount is one row of the default chart of accounts. Postability and
// level are derived from the codes: an account is postable when no other
// seeded code nests under it.
type seedAccount struct {
	code string
	name string
	kind models.AccountKind
}

// defaultChart carries every account the role catalog promises, plus the
// grouping nodes above them.
var defaultChart = []seedAccount{
	{"1", "Assets", models.KindAsset},
	{"1.1", "Current Assets", models.KindAsset},
	{"1.1.01", "Cash and Banks", models.KindAsset},
	{"1.1.01.001", "Cash", models.KindAsset},
	{"1.1.01.002", "Bank Current Account", models.KindAsset},
	{"1.1.01.003", "Checks Pending Deposit", models.KindAsset},
	{"1.1.01.004", "Card Receivable", models.KindAsset},
	{"1.1.02", "Receivables", models.KindAsset},
	{"1.1.02.001", "Accounts Receivable", models.KindAsset},
	{"1.1.02.002", "Withholding Receivable", models.KindAsset},
	{"1.1.03", "Inventory", models.KindAsset},
	{"1.1.03.001", "Merchandise", models.KindAsset},
	{"1.1.04", "Tax Credits", models.KindAsset},
	{"1.1.04.001", "VAT Input", models.KindAsset},
	{"1.1.05", "Other Assets", models.KindAsset},
	{"1.1.05.001", "Suspense Account", models.KindAsset},
	{"2", "Liabilities", models.KindLiability},
	{"2.1", "Current Liabilities", models.KindLiability},
	{"2.1.01", "Trade Payables", models.KindLiability},
	{"2.1.01.001", "Accounts Payable", models.KindLiability},
	{"2.1.01.002", "Deferred Checks Payable", models.KindLiability},
	{"2.1.02", "Tax Liabilities", models.KindLiability},
	{"2.1.02.001", "VAT Output", models.KindLiability},
	{"2.1.02.002", "Withholding Payable", models.KindLiability},
	{"3", "Equity", models.KindEquity},
	{"3.1", "Owner Equity", models.KindEquity},
	{"3.1.01", "Capital", models.KindEquity},
	{"3.1.01.001", "Owner Capital", models.KindEquity},
	{"3.1.01.002", "Owner Withdrawals", models.KindEquity},
	{"3.1.01.003", "Opening Fund", models.KindEquity},
	{"4", "Income", models.KindIncome},
	{"4.1", "Operating Income", models.KindIncome},
	{"4.1.01", "Revenue", models.KindIncome},
	{"4.1.01.001", "Sales", models.KindIncome},
	{"4.1.01.002", "Misc Income", models.KindIncome},
	{"4.1.01.003", "Cash Overage", models.KindIncome},
	{"5", "Expenses", models.KindExpense},
	{"5.1", "Operating Expenses", models.KindExpense},
	{"5.1.01", "Cost of Sales", models.KindExpense},
	{"5.1.01.001", "Cost of Goods Sold", models.KindExpense},
	{"5.1.01.002", "Card Fee Expense", models.KindExpense},
	{"5.1.01.003", "Misc Expense", models.KindExpense},
	{"5.1.01.004", "Cash Shortage", models.KindExpense},
}

// SeedService loads the default chart of accounts and fiscal period. It is
// setup tooling: the role catalog names are guaranteed to resolve after a
// successful seed.
type SeedService struct {
	accounts *repository.AccountRepository
	periods  *repository.PeriodRepository
}

func NewSeedService(accounts *repository.AccountRepository, periods *repository.PeriodRepository) *SeedService {
	return &SeedService{accounts: accounts, periods: periods}
}

// SeedChart inserts or refreshes the default chart of accounts and links
// each account to its parent by dotted code.
func (s *SeedService) SeedChart() error {
	log := utils.ComponentLogger("seed")

	rows := make([]models.Account, 0, len(defaultChart))
	for _, def := range defaultChart {
		rows = append(rows, models.Account{
			Code:     def.code,
			Name:     def.name,
			Kind:     def.kind,
			Postable: isLeaf(def.code),
			Level:    models.CodeLevel(def.code),
		})
	}
	if err := s.accounts.BulkInsert(rows); err != nil {
		return fmt.Errorf("insert chart of accounts: %w", err)
	}

	// Link parents in a second pass, once every code has an ID.
	all, err := s.accounts.FindAll()
	if err != nil {
		return fmt.Errorf("reload chart of accounts: %w", err)
	}
	byCode := make(map[string]int64, len(all))
	for _, account := range all {
		byCode[account.Code] = account.ID
	}
	for _, account := range all {
		parentCode := models.ParentCode(account.Code)
		if parentCode == "" {
			continue
		}
		parentID, ok := byCode[parentCode]
		if !ok {
			return fmt.Errorf("account %s has no parent %s in the chart", account.Code, parentCode)
		}
		if account.ParentID != nil && *account.ParentID == parentID {
			continue
		}
		if err := s.accounts.SetParent(account.ID, parentID); err != nil {
			return fmt.Errorf("link account %s to parent: %w", account.Code, err)
		}
	}

	log.WithField("accounts", len(rows)).Info("chart of accounts seeded")
	return nil
}

// SeedPeriod creates an open fiscal period for the given calendar year if
// no open period covers it yet.
func (s *SeedService) SeedPeriod(year int) error {
	log := utils.ComponentLogger("seed")

	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	existing, err := s.periods.OpenCovering(start)
	if err != nil {
		return fmt.Errorf("check existing periods: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	period := &models.Period{
		Label:     fmt.Sprintf("FY%d", year),
		StartDate: start,
		EndDate:   time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC),
		Closed:    false,
	}
	if err := s.periods.Create(period); err != nil {
		return fmt.Errorf("create fiscal period: %w", err)
	}

	log.WithField("period", period.Label).Info("fiscal period seeded")
	return nil
}

func isLeaf(code string) bool {
	for _, def := range defaultChart {
		if def.code != code && strings.HasPrefix(def.code, code+".") {
			return false
		}
	}
	return true
}
