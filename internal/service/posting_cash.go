package service

import (
	"fmt"

	"erp-ledger/internal/models"
)

// PostCashMovement records a manual cash-drawer movement. The counterpart
// account comes from the movement's declared purpose; movements whose
// dedicated counterpart is not configured land on the suspense account.
func (s *PostingService) PostCashMovement(movement *models.CashMovement) (*models.Entry, error) {
	cash, err := s.chart.Role(models.RoleCash)
	if err != nil {
		return nil, err
	}

	var counterpart *models.Account
	var origin string
	switch movement.Kind {
	case models.CashMovementIncome:
		switch movement.Purpose {
		case models.PurposeOpeningFund:
			counterpart, err = s.counterpartOr(models.RoleOpeningFund)
			origin = models.OriginOpening
		default:
			counterpart, err = s.counterpartOr(models.RoleMiscIncome)
			origin = models.OriginCollections
		}
	case models.CashMovementExpense:
		switch movement.Purpose {
		case models.PurposeOwnerWithdrawal:
			counterpart, err = s.counterpartOr(models.RoleOwnerWithdrawals)
		default:
			counterpart, err = s.counterpartOr(models.RoleMiscExpense)
		}
		origin = models.OriginPayments
	default:
		return nil, fmt.Errorf("unknown cash movement kind %q", movement.Kind)
	}
	if err != nil {
		return nil, err
	}

	period, err := s.periods.PeriodFor(movement.Date)
	if err != nil {
		return nil, err
	}

	description := fmt.Sprintf("Cash movement: %s", movement.Description)
	var lines []Line
	if movement.Kind == models.CashMovementIncome {
		lines = []Line{
			DebitLine(cash, movement.Amount, ""),
			CreditLine(counterpart, movement.Amount, ""),
		}
	} else {
		lines = []Line{
			DebitLine(counterpart, movement.Amount, ""),
			CreditLine(cash, movement.Amount, ""),
		}
	}

	return s.writer.Post(period, movement.Date, description, origin,
		models.DocRef{Type: models.DocTypeCashMovement, ID: movement.ID, Purpose: string(movement.Kind)}, lines)
}

// PostBankMovement records a manual bank movement. A statement credit
// increases the bank balance against miscellaneous income; a debit
// decreases it against miscellaneous expense.
func (s *PostingService) PostBankMovement(movement *models.BankMovement) (*models.Entry, error) {
	bank, err := s.chart.Role(models.RoleBank)
	if err != nil {
		return nil, err
	}

	period, err := s.periods.PeriodFor(movement.Date)
	if err != nil {
		return nil, err
	}

	description := fmt.Sprintf("Bank movement: %s", movement.Description)
	var lines []Line
	var origin string
	switch movement.Kind {
	case models.BankMovementCredit:
		income, err := s.counterpartOr(models.RoleMiscIncome)
		if err != nil {
			return nil, err
		}
		lines = []Line{
			DebitLine(bank, movement.Amount, ""),
			CreditLine(income, movement.Amount, ""),
		}
		origin = models.OriginCollections
	case models.BankMovementDebit:
		expense, err := s.counterpartOr(models.RoleMiscExpense)
		if err != nil {
			return nil, err
		}
		lines = []Line{
			DebitLine(expense, movement.Amount, ""),
			CreditLine(bank, movement.Amount, ""),
		}
		origin = models.OriginPayments
	default:
		return nil, fmt.Errorf("unknown bank movement kind %q", movement.Kind)
	}

	return s.writer.Post(period, movement.Date, description, origin,
		models.DocRef{Type: models.DocTypeBankMovement, ID: movement.ID, Purpose: string(movement.Kind)}, lines)
}

// PostCashCountVariance posts the difference found at a drawer count: a
// shortage is charged to expenses, an overage is recognized as income. A
// zero difference posts nothing and returns no entry.
func (s *PostingService) PostCashCountVariance(count *models.CashCount) (*models.Entry, error) {
	if count.Difference.IsZero() {
		return nil, nil
	}

	cash, err := s.chart.Role(models.RoleCash)
	if err != nil {
		return nil, err
	}

	period, err := s.periods.PeriodFor(count.Date)
	if err != nil {
		return nil, err
	}

	var lines []Line
	var description string
	if count.Difference.IsNegative() {
		shortage, err := s.chart.Role(models.RoleCashShortage)
		if err != nil {
			return nil, err
		}
		amount := count.Difference.Abs()
		description = fmt.Sprintf("Cash count shortage %s", amount.StringFixed(2))
		lines = []Line{
			DebitLine(shortage, amount, ""),
			CreditLine(cash, amount, ""),
		}
	} else {
		overage, err := s.chart.Role(models.RoleCashOverage)
		if err != nil {
			return nil, err
		}
		description = fmt.Sprintf("Cash count overage %s", count.Difference.StringFixed(2))
		lines = []Line{
			DebitLine(cash, count.Difference, ""),
			CreditLine(overage, count.Difference, ""),
		}
	}

	return s.writer.Post(period, count.Date, description, models.OriginPayments,
		models.DocRef{Type: models.DocTypeCashCount, ID: count.ID, Purpose: "variance"}, lines)
}
