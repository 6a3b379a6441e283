package service

import (
	"fmt"
	"time"

	"erp-ledger/internal/models"
)

// PostSaleCashCollection records a client paying an outstanding balance in
// cash.
func (s *PostingService) PostSaleCashCollection(sale *models.Sale) (*models.Entry, error) {
	cash, err := s.chart.Role(models.RoleCash)
	if err != nil {
		return nil, err
	}
	receivable, err := s.chart.Role(models.RoleAccountsReceivable)
	if err != nil {
		return nil, err
	}

	period, err := s.periods.PeriodFor(sale.Date)
	if err != nil {
		return nil, err
	}

	description := fmt.Sprintf("Cash collection sale %s - %s", sale.Number, sale.ClientName)
	lines := []Line{
		DebitLine(cash, sale.Total, ""),
		CreditLine(receivable, sale.Total, ""),
	}

	return s.writer.Post(period, sale.Date, description, models.OriginCollections,
		models.DocRef{Type: models.DocTypeSale, ID: sale.ID, Purpose: "cash_collection"}, lines)
}

// PostSaleCardCollection records a card settlement. The processor withholds
// its fee, so the card receivable is the gross minus the fee; the fee leg
// is posted only when a card-fee account is configured.
func (s *PostingService) PostSaleCardCollection(sale *models.Sale) (*models.Entry, error) {
	cardReceivable, err := s.chart.Role(models.RoleCardReceivable)
	if err != nil {
		return nil, err
	}
	receivable, err := s.chart.Role(models.RoleAccountsReceivable)
	if err != nil {
		return nil, err
	}

	period, err := s.periods.PeriodFor(sale.Date)
	if err != nil {
		return nil, err
	}

	description := fmt.Sprintf("Card collection sale %s - %s", sale.Number, sale.ClientName)

	var lines []Line
	fee := sale.Total.Mul(s.cardFeeRate).Round(2)
	if fee.IsPositive() && s.chart.RoleBound(models.RoleCardFeeExpense) {
		feeExpense, err := s.chart.Role(models.RoleCardFeeExpense)
		if err != nil {
			return nil, err
		}
		lines = []Line{
			DebitLine(cardReceivable, sale.Total.Sub(fee), ""),
			DebitLine(feeExpense, fee, ""),
			CreditLine(receivable, sale.Total, ""),
		}
	} else {
		lines = []Line{
			DebitLine(cardReceivable, sale.Total, ""),
			CreditLine(receivable, sale.Total, ""),
		}
	}

	return s.writer.Post(period, sale.Date, description, models.OriginCollections,
		models.DocRef{Type: models.DocTypeSale, ID: sale.ID, Purpose: "card_collection"}, lines)
}

// PostCheckReceived records a third-party check taken from a client: the
// check sits pending deposit while the client's balance drops.
func (s *PostingService) PostCheckReceived(check *models.Check, date time.Time) (*models.Entry, error) {
	pending, err := s.chart.Role(models.RoleChecksPendingDeposit)
	if err != nil {
		return nil, err
	}
	receivable, err := s.chart.Role(models.RoleAccountsReceivable)
	if err != nil {
		return nil, err
	}

	period, err := s.periods.PeriodFor(date)
	if err != nil {
		return nil, err
	}

	description := fmt.Sprintf("Check %s received (%s)", check.Number, check.BankName)
	lines := []Line{
		DebitLine(pending, check.Amount, ""),
		CreditLine(receivable, check.Amount, ""),
	}

	return s.writer.Post(period, date, description, models.OriginCollections,
		models.DocRef{Type: models.DocTypeCheck, ID: check.ID, Purpose: "received"}, lines)
}

// PostCheckDeposited moves a pending check into the bank account matching
// the check's bank name, or the generic bank account when none is set up.
func (s *PostingService) PostCheckDeposited(check *models.Check, date time.Time) (*models.Entry, error) {
	bank, err := s.chart.BankAccount(check.BankName)
	if err != nil {
		return nil, err
	}
	pending, err := s.chart.Role(models.RoleChecksPendingDeposit)
	if err != nil {
		return nil, err
	}

	period, err := s.periods.PeriodFor(date)
	if err != nil {
		return nil, err
	}

	description := fmt.Sprintf("Check %s deposited (%s)", check.Number, check.BankName)
	lines := []Line{
		DebitLine(bank, check.Amount, ""),
		CreditLine(pending, check.Amount, ""),
	}

	return s.writer.Post(period, date, description, models.OriginCollections,
		models.DocRef{Type: models.DocTypeCheck, ID: check.ID, Purpose: "deposited"}, lines)
}

// PostCheckRejected reverses a deposited check that bounced: the money
// leaves the bank and the client owes again.
func (s *PostingService) PostCheckRejected(check *models.Check, date time.Time) (*models.Entry, error) {
	receivable, err := s.chart.Role(models.RoleAccountsReceivable)
	if err != nil {
		return nil, err
	}
	bank, err := s.chart.BankAccount(check.BankName)
	if err != nil {
		return nil, err
	}

	period, err := s.periods.PeriodFor(date)
	if err != nil {
		return nil, err
	}

	description := fmt.Sprintf("Check %s rejected (%s)", check.Number, check.BankName)
	lines := []Line{
		DebitLine(receivable, check.Amount, ""),
		CreditLine(bank, check.Amount, ""),
	}

	return s.writer.Post(period, date, description, models.OriginCollections,
		models.DocRef{Type: models.DocTypeCheck, ID: check.ID, Purpose: "rejected"}, lines)
}

// PostCollectionWithholding records a tax withholding suffered when a
// client settles: the withheld amount becomes a credit against the tax
// authority instead of cash.
func (s *PostingService) PostCollectionWithholding(wh *models.Withholding) (*models.Entry, error) {
	whReceivable, err := s.chart.Role(models.RoleWithholdingReceivable)
	if err != nil {
		return nil, err
	}
	receivable, err := s.chart.Role(models.RoleAccountsReceivable)
	if err != nil {
		return nil, err
	}

	period, err := s.periods.PeriodFor(wh.Date)
	if err != nil {
		return nil, err
	}

	description := fmt.Sprintf("Withholding suffered %s", wh.Certificate)
	lines := []Line{
		DebitLine(whReceivable, wh.Amount, ""),
		CreditLine(receivable, wh.Amount, ""),
	}

	return s.writer.Post(period, wh.Date, description, models.OriginCollections,
		models.DocRef{Type: models.DocTypeWithholding, ID: wh.ID, Purpose: "suffered"}, lines)
}

// PostReceipt writes one consolidated entry for a receipt: one line per
// payment-method item against the client's or provider's balance for the
// receipt total.
func (s *PostingService) PostReceipt(receipt *models.Receipt) (*models.Entry, error) {
	total := receipt.Total()
	if !total.IsPositive() {
		return nil, fmt.Errorf("%w: receipt %s has no positive total", ErrInvalidLine, receipt.Number)
	}

	var balanceRole models.AccountRole
	var origin string
	switch receipt.Direction {
	case models.ReceiptPayment:
		balanceRole = models.RoleAccountsPayable
		origin = models.OriginPayments
	default:
		balanceRole = models.RoleAccountsReceivable
		origin = models.OriginCollections
	}
	balance, err := s.chart.Role(balanceRole)
	if err != nil {
		return nil, err
	}

	// Resolve every payment-method account before building any line so a
	// single unresolvable method aborts the whole receipt.
	methodAccounts := make([]*models.Account, len(receipt.Items))
	for i, item := range receipt.Items {
		account, err := s.chart.Resolve(item.Method)
		if err != nil {
			return nil, fmt.Errorf("receipt %s method %q: %w", receipt.Number, item.Method, err)
		}
		methodAccounts[i] = account
	}

	period, err := s.periods.PeriodFor(receipt.Date)
	if err != nil {
		return nil, err
	}

	description := fmt.Sprintf("Receipt %s - %s", receipt.Number, receipt.PartyName)
	lines := make([]Line, 0, len(receipt.Items)+1)
	for i, item := range receipt.Items {
		if receipt.Direction == models.ReceiptPayment {
			lines = append(lines, CreditLine(methodAccounts[i], item.Amount, item.Method))
		} else {
			lines = append(lines, DebitLine(methodAccounts[i], item.Amount, item.Method))
		}
	}
	if receipt.Direction == models.ReceiptPayment {
		lines = append([]Line{DebitLine(balance, total, "")}, lines...)
	} else {
		lines = append(lines, CreditLine(balance, total, ""))
	}

	return s.writer.Post(period, receipt.Date, description, origin,
		models.DocRef{Type: models.DocTypeReceipt, ID: receipt.ID, Purpose: string(receipt.Direction)}, lines)
}
