package service

import (
	"fmt"

	"erp-ledger/internal/models"
)

// PostPurchase writes the entry for a supplier invoice: merchandise enters
// inventory at net value, the VAT portion becomes a tax credit, and the
// gross total is owed to the provider.
func (s *PostingService) PostPurchase(purchase *models.Purchase) (*models.Entry, error) {
	inventory, err := s.chart.Role(models.RoleInventory)
	if err != nil {
		return nil, err
	}
	vatInput, err := s.chart.Role(models.RoleVATInput)
	if err != nil {
		return nil, err
	}
	payable, err := s.chart.Role(models.RoleAccountsPayable)
	if err != nil {
		return nil, err
	}

	period, err := s.periods.PeriodFor(purchase.Date)
	if err != nil {
		return nil, err
	}

	net, tax := s.splitTax(purchase.Total)
	description := fmt.Sprintf("Purchase %s - %s", purchase.Number, purchase.ProviderName)
	lines := []Line{
		DebitLine(inventory, net, ""),
		DebitLine(vatInput, tax, ""),
		CreditLine(payable, purchase.Total, ""),
	}

	return s.writer.Post(period, purchase.Date, description, models.OriginPurchases,
		models.DocRef{Type: models.DocTypePurchase, ID: purchase.ID, Purpose: "invoice"}, lines)
}

// PostPurchaseCashPayment settles a supplier invoice from the cash drawer.
func (s *PostingService) PostPurchaseCashPayment(purchase *models.Purchase) (*models.Entry, error) {
	payable, err := s.chart.Role(models.RoleAccountsPayable)
	if err != nil {
		return nil, err
	}
	cash, err := s.chart.Role(models.RoleCash)
	if err != nil {
		return nil, err
	}

	period, err := s.periods.PeriodFor(purchase.Date)
	if err != nil {
		return nil, err
	}

	description := fmt.Sprintf("Cash payment purchase %s - %s", purchase.Number, purchase.ProviderName)
	lines := []Line{
		DebitLine(payable, purchase.Total, ""),
		CreditLine(cash, purchase.Total, ""),
	}

	return s.writer.Post(period, purchase.Date, description, models.OriginPayments,
		models.DocRef{Type: models.DocTypePurchase, ID: purchase.ID, Purpose: "cash_payment"}, lines)
}

// PostPurchaseCheckPayment settles a supplier invoice with an own check.
// An at-par check (due on issue) comes straight out of the bank account; a
// post-dated check is carried as a deferred check payable until it clears.
func (s *PostingService) PostPurchaseCheckPayment(purchase *models.Purchase, check *models.Check) (*models.Entry, error) {
	payable, err := s.chart.Role(models.RoleAccountsPayable)
	if err != nil {
		return nil, err
	}

	var counterpart *models.Account
	if check.PostDated() {
		counterpart, err = s.chart.Role(models.RoleDeferredChecksPayable)
	} else {
		counterpart, err = s.chart.Role(models.RoleBank)
	}
	if err != nil {
		return nil, err
	}

	period, err := s.periods.PeriodFor(check.IssueDate)
	if err != nil {
		return nil, err
	}

	description := fmt.Sprintf("Check %s payment purchase %s - %s", check.Number, purchase.Number, purchase.ProviderName)
	lines := []Line{
		DebitLine(payable, check.Amount, ""),
		CreditLine(counterpart, check.Amount, ""),
	}

	return s.writer.Post(period, check.IssueDate, description, models.OriginPayments,
		models.DocRef{Type: models.DocTypeCheck, ID: check.ID, Purpose: "issued"}, lines)
}

// PostPaymentWithholding records a tax withholding applied when paying a
// vendor: the debt shrinks and the withheld amount is owed to the tax
// authority instead.
func (s *PostingService) PostPaymentWithholding(wh *models.Withholding) (*models.Entry, error) {
	payable, err := s.chart.Role(models.RoleAccountsPayable)
	if err != nil {
		return nil, err
	}
	whPayable, err := s.chart.Role(models.RoleWithholdingPayable)
	if err != nil {
		return nil, err
	}

	period, err := s.periods.PeriodFor(wh.Date)
	if err != nil {
		return nil, err
	}

	description := fmt.Sprintf("Withholding applied %s", wh.Certificate)
	lines := []Line{
		DebitLine(payable, wh.Amount, ""),
		CreditLine(whPayable, wh.Amount, ""),
	}

	return s.writer.Post(period, wh.Date, description, models.OriginPayments,
		models.DocRef{Type: models.DocTypeWithholding, ID: wh.ID, Purpose: "applied"}, lines)
}
