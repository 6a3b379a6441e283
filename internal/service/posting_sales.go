package service

import (
	"fmt"

	"erp-ledger/internal/models"
)

// PostSale writes the revenue entry for a sale: the client owes the gross
// total, split into net revenue and VAT payable. When the sale's items
// carry cost data a second, cost-of-goods entry moves the sold merchandise
// value into expenses.
func (s *PostingService) PostSale(sale *models.Sale) (*models.Entry, error) {
	receivable, err := s.chart.Role(models.RoleAccountsReceivable)
	if err != nil {
		return nil, err
	}
	revenue, err := s.chart.Role(models.RoleSalesRevenue)
	if err != nil {
		return nil, err
	}
	vatOutput, err := s.chart.Role(models.RoleVATOutput)
	if err != nil {
		return nil, err
	}

	period, err := s.periods.PeriodFor(sale.Date)
	if err != nil {
		return nil, err
	}

	net, tax := s.splitTax(sale.Total)
	description := fmt.Sprintf("Sale %s - %s", sale.Number, sale.ClientName)
	lines := []Line{
		DebitLine(receivable, sale.Total, ""),
		CreditLine(revenue, net, ""),
		CreditLine(vatOutput, tax, ""),
	}

	entry, err := s.writer.Post(period, sale.Date, description, models.OriginSales,
		models.DocRef{Type: models.DocTypeSale, ID: sale.ID, Purpose: "invoice"}, lines)
	if err != nil {
		return nil, err
	}

	if err := s.postCostOfGoods(sale, period, description); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *PostingService) postCostOfGoods(sale *models.Sale, period *models.Period, saleDescription string) error {
	cost := sale.CostOfGoods()
	if !cost.IsPositive() {
		return nil
	}

	cogs, err := s.chart.Role(models.RoleCostOfGoodsSold)
	if err != nil {
		return err
	}
	inventory, err := s.chart.Role(models.RoleInventory)
	if err != nil {
		return err
	}

	lines := []Line{
		DebitLine(cogs, cost, ""),
		CreditLine(inventory, cost, ""),
	}
	_, err = s.writer.Post(period, sale.Date, saleDescription+" (cost of goods)", models.OriginSales,
		models.DocRef{Type: models.DocTypeSale, ID: sale.ID, Purpose: "cogs"}, lines)
	return err
}

// PostCreditNote reverses a sale: revenue and VAT are debited back and the
// client's balance is reduced. Net and tax are recomputed from the note's
// own total, mirroring the forward computation.
func (s *PostingService) PostCreditNote(note *models.CreditNote) (*models.Entry, error) {
	receivable, err := s.chart.Role(models.RoleAccountsReceivable)
	if err != nil {
		return nil, err
	}
	revenue, err := s.chart.Role(models.RoleSalesRevenue)
	if err != nil {
		return nil, err
	}
	vatOutput, err := s.chart.Role(models.RoleVATOutput)
	if err != nil {
		return nil, err
	}

	period, err := s.periods.PeriodFor(note.Date)
	if err != nil {
		return nil, err
	}

	net, tax := s.splitTax(note.Total)
	description := fmt.Sprintf("Credit note %s - %s", note.Number, note.ClientName)
	lines := []Line{
		DebitLine(revenue, net, ""),
		DebitLine(vatOutput, tax, ""),
		CreditLine(receivable, note.Total, ""),
	}

	return s.writer.Post(period, note.Date, description, models.OriginSales,
		models.DocRef{Type: models.DocTypeCreditNote, ID: note.ID, Purpose: "invoice"}, lines)
}

// PostDebitNote charges a client beyond the original invoice, split the
// same way as a sale.
func (s *PostingService) PostDebitNote(note *models.DebitNote) (*models.Entry, error) {
	receivable, err := s.chart.Role(models.RoleAccountsReceivable)
	if err != nil {
		return nil, err
	}
	revenue, err := s.chart.Role(models.RoleSalesRevenue)
	if err != nil {
		return nil, err
	}
	vatOutput, err := s.chart.Role(models.RoleVATOutput)
	if err != nil {
		return nil, err
	}

	period, err := s.periods.PeriodFor(note.Date)
	if err != nil {
		return nil, err
	}

	net, tax := s.splitTax(note.Total)
	description := fmt.Sprintf("Debit note %s - %s", note.Number, note.ClientName)
	lines := []Line{
		DebitLine(receivable, note.Total, ""),
		CreditLine(revenue, net, ""),
		CreditLine(vatOutput, tax, ""),
	}

	return s.writer.Post(period, note.Date, description, models.OriginSales,
		models.DocRef{Type: models.DocTypeDebitNote, ID: note.ID, Purpose: "invoice"}, lines)
}
