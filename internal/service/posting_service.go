package service

import (
	"erp-ledger/internal/config"
	"erp-ledger/internal/models"

	"github.com/shopspring/decimal"
)

// PostingService translates business documents into balanced ledger
// entries. Every translator resolves its accounts and the fiscal period
// first and aborts the whole translation on any configuration gap; it
// never posts a partial or guessed entry.
type PostingService struct {
	chart       *ChartService
	periods     *PeriodService
	writer      *LedgerWriter
	vatRate     decimal.Decimal
	cardFeeRate decimal.Decimal
}

func NewPostingService(chart *ChartService, periods *PeriodService, writer *LedgerWriter, cfg *config.Config) *PostingService {
	return &PostingService{
		chart:       chart,
		periods:     periods,
		writer:      writer,
		vatRate:     cfg.VATRate,
		cardFeeRate: cfg.CardFeeRate,
	}
}

// splitTax divides a gross (tax-inclusive) total into net and tax at the
// configured VAT rate. The net is rounded once at the end and the tax is
// the remainder, so net + tax always reproduces the total. Reversals call
// this again on their own total instead of copying stored values.
func (s *PostingService) splitTax(total decimal.Decimal) (net, tax decimal.Decimal) {
	net = total.Div(decimal.NewFromInt(1).Add(s.vatRate)).Round(2)
	tax = total.Sub(net)
	return net, tax
}

// counterpartOr returns the bound account for a role, falling back to the
// suspense account for movements whose dedicated account is not set up.
func (s *PostingService) counterpartOr(role models.AccountRole) (*models.Account, error) {
	if s.chart.RoleBound(role) {
		return s.chart.Role(role)
	}
	return s.chart.Role(models.RoleSuspense)
}
