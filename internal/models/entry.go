package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Entry origin tags, used for reporting and audit coverage. Free-form
// categorical values, not an enforced enum.
const (
	OriginSales       = "SALES"
	OriginPurchases   = "PURCHASES"
	OriginCollections = "COLLECTIONS"
	OriginPayments    = "PAYMENTS"
	OriginOpening     = "OPENING"
)

// DocRef is the idempotency key tying a ledger entry to the business
// document that produced it. A zero DocRef means the entry was posted
// manually and is exempt from duplicate detection.
type DocRef struct {
	Type    DocType   `db:"doc_type" json:"doc_type"`
	ID      uuid.UUID `db:"doc_id" json:"doc_id"`
	Purpose string    `db:"doc_purpose" json:"doc_purpose"`
}

// IsZero reports whether the reference is empty.
func (r DocRef) IsZero() bool {
	return r.Type == "" && r.ID == uuid.Nil && r.Purpose == ""
}

// Entry is one balanced double-entry transaction. Entries are immutable
// once written; corrections are posted as new, inverse entries.
type Entry struct {
	ID          int64     `db:"id" json:"id"`
	PeriodID    int64     `db:"period_id" json:"period_id"`
	EntryNumber int64     `db:"entry_number" json:"entry_number"` // sequential within the period
	Date        time.Time `db:"entry_date" json:"entry_date"`
	Description string    `db:"description" json:"description"`
	Origin      string    `db:"origin" json:"origin"`
	DocType     DocType   `db:"doc_type" json:"doc_type"`
	DocID       uuid.UUID `db:"doc_id" json:"doc_id"`
	DocPurpose  string    `db:"doc_purpose" json:"doc_purpose"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// EntryLine is one debit-or-credit row within an entry. Amounts are
// non-negative; business logic sets exactly one side per line.
type EntryLine struct {
	ID          int64           `db:"id" json:"id"`
	EntryID     int64           `db:"entry_id" json:"entry_id"`
	AccountID   int64           `db:"account_id" json:"account_id"`
	Debit       decimal.Decimal `db:"debit" json:"debit"`
	Credit      decimal.Decimal `db:"credit" json:"credit"`
	Description string          `db:"line_description" json:"line_description"`
}

// EntryBalance is the per-entry debit/credit sum used by the auditor.
type EntryBalance struct {
	EntryID     int64           `db:"entry_id" json:"entry_id"`
	PeriodID    int64           `db:"period_id" json:"period_id"`
	EntryNumber int64           `db:"entry_number" json:"entry_number"`
	Description string          `db:"description" json:"description"`
	TotalDebit  decimal.Decimal `db:"total_debit" json:"total_debit"`
	TotalCredit decimal.Decimal `db:"total_credit" json:"total_credit"`
}

// Difference returns debit minus credit.
func (b EntryBalance) Difference() decimal.Decimal {
	return b.TotalDebit.Sub(b.TotalCredit)
}

// TrialBalanceRow aggregates posted debits and credits for one account.
type TrialBalanceRow struct {
	AccountCode string          `db:"account_code" json:"account_code"`
	AccountName string          `db:"account_name" json:"account_name"`
	TotalDebit  decimal.Decimal `db:"total_debit" json:"total_debit"`
	TotalCredit decimal.Decimal `db:"total_credit" json:"total_credit"`
}

// LedgerRow is one ledger line joined with its entry header, for the
// per-account general ledger report.
type LedgerRow struct {
	EntryNumber int64           `db:"entry_number" json:"entry_number"`
	Date        time.Time       `db:"entry_date" json:"entry_date"`
	Description string          `db:"description" json:"description"`
	Origin      string          `db:"origin" json:"origin"`
	Debit       decimal.Decimal `db:"debit" json:"debit"`
	Credit      decimal.Decimal `db:"credit" json:"credit"`
}
