package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DocType identifies the kind of business document behind a ledger entry.
type DocType string

const (
	DocTypeSale         DocType = "sale"
	DocTypePurchase     DocType = "purchase"
	DocTypeCheck        DocType = "check"
	DocTypeReceipt      DocType = "receipt"
	DocTypeCashMovement DocType = "cash_movement"
	DocTypeBankMovement DocType = "bank_movement"
	DocTypeCashCount    DocType = "cash_count"
	DocTypeCreditNote   DocType = "credit_note"
	DocTypeDebitNote    DocType = "debit_note"
	DocTypeWithholding  DocType = "withholding"
)

// Business documents are owned by the surrounding sales/purchases/cash
// modules. The posting engine only reads their monetary fields after they
// have been persisted; it never creates, updates, or deletes them.

// Sale is an issued sales invoice. Total is the gross (VAT-inclusive)
// amount. Items carry cost data for the optional cost-of-goods leg.
type Sale struct {
	ID         uuid.UUID       `json:"id"`
	Number     string          `json:"number"`
	Date       time.Time       `json:"date"`
	ClientName string          `json:"client_name"`
	Total      decimal.Decimal `json:"total"`
	Items      []SaleItem      `json:"items"`
}

type SaleItem struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"` // zero when cost tracking is off
}

// CostOfGoods returns the summed quantity times unit cost across items.
func (s *Sale) CostOfGoods() decimal.Decimal {
	total := decimal.Zero
	for _, it := range s.Items {
		total = total.Add(it.Quantity.Mul(it.UnitCost))
	}
	return total.Round(2)
}

// Purchase is a received supplier invoice, gross total.
type Purchase struct {
	ID           uuid.UUID       `json:"id"`
	Number       string          `json:"number"`
	Date         time.Time       `json:"date"`
	ProviderName string          `json:"provider_name"`
	Total        decimal.Decimal `json:"total"`
}

// Check covers both third-party checks received from clients and own
// checks issued to providers. For own checks, DueDate after IssueDate
// marks a post-dated (deferred) check.
type Check struct {
	ID        uuid.UUID       `json:"id"`
	Number    string          `json:"number"`
	BankName  string          `json:"bank_name"`
	Amount    decimal.Decimal `json:"amount"`
	IssueDate time.Time       `json:"issue_date"`
	DueDate   time.Time       `json:"due_date"`
}

// PostDated reports whether the check's due date falls after its issue date.
func (c *Check) PostDated() bool {
	return c.DueDate.After(c.IssueDate)
}

// ReceiptDirection distinguishes collections from clients and payments
// to providers.
type ReceiptDirection string

const (
	ReceiptCollection ReceiptDirection = "collection"
	ReceiptPayment    ReceiptDirection = "payment"
)

// Receipt consolidates one collection or payment settled through one or
// more payment-method lines.
type Receipt struct {
	ID        uuid.UUID        `json:"id"`
	Number    string           `json:"number"`
	Date      time.Time        `json:"date"`
	Direction ReceiptDirection `json:"direction"`
	PartyName string           `json:"party_name"`
	Items     []ReceiptItem    `json:"items"`
}

// ReceiptItem is one payment-method line. Method is an account identifier
// (code or name) resolvable against the chart of accounts.
type ReceiptItem struct {
	Method string          `json:"method"`
	Amount decimal.Decimal `json:"amount"`
}

// Total sums the receipt's payment-method lines.
func (r *Receipt) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range r.Items {
		total = total.Add(it.Amount)
	}
	return total.Round(2)
}

// CashMovementKind is the direction of a manual cash movement.
type CashMovementKind string

const (
	CashMovementIncome  CashMovementKind = "income"
	CashMovementExpense CashMovementKind = "expense"
)

// CashMovementPurpose selects the counterpart account for a manual cash
// movement. The caller supplies it explicitly; the engine never infers it
// from the description text.
type CashMovementPurpose string

const (
	PurposeOpeningFund     CashMovementPurpose = "opening_fund"
	PurposeOwnerWithdrawal CashMovementPurpose = "owner_withdrawal"
	PurposeOther           CashMovementPurpose = "other"
)

// CashMovement is a manual cash-drawer movement outside the document flow.
type CashMovement struct {
	ID          uuid.UUID           `json:"id"`
	Date        time.Time           `json:"date"`
	Kind        CashMovementKind    `json:"kind"`
	Purpose     CashMovementPurpose `json:"purpose"`
	Amount      decimal.Decimal     `json:"amount"`
	Description string              `json:"description"`
}

// BankMovementKind follows bank-statement convention: a credit increases
// the bank balance, a debit decreases it.
type BankMovementKind string

const (
	BankMovementCredit BankMovementKind = "credit"
	BankMovementDebit  BankMovementKind = "debit"
)

// BankMovement is a manual bank-account movement (fees, interest,
// transfers outside the document flow).
type BankMovement struct {
	ID          uuid.UUID        `json:"id"`
	Date        time.Time        `json:"date"`
	Kind        BankMovementKind `json:"kind"`
	Amount      decimal.Decimal  `json:"amount"`
	Description string           `json:"description"`
}

// CashCount records a drawer count. Difference is counted minus expected:
// negative for a shortage, positive for an overage.
type CashCount struct {
	ID         uuid.UUID       `json:"id"`
	Date       time.Time       `json:"date"`
	Difference decimal.Decimal `json:"difference"`
}

// CreditNote reverses a sale (fully or partially), gross total.
type CreditNote struct {
	ID         uuid.UUID       `json:"id"`
	Number     string          `json:"number"`
	Date       time.Time       `json:"date"`
	ClientName string          `json:"client_name"`
	Total      decimal.Decimal `json:"total"`
}

// DebitNote charges a client beyond the original invoice, gross total.
type DebitNote struct {
	ID         uuid.UUID       `json:"id"`
	Number     string          `json:"number"`
	Date       time.Time       `json:"date"`
	ClientName string          `json:"client_name"`
	Total      decimal.Decimal `json:"total"`
}

// Withholding is a tax amount retained at settlement time, either
// suffered when collecting from a client or applied when paying a vendor.
type Withholding struct {
	ID          uuid.UUID       `json:"id"`
	Date        time.Time       `json:"date"`
	Certificate string          `json:"certificate"`
	Amount      decimal.Decimal `json:"amount"`
}
