package service

import (
	"fmt"
	"time"

	"erp-ledger/internal/models"
	"erp-ledger/internal/utils"

	"github.com/shopspring/decimal"
)

// EntryStore persists balanced entries atomically and supports the
// idempotency lookup.
type EntryStore interface {
	Insert(entry *models.Entry, lines []models.EntryLine) error
	FindByDocRef(ref models.DocRef) (*models.Entry, error)
}

// Line is one debit-or-credit leg handed to the writer. Exactly one side
// must be positive.
type Line struct {
	Account     *models.Account
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Description string
}

// DebitLine builds a debit leg.
func DebitLine(account *models.Account, amount decimal.Decimal, description string) Line {
	return Line{Account: account, Debit: amount.Round(2), Description: description}
}

// CreditLine builds a credit leg.
func CreditLine(account *models.Account, amount decimal.Decimal, description string) Line {
	return Line{Account: account, Credit: amount.Round(2), Description: description}
}

// LedgerWriter validates and persists balanced entries. It re-checks the
// balance invariant itself rather than trusting translators.
type LedgerWriter struct {
	entries EntryStore
}

func NewLedgerWriter(entries EntryStore) *LedgerWriter {
	return &LedgerWriter{entries: entries}
}

// Post writes one balanced entry with all its lines as a single atomic
// unit, allocating the next entry number within the period. When docRef is
// set and an entry already carries it, the existing entry is returned and
// nothing is written.
func (w *LedgerWriter) Post(period *models.Period, date time.Time, description, origin string, docRef models.DocRef, lines []Line) (*models.Entry, error) {
	log := utils.ComponentLogger("ledger")

	if !docRef.IsZero() {
		existing, err := w.entries.FindByDocRef(docRef)
		if err != nil {
			return nil, fmt.Errorf("idempotency lookup: %w", err)
		}
		if existing != nil {
			log.WithFields(map[string]interface{}{
				"doc_type": docRef.Type,
				"doc_id":   docRef.ID,
				"purpose":  docRef.Purpose,
			}).Debug("entry already posted, skipping")
			return existing, nil
		}
	}

	if err := validateLines(lines); err != nil {
		return nil, err
	}

	entry := &models.Entry{
		PeriodID:    period.ID,
		Date:        date,
		Description: description,
		Origin:      origin,
		DocType:     docRef.Type,
		DocID:       docRef.ID,
		DocPurpose:  docRef.Purpose,
	}
	entryLines := make([]models.EntryLine, 0, len(lines))
	for _, line := range lines {
		entryLines = append(entryLines, models.EntryLine{
			AccountID:   line.Account.ID,
			Debit:       line.Debit.Round(2),
			Credit:      line.Credit.Round(2),
			Description: line.Description,
		})
	}

	if err := w.entries.Insert(entry, entryLines); err != nil {
		return nil, fmt.Errorf("persist entry %q: %w", description, err)
	}

	log.WithFields(map[string]interface{}{
		"period":      period.Label,
		"number":      entry.EntryNumber,
		"origin":      origin,
		"description": description,
	}).Info("entry posted")
	return entry, nil
}

func validateLines(lines []Line) error {
	if len(lines) < 2 {
		return fmt.Errorf("%w: got %d", ErrTooFewLines, len(lines))
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for i, line := range lines {
		if line.Account == nil {
			return fmt.Errorf("%w: line %d has no account", ErrInvalidLine, i)
		}
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return fmt.Errorf("%w: line %d has a negative amount", ErrInvalidLine, i)
		}
		hasDebit := line.Debit.IsPositive()
		hasCredit := line.Credit.IsPositive()
		if hasDebit == hasCredit {
			return fmt.Errorf("%w: line %d (account %s)", ErrInvalidLine, i, line.Account.Code)
		}
		totalDebit = totalDebit.Add(line.Debit.Round(2))
		totalCredit = totalCredit.Add(line.Credit.Round(2))
	}

	if !totalDebit.Equal(totalCredit) {
		return fmt.Errorf("%w: debits %s, credits %s",
			ErrUnbalanced, totalDebit.StringFixed(2), totalCredit.StringFixed(2))
	}
	return nil
}
