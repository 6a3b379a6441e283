package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"erp-ledger/internal/models"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

// maxNumberRetries bounds how often an insert is retried when two writers
// race for the same entry number in one period.
const maxNumberRetries = 3

type EntryRepository struct {
	db *sqlx.DB
}

func NewEntryRepository(db *sqlx.DB) *EntryRepository {
	return &EntryRepository{db: db}
}

// Insert persists an entry and all its lines as one transaction. The
// per-period entry number is allocated inside the transaction with the
// period's rows locked; a duplicate-key conflict on (period_id,
// entry_number) from a concurrent writer rolls back and retries.
func (r *EntryRepository) Insert(entry *models.Entry, lines []models.EntryLine) error {
	var lastErr error
	for attempt := 0; attempt < maxNumberRetries; attempt++ {
		err := r.insertOnce(entry, lines)
		if err == nil {
			return nil
		}
		if !isDuplicateKey(err) {
			return err
		}
		lastErr = err
	}
	return fmt.Errorf("entry number allocation kept conflicting: %w", lastErr)
}

func (r *EntryRepository) insertOnce(entry *models.Entry, lines []models.EntryLine) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var maxNumber int64
	err = tx.Get(&maxNumber, `
		SELECT COALESCE(MAX(entry_number), 0)
		FROM ledger_entries
		WHERE period_id = ?
		FOR UPDATE`, entry.PeriodID)
	if err != nil {
		return err
	}
	entry.EntryNumber = maxNumber + 1

	// Manual entries carry no document reference; NULLs keep them out of
	// the idempotency unique key.
	result, err := tx.NamedExec(`
		INSERT INTO ledger_entries (period_id, entry_number, entry_date, description, origin, doc_type, doc_id, doc_purpose)
		VALUES (:period_id, :entry_number, :entry_date, :description, :origin,
		        NULLIF(:doc_type, ''),
		        NULLIF(:doc_id, '00000000-0000-0000-0000-000000000000'),
		        NULLIF(:doc_purpose, ''))`,
		entry)
	if err != nil {
		return err
	}
	entryID, err := result.LastInsertId()
	if err != nil {
		return err
	}
	entry.ID = entryID

	for i := range lines {
		lines[i].EntryID = entryID
	}
	_, err = tx.NamedExec(`
		INSERT INTO ledger_lines (entry_id, account_id, debit, credit, line_description)
		VALUES (:entry_id, :account_id, :debit, :credit, :line_description)`,
		lines)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func isDuplicateKey(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}

// FindByDocRef looks up an entry by its idempotency key. Returns nil when
// no entry carries the reference.
func (r *EntryRepository) FindByDocRef(ref models.DocRef) (*models.Entry, error) {
	var entry models.Entry
	query := `
		SELECT id,
		       period_id,
		       entry_number,
		       entry_date,
		       description,
		       origin,
		       COALESCE(doc_type, '') AS doc_type,
		       COALESCE(doc_id, '00000000-0000-0000-0000-000000000000') AS doc_id,
		       COALESCE(doc_purpose, '') AS doc_purpose,
		       created_at
		FROM ledger_entries
		WHERE doc_type = ? AND doc_id = ? AND doc_purpose = ?
		LIMIT 1`
	err := r.db.Get(&entry, query, ref.Type, ref.ID, ref.Purpose)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Balances returns every entry with its summed debit and credit sides.
func (r *EntryRepository) Balances() ([]models.EntryBalance, error) {
	var balances []models.EntryBalance
	query := `
		SELECT e.id AS entry_id,
		       e.period_id,
		       e.entry_number,
		       e.description,
		       COALESCE(SUM(l.debit), 0) AS total_debit,
		       COALESCE(SUM(l.credit), 0) AS total_credit
		FROM ledger_entries e
		LEFT JOIN ledger_lines l ON l.entry_id = e.id
		GROUP BY e.id, e.period_id, e.entry_number, e.description
		ORDER BY e.period_id, e.entry_number`
	err := r.db.Select(&balances, query)
	return balances, err
}

func (r *EntryRepository) CountByOrigin(origin string) (int, error) {
	var total int
	err := r.db.Get(&total, "SELECT COUNT(*) FROM ledger_entries WHERE origin = ?", origin)
	return total, err
}

func (r *EntryRepository) CountByDescriptionLike(substr string) (int, error) {
	var total int
	query := "SELECT COUNT(*) FROM ledger_entries WHERE LOWER(description) LIKE LOWER(?)"
	err := r.db.Get(&total, query, "%"+substr+"%")
	return total, err
}

func (r *EntryRepository) LinesByEntry(entryID int64) ([]models.EntryLine, error) {
	var lines []models.EntryLine
	query := "SELECT * FROM ledger_lines WHERE entry_id = ? ORDER BY id"
	err := r.db.Select(&lines, query, entryID)
	return lines, err
}

// TrialBalance aggregates posted debits and credits per postable account.
func (r *EntryRepository) TrialBalance() ([]models.TrialBalanceRow, error) {
	var rows []models.TrialBalanceRow
	query := `
		SELECT a.code AS account_code,
		       a.name AS account_name,
		       COALESCE(SUM(l.debit), 0) AS total_debit,
		       COALESCE(SUM(l.credit), 0) AS total_credit
		FROM ledger_lines l
		JOIN accounts a ON a.id = l.account_id
		GROUP BY a.code, a.name
		ORDER BY a.code`
	err := r.db.Select(&rows, query)
	return rows, err
}

// LedgerForAccount lists every posted line for one account in entry order.
func (r *EntryRepository) LedgerForAccount(accountCode string) ([]models.LedgerRow, error) {
	var rows []models.LedgerRow
	query := `
		SELECT e.entry_number,
		       e.entry_date,
		       e.description,
		       e.origin,
		       l.debit,
		       l.credit
		FROM ledger_lines l
		JOIN ledger_entries e ON e.id = l.entry_id
		JOIN accounts a ON a.id = l.account_id
		WHERE a.code = ?
		ORDER BY e.period_id, e.entry_number, l.id`
	err := r.db.Select(&rows, query, accountCode)
	return rows, err
}
