package repository

import (
	"database/sql"
	"errors"

	"erp-ledger/internal/models"

	"github.com/jmoiron/sqlx"
)

type AccountRepository struct {
	db *sqlx.DB
}

func NewAccountRepository(db *sqlx.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) FindByCode(code string) (*models.Account, error) {
	var account models.Account
	query := "SELECT * FROM accounts WHERE code = ? LIMIT 1"
	err := r.db.Get(&account, query, code)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepository) FindPostableByCode(code string) (*models.Account, error) {
	var account models.Account
	query := "SELECT * FROM accounts WHERE code = ? AND postable = TRUE LIMIT 1"
	err := r.db.Get(&account, query, code)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// SearchPostableByName returns postable accounts whose name contains the
// query, case-insensitively, in primary-key (insertion) order.
func (r *AccountRepository) SearchPostableByName(q string) ([]models.Account, error) {
	var accounts []models.Account
	query := `
		SELECT *
		FROM accounts
		WHERE postable = TRUE
		  AND LOWER(name) LIKE LOWER(?)
		ORDER BY id`
	err := r.db.Select(&accounts, query, "%"+q+"%")
	return accounts, err
}

func (r *AccountRepository) FindAll() ([]models.Account, error) {
	var accounts []models.Account
	query := "SELECT * FROM accounts ORDER BY code"
	err := r.db.Select(&accounts, query)
	return accounts, err
}

func (r *AccountRepository) Count() (int, error) {
	var total int
	err := r.db.Get(&total, "SELECT COUNT(*) FROM accounts")
	return total, err
}

func (r *AccountRepository) Create(account *models.Account) error {
	query := `INSERT INTO accounts (code, name, kind, postable, level, parent_id)
	          VALUES (:code, :name, :kind, :postable, :level, :parent_id)`
	result, err := r.db.NamedExec(query, account)
	if err != nil {
		return err
	}
	id, _ := result.LastInsertId()
	account.ID = id
	return nil
}

func (r *AccountRepository) SetParent(id, parentID int64) error {
	_, err := r.db.Exec("UPDATE accounts SET parent_id = ? WHERE id = ?", parentID, id)
	return err
}

func (r *AccountRepository) BulkInsert(accounts []models.Account) error {
	if len(accounts) == 0 {
		return nil
	}

	query := `INSERT INTO accounts (code, name, kind, postable, level, parent_id)
	          VALUES (:code, :name, :kind, :postable, :level, :parent_id)
	          ON DUPLICATE KEY UPDATE
	          name = VALUES(name),
	          kind = VALUES(kind),
	          postable = VALUES(postable),
	          level = VALUES(level),
	          parent_id = VALUES(parent_id)`
	_, err := r.db.NamedExec(query, accounts)
	return err
}
