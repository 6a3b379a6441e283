package repository

import (
	"time"

	"erp-ledger/internal/models"

	"github.com/jmoiron/sqlx"
)

type PeriodRepository struct {
	db *sqlx.DB
}

func NewPeriodRepository(db *sqlx.DB) *PeriodRepository {
	return &PeriodRepository{db: db}
}

// OpenCovering returns every open period whose inclusive date range covers
// the given date. Callers expect exactly one; zero or several means the
// period setup is unusable for that date.
func (r *PeriodRepository) OpenCovering(date time.Time) ([]models.Period, error) {
	var periods []models.Period
	query := `
		SELECT *
		FROM fiscal_periods
		WHERE closed = FALSE
		  AND start_date <= ?
		  AND end_date >= ?
		ORDER BY id`
	day := date.Format("2006-01-02")
	err := r.db.Select(&periods, query, day, day)
	return periods, err
}

func (r *PeriodRepository) FindAll() ([]models.Period, error) {
	var periods []models.Period
	query := "SELECT * FROM fiscal_periods ORDER BY start_date"
	err := r.db.Select(&periods, query)
	return periods, err
}

func (r *PeriodRepository) Create(period *models.Period) error {
	query := `INSERT INTO fiscal_periods (label, start_date, end_date, closed)
	          VALUES (:label, :start_date, :end_date, :closed)`
	result, err := r.db.NamedExec(query, period)
	if err != nil {
		return err
	}
	id, _ := result.LastInsertId()
	period.ID = id
	return nil
}

func (r *PeriodRepository) Close(id int64) error {
	_, err := r.db.Exec("UPDATE fiscal_periods SET closed = TRUE WHERE id = ?", id)
	return err
}

func (r *PeriodRepository) Count() (int, error) {
	var total int
	err := r.db.Get(&total, "SELECT COUNT(*) FROM fiscal_periods")
	return total, err
}
