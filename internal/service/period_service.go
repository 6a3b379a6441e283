package service

import (
	"fmt"
	"time"

	"erp-ledger/internal/models"
)

// PeriodStore is the fiscal-period lookup surface the gate needs.
type PeriodStore interface {
	OpenCovering(date time.Time) ([]models.Period, error)
}

// PeriodService gates postings on the fiscal-period setup.
type PeriodService struct {
	periods PeriodStore
}

func NewPeriodService(periods PeriodStore) *PeriodService {
	return &PeriodService{periods: periods}
}

// PeriodFor returns the single open period covering the date. Zero matches
// means the setup is missing; more than one means it is ambiguous. Both are
// treated the same: no usable period.
func (s *PeriodService) PeriodFor(date time.Time) (*models.Period, error) {
	periods, err := s.periods.OpenCovering(date)
	if err != nil {
		return nil, fmt.Errorf("open period lookup for %s: %w", date.Format("2006-01-02"), err)
	}
	if len(periods) != 1 {
		return nil, fmt.Errorf("%w: %s (found %d)", ErrNoOpenPeriod, date.Format("2006-01-02"), len(periods))
	}
	return &periods[0], nil
}
