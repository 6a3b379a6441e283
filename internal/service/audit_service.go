package service

import (
	"fmt"
	"sort"
	"time"

	"erp-ledger/internal/models"
	"erp-ledger/internal/utils"

	"github.com/shopspring/decimal"
)

// AuditStore is the read-only entry access the auditor needs.
type AuditStore interface {
	Balances() ([]models.EntryBalance, error)
	CountByOrigin(origin string) (int, error)
	CountByDescriptionLike(substr string) (int, error)
}

// DocumentCounts carries the business-document totals owned by the
// surrounding modules, for cross-checking against generated entries.
type DocumentCounts struct {
	Sales         int
	Purchases     int
	Checks        int
	Receipts      int
	CashMovements int
}

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityError    Severity = "error"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// Finding is one audit observation. Difference is only set for balance
// violations (debits minus credits).
type Finding struct {
	Check      string
	Severity   Severity
	Message    string
	Difference decimal.Decimal
}

// Report collects every finding of an audit run. Checks never stop at the
// first violation; all offenders are listed.
type Report struct {
	AsOf           time.Time
	EntriesChecked int
	Findings       []Finding
}

// Violations counts critical and error findings.
func (r *Report) Violations() int {
	n := 0
	for _, f := range r.Findings {
		if f.Severity == SeverityCritical || f.Severity == SeverityError {
			n++
		}
	}
	return n
}

// Coverage below this share of documents is flagged as a warning.
const coverageWarningThreshold = 90.0

// AuditService runs the read-only integrity checks over the persisted
// ledger. It never mutates anything.
type AuditService struct {
	entries AuditStore
	chart   *ChartService
	periods *PeriodService
	catalog map[models.AccountRole]string
}

func NewAuditService(entries AuditStore, chart *ChartService, periods *PeriodService, catalog map[models.AccountRole]string) *AuditService {
	if catalog == nil {
		catalog = DefaultRoleCatalog
	}
	return &AuditService{entries: entries, chart: chart, periods: periods, catalog: catalog}
}

// Run executes every audit check for the given reference date and the
// document counts supplied by the surrounding modules.
func (s *AuditService) Run(asOf time.Time, docs DocumentCounts) (*Report, error) {
	log := utils.ComponentLogger("audit")
	report := &Report{AsOf: asOf}

	s.checkOpenPeriod(report, asOf)
	s.checkRequiredAccounts(report)
	if err := s.checkBalances(report); err != nil {
		return nil, err
	}
	if err := s.checkCoverage(report, docs); err != nil {
		return nil, err
	}
	if err := s.checkHeuristicCoverage(report, docs); err != nil {
		return nil, err
	}

	log.WithFields(map[string]interface{}{
		"entries":    report.EntriesChecked,
		"findings":   len(report.Findings),
		"violations": report.Violations(),
	}).Info("audit run finished")
	return report, nil
}

func (s *AuditService) checkOpenPeriod(report *Report, asOf time.Time) {
	if _, err := s.periods.PeriodFor(asOf); err != nil {
		report.Findings = append(report.Findings, Finding{
			Check:    "open_period",
			Severity: SeverityCritical,
			Message:  fmt.Sprintf("no single open fiscal period covers %s", asOf.Format("2006-01-02")),
		})
	}
}

func (s *AuditService) checkRequiredAccounts(report *Report) {
	names := make([]string, 0, len(s.catalog))
	for _, name := range s.catalog {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if _, err := s.chart.Resolve(name); err != nil {
			report.Findings = append(report.Findings, Finding{
				Check:    "required_accounts",
				Severity: SeverityError,
				Message:  fmt.Sprintf("required account %q cannot be resolved", name),
			})
		}
	}
}

func (s *AuditService) checkBalances(report *Report) error {
	balances, err := s.entries.Balances()
	if err != nil {
		return fmt.Errorf("load entry balances: %w", err)
	}
	report.EntriesChecked = len(balances)

	tolerance := decimal.New(1, -2) // 0.01
	for _, b := range balances {
		diff := b.Difference()
		if diff.Abs().GreaterThan(tolerance) {
			report.Findings = append(report.Findings, Finding{
				Check:    "entry_balance",
				Severity: SeverityError,
				Message: fmt.Sprintf("entry %d (period %d) does not balance: debits %s, credits %s",
					b.EntryNumber, b.PeriodID, b.TotalDebit.StringFixed(2), b.TotalCredit.StringFixed(2)),
				Difference: diff,
			})
		}
	}
	return nil
}

func (s *AuditService) checkCoverage(report *Report, docs DocumentCounts) error {
	type coverage struct {
		origin string
		docs   int
		label  string
	}
	for _, c := range []coverage{
		{models.OriginSales, docs.Sales, "sales"},
		{models.OriginPurchases, docs.Purchases, "purchases"},
	} {
		if c.docs == 0 {
			report.Findings = append(report.Findings, Finding{
				Check:    "coverage",
				Severity: SeverityInfo,
				Message:  fmt.Sprintf("no %s documents reported, coverage not computed", c.label),
			})
			continue
		}
		entries, err := s.entries.CountByOrigin(c.origin)
		if err != nil {
			return fmt.Errorf("count entries by origin %s: %w", c.origin, err)
		}
		pct := float64(entries) / float64(c.docs) * 100
		severity := SeverityInfo
		if pct < coverageWarningThreshold {
			severity = SeverityWarning
		}
		report.Findings = append(report.Findings, Finding{
			Check:    "coverage",
			Severity: severity,
			Message:  fmt.Sprintf("%s coverage %.1f%% (%d entries / %d documents)", c.label, pct, entries, c.docs),
		})
	}
	return nil
}

// checkHeuristicCoverage reports best-effort counts for document kinds
// whose entries are only recognizable by description wording.
func (s *AuditService) checkHeuristicCoverage(report *Report, docs DocumentCounts) error {
	type heuristic struct {
		substr string
		docs   int
		label  string
	}
	for _, h := range []heuristic{
		{"check", docs.Checks, "check"},
		{"receipt", docs.Receipts, "receipt"},
		{"cash movement", docs.CashMovements, "cash movement"},
	} {
		entries, err := s.entries.CountByDescriptionLike(h.substr)
		if err != nil {
			return fmt.Errorf("count entries matching %q: %w", h.substr, err)
		}
		report.Findings = append(report.Findings, Finding{
			Check:    "heuristic_coverage",
			Severity: SeverityInfo,
			Message:  fmt.Sprintf("%d entries mention %q against %d %s documents", entries, h.substr, h.docs, h.label),
		})
	}
	return nil
}
