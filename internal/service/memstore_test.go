package service

import (
	"strings"
	"sync"
	"testing"
	"time"

	"erp-ledger/internal/config"
	"erp-ledger/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory stand-in for the sqlx repositories, so the
// engine's logic is exercised without a database. Numbering is allocated
// under a mutex, matching the serialized allocation of the real store.
type memStore struct {
	mu       sync.Mutex
	accounts []models.Account
	periods  []models.Period
	entries  []models.Entry
	lines    map[int64][]models.EntryLine
	nextID   int64
}

func newMemStore() *memStore {
	return &memStore{lines: make(map[int64][]models.EntryLine)}
}

func (m *memStore) addAccount(code, name string, kind models.AccountKind, postable bool) {
	m.accounts = append(m.accounts, models.Account{
		ID:       int64(len(m.accounts) + 1),
		Code:     code,
		Name:     name,
		Kind:     kind,
		Postable: postable,
		Level:    models.CodeLevel(code),
	})
}

func (m *memStore) addPeriod(label string, start, end time.Time, closed bool) {
	m.periods = append(m.periods, models.Period{
		ID:        int64(len(m.periods) + 1),
		Label:     label,
		StartDate: start,
		EndDate:   end,
		Closed:    closed,
	})
}

func (m *memStore) FindPostableByCode(code string) (*models.Account, error) {
	for i := range m.accounts {
		if m.accounts[i].Code == code && m.accounts[i].Postable {
			return &m.accounts[i], nil
		}
	}
	return nil, nil
}

func (m *memStore) SearchPostableByName(q string) ([]models.Account, error) {
	var out []models.Account
	needle := strings.ToLower(q)
	for _, a := range m.accounts {
		if a.Postable && strings.Contains(strings.ToLower(a.Name), needle) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memStore) OpenCovering(date time.Time) ([]models.Period, error) {
	var out []models.Period
	for _, p := range m.periods {
		if !p.Closed && p.Covers(date) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memStore) Insert(entry *models.Entry, lines []models.EntryLine) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var maxNumber int64
	for _, e := range m.entries {
		if e.PeriodID == entry.PeriodID && e.EntryNumber > maxNumber {
			maxNumber = e.EntryNumber
		}
	}
	m.nextID++
	entry.ID = m.nextID
	entry.EntryNumber = maxNumber + 1

	for i := range lines {
		lines[i].EntryID = entry.ID
	}
	m.entries = append(m.entries, *entry)
	m.lines[entry.ID] = lines
	return nil
}

func (m *memStore) FindByDocRef(ref models.DocRef) (*models.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.entries {
		e := &m.entries[i]
		if e.DocType == ref.Type && e.DocID == ref.ID && e.DocPurpose == ref.Purpose {
			return e, nil
		}
	}
	return nil, nil
}

func (m *memStore) Balances() ([]models.EntryBalance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.EntryBalance, 0, len(m.entries))
	for _, e := range m.entries {
		b := models.EntryBalance{
			EntryID:     e.ID,
			PeriodID:    e.PeriodID,
			EntryNumber: e.EntryNumber,
			Description: e.Description,
			TotalDebit:  decimal.Zero,
			TotalCredit: decimal.Zero,
		}
		for _, l := range m.lines[e.ID] {
			b.TotalDebit = b.TotalDebit.Add(l.Debit)
			b.TotalCredit = b.TotalCredit.Add(l.Credit)
		}
		out = append(out, b)
	}
	return out, nil
}

func (m *memStore) CountByOrigin(origin string) (int, error) {
	n := 0
	for _, e := range m.entries {
		if e.Origin == origin {
			n++
		}
	}
	return n, nil
}

func (m *memStore) CountByDescriptionLike(substr string) (int, error) {
	n := 0
	needle := strings.ToLower(substr)
	for _, e := range m.entries {
		if strings.Contains(strings.ToLower(e.Description), needle) {
			n++
		}
	}
	return n, nil
}

func (m *memStore) TrialBalance() ([]models.TrialBalanceRow, error) {
	byAccount := make(map[int64]*models.TrialBalanceRow)
	var order []int64
	for _, e := range m.entries {
		for _, l := range m.lines[e.ID] {
			row, ok := byAccount[l.AccountID]
			if !ok {
				account := m.accountByID(l.AccountID)
				row = &models.TrialBalanceRow{
					AccountCode: account.Code,
					AccountName: account.Name,
					TotalDebit:  decimal.Zero,
					TotalCredit: decimal.Zero,
				}
				byAccount[l.AccountID] = row
				order = append(order, l.AccountID)
			}
			row.TotalDebit = row.TotalDebit.Add(l.Debit)
			row.TotalCredit = row.TotalCredit.Add(l.Credit)
		}
	}
	out := make([]models.TrialBalanceRow, 0, len(order))
	for _, id := range order {
		out = append(out, *byAccount[id])
	}
	return out, nil
}

func (m *memStore) LedgerForAccount(accountCode string) ([]models.LedgerRow, error) {
	var out []models.LedgerRow
	for _, e := range m.entries {
		for _, l := range m.lines[e.ID] {
			if m.accountByID(l.AccountID).Code == accountCode {
				out = append(out, models.LedgerRow{
					EntryNumber: e.EntryNumber,
					Date:        e.Date,
					Description: e.Description,
					Origin:      e.Origin,
					Debit:       l.Debit,
					Credit:      l.Credit,
				})
			}
		}
	}
	return out, nil
}

func (m *memStore) accountByID(id int64) models.Account {
	for _, a := range m.accounts {
		if a.ID == id {
			return a
		}
	}
	return models.Account{}
}

// linesFor returns the persisted lines of an entry.
func (m *memStore) linesFor(entryID int64) []models.EntryLine {
	return m.lines[entryID]
}

// corruptLineDebit overwrites one line's debit, for auditor tests.
func (m *memStore) corruptLineDebit(entryID int64, lineIndex int, debit decimal.Decimal) {
	m.lines[entryID][lineIndex].Debit = debit
}

// testEnv wires the whole engine over a memStore with the default chart
// seeded and FY2025 open.
type testEnv struct {
	store   *memStore
	chart   *ChartService
	periods *PeriodService
	writer  *LedgerWriter
	posting *PostingService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := newMemStore()
	for _, def := range defaultChart {
		store.addAccount(def.code, def.name, def.kind, isLeaf(def.code))
	}
	store.addPeriod("FY2025", date(2025, 1, 1), date(2025, 12, 31), false)

	chart := NewChartService(store)
	require.NoError(t, chart.BindRoles(DefaultRoleCatalog))

	periods := NewPeriodService(store)
	writer := NewLedgerWriter(store)
	cfg := &config.Config{
		VATRate:     dec("0.21"),
		CardFeeRate: dec("0.03"),
	}
	return &testEnv{
		store:   store,
		chart:   chart,
		periods: periods,
		writer:  writer,
		posting: NewPostingService(chart, periods, writer, cfg),
	}
}

// requireBalanced asserts the central invariant for one persisted entry.
func (env *testEnv) requireBalanced(t *testing.T, entry *models.Entry) {
	t.Helper()
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, l := range env.store.linesFor(entry.ID) {
		totalDebit = totalDebit.Add(l.Debit)
		totalCredit = totalCredit.Add(l.Credit)
	}
	require.True(t, totalDebit.Equal(totalCredit),
		"entry %d: debits %s != credits %s", entry.EntryNumber,
		totalDebit.StringFixed(2), totalCredit.StringFixed(2))
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
