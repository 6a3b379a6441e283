package service

import (
	"testing"

	"erp-ledger/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_ExactCode(t *testing.T) {
	env := newTestEnv(t)

	account, err := env.chart.Resolve("1.1.01.001")
	require.NoError(t, err)
	assert.Equal(t, "Cash", account.Name)
}

func TestResolve_NonPostableCodeFallsThrough(t *testing.T) {
	env := newTestEnv(t)

	// "1.1.01" is a grouping node; the code fast path must skip it. The
	// identifier then fails the name search too.
	_, err := env.chart.Resolve("1.1.01")
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestResolve_ExactNamePreferred(t *testing.T) {
	store := newMemStore()
	store.addAccount("1.1", "Cash and Banks", models.KindAsset, true)
	store.addAccount("1.2", "Cash", models.KindAsset, true)
	chart := NewChartService(store)

	account, err := chart.Resolve("cash")
	require.NoError(t, err)
	assert.Equal(t, "1.2", account.Code, "the unique exact name match wins over earlier substring matches")
}

func TestResolve_FirstInInsertionOrder(t *testing.T) {
	store := newMemStore()
	store.addAccount("1.1", "Cash Drawer One", models.KindAsset, true)
	store.addAccount("1.2", "Cash Drawer Two", models.KindAsset, true)
	chart := NewChartService(store)

	account, err := chart.Resolve("cash drawer")
	require.NoError(t, err)
	assert.Equal(t, "1.1", account.Code)
}

func TestResolve_CaseInsensitive(t *testing.T) {
	env := newTestEnv(t)

	account, err := env.chart.Resolve("aCCOUNTS rECEIVABLE")
	require.NoError(t, err)
	assert.Equal(t, "Accounts Receivable", account.Name)
}

func TestResolve_NotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.chart.Resolve("No Such Account")
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestBindRoles_ReportsEveryMissingRole(t *testing.T) {
	store := newMemStore()
	store.addAccount("1.1", "Cash", models.KindAsset, true)
	chart := NewChartService(store)

	catalog := map[models.AccountRole]string{
		models.RoleCash:         "Cash",
		models.RoleSalesRevenue: "Sales",
		models.RoleVATOutput:    "VAT Output",
	}
	err := chart.BindRoles(catalog)
	require.ErrorIs(t, err, ErrAccountNotFound)
	assert.Contains(t, err.Error(), "sales_revenue")
	assert.Contains(t, err.Error(), "vat_output")
	assert.NotContains(t, err.Error(), "Cash (")
}

func TestRole_Unbound(t *testing.T) {
	chart := NewChartService(newMemStore())

	_, err := chart.Role(models.RoleCash)
	assert.ErrorIs(t, err, ErrRoleNotBound)
}

func TestBankAccount_ByNameWithFallback(t *testing.T) {
	env := newTestEnv(t)

	// No dedicated account matches the bank name, so the generic bank
	// role is used.
	account, err := env.chart.BankAccount("Banco Provincia")
	require.NoError(t, err)
	assert.Equal(t, "Bank Current Account", account.Name)

	// A dedicated account wins when it exists.
	env.store.addAccount("1.1.01.005", "Banco Provincia Checking", models.KindAsset, true)
	account, err = env.chart.BankAccount("Banco Provincia")
	require.NoError(t, err)
	assert.Equal(t, "Banco Provincia Checking", account.Name)
}
