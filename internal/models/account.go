package models

import (
	"strings"
	"time"
)

// AccountKind classifies nodes of the chart of accounts.
type AccountKind string

const (
	KindAsset     AccountKind = "ASSET"
	KindLiability AccountKind = "LIABILITY"
	KindEquity    AccountKind = "EQUITY"
	KindIncome    AccountKind = "INCOME"
	KindExpense   AccountKind = "EXPENSE"
)

// Account is one node of the hierarchical chart of accounts. Only postable
// (leaf) accounts may be referenced by ledger lines; the rest exist to group
// children in reports.
type Account struct {
	ID        int64       `db:"id" json:"id"`
	Code      string      `db:"code" json:"code"` // dotted hierarchical code, e.g. "1.1.01.001"
	Name      string      `db:"name" json:"name"`
	Kind      AccountKind `db:"kind" json:"kind"`
	Postable  bool        `db:"postable" json:"postable"`
	Level     int         `db:"level" json:"level"` // segment count of Code
	ParentID  *int64      `db:"parent_id" json:"parent_id"`
	CreatedAt time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt time.Time   `db:"updated_at" json:"updated_at"`
}

// CodeLevel returns the depth encoded in a dotted account code.
func CodeLevel(code string) int {
	if code == "" {
		return 0
	}
	return strings.Count(code, ".") + 1
}

// ParentCode returns the code minus its last dotted segment, or "" for roots.
func ParentCode(code string) string {
	i := strings.LastIndex(code, ".")
	if i < 0 {
		return ""
	}
	return code[:i]
}

// AccountRole names a well-known account consumed by the posting engine.
// Roles are bound to concrete accounts once at startup; translators never
// look accounts up by free-text name.
type AccountRole string

const (
	RoleAccountsReceivable    AccountRole = "accounts_receivable"
	RoleAccountsPayable       AccountRole = "accounts_payable"
	RoleSalesRevenue          AccountRole = "sales_revenue"
	RoleVATOutput             AccountRole = "vat_output"
	RoleVATInput              AccountRole = "vat_input"
	RoleInventory             AccountRole = "inventory"
	RoleCostOfGoodsSold       AccountRole = "cost_of_goods_sold"
	RoleCash                  AccountRole = "cash"
	RoleBank                  AccountRole = "bank"
	RoleChecksPendingDeposit  AccountRole = "checks_pending_deposit"
	RoleDeferredChecksPayable AccountRole = "deferred_checks_payable"
	RoleCardReceivable        AccountRole = "card_receivable"
	RoleCardFeeExpense        AccountRole = "card_fee_expense"
	RoleMiscIncome            AccountRole = "misc_income"
	RoleMiscExpense           AccountRole = "misc_expense"
	RoleOpeningFund           AccountRole = "opening_fund"
	RoleOwnerWithdrawals      AccountRole = "owner_withdrawals"
	RoleCashShortage          AccountRole = "cash_shortage"
	RoleCashOverage           AccountRole = "cash_overage"
	RoleWithholdingReceivable AccountRole = "withholding_receivable"
	RoleWithholdingPayable    AccountRole = "withholding_payable"
	RoleSuspense              AccountRole = "suspense"
)
