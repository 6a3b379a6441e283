package service

import (
	"fmt"
	"sort"
	"strings"

	"erp-ledger/internal/models"
	"erp-ledger/internal/utils"
)

// AccountStore is the chart-of-accounts lookup surface the resolver needs.
type AccountStore interface {
	FindPostableByCode(code string) (*models.Account, error)
	SearchPostableByName(q string) ([]models.Account, error)
}

// DefaultRoleCatalog maps each account role to the well-known account name
// the seeded chart of accounts must carry. This is the soft schema contract
// between setup tooling and the posting engine.
var DefaultRoleCatalog = map[models.AccountRole]string{
	models.RoleAccountsReceivable:    "Accounts Receivable",
	models.RoleAccountsPayable:       "Accounts Payable",
	models.RoleSalesRevenue:          "Sales",
	models.RoleVATOutput:             "VAT Output",
	models.RoleVATInput:              "VAT Input",
	models.RoleInventory:             "Merchandise",
	models.RoleCostOfGoodsSold:       "Cost of Goods Sold",
	models.RoleCash:                  "Cash",
	models.RoleBank:                  "Bank Current Account",
	models.RoleChecksPendingDeposit:  "Checks Pending Deposit",
	models.RoleDeferredChecksPayable: "Deferred Checks Payable",
	models.RoleCardReceivable:        "Card Receivable",
	models.RoleCardFeeExpense:        "Card Fee Expense",
	models.RoleMiscIncome:            "Misc Income",
	models.RoleMiscExpense:           "Misc Expense",
	models.RoleOpeningFund:           "Opening Fund",
	models.RoleOwnerWithdrawals:      "Owner Withdrawals",
	models.RoleCashShortage:          "Cash Shortage",
	models.RoleCashOverage:           "Cash Overage",
	models.RoleWithholdingReceivable: "Withholding Receivable",
	models.RoleWithholdingPayable:    "Withholding Payable",
	models.RoleSuspense:              "Suspense Account",
}

// ChartService resolves account identifiers against the chart of accounts
// and holds the role binding the translators post through.
type ChartService struct {
	accounts AccountStore
	roles    map[models.AccountRole]*models.Account
}

func NewChartService(accounts AccountStore) *ChartService {
	return &ChartService{
		accounts: accounts,
		roles:    make(map[models.AccountRole]*models.Account),
	}
}

// Resolve finds the postable account for an identifier. An exact code match
// wins; otherwise postable accounts whose name contains the identifier
// case-insensitively are searched, preferring a unique exact name match and
// falling back to the first candidate in insertion order.
func (s *ChartService) Resolve(identifier string) (*models.Account, error) {
	account, err := s.accounts.FindPostableByCode(identifier)
	if err != nil {
		return nil, fmt.Errorf("account lookup by code %q: %w", identifier, err)
	}
	if account != nil {
		return account, nil
	}

	candidates, err := s.accounts.SearchPostableByName(identifier)
	if err != nil {
		return nil, fmt.Errorf("account search by name %q: %w", identifier, err)
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrAccountNotFound, identifier)
	}

	var exact *models.Account
	exactCount := 0
	for i := range candidates {
		if strings.EqualFold(candidates[i].Name, identifier) {
			exact = &candidates[i]
			exactCount++
		}
	}
	if exactCount == 1 {
		return exact, nil
	}
	return &candidates[0], nil
}

// BindRoles resolves every role of the catalog up front. Missing accounts
// are collected and reported together so the operator sees the whole gap
// in one pass; binding fails if any role is unmapped.
func (s *ChartService) BindRoles(catalog map[models.AccountRole]string) error {
	log := utils.ComponentLogger("chart")

	roles := make([]models.AccountRole, 0, len(catalog))
	for role := range catalog {
		roles = append(roles, role)
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i] < roles[j] })

	bound := make(map[models.AccountRole]*models.Account, len(catalog))
	var missing []string
	for _, role := range roles {
		name := catalog[role]
		account, err := s.Resolve(name)
		if err != nil {
			missing = append(missing, fmt.Sprintf("%s (%q)", role, name))
			continue
		}
		bound[role] = account
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrAccountNotFound, strings.Join(missing, ", "))
	}

	s.roles = bound
	log.WithField("roles", len(bound)).Debug("account roles bound")
	return nil
}

// Role returns the account bound to a role.
func (s *ChartService) Role(role models.AccountRole) (*models.Account, error) {
	account, ok := s.roles[role]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRoleNotBound, role)
	}
	return account, nil
}

// RoleBound reports whether a role was bound. Optional legs (like the card
// fee split) check this instead of failing.
func (s *ChartService) RoleBound(role models.AccountRole) bool {
	_, ok := s.roles[role]
	return ok
}

// BankAccount resolves the bank account for a check by its bank name,
// falling back to the generic bank role when no dedicated account exists.
func (s *ChartService) BankAccount(bankName string) (*models.Account, error) {
	if bankName != "" {
		if account, err := s.Resolve(bankName); err == nil {
			return account, nil
		}
	}
	return s.Role(models.RoleBank)
}
