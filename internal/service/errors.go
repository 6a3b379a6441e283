package service

import "errors"

// Configuration-class errors: the chart of accounts or period setup is
// incomplete for the requested posting. The translation aborts whole and
// the operator fixes the setup; nothing is retried automatically.
var (
	ErrAccountNotFound = errors.New("account not found")
	ErrNoOpenPeriod    = errors.New("no open fiscal period covers the date")
	ErrRoleNotBound    = errors.New("account role not bound")
)

// Programming-error-class faults: a translator produced a line set the
// ledger writer refuses to persist. Never a valid runtime state.
var (
	ErrUnbalanced  = errors.New("entry debits and credits do not balance")
	ErrInvalidLine = errors.New("entry line must set exactly one non-negative side")
	ErrTooFewLines = errors.New("entry needs at least two lines")
)
