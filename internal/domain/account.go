package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CurrencyPrefix is prepended to amounts in history messages and console output
const CurrencyPrefix = "Rs."

// MaxHolderNameLength is the longest holder name, in bytes, an account accepts
const MaxHolderNameLength = 256

// HistoryEntry is one human-readable event in an account's history
// History lives in memory only and is never persisted
type HistoryEntry struct {
	ID      uuid.UUID
	At      time.Time
	Message string
}

func (h HistoryEntry) String() string {
	return h.Message
}

// Account represents a bank account entity in the domain layer
type Account struct {
	number  int
	holder  string
	balance decimal.Decimal
	policy  InterestPolicy
	history []HistoryEntry
}

// AccountSnapshot is a read-only view of an account used for display and persistence
type AccountSnapshot struct {
	Number      int
	Holder      string
	Balance     decimal.Decimal
	Policy      InterestPolicy
	PolicyLabel string
}

// NewAccount opens an account and records the opening in its history
func NewAccount(number int, holder string, balance decimal.Decimal, policy InterestPolicy) (*Account, error) {
	a, err := RestoreAccount(number, holder, balance)
	if err != nil {
		return nil, err
	}
	if !policy.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownInterestPolicy, int(policy))
	}
	a.policy = policy
	a.record("Account created with balance: %s", FormatAmount(balance))
	return a, nil
}

// RestoreAccount rebuilds an account from persisted fields
// Policy and history are not persisted: the account gets the Fixed policy and an empty history
func RestoreAccount(number int, holder string, balance decimal.Decimal) (*Account, error) {
	if err := ValidateHolderName(holder); err != nil {
		return nil, err
	}
	if balance.IsNegative() {
		return nil, fmt.Errorf("%w: opening balance %s", ErrInvalidAmount, balance)
	}
	return &Account{
		number:  number,
		holder:  holder,
		balance: balance,
		policy:  InterestFixed,
	}, nil
}

// ValidateHolderName rejects names the line-oriented save format cannot carry
func ValidateHolderName(holder string) error {
	if strings.TrimSpace(holder) == "" || strings.ContainsAny(holder, "\r\n") {
		return ErrInvalidHolderName
	}
	if len(holder) > MaxHolderNameLength {
		return fmt.Errorf("%w: longer than %d bytes", ErrInvalidHolderName, MaxHolderNameLength)
	}
	return nil
}

func (a *Account) Number() int { return a.number }

func (a *Account) Holder() string { return a.holder }

func (a *Account) Balance() decimal.Decimal { return a.balance }

func (a *Account) InterestPolicy() InterestPolicy { return a.policy }

// Deposit adds amount to the balance
func (a *Account) Deposit(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("%w: deposit %s", ErrInvalidAmount, amount)
	}
	a.balance = a.balance.Add(amount)
	a.record("Deposited: %s", FormatAmount(amount))
	return nil
}

// Withdraw removes amount from the balance
// The balance and history are left untouched when funds are insufficient
func (a *Account) Withdraw(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("%w: withdrawal %s", ErrInvalidAmount, amount)
	}
	if amount.GreaterThan(a.balance) {
		return fmt.Errorf("%w: balance %s, requested %s",
			ErrInsufficientFunds, FormatAmount(a.balance), FormatAmount(amount))
	}
	a.balance = a.balance.Sub(amount)
	a.record("Withdrew: %s", FormatAmount(amount))
	return nil
}

// ApplyInterest credits the interest computed by the account's policy and returns it
func (a *Account) ApplyInterest() decimal.Decimal {
	interest := a.policy.Calculate(a.balance)
	a.balance = a.balance.Add(interest)
	a.record("Interest applied: %s, new balance: %s", FormatAmount(interest), FormatAmount(a.balance))
	return interest
}

// ChangeInterestPolicy replaces the policy used by future interest applications
func (a *Account) ChangeInterestPolicy(policy InterestPolicy) error {
	if !policy.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownInterestPolicy, int(policy))
	}
	a.policy = policy
	a.record("Interest type changed to %s", policy.Label())
	return nil
}

// Snapshot returns a read-only view of the account
func (a *Account) Snapshot() AccountSnapshot {
	return AccountSnapshot{
		Number:      a.number,
		Holder:      a.holder,
		Balance:     a.balance,
		Policy:      a.policy,
		PolicyLabel: a.policy.Label(),
	}
}

// History returns a copy of the account's events, oldest first
func (a *Account) History() []HistoryEntry {
	out := make([]HistoryEntry, len(a.history))
	copy(out, a.history)
	return out
}

func (a *Account) record(format string, args ...any) {
	a.history = append(a.history, HistoryEntry{
		ID:      uuid.New(),
		At:      time.Now(),
		Message: fmt.Sprintf(format, args...),
	})
}

// FormatAmount renders an amount with two decimals and the currency prefix, e.g. "Rs.1575.00"
func FormatAmount(amount decimal.Decimal) string {
	return CurrencyPrefix + amount.StringFixed(2)
}
