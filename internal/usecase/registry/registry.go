package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/simaogato/bankbook/internal/domain"
)

// ErrNoStore is returned by Save and Load on a registry built without a store
var ErrNoStore = errors.New("account registry has no store")

// AccountRegistry owns the set of accounts known to the process
// Account numbers are unique and iteration follows insertion order.
// A single mutex serializes every operation.
type AccountRegistry struct {
	Store  domain.AccountStore
	Logger *slog.Logger

	mu       sync.Mutex
	order    []int
	accounts map[int]*domain.Account
}

// NewAccountRegistry creates an empty AccountRegistry backed by store
// A nil store leaves the in-memory operations usable; Save and Load then fail with ErrNoStore.
func NewAccountRegistry(store domain.AccountStore, logger *slog.Logger) *AccountRegistry {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &AccountRegistry{
		Store:    store,
		Logger:   logger,
		accounts: make(map[int]*domain.Account),
	}
}

// Create opens a new account and appends it to the registry
// Callers should not reuse an account number; doing so fails with ErrDuplicateAccount
// and leaves the existing account untouched.
func (r *AccountRegistry) Create(number int, holder string, initial decimal.Decimal, policy domain.InterestPolicy) (domain.AccountSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[number]; ok {
		return domain.AccountSnapshot{}, fmt.Errorf("%w: %d", domain.ErrDuplicateAccount, number)
	}

	account, err := domain.NewAccount(number, holder, initial, policy)
	if err != nil {
		return domain.AccountSnapshot{}, err
	}

	r.accounts[number] = account
	r.order = append(r.order, number)
	r.Logger.Info("Account created", "number", number, "policy", policy.Label())

	return account.Snapshot(), nil
}

// Find returns a snapshot of the account with the given number
func (r *AccountRegistry) Find(number int) (domain.AccountSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, err := r.lookup(number)
	if err != nil {
		return domain.AccountSnapshot{}, err
	}
	return account.Snapshot(), nil
}

// Delete removes an account; the remaining accounts keep their relative order
func (r *AccountRegistry) Delete(number int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.lookup(number); err != nil {
		return err
	}

	delete(r.accounts, number)
	r.order = slices.DeleteFunc(r.order, func(n int) bool { return n == number })
	r.Logger.Info("Account deleted", "number", number)

	return nil
}

// All returns snapshots of every account in insertion order
func (r *AccountRegistry) All() []domain.AccountSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.snapshots()
}

// Len returns the number of accounts held
func (r *AccountRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.order)
}

// Deposit credits amount to an account
func (r *AccountRegistry) Deposit(number int, amount decimal.Decimal) (domain.AccountSnapshot, error) {
	return r.mutate(number, func(a *domain.Account) error {
		return a.Deposit(amount)
	})
}

// Withdraw debits amount from an account
// Fails with ErrInsufficientFunds, balance unchanged, when amount exceeds the balance
func (r *AccountRegistry) Withdraw(number int, amount decimal.Decimal) (domain.AccountSnapshot, error) {
	return r.mutate(number, func(a *domain.Account) error {
		return a.Withdraw(amount)
	})
}

// ApplyInterest credits interest to an account and returns the interest amount
func (r *AccountRegistry) ApplyInterest(number int) (decimal.Decimal, domain.AccountSnapshot, error) {
	var interest decimal.Decimal
	snap, err := r.mutate(number, func(a *domain.Account) error {
		interest = a.ApplyInterest()
		return nil
	})
	return interest, snap, err
}

// ChangeInterestPolicy replaces an account's interest policy
func (r *AccountRegistry) ChangeInterestPolicy(number int, policy domain.InterestPolicy) (domain.AccountSnapshot, error) {
	return r.mutate(number, func(a *domain.Account) error {
		return a.ChangeInterestPolicy(policy)
	})
}

// History returns the in-memory event log of an account
func (r *AccountRegistry) History(number int) ([]domain.HistoryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, err := r.lookup(number)
	if err != nil {
		return nil, err
	}
	return account.History(), nil
}

// Save persists every account, in registry order, through the store
func (r *AccountRegistry) Save(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Store == nil {
		return ErrNoStore
	}

	accounts := r.snapshots()
	if err := r.Store.Save(ctx, accounts); err != nil {
		r.Logger.Warn("Failed to save accounts", "err", err)
		return fmt.Errorf("failed to save accounts: %w", err)
	}

	r.Logger.Info("Accounts saved", "count", len(accounts))
	return nil
}

// Load replaces the registry contents with the accounts held by the store
// Logic:
//  1. Ask the store for the saved accounts (ErrNoSavedData means an empty set)
//  2. Reject the whole set if any account number repeats
//  3. Swap the new set in, preserving saved order
//
// On any error the registry is left exactly as it was.
func (r *AccountRegistry) Load(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Store == nil {
		return 0, ErrNoStore
	}

	loaded, err := r.Store.Load(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrNoSavedData) {
			r.Logger.Warn("Failed to load accounts", "err", err)
			return 0, fmt.Errorf("failed to load accounts: %w", err)
		}
		r.Logger.Info("No saved accounts found, starting empty")
		loaded = nil
	}

	order := make([]int, 0, len(loaded))
	accounts := make(map[int]*domain.Account, len(loaded))
	for i, account := range loaded {
		if _, ok := accounts[account.Number()]; ok {
			err := &domain.ParseError{
				Field: fmt.Sprintf("record %d", i+1),
				Err:   fmt.Errorf("%w: %d", domain.ErrDuplicateAccount, account.Number()),
			}
			r.Logger.Warn("Failed to load accounts", "err", err)
			return 0, fmt.Errorf("failed to load accounts: %w", err)
		}
		accounts[account.Number()] = account
		order = append(order, account.Number())
	}

	r.order = order
	r.accounts = accounts
	r.Logger.Info("Accounts loaded", "count", len(order))

	return len(order), nil
}

// mutate runs fn against the account under the registry lock and returns the resulting snapshot
func (r *AccountRegistry) mutate(number int, fn func(*domain.Account) error) (domain.AccountSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, err := r.lookup(number)
	if err != nil {
		return domain.AccountSnapshot{}, err
	}
	if err := fn(account); err != nil {
		return account.Snapshot(), err
	}
	return account.Snapshot(), nil
}

func (r *AccountRegistry) lookup(number int) (*domain.Account, error) {
	account, ok := r.accounts[number]
	if !ok {
		return nil, fmt.Errorf("%w: %d", domain.ErrAccountNotFound, number)
	}
	return account, nil
}

func (r *AccountRegistry) snapshots() []domain.AccountSnapshot {
	out := make([]domain.AccountSnapshot, 0, len(r.order))
	for _, number := range r.order {
		out = append(out, r.accounts[number].Snapshot())
	}
	return out
}
