package sqlite

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/simaogato/bankbook/internal/domain"
)

// accountRepository implements domain.AccountStore
// Only number, holder and balance are stored, matching the flat file format
type accountRepository struct {
	db *DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *DB) domain.AccountStore {
	return &accountRepository{db: db}
}

// Save replaces every stored account with accounts inside one database transaction
func (r *accountRepository) Save(ctx context.Context, accounts []domain.AccountSnapshot) error {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to begin transaction: %w", domain.ErrIO, err)
	}
	defer dbTx.Rollback()

	if _, err := dbTx.ExecContext(ctx, `DELETE FROM accounts`); err != nil {
		return fmt.Errorf("%w: failed to clear accounts: %w", domain.ErrIO, err)
	}

	insertQuery := `
		INSERT INTO accounts (position, number, holder, balance)
		VALUES (?, ?, ?, ?)
	`

	for i, account := range accounts {
		if err := domain.ValidateHolderName(account.Holder); err != nil {
			return fmt.Errorf("account %d: %w", account.Number, err)
		}
		_, err = dbTx.ExecContext(ctx, insertQuery,
			i,
			account.Number,
			account.Holder,
			account.Balance.String(),
		)
		if err != nil {
			return fmt.Errorf("%w: failed to insert account %d: %w", domain.ErrIO, account.Number, err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("%w: failed to commit transaction: %w", domain.ErrIO, err)
	}

	return nil
}

// Load retrieves every stored account in saved order
// An empty table is an empty account set, not ErrNoSavedData
func (r *accountRepository) Load(ctx context.Context) ([]*domain.Account, error) {
	query := `
		SELECT number, holder, balance
		FROM accounts
		ORDER BY position
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query accounts: %w", domain.ErrIO, err)
	}
	defer rows.Close()

	accounts := make([]*domain.Account, 0)
	for rows.Next() {
		var number int
		var holder string
		var balanceStr string

		if err := rows.Scan(&number, &holder, &balanceStr); err != nil {
			return nil, fmt.Errorf("%w: failed to scan account: %w", domain.ErrIO, err)
		}

		// Parse balance (TEXT)
		balance, err := decimal.NewFromString(balanceStr)
		if err != nil {
			return nil, &domain.ParseError{Field: fmt.Sprintf("balance of account %d", number), Err: err}
		}

		account, err := domain.RestoreAccount(number, holder, balance)
		if err != nil {
			return nil, &domain.ParseError{Field: fmt.Sprintf("account %d", number), Err: err}
		}
		accounts = append(accounts, account)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to iterate accounts: %w", domain.ErrIO, err)
	}

	return accounts, nil
}
