package flatfile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/simaogato/bankbook/internal/domain"
)

// accountStore implements domain.AccountStore on a single text file
type accountStore struct {
	path string
}

// NewAccountStore creates a store that reads and writes the file at path
func NewAccountStore(path string) domain.AccountStore {
	return &accountStore{path: path}
}

// Save replaces the file with accounts
// The data is written to a temporary sibling first and renamed into place,
// so a failed save leaves the previous file intact.
func (s *accountStore) Save(ctx context.Context, accounts []domain.AccountSnapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("%w: open %s for writing: %w", domain.ErrIO, tmp, err)
	}

	if err := Encode(f, accounts); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		if errors.Is(err, domain.ErrInvalidHolderName) {
			return err
		}
		return fmt.Errorf("%w: write %s: %w", domain.ErrIO, tmp, err)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: close %s: %w", domain.ErrIO, tmp, err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: replace %s: %w", domain.ErrIO, s.path, err)
	}

	return nil
}

// Load reads every account from the file
// A missing file yields domain.ErrNoSavedData.
func (s *accountStore) Load(ctx context.Context) ([]*domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNoSavedData, s.path)
		}
		return nil, fmt.Errorf("%w: open %s for reading: %w", domain.ErrIO, s.path, err)
	}
	defer func() { _ = f.Close() }()

	accounts, err := Decode(f)
	if err != nil {
		if errors.Is(err, domain.ErrParse) {
			return nil, fmt.Errorf("%s: %w", s.path, err)
		}
		return nil, fmt.Errorf("%w: read %s: %w", domain.ErrIO, s.path, err)
	}

	return accounts, nil
}
