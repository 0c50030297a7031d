package flatfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/simaogato/bankbook/internal/domain"
)

// linesPerRecord is the number of lines each account occupies:
// account number, holder name, balance
const linesPerRecord = 3

// maxLineLength bounds a single line read back by Decode.
// Holder names are capped far below it; balances compounded many times grow long.
const maxLineLength = 1 << 20

// Encode writes accounts in the line-oriented save format
// An empty account set writes nothing.
func Encode(w io.Writer, accounts []domain.AccountSnapshot) error {
	bw := bufio.NewWriter(w)
	for _, a := range accounts {
		if err := domain.ValidateHolderName(a.Holder); err != nil {
			return fmt.Errorf("account %d: %w", a.Number, err)
		}
		if _, err := fmt.Fprintf(bw, "%d\n%s\n%s\n", a.Number, a.Holder, a.Balance.String()); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Decode reads accounts written by Encode
// Logic:
//  1. Read every line, dropping trailing blank lines
//  2. Reject a trailing partial record instead of zero-filling its missing fields
//  3. Parse each group of three lines into an account with the Fixed policy and empty history
//
// The first malformed field aborts the decode; no accounts are returned alongside an error.
func Decode(r io.Reader) ([]*domain.Account, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineLength)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, &domain.ParseError{
				Line:  len(lines) + 1,
				Field: "record",
				Err:   fmt.Errorf("line longer than %d bytes", maxLineLength),
			}
		}
		return nil, err
	}

	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}

	if rem := len(lines) % linesPerRecord; rem != 0 {
		return nil, &domain.ParseError{
			Line:  len(lines) - rem + 1,
			Field: "record",
			Err:   fmt.Errorf("truncated record: %d of %d lines present", rem, linesPerRecord),
		}
	}

	accounts := make([]*domain.Account, 0, len(lines)/linesPerRecord)
	for i := 0; i < len(lines); i += linesPerRecord {
		account, err := decodeRecord(lines[i:i+linesPerRecord], i+1)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}

	return accounts, nil
}

// decodeRecord parses one three-line record starting at 1-based line firstLine
func decodeRecord(record []string, firstLine int) (*domain.Account, error) {
	number, err := strconv.Atoi(strings.TrimSpace(record[0]))
	if err != nil {
		return nil, &domain.ParseError{Line: firstLine, Field: "account number", Err: err}
	}

	holder := record[1]
	if err := domain.ValidateHolderName(holder); err != nil {
		return nil, &domain.ParseError{Line: firstLine + 1, Field: "holder name", Err: err}
	}

	balance, err := decimal.NewFromString(strings.TrimSpace(record[2]))
	if err != nil {
		return nil, &domain.ParseError{Line: firstLine + 2, Field: "balance", Err: err}
	}
	if balance.IsNegative() {
		return nil, &domain.ParseError{Line: firstLine + 2, Field: "balance", Err: errors.New("balance cannot be negative")}
	}

	account, err := domain.RestoreAccount(number, holder, balance)
	if err != nil {
		return nil, &domain.ParseError{Line: firstLine, Field: "record", Err: err}
	}
	return account, nil
}
