package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/simaogato/bankbook/internal/domain"
)

// Registry is the part of the account registry the shell drives
type Registry interface {
	Create(number int, holder string, initial decimal.Decimal, policy domain.InterestPolicy) (domain.AccountSnapshot, error)
	Find(number int) (domain.AccountSnapshot, error)
	Delete(number int) error
	All() []domain.AccountSnapshot
	Deposit(number int, amount decimal.Decimal) (domain.AccountSnapshot, error)
	Withdraw(number int, amount decimal.Decimal) (domain.AccountSnapshot, error)
	ApplyInterest(number int) (decimal.Decimal, domain.AccountSnapshot, error)
	ChangeInterestPolicy(number int, policy domain.InterestPolicy) (domain.AccountSnapshot, error)
	History(number int) ([]domain.HistoryEntry, error)
	Save(ctx context.Context) error
	Load(ctx context.Context) (int, error)
}

var (
	errInvalidInput = errors.New("invalid input")

	// errReadInput marks a failure of the input stream itself; the session cannot continue
	errReadInput = errors.New("failed to read input")
)

func isInvalidInput(err error) bool {
	return errors.Is(err, errInvalidInput)
}

// Shell is the interactive menu loop in front of the account registry
type Shell struct {
	Registry Registry
	Logger   *slog.Logger

	in  *bufio.Scanner
	out io.Writer
}

// NewShell creates a Shell reading answers from in and writing prompts to out
func NewShell(registry Registry, in io.Reader, out io.Writer, logger *slog.Logger) *Shell {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Shell{
		Registry: registry,
		Logger:   logger,
		in:       bufio.NewScanner(in),
		out:      out,
	}
}

// Run shows the menu until the user exits, input ends, or ctx is cancelled
// Operation failures are reported to the user and never end the session.
// An unreadable input stream, such as a line too long to buffer, ends it with an error.
func (s *Shell) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.printMenu()
		choice, err := s.readInt("Enter your choice: ")
		switch {
		case err == nil:
		case errors.Is(err, io.EOF):
			s.println("Exiting the program...")
			return nil
		case errors.Is(err, errReadInput):
			s.Logger.Error("Input stream failed", "err", err)
			return err
		default:
			s.println("Invalid choice. Please try again.")
			continue
		}

		if choice == menuExit {
			s.println("Exiting the program...")
			return nil
		}

		item, ok := menuItemByChoice(choice)
		if !ok {
			s.println("Invalid choice. Please try again.")
			continue
		}

		err = item.action(s, ctx)
		switch {
		case err == nil:
		case errors.Is(err, io.EOF):
			s.println("Exiting the program...")
			return nil
		case errors.Is(err, errReadInput):
			s.Logger.Error("Input stream failed", "action", item.label, "err", err)
			return err
		default:
			s.Logger.Debug("Menu action failed", "action", item.label, "err", err)
			s.printf("Error: %v\n", err)
		}
	}
}

func (s *Shell) printMenu() {
	s.println("\nBank Management System")
	for _, item := range menu {
		s.printf("%d. %s\n", item.choice, item.label)
	}
}

// readLine prompts and returns the next input line without surrounding whitespace
func (s *Shell) readLine(prompt string) (string, error) {
	s.printf("%s", prompt)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", fmt.Errorf("%w: %w", errReadInput, err)
		}
		return "", io.EOF
	}
	return strings.TrimSpace(s.in.Text()), nil
}

func (s *Shell) readInt(prompt string) (int, error) {
	line, err := s.readLine(prompt)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a whole number", errInvalidInput, line)
	}
	return n, nil
}

func (s *Shell) readAmount(prompt string) (decimal.Decimal, error) {
	line, err := s.readLine(prompt)
	if err != nil {
		return decimal.Zero, err
	}
	amount, err := decimal.NewFromString(line)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not an amount", errInvalidInput, line)
	}
	return amount, nil
}

func (s *Shell) println(a ...any) {
	_, _ = fmt.Fprintln(s.out, a...)
}

func (s *Shell) printf(format string, a ...any) {
	_, _ = fmt.Fprintf(s.out, format, a...)
}
