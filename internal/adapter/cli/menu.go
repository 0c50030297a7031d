package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/simaogato/bankbook/internal/domain"
)

const menuExit = 10

type menuItem struct {
	choice int
	label  string
	action func(*Shell, context.Context) error
}

var menu = []menuItem{
	{1, "Create Account", (*Shell).createAccount},
	{2, "View Account", (*Shell).viewAccount},
	{3, "Deposit Money", (*Shell).depositMoney},
	{4, "Withdraw Money", (*Shell).withdrawMoney},
	{5, "Check Balance", (*Shell).checkBalance},
	{6, "Delete Account", (*Shell).deleteAccount},
	{7, "Change Interest Type", (*Shell).changeInterestType},
	{8, "Save Accounts", (*Shell).saveAccounts},
	{9, "Load Accounts", (*Shell).loadAccounts},
	{menuExit, "Exit", nil},
	{11, "Apply Interest", (*Shell).applyInterest},
	{12, "Transaction History", (*Shell).transactionHistory},
	{13, "List Accounts", (*Shell).listAccounts},
}

func menuItemByChoice(choice int) (menuItem, bool) {
	for _, item := range menu {
		if item.choice == choice {
			return item, true
		}
	}
	return menuItem{}, false
}

func (s *Shell) createAccount(ctx context.Context) error {
	number, err := s.readInt("Enter Account Number: ")
	if err != nil {
		return err
	}
	holder, err := s.readLine("Enter Account Holder Name: ")
	if err != nil {
		return err
	}
	balance, err := s.readAmount("Enter Initial Balance: ")
	if err != nil {
		return err
	}
	choice, err := s.readInt("Choose Interest Type (1 for Fixed, 2 for Variable): ")
	if err != nil && !isInvalidInput(err) {
		return err
	}
	policy, err := domain.ParseInterestPolicy(choice)
	if err != nil {
		s.println("Invalid choice. Using Fixed Interest by default.")
		policy = domain.InterestFixed
	}

	if _, err := s.Registry.Create(number, holder, balance, policy); err != nil {
		return err
	}
	s.println("Account created successfully.")
	return nil
}

func (s *Shell) viewAccount(ctx context.Context) error {
	number, err := s.readInt("Enter Account Number: ")
	if err != nil {
		return err
	}
	account, err := s.Registry.Find(number)
	if err != nil {
		return err
	}
	s.printf("Account Number: %d\n", account.Number)
	s.printf("Account Holder: %s\n", account.Holder)
	s.printf("Balance: %s\n", domain.FormatAmount(account.Balance))
	s.printf("Interest Type: %s\n", account.PolicyLabel)
	return nil
}

func (s *Shell) depositMoney(ctx context.Context) error {
	number, err := s.readExistingAccount("Enter Account Number: ")
	if err != nil {
		return err
	}
	amount, err := s.readAmount("Enter amount to deposit: ")
	if err != nil {
		return err
	}
	if _, err := s.Registry.Deposit(number, amount); err != nil {
		return err
	}
	s.printf("Deposited %s successfully.\n", domain.FormatAmount(amount))
	return nil
}

func (s *Shell) withdrawMoney(ctx context.Context) error {
	number, err := s.readExistingAccount("Enter Account Number: ")
	if err != nil {
		return err
	}
	amount, err := s.readAmount("Enter amount to withdraw: ")
	if err != nil {
		return err
	}
	if _, err := s.Registry.Withdraw(number, amount); err != nil {
		return err
	}
	s.printf("Withdrew %s successfully.\n", domain.FormatAmount(amount))
	return nil
}

func (s *Shell) checkBalance(ctx context.Context) error {
	number, err := s.readInt("Enter Account Number: ")
	if err != nil {
		return err
	}
	account, err := s.Registry.Find(number)
	if err != nil {
		return err
	}
	s.printf("Current Balance: %s\n", domain.FormatAmount(account.Balance))
	return nil
}

func (s *Shell) deleteAccount(ctx context.Context) error {
	number, err := s.readInt("Enter Account Number to delete: ")
	if err != nil {
		return err
	}
	if err := s.Registry.Delete(number); err != nil {
		return err
	}
	s.println("Account deleted successfully.")
	return nil
}

func (s *Shell) changeInterestType(ctx context.Context) error {
	number, err := s.readExistingAccount("Enter Account Number: ")
	if err != nil {
		return err
	}
	choice, err := s.readInt("Choose new Interest Type (1 for Fixed, 2 for Variable): ")
	if err != nil && !isInvalidInput(err) {
		return err
	}
	policy, err := domain.ParseInterestPolicy(choice)
	if err != nil {
		s.println("Invalid choice. Keeping current interest type.")
		return nil
	}
	if _, err := s.Registry.ChangeInterestPolicy(number, policy); err != nil {
		return err
	}
	s.println("Interest type changed successfully.")
	return nil
}

func (s *Shell) saveAccounts(ctx context.Context) error {
	if err := s.Registry.Save(ctx); err != nil {
		return err
	}
	s.println("Accounts saved to file successfully.")
	return nil
}

func (s *Shell) loadAccounts(ctx context.Context) error {
	n, err := s.Registry.Load(ctx)
	if err != nil {
		return err
	}
	s.printf("Accounts loaded from file successfully (%d accounts).\n", n)
	return nil
}

func (s *Shell) applyInterest(ctx context.Context) error {
	number, err := s.readInt("Enter Account Number: ")
	if err != nil {
		return err
	}
	interest, account, err := s.Registry.ApplyInterest(number)
	if err != nil {
		return err
	}
	s.printf("Interest applied: %s\n", domain.FormatAmount(interest))
	s.printf("New Balance: %s\n", domain.FormatAmount(account.Balance))
	return nil
}

func (s *Shell) transactionHistory(ctx context.Context) error {
	number, err := s.readInt("Enter Account Number: ")
	if err != nil {
		return err
	}
	history, err := s.Registry.History(number)
	if err != nil {
		return err
	}
	s.printf("Transaction History for Account %d:\n", number)
	if len(history) == 0 {
		s.println("No transactions recorded since the accounts were loaded.")
		return nil
	}
	for _, entry := range history {
		s.printf("%s  %s\n", entry.At.Format("2006-01-02 15:04:05"), entry.Message)
	}
	return nil
}

func (s *Shell) listAccounts(ctx context.Context) error {
	accounts := s.Registry.All()
	if len(accounts) == 0 {
		s.println("No accounts.")
		return nil
	}
	tw := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
	_, _ = tw.Write([]byte("NUMBER\tHOLDER\tBALANCE\tINTEREST\n"))
	for _, a := range accounts {
		_, _ = tw.Write([]byte(formatRow(a)))
	}
	return tw.Flush()
}

// readExistingAccount reads an account number and checks it exists before
// the user is asked for anything else
func (s *Shell) readExistingAccount(prompt string) (int, error) {
	number, err := s.readInt(prompt)
	if err != nil {
		return 0, err
	}
	if _, err := s.Registry.Find(number); err != nil {
		return 0, err
	}
	return number, nil
}

func formatRow(a domain.AccountSnapshot) string {
	return fmt.Sprintf("%d\t%s\t%s\t%s\n", a.Number, a.Holder, domain.FormatAmount(a.Balance), a.PolicyLabel)
}
