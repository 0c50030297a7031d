package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestAccount(t *testing.T, balance string, policy InterestPolicy) *Account {
	t.Helper()
	a, err := NewAccount(101, "Asha", dec(balance), policy)
	require.NoError(t, err)
	return a
}

func TestNewAccount(t *testing.T) {
	tests := []struct {
		name    string
		holder  string
		balance string
		policy  InterestPolicy
		wantErr error
	}{
		{name: "valid fixed account", holder: "Asha", balance: "1000.00", policy: InterestFixed},
		{name: "valid variable account with zero balance", holder: "Ravi Kumar", balance: "0", policy: InterestVariable},
		{name: "empty holder should fail", holder: "", balance: "10", policy: InterestFixed, wantErr: ErrInvalidHolderName},
		{name: "blank holder should fail", holder: "   ", balance: "10", policy: InterestFixed, wantErr: ErrInvalidHolderName},
		{name: "holder with newline should fail", holder: "Asha\n200", balance: "10", policy: InterestFixed, wantErr: ErrInvalidHolderName},
		{name: "holder at length limit", holder: strings.Repeat("x", MaxHolderNameLength), balance: "10", policy: InterestFixed},
		{name: "holder over length limit should fail", holder: strings.Repeat("x", MaxHolderNameLength+1), balance: "10", policy: InterestFixed, wantErr: ErrInvalidHolderName},
		{name: "negative opening balance should fail", holder: "Asha", balance: "-1", policy: InterestFixed, wantErr: ErrInvalidAmount},
		{name: "unknown policy should fail", holder: "Asha", balance: "10", policy: InterestPolicy(7), wantErr: ErrUnknownInterestPolicy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := NewAccount(1, tt.holder, dec(tt.balance), tt.policy)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, a)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.holder, a.Holder())
			assert.True(t, dec(tt.balance).Equal(a.Balance()))
			assert.Equal(t, tt.policy, a.InterestPolicy())
			require.Len(t, a.History(), 1)
			assert.Contains(t, a.History()[0].Message, "Account created")
		})
	}
}

func TestRestoreAccount_DefaultsToFixedWithEmptyHistory(t *testing.T) {
	a, err := RestoreAccount(7, "Meera", dec("12.5"))
	require.NoError(t, err)

	assert.Equal(t, 7, a.Number())
	assert.Equal(t, InterestFixed, a.InterestPolicy())
	assert.Empty(t, a.History())
}

func TestAccount_Deposit(t *testing.T) {
	for _, amount := range []string{"0", "0.01", "500", "123456789.99"} {
		t.Run(amount, func(t *testing.T) {
			a := newTestAccount(t, "1000", InterestFixed)
			before := a.Balance()
			historyBefore := len(a.History())

			require.NoError(t, a.Deposit(dec(amount)))

			assert.True(t, before.Add(dec(amount)).Equal(a.Balance()), "balance %s", a.Balance())
			assert.Len(t, a.History(), historyBefore+1)
		})
	}
}

func TestAccount_Deposit_NegativeAmount(t *testing.T) {
	a := newTestAccount(t, "1000", InterestFixed)

	err := a.Deposit(dec("-5"))

	assert.ErrorIs(t, err, ErrInvalidAmount)
	assert.True(t, dec("1000").Equal(a.Balance()))
	assert.Len(t, a.History(), 1)
}

func TestAccount_Withdraw(t *testing.T) {
	tests := []struct {
		name        string
		amount      string
		wantBalance string
		wantErr     error
	}{
		{name: "partial withdrawal", amount: "250.50", wantBalance: "749.50"},
		{name: "zero withdrawal", amount: "0", wantBalance: "1000"},
		{name: "exact balance", amount: "1000", wantBalance: "0"},
		{name: "more than balance fails", amount: "1000.01", wantBalance: "1000", wantErr: ErrInsufficientFunds},
		{name: "negative amount fails", amount: "-1", wantBalance: "1000", wantErr: ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAccount(t, "1000", InterestFixed)
			historyBefore := len(a.History())

			err := a.Withdraw(dec(tt.amount))

			assert.True(t, dec(tt.wantBalance).Equal(a.Balance()), "balance %s", a.Balance())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Len(t, a.History(), historyBefore)
				return
			}
			assert.NoError(t, err)
			assert.Len(t, a.History(), historyBefore+1)
		})
	}
}

func TestAccount_Withdraw_FailureIsRepeatable(t *testing.T) {
	a := newTestAccount(t, "1500", InterestFixed)

	for i := 0; i < 3; i++ {
		err := a.Withdraw(dec("2000"))
		assert.True(t, errors.Is(err, ErrInsufficientFunds))
		assert.True(t, dec("1500").Equal(a.Balance()))
	}
}

func TestAccount_ApplyInterest(t *testing.T) {
	tests := []struct {
		name         string
		policy       InterestPolicy
		balance      string
		wantInterest string
		wantBalance  string
	}{
		{name: "fixed", policy: InterestFixed, balance: "1500", wantInterest: "75", wantBalance: "1575"},
		{name: "variable", policy: InterestVariable, balance: "1500", wantInterest: "45", wantBalance: "1545"},
		{name: "zero balance", policy: InterestFixed, balance: "0", wantInterest: "0", wantBalance: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAccount(t, tt.balance, tt.policy)

			interest := a.ApplyInterest()

			assert.True(t, dec(tt.wantInterest).Equal(interest), "interest %s", interest)
			assert.True(t, dec(tt.wantBalance).Equal(a.Balance()), "balance %s", a.Balance())
			history := a.History()
			assert.Contains(t, history[len(history)-1].Message, FormatAmount(dec(tt.wantBalance)))
		})
	}
}

func TestAccount_ApplyInterest_Compounds(t *testing.T) {
	a := newTestAccount(t, "1000", InterestFixed)

	a.ApplyInterest()
	a.ApplyInterest()

	assert.True(t, dec("1102.5").Equal(a.Balance()), "balance %s", a.Balance())
}

func TestAccount_ChangeInterestPolicy(t *testing.T) {
	a := newTestAccount(t, "1000", InterestFixed)

	require.NoError(t, a.ChangeInterestPolicy(InterestVariable))
	assert.Equal(t, InterestVariable, a.InterestPolicy())
	assert.Len(t, a.History(), 2)

	err := a.ChangeInterestPolicy(InterestPolicy(0))
	assert.ErrorIs(t, err, ErrUnknownInterestPolicy)
	assert.Equal(t, InterestVariable, a.InterestPolicy())
	assert.Len(t, a.History(), 2)
}

func TestAccount_Snapshot(t *testing.T) {
	a := newTestAccount(t, "1000.00", InterestVariable)

	snap := a.Snapshot()

	assert.Equal(t, 101, snap.Number)
	assert.Equal(t, "Asha", snap.Holder)
	assert.True(t, dec("1000").Equal(snap.Balance))
	assert.Equal(t, InterestVariable, snap.Policy)
	assert.Equal(t, "Variable (3%)", snap.PolicyLabel)
}

func TestAccount_HistoryIsACopy(t *testing.T) {
	a := newTestAccount(t, "10", InterestFixed)

	h := a.History()
	h[0].Message = "tampered"

	assert.NotEqual(t, "tampered", a.History()[0].Message)
	assert.NotEqual(t, a.History()[0].ID.String(), "00000000-0000-0000-0000-000000000000")
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "Rs.1575.00", FormatAmount(dec("1575")))
	assert.Equal(t, "Rs.0.10", FormatAmount(dec("0.1")))
}
