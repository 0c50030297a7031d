package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// InterestPolicy selects how interest is computed for an account balance
// The numeric values match the menu choices offered to the user
type InterestPolicy int

const (
	InterestFixed    InterestPolicy = 1
	InterestVariable InterestPolicy = 2
)

// interestTerms holds the rate and display label of each policy
// Adding a policy only requires a new constant and an entry here
var interestTerms = map[InterestPolicy]struct {
	rate  decimal.Decimal
	label string
}{
	InterestFixed:    {rate: decimal.RequireFromString("0.05"), label: "Fixed (5%)"},
	InterestVariable: {rate: decimal.RequireFromString("0.03"), label: "Variable (3%)"},
}

// ParseInterestPolicy maps a menu choice to an InterestPolicy
func ParseInterestPolicy(choice int) (InterestPolicy, error) {
	p := InterestPolicy(choice)
	if !p.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrUnknownInterestPolicy, choice)
	}
	return p, nil
}

// Valid reports whether p is one of the known policies
func (p InterestPolicy) Valid() bool {
	_, ok := interestTerms[p]
	return ok
}

// Rate returns the interest rate applied per application
func (p InterestPolicy) Rate() decimal.Decimal {
	return interestTerms[p].rate
}

// Calculate returns the interest earned on balance
// Pure: the result depends only on the policy and the balance
func (p InterestPolicy) Calculate(balance decimal.Decimal) decimal.Decimal {
	return balance.Mul(p.Rate())
}

// Label returns the display name, e.g. "Fixed (5%)"
func (p InterestPolicy) Label() string {
	if t, ok := interestTerms[p]; ok {
		return t.label
	}
	return fmt.Sprintf("Unknown (%d)", int(p))
}

func (p InterestPolicy) String() string {
	return p.Label()
}
