// Package accounting implements an exact-decimal balance, loan, and
// margin model: one Balance per currency per agent, a Balances
// aggregate holding an agent's base/quote pair plus any open leveraged
// loans, rounded and validated on every mutation.
package accounting

import (
	"github.com/axonsim/exchange-sim/internal/decimal"
	"github.com/axonsim/exchange-sim/internal/kernelerr"
)

// Balance tracks one currency for one agent: funds available for new
// orders (Free) and funds already committed to resting orders or loan
// collateral (Reserved). Total is always Free+Reserved.
//
// Invariant: Free >= 0, Reserved >= 0, both rounded to RoundingDecimals.
type Balance struct {
	Initial          decimal.Decimal
	Free             decimal.Decimal
	Reserved         decimal.Decimal
	Symbol           *string
	RoundingDecimals int32
}

// NewBalance constructs a Balance with the given initial free amount.
// RoundingDecimals must be positive (validateRoundingDecimals).
func NewBalance(initial decimal.Decimal, symbol *string, roundingDecimals int32) (*Balance, error) {
	if err := validateRoundingDecimals(roundingDecimals); err != nil {
		return nil, err
	}
	rounded := initial.RoundTo(roundingDecimals)
	return &Balance{
		Initial:          rounded,
		Free:             rounded,
		Symbol:           symbol,
		RoundingDecimals: roundingDecimals,
	}, nil
}

func validateRoundingDecimals(n int32) error {
	if n <= 0 {
		return kernelerr.New(kernelerr.KindInvalidArgument, kernelerr.CauseInvalidDecimalPlaces,
			"roundingDecimals must be > 0, got %d", n)
	}
	return nil
}

// Total returns Free+Reserved.
func (b *Balance) Total() decimal.Decimal {
	return b.Free.Add(b.Reserved)
}

func (b *Balance) round(x decimal.Decimal) decimal.Decimal {
	return x.RoundTo(b.RoundingDecimals)
}

// Reserve moves amount from Free to Reserved, e.g. when an order rests
// on the book or loan collateral is set aside.
func (b *Balance) Reserve(amount decimal.Decimal) error {
	amount = b.round(amount)
	if b.Free.LessThan(amount) {
		return kernelerr.New(kernelerr.KindInsufficientFunds, kernelerr.CauseInsufficientFree,
			"insufficient free balance: have %s, need %s", b.Free, amount)
	}
	b.Free = b.round(b.Free.Sub(amount))
	b.Reserved = b.round(b.Reserved.Add(amount))
	return nil
}

// Release moves amount from Reserved back to Free, e.g. when a resting
// order is cancelled.
func (b *Balance) Release(amount decimal.Decimal) error {
	amount = b.round(amount)
	if b.Reserved.LessThan(amount) {
		return kernelerr.New(kernelerr.KindInsufficientFunds, kernelerr.CauseInsufficientReserved,
			"insufficient reserved balance: have %s, need %s", b.Reserved, amount)
	}
	b.Reserved = b.round(b.Reserved.Sub(amount))
	b.Free = b.round(b.Free.Add(amount))
	return nil
}

// Commit consumes amount out of Reserved without returning it to Free,
// e.g. when a resting order fills and its reserved funds are spent.
func (b *Balance) Commit(amount decimal.Decimal) error {
	amount = b.round(amount)
	if b.Reserved.LessThan(amount) {
		return kernelerr.New(kernelerr.KindInsufficientFunds, kernelerr.CauseInsufficientReserved,
			"insufficient reserved balance: have %s, need %s", b.Reserved, amount)
	}
	b.Reserved = b.round(b.Reserved.Sub(amount))
	return nil
}

// Credit adds amount directly to Free, e.g. proceeds from a trade.
func (b *Balance) Credit(amount decimal.Decimal) {
	b.Free = b.round(b.Free.Add(amount))
}

// Debit subtracts amount directly from Free.
func (b *Balance) Debit(amount decimal.Decimal) error {
	amount = b.round(amount)
	if b.Free.LessThan(amount) {
		return kernelerr.New(kernelerr.KindInsufficientFunds, kernelerr.CauseInsufficientFree,
			"insufficient free balance: have %s, need %s", b.Free, amount)
	}
	b.Free = b.round(b.Free.Sub(amount))
	return nil
}
