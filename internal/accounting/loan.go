package accounting

import (
	"github.com/axonsim/exchange-sim/internal/decimal"
	"github.com/axonsim/exchange-sim/internal/event"
)

// LoanID identifies a leveraged position within one agent's Balances.
// Ids are monotonic per agent, not globally unique.
type LoanID uint64

// Collateral is the amount of each currency locked against a loan.
// Exactly one of Base/Quote is non-zero: a Buy loan encumbers Quote,
// a Sell loan encumbers Base.
type Collateral struct {
	Base  decimal.Decimal
	Quote decimal.Decimal
}

// Loan is one open leveraged position.
type Loan struct {
	Amount     decimal.Decimal // base-denominated position size
	Price      decimal.Decimal // entry price
	Leverage   decimal.Decimal
	Direction  event.Direction
	Collateral Collateral
}
