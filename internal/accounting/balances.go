package accounting

import (
	"fmt"

	"github.com/axonsim/exchange-sim/internal/decimal"
	"github.com/axonsim/exchange-sim/internal/event"
)

// Balances is one agent's full account: its base and quote Balance,
// plus any open leveraged loans and the aggregate loan/collateral
// totals the checkpoint shape carries alongside them.
type Balances struct {
	Base  *Balance
	Quote *Balance

	BaseDecimals  int32
	QuoteDecimals int32

	BaseLoan  decimal.Decimal
	QuoteLoan decimal.Decimal

	BaseCollateral  decimal.Decimal
	QuoteCollateral decimal.Decimal

	Loans map[LoanID]*Loan

	nextLoanID uint64
}

// NewBalances constructs an empty account with the given starting
// base/quote free balances.
func NewBalances(initialBase, initialQuote decimal.Decimal, baseSymbol, quoteSymbol *string, baseDecimals, quoteDecimals int32) (*Balances, error) {
	base, err := NewBalance(initialBase, baseSymbol, baseDecimals)
	if err != nil {
		return nil, fmt.Errorf("base balance: %w", err)
	}
	quote, err := NewBalance(initialQuote, quoteSymbol, quoteDecimals)
	if err != nil {
		return nil, fmt.Errorf("quote balance: %w", err)
	}
	return &Balances{
		Base:          base,
		Quote:         quote,
		BaseDecimals:  baseDecimals,
		QuoteDecimals: quoteDecimals,
		Loans:         make(map[LoanID]*Loan),
	}, nil
}

// collateralMultiplier returns 1 + 1/leverage, the fraction of notional
// reserved as margin at the given leverage (matching
// taosim::util::dec1p(decInv1p) composed manually since the factor
// needed here is 1+1/L, not 1/(1+L)).
func collateralMultiplier(leverage decimal.Decimal) decimal.Decimal {
	inv := decimal.NewFromInt(1).Div(leverage)
	return decimal.OnePlus(inv)
}

// OpenLoan opens a leveraged position of the given direction, amount
// (base-denominated size), entry price, and leverage, reserving
// collateral out of the encumbered currency: Quote for a Buy loan,
// Base for a Sell loan.
func (b *Balances) OpenLoan(direction event.Direction, amount, price, leverage decimal.Decimal) (LoanID, error) {
	multiplier := collateralMultiplier(leverage)
	loan := &Loan{Amount: amount, Price: price, Leverage: leverage, Direction: direction}

	switch direction {
	case event.Buy:
		notional := price.Mul(amount)
		reserve := notional.Mul(multiplier)
		if err := b.Quote.Reserve(reserve); err != nil {
			return 0, err
		}
		loan.Collateral.Quote = reserve
		b.QuoteLoan = b.QuoteLoan.Add(notional)
		b.QuoteCollateral = b.QuoteCollateral.Add(reserve)
	case event.Sell:
		reserve := amount.Mul(multiplier)
		if err := b.Base.Reserve(reserve); err != nil {
			return 0, err
		}
		loan.Collateral.Base = reserve
		b.BaseLoan = b.BaseLoan.Add(amount)
		b.BaseCollateral = b.BaseCollateral.Add(reserve)
	}

	id := LoanID(b.nextLoanID)
	b.nextLoanID++
	b.Loans[id] = loan
	return id, nil
}

// CloseLoan closes a previously opened loan at closePrice, releasing
// its collateral back to the currency it was reserved from and
// crediting realized P/L to the opposite currency: a Buy loan's profit
// is settled in Base (inverse-style settlement, since its collateral
// sat in Quote), a Sell loan's profit is settled in Quote.
func (b *Balances) CloseLoan(id LoanID, closePrice decimal.Decimal) (decimal.Decimal, error) {
	loan, ok := b.Loans[id]
	if !ok {
		return decimal.Zero, fmt.Errorf("accounting: unknown loan id %d", id)
	}

	var pnl decimal.Decimal
	switch loan.Direction {
	case event.Buy:
		pnlQuote := closePrice.Sub(loan.Price).Mul(loan.Amount)
		pnl = pnlQuote.Div(closePrice)
		if err := b.Quote.Release(loan.Collateral.Quote); err != nil {
			return decimal.Zero, err
		}
		b.Base.Credit(pnl)
		b.QuoteLoan = b.QuoteLoan.Sub(loan.Price.Mul(loan.Amount))
		b.QuoteCollateral = b.QuoteCollateral.Sub(loan.Collateral.Quote)
	case event.Sell:
		pnl = loan.Price.Sub(closePrice).Mul(loan.Amount)
		if err := b.Base.Release(loan.Collateral.Base); err != nil {
			return decimal.Zero, err
		}
		b.Quote.Credit(pnl)
		b.BaseLoan = b.BaseLoan.Sub(loan.Amount)
		b.BaseCollateral = b.BaseCollateral.Sub(loan.Collateral.Base)
	}

	delete(b.Loans, id)
	return pnl, nil
}

// checkpointBalance mirrors the 6-key Balance map shape:
// {initial,free,reserved,total,symbol,roundingDecimals}.
type checkpointBalance struct {
	Initial          float64 `json:"initial"`
	Free             float64 `json:"free"`
	Reserved         float64 `json:"reserved"`
	Total            float64 `json:"total"`
	Symbol           *string `json:"symbol"`
	RoundingDecimals int32   `json:"roundingDecimals"`
}

func toCheckpointBalance(b *Balance) checkpointBalance {
	return checkpointBalance{
		Initial:          b.Initial.Float64(),
		Free:             b.Free.Float64(),
		Reserved:         b.Reserved.Float64(),
		Total:            b.Total().Float64(),
		Symbol:           b.Symbol,
		RoundingDecimals: b.RoundingDecimals,
	}
}

// checkpointLoan mirrors the Loans array entry shape:
// {id,amount,currency,baseCollateral,quoteCollateral}.
type checkpointLoan struct {
	ID              uint64  `json:"id"`
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency"`
	BaseCollateral  float64 `json:"baseCollateral"`
	QuoteCollateral float64 `json:"quoteCollateral"`
}

// checkpointBalances mirrors the 9-key Balances map shape.
type checkpointBalances struct {
	BaseDecimals    int32             `json:"baseDecimals"`
	QuoteDecimals   int32             `json:"quoteDecimals"`
	BaseLoan        float64           `json:"baseLoan"`
	QuoteLoan       float64           `json:"quoteLoan"`
	BaseCollateral  float64           `json:"baseCollateral"`
	QuoteCollateral float64           `json:"quoteCollateral"`
	Base            checkpointBalance `json:"base"`
	Quote           checkpointBalance `json:"quote"`
	Loans           []checkpointLoan  `json:"Loans"`
}

// Checkpoint renders the JSON-shaped snapshot for checkpoint
// serialization, as a plain value rather than writing it to any file
// (file I/O is out of scope for this kernel).
func (b *Balances) Checkpoint() any {
	loans := make([]checkpointLoan, 0, len(b.Loans))
	for id, loan := range b.Loans {
		currency := "QUOTE"
		if loan.Direction == event.Sell {
			currency = "BASE"
		}
		loans = append(loans, checkpointLoan{
			ID:              uint64(id),
			Amount:          loan.Amount.Float64(),
			Currency:        currency,
			BaseCollateral:  loan.Collateral.Base.Float64(),
			QuoteCollateral: loan.Collateral.Quote.Float64(),
		})
	}
	return checkpointBalances{
		BaseDecimals:    b.BaseDecimals,
		QuoteDecimals:   b.QuoteDecimals,
		BaseLoan:        b.BaseLoan.Float64(),
		QuoteLoan:       b.QuoteLoan.Float64(),
		BaseCollateral:  b.BaseCollateral.Float64(),
		QuoteCollateral: b.QuoteCollateral.Float64(),
		Base:            toCheckpointBalance(b.Base),
		Quote:           toCheckpointBalance(b.Quote),
		Loans:           loans,
	}
}
