// Package feepolicy implements the maker/taker fee schedules applied
// to trades: a flat zero policy, a static symmetric rate, and a VIP
// range that waives fees for a configured agent-id band, selected
// through a factory keyed by a config descriptor type string.
package feepolicy

import (
	"github.com/axonsim/exchange-sim/internal/decimal"
	"github.com/axonsim/exchange-sim/internal/event"
	"github.com/axonsim/exchange-sim/internal/kernelerr"
)

// Fees is a maker/taker fee pair, either a rate (GetRates) or an
// absolute amount (CalculateFees' result).
type Fees struct {
	Maker decimal.Decimal
	Taker decimal.Decimal
}

// TradeDesc is the minimal trade information a fee policy needs to
// compute fees for both sides of a match.
type TradeDesc struct {
	MakerAgentID event.AgentID
	TakerAgentID event.AgentID
	Price        decimal.Decimal
	Volume       decimal.Decimal
}

// Policy computes fees for a trade and reports its nominal rates.
type Policy interface {
	CalculateFees(desc TradeDesc) Fees
	GetRates() Fees
}

func checkFeeRate(rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterOrEqual(decimal.NewFromInt(1)) {
		return kernelerr.New(kernelerr.KindInvalidArgument, kernelerr.CauseInvalidFeeRate,
			"fee rate must be in [0, 1), got %s", rate)
	}
	return nil
}

// ZeroPolicy charges no fees.
type ZeroPolicy struct{}

func (ZeroPolicy) CalculateFees(TradeDesc) Fees { return Fees{Maker: decimal.Zero, Taker: decimal.Zero} }
func (ZeroPolicy) GetRates() Fees               { return Fees{Maker: decimal.Zero, Taker: decimal.Zero} }

// StaticPolicy charges a constant maker/taker rate symmetrically on
// both the buy and sell side of a trade.
type StaticPolicy struct {
	MakerRate decimal.Decimal
	TakerRate decimal.Decimal
}

// NewStaticPolicy validates both rates are in [0,1) before returning a
// StaticPolicy.
func NewStaticPolicy(makerRate, takerRate decimal.Decimal) (*StaticPolicy, error) {
	if err := checkFeeRate(makerRate); err != nil {
		return nil, err
	}
	if err := checkFeeRate(takerRate); err != nil {
		return nil, err
	}
	return &StaticPolicy{MakerRate: makerRate, TakerRate: takerRate}, nil
}

func (p *StaticPolicy) CalculateFees(desc TradeDesc) Fees {
	notional := desc.Price.Mul(desc.Volume)
	return Fees{
		Maker: notional.Mul(p.MakerRate),
		Taker: notional.Mul(p.TakerRate),
	}
}

func (p *StaticPolicy) GetRates() Fees {
	return Fees{Maker: p.MakerRate, Taker: p.TakerRate}
}

// VIPRangePolicy charges the static rates for everyone except agents
// whose id falls within [AgentIDLowerBound, AgentIDUpperBound]
// (inclusive), who trade fee-free on whichever side they occupy.
type VIPRangePolicy struct {
	MakerRate         decimal.Decimal
	TakerRate         decimal.Decimal
	AgentIDLowerBound event.AgentID
	AgentIDUpperBound event.AgentID
}

// NewVIPRangePolicy validates the rates and that lower < upper.
func NewVIPRangePolicy(makerRate, takerRate decimal.Decimal, lower, upper event.AgentID) (*VIPRangePolicy, error) {
	if err := checkFeeRate(makerRate); err != nil {
		return nil, err
	}
	if err := checkFeeRate(takerRate); err != nil {
		return nil, err
	}
	if lower >= upper {
		return nil, kernelerr.New(kernelerr.KindInvalidArgument, kernelerr.CauseInvalidRange,
			"agent id range [%d, %d] is empty or inverted", lower, upper)
	}
	return &VIPRangePolicy{
		MakerRate:         makerRate,
		TakerRate:         takerRate,
		AgentIDLowerBound: lower,
		AgentIDUpperBound: upper,
	}, nil
}

func (p *VIPRangePolicy) inRange(id event.AgentID) bool {
	return id >= p.AgentIDLowerBound && id <= p.AgentIDUpperBound
}

func (p *VIPRangePolicy) CalculateFees(desc TradeDesc) Fees {
	notional := desc.Price.Mul(desc.Volume)
	fees := Fees{Maker: notional.Mul(p.MakerRate), Taker: notional.Mul(p.TakerRate)}
	if p.inRange(desc.MakerAgentID) {
		fees.Maker = decimal.Zero
	}
	if p.inRange(desc.TakerAgentID) {
		fees.Taker = decimal.Zero
	}
	return fees
}

func (p *VIPRangePolicy) GetRates() Fees {
	return Fees{Maker: p.MakerRate, Taker: p.TakerRate}
}
