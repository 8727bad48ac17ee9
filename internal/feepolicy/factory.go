package feepolicy

import (
	"github.com/axonsim/exchange-sim/internal/decimal"
	"github.com/axonsim/exchange-sim/internal/event"
)

func floatToDecimal(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

// Descriptor is the config-layer shape a Policy is built from, read by
// internal/config from the viper-backed fee-policy section (YAML/JSON
// rather than XML).
type Descriptor struct {
	Type              string  `mapstructure:"type"`
	MakerFee          float64 `mapstructure:"makerFee"`
	TakerFee          float64 `mapstructure:"takerFee"`
	AgentIDLowerBound int64   `mapstructure:"agentIdLowerBound"`
	AgentIDUpperBound int64   `mapstructure:"agentIdUpperBound"`
}

// NewFromDescriptor builds a Policy from a config Descriptor. An
// unrecognized or empty Type defaults to ZeroPolicy.
func NewFromDescriptor(desc Descriptor) (Policy, error) {
	switch desc.Type {
	case "static":
		maker := floatToDecimal(desc.MakerFee)
		taker := floatToDecimal(desc.TakerFee)
		return NewStaticPolicy(maker, taker)
	case "vip":
		maker := floatToDecimal(desc.MakerFee)
		taker := floatToDecimal(desc.TakerFee)
		return NewVIPRangePolicy(maker, taker, event.AgentID(desc.AgentIDLowerBound), event.AgentID(desc.AgentIDUpperBound))
	default:
		return ZeroPolicy{}, nil
	}
}
