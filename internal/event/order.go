// Package event holds the order/event value types of the simulation
// kernel: Order, Cancellation, CancellationEvent, OrderEvent, Trade,
// and the L3 per-order record trail.
package event

import (
	"github.com/axonsim/exchange-sim/internal/decimal"
)

// OrderID identifies an order within a simulation instance.
type OrderID uint64

// AgentID identifies an agent (trader) within a simulation instance.
type AgentID int64

// Direction is the side of an order or trade.
type Direction int8

const (
	Buy Direction = iota
	Sell
)

func (d Direction) String() string {
	if d == Buy {
		return "BUY"
	}
	return "SELL"
}

// TimeInForce governs how an order interacts with the book on arrival.
type TimeInForce int8

const (
	GTC TimeInForce = iota // Good-Til-Cancelled: rests until filled/cancelled.
	IOC                    // Immediate-Or-Cancel: fills available, cancels remainder.
	FOK                    // Fill-Or-Kill: fills fully or cancels without trading.
)

// STPFlag is the self-trade prevention behavior requested by an order.
type STPFlag int8

const (
	STPNone STPFlag = iota
	STPCancelOldest
	STPCancelNewest
	STPCancelBoth
	STPDecreaseAndCancel
)

// Order is a resting or incoming limit/market order.
type Order struct {
	ID             OrderID
	AgentID        AgentID
	ClientOrderID  *uint64
	Direction      Direction
	Price          *decimal.Decimal // nil => market order
	Volume         decimal.Decimal  // remaining unfilled size
	Leverage       decimal.Decimal
	TimeInForce    *TimeInForce
	PostOnly       bool
	ExpiryPeriod   *int64 // simulated-time timespan, nil => no expiry
	STPFlag        STPFlag
}

// TotalVolume returns the order's remaining unfilled size.
func (o *Order) TotalVolume() decimal.Decimal {
	return o.Volume
}

// IsMarket reports whether the order has no limit price.
func (o *Order) IsMarket() bool {
	return o.Price == nil
}

// Cancellation requests that an order be fully or partially cancelled.
// A nil Volume means a full cancel.
type Cancellation struct {
	ID     OrderID
	Volume *decimal.Decimal
}

// JSON renders the full wire form: {"event":"cancel","orderId":...,"volume":...}.
func (c Cancellation) JSON() map[string]any {
	m := map[string]any{
		"event":   "cancel",
		"orderId": uint64(c.ID),
	}
	if c.Volume != nil {
		m["volume"] = c.Volume.Float64()
	} else {
		m["volume"] = nil
	}
	return m
}

// L3JSON renders the compact L3 form: {"e":"cancel","i":...,"v":...}.
func (c Cancellation) L3JSON() map[string]any {
	m := map[string]any{
		"e": "cancel",
		"i": uint64(c.ID),
	}
	if c.Volume != nil {
		m["v"] = c.Volume.Float64()
	} else {
		m["v"] = nil
	}
	return m
}

// CancellationEvent records a cancellation at a point in simulated
// time and the price level it affected.
type CancellationEvent struct {
	Cancellation Cancellation
	Timestamp    int64
	Price        decimal.Decimal
}

// OrderEvent records a placement with all Order fields (including the
// submitting AgentID) plus the placement Timestamp, for L3 market data.
type OrderEvent struct {
	Order
	Timestamp int64
}
