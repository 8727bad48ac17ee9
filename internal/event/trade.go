package event

import "github.com/axonsim/exchange-sim/internal/decimal"

// BookID identifies a single limit-order book within a simulation.
type BookID uint32

// TradeContext carries the book a trade occurred on, for nested
// book-id canonicalization when a trade event is wrapped in a
// distributed-agent message (see internal/partition).
type TradeContext struct {
	BookID BookID
}

// Trade records a completed match between a resting (maker) order and
// an aggressing (taker) order.
type Trade struct {
	RestingAgentID    AgentID
	AggressingAgentID AgentID
	Direction         Direction // direction of the aggressor
	Price             decimal.Decimal
	Volume            decimal.Decimal
	BookID            BookID
	Context           TradeContext
}

// L3Record is a single per-order market-data entry: a placement, a
// cancellation, or a trade, tagged by which it is.
type L3Record struct {
	Order        *OrderEvent
	Cancellation *CancellationEvent
	Trade        *Trade
}

// L3RecordContainer indexes L3 records by the book they occurred on,
// a per-book record trail keyed by bookId.
type L3RecordContainer struct {
	records map[BookID][]L3Record
}

// NewL3RecordContainer returns an empty container.
func NewL3RecordContainer() *L3RecordContainer {
	return &L3RecordContainer{records: make(map[BookID][]L3Record)}
}

// Append adds a record under the given book id.
func (c *L3RecordContainer) Append(bookID BookID, rec L3Record) {
	c.records[bookID] = append(c.records[bookID], rec)
}

// Records returns the record trail for a book, in insertion order.
func (c *L3RecordContainer) Records(bookID BookID) []L3Record {
	return c.records[bookID]
}

// Underlying returns the full per-book map, used for full-container
// serialization keyed by stringified bookId.
func (c *L3RecordContainer) Underlying() map[BookID][]L3Record {
	return c.records
}
