package book

import (
	"container/heap"

	"github.com/axonsim/exchange-sim/internal/decimal"
	"github.com/axonsim/exchange-sim/internal/event"
)

// Side selects which direction an OrderContainer ladders toward:
// ascending price (ask side) or descending price (bid side).
type Side int8

const (
	Ascending Side = iota // ask ladder: best = lowest price
	Descending            // bid ladder: best = highest price
)

// priceHeap is a decimal-price min/max heap of tick price levels,
// generalizing an int64-price MaxPriceHeap/MinPriceHeap pair to
// decimal.Decimal prices with a selectable Side.
type priceHeap struct {
	prices []decimal.Decimal
	side   Side
}

func (h priceHeap) Len() int { return len(h.prices) }
func (h priceHeap) Less(i, j int) bool {
	if h.side == Ascending {
		return h.prices[i].LessThan(h.prices[j])
	}
	return h.prices[i].GreaterThan(h.prices[j])
}
func (h priceHeap) Swap(i, j int) { h.prices[i], h.prices[j] = h.prices[j], h.prices[i] }
func (h *priceHeap) Push(x any)   { h.prices = append(h.prices, x.(decimal.Decimal)) }
func (h *priceHeap) Pop() any {
	old := h.prices
	n := len(old)
	x := old[n-1]
	h.prices = old[:n-1]
	return x
}

// OrderContainer is one side of one book: an ordered sequence of
// Ticks with a mirrored aggregate volume.
//
// Invariant: container.volume == sum of tick.volume across all ticks.
type OrderContainer struct {
	side   Side
	heap   *priceHeap
	ticks  map[string]*Tick // price.String() -> tick, for O(1) lookup
	orders map[event.OrderID]decimal.Decimal // order id -> resting price, for O(1) cancel
	volume decimal.Decimal
}

// NewOrderContainer returns an empty container laddered in the given
// direction (Ascending for asks, Descending for bids).
func NewOrderContainer(side Side) *OrderContainer {
	h := &priceHeap{side: side}
	heap.Init(h)
	return &OrderContainer{
		side:   side,
		heap:   h,
		ticks:  make(map[string]*Tick),
		orders: make(map[event.OrderID]decimal.Decimal),
	}
}

// Volume returns the container's aggregate resting volume.
func (c *OrderContainer) Volume() decimal.Decimal { return c.volume }

func (c *OrderContainer) updateVolume(delta decimal.Decimal) {
	c.volume = c.volume.Add(delta)
}

// Best returns the best tick (lowest price for an ask ladder, highest
// for a bid ladder), or nil if the container is empty.
func (c *OrderContainer) Best() *Tick {
	for c.heap.Len() > 0 {
		price := c.heap.prices[0]
		key := price.String()
		tick, ok := c.ticks[key]
		if !ok || tick.Empty() {
			heap.Pop(c.heap)
			delete(c.ticks, key)
			continue
		}
		return tick
	}
	return nil
}

// TickAt returns the tick at an exact price, or nil if none exists.
func (c *OrderContainer) TickAt(price decimal.Decimal) *Tick {
	return c.ticks[price.String()]
}

// Add inserts an order at its limit price, creating the tick if
// necessary, and records the order for O(1) cancellation lookup.
func (c *OrderContainer) Add(o *event.Order) {
	price := *o.Price
	key := price.String()
	tick, ok := c.ticks[key]
	if !ok {
		tick = newTick(c, price)
		c.ticks[key] = tick
		heap.Push(c.heap, price)
	}
	tick.PushBack(o)
	c.orders[o.ID] = price
}

// Remove cancels (fully) the order with the given id, wherever it
// rests, adjusting volume by -delta. Returns false if not found.
func (c *OrderContainer) Remove(id event.OrderID, delta decimal.Decimal) bool {
	price, ok := c.orders[id]
	if !ok {
		return false
	}
	tick, ok := c.ticks[price.String()]
	if !ok {
		return false
	}
	if !tick.Remove(id, delta) {
		return false
	}
	delete(c.orders, id)
	if tick.Empty() {
		delete(c.ticks, price.String())
	}
	return true
}

// PriceOf returns the resting price of an order, if present.
func (c *OrderContainer) PriceOf(id event.OrderID) (decimal.Decimal, bool) {
	p, ok := c.orders[id]
	return p, ok
}

// DropEmptyBest pops the best tick off the heap when it has emptied
// out (e.g. after a full fill), keeping Best() O(1) amortized. It is
// a no-op if the best tick is non-empty.
func (c *OrderContainer) DropEmptyBest() {
	if c.heap.Len() == 0 {
		return
	}
	price := c.heap.prices[0]
	key := price.String()
	if tick, ok := c.ticks[key]; ok && tick.Empty() {
		heap.Pop(c.heap)
		delete(c.ticks, key)
	}
}

// Ticks returns all non-empty ticks ordered best-first.
func (c *OrderContainer) Ticks() []*Tick {
	out := make([]*Tick, 0, len(c.ticks))
	prices := append([]decimal.Decimal(nil), c.heap.prices...)
	h := &priceHeap{prices: prices, side: c.side}
	for h.Len() > 0 {
		p := heap.Pop(h).(decimal.Decimal)
		if tick, ok := c.ticks[p.String()]; ok && !tick.Empty() {
			out = append(out, tick)
		}
	}
	return out
}
