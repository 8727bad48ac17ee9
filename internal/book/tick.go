// Package book implements the tick ladder / order-container data
// structure: price-level queues with volume aggregates, generalized
// from an int64-price heap+FIFO-slice orderbook to decimal prices and
// an explicit parent-aggregate volume invariant.
package book

import (
	"container/list"

	"github.com/axonsim/exchange-sim/internal/decimal"
	"github.com/axonsim/exchange-sim/internal/event"
)

// Tick is a single price level: an ordered (FIFO) queue of orders and
// the aggregate volume resting at that price.
//
// Invariant: volume == sum of TotalVolume() across all orders in the
// queue. PushBack, PopFront and Remove (cancellation) are the only
// queue mutations; any
// volume delta applied directly (via UpdateVolume, for partial fills)
// propagates to the parent OrderContainer.
type Tick struct {
	price     decimal.Decimal
	orders    *list.List // list.Element.Value is *event.Order
	volume    decimal.Decimal
	container *OrderContainer
}

func newTick(container *OrderContainer, price decimal.Decimal) *Tick {
	return &Tick{
		price:     price,
		orders:    list.New(),
		container: container,
	}
}

// Price returns the tick's price level.
func (t *Tick) Price() decimal.Decimal { return t.price }

// Volume returns the tick's aggregate resting volume.
func (t *Tick) Volume() decimal.Decimal { return t.volume }

// Len returns the number of orders resting at this tick.
func (t *Tick) Len() int { return t.orders.Len() }

// Front returns the oldest order at this tick, or nil if empty.
func (t *Tick) Front() *event.Order {
	if e := t.orders.Front(); e != nil {
		return e.Value.(*event.Order)
	}
	return nil
}

// Orders returns the resting orders at this tick, oldest first.
func (t *Tick) Orders() []*event.Order {
	out := make([]*event.Order, 0, t.orders.Len())
	for e := t.orders.Front(); e != nil; e = e.Next() {
		out = append(out, e.Value.(*event.Order))
	}
	return out
}

// PushBack appends an order and increments both this tick's volume
// and its parent container's volume by the order's total volume.
func (t *Tick) PushBack(o *event.Order) {
	t.orders.PushBack(o)
	t.volume = t.volume.Add(o.TotalVolume())
	t.container.updateVolume(o.TotalVolume())
}

// PopFront removes the oldest order without adjusting volume; callers
// must call UpdateVolume separately to reflect the consumed amount.
func (t *Tick) PopFront() *event.Order {
	e := t.orders.Front()
	if e == nil {
		return nil
	}
	t.orders.Remove(e)
	return e.Value.(*event.Order)
}

// Remove deletes a specific order from the tick's FIFO queue (used by
// cancellation), adjusting volume by -delta.
func (t *Tick) Remove(id event.OrderID, delta decimal.Decimal) bool {
	for e := t.orders.Front(); e != nil; e = e.Next() {
		if e.Value.(*event.Order).ID == id {
			t.orders.Remove(e)
			t.UpdateVolume(delta.Neg())
			return true
		}
	}
	return false
}

// UpdateVolume applies a volume delta to this tick and propagates it
// to the parent container, keeping the container.volume ==
// sum(tick.volume) invariant.
func (t *Tick) UpdateVolume(delta decimal.Decimal) {
	t.volume = t.volume.Add(delta)
	t.container.updateVolume(delta)
}

// Empty reports whether no orders rest at this tick.
func (t *Tick) Empty() bool { return t.orders.Len() == 0 }
