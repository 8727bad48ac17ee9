package book

import (
	"github.com/axonsim/exchange-sim/internal/decimal"
	"github.com/axonsim/exchange-sim/internal/event"
	"github.com/axonsim/exchange-sim/internal/kernelerr"
)

// Book is a single limit-order book: the ask ladder (ascending
// price), the bid ladder (descending price), and the last trade
// price.
type Book struct {
	ID             event.BookID
	Bids           *OrderContainer
	Asks           *OrderContainer
	LastTradePrice *decimal.Decimal
}

// New returns an empty book with the given id.
func New(id event.BookID) *Book {
	return &Book{
		ID:   id,
		Bids: NewOrderContainer(Descending),
		Asks: NewOrderContainer(Ascending),
	}
}

// BestBid returns the best (highest) resting bid tick, or nil.
func (b *Book) BestBid() *Tick { return b.Bids.Best() }

// BestAsk returns the best (lowest) resting ask tick, or nil.
func (b *Book) BestAsk() *Tick { return b.Asks.Best() }

// Fill is a single match produced while placing an order.
type Fill struct {
	MakerOrder *event.Order
	TakerOrder *event.Order
	Price      decimal.Decimal
	Volume     decimal.Decimal
}

// Place matches an incoming order price-time priority against the
// opposite side, then rests any remainder per its TimeInForce/PostOnly
// flags, generalized to decimal prices, TIF semantics, and post-only
// rejection.
//
// GTC rests any remainder. IOC fills what it can and discards the
// rest. FOK requires the order to either fill completely against
// resting liquidity or not trade at all. PostOnly rejects an order
// that would cross the book at all.
func (b *Book) Place(o *event.Order) ([]Fill, error) {
	opposite, same := b.sides(o.Direction)

	if o.PostOnly && o.Price != nil {
		if crosses(opposite, o.Direction, *o.Price) {
			return nil, kernelerr.New(kernelerr.KindOrderRejection, kernelerr.CausePostOnlyCross,
				"order %d would cross the book", o.ID)
		}
	}

	tif := event.GTC
	if o.TimeInForce != nil {
		tif = *o.TimeInForce
	}

	if tif == event.FOK {
		if !fullyFillable(opposite, o) {
			return nil, kernelerr.New(kernelerr.KindOrderRejection, kernelerr.CauseFillOrKillUnsatisfied,
				"order %d cannot be filled in full", o.ID)
		}
	}

	fills := b.match(opposite, o)

	if o.TotalVolume().IsPositive() {
		switch tif {
		case event.GTC:
			if o.Price != nil {
				cp := *o
				same.Add(&cp)
			}
		case event.IOC, event.FOK:
			// remainder discarded, no resting order
		}
	}

	return fills, nil
}

func (b *Book) sides(dir event.Direction) (opposite, same *OrderContainer) {
	if dir == event.Buy {
		return b.Asks, b.Bids
	}
	return b.Bids, b.Asks
}

// crosses reports whether a limit order at price p on direction dir
// would immediately match the opposite side's best price.
func crosses(opposite *OrderContainer, dir event.Direction, p decimal.Decimal) bool {
	best := opposite.Best()
	if best == nil {
		return false
	}
	if dir == event.Buy {
		return p.GreaterOrEqual(best.Price())
	}
	return p.LessOrEqual(best.Price())
}

// fullyFillable simulates whether the opposite side currently holds
// enough matchable volume at acceptable prices to fill o completely,
// without mutating the book.
func fullyFillable(opposite *OrderContainer, o *event.Order) bool {
	remaining := o.TotalVolume()
	for _, tick := range opposite.Ticks() {
		if o.Price != nil && !priceAcceptable(o.Direction, *o.Price, tick.Price()) {
			break
		}
		remaining = remaining.Sub(tick.Volume())
		if !remaining.IsPositive() {
			return true
		}
	}
	return !remaining.IsPositive()
}

func priceAcceptable(dir event.Direction, limit, tickPrice decimal.Decimal) bool {
	if dir == event.Buy {
		return tickPrice.LessOrEqual(limit)
	}
	return tickPrice.GreaterOrEqual(limit)
}

// match consumes resting liquidity on the opposite side in price-time
// priority until o is filled, the opposite side is exhausted, or the
// next resting price is no longer acceptable.
func (b *Book) match(opposite *OrderContainer, o *event.Order) []Fill {
	var fills []Fill

	for o.TotalVolume().IsPositive() {
		tick := opposite.Best()
		if tick == nil {
			break
		}
		if o.Price != nil && !priceAcceptable(o.Direction, *o.Price, tick.Price()) {
			break
		}
		maker := tick.Front()
		if maker == nil {
			opposite.DropEmptyBest()
			continue
		}

		matched := o.TotalVolume()
		if maker.TotalVolume().LessThan(matched) {
			matched = maker.TotalVolume()
		}

		o.Volume = o.Volume.Sub(matched)
		maker.Volume = maker.Volume.Sub(matched)
		tick.UpdateVolume(matched.Neg())

		price := tick.Price()
		b.LastTradePrice = &price

		fills = append(fills, Fill{
			MakerOrder: maker,
			TakerOrder: o,
			Price:      price,
			Volume:     matched,
		})

		if !maker.TotalVolume().IsPositive() {
			tick.PopFront()
			delete(opposite.orders, maker.ID)
			if tick.Empty() {
				opposite.DropEmptyBest()
			}
		}
	}

	return fills
}

// Cancel removes (fully or partially) a resting order from whichever
// side it rests on. A nil volume means a full cancel.
func (b *Book) Cancel(id event.OrderID, volume *decimal.Decimal) (decimal.Decimal, bool) {
	for _, side := range [2]*OrderContainer{b.Bids, b.Asks} {
		price, ok := side.PriceOf(id)
		if !ok {
			continue
		}
		tick := side.TickAt(price)
		if tick == nil {
			continue
		}
		var order *event.Order
		for _, o := range tick.Orders() {
			if o.ID == id {
				order = o
				break
			}
		}
		if order == nil {
			continue
		}
		delta := order.TotalVolume()
		if volume != nil && volume.LessThan(delta) {
			delta = *volume
		}
		if volume == nil || volume.GreaterOrEqual(order.TotalVolume()) {
			side.Remove(id, order.TotalVolume())
		} else {
			order.Volume = order.Volume.Sub(delta)
			tick.UpdateVolume(delta.Neg())
		}
		return delta, true
	}
	return decimal.Zero, false
}
