package book

import (
	"testing"

	"github.com/axonsim/exchange-sim/internal/decimal"
	"github.com/axonsim/exchange-sim/internal/event"
)

func price(s string) *decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return &d
}

func vol(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func sumOrderVolumes(c *OrderContainer) decimal.Decimal {
	total := decimal.Zero
	for _, tick := range c.Ticks() {
		for _, o := range tick.Orders() {
			total = total.Add(o.TotalVolume())
		}
	}
	return total
}

func assertInvariant(t *testing.T, b *Book) {
	t.Helper()
	for _, side := range []*OrderContainer{b.Bids, b.Asks} {
		tickSum := decimal.Zero
		for _, tick := range side.Ticks() {
			orderSum := decimal.Zero
			for _, o := range tick.Orders() {
				orderSum = orderSum.Add(o.TotalVolume())
			}
			if !orderSum.Equal(tick.Volume()) {
				t.Fatalf("tick %s volume %s != sum of orders %s", tick.Price(), tick.Volume(), orderSum)
			}
			tickSum = tickSum.Add(tick.Volume())
		}
		if !tickSum.Equal(side.Volume()) {
			t.Fatalf("container volume %s != sum of ticks %s", side.Volume(), tickSum)
		}
	}
}

func TestRestingOrderVolumeInvariant(t *testing.T) {
	b := New(1)
	b.Bids.Add(&event.Order{ID: 1, Direction: event.Buy, Price: price("100"), Volume: vol("5")})
	b.Bids.Add(&event.Order{ID: 2, Direction: event.Buy, Price: price("100"), Volume: vol("3")})
	b.Bids.Add(&event.Order{ID: 3, Direction: event.Buy, Price: price("99"), Volume: vol("2")})
	assertInvariant(t, b)
}

func TestMatchFullyConsumesMaker(t *testing.T) {
	b := New(1)
	b.Asks.Add(&event.Order{ID: 1, Direction: event.Sell, Price: price("100"), Volume: vol("5")})

	taker := &event.Order{ID: 2, Direction: event.Buy, Price: price("100"), Volume: vol("5")}
	fills, err := b.Place(taker)
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if len(fills) != 1 {
		t.Fatalf("expected 1 fill, got %d", len(fills))
	}
	if !fills[0].Volume.Equal(vol("5")) {
		t.Fatalf("expected fill volume 5, got %s", fills[0].Volume)
	}
	assertInvariant(t, b)
	if b.Asks.Best() != nil {
		t.Fatalf("expected ask side empty after full fill")
	}
}

func TestPartialFillRests(t *testing.T) {
	b := New(1)
	b.Asks.Add(&event.Order{ID: 1, Direction: event.Sell, Price: price("100"), Volume: vol("5")})

	taker := &event.Order{ID: 2, Direction: event.Buy, Price: price("100"), Volume: vol("8")}
	gtc := event.GTC
	taker.TimeInForce = &gtc
	fills, err := b.Place(taker)
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if len(fills) != 1 || !fills[0].Volume.Equal(vol("5")) {
		t.Fatalf("unexpected fills: %+v", fills)
	}
	assertInvariant(t, b)
	best := b.Bids.Best()
	if best == nil || !best.Volume().Equal(vol("3")) {
		t.Fatalf("expected 3 resting on bid side, got %+v", best)
	}
}

func TestIOCDiscardsRemainder(t *testing.T) {
	b := New(1)
	b.Asks.Add(&event.Order{ID: 1, Direction: event.Sell, Price: price("100"), Volume: vol("2")})

	ioc := event.IOC
	taker := &event.Order{ID: 2, Direction: event.Buy, Price: price("100"), Volume: vol("5"), TimeInForce: &ioc}
	fills, err := b.Place(taker)
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if len(fills) != 1 {
		t.Fatalf("expected 1 fill, got %d", len(fills))
	}
	if b.Bids.Best() != nil {
		t.Fatalf("IOC remainder should not rest")
	}
	assertInvariant(t, b)
}

func TestFillOrKillRejectsWhenUnsatisfiable(t *testing.T) {
	b := New(1)
	b.Asks.Add(&event.Order{ID: 1, Direction: event.Sell, Price: price("100"), Volume: vol("2")})

	fok := event.FOK
	taker := &event.Order{ID: 2, Direction: event.Buy, Price: price("100"), Volume: vol("5"), TimeInForce: &fok}
	_, err := b.Place(taker)
	if err == nil {
		t.Fatalf("expected FOK rejection")
	}
	assertInvariant(t, b)
}

func TestPostOnlyRejectsCrossingOrder(t *testing.T) {
	b := New(1)
	b.Asks.Add(&event.Order{ID: 1, Direction: event.Sell, Price: price("100"), Volume: vol("2")})

	taker := &event.Order{ID: 2, Direction: event.Buy, Price: price("101"), Volume: vol("1"), PostOnly: true}
	_, err := b.Place(taker)
	if err == nil {
		t.Fatalf("expected post-only rejection")
	}
}

func TestCancelFullAdjustsVolume(t *testing.T) {
	b := New(1)
	b.Bids.Add(&event.Order{ID: 1, Direction: event.Buy, Price: price("100"), Volume: vol("5")})
	cancelled, ok := b.Cancel(1, nil)
	if !ok {
		t.Fatalf("expected cancel to succeed")
	}
	if !cancelled.Equal(vol("5")) {
		t.Fatalf("expected cancelled volume 5, got %s", cancelled)
	}
	assertInvariant(t, b)
	if b.Bids.Best() != nil {
		t.Fatalf("expected empty bid side after cancel")
	}
}

func TestCancelPartial(t *testing.T) {
	b := New(1)
	b.Bids.Add(&event.Order{ID: 1, Direction: event.Buy, Price: price("100"), Volume: vol("5")})
	partial := vol("2")
	cancelled, ok := b.Cancel(1, &partial)
	if !ok {
		t.Fatalf("expected cancel to succeed")
	}
	if !cancelled.Equal(vol("2")) {
		t.Fatalf("expected cancelled volume 2, got %s", cancelled)
	}
	assertInvariant(t, b)
	best := b.Bids.Best()
	if best == nil || !best.Volume().Equal(vol("3")) {
		t.Fatalf("expected 3 remaining, got %+v", best)
	}
}
