package event

import (
	"testing"

	"github.com/axonsim/exchange-sim/internal/decimal"
)

func TestL3RecordContainerAppendAndRecordsAreOrderedPerBook(t *testing.T) {
	c := NewL3RecordContainer()
	c.Append(1, L3Record{Trade: &Trade{BookID: 1, Price: decimal.Zero}})
	c.Append(2, L3Record{Trade: &Trade{BookID: 2, Price: decimal.Zero}})
	c.Append(1, L3Record{Trade: &Trade{BookID: 1, Price: decimal.Zero}})

	if got := len(c.Records(1)); got != 2 {
		t.Fatalf("expected 2 records for book 1, got %d", got)
	}
	if got := len(c.Records(2)); got != 1 {
		t.Fatalf("expected 1 record for book 2, got %d", got)
	}
	if got := len(c.Records(3)); got != 0 {
		t.Fatalf("expected 0 records for an untouched book, got %d", got)
	}
}

func TestL3RecordContainerUnderlyingExposesFullMap(t *testing.T) {
	c := NewL3RecordContainer()
	c.Append(5, L3Record{Trade: &Trade{BookID: 5, Price: decimal.Zero}})

	m := c.Underlying()
	if _, ok := m[5]; !ok {
		t.Fatalf("expected book 5 present in underlying map")
	}
}
