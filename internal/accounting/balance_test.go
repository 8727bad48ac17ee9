package accounting

import (
	"errors"
	"testing"

	"github.com/axonsim/exchange-sim/internal/decimal"
	"github.com/axonsim/exchange-sim/internal/kernelerr"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestNewBalanceRejectsNonPositiveRounding(t *testing.T) {
	_, err := NewBalance(d("100"), nil, 0)
	if err == nil {
		t.Fatalf("expected error for roundingDecimals=0")
	}
	var kerr *kernelerr.Error
	if !errors.As(err, &kerr) || kerr.Cause != kernelerr.CauseInvalidDecimalPlaces {
		t.Fatalf("expected InvalidDecimalPlaces, got %v", err)
	}
}

func TestReserveReleaseRoundTrip(t *testing.T) {
	b, err := NewBalance(d("1000"), nil, 2)
	if err != nil {
		t.Fatalf("NewBalance: %v", err)
	}
	if err := b.Reserve(d("400")); err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	if !b.Free.Equal(d("600")) || !b.Reserved.Equal(d("400")) {
		t.Fatalf("unexpected state after reserve: free=%s reserved=%s", b.Free, b.Reserved)
	}
	if err := b.Release(d("150")); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if !b.Free.Equal(d("750")) || !b.Reserved.Equal(d("250")) {
		t.Fatalf("unexpected state after release: free=%s reserved=%s", b.Free, b.Reserved)
	}
	if !b.Total().Equal(d("1000")) {
		t.Fatalf("expected total to remain 1000, got %s", b.Total())
	}
}

func TestReserveInsufficientFree(t *testing.T) {
	b, _ := NewBalance(d("100"), nil, 2)
	err := b.Reserve(d("200"))
	var kerr *kernelerr.Error
	if !errors.As(err, &kerr) || kerr.Cause != kernelerr.CauseInsufficientFree {
		t.Fatalf("expected InsufficientFree, got %v", err)
	}
}

func TestReleaseInsufficientReserved(t *testing.T) {
	b, _ := NewBalance(d("100"), nil, 2)
	err := b.Release(d("10"))
	var kerr *kernelerr.Error
	if !errors.As(err, &kerr) || kerr.Cause != kernelerr.CauseInsufficientReserved {
		t.Fatalf("expected InsufficientReserved, got %v", err)
	}
}

func TestCommitConsumesReservedWithoutReturningToFree(t *testing.T) {
	b, _ := NewBalance(d("100"), nil, 2)
	if err := b.Reserve(d("50")); err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	if err := b.Commit(d("20")); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if !b.Reserved.Equal(d("30")) || !b.Free.Equal(d("50")) {
		t.Fatalf("unexpected state after commit: free=%s reserved=%s", b.Free, b.Reserved)
	}
}

func TestCreditDebit(t *testing.T) {
	b, _ := NewBalance(d("0"), nil, 2)
	b.Credit(d("25"))
	if !b.Free.Equal(d("25")) {
		t.Fatalf("expected free=25, got %s", b.Free)
	}
	if err := b.Debit(d("10")); err != nil {
		t.Fatalf("Debit: %v", err)
	}
	if !b.Free.Equal(d("15")) {
		t.Fatalf("expected free=15, got %s", b.Free)
	}
	if err := b.Debit(d("100")); err == nil {
		t.Fatalf("expected InsufficientFree on over-debit")
	}
}

func TestAmountsRoundedToRoundingDecimals(t *testing.T) {
	b, _ := NewBalance(d("0"), nil, 2)
	b.Credit(d("1.00567"))
	if !b.Free.Equal(d("1.01")) {
		t.Fatalf("expected credit rounded to 2 places, got %s", b.Free)
	}
}
