package kernelerr

import (
	"errors"
	"testing"
)

func TestIsMatchesKindAndCauseIgnoringMessage(t *testing.T) {
	err := New(KindInsufficientFunds, CauseInsufficientFree, "need %d more", 5)
	sentinel := New(KindInsufficientFunds, CauseInsufficientFree, "")

	if !errors.Is(err, sentinel) {
		t.Fatalf("expected errors.Is to match on kind+cause, got false")
	}
}

func TestIsRejectsDifferentCause(t *testing.T) {
	err := New(KindInsufficientFunds, CauseInsufficientFree, "")
	other := New(KindInsufficientFunds, CauseInsufficientReserved, "")

	if errors.Is(err, other) {
		t.Fatalf("expected errors.Is to reject a different cause")
	}
}

func TestAsExtractsConcreteError(t *testing.T) {
	wrapped := error(New(KindInvalidArgument, CauseInvalidFeeRate, "rate %v out of range", 1.5))

	var kerr *Error
	if !errors.As(wrapped, &kerr) {
		t.Fatalf("expected errors.As to extract *Error")
	}
	if kerr.Kind != KindInvalidArgument || kerr.Cause != CauseInvalidFeeRate {
		t.Fatalf("unexpected kind/cause: %+v", kerr)
	}
}

func TestErrorStringIncludesMessageWhenPresent(t *testing.T) {
	err := New(KindOrderRejection, CausePostOnlyCross, "would have crossed the book")
	want := "OrderRejection: PostOnlyCross: would have crossed the book"
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestErrorStringOmitsMessageWhenEmpty(t *testing.T) {
	err := New(KindUnknownBookID, CauseUnknownBookID, "")
	want := "UnknownBookId: UnknownBookId"
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
}
