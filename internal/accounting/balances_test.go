package accounting

import (
	"testing"

	"github.com/axonsim/exchange-sim/internal/event"
)

func TestOpenBuyLoanReservesQuoteWithLeverageMultiplier(t *testing.T) {
	bal, err := NewBalances(d("10"), d("10000"), nil, nil, 8, 2)
	if err != nil {
		t.Fatalf("NewBalances: %v", err)
	}
	id, err := bal.OpenLoan(event.Buy, d("2"), d("100"), d("4"))
	if err != nil {
		t.Fatalf("OpenLoan: %v", err)
	}
	// notional = 200, multiplier = 1 + 1/4 = 1.25, reserve = 250
	if !bal.Quote.Reserved.Equal(d("250")) {
		t.Fatalf("expected quote reserved 250, got %s", bal.Quote.Reserved)
	}
	if !bal.QuoteLoan.Equal(d("200")) {
		t.Fatalf("expected quoteLoan 200, got %s", bal.QuoteLoan)
	}
	if _, ok := bal.Loans[id]; !ok {
		t.Fatalf("expected loan %d to be recorded", id)
	}
}

func TestOpenSellLoanReservesBase(t *testing.T) {
	bal, err := NewBalances(d("10"), d("10000"), nil, nil, 8, 2)
	if err != nil {
		t.Fatalf("NewBalances: %v", err)
	}
	_, err = bal.OpenLoan(event.Sell, d("2"), d("100"), d("4"))
	if err != nil {
		t.Fatalf("OpenLoan: %v", err)
	}
	// reserve = 2 * 1.25 = 2.5
	if !bal.Base.Reserved.Equal(d("2.5")) {
		t.Fatalf("expected base reserved 2.5, got %s", bal.Base.Reserved)
	}
	if !bal.BaseLoan.Equal(d("2")) {
		t.Fatalf("expected baseLoan 2, got %s", bal.BaseLoan)
	}
}

func TestCloseLoanReleasesCollateralAndDeletesLoan(t *testing.T) {
	bal, _ := NewBalances(d("10"), d("10000"), nil, nil, 8, 2)
	id, _ := bal.OpenLoan(event.Sell, d("2"), d("100"), d("4"))
	if _, err := bal.CloseLoan(id, d("90")); err != nil {
		t.Fatalf("CloseLoan: %v", err)
	}
	if _, ok := bal.Loans[id]; ok {
		t.Fatalf("expected loan to be removed after close")
	}
	if !bal.Base.Reserved.IsZero() {
		t.Fatalf("expected base collateral released, got reserved=%s", bal.Base.Reserved)
	}
}

func TestCloseUnknownLoanErrors(t *testing.T) {
	bal, _ := NewBalances(d("10"), d("10000"), nil, nil, 8, 2)
	if _, err := bal.CloseLoan(999, d("1")); err == nil {
		t.Fatalf("expected error closing unknown loan")
	}
}

func TestCheckpointShapeHasLoansArray(t *testing.T) {
	bal, _ := NewBalances(d("10"), d("10000"), nil, nil, 8, 2)
	bal.OpenLoan(event.Buy, d("1"), d("50"), d("2"))
	cp, ok := bal.Checkpoint().(checkpointBalances)
	if !ok {
		t.Fatalf("expected checkpointBalances, got %T", bal.Checkpoint())
	}
	if len(cp.Loans) != 1 {
		t.Fatalf("expected 1 loan in checkpoint, got %d", len(cp.Loans))
	}
	if cp.Loans[0].Currency != "QUOTE" {
		t.Fatalf("expected Buy loan currency QUOTE, got %s", cp.Loans[0].Currency)
	}
}
