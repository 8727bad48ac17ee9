package decimal

import "testing"

func mustParse(t *testing.T, s string) Decimal {
	t.Helper()
	d, err := NewFromString(s)
	if err != nil {
		t.Fatalf("NewFromString(%q): %v", s, err)
	}
	return d
}

func TestPackUnpackRoundTrip(t *testing.T) {
	literals := []string{
		"0.0",
		"1.337",
		"32.2",
		"42.0",
		"69420.0",
		"1.234567890123456e-42",
	}
	for _, lit := range literals {
		d := mustParse(t, lit)
		packed := Pack(d)
		got := Unpack(packed)
		if !got.Equal(d) {
			t.Errorf("round trip for %q: got %s, want %s", lit, got, d)
		}
	}
}

func TestRoundUp(t *testing.T) {
	cases := []struct {
		in   string
		n    int32
		want string
	}{
		{"42.32125839", 3, "42.322"},
		{"0.00005100", 4, "0.0001"},
		{"420.6921", 2, "420.70"},
		{"0.0", 10, "0.0"},
		{"-29358.2416619814", 7, "-29358.2416619"},
		{"10000.1", 0, "10001.0"},
	}
	for _, c := range cases {
		in := mustParse(t, c.in)
		want := mustParse(t, c.want)
		got := in.RoundUp(c.n)
		if !got.Equal(want) {
			t.Errorf("RoundUp(%s, %d) = %s, want %s", c.in, c.n, got, want)
		}
	}
}

func TestRoundUpInvariant(t *testing.T) {
	x := mustParse(t, "17.123456789")
	n := int32(4)
	got := x.RoundUp(n)
	if got.LessThan(x) {
		t.Fatalf("RoundUp result %s is less than input %s", got, x)
	}
	// No smaller representable value with <= n digits also satisfies >= x:
	// subtracting one unit at precision n should fall below x.
	unit := New(1, -n)
	oneLess := got.Sub(unit)
	if oneLess.GreaterOrEqual(x) {
		t.Fatalf("RoundUp(%s, %d) = %s is not the minimal ceiling", x, n, got)
	}
}

func TestArithmeticExactness(t *testing.T) {
	a := mustParse(t, "0.1")
	b := mustParse(t, "0.2")
	sum := a.Add(b)
	want := mustParse(t, "0.3")
	if !sum.Equal(want) {
		t.Fatalf("0.1 + 0.2 = %s, want %s", sum, want)
	}
}

func TestFMA(t *testing.T) {
	a := NewFromInt(3)
	b := NewFromInt(4)
	c := NewFromInt(5)
	got := FMA(a, b, c)
	want := NewFromInt(17)
	if !got.Equal(want) {
		t.Fatalf("FMA(3,4,5) = %s, want %s", got, want)
	}
}

func TestInvOnePlus(t *testing.T) {
	leverage := NewFromInt(4)
	got := InvOnePlus(leverage)
	want := mustParse(t, "0.2")
	if !got.Equal(want) {
		t.Fatalf("InvOnePlus(4) = %s, want %s", got, want)
	}
}

func TestOrdering(t *testing.T) {
	a := NewFromInt(1)
	b := NewFromInt(2)
	if !a.LessThan(b) {
		t.Fatalf("expected 1 < 2")
	}
	if !b.GreaterThan(a) {
		t.Fatalf("expected 2 > 1")
	}
	if !a.Equal(a) {
		t.Fatalf("expected 1 == 1")
	}
}
