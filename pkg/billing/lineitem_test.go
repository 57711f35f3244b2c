package billing

import (
	"encoding/json"
	"math"
	"testing"
)

func TestComputeAmount(t *testing.T) {
	cases := []struct {
		rate, qty, gst float64
		expected       float64
	}{
		{100, 1, 18, 118},
		{100, 2, 5, 210},
		{33.33, 3, 5, 104.99},
		{0.1, 3, 0, 0.3},
		{1000, 1, 12, 1120},
		{250, 0, 18, 0},
		{99.99, 1, 28, 127.99},
	}
	for _, tc := range cases {
		got := ComputeAmount(tc.rate, tc.qty, tc.gst)
		if got != tc.expected {
			t.Errorf("ComputeAmount(%v, %v, %v) = %v, want %v", tc.rate, tc.qty, tc.gst, got, tc.expected)
		}
	}
}

func TestComputeRateFromAmount_RoundTrip(t *testing.T) {
	rates := []float64{0, 1, 9.99, 100, 149.5, 2500, 33.33}
	qtys := []float64{1, 2, 3, 7}
	gsts := []float64{0, 5, 12, 18, 28}

	for _, rate := range rates {
		for _, qty := range qtys {
			for _, gst := range gsts {
				amount := ComputeAmount(rate, qty, gst)
				back := ComputeRateFromAmount(amount, qty, gst)
				if math.Abs(back-rate) > 0.011 {
					t.Fatalf("round trip rate=%v qty=%v gst=%v: amount %v gave rate %v", rate, qty, gst, amount, back)
				}
			}
		}
	}
}

func TestComputeRateFromAmount_ZeroDivisor(t *testing.T) {
	if got := ComputeRateFromAmount(118, 0, 18); got != 0 {
		t.Fatalf("qty 0: expected 0, got %v", got)
	}
	if got := ComputeRateFromAmount(118, 1, -100); got != 0 {
		t.Fatalf("gst -100: expected 0, got %v", got)
	}
}

func TestRoomTariffAmount(t *testing.T) {
	cases := []struct {
		rate, gst float64
		days      int
		expected  float64
	}{
		{2000, 12, 2, 4480},
		{1500, 0, 3, 4500},
		{2000, 12, 0, 0},
		{2000, 12, -1, 0},
		{999.5, 18, 1, 1179.41},
	}
	for _, tc := range cases {
		if got := RoomTariffAmount(tc.rate, tc.gst, tc.days); got != tc.expected {
			t.Errorf("RoomTariffAmount(%v, %v, %d) = %v, want %v", tc.rate, tc.gst, tc.days, got, tc.expected)
		}
	}
}

func TestLineItemRecalculate(t *testing.T) {
	li := LineItem{Item: "Laundry", Rate: 100, Qty: 2, GST: 18}

	byRate := li.Recalculate(FieldRate)
	if byRate.Amount != 236 {
		t.Fatalf("rate edit: expected amount 236, got %v", byRate.Amount)
	}

	li.Amount = 472
	byAmount := li.Recalculate(FieldAmount)
	if byAmount.Rate != 200 {
		t.Fatalf("amount edit: expected rate 200, got %v", byAmount.Rate)
	}
	if byAmount.Amount != 472 {
		t.Fatalf("amount edit must keep the edited amount, got %v", byAmount.Amount)
	}

	li.Qty = 0
	zero := li.Recalculate(FieldAmount)
	if zero.Rate != 0 {
		t.Fatalf("amount edit with qty 0: expected rate 0, got %v", zero.Rate)
	}
}

func TestParseField(t *testing.T) {
	cases := map[string]Field{
		"amount": FieldAmount,
		"qty":    FieldQty,
		"gst":    FieldGST,
		"days":   FieldDays,
		"rate":   FieldRate,
		"":       FieldRate,
		"bogus":  FieldRate,
	}
	for in, expected := range cases {
		if got := ParseField(in); got != expected {
			t.Errorf("ParseField(%q) = %q, want %q", in, got, expected)
		}
	}
}

func TestDefaultQty(t *testing.T) {
	if DefaultQty(nil) != 1 {
		t.Fatal("absent qty should default to 1")
	}
	q := 3.0
	if DefaultQty(&q) != 3 {
		t.Fatal("present qty should be kept")
	}
}

func TestParseNumberOr(t *testing.T) {
	cases := []struct {
		in       string
		fallback float64
		expected float64
	}{
		{"118.50", 0, 118.5},
		{"  42 ", 0, 42},
		{"", 1, 1},
		{"abc", 0, 0},
		{"NaN", 7, 7},
		{"-3", 0, -3},
	}
	for _, tc := range cases {
		if got := ParseNumberOr(tc.in, tc.fallback); got != tc.expected {
			t.Errorf("ParseNumberOr(%q, %v) = %v, want %v", tc.in, tc.fallback, got, tc.expected)
		}
	}
}

func TestNumberUnmarshalJSON(t *testing.T) {
	var body struct {
		Rate   Number  `json:"rate"`
		Qty    *Number `json:"qty"`
		Amount Number  `json:"amount"`
	}
	if err := json.Unmarshal([]byte(`{"rate":"150.25","amount":""}`), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Rate.Float() != 150.25 {
		t.Fatalf("expected rate 150.25, got %v", body.Rate)
	}
	if body.Qty != nil {
		t.Fatal("absent qty should stay nil")
	}
	if body.Amount != 0 {
		t.Fatalf("blank amount should decode to 0, got %v", body.Amount)
	}

	if err := json.Unmarshal([]byte(`{"rate":12.5,"qty":null}`), &body); err != nil {
		t.Fatalf("unmarshal number: %v", err)
	}
	if body.Rate.Float() != 12.5 {
		t.Fatalf("expected 12.5, got %v", body.Rate)
	}

	if err := json.Unmarshal([]byte(`{"rate":"12abc"}`), &body); err == nil {
		t.Fatal("expected an error for a non-numeric string")
	}
}

func TestRound2(t *testing.T) {
	cases := map[float64]float64{
		1.005:     1.01,
		2.675:     2.68,
		-1.005:    -1.01,
		118.0:     118,
		0.1 + 0.2: 0.3,
	}
	for in, expected := range cases {
		if got := Round2(in); got != expected {
			t.Errorf("Round2(%v) = %v, want %v", in, got, expected)
		}
	}
	if got := Round2(math.NaN()); got != 0 {
		t.Errorf("Round2(NaN) = %v, want 0", got)
	}
}
