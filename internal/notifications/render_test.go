package notifications

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatMoney(t *testing.T) {
	t.Parallel()

	cases := []struct {
		amount string
		want   string
	}{
		{"0", "0 đ"},
		{"999", "999 đ"},
		{"1000", "1,000 đ"},
		{"1290000", "1,290,000 đ"},
		{"25000000", "25,000,000 đ"},
		{"-1500", "-1,500 đ"},
		{"1290000.00", "1,290,000 đ"},
	}

	for _, tc := range cases {
		d, err := decimal.NewFromString(tc.amount)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.amount, err)
		}
		if got := FormatMoney(d); got != tc.want {
			t.Errorf("FormatMoney(%s) = %q, want %q", tc.amount, got, tc.want)
		}
	}
}

func TestRenderOrderShipped(t *testing.T) {
	t.Parallel()

	email := RenderOrderShipped(OrderShipped{
		To:      "customer@example.com",
		OrderID: "AAAAAAAAAAA",
		Items: []ShippedLineItem{
			{Name: "Laptop <Pro>", Quantity: 1, UnitPrice: decimal.NewFromInt(25000000)},
			{Name: "Mouse", Quantity: 2, UnitPrice: decimal.NewFromInt(450000)},
		},
		FinalAmount: decimal.NewFromInt(25900000),
	})

	if email.To != "customer@example.com" {
		t.Fatalf("unexpected recipient %q", email.To)
	}
	if !strings.Contains(email.Subject, "AAAAAAAAAAA") {
		t.Errorf("subject %q missing order id", email.Subject)
	}
	for _, want := range []string{
		"Laptop &lt;Pro&gt;",
		"Mouse",
		"25,000,000 đ",
		"900,000 đ",
		"25,900,000 đ",
	} {
		if !strings.Contains(email.HTML, want) {
			t.Errorf("body missing %q", want)
		}
	}
	if strings.Contains(email.HTML, "<Pro>") {
		t.Error("product name was not HTML-escaped")
	}
}

func TestRenderOrderCompleted(t *testing.T) {
	t.Parallel()

	email := RenderOrderCompleted(OrderCompleted{
		To:      "customer@example.com",
		OrderID: "BBBBBBBBBBB",
		Points:  125,
	})

	if !strings.Contains(email.Subject, "BBBBBBBBBBB") {
		t.Errorf("subject %q missing order id", email.Subject)
	}
	if !strings.Contains(email.HTML, "+125") {
		t.Errorf("body missing credited points")
	}
}
