package services

import (
	"testing"

	"ghana-rentals/models"
)

func priced(amount float64, currency, frequency string) *models.NormalizedRecord {
	return &models.NormalizedRecord{
		PriceAmount:    &amount,
		PriceCurrency:  currency,
		PriceFrequency: frequency,
	}
}

func TestMonthlyReferenceYearlyUSD(t *testing.T) {
	rec := priced(1200, "USD", "yearly")

	got := ToMonthlyReference(rec, "GHS", 14.5)
	if got == nil {
		t.Fatal("expected a monthly figure, got unset")
	}
	want := 1200.0 * 14.5 / 12 // 1450
	if *got != want {
		t.Errorf("monthly reference = %.2f, want %.2f", *got, want)
	}
}

func TestMonthlyReferenceFrequencies(t *testing.T) {
	tests := []struct {
		frequency string
		amount    float64
		want      float64
	}{
		{"monthly", 3000, 3000},
		{"yearly", 24000, 2000},
		{"weekly", 700, 0}, // filled in below from the conversion factor
		{"daily", 100, 3000},
	}
	wpm := weeksPerMonth
	tests[2].want = tests[2].amount * wpm

	for _, tt := range tests {
		got := ToMonthlyReference(priced(tt.amount, "GHS", tt.frequency), "GHS", 14.5)
		if got == nil {
			t.Errorf("frequency %q: got unset, want %.2f", tt.frequency, tt.want)
			continue
		}
		if *got != tt.want {
			t.Errorf("frequency %q: got %.2f, want %.2f", tt.frequency, *got, tt.want)
		}
	}
}

func TestMonthlyReferenceMatchingCurrencyIgnoresRate(t *testing.T) {
	got := ToMonthlyReference(priced(5000, "GHS", "monthly"), "GHS", 14.5)
	if got == nil || *got != 5000 {
		t.Errorf("matching currency should pass through unscaled, got %v", got)
	}
}

func TestMonthlyReferenceUnknownFrequency(t *testing.T) {
	if got := ToMonthlyReference(priced(5000, "GHS", "unknown"), "GHS", 14.5); got != nil {
		t.Errorf("unknown frequency should yield unset, got %.2f", *got)
	}
	if got := ToMonthlyReference(priced(5000, "GHS", ""), "GHS", 14.5); got != nil {
		t.Errorf("empty frequency should yield unset, got %.2f", *got)
	}
}

func TestMonthlyReferenceUnsetAmount(t *testing.T) {
	rec := &models.NormalizedRecord{PriceCurrency: "GHS", PriceFrequency: "monthly"}
	if got := ToMonthlyReference(rec, "GHS", 14.5); got != nil {
		t.Errorf("unset amount should yield unset, got %.2f", *got)
	}
}
