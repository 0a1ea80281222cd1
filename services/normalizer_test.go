package services

import (
	"testing"
	"time"

	"ghana-rentals/models"
	"ghana-rentals/utils"
)

func newTestLogger() *utils.Logger { return utils.NewLogger() }

func TestNormalizePriceParsing(t *testing.T) {
	n := NewNormalizer(newTestLogger())

	tests := []struct {
		raw       string
		amount    float64
		hasAmount bool
		currency  string
		frequency string
	}{
		{"GHS 5,000 / month", 5000, true, "GHS", "monthly"},
		{"$1,200 per year", 1200, true, "USD", "yearly"},
		{"3,500", 3500, true, "GHS", "monthly"},
		{"USD 850 / week", 850, true, "USD", "weekly"},
		{"GHS 120 per day", 120, true, "GHS", "daily"},
		{"GHS 2,000 - 3,000 / month", 2000, true, "GHS", "monthly"},
		{"GHS 18,000 p.a.", 18000, true, "GHS", "yearly"},
		{"Price on request", 0, false, "GHS", "monthly"},
	}

	for _, tt := range tests {
		rec := n.Normalize(&models.RawRecord{ID: "r1", PriceRaw: tt.raw})
		if tt.hasAmount {
			if rec.PriceAmount == nil {
				t.Errorf("Normalize(%q): amount unset, want %.2f", tt.raw, tt.amount)
				continue
			}
			if *rec.PriceAmount != tt.amount {
				t.Errorf("Normalize(%q): amount = %.2f, want %.2f", tt.raw, *rec.PriceAmount, tt.amount)
			}
		} else if rec.PriceAmount != nil {
			t.Errorf("Normalize(%q): amount = %.2f, want unset", tt.raw, *rec.PriceAmount)
		}
		if rec.PriceCurrency != tt.currency {
			t.Errorf("Normalize(%q): currency = %q, want %q", tt.raw, rec.PriceCurrency, tt.currency)
		}
		if rec.PriceFrequency != tt.frequency {
			t.Errorf("Normalize(%q): frequency = %q, want %q", tt.raw, rec.PriceFrequency, tt.frequency)
		}
	}
}

func TestNormalizeIsAdditive(t *testing.T) {
	n := NewNormalizer(newTestLogger())

	raw := &models.RawRecord{
		ID:              "raw-1",
		SourceURL:       "https://www.meqasa.com/apartments-for-rent-in-osu",
		ScrapedAt:       time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		PriceRaw:        "GHS 4,200 / month",
		LocationRaw:     "Osu, Accra",
		BedroomsRaw:     "2 Beds",
		BathroomsRaw:    "1 Bath",
		PropertyTypeRaw: "Apartment",
		DescriptionRaw:  "Modern two bedroom apartment",
		ListingURL:      "https://www.meqasa.com/listing/123",
	}

	rec := n.Normalize(raw)
	if rec.RawRecord != *raw {
		t.Errorf("raw fields changed during normalization:\n got  %+v\n want %+v", rec.RawRecord, *raw)
	}
	if !rec.IsProcessed {
		t.Error("IsProcessed should be true")
	}
	if rec.ProcessedAt.IsZero() {
		t.Error("ProcessedAt should be set")
	}
}

func TestNormalizeMissingFieldsStayUnset(t *testing.T) {
	n := NewNormalizer(newTestLogger())

	rec := n.Normalize(&models.RawRecord{ID: "bare"})
	if rec.PriceAmount != nil {
		t.Error("PriceAmount should stay unset for missing price_raw")
	}
	if rec.PriceCurrency != "" || rec.PriceFrequency != "" {
		t.Errorf("currency/frequency should stay unset, got %q/%q", rec.PriceCurrency, rec.PriceFrequency)
	}
	if rec.LocationPrimary != nil {
		t.Error("LocationPrimary should stay unset for missing location_raw")
	}
	if rec.BedroomsCount != nil || rec.BathroomsCount != nil {
		t.Error("counts should stay unset for missing raw fields")
	}
	if rec.PropertyTypeCanonical != "" {
		t.Errorf("PropertyTypeCanonical should stay unset, got %q", rec.PropertyTypeCanonical)
	}
}

func TestNormalizeLocationPrimary(t *testing.T) {
	n := NewNormalizer(newTestLogger())

	tests := []struct {
		raw  string
		want string
	}{
		{"East Legon, Accra", "East Legon"},
		{"Osu", "Osu"},
		{" Labone , Accra, Ghana", "Labone"},
	}

	for _, tt := range tests {
		rec := n.Normalize(&models.RawRecord{ID: "loc", LocationRaw: tt.raw})
		if rec.LocationPrimary == nil {
			t.Errorf("Normalize(location %q): unset, want %q", tt.raw, tt.want)
			continue
		}
		if *rec.LocationPrimary != tt.want {
			t.Errorf("Normalize(location %q) = %q, want %q", tt.raw, *rec.LocationPrimary, tt.want)
		}
	}
}

func TestNormalizeCounts(t *testing.T) {
	n := NewNormalizer(newTestLogger())

	rec := n.Normalize(&models.RawRecord{ID: "c", BedroomsRaw: "3 Beds", BathroomsRaw: "Baths: 2"})
	if rec.BedroomsCount == nil || *rec.BedroomsCount != 3 {
		t.Errorf("BedroomsCount = %v, want 3", rec.BedroomsCount)
	}
	if rec.BathroomsCount == nil || *rec.BathroomsCount != 2 {
		t.Errorf("BathroomsCount = %v, want 2", rec.BathroomsCount)
	}

	rec = n.Normalize(&models.RawRecord{ID: "c2", BedroomsRaw: "studio"})
	if rec.BedroomsCount != nil {
		t.Errorf("BedroomsCount = %d for non-numeric text, want unset", *rec.BedroomsCount)
	}
}

func TestCanonicalPropertyType(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"Apartment", "apartment"},
		{"Furnished Flat", "apartment"},
		{"Townhouse", "townhouse"},
		{"Semi-Detached House", "house"},
		{"Luxury Villa", "house"},
		{"Bungalow", "house"},
		{"Office Space", "office space"},
	}

	for _, tt := range tests {
		if got := canonicalPropertyType(tt.raw); got != tt.want {
			t.Errorf("canonicalPropertyType(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}
