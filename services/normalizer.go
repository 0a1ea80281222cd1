package services

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"ghana-rentals/models"
	"ghana-rentals/utils"
)

var (
	// amountRegexp captures the first run of digits, thousands separators
	// and decimal points in a price string.
	amountRegexp = regexp.MustCompile(`\d[\d,]*(?:\.\d+)?`)
	// digitsRegexp captures a bare integer run for bedroom/bathroom counts.
	digitsRegexp = regexp.MustCompile(`\d+`)
)

// Normalizer derives typed fields from raw listing records. It never drops
// or mutates a record: unparseable fields are logged and left unset, and the
// raw fields are carried through untouched.
type Normalizer struct {
	logger *utils.Logger
}

// NewNormalizer creates a Normalizer with the given logger.
func NewNormalizer(logger *utils.Logger) *Normalizer {
	return &Normalizer{logger: logger}
}

// NormalizeAll normalizes every record, preserving input order.
func (n *Normalizer) NormalizeAll(raws []*models.RawRecord) []*models.NormalizedRecord {
	out := make([]*models.NormalizedRecord, 0, len(raws))
	for _, r := range raws {
		out = append(out, n.Normalize(r))
	}
	n.logger.Info("[normalizer] Normalized %d records", len(out))
	return out
}

// Normalize turns one raw record into a normalized record. Missing raw
// fields leave the derived fields unset; they are never an error.
func (n *Normalizer) Normalize(raw *models.RawRecord) *models.NormalizedRecord {
	rec := &models.NormalizedRecord{
		RawRecord:   *raw,
		IsProcessed: true,
		ProcessedAt: time.Now().UTC(),
	}

	if raw.PriceRaw != "" {
		rec.PriceCurrency = detectCurrency(raw.PriceRaw)
		rec.PriceFrequency = detectFrequency(raw.PriceRaw)
		if amount, ok := n.parseAmount(raw.PriceRaw); ok {
			rec.PriceAmount = &amount
		}
	}

	if raw.LocationRaw != "" {
		primary := primaryLocation(raw.LocationRaw)
		rec.LocationPrimary = &primary
	}

	rec.BedroomsCount = n.parseCount("bedrooms", raw.BedroomsRaw)
	rec.BathroomsCount = n.parseCount("bathrooms", raw.BathroomsRaw)

	if raw.PropertyTypeRaw != "" {
		rec.PropertyTypeCanonical = canonicalPropertyType(raw.PropertyTypeRaw)
	}

	return rec
}

// detectCurrency scans for USD hints; everything else defaults to GHS.
func detectCurrency(priceRaw string) string {
	lower := strings.ToLower(priceRaw)
	if strings.Contains(lower, "usd") || strings.Contains(lower, "$") {
		return models.CurrencyUSD
	}
	return models.CurrencyGHS
}

// detectFrequency scans for payment-frequency hints. No hint means monthly,
// a deliberate simplification of the scraped data.
func detectFrequency(priceRaw string) string {
	lower := strings.ToLower(priceRaw)
	switch {
	case strings.Contains(lower, "year") || strings.Contains(lower, "yr") ||
		strings.Contains(lower, "p.a") || strings.Contains(lower, "per annum"):
		return models.FrequencyYearly
	case strings.Contains(lower, "week") || strings.Contains(lower, "wk"):
		return models.FrequencyWeekly
	case strings.Contains(lower, "day") || strings.Contains(lower, "daily"):
		return models.FrequencyDaily
	}
	return models.FrequencyMonthly
}

// parseAmount extracts the first numeric run from a price string. A range
// like "GHS 2,000 - 3,000" therefore yields 2000 — the lower bound wins.
func (n *Normalizer) parseAmount(priceRaw string) (float64, bool) {
	match := amountRegexp.FindString(priceRaw)
	if match == "" {
		n.logger.Warn("[normalizer] No numeric amount in price %q", priceRaw)
		return 0, false
	}
	amount, err := strconv.ParseFloat(strings.ReplaceAll(match, ",", ""), 64)
	if err != nil {
		n.logger.Warn("[normalizer] Could not parse price %q: %v", priceRaw, err)
		return 0, false
	}
	return amount, true
}

// primaryLocation keeps the segment before the first comma, trimmed.
// "East Legon, Accra" → "East Legon".
func primaryLocation(locationRaw string) string {
	primary, _, _ := strings.Cut(locationRaw, ",")
	return strings.TrimSpace(primary)
}

// parseCount extracts the first integer run from text like "3 Beds".
func (n *Normalizer) parseCount(field, raw string) *int {
	if raw == "" {
		return nil
	}
	match := digitsRegexp.FindString(raw)
	if match == "" {
		n.logger.Warn("[normalizer] No numeric %s count in %q", field, raw)
		return nil
	}
	count, err := strconv.Atoi(match)
	if err != nil {
		n.logger.Warn("[normalizer] Could not parse %s count %q: %v", field, raw, err)
		return nil
	}
	return &count
}

// canonicalPropertyType maps messy property-type text into the canonical
// set. Unrecognized values keep the lowercased raw text verbatim rather
// than being forced into a known type. "townhouse" is tested before
// "house" since the former contains the latter.
func canonicalPropertyType(raw string) string {
	lower := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.Contains(lower, "apartment") || strings.Contains(lower, "flat"):
		return models.PropertyTypeApartment
	case strings.Contains(lower, "townhouse"):
		return models.PropertyTypeTownhouse
	case strings.Contains(lower, "house") || strings.Contains(lower, "bungalow") ||
		strings.Contains(lower, "villa") || strings.Contains(lower, "detached"):
		return models.PropertyTypeHouse
	}
	return lower
}
