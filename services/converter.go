package services

import "ghana-rentals/models"

// weeksPerMonth converts a weekly rate to monthly: 365.25 days a year,
// twelve months, seven-day weeks. Approximate, not calendar-exact.
const weeksPerMonth = 365.25 / 12 / 7

// daysPerMonth converts a daily rate to monthly. Approximate.
const daysPerMonth = 30.0

// ToMonthlyReference converts a record's price into a single monthly figure
// in the reference currency: currency first, then frequency. Returns nil
// when the record has no parsed amount or an unrecognized frequency.
func ToMonthlyReference(rec *models.NormalizedRecord, referenceCurrency string, exchangeRate float64) *float64 {
	if rec.PriceAmount == nil {
		return nil
	}
	amount := convertCurrency(*rec.PriceAmount, rec.PriceCurrency, referenceCurrency, exchangeRate)
	return toMonthly(amount, rec.PriceFrequency)
}

// convertCurrency applies the supplied exchange rate when the record's
// currency differs from the reference; matching currencies pass through.
func convertCurrency(amount float64, currency, referenceCurrency string, exchangeRate float64) float64 {
	if currency == referenceCurrency {
		return amount
	}
	return amount * exchangeRate
}

// toMonthly scales an amount from its payment frequency to a per-month
// figure. Unknown frequencies yield nil rather than a silent guess.
func toMonthly(amount float64, frequency string) *float64 {
	var monthly float64
	switch frequency {
	case models.FrequencyMonthly:
		monthly = amount
	case models.FrequencyYearly:
		monthly = amount / 12
	case models.FrequencyWeekly:
		monthly = amount * weeksPerMonth
	case models.FrequencyDaily:
		monthly = amount * daysPerMonth
	default:
		return nil
	}
	return &monthly
}
