package services

import (
	"fmt"
	"strconv"

	"ghana-rentals/models"
	"ghana-rentals/utils"
)

// Aggregator reduces a filtered record set to summary price statistics and
// renders the human-readable report.
type Aggregator struct {
	logger *utils.Logger
}

// NewAggregator creates an Aggregator with the given logger.
func NewAggregator(logger *utils.Logger) *Aggregator {
	return &Aggregator{logger: logger}
}

// Summarize computes count, mean, min and max over the monthly reference
// prices of the filtered records and renders the report. Records whose price
// cannot be converted are counted as matched but excluded from the stats.
// The result does not depend on record order.
func (a *Aggregator) Summarize(filtered []*models.NormalizedRecord, entities models.QueryEntities, referenceCurrency string, exchangeRate float64) string {
	criteria := describeEntities(entities)

	if len(filtered) == 0 {
		return fmt.Sprintf("No listings found matching your criteria: %s.", criteria)
	}

	var (
		priced   int
		total    float64
		min, max float64
	)
	for _, rec := range filtered {
		monthly := ToMonthlyReference(rec, referenceCurrency, exchangeRate)
		if monthly == nil {
			continue
		}
		if priced == 0 || *monthly < min {
			min = *monthly
		}
		if priced == 0 || *monthly > max {
			max = *monthly
		}
		total += *monthly
		priced++
	}

	if priced == 0 {
		return fmt.Sprintf("Found %d listings matching your criteria (%s), "+
			"but none had usable pricing information.", len(filtered), criteria)
	}

	avg := total / float64(priced)
	a.logger.Debug("[aggregator] matched=%d priced=%d avg=%.2f min=%.2f max=%.2f",
		len(filtered), priced, avg, min, max)

	return fmt.Sprintf("Found %d listings. For %s: "+
		"average monthly rent %s %.2f, price range %s %.2f - %s %.2f. "+
		"(Based on %d listings with usable monthly prices.)",
		len(filtered), criteria,
		referenceCurrency, avg, referenceCurrency, min, referenceCurrency, max,
		priced)
}

// describeEntities renders the query criteria for report text, with "any"
// style defaults for unconstrained fields: "2-bedroom apartment in Osu",
// "any-bedroom properties in Ghana".
func describeEntities(entities models.QueryEntities) string {
	bedrooms := "any"
	if entities.Bedrooms != nil {
		bedrooms = strconv.Itoa(*entities.Bedrooms)
	}

	propertyType := "properties"
	if entities.PropertyType != "" && entities.PropertyType != models.PropertyTypeUnknown {
		propertyType = entities.PropertyType
	}

	location := "Ghana"
	if entities.Location != nil {
		location = *entities.Location
	}

	return fmt.Sprintf("%s-bedroom %s in %s", bedrooms, propertyType, location)
}
