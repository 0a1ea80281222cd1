package services

import (
	"strings"

	"ghana-rentals/models"
)

// Matches reports whether a normalized record satisfies every constrained
// entity field. Unset entity fields are wildcards; a record missing a field
// that the query constrains does not match.
func Matches(rec *models.NormalizedRecord, entities models.QueryEntities) bool {
	if entities.Location != nil {
		if rec.LocationPrimary == nil {
			return false
		}
		if !strings.Contains(strings.ToLower(*rec.LocationPrimary), strings.ToLower(*entities.Location)) {
			return false
		}
	}

	if entities.Bedrooms != nil {
		if rec.BedroomsCount == nil || *rec.BedroomsCount != *entities.Bedrooms {
			return false
		}
	}

	if entities.PropertyType != "" && entities.PropertyType != models.PropertyTypeUnknown {
		if !strings.EqualFold(rec.PropertyTypeCanonical, entities.PropertyType) {
			return false
		}
	}

	return true
}

// FilterRecords keeps the records matching the entities, preserving input
// order.
func FilterRecords(records []*models.NormalizedRecord, entities models.QueryEntities) []*models.NormalizedRecord {
	filtered := make([]*models.NormalizedRecord, 0, len(records))
	for _, rec := range records {
		if Matches(rec, entities) {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}
