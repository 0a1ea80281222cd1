package services

import (
	"testing"

	"ghana-rentals/models"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func normalized(location string, bedrooms int, propertyType string) *models.NormalizedRecord {
	return &models.NormalizedRecord{
		LocationPrimary:       strPtr(location),
		BedroomsCount:         intPtr(bedrooms),
		PropertyTypeCanonical: propertyType,
	}
}

func TestMatchesWildcardEntities(t *testing.T) {
	records := []*models.NormalizedRecord{
		normalized("East Legon", 3, "house"),
		normalized("Osu", 2, "apartment"),
		{}, // nothing set at all
	}
	entities := models.QueryEntities{PropertyType: models.PropertyTypeUnknown}

	for i, rec := range records {
		if !Matches(rec, entities) {
			t.Errorf("record %d should match fully-unset entities", i)
		}
	}
}

func TestMatchesBedroomsExact(t *testing.T) {
	rec := normalized("Osu", 3, "apartment")

	if Matches(rec, models.QueryEntities{Bedrooms: intPtr(4), PropertyType: "unknown"}) {
		t.Error("3-bedroom record should not match bedrooms=4")
	}
	if !Matches(rec, models.QueryEntities{Bedrooms: intPtr(3), PropertyType: "unknown"}) {
		t.Error("3-bedroom record should match bedrooms=3")
	}
}

func TestMatchesLocationSubstringCaseInsensitive(t *testing.T) {
	rec := normalized("East Legon", 2, "apartment")

	if !Matches(rec, models.QueryEntities{Location: strPtr("legon"), PropertyType: "unknown"}) {
		t.Error("\"legon\" should match \"East Legon\"")
	}
	if Matches(rec, models.QueryEntities{Location: strPtr("Tema"), PropertyType: "unknown"}) {
		t.Error("\"Tema\" should not match \"East Legon\"")
	}
}

func TestMatchesMissingFieldsFailConstraints(t *testing.T) {
	bare := &models.NormalizedRecord{}

	if Matches(bare, models.QueryEntities{Location: strPtr("Osu"), PropertyType: "unknown"}) {
		t.Error("record without a location should not match a location constraint")
	}
	if Matches(bare, models.QueryEntities{Bedrooms: intPtr(2), PropertyType: "unknown"}) {
		t.Error("record without a bedroom count should not match a bedroom constraint")
	}
	if Matches(bare, models.QueryEntities{PropertyType: "apartment"}) {
		t.Error("record without a property type should not match a property-type constraint")
	}
}

func TestMatchesPropertyTypeCaseInsensitive(t *testing.T) {
	rec := &models.NormalizedRecord{PropertyTypeCanonical: "apartment"}
	if !Matches(rec, models.QueryEntities{PropertyType: "Apartment"}) {
		t.Error("property type comparison should be case-insensitive")
	}
}

func TestFilterRecordsPreservesOrder(t *testing.T) {
	records := []*models.NormalizedRecord{
		normalized("Osu", 2, "apartment"),
		normalized("Tema", 2, "apartment"),
		normalized("Osu", 2, "apartment"),
	}
	records[0].ID = "a"
	records[2].ID = "c"

	filtered := FilterRecords(records, models.QueryEntities{Location: strPtr("Osu"), PropertyType: "unknown"})
	if len(filtered) != 2 {
		t.Fatalf("filtered length = %d, want 2", len(filtered))
	}
	if filtered[0].ID != "a" || filtered[1].ID != "c" {
		t.Errorf("filter should preserve input order, got [%s %s]", filtered[0].ID, filtered[1].ID)
	}
}
