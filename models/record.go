package models

import "time"

// Currencies and payment frequencies recognized by the pipeline.
const (
	CurrencyGHS = "GHS"
	CurrencyUSD = "USD"

	FrequencyMonthly = "monthly"
	FrequencyYearly  = "yearly"
	FrequencyWeekly  = "weekly"
	FrequencyDaily   = "daily"
	FrequencyUnknown = "unknown"
)

// Canonical property types. PropertyTypeUnknown means the query carried no
// property-type signal and imposes no filter constraint.
const (
	PropertyTypeApartment = "apartment"
	PropertyTypeHouse     = "house"
	PropertyTypeTownhouse = "townhouse"
	PropertyTypeUnknown   = "unknown"
)

// RequestTypeRentCost is the only request type the parser currently emits.
const RequestTypeRentCost = "rent_cost"

// QueryEntities is the structured filter criteria extracted from a free-text
// user query. Nil pointer fields are wildcards.
type QueryEntities struct {
	Location     *string `json:"location,omitempty"`
	Bedrooms     *int    `json:"bedrooms,omitempty"`
	PropertyType string  `json:"property_type"`
	RequestType  string  `json:"request_type"`
}

// RawRecord holds one scraped listing exactly as extracted, before any
// normalization. Text fields are unvalidated and may be empty when the
// source markup carried no such element.
type RawRecord struct {
	ID        string    `json:"id"`
	SourceURL string    `json:"source_url"`
	ScrapedAt time.Time `json:"scraped_at"`

	PriceRaw        string `json:"price_raw,omitempty"`
	LocationRaw     string `json:"location_raw,omitempty"`
	BedroomsRaw     string `json:"bedrooms_raw,omitempty"`
	BathroomsRaw    string `json:"bathrooms_raw,omitempty"`
	PropertyTypeRaw string `json:"property_type_raw,omitempty"`
	DescriptionRaw  string `json:"description_raw,omitempty"`
	ListingURL      string `json:"listing_url,omitempty"`
}

// NormalizedRecord is a RawRecord plus derived, typed fields. The embedded
// raw record is copied untouched: normalization only adds, never mutates.
// Nil pointers mean the corresponding raw field was absent or unparseable.
type NormalizedRecord struct {
	RawRecord

	PriceAmount           *float64  `json:"price_amount,omitempty"`
	PriceCurrency         string    `json:"price_currency,omitempty"`
	PriceFrequency        string    `json:"price_frequency,omitempty"`
	LocationPrimary       *string   `json:"location_primary,omitempty"`
	BedroomsCount         *int      `json:"bedrooms_count,omitempty"`
	BathroomsCount        *int      `json:"bathrooms_count,omitempty"`
	PropertyTypeCanonical string    `json:"property_type_canonical,omitempty"`
	IsProcessed           bool      `json:"is_processed"`
	ProcessedAt           time.Time `json:"processed_at"`
}

// RunResult is the final surface of one pipeline invocation.
type RunResult struct {
	Status       string            `json:"status"` // "success" or "error"
	Report       string            `json:"report,omitempty"`
	ErrorMessage string            `json:"error_message,omitempty"`
	Handles      map[string]string `json:"handles,omitempty"`
}

const (
	StatusSuccess = "success"
	StatusError   = "error"
)
