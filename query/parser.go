package query

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"ghana-rentals/models"
	"ghana-rentals/utils"
)

// bedroomRegexp captures "2 bed", "3 bedroom", "4br" style counts.
var bedroomRegexp = regexp.MustCompile(`(\d+)\s*(?:bed|bedroom|br)`)

// ghanaLocations is the gazetteer of neighbourhoods and cities the parser
// recognizes. Matching is first-hit, so multi-word areas come before any
// shorter name they could contain.
var ghanaLocations = []string{
	"east legon", "cantonments", "osu", "airport residential area",
	"airport hills", "labone", "roman ridge", "downtown accra", "spintex",
	"tema", "kumasi", "takoradi", "tesano", "dansoman", "adenta", "dome",
	"lapaz", "circle",
}

// Parser is a best-effort keyword/pattern extractor that turns free-text
// rental questions into QueryEntities. It never fails: fields it cannot
// recognize are simply left unset.
type Parser struct {
	logger *utils.Logger
}

// NewParser creates a Parser with the given logger.
func NewParser(logger *utils.Logger) *Parser {
	return &Parser{logger: logger}
}

// Parse extracts location, bedroom count and property type from the query.
func (p *Parser) Parse(text string) models.QueryEntities {
	entities := models.QueryEntities{
		PropertyType: models.PropertyTypeUnknown,
		RequestType:  models.RequestTypeRentCost,
	}

	lower := strings.ToLower(text)

	for _, loc := range ghanaLocations {
		if strings.Contains(lower, loc) {
			titled := titleCase(loc)
			entities.Location = &titled
			break
		}
	}

	if m := bedroomRegexp.FindStringSubmatch(lower); len(m) >= 2 {
		if n, err := strconv.Atoi(m[1]); err == nil {
			entities.Bedrooms = &n
		}
	}

	// "townhouse" must be tested before "house".
	switch {
	case strings.Contains(lower, "apartment") || strings.Contains(lower, "flat"):
		entities.PropertyType = models.PropertyTypeApartment
	case strings.Contains(lower, "townhouse"):
		entities.PropertyType = models.PropertyTypeTownhouse
	case strings.Contains(lower, "house") || strings.Contains(lower, "bungalow") || strings.Contains(lower, "villa"):
		entities.PropertyType = models.PropertyTypeHouse
	}

	p.logger.Debug("[query] Parsed %q → location=%v bedrooms=%v type=%s",
		text, deref(entities.Location), derefInt(entities.Bedrooms), entities.PropertyType)
	return entities
}

// titleCase capitalizes the first letter of every word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

func deref(s *string) string {
	if s == nil {
		return "<nil>"
	}
	return *s
}

func derefInt(n *int) string {
	if n == nil {
		return "<nil>"
	}
	return strconv.Itoa(*n)
}
