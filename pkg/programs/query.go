package programs

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

const (
	// DefaultCountry is used by interest and filter searches when no country is given
	DefaultCountry = "India"

	// DefaultLimit is the result limit when the caller does not set one
	DefaultLimit = 20

	// MaxLimit caps the number of results requested from the API
	MaxLimit = 100

	// FilterBatchSize is the unfiltered batch fetched before in-memory filtering
	FilterBatchSize = 100
)

// baseParams are passthrough constants the filter endpoint expects on every
// search. They must be sent exactly as listed.
var baseParams = [][2]string{
	{"option", "com_program"},
	{"Itemid", "250"},
	{"Submit", "Filter"},
	{"task", "filter"},
	{"program", "0"},
	{"cat", "0"},
	{"utm_medium", "yogalanding"},
	{"utm_content", "pgmspanel"},
	{"date", "0"},
	{"event", "0"},
	{"format", "json"},
	{"rejuvenation", "0"},
	{"utm_source", "mcp"},
	{"utm_campaign", "sgapp"},
	{"search", "fuzzy"},
	{"radius", ""},
	{"startrec", "0"},
	{"v", "2"},
}

// SearchQuery is the per-call parameter set for the filter endpoint
type SearchQuery struct {
	Country  string
	City     string
	Category string
	LatLong  string
	Count    int
}

// Params returns the full query string values for the filter endpoint
func (q SearchQuery) Params() url.Values {
	params := url.Values{}
	for _, kv := range baseParams {
		params.Set(kv[0], kv[1])
	}

	params.Set("count", strconv.Itoa(q.Count))
	params.Set("category", q.Category)
	params.Set("latlong", q.LatLong)
	params.Set("city", q.City)
	params.Set("country", q.Country)

	return params
}

// ByLocation builds a search for a country and optional city
func ByLocation(country, city string, limit int) SearchQuery {
	return SearchQuery{
		Country: country,
		City:    city,
		Count:   NormalizeLimit(limit),
	}
}

// ByInterest builds a search for the category matching interest. A nil
// country falls back to DefaultCountry; an empty one searches globally.
func ByInterest(interest string, country *string, city string, limit int) SearchQuery {
	searchCountry := DefaultCountry
	if country != nil {
		searchCountry = *country
	}

	return SearchQuery{
		Country:  searchCountry,
		City:     city,
		Category: ResolveCategory(interest),
		Count:    NormalizeLimit(limit),
	}
}

// ByCoordinates builds a search around a latitude/longitude pair
func ByCoordinates(latitude, longitude float64, limit int) SearchQuery {
	return SearchQuery{
		LatLong: FormatCoordinate(latitude) + "," + FormatCoordinate(longitude),
		Count:   NormalizeLimit(limit),
	}
}

// ForFilter builds the unfiltered batch fetch used by in-memory filtering
func ForFilter(country string) SearchQuery {
	return SearchQuery{
		Country: country,
		Count:   FilterBatchSize,
	}
}

// DetailsParams builds the query for a single program's details
func DetailsParams(programID string) url.Values {
	params := url.Values{}
	params.Set("option", "com_program")
	params.Set("v", "2")
	params.Set("format", "json")
	params.Set("task", "details")
	params.Set("program_id", programID)
	return params
}

// CountriesParams builds the list query for countries with programs
func CountriesParams() url.Values {
	return listParams("1", "0")
}

// CitiesParams builds the list query for cities within country
func CitiesParams(country string) url.Values {
	return listParams(country, "1")
}

func listParams(country, city string) url.Values {
	params := url.Values{}
	params.Set("option", "com_program")
	params.Set("itemid", "250")
	params.Set("task", "list")
	params.Set("country", country)
	params.Set("city", city)
	return params
}

// NormalizeLimit applies the default and the upper bound to a result limit
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// FormatCoordinate renders a coordinate in its shortest decimal form,
// keeping a ".0" on integral values (12 -> "12.0").
func FormatCoordinate(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if math.IsInf(v, 0) || math.IsNaN(v) || strings.Contains(s, ".") {
		return s
	}
	return s + ".0"
}
