package programs

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/soypete/programs-mcp/pkg/logging"
)

// Error prefixes name the failed operation in the text returned to callers
const (
	PrefixSearch    = "Error searching programs"
	PrefixInterest  = "Error searching programs by interest"
	PrefixNearby    = "Error searching programs nearby"
	PrefixDetails   = "Error fetching program details"
	PrefixFilter    = "Error filtering programs"
	PrefixCountries = "Error fetching countries"
	PrefixCities    = "Error fetching cities"
)

// Gateway exposes the program queries as text-in, text-out operations.
// Every public method returns display text; failures come back as a message
// starting with "Error" instead of a Go error.
type Gateway struct {
	client *Client
	logger *slog.Logger
}

// NewGateway creates a gateway around a shared client
func NewGateway(client *Client, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Gateway{
		client: client,
		logger: logger,
	}
}

// ErrorText renders a failure the way every operation reports it
func ErrorText(prefix string, err error) string {
	return fmt.Sprintf("%s: %s", prefix, err)
}

// textOrError collapses an internal result into the single returned string
func (g *Gateway) textOrError(op, prefix string, text string, err error) string {
	if err != nil {
		g.logger.Warn("operation failed", "op", op, "error", err)
		return ErrorText(prefix, err)
	}
	return text
}

// SearchByLocation finds programs in a country and optional city
func (g *Gateway) SearchByLocation(ctx context.Context, country, city string, limit int) string {
	text, err := g.searchByLocation(ctx, country, city, limit)
	return g.textOrError("search_by_location", PrefixSearch, text, err)
}

func (g *Gateway) searchByLocation(ctx context.Context, country, city string, limit int) (string, error) {
	programs, err := g.client.Search(ctx, ByLocation(country, city, limit))
	if err != nil {
		return "", err
	}

	place := country
	if city != "" {
		place = city + ", " + country
	}

	if len(programs) == 0 {
		return fmt.Sprintf("No programs found in %s. Try a different location or check back later.", place), nil
	}

	return fmt.Sprintf("Found %d programs in %s:\n\n%s", len(programs), place, FormatPrograms(programs)), nil
}

// SearchByInterest finds programs in the category matching interest. A nil
// country searches DefaultCountry; an empty one searches every country.
func (g *Gateway) SearchByInterest(ctx context.Context, interest string, country *string, city string, limit int) string {
	text, err := g.searchByInterest(ctx, interest, country, city, limit)
	return g.textOrError("search_by_interest", PrefixInterest, text, err)
}

func (g *Gateway) searchByInterest(ctx context.Context, interest string, country *string, city string, limit int) (string, error) {
	query := ByInterest(interest, country, city, limit)

	programs, err := g.client.Search(ctx, query)
	if err != nil {
		return "", err
	}

	location := ""
	switch {
	case city != "" && query.Country != "":
		location = fmt.Sprintf(" in %s, %s", city, query.Country)
	case city != "":
		location = " in " + city
	case query.Country != "":
		location = " in " + query.Country
	}

	if len(programs) == 0 {
		return fmt.Sprintf("No programs found for \"%s\"%s. Try a different category or location.", interest, location), nil
	}

	return fmt.Sprintf("Found %d programs for \"%s\"%s:\n\n%s", len(programs), interest, location, FormatPrograms(programs)), nil
}

// SearchNearby finds programs around a latitude/longitude pair
func (g *Gateway) SearchNearby(ctx context.Context, latitude, longitude float64, limit int) string {
	text, err := g.searchNearby(ctx, latitude, longitude, limit)
	return g.textOrError("search_nearby", PrefixNearby, text, err)
}

func (g *Gateway) searchNearby(ctx context.Context, latitude, longitude float64, limit int) (string, error) {
	programs, err := g.client.Search(ctx, ByCoordinates(latitude, longitude, limit))
	if err != nil {
		return "", err
	}

	point := fmt.Sprintf("(%s, %s)", FormatCoordinate(latitude), FormatCoordinate(longitude))

	if len(programs) == 0 {
		return fmt.Sprintf("No programs found near coordinates %s. Try expanding your search area.", point), nil
	}

	return fmt.Sprintf("Found %d programs near %s:\n\n%s", len(programs), point, FormatPrograms(programs)), nil
}

// ProgramDetails returns the API's detail record for a program
func (g *Gateway) ProgramDetails(ctx context.Context, programID string) string {
	text, err := g.programDetails(ctx, programID)
	return g.textOrError("program_details", PrefixDetails, text, err)
}

func (g *Gateway) programDetails(ctx context.Context, programID string) (string, error) {
	details, err := g.client.Details(ctx, programID)
	if err != nil {
		return "", err
	}
	return "Program Details:\n\n" + details, nil
}

// FilterPrograms fetches a batch for country and filters it in memory
func (g *Gateway) FilterPrograms(ctx context.Context, country string, filter Filter, limit int) string {
	text, err := g.filterPrograms(ctx, country, filter, limit)
	return g.textOrError("filter_programs", PrefixFilter, text, err)
}

func (g *Gateway) filterPrograms(ctx context.Context, country string, filter Filter, limit int) (string, error) {
	programs, err := g.client.Search(ctx, ForFilter(country))
	if err != nil {
		return "", err
	}

	matched := filter.Apply(programs, NormalizeLimit(limit))
	if len(matched) == 0 {
		return fmt.Sprintf("No programs found matching the specified filters in %s.", country), nil
	}

	return fmt.Sprintf("Found %d filtered programs in %s:\n\n%s", len(matched), country, FormatPrograms(matched)), nil
}

// Countries lists the countries with programs
func (g *Gateway) Countries(ctx context.Context) string {
	text, err := g.countries(ctx)
	return g.textOrError("countries", PrefixCountries, text, err)
}

func (g *Gateway) countries(ctx context.Context) (string, error) {
	names, err := g.client.Countries(ctx)
	if err != nil {
		return "", err
	}
	return "Available Countries:\n\n" + FormatNameList(names), nil
}

// Cities lists the cities with programs in country
func (g *Gateway) Cities(ctx context.Context, country string) string {
	text, err := g.cities(ctx, country)
	return g.textOrError("cities", PrefixCities, text, err)
}

func (g *Gateway) cities(ctx context.Context, country string) (string, error) {
	names, err := g.client.Cities(ctx, country)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Cities in %s:\n\n%s", country, FormatNameList(names)), nil
}

// ListCategories renders the static category table. It makes no request.
func (g *Gateway) ListCategories() string {
	return FormatCategories()
}
