// Package programs exposes the program gateway operations as tools.
package programs

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/soypete/programs-mcp/pkg/programs"
	"github.com/soypete/programs-mcp/pkg/tools"
)

// Tool names as seen by MCP clients
const (
	SearchByLocationName = "search_programs_by_location"
	SearchByInterestName = "search_programs_by_interest"
	SearchNearbyName     = "search_programs_nearby"
	DetailsName          = "get_program_details"
	FilterName           = "filter_programs"
	CountriesName        = "get_available_countries"
	CitiesName           = "get_cities_in_country"
	CategoriesName       = "list_program_categories"
)

// argError reports an argument problem the same way the gateway reports a
// failed request
func argError(prefix string, err error) *tools.Result {
	return tools.ErrorResult(programs.ErrorText(prefix, err))
}

// gatewayText wraps gateway text, flagging the failure text for prefix so
// transports can mark the call as failed
func gatewayText(text, prefix string) *tools.Result {
	if strings.HasPrefix(text, prefix+": ") {
		return tools.ErrorResult(text)
	}
	return tools.TextResult(text)
}

// NewTools returns every program tool in the order they are listed to clients
func NewTools(gw *programs.Gateway) []tools.ExtendedTool {
	return []tools.ExtendedTool{
		&SearchByLocationTool{gateway: gw},
		&SearchByInterestTool{gateway: gw},
		&SearchNearbyTool{gateway: gw},
		&DetailsTool{gateway: gw},
		&FilterTool{gateway: gw},
		&CountriesTool{gateway: gw},
		&CitiesTool{gateway: gw},
		&CategoriesTool{gateway: gw},
	}
}

// Register adds every program tool to registry
func Register(registry *tools.ToolRegistry, gw *programs.Gateway) error {
	for _, tool := range NewTools(gw) {
		if err := registry.Register(tool); err != nil {
			return fmt.Errorf("failed to register %s: %w", tool.Name(), err)
		}
	}
	return nil
}

// SearchByLocationTool searches programs by country and city
type SearchByLocationTool struct {
	gateway *programs.Gateway
}

func (t *SearchByLocationTool) Name() string { return SearchByLocationName }

func (t *SearchByLocationTool) Description() string {
	return "Search for programs by location (country and optional city). Returns upcoming programs in the specified location."
}

func (t *SearchByLocationTool) Execute(ctx context.Context, args map[string]interface{}) (*tools.Result, error) {
	country, err := tools.RequiredString(args, "country")
	if err != nil {
		return argError(programs.PrefixSearch, err), nil
	}
	city, _ := tools.StringArg(args, "city")
	limit, err := tools.IntArg(args, "limit", programs.DefaultLimit)
	if err != nil {
		return argError(programs.PrefixSearch, err), nil
	}

	text := t.gateway.SearchByLocation(ctx, country, city, limit)
	return gatewayText(text, programs.PrefixSearch), nil
}

// SearchByInterestTool searches programs by the category matching an interest
type SearchByInterestTool struct {
	gateway *programs.Gateway
}

func (t *SearchByInterestTool) Name() string { return SearchByInterestName }

func (t *SearchByInterestTool) Description() string {
	return "Search for programs by category or interest, such as Inner Engineering, Surya Kriya, Angamardana, " +
		"Bhava Spandana, Shoonya, Samyama, Yogasanas, Bhuta Shuddhi, Pancha Karma or Diabetes. " +
		"The interest is mapped to a program category; unknown interests search all categories."
}

func (t *SearchByInterestTool) Execute(ctx context.Context, args map[string]interface{}) (*tools.Result, error) {
	// A blank interest is allowed and resolves like any other text
	interest, ok := tools.StringArg(args, "interest")
	if !ok {
		return argError(programs.PrefixInterest, errors.New("interest is required")), nil
	}

	// A missing country means the default; an explicit "" means global
	var country *string
	if c, ok := tools.StringArg(args, "country"); ok {
		country = &c
	}

	city, _ := tools.StringArg(args, "city")
	limit, err := tools.IntArg(args, "limit", programs.DefaultLimit)
	if err != nil {
		return argError(programs.PrefixInterest, err), nil
	}

	text := t.gateway.SearchByInterest(ctx, interest, country, city, limit)
	return gatewayText(text, programs.PrefixInterest), nil
}

// SearchNearbyTool searches programs around coordinates
type SearchNearbyTool struct {
	gateway *programs.Gateway
}

func (t *SearchNearbyTool) Name() string { return SearchNearbyName }

func (t *SearchNearbyTool) Description() string {
	return "Search for programs near a latitude/longitude. Best for finding programs closest to the user's location."
}

func (t *SearchNearbyTool) Execute(ctx context.Context, args map[string]interface{}) (*tools.Result, error) {
	latitude, err := tools.FloatArg(args, "latitude")
	if err != nil {
		return argError(programs.PrefixNearby, err), nil
	}
	longitude, err := tools.FloatArg(args, "longitude")
	if err != nil {
		return argError(programs.PrefixNearby, err), nil
	}
	limit, err := tools.IntArg(args, "limit", programs.DefaultLimit)
	if err != nil {
		return argError(programs.PrefixNearby, err), nil
	}

	text := t.gateway.SearchNearby(ctx, latitude, longitude, limit)
	return gatewayText(text, programs.PrefixNearby), nil
}

// DetailsTool fetches a single program's details
type DetailsTool struct {
	gateway *programs.Gateway
}

func (t *DetailsTool) Name() string { return DetailsName }

func (t *DetailsTool) Description() string {
	return "Get detailed information about a program using the program ID from search results."
}

func (t *DetailsTool) Execute(ctx context.Context, args map[string]interface{}) (*tools.Result, error) {
	programID, err := tools.RequiredString(args, "program_id")
	if err != nil {
		return argError(programs.PrefixDetails, err), nil
	}

	text := t.gateway.ProgramDetails(ctx, programID)
	return gatewayText(text, programs.PrefixDetails), nil
}

// FilterTool filters a country's programs by delivery, presence and language
type FilterTool struct {
	gateway *programs.Gateway
}

func (t *FilterTool) Name() string { return FilterName }

func (t *FilterTool) Description() string {
	return "Filter programs in a country by online or in-person delivery, Sadhguru's presence, or language."
}

func (t *FilterTool) Execute(ctx context.Context, args map[string]interface{}) (*tools.Result, error) {
	// Only a missing country means the default; "" is passed through
	country, ok := tools.StringArg(args, "country")
	if !ok {
		country = programs.DefaultCountry
	}

	var filter programs.Filter
	var errs []error

	online, err := tools.OptionalBool(args, "online")
	errs = append(errs, err)
	filter.Online = online

	presence, err := tools.OptionalBool(args, "with_sadhguru")
	errs = append(errs, err)
	filter.WithPresence = presence

	filter.Language, _ = tools.StringArg(args, "language")

	limit, err := tools.IntArg(args, "limit", programs.DefaultLimit)
	errs = append(errs, err)

	if err := errors.Join(errs...); err != nil {
		return argError(programs.PrefixFilter, err), nil
	}

	text := t.gateway.FilterPrograms(ctx, country, filter, limit)
	return gatewayText(text, programs.PrefixFilter), nil
}

// CountriesTool lists countries with programs
type CountriesTool struct {
	gateway *programs.Gateway
}

func (t *CountriesTool) Name() string { return CountriesName }

func (t *CountriesTool) Description() string {
	return "Get the list of countries where programs are available."
}

func (t *CountriesTool) Execute(ctx context.Context, args map[string]interface{}) (*tools.Result, error) {
	text := t.gateway.Countries(ctx)
	return gatewayText(text, programs.PrefixCountries), nil
}

// CitiesTool lists cities with programs in a country
type CitiesTool struct {
	gateway *programs.Gateway
}

func (t *CitiesTool) Name() string { return CitiesName }

func (t *CitiesTool) Description() string {
	return "Get the list of cities in a country where programs are available."
}

func (t *CitiesTool) Execute(ctx context.Context, args map[string]interface{}) (*tools.Result, error) {
	country, err := tools.RequiredString(args, "country")
	if err != nil {
		return argError(programs.PrefixCities, err), nil
	}

	text := t.gateway.Cities(ctx, country)
	return gatewayText(text, programs.PrefixCities), nil
}

// CategoriesTool lists the program categories and their keywords
type CategoriesTool struct {
	gateway *programs.Gateway
}

func (t *CategoriesTool) Name() string { return CategoriesName }

func (t *CategoriesTool) Description() string {
	return "List all program categories and their keywords."
}

func (t *CategoriesTool) Execute(ctx context.Context, args map[string]interface{}) (*tools.Result, error) {
	return tools.TextResult(t.gateway.ListCategories()), nil
}
