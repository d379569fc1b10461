package programs

import (
	"github.com/soypete/programs-mcp/pkg/programs"
	"github.com/soypete/programs-mcp/pkg/tools"
)

func limitSchema() *tools.JSONSchema {
	return &tools.JSONSchema{
		Type:        "integer",
		Description: "Maximum number of programs to return",
		Default:     programs.DefaultLimit,
		Minimum:     tools.Bound(1),
		Maximum:     tools.Bound(programs.MaxLimit),
	}
}

func (t *SearchByLocationTool) Metadata() *tools.ToolMetadata {
	return &tools.ToolMetadata{
		Schema: tools.ObjectSchema(map[string]*tools.JSONSchema{
			"country": {
				Type:        "string",
				Description: "Country name (e.g. India, USA, UK)",
			},
			"city": {
				Type:        "string",
				Description: "City name (optional)",
			},
			"limit": limitSchema(),
		}, "country"),
		UsageHint: "Use when the user names a place. Follow up with get_program_details for a specific program.",
		Examples: []tools.ToolExample{
			{
				Description: "Programs in Chennai",
				Input:       map[string]interface{}{"country": "India", "city": "Chennai", "limit": 5},
			},
		},
	}
}

func (t *SearchByInterestTool) Metadata() *tools.ToolMetadata {
	return &tools.ToolMetadata{
		Schema: tools.ObjectSchema(map[string]*tools.JSONSchema{
			"interest": {
				Type:        "string",
				Description: "Program name, category or keyword (e.g. meditation, hatha yoga, Inner Engineering)",
			},
			"country": {
				Type:        "string",
				Description: "Country to search in. Defaults to India; pass an empty string to search globally.",
			},
			"city": {
				Type:        "string",
				Description: "City name (optional)",
			},
			"limit": limitSchema(),
		}, "interest"),
		UsageHint: "Call list_program_categories to see which keywords map to which category.",
		Examples: []tools.ToolExample{
			{
				Description: "Hatha yoga programs worldwide",
				Input:       map[string]interface{}{"interest": "hatha yoga", "country": ""},
			},
		},
	}
}

func (t *SearchNearbyTool) Metadata() *tools.ToolMetadata {
	return &tools.ToolMetadata{
		Schema: tools.ObjectSchema(map[string]*tools.JSONSchema{
			"latitude": {
				Type:        "number",
				Description: "Latitude of the search center",
				Minimum:     tools.Bound(-90),
				Maximum:     tools.Bound(90),
			},
			"longitude": {
				Type:        "number",
				Description: "Longitude of the search center",
				Minimum:     tools.Bound(-180),
				Maximum:     tools.Bound(180),
			},
			"limit": limitSchema(),
		}, "latitude", "longitude"),
		Examples: []tools.ToolExample{
			{
				Description: "Programs near Bengaluru",
				Input:       map[string]interface{}{"latitude": 12.9716, "longitude": 77.5946},
			},
		},
	}
}

func (t *DetailsTool) Metadata() *tools.ToolMetadata {
	return &tools.ToolMetadata{
		Schema: tools.ObjectSchema(map[string]*tools.JSONSchema{
			"program_id": {
				Type:        "string",
				Description: "Program ID from a search result",
			},
		}, "program_id"),
		UsageHint: "The response is the raw program record as indented JSON.",
		Examples: []tools.ToolExample{
			{
				Description: "Details for program 12345",
				Input:       map[string]interface{}{"program_id": "12345"},
			},
		},
	}
}

func (t *FilterTool) Metadata() *tools.ToolMetadata {
	return &tools.ToolMetadata{
		Schema: tools.ObjectSchema(map[string]*tools.JSONSchema{
			"country": {
				Type:        "string",
				Description: "Country to filter in",
				Default:     programs.DefaultCountry,
			},
			"online": {
				Type:        "boolean",
				Description: "true for online programs only, false for in-person only",
			},
			"with_sadhguru": {
				Type:        "boolean",
				Description: "true for programs with Sadhguru present, false for programs without",
			},
			"language": {
				Type:        "string",
				Description: "Language to match (case-insensitive substring)",
			},
			"limit": limitSchema(),
		}),
		UsageHint: "Omitted filters are not applied. Only the first 100 programs of the country are considered.",
		Examples: []tools.ToolExample{
			{
				Description: "Online programs in Tamil",
				Input:       map[string]interface{}{"online": true, "language": "tamil"},
			},
		},
	}
}

func (t *CountriesTool) Metadata() *tools.ToolMetadata {
	return &tools.ToolMetadata{
		Schema: tools.ObjectSchema(nil),
	}
}

func (t *CitiesTool) Metadata() *tools.ToolMetadata {
	return &tools.ToolMetadata{
		Schema: tools.ObjectSchema(map[string]*tools.JSONSchema{
			"country": {
				Type:        "string",
				Description: "Country name",
			},
		}, "country"),
		UsageHint: "Use get_available_countries first if the country spelling is unknown.",
	}
}

func (t *CategoriesTool) Metadata() *tools.ToolMetadata {
	return &tools.ToolMetadata{
		Schema: tools.ObjectSchema(nil),
	}
}
