package domain

import "strings"

// DefaultSuggestionKey is the catalogue bucket used for unknown locations.
const DefaultSuggestionKey = "default"

// RestaurantSuggestion is a restaurant known to the static catalogue.
type RestaurantSuggestion struct {
	Name       string   `json:"name"`
	Cuisine    string   `json:"cuisine"`
	PriceLevel string   `json:"price_level"`
	Supports   []string `json:"supports"`
	Location   string   `json:"location"`
}

var suggestionCatalogue = map[string][]RestaurantSuggestion{
	"milano": {
		{Name: "Trattoria Verde", Cuisine: "italiana", PriceLevel: "€€", Supports: []string{"gluten-free", "vegetariano"}, Location: "Milano"},
		{Name: "Sushi Line", Cuisine: "giapponese", PriceLevel: "€€€", Supports: []string{"gluten-free", "pesce"}, Location: "Milano"},
		{Name: "Veggie Mood", Cuisine: "vegetariana", PriceLevel: "€€", Supports: []string{"vegano", "gluten-free"}, Location: "Milano"},
	},
	"roma": {
		{Name: "Osteria Centro", Cuisine: "italiana", PriceLevel: "€€", Supports: []string{"gluten-free", "vegetariano"}, Location: "Roma"},
		{Name: "Taverna Bio", Cuisine: "mediterranea", PriceLevel: "€€", Supports: []string{"vegano", "bio"}, Location: "Roma"},
	},
	DefaultSuggestionKey: {
		{Name: "Bistro Locale", Cuisine: "fusion", PriceLevel: "€€", Supports: []string{"vegetariano"}, Location: "N/D"},
		{Name: "Grill House", Cuisine: "carne", PriceLevel: "€€", Supports: []string{"senza-lattosio"}, Location: "N/D"},
	},
}

// SuggestionsFor returns a copy of the catalogue entries for location.
// Lookup is case-insensitive; unknown locations get the default bucket.
func SuggestionsFor(location string) []RestaurantSuggestion {
	entries, ok := suggestionCatalogue[strings.ToLower(strings.TrimSpace(location))]
	if !ok {
		entries = suggestionCatalogue[DefaultSuggestionKey]
	}
	out := make([]RestaurantSuggestion, len(entries))
	for i, e := range entries {
		e.Supports = append([]string(nil), e.Supports...)
		out[i] = e
	}
	return out
}
