package workers

import (
	"fmt"
	"strings"

	"github.com/wanderplan/wanderplan/pkg/domain"
)

// The fallback generators below produce deterministic offers so a turn can
// complete without any external provider. Outputs are stable for a given
// set of parameters.

var fallbackAirlines = []string{"United Airlines", "ANA", "Japan Airlines", "Delta"}

// fallbackFlights generates a ladder of round-trip flight offers. Prices
// start at 850 per passenger and climb by 150 per option.
func fallbackFlights(params domain.StepParams) []domain.Offer {
	guests := params.Guests
	if guests < 1 {
		guests = 1
	}

	offers := make([]domain.Offer, 0, len(fallbackAirlines))
	for i, airline := range fallbackAirlines {
		perPassenger := 850 + i*150
		stops := "0"
		if i >= 2 {
			stops = "1"
		}
		cancellation := "Standard"
		if i == 0 {
			cancellation = "Flexible"
		}
		offers = append(offers, domain.Offer{
			ID:          fmt.Sprintf("FL%d", 1000+i),
			Name:        airline,
			Description: fmt.Sprintf("Round trip %s to %s, economy", params.Origin, params.Destination),
			Price:       float64(perPassenger * guests),
			Currency:    "USD",
			Attrs: map[string]string{
				"origin":              params.Origin,
				"destination":         params.Destination,
				"departure_date":      params.StartDate,
				"return_date":         params.EndDate,
				"stops":               stops,
				"price_per_passenger": fmt.Sprintf("%d", perPassenger),
				"cabin_class":         "Economy",
				"cancellation":        cancellation,
			},
		})
	}
	return offers
}

type hotelTemplate struct {
	name   string
	rating string
	kind   string
}

var fallbackHotelTemplates = []hotelTemplate{
	{name: "%s Grand Hotel", rating: "4.5", kind: "Hotel"},
	{name: "%s Boutique Inn", rating: "4.2", kind: "Boutique"},
	{name: "%s Imperial Palace Hotel", rating: "4.8", kind: "Luxury"},
	{name: "%s Central Business Hotel", rating: "4.0", kind: "Business"},
}

// budgetPriceRange maps the budget tier to a nightly price band.
func budgetPriceRange(tier domain.BudgetTier) (int, int) {
	switch tier {
	case domain.BudgetLow:
		return 50, 100
	case domain.BudgetHigh:
		return 250, 800
	default:
		return 100, 250
	}
}

// fallbackHotels generates hotel offers spread across the tier's price band.
func fallbackHotels(params domain.StepParams) []domain.Offer {
	low, high := budgetPriceRange(params.BudgetTier)
	nights := params.DurationDays
	if nights < 1 {
		nights = 7
	}

	offers := make([]domain.Offer, 0, len(fallbackHotelTemplates))
	for i, tpl := range fallbackHotelTemplates {
		perNight := low + i*(high-low)/len(fallbackHotelTemplates)
		amenities := "WiFi, Breakfast"
		if i > 1 {
			amenities = "WiFi, Breakfast, Gym, Pool"
		}
		offers = append(offers, domain.Offer{
			ID:          fmt.Sprintf("HT%d", 2000+i),
			Name:        fmt.Sprintf(tpl.name, params.Destination),
			Description: fmt.Sprintf("%s stay in %s", tpl.kind, params.Destination),
			Price:       float64(perNight * nights),
			Currency:    "USD",
			Attrs: map[string]string{
				"price_per_night": fmt.Sprintf("%d", perNight),
				"nights":          fmt.Sprintf("%d", nights),
				"rating":          tpl.rating,
				"type":            tpl.kind,
				"amenities":       amenities,
			},
		})
	}
	return offers
}

type activityTemplate struct {
	name     string
	duration string
	price    int
}

var fallbackActivityCatalog = map[string][]activityTemplate{
	"culture": {
		{"Historic Temple Tour", "3 hours", 45},
		{"Traditional Tea Ceremony", "2 hours", 65},
		{"Museum of History", "2.5 hours", 20},
	},
	"food": {
		{"Street Food Walking Tour", "3 hours", 75},
		{"Sushi Making Class", "2 hours", 85},
		{"Local Market Experience", "2 hours", 40},
	},
	"nature": {
		{"Garden & Park Walking Tour", "3 hours", 35},
		{"Mountain Hiking Experience", "6 hours", 90},
		{"Botanical Garden Visit", "2 hours", 15},
	},
	"entertainment": {
		{"Traditional Theater Show", "2 hours", 60},
		{"Modern Art Gallery", "2 hours", 25},
		{"Night Entertainment District Tour", "3 hours", 70},
	},
}

// fallbackActivities generates activities matching the requested interests.
// Unknown or empty interests produce a generic city walking tour.
func fallbackActivities(params domain.StepParams) []domain.Offer {
	var offers []domain.Offer
	next := 3000

	for _, interest := range params.Interests {
		catalog, ok := fallbackActivityCatalog[strings.ToLower(interest)]
		if !ok {
			continue
		}
		for _, tpl := range catalog {
			offers = append(offers, domain.Offer{
				ID:          fmt.Sprintf("AC%d", next),
				Name:        tpl.name,
				Description: fmt.Sprintf("%s activity in %s", interest, params.Destination),
				Price:       float64(tpl.price),
				Currency:    "USD",
				Attrs: map[string]string{
					"category": strings.ToLower(interest),
					"duration": tpl.duration,
				},
			})
			next++
		}
	}

	if len(offers) == 0 {
		offers = append(offers, domain.Offer{
			ID:          fmt.Sprintf("AC%d", next),
			Name:        fmt.Sprintf("%s City Walking Tour", params.Destination),
			Description: fmt.Sprintf("Guided sightseeing walk through %s", params.Destination),
			Price:       50,
			Currency:    "USD",
			Attrs: map[string]string{
				"category": "sightseeing",
				"duration": "4 hours",
			},
		})
	}
	return offers
}
