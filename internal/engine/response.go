package engine

import (
	"fmt"
	"strings"

	"github.com/wanderplan/wanderplan/pkg/domain"
)

// Response text is markdown; the chat CLI renders it and the HTTP API
// returns it verbatim.

const maxShownOffers = 3

func sourceNote(source domain.Source) string {
	if source == domain.SourceFallback {
		return " _(sample data)_"
	}
	return ""
}

func formatOffers(res domain.WorkerResult) string {
	if len(res.Items) == 0 {
		return "No results found for your search."
	}

	var b strings.Builder
	switch res.Kind {
	case domain.StepFlight:
		fmt.Fprintf(&b, "Found %d flight options%s:\n", len(res.Items), sourceNote(res.Source))
	case domain.StepHotel:
		fmt.Fprintf(&b, "Found %d places to stay%s:\n", len(res.Items), sourceNote(res.Source))
	case domain.StepActivity:
		fmt.Fprintf(&b, "Found %d activities%s:\n", len(res.Items), sourceNote(res.Source))
	default:
		fmt.Fprintf(&b, "Found %d results%s:\n", len(res.Items), sourceNote(res.Source))
	}

	shown := res.Items
	if len(shown) > maxShownOffers {
		shown = shown[:maxShownOffers]
	}
	for i, offer := range shown {
		fmt.Fprintf(&b, "\n%d. **%s**", i+1, offer.Name)
		if offer.Price > 0 {
			fmt.Fprintf(&b, " - $%.2f", offer.Price)
		}
		if offer.Description != "" {
			fmt.Fprintf(&b, "\n   %s", offer.Description)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func formatCandidates(candidates []domain.Candidate) string {
	if len(candidates) == 0 {
		return "I couldn't come up with destination suggestions. Tell me more about what you're looking for."
	}

	var b strings.Builder
	b.WriteString("Here are some destinations that fit what you described:\n")
	for i, c := range candidates {
		fmt.Fprintf(&b, "\n%d. **%s** (%s) - score %.1f\n   %s\n", i+1, c.Name, c.Region, c.FinalScore, c.Rationale)
		if c.Enrichment != "" {
			fmt.Fprintf(&b, "   %s\n", c.Enrichment)
		}
	}
	b.WriteString("\nPick one below, or refine the search.")
	return b.String()
}

func formatItinerary(itin *domain.Itinerary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Here's your %d-day itinerary for %s", itin.DayCount, itin.Destination)
	if itin.StartDate != "" {
		fmt.Fprintf(&b, " starting %s", itin.StartDate)
	}
	b.WriteString(":\n")

	for _, day := range itin.Days {
		fmt.Fprintf(&b, "\n**Day %d**", day.Day)
		if day.Date != "" {
			fmt.Fprintf(&b, " (%s)", day.Date)
		}
		if day.Summary != "" {
			fmt.Fprintf(&b, " - %s", day.Summary)
		}
		b.WriteString("\n")
		for _, item := range day.Items {
			if item.Time != "" {
				fmt.Fprintf(&b, "- %s: %s", item.Time, item.Name)
			} else {
				fmt.Fprintf(&b, "- %s", item.Name)
			}
			if item.Cost > 0 {
				fmt.Fprintf(&b, " ($%.0f)", item.Cost)
			}
			b.WriteString("\n")
		}
	}

	if itin.EstimatedTotalCost > 0 {
		fmt.Fprintf(&b, "\nEstimated total: $%.2f\n", itin.EstimatedTotalCost)
	}
	return b.String()
}

func formatSummary(sess *domain.Session) string {
	var b strings.Builder
	b.WriteString("Here's where your trip stands:\n")

	req := sess.Requirements
	if req.HasDestination() {
		fmt.Fprintf(&b, "- Destination: %s\n", req.Destination)
	} else {
		b.WriteString("- Destination: not chosen yet\n")
	}
	if req.DurationDays > 0 {
		fmt.Fprintf(&b, "- Duration: %d days\n", req.DurationDays)
	}
	if req.BudgetTier != "" {
		fmt.Fprintf(&b, "- Budget: %s\n", req.BudgetTier)
	}
	if req.Party.Adults+req.Party.Children > 0 {
		fmt.Fprintf(&b, "- Party: %d adults, %d children\n", req.Party.Adults, req.Party.Children)
	}
	if len(req.Interests) > 0 {
		fmt.Fprintf(&b, "- Interests: %s\n", strings.Join(req.Interests, ", "))
	}

	for _, kind := range []domain.StepKind{domain.StepFlight, domain.StepHotel, domain.StepActivity} {
		if res, ok := sess.ToolResults[kind]; ok {
			fmt.Fprintf(&b, "- %s search: %d results%s\n", kind, len(res.Items), sourceNote(res.Source))
		}
	}
	if sess.Itinerary != nil {
		fmt.Fprintf(&b, "- Itinerary: %d days planned\n", sess.Itinerary.DayCount)
	}
	return b.String()
}

func clarificationResponse() string {
	return "I'm not sure what you'd like to do next. You can ask me to plan a trip, " +
		"search flights, hotels or activities, or say something like \"help me choose a destination\"."
}

func invalidSelectionResponse() string {
	return "That option isn't on the current menu. Please pick one of the choices shown below."
}

func degradedNote(notes []string) string {
	if len(notes) == 0 {
		return ""
	}
	return "\n\n_Note: " + strings.Join(notes, "; ") + "._"
}
