package engine

import (
	"fmt"

	"github.com/wanderplan/wanderplan/pkg/domain"
)

// BuildMenu derives the tokenized follow-up menu from the session state.
//
// Discovery phase: one D{i} entry per ranked candidate plus the fixed
// trailing D99 refine entry. Normal phase: one A{i} entry per next step
// not yet satisfied, in fixed priority order (flights, hotels, activities,
// itinerary, summary). Tokens are only valid for the menu that produced
// them.
func BuildMenu(sess *domain.Session) []domain.MenuEntry {
	if sess.Phase == domain.PhaseDestinationDiscovery {
		return buildDiscoveryMenu(sess)
	}
	return buildNormalMenu(sess)
}

func buildDiscoveryMenu(sess *domain.Session) []domain.MenuEntry {
	menu := make([]domain.MenuEntry, 0, len(sess.Candidates)+1)
	for i, c := range sess.Candidates {
		menu = append(menu, domain.MenuEntry{
			Token:       fmt.Sprintf("D%d", i+1),
			Description: fmt.Sprintf("Choose %s", c.Name),
			Action: domain.Action{
				Type:           domain.ActionSelectDestination,
				CandidateIndex: i,
			},
		})
	}
	menu = append(menu, domain.MenuEntry{
		Token:       domain.RefineToken,
		Description: "None of these, refine the search",
		Action:      domain.Action{Type: domain.ActionRefineSearch},
	})
	return menu
}

func buildNormalMenu(sess *domain.Session) []domain.MenuEntry {
	var menu []domain.MenuEntry
	next := 1
	add := func(description string, action domain.Action) {
		menu = append(menu, domain.MenuEntry{
			Token:       fmt.Sprintf("A%d", next),
			Description: description,
			Action:      action,
		})
		next++
	}

	_, hasFlights := sess.ToolResults[domain.StepFlight]
	_, hasHotels := sess.ToolResults[domain.StepHotel]
	_, hasActivities := sess.ToolResults[domain.StepActivity]

	if sess.Requirements.HasDestination() {
		if !hasFlights {
			add("Search flights", domain.Action{Type: domain.ActionRunWorker, Worker: domain.StepFlight})
		}
		if !hasHotels {
			add("Search hotels", domain.Action{Type: domain.ActionRunWorker, Worker: domain.StepHotel})
		}
		if !hasActivities {
			add("Find activities", domain.Action{Type: domain.ActionRunWorker, Worker: domain.StepActivity})
		}
		if sess.Itinerary == nil {
			add("Compose an itinerary", domain.Action{Type: domain.ActionRunWorker, Worker: domain.StepItinerary})
		} else {
			add("Refine the itinerary", domain.Action{Type: domain.ActionPlanTrip})
		}
	}
	add("Show a trip summary", domain.Action{Type: domain.ActionSummary})

	return menu
}

// DecodeSelection resolves a token against the session's pending menu.
// Unknown or stale tokens return ErrInvalidSelection.
func DecodeSelection(sess *domain.Session, token string) (domain.MenuEntry, error) {
	entry, ok := domain.FindMenuEntry(sess.PendingMenu, token)
	if !ok {
		return domain.MenuEntry{}, domain.ErrInvalidSelection
	}
	return entry, nil
}
