package analytics

import (
	"strings"

	"github.com/mkalens/support-insights/internal/models"
)

// Search filters interactions by a case-insensitive substring match against
// the ticket ID or employee name. An empty (or all-whitespace) query returns
// the input unchanged.
func Search(interactions []models.Interaction, query string) []models.Interaction {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return interactions
	}

	out := make([]models.Interaction, 0, len(interactions))
	for _, in := range interactions {
		if strings.Contains(strings.ToLower(in.TicketID), q) ||
			strings.Contains(strings.ToLower(in.Employee), q) {
			out = append(out, in)
		}
	}
	return out
}
