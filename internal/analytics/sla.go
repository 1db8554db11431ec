package analytics

import "github.com/mkalens/support-insights/internal/models"

// SLALimitMinutes is the response-time threshold. A response of exactly the
// limit is compliant; only strictly longer responses violate.
const SLALimitMinutes = 30

// ResponseTypeEmployeeToClient is the only response type evaluated against
// the SLA. Client-to-employee entries are ignored entirely.
const ResponseTypeEmployeeToClient = "Employee to Client"

type slaEventKey struct {
	ticketID string
	employee string
	rawTime  string
}

// SLAEvents extracts the SLA-relevant response events from a set of
// interactions. Entries missing a responder or a raw time are skipped.
// Events sharing the same (ticket, responder, raw time string) collapse to
// one, so re-ingesting the same record from overlapping fetches cannot
// double-count a violation.
func SLAEvents(interactions []models.Interaction) []models.SLAInteraction {
	seen := make(map[slaEventKey]struct{})
	var events []models.SLAInteraction

	for _, in := range interactions {
		for _, r := range in.ResponseTimes {
			if r.ResponseType != ResponseTypeEmployeeToClient {
				continue
			}
			if r.ResponseBy == "" || r.ResponseTime == "" {
				continue
			}

			key := slaEventKey{in.TicketID, r.ResponseBy, r.ResponseTime}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}

			minutes := ParseResponseMinutes(r.ResponseTime)
			events = append(events, models.SLAInteraction{
				TicketID:        in.TicketID,
				Employee:        r.ResponseBy,
				ResponseMinutes: minutes,
				IsViolation:     minutes > SLALimitMinutes,
				SLALimit:        SLALimitMinutes,
			})
		}
	}
	return events
}

// ViolationsByEmployee tallies violation events per responder.
func ViolationsByEmployee(events []models.SLAInteraction) map[string]int {
	counts := make(map[string]int)
	for _, e := range events {
		if e.IsViolation {
			counts[e.Employee]++
		}
	}
	return counts
}

// CountViolations returns the number of violation events in the set.
func CountViolations(events []models.SLAInteraction) int {
	n := 0
	for _, e := range events {
		if e.IsViolation {
			n++
		}
	}
	return n
}
