package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mkalens/support-insights/internal/models"
)

type InteractionRepository struct {
	db *sql.DB
}

func NewInteractionRepository(db *sql.DB) *InteractionRepository {
	return &InteractionRepository{db: db}
}

const interactionColumns = `
	i.id, i.ticket_id, i.employee, i.created_at, i.sentiment,
	i.sentiment_positive, i.sentiment_negative, i.sentiment_neutral, i.sentiment_mixed,
	i.tone_and_trust, i.grammar_language, i.professionalism_clarity, i.non_tech_clarity,
	i.empathy, i.responsiveness,
	i.client_alignment, i.proactivity, i.ownership_accountability, i.enablement,
	i.consistency, i.risk_impact`

// FetchAll returns every interaction with its response entries attached,
// oldest first.
func (r *InteractionRepository) FetchAll(ctx context.Context) ([]models.Interaction, error) {
	query := fmt.Sprintf(`SELECT %s FROM interactions AS i ORDER BY i.created_at, i.id`, interactionColumns)
	responseQuery := `
		SELECT e.interaction_id, e.response_by, e.response_time, e.response_type
		FROM response_entries AS e
		ORDER BY e.interaction_id, e.id`

	return r.fetch(ctx, query, responseQuery)
}

// FetchByEmployee returns the interactions whose primary employee matches.
func (r *InteractionRepository) FetchByEmployee(ctx context.Context, employee string) ([]models.Interaction, error) {
	query := fmt.Sprintf(`SELECT %s FROM interactions AS i WHERE i.employee = ? ORDER BY i.created_at, i.id`, interactionColumns)
	responseQuery := `
		SELECT e.interaction_id, e.response_by, e.response_time, e.response_type
		FROM response_entries AS e
		JOIN interactions AS i ON i.id = e.interaction_id
		WHERE i.employee = ?
		ORDER BY e.interaction_id, e.id`

	return r.fetch(ctx, query, responseQuery, employee)
}

// FetchByTicket returns the interactions grouped under one ticket.
func (r *InteractionRepository) FetchByTicket(ctx context.Context, ticketID string) ([]models.Interaction, error) {
	query := fmt.Sprintf(`SELECT %s FROM interactions AS i WHERE i.ticket_id = ? ORDER BY i.created_at, i.id`, interactionColumns)
	responseQuery := `
		SELECT e.interaction_id, e.response_by, e.response_time, e.response_type
		FROM response_entries AS e
		JOIN interactions AS i ON i.id = e.interaction_id
		WHERE i.ticket_id = ?
		ORDER BY e.interaction_id, e.id`

	return r.fetch(ctx, query, responseQuery, ticketID)
}

func (r *InteractionRepository) fetch(ctx context.Context, query, responseQuery string, args ...any) ([]models.Interaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query interactions: %w", err)
	}
	defer rows.Close()

	var interactions []models.Interaction
	index := make(map[int64]int)

	for rows.Next() {
		var (
			id        int64
			in        models.Interaction
			createdAt string
			criteria  [12]sql.NullFloat64
			sentiment [4]sql.NullFloat64
		)
		if err := rows.Scan(
			&id, &in.TicketID, &in.Employee, &createdAt, &in.Sentiment,
			&sentiment[0], &sentiment[1], &sentiment[2], &sentiment[3],
			&criteria[0], &criteria[1], &criteria[2], &criteria[3], &criteria[4], &criteria[5],
			&criteria[6], &criteria[7], &criteria[8], &criteria[9], &criteria[10], &criteria[11],
		); err != nil {
			return nil, fmt.Errorf("scan interaction row: %w", err)
		}

		// A row without a parseable timestamp cannot be bucketed; skip it
		// rather than failing the whole pass.
		ts, err := time.Parse(time.RFC3339, createdAt)
		if err != nil {
			continue
		}
		in.CreatedAt = ts.UTC()

		in.SentimentScores = models.SentimentScores{
			Positive: sentiment[0].Float64,
			Negative: sentiment[1].Float64,
			Neutral:  sentiment[2].Float64,
			Mixed:    sentiment[3].Float64,
		}
		// NULL criteria coerce to 0, which the aggregator reads as
		// "not scored".
		in.Scores = models.CriterionScores{
			ToneAndTrust:            criteria[0].Float64,
			GrammarLanguage:         criteria[1].Float64,
			ProfessionalismClarity:  criteria[2].Float64,
			NonTechClarity:          criteria[3].Float64,
			Empathy:                 criteria[4].Float64,
			Responsiveness:          criteria[5].Float64,
			ClientAlignment:         criteria[6].Float64,
			Proactivity:             criteria[7].Float64,
			OwnershipAccountability: criteria[8].Float64,
			Enablement:              criteria[9].Float64,
			Consistency:             criteria[10].Float64,
			RiskImpact:              criteria[11].Float64,
		}

		index[id] = len(interactions)
		interactions = append(interactions, in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate interactions: %w", err)
	}

	if err := r.attachResponses(ctx, responseQuery, interactions, index, args...); err != nil {
		return nil, err
	}
	return interactions, nil
}

func (r *InteractionRepository) attachResponses(ctx context.Context, query string, interactions []models.Interaction, index map[int64]int, args ...any) error {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("query response entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			interactionID int64
			entry         models.ResponseEntry
			responseBy    sql.NullString
			responseTime  sql.NullString
			responseType  sql.NullString
		)
		if err := rows.Scan(&interactionID, &responseBy, &responseTime, &responseType); err != nil {
			return fmt.Errorf("scan response entry: %w", err)
		}

		i, ok := index[interactionID]
		if !ok {
			continue
		}
		entry.ResponseBy = responseBy.String
		entry.ResponseTime = responseTime.String
		entry.ResponseType = responseType.String
		interactions[i].ResponseTimes = append(interactions[i].ResponseTimes, entry)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate response entries: %w", err)
	}
	return nil
}
