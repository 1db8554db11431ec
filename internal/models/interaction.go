package models

import "time"

// Sentiment labels recognized at ingestion. Anything else is dropped from
// the distribution tallies.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
	SentimentMixed    = "mixed"
)

// ResponseEntry is one timed response event attached to an interaction.
// Only entries of type "Employee to Client" count toward the SLA.
type ResponseEntry struct {
	ResponseBy   string `json:"response_by"`
	ResponseTime string `json:"response_time"`
	ResponseType string `json:"response_type"`
}

// SentimentScores carries the classifier probabilities for each label.
// They are informational and are not required to sum to 1.
type SentimentScores struct {
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"`
	Neutral  float64 `json:"neutral"`
	Mixed    float64 `json:"mixed"`
}

// CriterionScores holds the twelve QA criteria for a single interaction, or
// the running means of those criteria for an employee. A zero value means
// "not scored" for contextual criteria.
type CriterionScores struct {
	ToneAndTrust            float64 `json:"tone_and_trust"`
	GrammarLanguage         float64 `json:"grammar_language"`
	ProfessionalismClarity  float64 `json:"professionalism_clarity"`
	NonTechClarity          float64 `json:"non_tech_clarity"`
	Empathy                 float64 `json:"empathy"`
	Responsiveness          float64 `json:"responsiveness"`
	ClientAlignment         float64 `json:"client_alignment"`
	Proactivity             float64 `json:"proactivity"`
	OwnershipAccountability float64 `json:"ownership_accountability"`
	Enablement              float64 `json:"enablement"`
	Consistency             float64 `json:"consistency"`
	RiskImpact              float64 `json:"risk_impact"`
}

// Interaction is one QA-reviewed employee-to-client exchange. Multiple
// interactions can share a ticket.
type Interaction struct {
	TicketID        string          `json:"ticket_id"`
	Employee        string          `json:"employee"`
	CreatedAt       time.Time       `json:"created_date"`
	Sentiment       string          `json:"sentiment"`
	SentimentScores SentimentScores `json:"sentiment_scores"`
	Scores          CriterionScores `json:"scores"`
	ResponseTimes   []ResponseEntry `json:"response_times"`
}

// SentimentDistribution counts interactions per recognized sentiment label.
type SentimentDistribution struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Neutral  int `json:"neutral"`
	Mixed    int `json:"mixed"`
}

// EmployeeStat is the per-employee aggregate for one pass over the data.
// TotalTickets counts interactions folded in, not distinct tickets.
type EmployeeStat struct {
	Employee      string                `json:"employee"`
	TotalTickets  int                   `json:"total_tickets"`
	AvgScores     CriterionScores       `json:"avg_scores"`
	Sentiment     SentimentDistribution `json:"sentiment_distribution"`
	SLAViolations int                   `json:"sla_violations"`
}

// SLAInteraction is one "Employee to Client" response event evaluated
// against the response-time threshold. Employee is the responder
// (response_by), which can differ from the ticket's primary employee.
type SLAInteraction struct {
	TicketID        string `json:"ticket_id"`
	Employee        string `json:"employee"`
	ResponseMinutes int    `json:"response_time"`
	IsViolation     bool   `json:"is_violation"`
	SLALimit        int    `json:"sla_limit"`
}

// DailyStat is the rollup for one calendar day inside a weekly bucket.
type DailyStat struct {
	UniqueTickets int     `json:"unique_tickets"`
	AvgScore      float64 `json:"avg_score"`
}

// EmployeeWeekly is the per-employee detail inside a weekly bucket.
type EmployeeWeekly struct {
	Employee      string                `json:"employee"`
	Interactions  int                   `json:"interactions"`
	UniqueTickets int                   `json:"unique_tickets"`
	AvgScore      float64               `json:"avg_score"`
	Sentiment     SentimentDistribution `json:"sentiment_distribution"`
	SLAViolations int                   `json:"sla_violations"`
}

// WeeklyBucket is the rollup for one Sunday-aligned calendar week.
// Daily is indexed 0=Sunday through 6=Saturday.
type WeeklyBucket struct {
	WeekStart     time.Time             `json:"week_start"`
	WeekEnd       time.Time             `json:"week_end"`
	Interactions  int                   `json:"interactions"`
	UniqueTickets int                   `json:"unique_tickets"`
	AvgScore      float64               `json:"avg_score"`
	SLAViolations int                   `json:"sla_violations"`
	Sentiment     SentimentDistribution `json:"sentiment_distribution"`
	Employees     []EmployeeWeekly      `json:"employees"`
	TopPerformers []EmployeeWeekly      `json:"top_performers"`
	Daily         [7]DailyStat          `json:"daily"`
}
