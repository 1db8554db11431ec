package service

import (
	"context"

	"github.com/mkalens/support-insights/internal/models"
)

// InteractionRepository defines the interface for the ticket store used by
// the insights service.
type InteractionRepository interface {
	FetchAll(ctx context.Context) ([]models.Interaction, error)
	FetchByEmployee(ctx context.Context, employee string) ([]models.Interaction, error)
	FetchByTicket(ctx context.Context, ticketID string) ([]models.Interaction, error)
}
