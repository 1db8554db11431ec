package mocks

import (
	"context"
	"errors"

	"github.com/mkalens/support-insights/internal/models"
)

// MockInteractionRepository is a mock implementation of the
// InteractionRepository interface for testing the service layer.
type MockInteractionRepository struct {
	FetchAllFunc        func(ctx context.Context) ([]models.Interaction, error)
	FetchByEmployeeFunc func(ctx context.Context, employee string) ([]models.Interaction, error)
	FetchByTicketFunc   func(ctx context.Context, ticketID string) ([]models.Interaction, error)
}

// FetchAll implements the InteractionRepository interface
func (m *MockInteractionRepository) FetchAll(ctx context.Context) ([]models.Interaction, error) {
	if m.FetchAllFunc != nil {
		return m.FetchAllFunc(ctx)
	}
	return nil, errors.New("FetchAllFunc not implemented")
}

// FetchByEmployee implements the InteractionRepository interface
func (m *MockInteractionRepository) FetchByEmployee(ctx context.Context, employee string) ([]models.Interaction, error) {
	if m.FetchByEmployeeFunc != nil {
		return m.FetchByEmployeeFunc(ctx, employee)
	}
	return nil, errors.New("FetchByEmployeeFunc not implemented")
}

// FetchByTicket implements the InteractionRepository interface
func (m *MockInteractionRepository) FetchByTicket(ctx context.Context, ticketID string) ([]models.Interaction, error) {
	if m.FetchByTicketFunc != nil {
		return m.FetchByTicketFunc(ctx, ticketID)
	}
	return nil, errors.New("FetchByTicketFunc not implemented")
}
