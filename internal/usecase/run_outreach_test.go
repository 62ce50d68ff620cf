package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/allycar/outreach/internal/entity"
	"github.com/allycar/outreach/internal/infra/integration/twilio"
	"github.com/allycar/outreach/internal/infra/store"
)

// MockLeadSource
type MockLeadSource struct {
	mock.Mock
}

func (m *MockLeadSource) FetchLeads(ctx context.Context) ([]entity.Lead, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Lead), args.Error(1)
}

func (m *MockLeadSource) UpdateStatus(ctx context.Context, row int, status string) error {
	args := m.Called(ctx, row, status)
	return args.Error(0)
}

func (m *MockLeadSource) UpdateSentAt(ctx context.Context, row int, sentAt string) error {
	args := m.Called(ctx, row, sentAt)
	return args.Error(0)
}

// MockGateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) SendMessage(input twilio.SendMessageInput) (string, error) {
	args := m.Called(input)
	return args.String(0), args.Error(1)
}

type stubGate struct {
	open bool
}

func (g stubGate) IsOpen(string) bool { return g.open }

func newTestUseCase(leads *MockLeadSource, gateway *MockGateway, open bool) (*RunOutreachUseCase, *store.MemoryStore) {
	sessionStore := store.NewMemoryStore()
	uc := NewRunOutreachUseCase(leads, stubGate{open: open}, gateway, sessionStore, NewPacer(0, 1))
	uc.Now = func() time.Time {
		return time.Date(2026, 8, 24, 10, 30, 0, 0, time.UTC)
	}
	return uc, sessionStore
}

func TestRunSendsAndRegistersSession(t *testing.T) {
	leads := new(MockLeadSource)
	gateway := new(MockGateway)
	uc, sessionStore := newTestUseCase(leads, gateway, true)

	leads.On("FetchLeads", mock.Anything).Return([]entity.Lead{
		{Row: 2, Name: "Ana", Phone: "+1 (555) 123-4567", City: "Lisbon", Country: "Portugal"},
	}, nil)
	gateway.On("SendMessage", mock.MatchedBy(func(input twilio.SendMessageInput) bool {
		return input.To == "whatsapp:+15551234567" && strings.Contains(input.Body, "Ana")
	})).Return("SM123", nil)
	leads.On("UpdateStatus", mock.Anything, 2, entity.LeadStatusSent).Return(nil)
	leads.On("UpdateSentAt", mock.Anything, 2, "2026-08-24 10:30:00").Return(nil)

	report, err := uc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.Sent)
	assert.Equal(t, 0, report.Errors)
	assert.Equal(t, 1, report.Total)
	assert.NotEmpty(t, report.RunID)

	session, err := sessionStore.Get(context.Background(), "whatsapp:+15551234567")
	require.NoError(t, err)
	assert.Equal(t, "Ana", session.Name)
	assert.Equal(t, entity.StageAwaitingCategory, session.Stage)

	leads.AssertExpectations(t)
	gateway.AssertExpectations(t)
}

// Lead sem telefone: marca dados incompletos e nunca tenta enviar.
func TestRunSkipsIncompleteLead(t *testing.T) {
	leads := new(MockLeadSource)
	gateway := new(MockGateway)
	uc, sessionStore := newTestUseCase(leads, gateway, true)

	leads.On("FetchLeads", mock.Anything).Return([]entity.Lead{
		{Row: 2, Name: "Ana", Phone: "", City: "Lisbon", Country: "Portugal"},
	}, nil)
	leads.On("UpdateStatus", mock.Anything, 2, entity.LeadStatusIncompleteData).Return(nil)

	report, err := uc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, report.Sent)
	assert.Equal(t, 1, report.Errors)
	gateway.AssertNotCalled(t, "SendMessage", mock.Anything)

	count, _ := sessionStore.Count(context.Background())
	assert.Zero(t, count)
	leads.AssertExpectations(t)
}

func TestRunSkipsAlreadySent(t *testing.T) {
	leads := new(MockLeadSource)
	gateway := new(MockGateway)
	uc, _ := newTestUseCase(leads, gateway, true)

	leads.On("FetchLeads", mock.Anything).Return([]entity.Lead{
		{Row: 2, Name: "Ana", Phone: "5551234567", Status: entity.LeadStatusSent},
	}, nil)

	report, err := uc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.Skipped)
	gateway.AssertNotCalled(t, "SendMessage", mock.Anything)
}

func TestRunSkipsOutsideBusinessHours(t *testing.T) {
	leads := new(MockLeadSource)
	gateway := new(MockGateway)
	uc, _ := newTestUseCase(leads, gateway, false)

	leads.On("FetchLeads", mock.Anything).Return([]entity.Lead{
		{Row: 2, Name: "Ana", Phone: "5551234567", Country: "Portugal"},
	}, nil)

	report, err := uc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.Skipped)
	gateway.AssertNotCalled(t, "SendMessage", mock.Anything)
}

func TestRunRecordsTruncatedGatewayError(t *testing.T) {
	leads := new(MockLeadSource)
	gateway := new(MockGateway)
	uc, sessionStore := newTestUseCase(leads, gateway, true)

	longErr := errors.New(strings.Repeat("x", 120))
	leads.On("FetchLeads", mock.Anything).Return([]entity.Lead{
		{Row: 2, Name: "Ana", Phone: "5551234567"},
	}, nil)
	gateway.On("SendMessage", mock.Anything).Return("", longErr)
	leads.On("UpdateStatus", mock.Anything, 2, "Error: "+strings.Repeat("x", 50)).Return(nil)

	report, err := uc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.Errors)
	assert.Equal(t, 0, report.Sent)

	// Envio falhou: nenhuma sessão é registrada.
	count, _ := sessionStore.Count(context.Background())
	assert.Zero(t, count)
	leads.AssertExpectations(t)
}

func TestRunFailsWhenSourceUnavailable(t *testing.T) {
	leads := new(MockLeadSource)
	gateway := new(MockGateway)
	uc, _ := newTestUseCase(leads, gateway, true)

	leads.On("FetchLeads", mock.Anything).Return(nil, errors.New("planilha fora do ar"))

	report, err := uc.Run(context.Background())
	assert.Nil(t, report)
	require.Error(t, err)
	assert.True(t, IsTechnicalError(err))
}

func TestSendInitialOfferRegistersSession(t *testing.T) {
	leads := new(MockLeadSource)
	gateway := new(MockGateway)
	uc, sessionStore := newTestUseCase(leads, gateway, true)

	gateway.On("SendMessage", mock.Anything).Return("SM999", nil)

	sid, err := uc.SendInitialOffer(context.Background(), "whatsapp:+5511988887777", "Bruno", "Curitiba")
	require.NoError(t, err)
	assert.Equal(t, "SM999", sid)

	session, err := sessionStore.Get(context.Background(), "whatsapp:+5511988887777")
	require.NoError(t, err)
	assert.Equal(t, "Bruno", session.Name)
	assert.Equal(t, "Curitiba", session.City)
}
