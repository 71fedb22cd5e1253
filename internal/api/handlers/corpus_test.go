package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nutriware/nutrirag/internal/domain"
	"github.com/nutriware/nutrirag/internal/service"
)

type MockCorpusStatsService struct {
	mock.Mock
}

func (m *MockCorpusStatsService) Stats(ctx context.Context) (*service.CorpusStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CorpusStats), args.Error(1)
}

func TestCorpusHandler_Stats(t *testing.T) {
	mockSvc := new(MockCorpusStatsService)
	mockSvc.On("Stats", mock.Anything).Return(&service.CorpusStats{
		TotalChunks: 12,
		Sources: []service.SourceStat{
			{Source: "diabetes-guide.pdf", Chunks: 8},
			{Source: "meal-plans.pdf", Chunks: 4},
		},
	}, nil)

	handler := NewCorpusHandler(mockSvc)

	req := httptest.NewRequest(http.MethodGet, "/corpus/stats", nil)
	w := httptest.NewRecorder()

	handler.Stats(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data service.CorpusStats `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))

	assert.Equal(t, 12, envelope.Data.TotalChunks)
	require.Len(t, envelope.Data.Sources, 2)
	assert.Equal(t, "meal-plans.pdf", envelope.Data.Sources[1].Source)
	mockSvc.AssertExpectations(t)
}

func TestCorpusHandler_Stats_Error(t *testing.T) {
	mockSvc := new(MockCorpusStatsService)
	mockSvc.On("Stats", mock.Anything).Return(nil, domain.NewDomainError(domain.ErrCodeInternalError, "failed to read corpus stats"))

	handler := NewCorpusHandler(mockSvc)

	req := httptest.NewRequest(http.MethodGet, "/corpus/stats", nil)
	w := httptest.NewRecorder()

	handler.Stats(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
