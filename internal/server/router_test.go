package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nutriware/nutrirag/internal/api/handlers"
	"github.com/nutriware/nutrirag/internal/domain"
	"github.com/nutriware/nutrirag/internal/service"
)

type MockQuestionService struct {
	mock.Mock
}

func (m *MockQuestionService) Ask(ctx context.Context, question string) (*domain.Answer, error) {
	args := m.Called(ctx, question)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Answer), args.Error(1)
}

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

func setupRouter(apiKey string) (http.Handler, *MockQuestionService, *MockCorpusStatsService) {
	querySvc := new(MockQuestionService)
	corpusSvc := new(MockCorpusStatsService)

	cfg := RouterConfig{
		APIKey:        apiKey,
		QueryHandler:  handlers.NewQueryHandler(querySvc),
		CorpusHandler: handlers.NewCorpusHandler(corpusSvc),
	}

	return NewRouter(cfg), querySvc, corpusSvc
}

func TestRouter_HealthEndpoint(t *testing.T) {
	router, _, _ := setupRouter("")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "ok", data["status"])
}

func TestRouter_Ask(t *testing.T) {
	router, querySvc, _ := setupRouter("")

	querySvc.On("Ask", mock.Anything, "How much fiber per day?").Return(&domain.Answer{
		Text: "Around 25 to 30 grams of fiber per day.",
		Mode: domain.AnswerModeGrounded,
		Matches: []domain.RetrievalMatch{
			{Source: "nutrition-basics.pdf", ChunkIndex: 0, Similarity: 0.88},
		},
	}, nil)

	body, err := json.Marshal(handlers.AskRequest{Question: "How much fiber per day?"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/ask", bytes.NewReader(body))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	querySvc.AssertExpectations(t)
}

func TestRouter_CorpusStats(t *testing.T) {
	router, _, corpusSvc := setupRouter("")

	corpusSvc.On("Stats", mock.Anything).Return(&service.CorpusStats{TotalChunks: 3}, nil)

	req := httptest.NewRequest(http.MethodGet, "/corpus/stats", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	corpusSvc.AssertExpectations(t)
}

func TestRouter_AuthRequired(t *testing.T) {
	router, _, _ := setupRouter("secret-key")

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/ask"},
		{http.MethodGet, "/corpus/stats"},
	}

	for _, route := range routes {
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			req := httptest.NewRequest(route.method, route.path, nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestRouter_AuthAccepted(t *testing.T) {
	router, _, corpusSvc := setupRouter("secret-key")

	corpusSvc.On("Stats", mock.Anything).Return(&service.CorpusStats{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/corpus/stats", nil)
	req.Header.Set("Authorization", "Bearer secret-key")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_HealthSkipsAuth(t *testing.T) {
	router, _, _ := setupRouter("secret-key")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
