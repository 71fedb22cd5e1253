package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL, apiKey string) *APIClient {
	return &APIClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: http.DefaultClient,
	}
}

func TestAPIClient_Get(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/health", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]string{"status": "ok"},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL, "")

	resp, err := client.Get("/health")
	require.NoError(t, err)

	var health HealthResponse
	require.NoError(t, json.Unmarshal(resp.Data, &health))
	assert.Equal(t, "ok", health.Status)
}

func TestAPIClient_Post_SendsAuthHeader(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")

		var req AskRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "What is fiber?", req.Question)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": AskResponse{Answer: "Fiber is...", Mode: "GROUNDED"},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL, "secret-key")

	resp, err := client.Post("/ask", AskRequest{Question: "What is fiber?"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer secret-key", gotAuth)

	var askResp AskResponse
	require.NoError(t, json.Unmarshal(resp.Data, &askResp))
	assert.Equal(t, "GROUNDED", askResp.Mode)
}

func TestAPIClient_NoAuthHeaderWithoutKey(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]interface{}{"data": map[string]string{}})
	}))
	defer server.Close()

	client := newTestClient(server.URL, "")

	_, err := client.Get("/health")
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestAPIClient_ErrorResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "question is required"})
	}))
	defer server.Close()

	client := newTestClient(server.URL, "")

	_, err := client.Post("/ask", AskRequest{})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "question is required", apiErr.Message)
}

func TestAPIClient_NonJSONError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("bad gateway"))
	}))
	defer server.Close()

	client := newTestClient(server.URL, "")

	_, err := client.Get("/health")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "bad gateway")
}
