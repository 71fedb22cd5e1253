//go:build e2e

package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nutriware/nutrirag/internal/api/handlers"
	"github.com/nutriware/nutrirag/internal/domain"
	"github.com/nutriware/nutrirag/internal/repository"
	"github.com/nutriware/nutrirag/internal/server"
	"github.com/nutriware/nutrirag/internal/service"
	"github.com/nutriware/nutrirag/internal/testutil"
)

const embeddingDims = 1536

// fakeAI is a deterministic stand-in for the OpenAI client. Texts that
// share a topic word embed to the same unit vector, so retrieval behaves
// like the real system without network calls.
type fakeAI struct{}

var topicWords = []string{"diabetes", "fiber", "protein", "estomago"}

func embedDeterministic(text string) []float32 {
	vec := make([]float32, embeddingDims)
	lower := strings.ToLower(text)
	for i, topic := range topicWords {
		if strings.Contains(lower, topic) {
			vec[i] = 1
		}
	}

	// Off-topic text embeds to a reserved axis no corpus chunk uses.
	sum := float32(0)
	for _, v := range vec {
		sum += v
	}
	if sum == 0 {
		vec[embeddingDims-1] = 1
	}

	domain.Normalize(vec)
	return vec
}

func (f *fakeAI) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	return embedDeterministic(text), nil
}

func (f *fakeAI) GenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = embedDeterministic(text)
	}
	return vectors, nil
}

func (f *fakeAI) GenerateText(ctx context.Context, systemInstruction, prompt string, temperature float32) (string, error) {
	return "test answer", nil
}

// fakeCorpus serves in-memory documents so ingestion can run without PDFs
// on disk. The extractor below returns each document's text directly.
type fakeCorpus struct {
	docs map[string]string
}

func (c *fakeCorpus) ListDocuments(ctx context.Context) ([]service.CorpusDocument, error) {
	var docs []service.CorpusDocument
	for name := range c.docs {
		docs = append(docs, service.CorpusDocument{Name: name, Path: name})
	}
	return docs, nil
}

type fakeExtractor struct {
	corpus *fakeCorpus
}

func (e *fakeExtractor) Extract(path string) (string, error) {
	text, ok := e.corpus.docs[path]
	if !ok {
		return "", fmt.Errorf("unknown document %q", path)
	}
	return text, nil
}

// E2ETestEnv holds all resources needed for E2E tests
type E2ETestEnv struct {
	T            *testing.T
	Ctx          context.Context
	PostgresC    *testutil.PostgresContainer
	Pool         *pgxpool.Pool
	ServerURL    string
	ServerCloser func()
	HTTPClient   *http.Client
	AI           *fakeAI
}

// SetupE2EEnv creates a full E2E test environment with a database
// container and an HTTP server wired to the fake AI client.
func SetupE2EEnv(t *testing.T) *E2ETestEnv {
	ctx := context.Background()

	pgC := testutil.NewPostgresContainer(ctx, t)
	pool := testutil.NewTestPool(ctx, t, pgC, "../../migrations")

	port, err := getFreePort()
	if err != nil {
		t.Fatalf("failed to get free port: %v", err)
	}

	ai := &fakeAI{}
	serverURL, serverCloser := startServer(t, pool, ai, port)

	return &E2ETestEnv{
		T:            t,
		Ctx:          ctx,
		PostgresC:    pgC,
		Pool:         pool,
		ServerURL:    serverURL,
		ServerCloser: serverCloser,
		HTTPClient:   &http.Client{Timeout: 30 * time.Second},
		AI:           ai,
	}
}

// Cleanup releases all resources
func (e *E2ETestEnv) Cleanup() {
	if e.ServerCloser != nil {
		e.ServerCloser()
	}
	if e.Pool != nil {
		e.Pool.Close()
	}
	if e.PostgresC != nil {
		e.PostgresC.Terminate(e.Ctx)
	}
}

// Ingest runs the full ingestion pipeline over the given documents.
func (e *E2ETestEnv) Ingest(docs map[string]string) *service.IngestReport {
	corpus := &fakeCorpus{docs: docs}
	ingestSvc := service.NewIngestService(
		corpus,
		&fakeExtractor{corpus: corpus},
		service.NewEmbeddingService(e.AI),
		repository.NewDocumentRepository(e.Pool),
		service.DefaultIngestConfig(),
	)

	report, err := ingestSvc.Reindex(e.Ctx)
	if err != nil {
		e.T.Fatalf("reindex failed: %v", err)
	}
	return report
}

// APIResponse represents a standard API response
type APIResponse struct {
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error,omitempty"`
}

// Get performs a GET request
func (e *E2ETestEnv) Get(path string) (*APIResponse, error) {
	return e.doRequest("GET", path, nil)
}

// Post performs a POST request
func (e *E2ETestEnv) Post(path string, body interface{}) (*APIResponse, error) {
	return e.doRequest("POST", path, body)
}

func (e *E2ETestEnv) doRequest(method, path string, body interface{}) (*APIResponse, error) {
	url := e.ServerURL + path

	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal body: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var apiResp APIResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		if resp.StatusCode >= 400 {
			return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
		}
		return nil, err
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, apiResp.Error)
	}

	return &apiResp, nil
}

// startServer starts the HTTP server with the full query pipeline
func startServer(t *testing.T, pool *pgxpool.Pool, ai *fakeAI, port int) (string, func()) {
	docRepo := repository.NewDocumentRepository(pool)

	embeddingSvc := service.NewEmbeddingService(ai)
	retrievalSvc := service.NewRetrievalService(docRepo, service.DefaultRetrievalConfig())
	answerSvc := service.NewAnswerService(ai)
	querySvc := service.NewQueryService(embeddingSvc, retrievalSvc, answerSvc)
	corpusSvc := service.NewCorpusService(docRepo)

	cfg := server.RouterConfig{
		QueryHandler:  handlers.NewQueryHandler(querySvc),
		CorpusHandler: handlers.NewCorpusHandler(corpusSvc),
	}

	router := server.NewRouter(cfg)
	addr := fmt.Sprintf(":%d", port)

	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	serverURL := fmt.Sprintf("http://localhost:%d", port)
	waitForServer(t, serverURL, 10*time.Second)

	return serverURL, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	}
}

func waitForServer(t *testing.T, url string, timeout time.Duration) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		resp, err := http.Get(url + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
	t.Fatalf("server did not start within %v", timeout)
}

func getFreePort() (int, error) {
	addr, err := net.ResolveTCPAddr("tcp", "localhost:0")
	if err != nil {
		return 0, err
	}

	l, err := net.ListenTCP("tcp", addr)
	if err != nil {
		return 0, err
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}
