package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/nutriware/nutrirag/internal/api"
	"github.com/nutriware/nutrirag/internal/domain"
)

type QuestionService interface {
	Ask(ctx context.Context, question string) (*domain.Answer, error)
}

type QueryHandler struct {
	svc QuestionService
}

func NewQueryHandler(svc QuestionService) *QueryHandler {
	return &QueryHandler{svc: svc}
}

type AskRequest struct {
	Question string `json:"question"`
}

type MatchResponse struct {
	Source     string  `json:"source"`
	ChunkIndex int     `json:"chunk_index"`
	Similarity float64 `json:"similarity"`
}

type AskResponse struct {
	Answer  string          `json:"answer"`
	Mode    string          `json:"mode"`
	Matches []MatchResponse `json:"matches"`
}

func answerToResponse(a *domain.Answer) *AskResponse {
	matches := make([]MatchResponse, len(a.Matches))
	for i, m := range a.Matches {
		matches[i] = MatchResponse{
			Source:     m.Source,
			ChunkIndex: m.ChunkIndex,
			Similarity: m.Similarity,
		}
	}
	return &AskResponse{
		Answer:  a.Text,
		Mode:    string(a.Mode),
		Matches: matches,
	}
}

func (h *QueryHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Question == "" {
		api.Error(w, http.StatusBadRequest, "question is required")
		return
	}

	answer, err := h.svc.Ask(r.Context(), req.Question)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, answerToResponse(answer))
}
