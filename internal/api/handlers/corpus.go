package handlers

import (
	"context"
	"net/http"

	"github.com/nutriware/nutrirag/internal/api"
	"github.com/nutriware/nutrirag/internal/service"
)

type CorpusStatsService interface {
	Stats(ctx context.Context) (*service.CorpusStats, error)
}

type CorpusHandler struct {
	svc CorpusStatsService
}

func NewCorpusHandler(svc CorpusStatsService) *CorpusHandler {
	return &CorpusHandler{svc: svc}
}

func (h *CorpusHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, stats)
}
