package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/lumatask/core/pkg/httpcontext"
	"github.com/lumatask/core/usecase/store"
)

// HealthHandler reports liveness plus a few cheap state gauges.
type HealthHandler struct {
	baseHandler
	store *store.Store
}

func NewHealthHandler(st *store.Store, adapter *httpcontext.Adapter, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		store:       st,
	}
}

// Check responds with the queue depth and task count.
func (h *HealthHandler) Check(ctx *fasthttp.RequestCtx) {
	snapshot := h.store.Snapshot()
	h.respondSuccess(ctx, http.StatusOK, map[string]any{
		"status":      "ok",
		"queue_depth": h.store.QueueDepth(),
		"task_count":  len(snapshot.Tasks),
	})
}
