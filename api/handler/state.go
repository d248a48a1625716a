package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/lumatask/core/api/transport"
	"github.com/lumatask/core/domain"
	"github.com/lumatask/core/internal/notify"
	"github.com/lumatask/core/pkg/httpcontext"
	appLogger "github.com/lumatask/core/pkg/logger"
	"github.com/lumatask/core/usecase/selector"
	"github.com/lumatask/core/usecase/store"
	"github.com/lumatask/core/usecase/validate"
)

// StateHandler exposes the core's three boundary interfaces over HTTP:
// action intake, the read-only snapshot with its derived views, and the
// recent notices fed by the bus.
type StateHandler struct {
	baseHandler
	store   *store.Store
	views   *selector.Views
	notices *notify.Ring
}

func NewStateHandler(st *store.Store, views *selector.Views, notices *notify.Ring, adapter *httpcontext.Adapter, logger *zap.Logger) *StateHandler {
	return &StateHandler{
		baseHandler: newBaseHandler(adapter, logger),
		store:       st,
		views:       views,
		notices:     notices,
	}
}

// SubmitAction decodes and dispatches one action. Structurally invalid
// requests are rejected at this edge with a 400; referential problems
// (stale ids, empty batch intersections) are applied as no-ops and show up
// as notices instead, exactly as they would for the in-process caller.
func (h *StateHandler) SubmitAction(ctx *fasthttp.RequestCtx) {
	var req transport.ActionRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest,
			transport.NewError(string(domain.ErrCodeInvalid), "invalid payload"))
		return
	}

	action, err := req.Action()
	if err == nil {
		err = validate.Action(action)
	}
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.store.Dispatch(action); err != nil {
		h.respondJSON(ctx, http.StatusServiceUnavailable,
			transport.NewError(string(domain.ErrCodeInternal), err.Error()))
		return
	}

	// Wait for the queue to drain so the response reflects the applied
	// action rather than a stale snapshot.
	h.store.Flush()

	appLogger.WithRequestID(stdCtx, h.logger).Debug("action applied",
		zap.String("action", string(action.Type)))
	h.respondSuccess(ctx, http.StatusOK, h.store.Snapshot())
}

// GetState returns the current snapshot.
func (h *StateHandler) GetState(ctx *fasthttp.RequestCtx) {
	h.respondSuccess(ctx, http.StatusOK, h.store.Snapshot())
}

// GetView returns the tasks of a named smart view.
func (h *StateHandler) GetView(ctx *fasthttp.RequestCtx) {
	name, _ := ctx.UserValue("view").(string)
	view := domain.View(name)
	if !domain.ValidView(view) {
		h.respondError(ctx, domain.Errorf(domain.ErrCodeInvalid, "unknown view %q", name))
		return
	}
	h.respondSuccess(ctx, http.StatusOK, h.views.ForView(h.store.Snapshot(), view))
}

// GetCurrentView returns the tasks of the snapshot's selected view with the
// selected tag filter applied.
func (h *StateHandler) GetCurrentView(ctx *fasthttp.RequestCtx) {
	h.respondSuccess(ctx, http.StatusOK, h.views.ByView(h.store.Snapshot()))
}

// GetTags returns the deduplicated, sorted tag list.
func (h *StateHandler) GetTags(ctx *fasthttp.RequestCtx) {
	h.respondSuccess(ctx, http.StatusOK, h.views.AllTags(h.store.Snapshot()))
}

// GetNotices returns the retained notices, oldest first.
func (h *StateHandler) GetNotices(ctx *fasthttp.RequestCtx) {
	h.respondSuccess(ctx, http.StatusOK, h.notices.Recent())
}
