package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/olehluchkiv/partials/internal/refactor"
	"github.com/olehluchkiv/partials/internal/syntax"
	"github.com/olehluchkiv/partials/internal/workspace"
)

var (
	errDocumentNotFound = errors.New("document not found")
	errInvalidSelection = errors.New("invalid selection")
)

// Handlers serves the refactorings of one workspace.
type Handlers struct {
	ws       *workspace.Workspace
	provider *refactor.Provider
	logger   *slog.Logger
}

// NewHandlers creates handlers over ws.
func NewHandlers(ws *workspace.Workspace, provider *refactor.Provider, logger *slog.Logger) *Handlers {
	return &Handlers{ws: ws, provider: provider, logger: logger}
}

// NewRouter returns a router with every endpoint under /v1.
func NewRouter(h *Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(h.logger))
	RegisterRoutes(r.Group("/v1"), h)
	return r
}

// RegisterRoutes registers the endpoints with the router group:
//
//	GET  /health  - the loaded project
//	POST /actions - actions offered for a selection
//	POST /apply   - run one of them, or preview it with dry_run
func RegisterRoutes(rg *gin.RouterGroup, h *Handlers) {
	rg.GET("/health", h.HandleHealth)
	rg.POST("/actions", h.HandleActions)
	rg.POST("/apply", h.HandleApply)
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("request handled",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}

// HandleHealth handles GET /v1/health.
func (h *Handlers) HandleHealth(c *gin.Context) {
	sol := h.ws.CurrentSolution()
	resp := HealthResponse{Status: "ok", Documents: len(sol.Documents())}
	if projects := sol.Projects(); len(projects) > 0 {
		resp.Project = projects[0].Name()
	}
	c.JSON(http.StatusOK, resp)
}

// HandleActions handles POST /v1/actions.
func (h *Handlers) HandleActions(c *gin.Context) {
	var req SelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, http.StatusBadRequest, "INVALID_REQUEST", err)
		return
	}
	sol := h.ws.CurrentSolution()
	doc, actions, err := h.evaluate(c.Request.Context(), sol, req)
	if err != nil {
		h.failEvaluate(c, err)
		return
	}

	resp := ActionsResponse{Document: doc.RelPath(), Actions: make([]ActionInfo, len(actions))}
	for i, act := range actions {
		resp.Actions[i] = ActionInfo{Index: i + 1, Title: act.Title, Target: act.Target}
	}
	c.JSON(http.StatusOK, resp)
}

// HandleApply handles POST /v1/apply.
func (h *Handlers) HandleApply(c *gin.Context) {
	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, http.StatusBadRequest, "INVALID_REQUEST", err)
		return
	}
	ctx := c.Request.Context()
	sol := h.ws.CurrentSolution()
	_, actions, err := h.evaluate(ctx, sol, req.SelectionRequest)
	if err != nil {
		h.failEvaluate(c, err)
		return
	}
	act, err := refactor.Select(actions, req.Action)
	if err != nil {
		h.fail(c, http.StatusBadRequest, "UNKNOWN_ACTION", err)
		return
	}
	next, err := act.Apply(ctx)
	if err != nil {
		h.fail(c, http.StatusInternalServerError, "APPLY_FAILED", fmt.Errorf("%s: %w", act.Title, err))
		return
	}

	resp := ApplyResponse{Action: act.Title, Target: act.Target, Changes: []ChangeInfo{}}
	if req.DryRun {
		for _, ch := range workspace.Changes(sol, next) {
			resp.Changes = append(resp.Changes, ChangeInfo{
				Kind: ch.Kind.String(),
				Path: ch.Document.RelPath(),
				Diff: workspace.Diff(ch, ch.Document.RelPath()),
			})
		}
		c.JSON(http.StatusOK, resp)
		return
	}

	changes, err := h.ws.Apply(ctx, next)
	switch {
	case errors.Is(err, workspace.ErrStaleSolution):
		h.fail(c, http.StatusConflict, "STALE_SOLUTION", err)
		return
	case errors.Is(err, workspace.ErrFileExists):
		h.fail(c, http.StatusConflict, "FILE_EXISTS", err)
		return
	case err != nil:
		h.fail(c, http.StatusInternalServerError, "COMMIT_FAILED", err)
		return
	}
	resp.Applied = true
	for _, ch := range changes {
		resp.Changes = append(resp.Changes, ChangeInfo{Kind: ch.Kind.String(), Path: ch.Document.RelPath()})
	}
	h.logger.Info("action applied", "action", act.Title, "type", act.Target, "changes_count", len(changes))
	c.JSON(http.StatusOK, resp)
}

func (h *Handlers) evaluate(ctx context.Context, sol *workspace.Solution, req SelectionRequest) (*workspace.Document, []refactor.Action, error) {
	doc, ok := document(sol, req.Path)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", errDocumentNotFound, req.Path)
	}
	if req.Offset < 0 || req.Length < 0 || req.Offset+req.Length > len(doc.Text()) {
		return nil, nil, fmt.Errorf("%w: %d+%d outside %d bytes", errInvalidSelection, req.Offset, req.Length, len(doc.Text()))
	}
	actions, err := h.provider.Evaluate(ctx, sol, doc.ID(), syntax.Span{Start: req.Offset, Length: req.Length})
	if err != nil {
		return nil, nil, err
	}
	return doc, actions, nil
}

func (h *Handlers) failEvaluate(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errDocumentNotFound):
		h.fail(c, http.StatusNotFound, "DOCUMENT_NOT_FOUND", err)
	case errors.Is(err, errInvalidSelection):
		h.fail(c, http.StatusBadRequest, "INVALID_SELECTION", err)
	default:
		h.fail(c, http.StatusUnprocessableEntity, "EVALUATE_FAILED", err)
	}
}

func (h *Handlers) fail(c *gin.Context, status int, code string, err error) {
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", "path", c.Request.URL.Path, "code", code, "error", err)
	} else {
		h.logger.Warn("request rejected", "path", c.Request.URL.Path, "code", code, "error", err)
	}
	c.JSON(status, ErrorResponse{Error: err.Error(), Code: code})
}

// document finds a document by absolute path or by a path relative to the
// project directory.
func document(sol *workspace.Solution, p string) (*workspace.Document, bool) {
	if !filepath.IsAbs(p) {
		projects := sol.Projects()
		if len(projects) == 0 {
			return nil, false
		}
		p = filepath.Join(projects[0].Dir(), filepath.FromSlash(p))
	}
	return sol.DocumentByPath(p)
}
