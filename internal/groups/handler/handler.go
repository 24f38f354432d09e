package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"cayley/internal/algebra"
	"cayley/internal/groups/models"
	id "cayley/pkg/domain"
	dErrors "cayley/pkg/domain-errors"
	"cayley/pkg/platform/httputil"
	"cayley/pkg/requestcontext"
)

// Service defines the catalog operations the handler needs.
type Service interface {
	List(ctx context.Context) ([]*models.Group, error)
	Get(ctx context.Context, groupID id.GroupID) (*models.Group, error)
	Create(ctx context.Context, def models.Definition) (*models.Group, error)
	Generate(ctx context.Context, family string, order int) (*models.Group, error)
	Compose(ctx context.Context, groupID id.GroupID, elements []string) (*algebra.Trace, error)
	Vertices(ctx context.Context, groupID id.GroupID, element string) (*models.VertexAction, error)
}

// Handler wires catalog endpoints to the group service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a group handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts the catalog under /api/groups.
func (h *Handler) Register(r chi.Router) {
	r.Route("/api/groups", func(r chi.Router) {
		r.Get("/", h.HandleList)
		r.Post("/", h.HandleCreate)
		r.Post("/generate", h.HandleGenerate)
		r.Get("/{id}", h.HandleGet)
		r.Post("/{id}/compose", h.HandleCompose)
		r.Get("/{id}/vertices", h.HandleVertices)
	})
}

// HandleList handles GET /api/groups.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	groups, err := h.service.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list groups",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, groups)
}

// HandleCreate handles POST /api/groups.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CreateGroupRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	g, err := h.service.Create(ctx, req.Definition())
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to create group",
			"request_id", requestID,
			"name", req.Name,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, g)
}

// HandleGenerate handles POST /api/groups/generate.
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[GenerateGroupRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	g, err := h.service.Generate(ctx, req.Family, req.Order)
	if err != nil {
		h.logger.WarnContext(ctx, "group generation refused",
			"request_id", requestID,
			"family", req.Family,
			"order", req.Order,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, g)
}

// HandleGet handles GET /api/groups/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	groupID, ok := h.groupID(w, r)
	if !ok {
		return
	}
	g, err := h.service.Get(r.Context(), groupID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, g)
}

// HandleCompose handles POST /api/groups/{id}/compose.
func (h *Handler) HandleCompose(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	groupID, ok := h.groupID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[ComposeRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	trace, err := h.service.Compose(ctx, groupID, req.Elements)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromTrace(trace))
}

// HandleVertices handles GET /api/groups/{id}/vertices?element=.
func (h *Handler) HandleVertices(w http.ResponseWriter, r *http.Request) {
	groupID, ok := h.groupID(w, r)
	if !ok {
		return
	}
	element := r.URL.Query().Get("element")
	if element == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "element query parameter is required"))
		return
	}
	action, err := h.service.Vertices(r.Context(), groupID, element)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, action)
}

// groupID parses the {id} path parameter. A malformed id cannot name a
// stored group, so it is reported as not found.
func (h *Handler) groupID(w http.ResponseWriter, r *http.Request) (id.GroupID, bool) {
	groupID, err := id.ParseGroupID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "Group not found"))
		return id.GroupID{}, false
	}
	return groupID, true
}
