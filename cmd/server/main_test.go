package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	groupshandler "cayley/internal/groups/handler"
	groupsmetrics "cayley/internal/groups/metrics"
	"cayley/internal/groups/models"
	groupsservice "cayley/internal/groups/service"
	groupsstore "cayley/internal/groups/store"
	"cayley/internal/platform/config"
	"cayley/internal/platform/metrics"
	"cayley/pkg/testutil"
)

func newTestRouter(t *testing.T, health healthFunc) http.Handler {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := prometheus.NewRegistry()

	svc := groupsservice.New(groupsstore.NewInMemory(),
		groupsservice.WithLogger(log),
		groupsservice.WithMetrics(groupsmetrics.NewWith(reg)),
	)
	_, err := svc.Seed(context.Background(), groupsservice.DefaultCatalog)
	require.NoError(t, err)

	return newRouter(routerDeps{
		cfg:      config.Server{CORSOrigins: []string{"*"}},
		log:      log,
		metrics:  metrics.NewWith(reg),
		gatherer: reg,
		groups:   groupshandler.New(svc, log),
		health:   health,
	})
}

func TestRouter_CatalogFlow(t *testing.T) {
	router := newTestRouter(t, nil)

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/api/groups", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	groups := testutil.UnmarshalResponse[[]models.Group](t, rr)
	require.Len(t, groups, len(groupsservice.DefaultCatalog))
	assert.Equal(t, "Z_2", groups[0].Name)
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))

	rr = testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/api/groups/generate",
		map[string]any{"family": "D", "order": 8}))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	d8 := testutil.UnmarshalResponse[models.Group](t, rr)
	assert.Equal(t, "D_8", d8.Name)
	assert.Len(t, d8.Members, 16)

	rr = testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/api/groups/generate",
		map[string]any{"family": "D", "order": 8}))
	testutil.AssertError(t, rr, http.StatusConflict, "conflict", "Group D_8 already exists")

	rr = testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/api/groups/generate",
		map[string]any{"family": "S", "order": 5}))
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	rr = testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost,
		"/api/groups/"+d8.ID.String()+"/compose", map[string]any{"elements": []string{"r1", "s"}}))
	require.Equal(t, http.StatusOK, rr.Code)
	trace := testutil.UnmarshalResponse[groupshandler.ComposeResponse](t, rr)
	assert.Equal(t, "sr7", trace.Final)
	assert.Equal(t, "sr⁷", trace.DisplayFinal)
	assert.Equal(t, "accumulating", trace.State)

	rr = testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet,
		"/api/groups/"+d8.ID.String()+"/vertices?element=r2", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	action := testutil.UnmarshalResponse[models.VertexAction](t, rr)
	assert.Equal(t, []int{2, 3, 4, 5, 6, 7, 0, 1}, action.Positions)
}

func TestRouter_RejectsUntrimmedAndOversizedInput(t *testing.T) {
	router := newTestRouter(t, nil)

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/api/groups", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	var z4 models.Group
	for _, g := range testutil.UnmarshalResponse[[]models.Group](t, rr) {
		if g.Name == "Z_4" {
			z4 = g
		}
	}
	require.Equal(t, "Z_4", z4.Name)

	rr = testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost,
		"/api/groups/"+z4.ID.String()+"/compose", map[string]any{"elements": []string{"1", " 2", "3 "}}))
	require.Equal(t, http.StatusOK, rr.Code)
	trace := testutil.UnmarshalResponse[groupshandler.ComposeResponse](t, rr)
	assert.Equal(t, "halted", trace.State)
	assert.Equal(t, "?", trace.Final)
	require.Len(t, trace.Steps, 2)
	assert.True(t, trace.Steps[1].Error)

	rr = testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/api/groups",
		map[string]any{"name": "D_50000000", "members": []string{"e", "r1"}}))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	huge := testutil.UnmarshalResponse[models.Group](t, rr)

	rr = testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet,
		"/api/groups/"+huge.ID.String()+"/vertices?element=r1", nil))
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestRouter_Health(t *testing.T) {
	rr := testutil.DoRequest(newTestRouter(t, nil), testutil.NewJSONRequest(t, http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	failing := func(context.Context) error { return errors.New("connection refused") }
	rr = testutil.DoRequest(newTestRouter(t, failing), testutil.NewJSONRequest(t, http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.NotContains(t, rr.Body.String(), "refused")
}

func TestRouter_MetricsAndUnknownRoutes(t *testing.T) {
	router := newTestRouter(t, nil)
	testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/api/groups", nil))

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "cayley_http_requests_total")
	assert.Contains(t, rr.Body.String(), "cayley_groups_created_total")

	rr = testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/nope", nil))
	testutil.AssertError(t, rr, http.StatusNotFound, "not_found", "route not found")
}

func TestOpenStore_RejectsUnknownBackend(t *testing.T) {
	_, _, cleanup, err := openStore(context.Background(), config.Server{StoreBackend: "etcd"}, nil, nil)
	cleanup()
	assert.ErrorContains(t, err, "unknown store backend")
}
