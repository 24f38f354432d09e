package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"cayley/internal/algebra"
	"cayley/internal/groups/metrics"
	"cayley/internal/groups/models"
	id "cayley/pkg/domain"
	dErrors "cayley/pkg/domain-errors"
	"cayley/pkg/platform/sentinel"
	"cayley/pkg/requestcontext"
)

// DefaultMaxOrder bounds n for the cyclic and dihedral families, whose tables
// grow as n² and 4n².
const DefaultMaxOrder = 64

// GroupStore is the persistence collaborator.
type GroupStore interface {
	List(ctx context.Context) ([]*models.Group, error)
	Create(ctx context.Context, g *models.Group) error
	FindByID(ctx context.Context, groupID id.GroupID) (*models.Group, error)
	FindByName(ctx context.Context, name string) (*models.Group, error)
}

// CatalogEntry names one group to generate.
type CatalogEntry struct {
	Family algebra.Family
	Order  int
}

// DefaultCatalog is seeded on first start.
var DefaultCatalog = []CatalogEntry{
	{algebra.Cyclic, 2}, {algebra.Cyclic, 3}, {algebra.Cyclic, 4}, {algebra.Cyclic, 5}, {algebra.Cyclic, 6},
	{algebra.Dihedral, 3}, {algebra.Dihedral, 4}, {algebra.Dihedral, 5}, {algebra.Dihedral, 6},
	{algebra.Symmetric, 2}, {algebra.Symmetric, 3}, {algebra.Symmetric, 4},
}

// Service runs the catalog: generation, storage and composition.
type Service struct {
	groups   GroupStore
	logger   *slog.Logger
	metrics  *metrics.Metrics
	clock    func() time.Time
	maxOrder int
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithClock pins the creation timestamp source. Without it the request
// time from context is used.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		s.clock = clock
	}
}

// WithMaxOrder overrides DefaultMaxOrder.
func WithMaxOrder(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxOrder = n
		}
	}
}

// New constructs a Service.
func New(groups GroupStore, opts ...Option) *Service {
	s := &Service{
		groups:   groups,
		logger:   slog.New(slog.DiscardHandler),
		maxOrder: DefaultMaxOrder,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns every stored group.
func (s *Service) List(ctx context.Context) ([]*models.Group, error) {
	groups, err := s.groups.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list groups")
	}
	return groups, nil
}

// Get loads one group.
func (s *Service) Get(ctx context.Context, groupID id.GroupID) (*models.Group, error) {
	g, err := s.groups.FindByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "Group not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load group")
	}
	return g, nil
}

// Create stores a client-supplied document as-is. Only the name is checked.
func (s *Service) Create(ctx context.Context, def models.Definition) (*models.Group, error) {
	g, err := models.NewGroup(id.NewGroupID(), def, s.now(ctx))
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, dErrors.New(dErrors.CodeValidation, dErrors.MessageOf(err))
		}
		return nil, err
	}
	if err := s.persist(ctx, g, "submitted"); err != nil {
		return nil, err
	}
	return g, nil
}

// Generate builds (family, order) and stores it. A group whose canonical
// name is already listed is refused; the check is best-effort and two
// concurrent requests may both succeed.
func (s *Service) Generate(ctx context.Context, family string, order int) (*models.Group, error) {
	f, err := algebra.ParseFamily(family)
	if err != nil {
		s.metrics.IncrementRejected("unknown_family")
		return nil, dErrors.Wrap(err, dErrors.CodeValidation, "family must be one of Z, D or S")
	}
	if err := s.checkCapacity(f, order); err != nil {
		return nil, err
	}

	name := algebra.CanonicalName(f, order)
	switch _, err := s.groups.FindByName(ctx, name); {
	case err == nil:
		s.metrics.IncrementRejected("duplicate")
		return nil, dErrors.New(dErrors.CodeConflict, fmt.Sprintf("Group %s already exists", name))
	case !errors.Is(err, sentinel.ErrNotFound):
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check existing groups")
	}

	built, err := s.build(f, order)
	if err != nil {
		return nil, err
	}
	g, err := models.NewGroup(id.NewGroupID(), models.FromAlgebra(built), s.now(ctx))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to assemble group")
	}
	if err := s.persist(ctx, g, "generated"); err != nil {
		return nil, err
	}
	return g, nil
}

// Compose reduces elements left to right over a stored group's table.
// Unknown labels halt the trace; they are not errors.
func (s *Service) Compose(ctx context.Context, groupID id.GroupID, elements []string) (*algebra.Trace, error) {
	g, err := s.Get(ctx, groupID)
	if err != nil {
		return nil, err
	}
	trace := algebra.Reduce(g.Table(), elements)
	s.metrics.ObserveCompose(len(trace.Steps), string(trace.State))
	if trace.State == algebra.StateHalted {
		s.logger.InfoContext(ctx, "composition halted on invalid operand",
			"request_id", requestcontext.RequestID(ctx),
			"group_id", groupID.String(),
			"steps", len(trace.Steps),
		)
	}
	return trace, nil
}

// Vertices applies a dihedral element to the labelled vertices of its polygon.
func (s *Service) Vertices(ctx context.Context, groupID id.GroupID, element string) (*models.VertexAction, error) {
	g, err := s.Get(ctx, groupID)
	if err != nil {
		return nil, err
	}
	f, n, ok := g.Family()
	if !ok || f != algebra.Dihedral {
		return nil, dErrors.New(dErrors.CodeBadRequest, "vertex action is only defined for dihedral groups")
	}
	if n > s.maxOrder {
		return nil, dErrors.New(dErrors.CodeCapacityExceeded,
			fmt.Sprintf("%s is too large: order is limited to n <= %d", g.Name, s.maxOrder))
	}
	if _, ok := g.Table().Index(element); !ok {
		return nil, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("%q is not an element of %s", element, g.Name))
	}
	positions, err := algebra.PolygonAction(n, element)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeValidation, fmt.Sprintf("%q is not an element of %s", element, g.Name))
	}
	return &models.VertexAction{
		Group:     g.Name,
		Element:   element,
		Label:     algebra.FormatLabel(element),
		Sides:     n,
		Positions: positions,
	}, nil
}

// Seed generates the missing entries concurrently and stores them
// in catalog order. Entries already present by name are skipped.
func (s *Service) Seed(ctx context.Context, entries []CatalogEntry) (int, error) {
	existing, err := s.groups.List(ctx)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list groups")
	}
	have := make(map[string]bool, len(existing))
	for _, g := range existing {
		have[g.Name] = true
	}

	built := make([]*algebra.Group, len(entries))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(4)
	for i, entry := range entries {
		if have[algebra.CanonicalName(entry.Family, entry.Order)] {
			continue
		}
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			g, err := s.build(entry.Family, entry.Order)
			if err != nil {
				return err
			}
			built[i] = g
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return 0, err
	}

	created := 0
	for _, b := range built {
		if b == nil || have[b.Name] {
			continue
		}
		g, err := models.NewGroup(id.NewGroupID(), models.FromAlgebra(b), s.now(ctx))
		if err != nil {
			return created, dErrors.Wrap(err, dErrors.CodeInternal, "failed to assemble group")
		}
		if err := s.persist(ctx, g, "seed"); err != nil {
			return created, err
		}
		have[b.Name] = true
		created++
	}
	s.logger.InfoContext(ctx, "catalog seeded", "created", created, "skipped", len(entries)-created)
	return created, nil
}

func (s *Service) checkCapacity(f algebra.Family, n int) error {
	err := algebra.CheckCapacity(f, n)
	switch {
	case err == nil:
	case errors.Is(err, algebra.ErrCapacityExceeded):
		s.metrics.IncrementRejected("capacity")
		return dErrors.Wrap(err, dErrors.CodeCapacityExceeded,
			fmt.Sprintf("%s is too large: symmetric groups are limited to n <= %d", algebra.CanonicalName(f, n), algebra.MaxSymmetricOrder))
	default:
		s.metrics.IncrementRejected("invalid_order")
		return dErrors.Wrap(err, dErrors.CodeValidation, "order must be a positive integer")
	}
	if f != algebra.Symmetric && n > s.maxOrder {
		s.metrics.IncrementRejected("capacity")
		return dErrors.New(dErrors.CodeCapacityExceeded,
			fmt.Sprintf("%s is too large: order is limited to n <= %d", algebra.CanonicalName(f, n), s.maxOrder))
	}
	return nil
}

func (s *Service) build(f algebra.Family, n int) (*algebra.Group, error) {
	if err := s.checkCapacity(f, n); err != nil {
		return nil, err
	}
	start := time.Now()
	g, err := algebra.Build(f, n)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to build group table")
	}
	s.metrics.ObserveBuild(string(f), time.Since(start))
	return g, nil
}

func (s *Service) persist(ctx context.Context, g *models.Group, origin string) error {
	if err := s.groups.Create(ctx, g); err != nil {
		s.logger.ErrorContext(ctx, "failed to store group",
			"request_id", requestcontext.RequestID(ctx),
			"name", g.Name,
			"error", err,
		)
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store group")
	}
	family := "custom"
	if f, _, ok := g.Family(); ok {
		family = string(f)
	}
	s.metrics.IncrementCreated(family, origin)
	s.logger.InfoContext(ctx, "group stored",
		"request_id", requestcontext.RequestID(ctx),
		"group_id", g.ID.String(),
		"name", g.Name,
	)
	return nil
}

func (s *Service) now(ctx context.Context) time.Time {
	if s.clock != nil {
		return s.clock()
	}
	return requestcontext.Now(ctx)
}
