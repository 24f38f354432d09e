package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"cayley/internal/groups/models"
	id "cayley/pkg/domain"
	"cayley/pkg/platform/sentinel"
)

const schema = `
CREATE TABLE IF NOT EXISTS groups (
	id             UUID PRIMARY KEY,
	name           TEXT NOT NULL,
	description    TEXT NOT NULL DEFAULT '',
	members        TEXT[] NOT NULL DEFAULT '{}',
	cayley_table   JSONB NOT NULL DEFAULT '[]',
	identity_label TEXT NOT NULL DEFAULT '',
	cycle_groups   JSONB,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS groups_name_idx ON groups (name);
CREATE INDEX IF NOT EXISTS groups_created_idx ON groups (created_at, id);
`

const selectColumns = `id, name, description, members, cayley_table, identity_label, cycle_groups, created_at`

// PostgresStore persists groups in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed group store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const defaultMigrateTimeout = 30 * time.Second

// Migrate creates the groups table and indexes in one transaction. Without a
// caller deadline it is bounded by defaultMigrateTimeout.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("migrate groups: %w", err)
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultMigrateTimeout)
		defer cancel()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("migrate groups: begin: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate groups: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("migrate groups: commit: %w", err)
	}
	return nil
}

// List returns groups oldest first.
func (s *PostgresStore) List(ctx context.Context) ([]*models.Group, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+selectColumns+` FROM groups ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	defer rows.Close()

	out := []*models.Group{}
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("list groups: %w", err)
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return out, nil
}

// Create inserts g. A duplicate id maps to sentinel.ErrConflict.
func (s *PostgresStore) Create(ctx context.Context, g *models.Group) error {
	if g == nil {
		return fmt.Errorf("create group: nil group")
	}
	table, err := json.Marshal(g.CayleyTable)
	if err != nil {
		return fmt.Errorf("encode cayley table: %w", err)
	}
	var cycles []byte
	if g.CycleGroups != nil {
		if cycles, err = json.Marshal(g.CycleGroups); err != nil {
			return fmt.Errorf("encode cycle groups: %w", err)
		}
	}
	members := g.Members
	if members == nil {
		members = []string{}
	}

	query := `
		INSERT INTO groups (id, name, description, members, cayley_table, identity_label, cycle_groups, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = s.db.ExecContext(ctx, query,
		uuid.UUID(g.ID), g.Name, g.Description, pq.Array(members), table, g.Identity, nullableJSON(cycles), g.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create group %s: %w", g.ID, sentinel.ErrConflict)
		}
		return fmt.Errorf("create group: %w", err)
	}
	return nil
}

// FindByID maps sql.ErrNoRows to sentinel.ErrNotFound.
func (s *PostgresStore) FindByID(ctx context.Context, groupID id.GroupID) (*models.Group, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM groups WHERE id = $1`, uuid.UUID(groupID))
	g, err := scanGroup(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find group by id: %w", err)
	}
	return g, nil
}

// FindByName returns the oldest group with name.
func (s *PostgresStore) FindByName(ctx context.Context, name string) (*models.Group, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+selectColumns+` FROM groups WHERE name = $1 ORDER BY created_at, id LIMIT 1`, name)
	g, err := scanGroup(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find group by name: %w", err)
	}
	return g, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanGroup(row scanner) (*models.Group, error) {
	var (
		rawID   uuid.UUID
		g       models.Group
		members []string
		table   []byte
		cycles  []byte
	)
	if err := row.Scan(&rawID, &g.Name, &g.Description, pq.Array(&members), &table, &g.Identity, &cycles, &g.CreatedAt); err != nil {
		return nil, err
	}
	g.ID = id.GroupID(rawID)
	g.Members = members
	if g.Members == nil {
		g.Members = []string{}
	}
	if err := json.Unmarshal(table, &g.CayleyTable); err != nil {
		return nil, fmt.Errorf("decode cayley table: %w", err)
	}
	if len(cycles) > 0 {
		if err := json.Unmarshal(cycles, &g.CycleGroups); err != nil {
			return nil, fmt.Errorf("decode cycle groups: %w", err)
		}
	}
	return &g, nil
}

func nullableJSON(b []byte) any {
	if b == nil {
		return nil
	}
	return b
}

// isUniqueViolation reports SQLSTATE 23505 from lib/pq or pgx errors.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var coded interface{ SQLState() string }
	if errors.As(err, &coded) {
		return coded.SQLState() == "23505"
	}
	return false
}
