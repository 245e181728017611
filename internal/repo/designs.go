package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"Barnframe/internal/design"
)

type dialect int

const (
	dialectSQLite dialect = iota
	dialectPostgres
)

// SQLDesignRepository keeps designs as JSON documents in one table. The same
// queries run on SQLite and PostgreSQL.
type SQLDesignRepository struct {
	db      *sql.DB
	dialect dialect
	now     func() time.Time
}

func NewSQLiteDesignDB(db *sql.DB) *SQLDesignRepository {
	return &SQLDesignRepository{db: db, dialect: dialectSQLite, now: time.Now}
}

func NewPostgresDesignDB(db *sql.DB) *SQLDesignRepository {
	return &SQLDesignRepository{db: db, dialect: dialectPostgres, now: time.Now}
}

// rebind turns ? placeholders into $n for PostgreSQL.
func (r *SQLDesignRepository) rebind(query string) string {
	if r.dialect != dialectPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, c := range query {
		if c == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}

func (r *SQLDesignRepository) Migrate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
        CREATE TABLE IF NOT EXISTS designs (
            id         TEXT PRIMARY KEY,
            owner      INTEGER NOT NULL,
            name       TEXT NOT NULL,
            body       TEXT NOT NULL,
            created_at BIGINT NOT NULL,
            updated_at BIGINT NOT NULL
        )`)
	if err != nil {
		return fmt.Errorf("create designs: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS designs_owner ON designs (owner, updated_at)`)
	if err != nil {
		return fmt.Errorf("create designs index: %w", err)
	}
	return nil
}

// SaveDesign stores d under id, or under a new id when id is empty. A design
// owned by someone else is never overwritten.
func (r *SQLDesignRepository) SaveDesign(ctx context.Context, owner int, id string, d design.Design) (StoredDesign, error) {
	if id == "" {
		id = uuid.NewString()
	} else if _, err := uuid.Parse(id); err != nil {
		return StoredDesign{}, fmt.Errorf("%w: design %q", ErrNotFound, id)
	}
	body, err := json.Marshal(d)
	if err != nil {
		return StoredDesign{}, err
	}
	now := r.now().UTC().Truncate(time.Second)

	res, err := r.db.ExecContext(ctx, r.rebind(`
        INSERT INTO designs (id, owner, name, body, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?)
        ON CONFLICT (id) DO UPDATE SET
            name = excluded.name,
            body = excluded.body,
            updated_at = excluded.updated_at
        WHERE designs.owner = excluded.owner`),
		id, owner, d.StructureName, string(body), now.Unix(), now.Unix())
	if err != nil {
		return StoredDesign{}, fmt.Errorf("save design: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return StoredDesign{}, fmt.Errorf("%w: design %q", ErrNotFound, id)
	}
	return r.GetDesign(ctx, owner, id)
}

func (r *SQLDesignRepository) ListDesigns(ctx context.Context, owner int) ([]StoredDesign, error) {
	rows, err := r.db.QueryContext(ctx, r.rebind(`
        SELECT id, owner, name, body, created_at, updated_at
        FROM designs
        WHERE owner = ?
        ORDER BY updated_at DESC, name`), owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StoredDesign
	for rows.Next() {
		s, err := scanDesign(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SQLDesignRepository) GetDesign(ctx context.Context, owner int, id string) (StoredDesign, error) {
	row := r.db.QueryRowContext(ctx, r.rebind(`
        SELECT id, owner, name, body, created_at, updated_at
        FROM designs
        WHERE owner = ? AND id = ?`), owner, id)
	s, err := scanDesign(row)
	if errors.Is(err, sql.ErrNoRows) {
		return StoredDesign{}, fmt.Errorf("%w: design %q", ErrNotFound, id)
	}
	return s, err
}

func (r *SQLDesignRepository) DeleteDesign(ctx context.Context, owner int, id string) error {
	res, err := r.db.ExecContext(ctx, r.rebind(`DELETE FROM designs WHERE owner = ? AND id = ?`), owner, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: design %q", ErrNotFound, id)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDesign(s scanner) (StoredDesign, error) {
	var (
		out              StoredDesign
		body             string
		created, updated int64
	)
	if err := s.Scan(&out.ID, &out.Owner, &out.Name, &body, &created, &updated); err != nil {
		return StoredDesign{}, err
	}
	if err := json.Unmarshal([]byte(body), &out.Design); err != nil {
		return StoredDesign{}, fmt.Errorf("decode design %s: %w", out.ID, err)
	}
	out.CreatedAt = time.Unix(created, 0).UTC()
	out.UpdatedAt = time.Unix(updated, 0).UTC()
	return out, nil
}
