package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"Barnframe/internal/design"
)

var ErrNotFound = errors.New("not found")

type UserRepository interface {
	CreateUser(ctx context.Context, login, email, password string) (int, error)
	GetByLogin(ctx context.Context, login string) (int, string, error)
}

// StoredDesign is a saved design owned by one user. The local store uses
// owner 0.
type StoredDesign struct {
	ID        string        `json:"id"`
	Owner     int           `json:"-"`
	Name      string        `json:"name"`
	Design    design.Design `json:"design"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

type DesignRepository interface {
	SaveDesign(ctx context.Context, owner int, id string, d design.Design) (StoredDesign, error)
	ListDesigns(ctx context.Context, owner int) ([]StoredDesign, error)
	GetDesign(ctx context.Context, owner int, id string) (StoredDesign, error)
	DeleteDesign(ctx context.Context, owner int, id string) error
}

type PostgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserDB(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) CreateUser(ctx context.Context, login, email, password string) (int, error) {
	var id int
	query := "INSERT INTO users (login, email, password) VALUES ($1, $2, $3) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, login, email, password).Scan(&id)
	return id, err
}

func (r *PostgresUserRepository) GetByLogin(ctx context.Context, login string) (int, string, error) {
	var id int
	var hash string

	query := "SELECT id, password FROM users WHERE login=$1"

	err := r.db.QueryRowContext(ctx, query, login).Scan(&id, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, "", ErrNotFound
	}
	if err != nil {
		return 0, "", err
	}
	return id, hash, nil
}
