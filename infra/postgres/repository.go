package postgres

import (
	"catalog/domain"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	_ "github.com/lib/pq"
)

// PgRepository keeps items in a table provisioned out of band:
//
//	CREATE TABLE items (
//	    id          uuid PRIMARY KEY DEFAULT gen_random_uuid(),
//	    name        text NOT NULL,
//	    description text NOT NULL
//	);
type PgRepository struct {
	db *sqlx.DB
}

func NewPgRepository(host, database, user, password, port, sslMode string) (*PgRepository, error) {
	db, err := sqlx.Connect("postgres", fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, database, sslMode,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	db.SetMaxOpenConns(15)
	db.SetMaxIdleConns(8)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	return NewPgRepositoryFromDB(db), nil
}

func NewPgRepositoryFromDB(db *sqlx.DB) *PgRepository {
	return &PgRepository{db: db}
}

func (r *PgRepository) Close() error {
	return r.db.Close()
}

func (r *PgRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *PgRepository) ParseID(raw string) (string, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidIdentifier, raw)
	}
	return id.String(), nil
}

func (r *PgRepository) Create(ctx context.Context, item domain.Item) (domain.Item, error) {
	var created domain.Item
	query := `
		INSERT INTO items (name, description)
		VALUES (:name, :description)
		RETURNING id, name, description`

	rows, err := r.db.NamedQueryContext(ctx, query, item)
	if err != nil {
		return created, fmt.Errorf("insert item: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return created, fmt.Errorf("insert item: %w", err)
		}
		return created, errors.New("insert item: no row returned")
	}

	if err := rows.StructScan(&created); err != nil {
		return created, fmt.Errorf("scan inserted item: %w", err)
	}

	return created, nil
}

func (r *PgRepository) GetItems(ctx context.Context) ([]domain.Item, error) {
	items := make([]domain.Item, 0)
	query := `SELECT id, name, description FROM items`

	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("select items: %w", err)
	}

	return items, nil
}

func (r *PgRepository) GetItem(ctx context.Context, id string) (*domain.Item, error) {
	var i domain.Item
	query := `SELECT id, name, description FROM items WHERE id = $1`

	err := r.db.GetContext(ctx, &i, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select item: %w", err)
	}

	return &i, nil
}

func (r *PgRepository) UpdateItem(ctx context.Context, id, name, description string) error {
	query := `UPDATE items SET name = $1, description = $2 WHERE id = $3`

	if _, err := r.db.ExecContext(ctx, query, name, description, id); err != nil {
		return fmt.Errorf("update item: %w", err)
	}

	return nil
}

func (r *PgRepository) DeleteItem(ctx context.Context, id string) (bool, error) {
	query := `DELETE FROM items WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("delete item: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete item: %w", err)
	}

	return affected == 1, nil
}
