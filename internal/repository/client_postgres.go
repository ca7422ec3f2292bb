package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/client-service/internal/domain"
)

const uniqueViolationCode = "23505"

type postgresClientRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresClientRepository returns a Postgres-backed implementation.
func NewPostgresClientRepository(pool *pgxpool.Pool) ClientRepository {
	return &postgresClientRepository{pool: pool}
}

func (r *postgresClientRepository) Create(ctx context.Context, client *domain.Client) error {
	const query = `
        INSERT INTO clients (name, email, gender, status)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		client.Name,
		client.Email,
		client.Gender,
		client.Status,
	).Scan(&client.ID, &client.CreatedAt, &client.UpdatedAt)
	return translateError(err)
}

func (r *postgresClientRepository) Update(ctx context.Context, client *domain.Client) error {
	const query = `
        UPDATE clients SET name=$1, email=$2, gender=$3, updated_at=NOW()
        WHERE id=$4
        RETURNING updated_at`

	err := r.pool.QueryRow(ctx, query,
		client.Name,
		client.Email,
		client.Gender,
		client.ID,
	).Scan(&client.UpdatedAt)
	return translateError(err)
}

func (r *postgresClientRepository) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	const query = `
        SELECT id, name, email, gender, status, created_at, updated_at
        FROM clients WHERE id=$1`

	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *postgresClientRepository) GetByEmail(ctx context.Context, email string) (*domain.Client, error) {
	const query = `
        SELECT id, name, email, gender, status, created_at, updated_at
        FROM clients WHERE email=$1`

	return r.scanOne(r.pool.QueryRow(ctx, query, email))
}

func (r *postgresClientRepository) Search(ctx context.Context, name, email string) ([]domain.Client, error) {
	const query = `
        SELECT id, name, email, gender, status, created_at, updated_at
        FROM clients
        WHERE ($1 <> '' AND name ILIKE '%' || $1 || '%')
           OR ($2 <> '' AND email ILIKE '%' || $2 || '%')
           OR ($1 = '' AND $2 = '')
        ORDER BY id`

	rows, err := r.pool.Query(ctx, query, name, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clients := make([]domain.Client, 0)
	for rows.Next() {
		var client domain.Client
		if err := rows.Scan(
			&client.ID,
			&client.Name,
			&client.Email,
			&client.Gender,
			&client.Status,
			&client.CreatedAt,
			&client.UpdatedAt,
		); err != nil {
			return nil, err
		}
		clients = append(clients, client)
	}
	return clients, rows.Err()
}

func (r *postgresClientRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM clients WHERE id=$1`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postgresClientRepository) scanOne(row pgx.Row) (*domain.Client, error) {
	var client domain.Client
	if err := row.Scan(
		&client.ID,
		&client.Name,
		&client.Email,
		&client.Gender,
		&client.Status,
		&client.CreatedAt,
		&client.UpdatedAt,
	); err != nil {
		return nil, translateError(err)
	}
	return &client, nil
}

func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return ErrDuplicateEmail
	}
	return err
}
