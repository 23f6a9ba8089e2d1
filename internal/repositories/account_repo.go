package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cloudnine-labs/account-service/internal/models"
)

type PostgresAccountRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresAccountRepository(pool *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{pool: pool}
}

func (r *PostgresAccountRepository) Create(ctx context.Context, account *models.Account) error {
	query := `INSERT INTO accounts (name, email, address, phone_number, date_joined)
              VALUES ($1, $2, $3, $4, COALESCE($5, CURRENT_DATE))
              RETURNING id, date_joined`

	var joined any
	if !account.DateJoined.IsZero() {
		joined = account.DateJoined.Time
	}

	var assigned time.Time
	err := r.pool.QueryRow(ctx, query,
		account.Name, account.Email, account.Address, account.PhoneNumber, joined).
		Scan(&account.ID, &assigned)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	account.DateJoined = models.DateOf(assigned)
	return nil
}

func (r *PostgresAccountRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	query := `SELECT id, name, email, address, phone_number, date_joined
              FROM accounts WHERE id = $1`

	account, err := scanAccount(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

func (r *PostgresAccountRepository) List(ctx context.Context) ([]*models.Account, error) {
	query := `SELECT id, name, email, address, phone_number, date_joined FROM accounts`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	accounts := []*models.Account{}
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read account rows: %w", err)
	}
	return accounts, nil
}

func (r *PostgresAccountRepository) Update(ctx context.Context, account *models.Account) error {
	if account.ID == 0 {
		return fmt.Errorf("%w: update called with no id", models.ErrValidation)
	}

	query := `UPDATE accounts
              SET name = $1, email = $2, address = $3, phone_number = $4, date_joined = $5
              WHERE id = $6`

	result, err := r.pool.Exec(ctx, query,
		account.Name, account.Email, account.Address, account.PhoneNumber,
		account.DateJoined.Time, account.ID)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresAccountRepository) Delete(ctx context.Context, id int64) error {
	// Deleting a row that is already gone is defined as success.
	_, err := r.pool.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return nil
}

func scanAccount(row pgx.Row) (*models.Account, error) {
	var account models.Account
	var joined time.Time
	err := row.Scan(&account.ID, &account.Name, &account.Email, &account.Address,
		&account.PhoneNumber, &joined)
	if err != nil {
		return nil, err
	}
	account.DateJoined = models.DateOf(joined)
	return &account, nil
}
