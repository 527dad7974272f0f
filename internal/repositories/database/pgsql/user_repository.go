package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/nbenhadj/bookkeeping_app/internal/apperrors"
	"github.com/nbenhadj/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/nbenhadj/bookkeeping_app/internal/core/ports/repositories"
	"github.com/nbenhadj/bookkeeping_app/internal/models"
	"github.com/nbenhadj/bookkeeping_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `user_id, username, name, role, password_hash, is_active, deleted_at, created_at, created_by, last_updated_at, last_updated_by`

type PgxUserRepository struct {
	pool *pgxpool.Pool
}

// newPgxUserRepository creates a new repository for user data.
func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{pool: pool}
}

var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func scanUser(row pgx.Row) (models.User, error) {
	var m models.User
	var deletedAt sql.NullTime
	err := row.Scan(
		&m.UserID,
		&m.Username,
		&m.Name,
		&m.Role,
		&m.PasswordHash,
		&m.IsActive,
		&deletedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.User{}, err
	}
	if deletedAt.Valid {
		t := deletedAt.Time
		m.DeletedAt = &t
	}
	return m, nil
}

// SaveUser inserts a new user.
func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	modelUser := mapping.ToModelUser(user)

	query := `
		INSERT INTO users (user_id, username, name, role, password_hash, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.pool.Exec(ctx, query,
		modelUser.UserID,
		modelUser.Username,
		modelUser.Name,
		modelUser.Role,
		modelUser.PasswordHash,
		modelUser.IsActive,
		modelUser.CreatedAt,
		modelUser.CreatedBy,
		modelUser.LastUpdatedAt,
		modelUser.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation on username
			return fmt.Errorf("%w: username %s", apperrors.ErrDuplicate, modelUser.Username)
		}
		return fmt.Errorf("failed to save user %s: %w", modelUser.UserID, err)
	}
	return nil
}

// FindUserByID retrieves a user by ID, excluding soft-deleted users.
func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1 AND deleted_at IS NULL;`

	m, err := scanUser(r.pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by ID %s: %w", userID, err)
	}

	domainUser := mapping.ToDomainUser(m)
	return &domainUser, nil
}

// FindUserByUsername retrieves a user by username, excluding soft-deleted users.
func (r *PgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1 AND deleted_at IS NULL;`

	m, err := scanUser(r.pool.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by username: %w", err)
	}

	domainUser := mapping.ToDomainUser(m)
	return &domainUser, nil
}

// ListUsers retrieves users with limit/offset pagination, excluding soft-deleted users.
func (r *PgxUserRepository) ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE deleted_at IS NULL ORDER BY username LIMIT $1 OFFSET $2;`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := make([]domain.User, 0, limit)
	for rows.Next() {
		m, scanErr := scanUser(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", scanErr)
		}
		users = append(users, mapping.ToDomainUser(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}
	return users, nil
}

// UpdateUser persists changes to name, role and active flag.
func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	modelUser := mapping.ToModelUser(user)

	query := `
		UPDATE users
		SET name = $2, role = $3, is_active = $4, last_updated_at = $5, last_updated_by = $6
		WHERE user_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.pool.Exec(ctx, query,
		modelUser.UserID,
		modelUser.Name,
		modelUser.Role,
		modelUser.IsActive,
		modelUser.LastUpdatedAt,
		modelUser.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update user %s: %w", modelUser.UserID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// MarkUserDeleted soft deletes a user by stamping deleted_at.
func (r *PgxUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedBy string) error {
	now := time.Now().UTC()
	query := `
		UPDATE users
		SET deleted_at = $2, is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE user_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.pool.Exec(ctx, query, userID, now, deletedBy)
	if err != nil {
		return fmt.Errorf("failed to delete user %s: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
