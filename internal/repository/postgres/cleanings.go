package postgres

import (
	"context"
	"errors"
	"fmt"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Randle9000/phresh-api/internal/core/domain"
	"github.com/Randle9000/phresh-api/internal/core/port"
	"github.com/Randle9000/phresh-api/internal/repository"
)

var cleaningColumns = []string{
	"id",
	"name",
	"description",
	"price",
	"cleaning_type",
	"owner_id",
	"created_at",
	"updated_at",
}

// CleaningRepository implements port.CleaningRepository using PostgreSQL.
type CleaningRepository struct {
	pool    *pgxpool.Pool
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewCleaningRepository constructs a repository backed by any executor that
// satisfies pgExecutor.
func NewCleaningRepository(exec pgExecutor) *CleaningRepository {
	repo := &CleaningRepository{
		exec:    exec,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
	if pool, ok := exec.(*pgxpool.Pool); ok {
		repo.pool = pool
	}
	return repo
}

// WithTx returns a repository instance operating within the supplied transaction.
func (r *CleaningRepository) WithTx(tx pgx.Tx) *CleaningRepository {
	if tx == nil {
		return r
	}
	return &CleaningRepository{
		pool:    r.pool,
		exec:    tx,
		builder: r.builder,
	}
}

// Create inserts a new cleaning listing.
func (r *CleaningRepository) Create(ctx context.Context, cleaning domain.Cleaning) error {
	stmt, args, err := r.builder.Insert("cleanings").
		Columns(
			"id",
			"name",
			"description",
			"price",
			"cleaning_type",
			"owner_id",
			"created_at",
			"updated_at",
		).
		Values(
			cleaning.ID,
			cleaning.Name,
			cleaning.Description,
			cleaning.Price,
			cleaning.CleaningType,
			cleaning.OwnerID,
			cleaning.CreatedAt,
			cleaning.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert cleaning sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, stmt, args...); err != nil {
		return fmt.Errorf("insert cleaning: %w", err)
	}

	return nil
}

// GetByID retrieves a cleaning listing by identifier.
func (r *CleaningRepository) GetByID(ctx context.Context, id string) (*domain.Cleaning, error) {
	stmt, args, err := r.builder.
		Select(cleaningColumns...).
		From("cleanings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select cleaning sql: %w", err)
	}

	row := r.exec.QueryRow(ctx, stmt, args...)

	cleaning, err := scanCleaning(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan cleaning: %w", err)
	}

	return cleaning, nil
}

// ListByOwner returns all listings owned by the given user, newest first.
func (r *CleaningRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Cleaning, error) {
	return r.list(ctx, squirrel.Eq{"owner_id": ownerID})
}

// ListAll returns every listing, newest first.
func (r *CleaningRepository) ListAll(ctx context.Context) ([]domain.Cleaning, error) {
	return r.list(ctx, nil)
}

func (r *CleaningRepository) list(ctx context.Context, pred squirrel.Eq) ([]domain.Cleaning, error) {
	query := r.builder.
		Select(cleaningColumns...).
		From("cleanings").
		OrderBy("created_at DESC")

	if pred != nil {
		query = query.Where(pred)
	}

	stmt, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list cleanings sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query cleanings: %w", err)
	}
	defer rows.Close()

	cleanings := make([]domain.Cleaning, 0)
	for rows.Next() {
		cleaning, err := scanCleaning(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cleaning: %w", err)
		}
		cleanings = append(cleanings, *cleaning)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cleanings: %w", err)
	}

	return cleanings, nil
}

// Update overwrites the mutable fields of a listing.
func (r *CleaningRepository) Update(ctx context.Context, cleaning domain.Cleaning) error {
	stmt, args, err := r.builder.Update("cleanings").
		Set("name", cleaning.Name).
		Set("description", cleaning.Description).
		Set("price", cleaning.Price).
		Set("cleaning_type", cleaning.CleaningType).
		Set("updated_at", cleaning.UpdatedAt).
		Where(squirrel.Eq{"id": cleaning.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update cleaning sql: %w", err)
	}

	ct, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("update cleaning: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete removes a listing.
func (r *CleaningRepository) Delete(ctx context.Context, id string) error {
	stmt, args, err := r.builder.Delete("cleanings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete cleaning sql: %w", err)
	}

	ct, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("delete cleaning: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func scanCleaning(row pgx.Row) (*domain.Cleaning, error) {
	var cleaning domain.Cleaning
	if err := row.Scan(
		&cleaning.ID,
		&cleaning.Name,
		&cleaning.Description,
		&cleaning.Price,
		&cleaning.CleaningType,
		&cleaning.OwnerID,
		&cleaning.CreatedAt,
		&cleaning.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &cleaning, nil
}

var _ port.CleaningRepository = (*CleaningRepository)(nil)
