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

// profileColumns are always selected through the users join so the public
// profile view carries username and email without a second query.
var profileColumns = []string{
	"p.id",
	"p.user_id",
	"p.full_name",
	"p.phone_number",
	"p.bio",
	"p.image",
	"u.username",
	"u.email",
	"p.created_at",
	"p.updated_at",
}

// ProfileRepository implements port.ProfileRepository using PostgreSQL.
type ProfileRepository struct {
	pool    *pgxpool.Pool
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewProfileRepository constructs a repository backed by any executor that
// satisfies pgExecutor.
func NewProfileRepository(exec pgExecutor) *ProfileRepository {
	repo := &ProfileRepository{
		exec:    exec,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
	if pool, ok := exec.(*pgxpool.Pool); ok {
		repo.pool = pool
	}
	return repo
}

// WithTx returns a repository instance operating within the supplied transaction.
func (r *ProfileRepository) WithTx(tx pgx.Tx) *ProfileRepository {
	if tx == nil {
		return r
	}
	return &ProfileRepository{
		pool:    r.pool,
		exec:    tx,
		builder: r.builder,
	}
}

// Create inserts a new profile row.
func (r *ProfileRepository) Create(ctx context.Context, profile domain.Profile) error {
	stmt, args, err := r.builder.Insert("profiles").
		Columns(
			"id",
			"user_id",
			"full_name",
			"phone_number",
			"bio",
			"image",
			"created_at",
			"updated_at",
		).
		Values(
			profile.ID,
			profile.UserID,
			profile.FullName,
			profile.PhoneNumber,
			profile.Bio,
			profile.Image,
			profile.CreatedAt,
			profile.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert profile sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, stmt, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert profile: %w", repository.ErrDuplicate)
		}
		return fmt.Errorf("insert profile: %w", err)
	}

	return nil
}

// GetByUserID retrieves the profile owned by the given user.
func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	return r.getBy(ctx, squirrel.Eq{"p.user_id": userID})
}

// GetByUsername retrieves a profile by the owning user's username.
func (r *ProfileRepository) GetByUsername(ctx context.Context, username string) (*domain.Profile, error) {
	return r.getBy(ctx, squirrel.Eq{"u.username": username})
}

func (r *ProfileRepository) getBy(ctx context.Context, pred squirrel.Eq) (*domain.Profile, error) {
	stmt, args, err := r.builder.
		Select(profileColumns...).
		From("profiles p").
		Join("users u ON u.id = p.user_id").
		Where(pred).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select profile sql: %w", err)
	}

	row := r.exec.QueryRow(ctx, stmt, args...)

	var profile domain.Profile
	if err := row.Scan(
		&profile.ID,
		&profile.UserID,
		&profile.FullName,
		&profile.PhoneNumber,
		&profile.Bio,
		&profile.Image,
		&profile.Username,
		&profile.Email,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan profile: %w", err)
	}

	return &profile, nil
}

// Update applies the non-nil fields of the update to the user's profile and
// returns the refreshed record.
func (r *ProfileRepository) Update(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.Profile, error) {
	query := r.builder.Update("profiles").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"user_id": userID})

	if update.FullName != nil {
		query = query.Set("full_name", *update.FullName)
	}
	if update.PhoneNumber != nil {
		query = query.Set("phone_number", *update.PhoneNumber)
	}
	if update.Bio != nil {
		query = query.Set("bio", *update.Bio)
	}
	if update.Image != nil {
		query = query.Set("image", *update.Image)
	}

	stmt, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update profile sql: %w", err)
	}

	ct, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return nil, repository.ErrNotFound
	}

	return r.GetByUserID(ctx, userID)
}

var _ port.ProfileRepository = (*ProfileRepository)(nil)
