package postgres

import (
	"context"
	"errors"
	"fmt"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/arklim/hall-of-fame-creators/internal/core/domain"
	"github.com/arklim/hall-of-fame-creators/internal/core/port"
	"github.com/arklim/hall-of-fame-creators/internal/repository"
)

const pgUniqueViolation = "23505"

// pgExecutor abstracts pgxpool.Pool and pgx.Tx for query execution.
type pgExecutor interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// CreatorRepository implements port.CreatorRepository using PostgreSQL.
type CreatorRepository struct {
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewCreatorRepository wires a PostgreSQL-backed creator repository.
func NewCreatorRepository(exec pgExecutor) *CreatorRepository {
	return &CreatorRepository{
		exec:    exec,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var creatorColumns = []string{
	"id",
	"external_id",
	"provider",
	"display_name",
	"display_name_slug",
	"minecraft_uuid",
	"allow_identity_reset",
	"device_history",
	"ip_history",
	"needs_translation",
	"locale",
	"latinized_name",
	"translated_name",
	"created_at",
	"updated_at",
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCreator(row rowScanner) (*domain.Creator, error) {
	var creator domain.Creator
	if err := row.Scan(
		&creator.ID,
		&creator.ExternalID,
		&creator.Provider,
		&creator.DisplayName,
		&creator.DisplayNameSlug,
		&creator.MinecraftUUID,
		&creator.AllowIdentityReset,
		&creator.DeviceHistory,
		&creator.IPHistory,
		&creator.NeedsTranslation,
		&creator.Locale,
		&creator.LatinizedName,
		&creator.TranslatedName,
		&creator.CreatedAt,
		&creator.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &creator, nil
}

// Create inserts a new creator row. A violation of the external-id uniqueness
// constraint is reported as repository.ErrDuplicateKey.
func (r *CreatorRepository) Create(ctx context.Context, creator domain.Creator) error {
	stmt, args, err := r.builder.Insert("hof.creators").
		Columns(creatorColumns...).
		Values(
			creator.ID,
			creator.ExternalID,
			creator.Provider,
			creator.DisplayName,
			creator.DisplayNameSlug,
			creator.MinecraftUUID,
			creator.AllowIdentityReset,
			creator.DeviceHistory,
			creator.IPHistory,
			creator.NeedsTranslation,
			creator.Locale,
			creator.LatinizedName,
			creator.TranslatedName,
			creator.CreatedAt,
			creator.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert creator sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, stmt, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return fmt.Errorf("%w: external id %s", repository.ErrDuplicateKey, creator.ExternalID)
		}
		return fmt.Errorf("insert creator: %w", err)
	}

	return nil
}

// GetByID retrieves a creator by internal identifier.
func (r *CreatorRepository) GetByID(ctx context.Context, id string) (*domain.Creator, error) {
	stmt, args, err := r.builder.Select(creatorColumns...).
		From("hof.creators").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select creator sql: %w", err)
	}

	creator, err := scanCreator(r.exec.QueryRow(ctx, stmt, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan creator: %w", err)
	}

	return creator, nil
}

// GetByExternalID retrieves a creator by its external identity key.
func (r *CreatorRepository) GetByExternalID(ctx context.Context, externalID string) (*domain.Creator, error) {
	stmt, args, err := r.builder.Select(creatorColumns...).
		From("hof.creators").
		Where(squirrel.Eq{"external_id": externalID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select creator by external id sql: %w", err)
	}

	creator, err := scanCreator(r.exec.QueryRow(ctx, stmt, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan creator by external id: %w", err)
	}

	return creator, nil
}

// FindByAnyIdentity returns every creator matching any present term of the
// disjunctive identity filter, oldest first.
func (r *CreatorRepository) FindByAnyIdentity(ctx context.Context, query port.IdentityQuery) ([]domain.Creator, error) {
	terms := squirrel.Or{squirrel.Eq{"external_id": query.ExternalID}}
	if query.DisplayName != nil {
		terms = append(terms, squirrel.Eq{"display_name": *query.DisplayName})
	}
	if query.DisplayNameSlug != nil {
		terms = append(terms, squirrel.Eq{"display_name_slug": *query.DisplayNameSlug})
	}
	if query.MinecraftUUID != nil {
		terms = append(terms, squirrel.Eq{"minecraft_uuid": *query.MinecraftUUID})
	}

	stmt, args, err := r.builder.Select(creatorColumns...).
		From("hof.creators").
		Where(terms).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select creators by identity sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query creators by identity: %w", err)
	}
	defer rows.Close()

	creators := make([]domain.Creator, 0)
	for rows.Next() {
		creator, err := scanCreator(rows)
		if err != nil {
			return nil, fmt.Errorf("scan creator: %w", err)
		}
		creators = append(creators, *creator)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate creators: %w", err)
	}

	return creators, nil
}

// Update rewrites the mutable identity fields of an existing creator.
func (r *CreatorRepository) Update(ctx context.Context, creator domain.Creator) error {
	stmt, args, err := r.builder.Update("hof.creators").
		Set("external_id", creator.ExternalID).
		Set("provider", creator.Provider).
		Set("display_name", creator.DisplayName).
		Set("display_name_slug", creator.DisplayNameSlug).
		Set("minecraft_uuid", creator.MinecraftUUID).
		Set("allow_identity_reset", creator.AllowIdentityReset).
		Set("device_history", creator.DeviceHistory).
		Set("ip_history", creator.IPHistory).
		Set("needs_translation", creator.NeedsTranslation).
		Set("updated_at", creator.UpdatedAt).
		Where(squirrel.Eq{"id": creator.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update creator sql: %w", err)
	}

	ct, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return fmt.Errorf("%w: external id %s", repository.ErrDuplicateKey, creator.ExternalID)
		}
		return fmt.Errorf("update creator: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// UpdateNetworkHistory persists the merged device and IP histories.
func (r *CreatorRepository) UpdateNetworkHistory(ctx context.Context, id string, deviceHistory, ipHistory []string) error {
	stmt, args, err := r.builder.Update("hof.creators").
		Set("device_history", deviceHistory).
		Set("ip_history", ipHistory).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update network history sql: %w", err)
	}

	ct, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("update network history: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// UpdateTranslation persists the derived translation fields. A nil translation
// clears them.
func (r *CreatorRepository) UpdateTranslation(ctx context.Context, id string, needsTranslation bool, translation *domain.NameTranslation) error {
	update := r.builder.Update("hof.creators").
		Set("needs_translation", needsTranslation).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if translation != nil {
		update = update.
			Set("locale", translation.Locale).
			Set("latinized_name", translation.LatinizedName).
			Set("translated_name", translation.TranslatedName)
	} else {
		update = update.
			Set("locale", nil).
			Set("latinized_name", nil).
			Set("translated_name", nil)
	}

	stmt, args, err := update.ToSql()
	if err != nil {
		return fmt.Errorf("build update translation sql: %w", err)
	}

	ct, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("update translation: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// SetIdentityReset toggles the one-shot identity reset authorization.
func (r *CreatorRepository) SetIdentityReset(ctx context.Context, id string, allowed bool) error {
	stmt, args, err := r.builder.Update("hof.creators").
		Set("allow_identity_reset", allowed).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build set identity reset sql: %w", err)
	}

	ct, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("set identity reset: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

var _ port.CreatorRepository = (*CreatorRepository)(nil)
