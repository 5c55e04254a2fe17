package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v2"

	"github.com/arklim/hall-of-fame-creators/internal/core/domain"
	"github.com/arklim/hall-of-fame-creators/internal/core/port"
	"github.com/arklim/hall-of-fame-creators/internal/repository"
)

func testCreator() domain.Creator {
	now := time.Now().UTC()
	name := "Steve"
	slug := "steve"
	mcUUID := "069a79f4-44e9-4726-a5be-fca90e38aaf5"
	return domain.Creator{
		ID:               "creator-1",
		ExternalID:       "550e8400-e29b-41d4-a716-446655440000",
		Provider:         domain.ProviderParadox,
		DisplayName:      &name,
		DisplayNameSlug:  &slug,
		MinecraftUUID:    &mcUUID,
		DeviceHistory:    []string{"dev-1"},
		IPHistory:        []string{"203.0.113.7"},
		NeedsTranslation: true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func creatorRows(creator domain.Creator) *pgxmock.Rows {
	return pgxmock.NewRows(creatorColumns).AddRow(
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
	)
}

func TestCreatorRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewCreatorRepository(mock)
	creator := testCreator()

	mock.ExpectExec(`INSERT INTO hof\.creators`).
		WithArgs(
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
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	if err := repo.Create(context.Background(), creator); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreatorRepository_Create_DuplicateKey(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewCreatorRepository(mock)
	creator := testCreator()

	mock.ExpectExec(`INSERT INTO hof\.creators`).
		WithArgs(
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
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "creators_external_id_key"})

	err = repo.Create(context.Background(), creator)
	if !errors.Is(err, repository.ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}
}

func TestCreatorRepository_GetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewCreatorRepository(mock)
	creator := testCreator()

	mock.ExpectQuery(`SELECT .+ FROM hof\.creators WHERE id = \$1`).
		WithArgs(creator.ID).
		WillReturnRows(creatorRows(creator))

	got, err := repo.GetByID(context.Background(), creator.ID)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if got.ID != creator.ID || got.ExternalID != creator.ExternalID {
		t.Fatalf("unexpected creator %+v", got)
	}
	if got.DisplayName == nil || *got.DisplayName != "Steve" {
		t.Fatalf("unexpected display name %v", got.DisplayName)
	}
}

func TestCreatorRepository_GetByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewCreatorRepository(mock)

	mock.ExpectQuery(`SELECT .+ FROM hof\.creators WHERE id = \$1`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err = repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreatorRepository_GetByExternalID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewCreatorRepository(mock)

	mock.ExpectQuery(`SELECT .+ FROM hof\.creators WHERE external_id = \$1`).
		WithArgs("550e8400-e29b-41d4-a716-446655440000").
		WillReturnError(pgx.ErrNoRows)

	_, err = repo.GetByExternalID(context.Background(), "550e8400-e29b-41d4-a716-446655440000")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreatorRepository_FindByAnyIdentity(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewCreatorRepository(mock)
	first := testCreator()
	second := testCreator()
	second.ID = "creator-2"
	second.ExternalID = "16fd2706-8baf-433b-82eb-8c7fada847da"

	name := "Steve"
	slug := "steve"
	query := port.IdentityQuery{
		ExternalID:      first.ExternalID,
		DisplayName:     &name,
		DisplayNameSlug: &slug,
	}

	rows := creatorRows(first).AddRow(
		second.ID,
		second.ExternalID,
		second.Provider,
		second.DisplayName,
		second.DisplayNameSlug,
		second.MinecraftUUID,
		second.AllowIdentityReset,
		second.DeviceHistory,
		second.IPHistory,
		second.NeedsTranslation,
		second.Locale,
		second.LatinizedName,
		second.TranslatedName,
		second.CreatedAt,
		second.UpdatedAt,
	)

	mock.ExpectQuery(`SELECT .+ FROM hof\.creators WHERE \(external_id = \$1 OR display_name = \$2 OR display_name_slug = \$3\) ORDER BY created_at ASC`).
		WithArgs(first.ExternalID, name, slug).
		WillReturnRows(rows)

	matches, err := repo.FindByAnyIdentity(context.Background(), query)
	if err != nil {
		t.Fatalf("FindByAnyIdentity returned error: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].ID != first.ID || matches[1].ID != second.ID {
		t.Fatalf("unexpected match order: %q, %q", matches[0].ID, matches[1].ID)
	}
}

func TestCreatorRepository_Update_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewCreatorRepository(mock)
	creator := testCreator()

	mock.ExpectExec(`UPDATE hof\.creators SET`).
		WithArgs(
			creator.ExternalID,
			creator.Provider,
			creator.DisplayName,
			creator.DisplayNameSlug,
			creator.MinecraftUUID,
			creator.AllowIdentityReset,
			creator.DeviceHistory,
			creator.IPHistory,
			creator.NeedsTranslation,
			creator.UpdatedAt,
			creator.ID,
		).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err = repo.Update(context.Background(), creator)
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreatorRepository_Update_DuplicateKey(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewCreatorRepository(mock)
	creator := testCreator()

	mock.ExpectExec(`UPDATE hof\.creators SET`).
		WithArgs(
			creator.ExternalID,
			creator.Provider,
			creator.DisplayName,
			creator.DisplayNameSlug,
			creator.MinecraftUUID,
			creator.AllowIdentityReset,
			creator.DeviceHistory,
			creator.IPHistory,
			creator.NeedsTranslation,
			creator.UpdatedAt,
			creator.ID,
		).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err = repo.Update(context.Background(), creator)
	if !errors.Is(err, repository.ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}
}

func TestCreatorRepository_SetIdentityReset(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewCreatorRepository(mock)

	mock.ExpectExec(`UPDATE hof\.creators SET allow_identity_reset = \$1`).
		WithArgs(true, "creator-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	if err := repo.SetIdentityReset(context.Background(), "creator-1", true); err != nil {
		t.Fatalf("SetIdentityReset returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
