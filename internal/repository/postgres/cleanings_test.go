package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v2"

	"github.com/Randle9000/phresh-api/internal/core/domain"
	"github.com/Randle9000/phresh-api/internal/repository"
)

func TestCleaningRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewCleaningRepository(mock)

	now := time.Now().UTC()
	description := "whole apartment, windows included"
	cleaning := domain.Cleaning{
		ID:           "cleaning-1",
		Name:         "deep scrub",
		Description:  &description,
		Price:        19.99,
		CleaningType: domain.CleaningTypeFullClean,
		OwnerID:      "user-1",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	mock.ExpectExec(`INSERT INTO cleanings`).
		WithArgs(
			cleaning.ID,
			cleaning.Name,
			cleaning.Description,
			cleaning.Price,
			cleaning.CleaningType,
			cleaning.OwnerID,
			cleaning.CreatedAt,
			cleaning.UpdatedAt,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	if err := repo.Create(context.Background(), cleaning); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCleaningRepository_ListByOwner(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewCleaningRepository(mock)

	now := time.Now().UTC()
	rows := pgxmock.NewRows(cleaningColumns).
		AddRow("cleaning-2", "quick dusting", nil, 9.99, domain.CleaningTypeDustUp, "user-1", now, now).
		AddRow("cleaning-1", "deep scrub", nil, 19.99, domain.CleaningTypeFullClean, "user-1", now.Add(-time.Hour), now.Add(-time.Hour))

	mock.ExpectQuery(`SELECT .+ FROM cleanings WHERE owner_id = \$1 ORDER BY created_at DESC`).
		WithArgs("user-1").
		WillReturnRows(rows)

	cleanings, err := repo.ListByOwner(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("ListByOwner returned error: %v", err)
	}

	if len(cleanings) != 2 {
		t.Fatalf("expected 2 cleanings, got %d", len(cleanings))
	}
	if cleanings[0].ID != "cleaning-2" || cleanings[1].ID != "cleaning-1" {
		t.Fatalf("unexpected order: %q, %q", cleanings[0].ID, cleanings[1].ID)
	}
	if cleanings[0].Description != nil {
		t.Fatal("expected nil description to survive the scan")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCleaningRepository_GetByIDNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewCleaningRepository(mock)

	mock.ExpectQuery(`SELECT .+ FROM cleanings WHERE id = \$1`).
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows(cleaningColumns))

	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCleaningRepository_DeleteMissing(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewCleaningRepository(mock)

	mock.ExpectExec(`DELETE FROM cleanings WHERE id = \$1`).
		WithArgs("missing").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	if err := repo.Delete(context.Background(), "missing"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
