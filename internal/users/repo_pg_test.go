package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoUpsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO users").
		WithArgs("google-1", "ann@example.ie", "Ann Murphy", "Ann", "Murphy", "https://pic.example/ann").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := &PGRepo{DB: db}
	err = repo.Upsert(context.Background(), User{
		ID:         "google-1",
		Email:      "ann@example.ie",
		FullName:   "Ann Murphy",
		GivenName:  "Ann",
		FamilyName: "Murphy",
		PictureURL: "https://pic.example/ann",
	})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestPGRepoUpsertEmptyOptionalFields(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO users").
		WithArgs("google-2", "b@example.ie", nil, nil, nil, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := &PGRepo{DB: db}
	if err := repo.Upsert(context.Background(), User{ID: "google-2", Email: "b@example.ie"}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestPGRepoGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "email", "full_name", "given_name", "family_name", "picture_url", "created_at", "updated_at"}).
		AddRow("google-1", "ann@example.ie", "Ann Murphy", "Ann", "Murphy", nil, created, created)
	mock.ExpectQuery("SELECT id, email").WithArgs("google-1").WillReturnRows(rows)

	repo := &PGRepo{DB: db}
	user, err := repo.GetByID(context.Background(), "google-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if user.Email != "ann@example.ie" || user.FullName != "Ann Murphy" || user.PictureURL != "" {
		t.Fatalf("user = %+v", user)
	}
	if !user.CreatedAt.Equal(created) {
		t.Fatalf("CreatedAt = %v", user.CreatedAt)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "email", "full_name", "given_name", "family_name", "picture_url", "created_at", "updated_at"})
	mock.ExpectQuery("SELECT id, email").WithArgs("missing").WillReturnRows(rows)

	repo := &PGRepo{DB: db}
	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}
