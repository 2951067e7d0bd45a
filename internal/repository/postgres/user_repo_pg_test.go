package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New returned error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func userColumns() []string {
	return []string{"id", "full_name", "email", "password_hash", "refresh_token", "created_at", "updated_at"}
}

func TestUserRepoFindByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepo(db)

	id := uuid.New()
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM user_account")).
		WithArgs("test@example.com").
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow(id.String(), "Test User", "test@example.com", "hash", nil, now, now))

	user, err := repo.FindByEmail(context.Background(), "test@example.com")
	if err != nil {
		t.Fatalf("FindByEmail returned error: %v", err)
	}
	if user.ID != id || user.Email != "test@example.com" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if user.RefreshToken != nil {
		t.Fatalf("expected nil refresh token, got %v", *user.RefreshToken)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserRepoFindByEmailNoRows(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM user_account")).
		WithArgs("none@example.com").
		WillReturnError(sql.ErrNoRows)

	if _, err := repo.FindByEmail(context.Background(), "none@example.com"); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestUserRepoCreateUniqueViolation(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO user_account")).
		WithArgs("Test User", "dup@example.com", "hash").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "user_account_email_key"})

	_, err := repo.Create(context.Background(), "Test User", "dup@example.com", "hash")
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		t.Fatalf("expected unique violation to pass through, got %v", err)
	}
}

func TestUserRepoUpdateRefreshToken(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepo(db)

	id := uuid.New()
	mock.ExpectExec(regexp.QuoteMeta("SET refresh_token")).
		WithArgs(id, "new-refresh-token").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdateRefreshToken(context.Background(), id, "new-refresh-token"); err != nil {
		t.Fatalf("UpdateRefreshToken returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserRepoUpdatePassword(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepo(db)

	id := uuid.New()
	mock.ExpectExec(regexp.QuoteMeta("SET password_hash")).
		WithArgs(id, "new-hash").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdatePassword(context.Background(), id, "new-hash"); err != nil {
		t.Fatalf("UpdatePassword returned error: %v", err)
	}
}
