package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreGet(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewStore(mock)

	now := time.Now().UTC()
	rows := pgxmock.NewRows([]string{"id", "email", "first_name", "last_name", "has_completed_form", "created_at", "updated_at"}).
		AddRow("u1", "thabo@example.com", "Thabo", "Mokoena", true, now, now)
	mock.ExpectQuery("SELECT id, email").WithArgs("u1").WillReturnRows(rows)

	u, err := store.Get(context.Background(), "u1")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "thabo@example.com", u.Email)
	assert.True(t, u.HasCompletedForm)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreGetAbsent(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewStore(mock)
	mock.ExpectQuery("SELECT id, email").WithArgs("ghost").WillReturnError(pgx.ErrNoRows)

	u, err := store.Get(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestStoreUpsert(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewStore(mock)
	mock.ExpectExec("INSERT INTO users").
		WithArgs("u1", "thabo@example.com", "Thabo", "Mokoena").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = store.Upsert(context.Background(), User{
		ID: "u1", Email: "thabo@example.com", FirstName: "Thabo", LastName: "Mokoena",
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreUpsertError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewStore(mock)
	mock.ExpectExec("INSERT INTO users").
		WithArgs("u1", "", "", "").
		WillReturnError(errors.New("connection refused"))

	err = store.Upsert(context.Background(), User{ID: "u1"})
	assert.Error(t, err)
}
