package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"davazen/internal/storage"
	"davazen/internal/storage/adapters/postgres"
	"davazen/pkg/logger"
)

var errDB = errors.New("database connection error")

func testContext(t *testing.T) context.Context {
	t.Helper()
	testLogger, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)
	return logger.NewContext(context.Background(), testLogger)
}

func TestStore_CreateOrReplace(t *testing.T) {
	ctx := testContext(t)

	t.Run("успешная запись", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("INSERT INTO entities .+ ON CONFLICT \\(key\\) DO UPDATE").
			WithArgs("case/1", []byte(`{"id":"1"}`)).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		err = postgres.New(mock).CreateOrReplace(ctx, "case/1", []byte(`{"id":"1"}`))
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ошибка БД", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("INSERT INTO entities").
			WithArgs("case/1", []byte("x")).
			WillReturnError(errDB)

		err = postgres.New(mock).CreateOrReplace(ctx, "case/1", []byte("x"))
		require.Error(t, err)
		assert.ErrorIs(t, err, errDB)
	})
}

func TestStore_CreateIfAbsent(t *testing.T) {
	ctx := testContext(t)

	t.Run("ключ свободен", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("INSERT INTO entities .+ DO NOTHING").
			WithArgs("user/a@x.com", []byte("{}")).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		require.NoError(t, postgres.New(mock).CreateIfAbsent(ctx, "user/a@x.com", []byte("{}")))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ключ занят", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("INSERT INTO entities .+ DO NOTHING").
			WithArgs("user/a@x.com", []byte("{}")).
			WillReturnResult(pgxmock.NewResult("INSERT", 0))

		err = postgres.New(mock).CreateIfAbsent(ctx, "user/a@x.com", []byte("{}"))
		assert.ErrorIs(t, err, storage.ErrKeyExists)
	})
}

func TestStore_ReadByKey(t *testing.T) {
	ctx := testContext(t)

	t.Run("найдено", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT value FROM entities").
			WithArgs("case/1").
			WillReturnRows(pgxmock.NewRows([]string{"value"}).AddRow([]byte(`{"id":"1"}`)))

		value, err := postgres.New(mock).ReadByKey(ctx, "case/1")
		require.NoError(t, err)
		assert.JSONEq(t, `{"id":"1"}`, string(value))
	})

	t.Run("не найдено", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT value FROM entities").
			WithArgs("case/2").
			WillReturnError(pgx.ErrNoRows)

		value, err := postgres.New(mock).ReadByKey(ctx, "case/2")
		assert.Nil(t, value)
		assert.ErrorIs(t, err, storage.ErrKeyNotFound)
	})

	t.Run("ошибка БД", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT value FROM entities").
			WithArgs("case/3").
			WillReturnError(errDB)

		_, err = postgres.New(mock).ReadByKey(ctx, "case/3")
		assert.ErrorIs(t, err, errDB)
		assert.NotErrorIs(t, err, storage.ErrKeyNotFound)
	})
}

func TestStore_ListByPrefix(t *testing.T) {
	ctx := testContext(t)

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT key, value FROM entities WHERE starts_with").
		WithArgs("case/").
		WillReturnRows(pgxmock.NewRows([]string{"key", "value"}).
			AddRow("case/1", []byte("a")).
			AddRow("case/2", []byte("b")))

	entries, err := postgres.New(mock).ListByPrefix(ctx, "case/")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "case/1", entries[0].Key)
	assert.Equal(t, []byte("b"), entries[1].Value)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_DeleteByKey(t *testing.T) {
	ctx := testContext(t)

	tests := []struct {
		name     string
		affected int64
		wantErr  error
	}{
		{"удалено", 1, nil},
		{"не найдено", 0, storage.ErrKeyNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			mock.ExpectExec("DELETE FROM entities").
				WithArgs("case/1").
				WillReturnResult(pgxmock.NewResult("DELETE", tt.affected))

			err = postgres.New(mock).DeleteByKey(ctx, "case/1")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}
