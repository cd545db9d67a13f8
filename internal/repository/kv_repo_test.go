package repository

import (
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"testing"

	"fruitfriends/internal/database"
	"fruitfriends/internal/storage"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMock(t *testing.T, dialect database.Dialect) (*KVRepository, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return NewKVRepository(database.NewWithDialect(conn, dialect)), mock
}

func TestKVRepository_Get(t *testing.T) {
	query := regexp.QuoteMeta("SELECT store_value FROM kv_store WHERE store_key = ?")

	tests := []struct {
		name      string
		setupMock func(sqlmock.Sqlmock)
		want      string
		wantErr   error
		anyErr    bool
	}{
		{
			name: "found",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"store_value"}).AddRow(`{"totalAttempts":1}`)
				mock.ExpectQuery(query).WithArgs("progress_Alex").WillReturnRows(rows)
			},
			want: `{"totalAttempts":1}`,
		},
		{
			name: "missing",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(query).WithArgs("progress_Alex").WillReturnRows(sqlmock.NewRows([]string{"store_value"}))
			},
			wantErr: storage.ErrNotFound,
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(query).WithArgs("progress_Alex").WillReturnError(errors.New("disk I/O error"))
			},
			anyErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := setupMock(t, database.NewSQLiteDialect())
			tt.setupMock(mock)

			value, err := repo.Get(context.Background(), "progress_Alex")

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.anyErr:
				assert.Error(t, err)
				assert.NotErrorIs(t, err, storage.ErrNotFound)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.want, string(value))
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestKVRepository_SetUsesDialectUpsert(t *testing.T) {
	tests := []struct {
		name    string
		dialect database.Dialect
		query   string
	}{
		{
			name:    "sqlite",
			dialect: database.NewSQLiteDialect(),
			query:   database.NewSQLiteDialect().UpsertKV(),
		},
		{
			name:    "postgres",
			dialect: database.NewPostgresDialect(),
			query:   database.NewPostgresDialect().RewriteQuery(database.NewPostgresDialect().UpsertKV()),
		},
		{
			name:    "mysql",
			dialect: database.NewMySQLDialect(),
			query:   database.NewMySQLDialect().UpsertKV(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := setupMock(t, tt.dialect)
			mock.ExpectExec(regexp.QuoteMeta(tt.query)).
				WithArgs("progress_Alex", `{"a":1}`).
				WillReturnResult(sqlmock.NewResult(0, 1))

			err := repo.Set(context.Background(), "progress_Alex", []byte(`{"a":1}`))
			require.NoError(t, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestKVRepository_SetError(t *testing.T) {
	repo, mock := setupMock(t, database.NewSQLiteDialect())
	mock.ExpectExec("INSERT INTO kv_store").WillReturnError(errors.New("database is locked"))

	err := repo.Set(context.Background(), "progress_Alex", []byte(`{}`))
	assert.ErrorContains(t, err, "database is locked")
}

func TestKVRepository_Remove(t *testing.T) {
	repo, mock := setupMock(t, database.NewPostgresDialect())
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM kv_store WHERE store_key = $1")).
		WithArgs("feedback_1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Remove(context.Background(), "feedback_1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKVRepository_Keys(t *testing.T) {
	repo, mock := setupMock(t, database.NewSQLiteDialect())
	rows := sqlmock.NewRows([]string{"store_key"}).
		AddRow("progress_Alex").
		AddRow("progress_Sam")
	mock.ExpectQuery("SELECT store_key").
		WithArgs(len("progress_"), "progress_").
		WillReturnRows(rows)

	keys, err := repo.Keys(context.Background(), "progress_")
	require.NoError(t, err)
	assert.Equal(t, []string{"progress_Alex", "progress_Sam"}, keys)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKVRepository_SQLiteIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	db, err := database.Initialize(filepath.Join(t.TempDir(), "kv.db"))
	require.NoError(t, err)
	defer db.Close()
	_, err = db.RunMigrations(ctx)
	require.NoError(t, err)

	var store storage.Store = NewKVRepository(db)

	_, err = store.Get(ctx, "progress_Alex")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, store.Set(ctx, "progress_Alex", []byte(`{"a":1}`)))
	require.NoError(t, store.Set(ctx, "progress_Alex", []byte(`{"a":2}`)))
	require.NoError(t, store.Set(ctx, "progress_Bo", []byte(`{"b":1}`)))
	require.NoError(t, store.Set(ctx, "feedback_x", []byte(`{}`)))

	value, err := store.Get(ctx, "progress_Alex")
	require.NoError(t, err)
	assert.Equal(t, `{"a":2}`, string(value))

	keys, err := store.Keys(ctx, "progress_")
	require.NoError(t, err)
	assert.Equal(t, []string{"progress_Alex", "progress_Bo"}, keys)

	require.NoError(t, store.Remove(ctx, "progress_Alex"))
	_, err = store.Get(ctx, "progress_Alex")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
