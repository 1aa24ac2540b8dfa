//go:build integration

package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"passreset/internal/db"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Запуск: TEST_DATABASE_URL=postgres://... go test -tags integration ./internal/repository/
func newTestRepo(t *testing.T) (*UserRepository, *pgxpool.Pool) {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL не задан")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, db.RunMigrations(ctx, pool))
	_, err = pool.Exec(ctx, `TRUNCATE users`)
	require.NoError(t, err)

	return NewUserRepository(pool), pool
}

func insertUser(t *testing.T, pool *pgxpool.Pool, email, hash string) string {
	t.Helper()
	var id string
	err := pool.QueryRow(context.Background(),
		`INSERT INTO users (email, password) VALUES ($1, $2) RETURNING id::text`, email, hash,
	).Scan(&id)
	require.NoError(t, err)
	return id
}

func TestUserRepository_NotFound(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.GetByEmail(ctx, "ghost@x.com")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = repo.GetByResetToken(ctx, "nope")
	assert.ErrorIs(t, err, ErrUserNotFound)

	assert.ErrorIs(t, repo.SetResetToken(ctx, "ghost@x.com", "tok", time.Now()), ErrNoRowsUpdated)
	assert.ErrorIs(t, repo.UpdatePassword(ctx, "ghost@x.com", "hash"), ErrNoRowsUpdated)
}

func TestUserRepository_TokenLifecycle(t *testing.T) {
	repo, pool := newTestRepo(t)
	ctx := context.Background()
	id := insertUser(t, pool, "a@x.com", "old")

	expires := time.Now().Add(time.Hour).Truncate(time.Microsecond)
	require.NoError(t, repo.SetResetToken(ctx, "a@x.com", "tok-1", expires))

	u, err := repo.GetByResetToken(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)
	assert.Equal(t, "a@x.com", u.Email)
	require.NotNil(t, u.ResetToken)
	require.NotNil(t, u.ResetTokenExpiresAt)
	assert.Equal(t, "tok-1", *u.ResetToken)
	assert.WithinDuration(t, expires, *u.ResetTokenExpiresAt, time.Millisecond)

	// новый токен вытесняет старый
	require.NoError(t, repo.SetResetToken(ctx, "a@x.com", "tok-2", expires))
	_, err = repo.GetByResetToken(ctx, "tok-1")
	assert.ErrorIs(t, err, ErrUserNotFound)

	require.NoError(t, repo.UpdatePassword(ctx, "a@x.com", "new-hash"))

	u, err = repo.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "new-hash", u.PasswordHash)
	assert.Nil(t, u.ResetToken)
	assert.Nil(t, u.ResetTokenExpiresAt)

	_, err = repo.GetByResetToken(ctx, "tok-2")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserRepository_EmailIsCaseSensitive(t *testing.T) {
	repo, pool := newTestRepo(t)
	insertUser(t, pool, "a@x.com", "old")

	_, err := repo.GetByEmail(context.Background(), "A@X.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserRepository_TokenIsUnique(t *testing.T) {
	repo, pool := newTestRepo(t)
	ctx := context.Background()
	insertUser(t, pool, "a@x.com", "h1")
	insertUser(t, pool, "b@x.com", "h2")

	require.NoError(t, repo.SetResetToken(ctx, "a@x.com", "same", time.Now().Add(time.Hour)))

	err := repo.SetResetToken(ctx, "b@x.com", "same", time.Now().Add(time.Hour))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoRowsUpdated)
}

func TestUserRepository_TokenAndExpiryTravelTogether(t *testing.T) {
	_, pool := newTestRepo(t)
	insertUser(t, pool, "a@x.com", "h1")

	_, err := pool.Exec(context.Background(), `UPDATE users SET reset_token = 'orphan' WHERE email = 'a@x.com'`)
	assert.Error(t, err)
}

