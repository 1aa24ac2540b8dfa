package repository

import (
	"context"
	"errors"
	"time"

	"passreset/internal/logger"
	"passreset/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrNoRowsUpdated = errors.New("no rows updated")
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

const selectUser = `
	SELECT id::text, email, password, reset_token, reset_token_expires_at
	FROM users
`

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	logger.Log.Debug("Получение пользователя по email (repo)", zap.String("email", logger.MaskEmail(email)))
	return r.scanOne(ctx, selectUser+` WHERE email = $1 LIMIT 1`, email)
}

func (r *UserRepository) GetByResetToken(ctx context.Context, token string) (*models.User, error) {
	logger.Log.Debug("Получение пользователя по токену сброса (repo)")
	return r.scanOne(ctx, selectUser+` WHERE reset_token = $1 LIMIT 1`, token)
}

func (r *UserRepository) SetResetToken(ctx context.Context, email, token string, expiresAt time.Time) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users
		SET reset_token = $1, reset_token_expires_at = $2
		WHERE email = $3
	`, token, expiresAt.UTC(), email)
	if err != nil {
		logger.Log.Error("Ошибка сохранения токена сброса (repo)", zap.String("email", logger.MaskEmail(email)), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNoRowsUpdated
	}
	return nil
}

// UpdatePassword пишет новый хеш и гасит токен одним UPDATE.
func (r *UserRepository) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users
		SET password = $1, reset_token = NULL, reset_token_expires_at = NULL
		WHERE email = $2
	`, passwordHash, email)
	if err != nil {
		logger.Log.Error("Ошибка обновления пароля (repo)", zap.String("email", logger.MaskEmail(email)), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNoRowsUpdated
	}
	return nil
}

func (r *UserRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func (r *UserRepository) scanOne(ctx context.Context, query string, arg any) (*models.User, error) {
	var u models.User
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.ResetToken,
		&u.ResetTokenExpiresAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		logger.Log.Error("Ошибка чтения пользователя (repo)", zap.Error(err))
		return nil, err
	}
	return &u, nil
}
