package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"passreset/internal/logger"
	"passreset/internal/mailer"
	"passreset/internal/models"
	"passreset/internal/repository"
	helpers "passreset/internal/utils/helpers"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidToken       = errors.New("invalid or expired reset token")
	ErrUpdateFailed       = errors.New("update failed")
	ErrVerificationFailed = errors.New("password update verification failed")
	ErrInternal           = errors.New("internal error")
)

// UserStore: таблица users; единственное хранилище состояния сброса.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByResetToken(ctx context.Context, token string) (*models.User, error)
	SetResetToken(ctx context.Context, email, token string, expiresAt time.Time) error
	UpdatePassword(ctx context.Context, email, passwordHash string) error
}

type PasswordService struct {
	users    UserStore
	identity IdentityProvider
	mailer   mailer.Mailer
	appURL   string // фронтовый URL: https://example.com (ссылка вида /reset-password?token=...)

	now      func() time.Time
	newToken func() (string, error)
}

func NewPasswordService(users UserStore, identity IdentityProvider, m mailer.Mailer, appURL string) *PasswordService {
	return &PasswordService{
		users:    users,
		identity: identity,
		mailer:   m,
		appURL:   strings.TrimRight(appURL, "/"),
		now:      time.Now,
		newToken: NewResetToken,
	}
}

// RequestReset запускает сброс: внешний Auth шлёт письмо сам,
// для таблицы users выдаём токен и отправляем ссылку.
func (s *PasswordService) RequestReset(ctx context.Context, email string) error {
	log := logger.WithCtx(ctx)
	if strings.TrimSpace(email) == "" {
		return ErrInvalidInput
	}
	masked := logger.MaskEmail(email)

	res, err := s.resolve(ctx, email)
	if err != nil {
		log.Error("Ошибка поиска пользователя по email", zap.String("email_masked", masked), zap.Error(err))
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}

	switch res.Kind {
	case ResolvedManaged:
		// Письмо отправляет сам Supabase Auth, локальный токен не нужен.
		log.Info("Сброс пароля запущен во внешнем Auth",
			zap.String("email_masked", masked),
			zap.String("identity_id", res.Managed.ID),
		)
		return nil
	case Unresolved:
		log.Warn("Пользователь не найден ни во внешнем Auth, ни в users", zap.String("email_masked", masked))
		return ErrUserNotFound
	}

	u := res.User
	token, err := s.newToken()
	if err != nil {
		log.Error("Ошибка генерации токена для сброса", zap.String("user_id", u.ID), zap.Error(err))
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}

	expires := s.now().Add(ResetTokenTTL)
	if err := s.users.SetResetToken(ctx, u.Email, token, expires); err != nil {
		log.Error("Ошибка сохранения токена сброса пароля", zap.String("user_id", u.ID), zap.Error(err))
		return fmt.Errorf("%w: %w", ErrUpdateFailed, err)
	}

	link := s.resetLink(token, u.ID)
	msg := mailer.Message{
		To:      u.Email,
		Subject: helpers.PasswordResetSubject,
		Text:    helpers.BuildPasswordResetText(link),
		HTML:    helpers.BuildPasswordResetHTML(link),
	}
	// важное: не завязываемся на отмену HTTP-запроса
	if err := s.mailer.Send(context.WithoutCancel(ctx), msg); err != nil {
		log.Error("Ошибка отправки письма для сброса пароля",
			zap.String("user_id", u.ID),
			zap.String("email_masked", masked),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}

	log.Info("Письмо со ссылкой на сброс пароля отправлено",
		zap.String("user_id", u.ID),
		zap.String("email_masked", masked),
		zap.Time("expires_at", expires),
	)
	return nil
}

// ResetPassword проверяет токен, ставит новый пароль, гасит токен
// и перечитывает запись, чтобы убедиться, что хеш действительно записан.
// userID в поиске не участвует: токен глобально уникален.
func (s *PasswordService) ResetPassword(ctx context.Context, token, newPassword, userID string) error {
	log := logger.WithCtx(ctx)
	if token == "" {
		return ErrInvalidToken
	}
	if newPassword == "" {
		return ErrInvalidInput
	}

	u, err := s.users.GetByResetToken(ctx, token)
	if errors.Is(err, repository.ErrUserNotFound) {
		log.Warn("Токен сброса не найден")
		return ErrInvalidToken
	}
	if err != nil {
		log.Error("Ошибка поиска пользователя по токену сброса", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}

	if !u.HasActiveToken(s.now()) {
		log.Warn("Токен сброса просрочен", zap.String("user_id", u.ID))
		return ErrInvalidToken
	}

	if userID != "" && userID != u.ID {
		log.Warn("userId из запроса не совпадает с владельцем токена",
			zap.String("user_id", u.ID),
			zap.String("request_user_id", userID),
		)
	}

	pwHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), BcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return ErrInvalidInput
	}
	if err != nil {
		log.Error("Ошибка генерации хеша пароля", zap.String("user_id", u.ID), zap.Error(err))
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}

	if err := s.users.UpdatePassword(ctx, u.Email, string(pwHash)); err != nil {
		log.Error("Ошибка обновления пароля пользователя", zap.String("user_id", u.ID), zap.Error(err))
		return fmt.Errorf("%w: %w", ErrUpdateFailed, err)
	}

	stored, err := s.users.GetByEmail(ctx, u.Email)
	if err != nil {
		log.Error("Не удалось перечитать пользователя после смены пароля", zap.String("user_id", u.ID), zap.Error(err))
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}
	if stored.PasswordHash != string(pwHash) {
		log.Error("Хеш пароля в users не совпадает с записанным", zap.String("user_id", u.ID))
		return ErrVerificationFailed
	}

	log.Info("Пароль успешно сброшен", zap.String("user_id", u.ID))
	return nil
}

func (s *PasswordService) resetLink(token, userID string) string {
	return fmt.Sprintf("%s/reset-password?token=%s&userId=%s", s.appURL, url.QueryEscape(token), url.QueryEscape(userID))
}
