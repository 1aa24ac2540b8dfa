package services

import (
	"context"
	"errors"

	"passreset/internal/identity"
	"passreset/internal/logger"
	"passreset/internal/models"
	"passreset/internal/repository"

	"go.uber.org/zap"
)

type IdentityProvider interface {
	TriggerReset(ctx context.Context, email, redirectTo string) (*models.ManagedIdentity, error)
}

type ResolutionKind int

const (
	Unresolved ResolutionKind = iota
	ResolvedManaged
	ResolvedLocal
)

func (k ResolutionKind) String() string {
	switch k {
	case ResolvedManaged:
		return "managed"
	case ResolvedLocal:
		return "local"
	default:
		return "unresolved"
	}
}

// Resolution: где нашлась учётка: во внешнем Auth, в таблице users или нигде.
type Resolution struct {
	Kind    ResolutionKind
	Managed *models.ManagedIdentity
	User    *models.User
}

// resolve сначала спрашивает внешний Auth, потом таблицу users.
// Принятый внешним Auth запрос закрывает поиск; отказ или сбой
// (в том числе неизвестный ему email) ведут в users.
func (s *PasswordService) resolve(ctx context.Context, email string) (Resolution, error) {
	log := logger.WithCtx(ctx)

	managed, err := s.identity.TriggerReset(ctx, email, s.appURL+"/admin-reset-password")
	switch {
	case err == nil && managed != nil:
		return Resolution{Kind: ResolvedManaged, Managed: managed}, nil
	case errors.Is(err, identity.ErrNotConfigured), err == nil:
		log.Debug("Внешний Auth не подключён", zap.String("email_masked", logger.MaskEmail(email)))
	default:
		log.Warn("Сбой внешнего Auth, проверяем таблицу users",
			zap.String("email_masked", logger.MaskEmail(email)),
			zap.Error(err),
		)
	}

	u, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return Resolution{Kind: Unresolved}, nil
	}
	if err != nil {
		return Resolution{}, err
	}
	return Resolution{Kind: ResolvedLocal, User: u}, nil
}
