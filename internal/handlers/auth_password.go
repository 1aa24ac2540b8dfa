package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"passreset/internal/logger"
	"passreset/internal/models"
	"passreset/internal/services"
	helpers "passreset/internal/utils/helpers"

	validation "github.com/go-ozzo/ozzo-validation"
	"go.uber.org/zap"
)

const (
	maxPasswordBytes   = 72
	maxRequestBodySize = 1 << 16
)

// passwordResetter: рядом с PasswordHandler
type passwordResetter interface {
	RequestReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword, userID string) error
}

type PasswordHandler struct {
	svc passwordResetter
}

func NewPasswordHandler(svc passwordResetter) *PasswordHandler {
	return &PasswordHandler{svc: svc}
}

// ForgotPassword godoc
// @Summary Запрос восстановления пароля
// @Description Ищет учётку во внешнем Auth и в таблице users. Для users выдаёт токен на 1 час и отправляет письмо со ссылкой.
// @Tags password
// @Accept json
// @Produce json
// @Param input body models.ForgotPasswordRequest true "Email пользователя"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /forgot-password [post]
func (h *PasswordHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())

	var req models.ForgotPasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		log.Warn("Невалидный JSON в ForgotPassword", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, helpers.CodeInvalidRequest, helpers.MsgInvalidRequest)
		return
	}
	if err := validation.Validate(strings.TrimSpace(req.Email), validation.Required); err != nil {
		log.Warn("Пустой email в ForgotPassword")
		helpers.Error(w, http.StatusBadRequest, helpers.CodeInvalidRequest, helpers.MsgInvalidRequest)
		return
	}

	if err := h.svc.RequestReset(r.Context(), req.Email); err != nil {
		status, code, msg := forgotErrorStatus(err)
		log.Warn("Не удалось запустить сброс пароля",
			zap.String("email_masked", logger.MaskEmail(req.Email)),
			zap.String("code", code),
			zap.Error(err),
		)
		helpers.Error(w, status, code, msg)
		return
	}

	helpers.Message(w, http.StatusOK, helpers.MsgResetRequested)
}

// ResetPassword godoc
// @Summary Сброс пароля по токену
// @Description Устанавливает новый пароль по токену из письма. Токен одноразовый, живёт 1 час.
// @Tags password
// @Accept json
// @Produce json
// @Param input body models.ResetPasswordRequest true "Токен, новый пароль и userId из ссылки"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /reset-password [post]
func (h *PasswordHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())

	var req models.ResetPasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		log.Warn("Невалидный JSON в ResetPassword", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, helpers.CodeInvalidRequest, helpers.MsgInvalidRequest)
		return
	}
	if err := validateResetRequest(&req); err != nil {
		log.Warn("Невалидный payload в ResetPassword", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, helpers.CodeInvalidRequest, helpers.MsgInvalidRequest)
		return
	}

	if err := h.svc.ResetPassword(r.Context(), req.Token, req.NewPassword, req.UserID); err != nil {
		status, code, msg := resetErrorStatus(err)
		log.Warn("Не удалось сбросить пароль по токену", zap.String("code", code), zap.Error(err))
		helpers.Error(w, status, code, msg)
		return
	}

	helpers.Message(w, http.StatusOK, helpers.MsgPasswordReset)
}

func validateResetRequest(req *models.ResetPasswordRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Token, validation.Required),
		validation.Field(&req.NewPassword, validation.Required, validation.By(maxBytes(maxPasswordBytes))),
	)
}

// maxBytes: bcrypt режет вход по байтам, а validation.Length считает руны.
func maxBytes(limit int) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if len(s) > limit {
			return fmt.Errorf("must be no more than %d bytes", limit)
		}
		return nil
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	return json.NewDecoder(r.Body).Decode(dst)
}

func forgotErrorStatus(err error) (int, string, string) {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return http.StatusBadRequest, helpers.CodeInvalidRequest, helpers.MsgInvalidRequest
	case errors.Is(err, services.ErrUserNotFound):
		return http.StatusNotFound, helpers.CodeUserNotFound, helpers.MsgUserNotFound
	case errors.Is(err, services.ErrUpdateFailed):
		return http.StatusInternalServerError, helpers.CodeUpdateFailed, helpers.MsgUpdateFailed
	default:
		return http.StatusInternalServerError, helpers.CodeInternalError, helpers.MsgInternalError
	}
}

func resetErrorStatus(err error) (int, string, string) {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return http.StatusBadRequest, helpers.CodeInvalidRequest, helpers.MsgInvalidRequest
	case errors.Is(err, services.ErrInvalidToken):
		return http.StatusBadRequest, helpers.CodeInvalidToken, helpers.MsgInvalidToken
	case errors.Is(err, services.ErrUpdateFailed):
		return http.StatusBadRequest, helpers.CodeUpdateFailed, helpers.MsgUpdateFailed
	case errors.Is(err, services.ErrVerificationFailed):
		return http.StatusBadRequest, helpers.CodeVerificationFailed, helpers.MsgVerifyFailed
	default:
		return http.StatusInternalServerError, helpers.CodeInternalError, helpers.MsgInternalError
	}
}
