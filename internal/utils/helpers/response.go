package helpers

import (
	"encoding/json"
	"net/http"

	"passreset/internal/models"
)

// Коды ошибок в поле code ответа.
const (
	CodeInvalidRequest     = "InvalidRequest"
	CodeUserNotFound       = "UserNotFound"
	CodeInvalidToken       = "InvalidToken"
	CodeUpdateFailed       = "UpdateFailed"
	CodeVerificationFailed = "VerificationFailed"
	CodeInternalError      = "InternalError"
)

const (
	MsgResetRequested = "If your email is registered, you will receive a password reset link."
	MsgPasswordReset  = "Password has been reset successfully."
	MsgInvalidRequest = "Invalid request payload."
	MsgUserNotFound   = "User not found."
	MsgInvalidToken   = "Invalid or expired reset token."
	MsgUpdateFailed   = "Failed to update password."
	MsgVerifyFailed   = "Password update could not be verified."
	MsgInternalError  = "Internal server error."
)

func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		return
	}
}

func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, models.MessageResponse{Message: msg})
}

func Error(w http.ResponseWriter, status int, code, errMsg string) {
	JSON(w, status, models.ErrorResponse{Error: errMsg, Code: code})
}
