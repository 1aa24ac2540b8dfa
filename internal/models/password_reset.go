package models

// ManagedIdentity: учётка во внешнем сервисе авторизации (Supabase Auth).
// С таблицей users не синхронизируется.
type ManagedIdentity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
	UserID      string `json:"userId"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
