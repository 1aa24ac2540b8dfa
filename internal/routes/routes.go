package routes

import (
	"net/http"

	"passreset/internal/handlers"
	"passreset/internal/middleware"

	"github.com/gorilla/mux"
)

func InitRoutes(
	router *mux.Router,
	passwordHandler *handlers.PasswordHandler,
	healthHandler *handlers.HealthHandler,
) {
	router.Use(middleware.RequestID, middleware.Recoverer, middleware.Logging)

	// --- Публичные маршруты ---
	router.HandleFunc("/forgot-password", passwordHandler.ForgotPassword).Methods(http.MethodPost)
	router.HandleFunc("/reset-password", passwordHandler.ResetPassword).Methods(http.MethodPost)

	router.HandleFunc("/healthz", healthHandler.Health).Methods(http.MethodGet)
}
