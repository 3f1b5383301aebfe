package routes

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"FOODREC_BACK-END/internal/auth"
	"FOODREC_BACK-END/internal/handlers"
	"FOODREC_BACK-END/internal/middleware"
)

// SetupRoutes configures all application routes on a fresh mux.
func SetupRoutes(
	authHandler *handlers.AuthHandler,
	profileHandler *handlers.ProfileHandler,
	healthHandler *handlers.HealthHandler,
	tokens *auth.TokenManager,
) *http.ServeMux {
	mux := http.NewServeMux()

	// Health check routes
	mux.HandleFunc("/api/health", healthHandler.HealthCheck)
	mux.HandleFunc("/livez", healthHandler.LivenessCheck)
	mux.HandleFunc("/readyz", healthHandler.ReadinessCheck)

	// Authentication routes
	mux.HandleFunc("/api/register", authHandler.Register)
	mux.HandleFunc("/api/login", authHandler.Login)
	mux.HandleFunc("/api/logout", middleware.AuthMiddleware(authHandler.Logout, tokens))

	// Profile routes (GET and PUT share the path)
	mux.HandleFunc("/api/profile", middleware.AuthMiddleware(profileHandler.Handle, tokens))

	// Swagger UI
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	// Root route
	mux.HandleFunc("/", rootHandler)

	return mux
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("Food recommendation backend is running."))
}
