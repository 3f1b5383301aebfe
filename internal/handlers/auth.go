package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"FOODREC_BACK-END/internal/auth"
	"FOODREC_BACK-END/internal/dto"
	"FOODREC_BACK-END/internal/models"
	"FOODREC_BACK-END/internal/store"
	"FOODREC_BACK-END/internal/utils"
)

// AuthHandler handles registration, login, and logout. All collaborators are
// injected; the handler holds no global state.
type AuthHandler struct {
	store  store.UserStore
	hasher auth.PasswordHasher
	tokens *auth.TokenManager
	logger *slog.Logger
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(s store.UserStore, hasher auth.PasswordHasher, tokens *auth.TokenManager, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{store: s, hasher: hasher, tokens: tokens, logger: logger}
}

// Register handles user registration
// @Summary Register a new user
// @Description Create a new user account with username, email, and password
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "User registration data"
// @Success 201 {object} dto.RegisterResponse "User created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or duplicate username/email"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if err := dto.Validate(&req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation failed", "Username, email, and password are required")
		return
	}

	hash, err := h.hasher.Hash(req.Password)
	if err != nil {
		h.logger.Error("hash password", "error", err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal Server Error", "Failed to process registration")
		return
	}

	// Insert directly and let the unique constraints arbitrate; two
	// concurrent registrations with the same username must not both succeed.
	user, err := h.store.Insert(r.Context(), &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		FullName:     req.FullName,
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrUsernameTaken):
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Conflict", "username taken")
		case errors.Is(err, store.ErrEmailTaken):
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Conflict", "email taken")
		default:
			h.logger.Error("insert user", "error", err)
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal Server Error", "Failed to create user")
		}
		return
	}

	utils.WriteJSONResponse(w, http.StatusCreated, dto.RegisterResponse{
		Status:  "success",
		Message: "Registration successful",
		User:    dto.NewUserResponse(user),
	})
}

// Login handles user login
// @Summary Login user
// @Description Authenticate with username or email plus password
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.LoginResponse "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Missing fields"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if err := dto.Validate(&req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation failed", "Username and password are required")
		return
	}

	// The identifier matches either column. Unknown user and wrong password
	// share one response so callers cannot enumerate accounts.
	user, err := h.store.FindByUsernameOrEmail(r.Context(), req.Username)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			h.logger.Error("lookup user", "error", err)
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal Server Error", "Failed to process login")
			return
		}
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Username or password is incorrect")
		return
	}

	if !h.hasher.Verify(user.PasswordHash, req.Password) {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Username or password is incorrect")
		return
	}

	token, err := h.tokens.Generate(user.UserID)
	if err != nil {
		h.logger.Error("generate token", "error", err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal Server Error", "Failed to generate token")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.LoginResponse{
		Status:      "success",
		Message:     "Login successful",
		AccessToken: token,
		User:        dto.NewUserResponse(user),
	})
}

// Logout acknowledges a logout. Tokens are stateless, so nothing is revoked
// server-side; the client discards its copy.
// @Summary Logout user
// @Tags authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.MessageResponse "Logout successful"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /api/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{
		Status:  "success",
		Message: "Logout successful",
	})
}
