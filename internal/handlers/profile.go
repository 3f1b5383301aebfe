package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"FOODREC_BACK-END/internal/dto"
	"FOODREC_BACK-END/internal/middleware"
	"FOODREC_BACK-END/internal/store"
	"FOODREC_BACK-END/internal/utils"
)

// ProfileHandler serves the authenticated user's profile.
type ProfileHandler struct {
	store  store.UserStore
	logger *slog.Logger
}

// NewProfileHandler creates a new ProfileHandler instance
func NewProfileHandler(s store.UserStore, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{store: s, logger: logger}
}

// Handle dispatches /api/profile by method. Both branches run behind
// AuthMiddleware.
func (h *ProfileHandler) Handle(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.Get(w, r)
	case http.MethodPut:
		h.Update(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Get returns the current user's profile
// @Summary Get user profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ProfileResponse "Profile retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/profile [get]
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "User not authenticated")
		return
	}

	user, err := h.store.FindByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Token outlived the record; valid signature, dead subject.
			utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", "User no longer exists")
			return
		}
		h.logger.Error("find user", "error", err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal Server Error", "Failed to load profile")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.ProfileResponse{
		Status: "success",
		User:   dto.NewUserResponse(user),
	})
}

// Update applies partial changes to the current user's profile
// @Summary Update user profile
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Fields to update"
// @Success 200 {object} dto.UpdateProfileResponse "Profile updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or email conflict"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/profile [put]
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "User not authenticated")
		return
	}

	var req dto.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if err := dto.Validate(&req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation failed", "email must be a valid email address")
		return
	}

	user, err := h.store.Update(r.Context(), userID, store.UserUpdate{
		Email:    req.Email,
		FullName: req.FullName,
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrEmailTaken):
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Conflict", "email taken")
		case errors.Is(err, store.ErrNotFound):
			utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", "User no longer exists")
		default:
			h.logger.Error("update user", "error", err)
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal Server Error", "Failed to update profile")
		}
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.UpdateProfileResponse{
		Status:  "success",
		Message: "Profile updated successfully",
		User:    dto.NewUserResponse(user),
	})
}
