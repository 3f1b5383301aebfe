package dto

// UpdateProfileRequest carries the mutable profile fields. Absent fields are
// left unchanged.
type UpdateProfileRequest struct {
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	FullName *string `json:"full_name,omitempty" validate:"omitempty,max=100"`
}

// ProfileResponse is returned by GET /api/profile
type ProfileResponse struct {
	Status string       `json:"status"`
	User   UserResponse `json:"user"`
}

// UpdateProfileResponse is returned by PUT /api/profile
type UpdateProfileResponse struct {
	Status  string       `json:"status"`
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}
