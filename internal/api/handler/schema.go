package handler

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"     validate:"required,oneof=USER ADMIN"`
}

type registerRequest struct {
	Name     string `json:"name"     validate:"required,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"     validate:"required,oneof=USER ADMIN"`
}

type authResponse struct {
	Message          string `json:"message"`
	Token            string `json:"token"`
	Email            string `json:"email"`
	Name             string `json:"name"`
	Role             string `json:"role"`
	ProfileCompleted bool   `json:"profile_completed"`
	OnboardingStep   int    `json:"onboarding_step"`
}

type profileCheckResponse struct {
	HasProfile     bool   `json:"has_profile"`
	OnboardingStep int    `json:"onboarding_step"`
	UserID         string `json:"user_id"`
	Name           string `json:"name"`
}

type chatQueryRequest struct {
	Message string         `json:"message" validate:"required,max=2000"`
	Context map[string]any `json:"context,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}
