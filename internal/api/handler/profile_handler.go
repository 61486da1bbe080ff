package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/core/ports"
)

// ProfileHandler serves the onboarding state of the signed-in user.
type ProfileHandler struct {
	accounts ports.AccountService
}

func NewProfileHandler(accounts ports.AccountService) *ProfileHandler {
	return &ProfileHandler{accounts: accounts}
}

// Check reports whether the user finished the health profile.
//
// @Summary      Health profile status
// @Tags         health
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  profileCheckResponse
// @Failure      401  {object}  map[string]string
// @Router       /api/health/check [get]
func (h *ProfileHandler) Check(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	user, err := h.accounts.Profile(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profileCheckResponse{
		HasProfile:     user.ProfileCompleted,
		OnboardingStep: user.OnboardingStep,
		UserID:         user.ID,
		Name:           user.Name,
	})
}

// Complete marks the onboarding as finished.
//
// @Summary      Complete the health profile
// @Tags         health
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  map[string]string
// @Router       /api/health/profile [post]
func (h *ProfileHandler) Complete(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.accounts.CompleteProfile(c.Request().Context(), userID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Profile completed"})
}
