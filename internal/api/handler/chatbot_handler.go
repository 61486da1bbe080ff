package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Vshn2k5/HEALTHBITE-Kukku/internal/core/ports"
)

// ChatbotHandler answers assistant queries.
type ChatbotHandler struct {
	accounts ports.AccountService
	engine   ports.ReplyEngine
}

func NewChatbotHandler(accounts ports.AccountService, engine ports.ReplyEngine) *ChatbotHandler {
	return &ChatbotHandler{accounts: accounts, engine: engine}
}

// Query returns one assistant reply.
//
// @Summary      Ask the assistant
// @Tags         chatbot
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      chatQueryRequest  true  "User message"
// @Success      200   {object}  ports.ReplyDocument
// @Failure      401   {object}  map[string]string
// @Router       /api/chatbot/query [post]
func (h *ChatbotHandler) Query(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req chatQueryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.accounts.Profile(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.engine.Reply(c.Request().Context(), user, req.Message))
}
