package handler

import (
	"strings"

	"prefixle/internal/domain"
	"prefixle/internal/middleware"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleText handles all text messages based on state
func (h *Handler) handleText(c tele.Context) error {
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())

	// Ignore commands (starting with /)
	if strings.HasPrefix(text, "/") {
		return nil
	}

	// Check authorization first
	authorized, err := h.authService.IsAuthorized(userID)
	if err != nil {
		h.logger.Error("Failed to check authorization", zap.Error(err))
		return c.Send(middleware.ErrorText)
	}

	// If not authorized, check password
	if !authorized {
		if !h.authService.CheckPassword(text) {
			return c.Send("Wrong password")
		}

		if err := h.authService.AuthorizePlayer(userID); err != nil {
			h.logger.Error("Failed to authorize player", zap.Error(err))
			return c.Send(middleware.ErrorText)
		}

		h.logger.Info("Player authorized", zap.Int64("user_id", userID))
		h.ResetState(userID)
		return c.Send("✅ Access granted!\n\n"+h.menuText(), mainMenuMarkup())
	}

	// Any text from an authorized player is a guess
	state := h.GetState(userID)
	if state.State != domain.StatePlaying {
		h.SetState(userID, &domain.StateData{State: domain.StatePlaying, WordsPage: 1})
	}

	result := h.puzzleService.SubmitWord(h.ctx, userID, text)

	h.logger.Info("Word submitted",
		zap.Int64("user_id", userID),
		zap.String("word", result.Word),
		zap.Bool("accepted", result.Success),
		zap.String("reason", string(result.Reason)),
	)

	return c.Send(submitText(result), playingMarkup())
}
