package handler

import (
	"prefixle/internal/domain"
	"prefixle/internal/middleware"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleStart handles /start command
func (h *Handler) handleStart(c tele.Context) error {
	userID := c.Sender().ID

	h.logger.Info("User started bot",
		zap.Int64("user_id", userID),
		zap.String("username", c.Sender().Username),
	)

	// Check if authorized
	authorized, err := h.authService.IsAuthorized(userID)
	if err != nil {
		h.logger.Error("Failed to check authorization", zap.Error(err))
		return c.Send(middleware.ErrorText)
	}

	h.ResetState(userID)

	if !authorized {
		return c.Send(middleware.PasswordPrompt)
	}

	return c.Send(h.menuText(), mainMenuMarkup())
}

// handleMainMenu returns to the main menu from an inline button
func (h *Handler) handleMainMenu(c tele.Context) error {
	h.ResetState(c.Sender().ID)
	return h.reply(c, h.menuText(), mainMenuMarkup())
}

// handlePlay switches the user into playing mode
func (h *Handler) handlePlay(c tele.Context) error {
	h.SetState(c.Sender().ID, &domain.StateData{State: domain.StatePlaying, WordsPage: 1})
	return h.reply(c, puzzleIntroText(h.puzzleService.TodayPuzzle()), playingMarkup())
}

func (h *Handler) menuText() string {
	return "🏠 Main menu\n\n" + puzzleIntroText(h.puzzleService.TodayPuzzle())
}
