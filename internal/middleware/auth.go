package middleware

import (
	"strings"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Replies shared with the bot handlers
const (
	PasswordPrompt = "Hi! This game is private. Send the password to start playing:"
	ErrorText      = "Something went wrong. Please try again later."
)

// PlayerAuthorizer is the part of the auth service the middleware needs
type PlayerAuthorizer interface {
	EnsurePlayer(userID int64, username string) error
	IsAuthorized(userID int64) (bool, error)
}

// AuthMiddleware registers every sender as a player and keeps unauthorized
// players away from commands and buttons. Plain text and /start pass through
// so the password can be entered.
func AuthMiddleware(auth PlayerAuthorizer, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			sender := c.Sender()
			if sender == nil {
				return nil
			}

			// Ensure player exists
			if err := auth.EnsurePlayer(sender.ID, sender.Username); err != nil {
				logger.Error("Failed to ensure player exists in middleware", zap.Error(err))
				return c.Send(ErrorText)
			}

			if passesUnauthorized(c) {
				return next(c)
			}

			authorized, err := auth.IsAuthorized(sender.ID)
			if err != nil {
				logger.Error("Failed to check authorization in middleware", zap.Error(err))
				return c.Send(ErrorText)
			}

			if !authorized {
				if c.Callback() != nil {
					return c.Respond(&tele.CallbackResponse{Text: PasswordPrompt, ShowAlert: true})
				}
				return c.Send(PasswordPrompt)
			}

			return next(c)
		}
	}
}

func passesUnauthorized(c tele.Context) bool {
	if c.Callback() != nil {
		return false
	}
	text := strings.TrimSpace(c.Text())
	return text == "/start" || !strings.HasPrefix(text, "/")
}
