package handler

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"prefixle/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const pagePrefix = "page_"

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// parsePage extracts the page number from "page_N" callback data
func parsePage(data string) (int, bool) {
	if !strings.HasPrefix(data, pagePrefix) {
		return 0, false
	}
	page, err := strconv.Atoi(strings.TrimPrefix(data, pagePrefix))
	if err != nil || page < 1 {
		return 0, false
	}
	return page, true
}

// handleEditError handles errors from c.Edit(). A "not modified" error only acknowledges the callback.
// Any other error is returned so the caller can send a new message instead.
func (h *Handler) handleEditError(err error, c tele.Context, userID int64) error {
	if err == nil {
		return nil
	}

	if strings.Contains(err.Error(), "message is not modified") {
		h.logger.Debug("Message already up to date, acknowledging",
			zap.Int64("user_id", userID),
			zap.String("callback_id", c.Callback().ID),
		)
		c.Respond()
		return nil
	}

	h.logger.Warn("Failed to edit message, sending new",
		zap.Error(err),
		zap.Int64("user_id", userID),
		zap.String("callback_id", c.Callback().ID),
	)
	if ackErr := c.Respond(); ackErr != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(ackErr))
	}
	return err
}

// handleCallback handles ALL callback queries
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	data := cleanCallbackData(callback.Data)
	h.logger.Debug("handleCallback: Processing callback",
		zap.String("data", data),
		zap.String("id", callback.ID),
		zap.String("unique", callback.Unique),
		zap.Int64("user_id", c.Sender().ID),
	)

	// Unique is empty when the button was built with markup.Data without one
	key := callback.Unique
	if key == "" {
		key = data
	}

	switch key {
	case btnPlay.Unique:
		return h.handlePlay(c)
	case btnProgress.Unique:
		return h.handleProgress(c)
	case btnWords.Unique:
		return h.handleWords(c)
	case btnMainMenu.Unique:
		return h.handleMainMenu(c)
	}

	if page, ok := parsePage(data); ok {
		return h.showWordsPage(c, page)
	}

	h.logger.Warn("Unhandled callback in handleCallback",
		zap.String("data", data),
		zap.String("unique", callback.Unique),
	)
	return c.Respond()
}

// handleProgress shows the player's progress on today's puzzle
func (h *Handler) handleProgress(c tele.Context) error {
	userID := c.Sender().ID
	progress := h.puzzleService.Progress(h.ctx, userID)
	return h.reply(c, progressText(progress), playingMarkup())
}

// handleWords shows the first page of found words
func (h *Handler) handleWords(c tele.Context) error {
	return h.showWordsPage(c, 1)
}

func (h *Handler) showWordsPage(c tele.Context, page int) error {
	userID := c.Sender().ID

	words := h.puzzleService.FoundWords(h.ctx, userID)
	text, page, totalPages := wordsPageText(words, page)

	state := h.GetState(userID)
	h.SetState(userID, &domain.StateData{State: state.State, WordsPage: page, MessageID: state.MessageID})

	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{}
	if totalPages > 1 {
		navRow := tele.Row{}
		if page > 1 {
			navRow = append(navRow, markup.Data("⬅️", fmt.Sprintf("%s%d", pagePrefix, page-1)))
		}
		if page < totalPages {
			navRow = append(navRow, markup.Data("➡️", fmt.Sprintf("%s%d", pagePrefix, page+1)))
		}
		rows = append(rows, navRow)
	}
	rows = append(rows, markup.Row(btnProgress, btnMainMenu))
	markup.Inline(rows...)

	return h.reply(c, text, markup)
}

// reply edits the message behind a callback, or sends a new one for commands
func (h *Handler) reply(c tele.Context, text string, markup *tele.ReplyMarkup) error {
	if c.Callback() == nil {
		return c.Send(text, markup)
	}
	if err := c.Edit(text, markup); err != nil {
		if handleErr := h.handleEditError(err, c, c.Sender().ID); handleErr == nil {
			return nil
		}
		return c.Send(text, markup)
	}
	return c.Respond()
}
