package handler

import (
	"context"
	"sync"

	"prefixle/internal/domain"
	"prefixle/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Handler manages all bot interactions
type Handler struct {
	// ctx is cancelled on shutdown and bounds every lookup started by an update
	ctx           context.Context
	bot           *tele.Bot
	authService   *service.AuthService
	puzzleService *service.PuzzleService
	logger        *zap.Logger

	// User states (in-memory state machine)
	states   map[int64]*domain.StateData
	stateMux sync.RWMutex
}

// NewHandler creates a new handler instance
func NewHandler(
	ctx context.Context,
	bot *tele.Bot,
	authService *service.AuthService,
	puzzleService *service.PuzzleService,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		ctx:           ctx,
		bot:           bot,
		authService:   authService,
		puzzleService: puzzleService,
		logger:        logger,
		states:        make(map[int64]*domain.StateData),
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Commands
	h.bot.Handle("/start", h.handleStart)
	h.bot.Handle("/today", h.handleProgress)
	h.bot.Handle("/words", h.handleWords)

	// Text messages
	h.bot.Handle(tele.OnText, h.handleText)

	// Callback queries (inline buttons)
	h.bot.Handle(&btnPlay, h.handlePlay)
	h.bot.Handle(&btnProgress, h.handleProgress)
	h.bot.Handle(&btnWords, h.handleWords)
	h.bot.Handle(&btnMainMenu, h.handleMainMenu)

	// Generic callback handler for dynamic data
	h.bot.Handle(tele.OnCallback, h.handleCallback)
}

// GetState returns user's current state
func (h *Handler) GetState(userID int64) *domain.StateData {
	h.stateMux.RLock()
	defer h.stateMux.RUnlock()

	state, exists := h.states[userID]
	if !exists {
		return &domain.StateData{State: domain.StateIdle}
	}
	return state
}

// SetState sets user's state
func (h *Handler) SetState(userID int64, state *domain.StateData) {
	h.stateMux.Lock()
	defer h.stateMux.Unlock()
	h.states[userID] = state
}

// ResetState resets user to idle state
func (h *Handler) ResetState(userID int64) {
	h.SetState(userID, &domain.StateData{State: domain.StateIdle})
}

// Inline keyboard buttons
var (
	btnPlay = tele.Btn{
		Unique: "play",
		Text:   "🎯 Play today",
	}
	btnProgress = tele.Btn{
		Unique: "progress",
		Text:   "📊 Progress",
	}
	btnWords = tele.Btn{
		Unique: "words",
		Text:   "📝 Found words",
	}
	btnMainMenu = tele.Btn{
		Unique: "main_menu",
		Text:   "🏠 Main menu",
	}
)

// mainMenuMarkup returns the main menu keyboard
func mainMenuMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(btnPlay),
		menu.Row(btnProgress, btnWords),
	)
	return menu
}

// playingMarkup is shown under game messages
func playingMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(btnProgress, btnWords),
		menu.Row(btnMainMenu),
	)
	return menu
}
