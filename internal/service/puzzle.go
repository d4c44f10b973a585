package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"prefixle/internal/domain"
	"prefixle/internal/repository"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Lexicon validates and scores words against the lookup service
type Lexicon interface {
	EstimatePuzzleTotals(ctx context.Context, prefix string, syllables int) domain.PuzzleTotals
	LookupExact(ctx context.Context, word string, syllables int) (domain.LookupResult, bool)
}

// AchievementObserver is notified after every accepted word.
// It returns the tier name when a new tier was unlocked.
type AchievementObserver interface {
	Observe(state *domain.PuzzleState) (string, bool)
}

// PluralCheck decides when the local plural heuristic runs
type PluralCheck string

const (
	PluralCheckBefore PluralCheck = "before"
	PluralCheckAfter  PluralCheck = "after"
)

// RejectReason tells why a submission was rejected
type RejectReason string

const (
	ReasonEmpty         RejectReason = "empty"
	ReasonWrongPrefix   RejectReason = "wrong_prefix"
	ReasonDuplicate     RejectReason = "duplicate"
	ReasonSingularFound RejectReason = "singular_found"
	ReasonPluralFound   RejectReason = "plural_found"
	ReasonLikelyPlural  RejectReason = "likely_plural"
	ReasonInvalidWord   RejectReason = "invalid_word"
)

// SubmitResult is the outcome of one submission
type SubmitResult struct {
	Success      bool            `json:"success"`
	Message      string          `json:"message"`
	Reason       RejectReason    `json:"reason,omitempty"`
	Word         string          `json:"word,omitempty"`
	Points       int             `json:"points,omitempty"`
	Category     domain.Category `json:"category,omitempty"`
	UnlockedTier string          `json:"unlockedTier,omitempty"`
}

// PuzzleOptions configure a PuzzleService
type PuzzleOptions struct {
	PuzzleKey   string
	PluralCheck PluralCheck
	Now         func() time.Time
}

// PuzzleService runs the submission pipeline and owns the players' daily states
type PuzzleService struct {
	selector  *domain.Selector
	lexicon   Lexicon
	stateRepo repository.PuzzleStateRepository
	observer  AchievementObserver
	logger    *zap.Logger

	puzzleKey   string
	pluralCheck PluralCheck
	now         func() time.Time

	// In-memory copies survive storage failures for the rest of the day
	mu     sync.Mutex
	states map[int64]*cachedState
	locks  map[int64]*sync.Mutex
}

// cachedState is a player's state as held in memory. Until loaded is true the
// stored row was never read, so the state must not be written over it.
type cachedState struct {
	state  *domain.PuzzleState
	loaded bool
}

// NewPuzzleService creates a new puzzle service. observer may be nil.
func NewPuzzleService(
	selector *domain.Selector,
	lexicon Lexicon,
	stateRepo repository.PuzzleStateRepository,
	observer AchievementObserver,
	opts PuzzleOptions,
	logger *zap.Logger,
) *PuzzleService {
	if opts.PuzzleKey == "" {
		opts.PuzzleKey = "daily"
	}
	if opts.PluralCheck == "" {
		opts.PluralCheck = PluralCheckBefore
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &PuzzleService{
		selector:    selector,
		lexicon:     lexicon,
		stateRepo:   stateRepo,
		observer:    observer,
		logger:      logger,
		puzzleKey:   opts.PuzzleKey,
		pluralCheck: opts.PluralCheck,
		now:         opts.Now,
		states:      make(map[int64]*cachedState),
		locks:       make(map[int64]*sync.Mutex),
	}
}

// TodayPuzzle returns the rules of the current day
func (s *PuzzleService) TodayPuzzle() domain.Puzzle {
	return s.selector.PuzzleFor(s.now())
}

// SubmitWord validates raw input against today's puzzle and records it when accepted
func (s *PuzzleService) SubmitWord(ctx context.Context, userID int64, raw string) SubmitResult {
	word := strings.ToLower(strings.TrimSpace(raw))
	if word == "" {
		return reject(ReasonEmpty, "Please enter a word")
	}

	lock := s.playerLock(userID)
	lock.Lock()
	defer lock.Unlock()

	state, loaded := s.currentState(ctx, userID)
	log := s.logger.With(
		zap.String("submission_id", uuid.NewString()),
		zap.Int64("user_id", userID),
		zap.String("word", word),
	)

	if result, rejected := s.checkLocal(state, word); rejected {
		log.Debug("Submission rejected locally", zap.String("reason", string(result.Reason)))
		return result
	}

	if s.pluralCheck == PluralCheckBefore && domain.IsLikelyPlural(word) {
		return reject(ReasonLikelyPlural, "Plural words are not allowed")
	}

	lookup, ok := s.lexicon.LookupExact(ctx, word, state.SyllableCount)
	if !ok {
		log.Debug("Submission rejected by lookup")
		return reject(ReasonInvalidWord, fmt.Sprintf("%q is not a valid %d-syllable word", word, state.SyllableCount))
	}

	if s.pluralCheck == PluralCheckAfter && domain.IsLikelyPlural(word) {
		return reject(ReasonLikelyPlural, "Plural words are not allowed")
	}

	found := domain.Score(lookup.Frequency())
	state.AddWord(word, found)

	result := SubmitResult{
		Success:  true,
		Word:     word,
		Points:   found.Points,
		Category: found.Category,
		Message:  fmt.Sprintf("%q accepted: +%d %s (%s)", word, found.Points, pointsLabel(found.Points), found.Category),
	}

	if s.observer != nil {
		if tier, unlocked := s.observer.Observe(state); unlocked {
			result.UnlockedTier = tier
			result.Message += fmt.Sprintf("\nAchievement unlocked: %s", tier)
		}
	}

	if loaded {
		s.persist(userID, state)
	} else {
		log.Warn("Stored state not loaded yet, keeping word in memory only")
	}

	log.Info("Word accepted",
		zap.Int("points", found.Points),
		zap.Int("total_score", state.TotalScore),
		zap.Int("found", state.FoundCount()),
	)
	return result
}

// Progress returns the player's progress on today's puzzle
func (s *PuzzleService) Progress(ctx context.Context, userID int64) domain.Progress {
	lock := s.playerLock(userID)
	lock.Lock()
	defer lock.Unlock()

	state, _ := s.currentState(ctx, userID)
	return state.Progress()
}

// FoundWords lists today's found words alphabetically
func (s *PuzzleService) FoundWords(ctx context.Context, userID int64) []domain.ScoredWord {
	lock := s.playerLock(userID)
	lock.Lock()
	defer lock.Unlock()

	state, _ := s.currentState(ctx, userID)
	return state.SortedWords()
}

// checkLocal runs the prefix, duplicate and plural collision checks
func (s *PuzzleService) checkLocal(state *domain.PuzzleState, word string) (SubmitResult, bool) {
	if !strings.HasPrefix(word, state.Prefix) {
		return reject(ReasonWrongPrefix, fmt.Sprintf("Word must start with %q", state.Prefix)), true
	}

	if state.HasWord(word) {
		return reject(ReasonDuplicate, fmt.Sprintf("%q already found", word)), true
	}

	if singular, ok := domain.SingularForm(word); ok && state.HasWord(singular) {
		return reject(ReasonSingularFound,
			fmt.Sprintf("%q is a plural of %q, which you already found", word, singular)), true
	}

	if plural, ok := lo.Find(domain.PluralCandidates(word), state.HasWord); ok {
		return reject(ReasonPluralFound,
			fmt.Sprintf("You already found %q, the plural of %q", plural, word)), true
	}

	return SubmitResult{}, false
}

// currentState returns today's state for the player, loading or creating it,
// and whether the stored row has been read. After a failed load the state lives
// in memory only and every call retries the load before anything is written.
// Caller must hold the player's lock.
func (s *PuzzleService) currentState(ctx context.Context, userID int64) (*domain.PuzzleState, bool) {
	puzzle := s.selector.PuzzleFor(s.now())
	today := puzzle.Day.DateString()

	s.mu.Lock()
	cached := s.states[userID]
	s.mu.Unlock()
	if cached != nil && cached.state.Date != today {
		cached = nil
	}
	if cached != nil && cached.loaded {
		return cached.state, true
	}

	stored, err := s.stateRepo.LoadState(userID, s.puzzleKey)
	if err != nil {
		s.logger.Error("Failed to load puzzle state, keeping it in memory",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		if cached == nil {
			cached = &cachedState{state: s.newState(ctx, userID, puzzle)}
			s.cache(userID, cached)
		}
		return cached.state, false
	}

	var state *domain.PuzzleState
	switch {
	case stored != nil && stored.Date == today:
		stored.RecalculateScore()
		state = stored
		if cached != nil && state.MergeWords(cached.state) > 0 {
			s.logger.Info("Merged words found while storage was unavailable", zap.Int64("user_id", userID))
			s.persist(userID, state)
		}
	case cached != nil:
		state = cached.state
		s.persist(userID, state)
	default:
		state = s.newState(ctx, userID, puzzle)
		s.persist(userID, state)
	}

	s.cache(userID, &cachedState{state: state, loaded: true})
	return state, true
}

func (s *PuzzleService) newState(ctx context.Context, userID int64, puzzle domain.Puzzle) *domain.PuzzleState {
	totals := s.lexicon.EstimatePuzzleTotals(ctx, puzzle.Prefix, puzzle.SyllableCount)
	s.logger.Info("Started new puzzle",
		zap.Int64("user_id", userID),
		zap.String("date", puzzle.Day.DateString()),
		zap.String("prefix", puzzle.Prefix),
		zap.Int("syllables", puzzle.SyllableCount),
	)
	return domain.NewPuzzleState(puzzle, totals)
}

func (s *PuzzleService) cache(userID int64, entry *cachedState) {
	s.mu.Lock()
	s.states[userID] = entry
	s.mu.Unlock()
}

// persist saves the state; failures only cost durability
func (s *PuzzleService) persist(userID int64, state *domain.PuzzleState) {
	if err := s.stateRepo.SaveState(userID, s.puzzleKey, state); err != nil {
		s.logger.Error("Failed to save puzzle state",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
	}
}

func (s *PuzzleService) playerLock(userID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[userID] = lock
	}
	return lock
}

func reject(reason RejectReason, message string) SubmitResult {
	return SubmitResult{Success: false, Reason: reason, Message: message}
}

func pointsLabel(n int) string {
	if n == 1 {
		return "point"
	}
	return "points"
}
