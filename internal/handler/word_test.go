package handler

import (
	"context"
	"errors"
	"testing"
	"time"

	"prefixle/internal/domain"
	"prefixle/internal/service"
	"prefixle/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v3"
)

// fakeContext implements only the methods the message handlers touch
type fakeContext struct {
	tele.Context
	sender *tele.User
	text   string
	sent   []interface{}
}

func (f *fakeContext) Sender() *tele.User       { return f.sender }
func (f *fakeContext) Text() string             { return f.text }
func (f *fakeContext) Callback() *tele.Callback { return nil }

func (f *fakeContext) Send(what interface{}, opts ...interface{}) error {
	f.sent = append(f.sent, what)
	return nil
}

func TestHandler_HandleText_UsesHandlerContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cancelled := mock.MatchedBy(func(c context.Context) bool {
		return errors.Is(c.Err(), context.Canceled)
	})

	lex := new(testutil.MockLexicon)
	lex.On("EstimatePuzzleTotals", cancelled, "br", 2).
		Return(domain.PuzzleTotals{PossibleWords: 20, MaxPossiblePoints: 60})
	lex.On("LookupExact", cancelled, "broker", 2).Return(domain.LookupResult{}, false)

	repo := new(testutil.MockPuzzleStateRepository)
	repo.On("LoadState", int64(1), "daily").Return(nil, nil)
	repo.On("SaveState", int64(1), "daily", mock.Anything).Return(nil)

	logger := testutil.NewTestLogger()
	puzzles := service.NewPuzzleService(
		testutil.NewTestSelector("br", domain.SyllablesFixed),
		lex,
		repo,
		nil,
		service.PuzzleOptions{Now: testutil.FixedClock(time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC))},
		logger,
	)
	auth := service.NewAuthService(new(testutil.MockPlayerRepository), "")

	h := NewHandler(ctx, nil, auth, puzzles, logger)
	c := &fakeContext{sender: &tele.User{ID: 1}, text: "broker"}

	err := h.handleText(c)

	require.NoError(t, err)
	require.Len(t, c.sent, 1)
	assert.Contains(t, c.sent[0], "not a valid 2-syllable word")
	assert.Equal(t, domain.StatePlaying, h.GetState(1).State)
	lex.AssertExpectations(t)
}
