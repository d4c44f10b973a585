package handler

import (
	"context"
	"testing"

	"prefixle/internal/domain"
	"prefixle/internal/testutil"

	"github.com/stretchr/testify/assert"
)

func TestCleanCallbackData(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "normal string",
			input:    "test_data",
			expected: "test_data",
		},
		{
			name:     "string with whitespace",
			input:    "  test_data  ",
			expected: "test_data",
		},
		{
			name:     "string with newline",
			input:    "test\ndata",
			expected: "testdata",
		},
		{
			name:     "string with tab",
			input:    "test\tdata",
			expected: "testdata",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "only whitespace",
			input:    "   ",
			expected: "",
		},
		{
			name:     "string with unprintable characters",
			input:    "test\x00data\x01",
			expected: "testdata",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := cleanCallbackData(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestParsePage(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
		ok       bool
	}{
		{name: "first page", input: "page_1", expected: 1, ok: true},
		{name: "later page", input: "page_12", expected: 12, ok: true},
		{name: "zero page", input: "page_0", ok: false},
		{name: "negative page", input: "page_-2", ok: false},
		{name: "not a number", input: "page_next", ok: false},
		{name: "other data", input: "progress", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, ok := parsePage(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, page)
		})
	}
}

func TestHandler_State(t *testing.T) {
	h := NewHandler(context.Background(), nil, nil, nil, testutil.NewTestLogger())

	assert.Equal(t, domain.StateIdle, h.GetState(42).State)

	h.SetState(42, &domain.StateData{State: domain.StatePlaying, WordsPage: 3})
	state := h.GetState(42)
	assert.Equal(t, domain.StatePlaying, state.State)
	assert.Equal(t, 3, state.WordsPage)

	h.ResetState(42)
	assert.Equal(t, domain.StateIdle, h.GetState(42).State)
	assert.Equal(t, 0, h.GetState(42).WordsPage)
}
