package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubExtractor struct {
	out   string
	err   error
	delay time.Duration
}

func (s *stubExtractor) Extract(ctx context.Context, prompt string) (string, error) {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	return s.out, s.err
}

func (s *stubExtractor) Name() string { return "stub" }

func TestExtractWithTimeoutReturnsModelText(t *testing.T) {
	out, err := ExtractWithTimeout(context.Background(), &stubExtractor{out: `{"brand":"nike"}`}, "p", time.Second)
	require.NoError(t, err)
	assert.Equal(t, `{"brand":"nike"}`, out)
}

func TestExtractWithTimeoutWrapsProviderError(t *testing.T) {
	_, err := ExtractWithTimeout(context.Background(), &stubExtractor{err: errors.New("429")}, "p", time.Second)
	assert.ErrorIs(t, err, ErrExtractionFailed)
}

func TestExtractWithTimeoutDropsSlowCall(t *testing.T) {
	slow := &stubExtractor{out: "late", delay: 150 * time.Millisecond}

	start := time.Now()
	_, err := ExtractWithTimeout(context.Background(), slow, "p", 20*time.Millisecond)
	assert.ErrorIs(t, err, ErrExtractionFailed)
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestExtractFirstJSONDirect(t *testing.T) {
	js, ok := ExtractFirstJSON(`{"brand":"nike","size":"42"}`)
	require.True(t, ok)
	assert.JSONEq(t, `{"brand":"nike","size":"42"}`, string(js))
}

func TestExtractFirstJSONStripsCodeFence(t *testing.T) {
	js, ok := ExtractFirstJSON("```json\n{\"brand\":\"nike\"}\n```")
	require.True(t, ok)
	assert.JSONEq(t, `{"brand":"nike"}`, string(js))
}

func TestExtractFirstJSONSalvagesEmbeddedObject(t *testing.T) {
	js, ok := ExtractFirstJSON(`Tentu! Ini hasilnya: {"brand":"nike","max_price":450000} semoga membantu.`)
	require.True(t, ok)
	assert.JSONEq(t, `{"brand":"nike","max_price":450000}`, string(js))
}

func TestExtractFirstJSONRejectsProse(t *testing.T) {
	for _, text := range []string{"", "maaf, tidak bisa", "{broken", "{}}{"} {
		_, ok := ExtractFirstJSON(text)
		assert.False(t, ok, "text %q", text)
	}
}
