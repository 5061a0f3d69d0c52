package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"regexp"
	"strings"
	"time"
)

// Extractor is the pluggable LLM boundary: prompt in, raw model text out.
// Implementations must not block past the caller's timeout race.
type Extractor interface {
	Extract(ctx context.Context, prompt string) (string, error)
	Name() string
}

// ErrExtractionFailed covers timeout, transport errors and unusable model
// output. It is always recovered locally by the heuristic fallback and
// never surfaced to the user.
var ErrExtractionFailed = errors.New("extraction failed")

// ExtractWithTimeout races the extractor call against a timer. The loser's
// result is discarded; the network call itself is not cancelled (the
// goroutine finishes into a buffered channel and is dropped). No retry.
func ExtractWithTimeout(ctx context.Context, ex Extractor, prompt string, timeout time.Duration) (string, error) {
	type outcome struct {
		text string
		err  error
	}
	ch := make(chan outcome, 1)

	go func() {
		text, err := ex.Extract(ctx, prompt)
		ch <- outcome{text, err}
	}()

	select {
	case o := <-ch:
		if o.err != nil {
			return "", fmt.Errorf("%w: %v", ErrExtractionFailed, o.err)
		}
		return o.text, nil
	case <-time.After(timeout):
		return "", fmt.Errorf("%w: %s timed out after %s", ErrExtractionFailed, ex.Name(), timeout)
	}
}

var codeFence = regexp.MustCompile("(?s)```[a-zA-Z]*\n(.*?)```")

// ExtractFirstJSON salvages a JSON object from model output: strip Markdown
// code fences, try a direct parse, then fall back to the first top-level
// {...} block. Returns ok=false when nothing parses.
func ExtractFirstJSON(text string) (json.RawMessage, bool) {
	cleaned := strings.TrimSpace(codeFence.ReplaceAllString(text, "$1"))
	if cleaned == "" {
		return nil, false
	}

	var probe map[string]any
	if err := json.Unmarshal([]byte(cleaned), &probe); err == nil {
		return json.RawMessage(cleaned), true
	}

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end <= start {
		return nil, false
	}
	block := cleaned[start : end+1]
	if err := json.Unmarshal([]byte(block), &probe); err != nil {
		return nil, false
	}
	return json.RawMessage(block), true
}

// NewExtractorFromEnv picks the configured provider: Gemini when
// GEMINI_API_KEY is set, OpenAI when OPENAI_API_KEY is, else nil (heuristic
// parsing only).
func NewExtractorFromEnv(ctx context.Context) Extractor {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		ex, err := NewGeminiExtractor(ctx, key)
		if err != nil {
			log.Printf("⚠️ Gemini init failed: %v", err)
			return nil
		}
		log.Println("✅ LLM extractor: gemini")
		return ex
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		log.Println("✅ LLM extractor: openai")
		return NewOpenAIExtractor(key)
	}
	log.Println("⚠️ No LLM key configured — heuristic parsing only")
	return nil
}

// ExtractorTimeoutFromEnv reads LLM_TIMEOUT_MS, defaulting to 6000 ms.
func ExtractorTimeoutFromEnv() time.Duration {
	if raw := os.Getenv("LLM_TIMEOUT_MS"); raw != "" {
		var ms int
		if _, err := fmt.Sscanf(raw, "%d", &ms); err == nil && ms > 0 {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return 6000 * time.Millisecond
}
