package speech

import (
	"context"
	"errors"
	"fmt"
	"io"

	openai "github.com/sashabaranov/go-openai"
)

// ErrRateLimited tells the handler to answer with a local-synthesis
// fallback hint instead of audio.
var ErrRateLimited = errors.New("tts rate limited")

// Input longer than the provider's limit is truncated, not rejected.
const maxTTSInput = 4096

// Synthesizer turns reply text into spoken audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// OpenAISynthesizer implements Synthesizer with OpenAI TTS, gated by a
// rate limiter owned by this service.
type OpenAISynthesizer struct {
	client  *openai.Client
	limiter *RateLimiter
	voice   openai.SpeechVoice
	speed   float64
}

func NewOpenAISynthesizer(apiKey string, limiter *RateLimiter) *OpenAISynthesizer {
	return &OpenAISynthesizer{
		client:  openai.NewClient(apiKey),
		limiter: limiter,
		voice:   openai.VoiceNova,
		speed:   0.95,
	}
}

func (s *OpenAISynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if !s.limiter.Allow() {
		return nil, ErrRateLimited
	}
	if len(text) > maxTTSInput {
		text = text[:maxTTSInput]
	}

	resp, err := s.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model: openai.TTSModel1,
		Input: text,
		Voice: s.voice,
		Speed: s.speed,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate speech: %w", err)
	}
	defer resp.Close()

	audio, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read speech audio: %w", err)
	}
	return audio, nil
}
