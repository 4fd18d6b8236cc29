package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// Voice actions accepted by the handler.
const (
	ActionSpeechToText = "speech-to-text"
	ActionTextToSpeech = "text-to-speech"
)

// base64ChunkSize bounds how much of the encoded payload is decoded at
// once, so large recordings don't force one giant intermediate allocation.
const base64ChunkSize = 32768

var (
	ErrMissingAudio  = errors.New("no audio data provided")
	ErrMissingText   = errors.New("text is required for text-to-speech")
	ErrInvalidAction = errors.New(`invalid action, use "speech-to-text" or "text-to-speech"`)
)

// VoiceService converts speech to text and text to speech through the
// upstream audio endpoints.
type VoiceService struct {
	ai *OpenAIService
}

// NewVoiceService creates a new VoiceService instance
func NewVoiceService(ai *OpenAIService) *VoiceService {
	return &VoiceService{ai: ai}
}

// Transcribe decodes base64 audio in bounded chunks and forwards it to the
// transcription endpoint.
func (s *VoiceService) Transcribe(ctx context.Context, audioBase64 string) (string, error) {
	if strings.TrimSpace(audioBase64) == "" {
		return "", ErrMissingAudio
	}

	audio, err := DecodeBase64Chunks(audioBase64, base64ChunkSize)
	if err != nil {
		return "", fmt.Errorf("failed to decode audio: %w", err)
	}

	return s.ai.Transcribe(ctx, audio)
}

// Synthesize forwards text to the speech endpoint and returns the audio
// base64-encoded for inline transport.
func (s *VoiceService) Synthesize(ctx context.Context, text, voice string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrMissingText
	}
	if voice == "" {
		voice = "alloy"
	}

	audio, err := s.ai.Synthesize(ctx, text, voice)
	if err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(audio), nil
}

// DecodeBase64Chunks decodes a base64 string in chunks of at most chunkSize
// characters. Chunk boundaries are aligned to 4 characters so each slice is
// independently decodable; padding only ever appears in the final chunk.
func DecodeBase64Chunks(encoded string, chunkSize int) ([]byte, error) {
	if chunkSize < 4 {
		chunkSize = 4
	}
	chunkSize -= chunkSize % 4

	result := make([]byte, 0, base64.StdEncoding.DecodedLen(len(encoded)))
	for position := 0; position < len(encoded); position += chunkSize {
		end := position + chunkSize
		if end > len(encoded) {
			end = len(encoded)
		}
		chunk, err := base64.StdEncoding.DecodeString(encoded[position:end])
		if err != nil {
			return nil, err
		}
		result = append(result, chunk...)
	}

	return result, nil
}
