package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/balanceai/wellness-backend/config"
)

// Message represents a message in a chat completion request. Content is
// either a plain string or a slice of content parts for multimodal input.
type Message struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"`
}

// ImageContent builds the content parts for a single-image user message.
func ImageContent(imageURL string) []map[string]interface{} {
	return []map[string]interface{}{
		{
			"type": "image_url",
			"image_url": map[string]string{
				"url": imageURL,
			},
		},
	}
}

// ChatRequest represents a request to the chat completions API
type ChatRequest struct {
	Model          string            `json:"model"`
	Messages       []Message         `json:"messages"`
	MaxTokens      int               `json:"max_tokens,omitempty"`
	Temperature    float64           `json:"temperature"`
	ResponseFormat map[string]string `json:"response_format,omitempty"`
}

// ChatResult is the text reply plus usage accounting from one completion call
type ChatResult struct {
	Content    string
	TokensUsed int
}

// OpenAIService is a thin client for the OpenAI chat, transcription and
// speech endpoints.
type OpenAIService struct {
	apiKey             string
	chatURL            string
	transcriptionURL   string
	speechURL          string
	chatModel          string
	transcriptionModel string
	speechModel        string
	client             *http.Client
}

// NewOpenAIService creates a new OpenAIService instance
func NewOpenAIService(cfg *config.Config) (*OpenAIService, error) {
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("OpenAI API key not configured")
	}

	return &OpenAIService{
		apiKey:             cfg.OpenAIAPIKey,
		chatURL:            cfg.OpenAIChatURL,
		transcriptionURL:   cfg.OpenAITranscriptionURL,
		speechURL:          cfg.OpenAISpeechURL,
		chatModel:          cfg.ChatModel,
		transcriptionModel: cfg.TranscriptionModel,
		speechModel:        cfg.SpeechModel,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

// Model returns the configured chat model name.
func (s *OpenAIService) Model() string {
	return s.chatModel
}

// ChatCompletion issues one synchronous chat completion call. There is no
// retry; a non-2xx status is returned as an error.
func (s *OpenAIService) ChatCompletion(ctx context.Context, messages []Message, maxTokens int, temperature float64) (*ChatResult, error) {
	return s.complete(ctx, ChatRequest{
		Model:       s.chatModel,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
}

// ChatCompletionJSON issues a completion call with forced-JSON output.
func (s *OpenAIService) ChatCompletionJSON(ctx context.Context, messages []Message, maxTokens int, temperature float64) (*ChatResult, error) {
	return s.complete(ctx, ChatRequest{
		Model:       s.chatModel,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: temperature,
		ResponseFormat: map[string]string{
			"type": "json_object",
		},
	})
}

func (s *OpenAIService) complete(ctx context.Context, reqBody ChatRequest) (*ChatResult, error) {
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.chatURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.apiKey))

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Usage struct {
			TotalTokens int `json:"total_tokens"`
		} `json:"usage"`
	}

	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Choices) == 0 {
		return nil, fmt.Errorf("no response from API")
	}

	return &ChatResult{
		Content:    result.Choices[0].Message.Content,
		TokensUsed: result.Usage.TotalTokens,
	}, nil
}

// Transcribe uploads audio as a multipart form to the transcription
// endpoint and returns the recognized text.
func (s *OpenAIService) Transcribe(ctx context.Context, audio []byte) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", "audio.webm")
	if err != nil {
		return "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return "", fmt.Errorf("failed to write audio data: %w", err)
	}
	if err := writer.WriteField("model", s.transcriptionModel); err != nil {
		return "", fmt.Errorf("failed to write model field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.transcriptionURL, &buf)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.apiKey))

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	return result.Text, nil
}

// Synthesize sends text to the speech endpoint and returns the binary
// audio payload.
func (s *OpenAIService) Synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	reqBody := map[string]string{
		"model":           s.speechModel,
		"input":           text,
		"voice":           voice,
		"response_format": "mp3",
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.speechURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.apiKey))

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	return body, nil
}
