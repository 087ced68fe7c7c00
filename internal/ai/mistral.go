package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/example/ydsbot/pkg/models"
	"github.com/example/ydsbot/pkg/vocabulary"
)

// Provider error taxonomy. Transport and upstream failures are retryable by
// re-requesting the card; a missing key is a configuration problem.
var (
	ErrNoAPIKey        = errors.New("MISTRAL_API_KEY environment variable is not set")
	ErrInvalidResponse = errors.New("invalid response from server")
	ErrNoContent       = errors.New("no content received from API")
	ErrDecoding        = errors.New("failed to parse word content")
)

// UpstreamError is a non-200 status returned by the Mistral API.
type UpstreamError struct {
	Status int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("API error: HTTP %d", e.Status)
}

// DefaultFetchTimeout bounds a single content fetch.
const DefaultFetchTimeout = 15 * time.Second

// Mistral represents a client for the Mistral chat completions API
type Mistral struct {
	apiKey      string
	apiURL      string
	model       string
	maxTokens   int
	temperature float64
	client      *http.Client
}

// New creates a new Mistral client
func New() (*Mistral, error) {
	apiKey := os.Getenv("MISTRAL_API_KEY")
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}

	return &Mistral{
		apiKey:      apiKey,
		apiURL:      "https://api.mistral.ai/v1/chat/completions",
		model:       "mistral-large-latest",
		maxTokens:   300,
		temperature: 0.7,
		client:      &http.Client{Timeout: DefaultFetchTimeout},
	}, nil
}

// Message represents a message in the chat conversation
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest represents a request to the chat completions API
type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

// ChatResponse represents a response from the chat completions API
type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// FetchContent generates the card content for a word: a brief academic
// definition and two connected example sentences using linking words.
func (m *Mistral) FetchContent(ctx context.Context, word string) (models.WordContent, error) {
	prompt := fmt.Sprintf(`You are an English vocabulary assistant for Turkish YDS (Foreign Language Exam) preparation.

For the word %q, provide:
1. A brief academic definition (max 20 words)
2. Two connected academic example sentences using appropriate linking words

Use these linking words naturally: %s

Return ONLY a JSON object in this exact format:
{
  "definition": "brief academic definition",
  "example1": "First sentence with a linking word.",
  "example2": "Second connected sentence with a linking word."
}

The examples should be academic/formal and demonstrate sophisticated usage suitable for YDS exam preparation.`,
		word, strings.Join(vocabulary.LinkingWords, ", "))

	request := ChatRequest{
		Model:       m.model,
		Messages:    []Message{{Role: "user", Content: prompt}},
		MaxTokens:   m.maxTokens,
		Temperature: m.temperature,
	}

	requestData, err := json.Marshal(request)
	if err != nil {
		return models.WordContent{}, fmt.Errorf("failed to marshal request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.apiURL, bytes.NewBuffer(requestData))
	if err != nil {
		return models.WordContent{}, fmt.Errorf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.apiKey)

	resp, err := m.client.Do(req)
	if err != nil {
		return models.WordContent{}, fmt.Errorf("failed to send request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.WordContent{}, &UpstreamError{Status: resp.StatusCode}
	}

	var response ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return models.WordContent{}, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	if response.Error != nil {
		return models.WordContent{}, fmt.Errorf("API error: %s", response.Error.Message)
	}

	if len(response.Choices) == 0 || response.Choices[0].Message.Content == "" {
		return models.WordContent{}, ErrNoContent
	}

	// The model may wrap the JSON payload in markdown code fences
	jsonString := extractJSON(response.Choices[0].Message.Content)

	var content models.WordContent
	if err := json.Unmarshal([]byte(jsonString), &content); err != nil {
		return models.WordContent{}, fmt.Errorf("%w: %v", ErrDecoding, err)
	}
	if content.Definition == "" {
		return models.WordContent{}, fmt.Errorf("%w: empty definition", ErrDecoding)
	}

	return content, nil
}

// extractJSON strips leading/trailing markdown code fences from a payload
func extractJSON(s string) string {
	cleaned := strings.TrimSpace(s)
	if strings.HasPrefix(cleaned, "```json") {
		cleaned = cleaned[len("```json"):]
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = cleaned[len("```"):]
	}
	if strings.HasSuffix(cleaned, "```") {
		cleaned = cleaned[:len(cleaned)-len("```")]
	}
	return strings.TrimSpace(cleaned)
}
