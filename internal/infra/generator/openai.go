package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	"survey/internal/domain/entity"
	"survey/internal/domain/service"
)

const defaultChatCompletionsURL = "https://api.openai.com/v1/chat/completions"

// OpenAIConfig configures the OpenAI chat completions client.
type OpenAIConfig struct {
	APIKey     string
	Model      string
	Endpoint   string
	HTTPClient *http.Client
}

// openAIGenerator calls the OpenAI chat completions endpoint over plain
// HTTP and normalizes the model output into a Questionnaire.
type openAIGenerator struct {
	cfg OpenAIConfig
}

// NewOpenAIGenerator builds an OpenAI-backed questionnaire generator.
func NewOpenAIGenerator(cfg OpenAIConfig) service.QuestionnaireGenerator {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 60 * time.Second}
	}
	if strings.TrimSpace(cfg.Endpoint) == "" {
		cfg.Endpoint = defaultChatCompletionsURL
	}

	return &openAIGenerator{cfg: cfg}
}

type chatCompletionRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	ResponseFormat *chatFormat   `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatFormat struct {
	Type string `json:"type"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content json.RawMessage `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Generate asks the model for a questionnaire matching the fixed JSON
// schema. Errors are returned to the caller, who falls back to the
// template generator.
func (g *openAIGenerator) Generate(ctx context.Context, spec service.GenerateSpec) (*entity.Questionnaire, error) {
	body, err := json.Marshal(chatCompletionRequest{
		Model: g.cfg.Model,
		Messages: []chatMessage{
			{Role: "user", Content: buildPrompt(spec)},
		},
		ResponseFormat: &chatFormat{Type: "json_object"},
	})
	if err != nil {
		return nil, errors.Wrap(err, "marshal chat request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "build chat request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.cfg.APIKey)

	resp, err := g.cfg.HTTPClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "call chat completions")
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read chat response")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("chat completions returned status %d", resp.StatusCode)
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(payload, &completion); err != nil {
		return nil, errors.Wrap(err, "decode chat response")
	}
	if len(completion.Choices) == 0 {
		return nil, errors.New("chat response has no choices")
	}

	return decodeQuestionnaire(completion.Choices[0].Message.Content)
}

// decodeQuestionnaire normalizes the model output at this boundary: the
// content is either a JSON object or a JSON string carrying encoded JSON.
// Past this point only the one Questionnaire type exists.
func decodeQuestionnaire(raw json.RawMessage) (*entity.Questionnaire, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, errors.New("empty completion content")
	}

	if trimmed[0] == '"' {
		var inner string
		if err := json.Unmarshal(trimmed, &inner); err != nil {
			return nil, errors.Wrap(err, "unquote completion content")
		}
		trimmed = []byte(inner)
	}

	var questionnaire entity.Questionnaire
	if err := json.Unmarshal(trimmed, &questionnaire); err != nil {
		return nil, errors.Wrap(err, "decode questionnaire")
	}
	if len(questionnaire.Questions) == 0 {
		return nil, errors.New("questionnaire has no questions")
	}

	return &questionnaire, nil
}

func buildPrompt(spec service.GenerateSpec) string {
	return "You are a professional survey designer. " +
		"Generate a concise questionnaire based on the input. " +
		"Return JSON that matches the schema: " +
		"{title: string, intro: string, questions: " +
		"[{id: string, type: 'single_choice'|'multiple_choice'|'rating'|'short_text', " +
		"text: string, required: boolean, options?: string[]}]}. " +
		"Keep options short. Limit to the requested question count. " +
		"Decide which questions are required and set required=true when needed. " +
		fmt.Sprintf("Input: goal=%s, audience=%s, tone=%s, language=%s, question_count=%d.",
			spec.Goal, spec.Audience, spec.Tone, spec.Language, spec.QuestionCount)
}
