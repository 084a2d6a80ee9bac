package questgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"wordisland/internal/models"
)

const questPrompt = "Generate a simple English learning mission for a child. " +
	"Types: 'vocab', 'chat', 'scramble', 'scavenger'. " +
	"Return a JSON with title (English), idnTitle (Indonesian), goal (number between 1-5), type, and reward (usually 200)."

var questSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"title":    {Type: genai.TypeString},
		"idnTitle": {Type: genai.TypeString},
		"goal":     {Type: genai.TypeNumber},
		"reward":   {Type: genai.TypeNumber},
		"type":     {Type: genai.TypeString},
	},
	Required: []string{"title", "idnTitle", "goal", "reward", "type"},
}

// ContentGenerator is the slice of the genai client the provider needs
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiOptions configures a GeminiProvider
type GeminiOptions struct {
	Model      string
	Timeout    time.Duration
	MaxRetries uint
	RetryWait  time.Duration
}

// GeminiProvider asks a Gemini model for the day's quest
type GeminiProvider struct {
	gen    ContentGenerator
	opts   GeminiOptions
	logger *zap.Logger
}

// NewGeminiClient connects to the Gemini API with apiKey
func NewGeminiClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return client, nil
}

func NewGeminiProvider(gen ContentGenerator, opts GeminiOptions, logger *zap.Logger) *GeminiProvider {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.RetryWait <= 0 {
		opts.RetryWait = time.Second
	}
	return &GeminiProvider{gen: gen, opts: opts, logger: logger}
}

// GenerateQuest calls the model, retrying transient failures
func (p *GeminiProvider) GenerateQuest(ctx context.Context) (models.QuestCandidate, error) {
	ctx, cancel := context.WithTimeout(ctx, p.opts.Timeout)
	defer cancel()

	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   questSchema,
	}

	attempt := 0
	op := func() (models.QuestCandidate, error) {
		attempt++
		resp, err := p.gen.GenerateContent(ctx, p.opts.Model, genai.Text(questPrompt), config)
		if err != nil {
			if isTransient(err) {
				p.logger.Warn("quest generation failed, retrying",
					zap.Int("attempt", attempt), zap.Error(err))
				return models.QuestCandidate{}, err
			}
			return models.QuestCandidate{}, backoff.Permanent(err)
		}
		candidate, err := parseCandidate(resp.Text())
		if err != nil {
			return models.QuestCandidate{}, backoff.Permanent(err)
		}
		return candidate, nil
	}

	return backoff.Retry(ctx, op,
		backoff.WithBackOff(backoff.NewConstantBackOff(p.opts.RetryWait)),
		backoff.WithMaxTries(p.opts.MaxRetries+1),
	)
}

// isTransient matches the error messages the API returns for failures that
// usually succeed on a second attempt.
func isTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{"internal error", "canceled", "unavailable", "overloaded", "deadline"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

type rawCandidate struct {
	Title    string  `json:"title"`
	IdnTitle string  `json:"idnTitle"`
	Goal     float64 `json:"goal"`
	Reward   float64 `json:"reward"`
	Type     string  `json:"type"`
}

func parseCandidate(text string) (models.QuestCandidate, error) {
	var raw rawCandidate
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &raw); err != nil {
		return models.QuestCandidate{}, fmt.Errorf("failed to decode quest: %w", err)
	}
	c := models.QuestCandidate{
		Title:    strings.TrimSpace(raw.Title),
		IdnTitle: strings.TrimSpace(raw.IdnTitle),
		Goal:     int(math.Round(raw.Goal)),
		Reward:   int(math.Round(raw.Reward)),
		Type:     models.QuestType(strings.ToLower(strings.TrimSpace(raw.Type))),
	}
	if err := c.Validate(); err != nil {
		return models.QuestCandidate{}, err
	}
	return c, nil
}
