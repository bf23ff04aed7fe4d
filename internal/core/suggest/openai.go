package suggest

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// DefaultOpenAIModel is used when no model is configured.
const DefaultOpenAIModel = "gpt-4o-mini"

// OpenAIOptions configures the OpenAI provider. BaseURL may point at any
// OpenAI-compatible endpoint.
type OpenAIOptions struct {
	APIKey     string
	Model      string
	BaseURL    string
	MaxRetries int
}

// OpenAI asks a chat completion model for translations.
type OpenAI struct {
	client openai.Client
	model  string
}

var _ Suggester = (*OpenAI)(nil)

// NewOpenAI creates an OpenAI provider.
func NewOpenAI(opts OpenAIOptions) (*OpenAI, error) {
	if opts.APIKey == "" {
		return nil, errors.New("openai: api key is required")
	}

	model := opts.Model
	if model == "" {
		model = DefaultOpenAIModel
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
		option.WithMaxRetries(opts.MaxRetries),
	}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}

	return &OpenAI{
		client: openai.NewClient(reqOpts...),
		model:  model,
	}, nil
}

func (o *OpenAI) Suggest(ctx context.Context, req Request) (Suggestion, error) {
	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(BuildPrompt(req)),
		},
		Temperature: openai.Float(0.2),
	})
	if err != nil {
		return Suggestion{}, fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Suggestion{}, fmt.Errorf("openai chat completion: %w", ErrEmpty)
	}

	return ParseResponse(req.Key, resp.Choices[0].Message.Content, req.Targets)
}
