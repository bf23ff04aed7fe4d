package suggest

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

// DefaultBedrockModel is used when no model is configured.
const DefaultBedrockModel = "amazon.nova-lite-v1:0"

type novaRequest struct {
	System          []novaContent `json:"system,omitempty"`
	Messages        []novaMessage `json:"messages"`
	InferenceConfig struct {
		MaxNewTokens int     `json:"max_new_tokens"`
		Temperature  float64 `json:"temperature"`
	} `json:"inferenceConfig"`
}

type novaMessage struct {
	Role    string        `json:"role"`
	Content []novaContent `json:"content"`
}

type novaContent struct {
	Text string `json:"text"`
}

type novaResponse struct {
	Output struct {
		Message struct {
			Content []novaContent `json:"content"`
		} `json:"message"`
	} `json:"output"`
}

// invoker is the part of the Bedrock runtime client used here.
type invoker interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

// Bedrock asks an Amazon Bedrock model using the Nova message format.
type Bedrock struct {
	client invoker
	model  string
}

var _ Suggester = (*Bedrock)(nil)

// NewBedrock creates a Bedrock provider from the default AWS credential
// chain. An empty region keeps the chain's region.
func NewBedrock(ctx context.Context, model, region string) (*Bedrock, error) {
	var opts []func(*config.LoadOptions) error
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return newBedrock(bedrockruntime.NewFromConfig(cfg), model), nil
}

func newBedrock(client invoker, model string) *Bedrock {
	if model == "" {
		model = DefaultBedrockModel
	}
	return &Bedrock{client: client, model: model}
}

func (b *Bedrock) Suggest(ctx context.Context, req Request) (Suggestion, error) {
	var payload novaRequest
	payload.System = []novaContent{{Text: systemPrompt}}
	payload.Messages = []novaMessage{{
		Role:    "user",
		Content: []novaContent{{Text: BuildPrompt(req)}},
	}}
	payload.InferenceConfig.MaxNewTokens = 1024
	payload.InferenceConfig.Temperature = 0.2

	body, err := json.Marshal(payload)
	if err != nil {
		return Suggestion{}, fmt.Errorf("marshal bedrock request: %w", err)
	}

	out, err := b.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(b.model),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		return Suggestion{}, fmt.Errorf("invoke bedrock model: %w", err)
	}

	var resp novaResponse
	if err := json.Unmarshal(out.Body, &resp); err != nil {
		return Suggestion{}, fmt.Errorf("decode bedrock response: %w", err)
	}
	if len(resp.Output.Message.Content) == 0 {
		return Suggestion{}, fmt.Errorf("bedrock response: %w", ErrEmpty)
	}

	return ParseResponse(req.Key, resp.Output.Message.Content[0].Text, req.Targets)
}
