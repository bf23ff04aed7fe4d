package suggest

import (
	"context"
	"fmt"
)

// Provider names accepted by New.
const (
	ProviderNone    = "none"
	ProviderOpenAI  = "openai"
	ProviderBedrock = "bedrock"
)

// Providers lists every accepted provider name.
var Providers = []string{ProviderNone, ProviderOpenAI, ProviderBedrock}

// Options selects and configures a provider.
type Options struct {
	Provider string
	Model    string
	BaseURL  string
	APIKey   string
	Region   string
}

// New builds the Suggester named by opts.Provider. An empty provider is
// treated as ProviderNone.
func New(ctx context.Context, opts Options) (Suggester, error) {
	switch opts.Provider {
	case "", ProviderNone:
		return Disabled, nil
	case ProviderOpenAI:
		return NewOpenAI(OpenAIOptions{
			APIKey:     opts.APIKey,
			Model:      opts.Model,
			BaseURL:    opts.BaseURL,
			MaxRetries: 2,
		})
	case ProviderBedrock:
		return NewBedrock(ctx, opts.Model, opts.Region)
	default:
		return nil, fmt.Errorf("unknown suggestion provider %q", opts.Provider)
	}
}
