// Package model builds the language-model client handed to the chat agent.
//
// A model is described by a platform selector, a model name, a credential and
// a mapping of sampling options. Both supported platforms are reached through
// the OpenAI chat-completions protocol; Gemini through its OpenAI-compatible
// endpoint.
package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nlpodyssey/openai-agents-go/agents"
	"github.com/nlpodyssey/openai-agents-go/modelsettings"
	"github.com/openai/openai-go/v2/packages/param"
)

// Platform selects the model provider
type Platform string

const (
	PlatformGemini Platform = "gemini"
	PlatformOpenAI Platform = "openai"
)

const (
	DefaultPlatform = PlatformGemini
	DefaultModel    = "gemini-2.5-flash"

	DefaultOpenAIModel = "gpt-4o-mini"

	// GeminiOpenAIBaseURL is Gemini's OpenAI-compatible API root
	GeminiOpenAIBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"
)

// Recognized sampling option keys
const (
	OptionTemperature = "temperature"
	OptionMaxTokens   = "max_tokens"
	OptionTopP        = "top_p"
)

var (
	ErrUnsupportedPlatform = errors.New("unsupported model platform")
	ErrMissingAPIKey       = errors.New("model api key is empty")
	ErrMissingModelName    = errors.New("model name is empty")
)

// DefaultOptions returns deterministic sampling with a bounded output length
func DefaultOptions() map[string]any {
	return map[string]any{
		OptionTemperature: 0.0,
		OptionMaxTokens:   4096,
	}
}

// ParsePlatform maps a configuration value onto a Platform. Empty selects the default
func ParsePlatform(s string) (Platform, error) {
	switch p := Platform(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DefaultPlatform, nil
	case PlatformGemini, PlatformOpenAI:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedPlatform, s)
	}
}

// CredentialKey returns the environment key holding the credential for p
func (p Platform) CredentialKey() string {
	switch p {
	case PlatformOpenAI:
		return "OPENAI_API_KEY"
	default:
		return "GOOGLE_API_KEY"
	}
}

// DefaultModel returns the model used on p when none is configured
func (p Platform) DefaultModel() string {
	switch p {
	case PlatformOpenAI:
		return DefaultOpenAIModel
	default:
		return DefaultModel
	}
}

// Config describes the model to build
type Config struct {
	Platform  Platform
	ModelName string
	APIKey    string
	Options   map[string]any
}

// Client is an immutable model client ready to be attached to an agent
type Client struct {
	Platform  Platform
	ModelName string
	Provider  agents.ModelProvider
	Settings  modelsettings.ModelSettings
}

// Factory creates model clients. Empty base URLs select each platform's default endpoint
type Factory struct {
	GeminiBaseURL string
	OpenAIBaseURL string
}

// Create validates cfg and returns a model client
func (f *Factory) Create(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.ModelName == "" {
		return nil, ErrMissingModelName
	}

	settings, err := ParseSettings(cfg.Options)
	if err != nil {
		return nil, err
	}

	params := agents.OpenAIProviderParams{
		APIKey:       param.NewOpt(cfg.APIKey),
		UseResponses: param.NewOpt(false),
	}

	switch cfg.Platform {
	case PlatformGemini:
		baseURL := f.GeminiBaseURL
		if baseURL == "" {
			baseURL = GeminiOpenAIBaseURL
		}
		params.BaseURL = param.NewOpt(baseURL)
	case PlatformOpenAI:
		if f.OpenAIBaseURL != "" {
			params.BaseURL = param.NewOpt(f.OpenAIBaseURL)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedPlatform, cfg.Platform)
	}

	return &Client{
		Platform:  cfg.Platform,
		ModelName: cfg.ModelName,
		Provider:  agents.NewOpenAIProvider(params),
		Settings:  settings,
	}, nil
}
