package cli

import (
	"context"
	"fmt"
	"time"

	memoryagent "github.com/ethanbaker/memagent/internal/agents/memory"
	"github.com/ethanbaker/memagent/internal/interactive"
	"github.com/ethanbaker/memagent/internal/model"
	"github.com/ethanbaker/memagent/internal/stores/session"
	"github.com/ethanbaker/memagent/internal/toolkits/mem0"
	"github.com/ethanbaker/memagent/pkg/utils"
)

// BuildAgentStepper creates the Mem0 toolkit, the model client and the memory
// agent, and returns a stepper running that agent on a fresh session
func BuildAgentStepper(_ context.Context, cfg *utils.Config, platform model.Platform, id interactive.Identity) (interactive.Stepper, error) {
	memClient, err := mem0.NewClient(mem0.ClientConfig{
		APIKey:  cfg.Get("MEM0_API_KEY"),
		BaseURL: cfg.Get("MEM0_BASE_URL"),
		Timeout: time.Duration(cfg.GetIntWithDefault("MEM0_TIMEOUT_SECONDS", 60)) * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create mem0 client: %w", err)
	}

	toolkit := mem0.NewToolkit(memClient, id.AgentID, id.UserID)

	factory := &model.Factory{
		GeminiBaseURL: cfg.Get("GEMINI_BASE_URL"),
		OpenAIBaseURL: cfg.Get("OPENAI_BASE_URL"),
	}

	modelName := cfg.GetWithDefault("MODEL", platform.DefaultModel())
	client, err := factory.Create(model.Config{
		Platform:  platform,
		ModelName: modelName,
		APIKey:    cfg.Get(platform.CredentialKey()),
		Options:   model.DefaultOptions(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create model client: %w", err)
	}

	agent, err := memoryagent.NewMemoryAgent(client, toolkit, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create memory agent: %w", err)
	}

	sess := session.NewStore().ForIdentity(id.AgentID, id.UserID)
	return interactive.NewAgentStepper(agent, agent.Model(), sess), nil
}
