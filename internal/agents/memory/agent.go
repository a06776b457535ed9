// agent.go declares the memory agent that manages Mem0 memories in conversation
package memory

import (
	"context"
	"errors"

	"github.com/ethanbaker/memagent/internal/model"
	"github.com/ethanbaker/memagent/internal/toolkits/mem0"
	"github.com/ethanbaker/memagent/pkg/agent"
	"github.com/ethanbaker/memagent/pkg/utils"
	"github.com/nlpodyssey/openai-agents-go/agents"
)

// Name is the display name of the chat agent
const Name = "Memory Master"

// SystemPrompt is the fixed persona of the memory agent
const SystemPrompt = "You are a helpful memory assistant that manages memories using Mem0 cloud storage. " +
	"When you use a tool to help the user, always explain what you did in a conversational way. " +
	"For example, if you add a memory, say something like 'I've stored that information for you!' " +
	"If you retrieve memories, say 'Here's what I found in your memories:' followed by the results. " +
	"If you search, say 'I searched your memories and found:' followed by the results. " +
	"Always be friendly and helpful, and explain what memory operation you performed."

// MemoryAgent chats with the user and manages their Mem0 memories through tools
type MemoryAgent struct {
	agent   *agents.Agent
	config  *utils.Config
	client  *model.Client
	toolkit *mem0.Toolkit
	prompt  string
}

var _ agent.CustomAgent = (*MemoryAgent)(nil)

// NewMemoryAgent creates a new memory agent backed by client and equipped with the toolkit's tools
func NewMemoryAgent(client *model.Client, toolkit *mem0.Toolkit, config *utils.Config) (*MemoryAgent, error) {
	if client == nil {
		return nil, errors.New("model client is required")
	}
	if toolkit == nil {
		return nil, errors.New("memory toolkit is required")
	}
	if config == nil {
		config = utils.NewConfig(nil)
	}

	ma := &MemoryAgent{
		config:  config,
		client:  client,
		toolkit: toolkit,
	}

	scope := toolkit.Scope()
	builder := agent.NewPromptBuilder(SystemPrompt)
	builder.AddFact("Agent ID", scope.AgentID)
	builder.AddFact("User ID", scope.UserID)
	ma.prompt = builder.Build()

	// Create the underlying agent
	ma.agent = agents.New(Name).
		WithInstructions(ma.prompt).
		WithModel(client.ModelName).
		WithModelSettings(client.Settings)

	// Register tools
	toolkit.BindDryRun(ma)
	ma.agent.Tools = toolkit.GetTools()

	return ma, nil
}

// Agent returns the underlying openai-agents-go instance
func (ma *MemoryAgent) Agent() *agents.Agent {
	return ma.agent
}

// ID returns the agent identifier
func (ma *MemoryAgent) ID() string {
	return "memory-agent"
}

// Config returns the agent configuration
func (ma *MemoryAgent) Config() *utils.Config {
	return ma.config
}

// ShouldDryRun determines if the agent should run in dry-run mode
func (ma *MemoryAgent) ShouldDryRun(ctx context.Context) bool {
	return ma.config.GetBool("DRY_RUN")
}

// Model returns the model client the agent runs on
func (ma *MemoryAgent) Model() *model.Client {
	return ma.client
}

// Prompt returns the rendered system prompt
func (ma *MemoryAgent) Prompt() string {
	return ma.prompt
}
