package mem0

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nlpodyssey/openai-agents-go/agents"
	"github.com/openai/openai-go/v2/packages/param"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Tool names, in the order GetTools returns them
const (
	ToolAddMemory        = "add_memory"
	ToolRetrieveMemories = "retrieve_memories"
	ToolSearchMemories   = "search_memories"
	ToolDeleteMemories   = "delete_memories"
)

// Backend is the part of the Mem0 API the toolkit depends on
type Backend interface {
	Add(ctx context.Context, content string, scope Scope, metadata map[string]any) (any, error)
	GetAll(ctx context.Context, scope Scope) (any, error)
	Search(ctx context.Context, query string, scope Scope, limit int) (any, error)
	DeleteAll(ctx context.Context, scope Scope) (any, error)
}

// DryRunner decides whether tools may touch Mem0. Agents owning the toolkit implement it
type DryRunner interface {
	ShouldDryRun(ctx context.Context) bool
}

// Toolkit binds a Mem0 backend to one agent/user scope
type Toolkit struct {
	backend Backend
	scope   Scope
	owner   DryRunner
	log     zerolog.Logger
}

// NewToolkit creates a toolkit whose tools always act on agentID/userID
func NewToolkit(backend Backend, agentID, userID string) *Toolkit {
	return &Toolkit{
		backend: backend,
		scope:   Scope{AgentID: agentID, UserID: userID},
		log:     log.With().Str("component", "mem0-toolkit").Logger(),
	}
}

// BindDryRun makes the tools ask owner before every Mem0 call
func (t *Toolkit) BindDryRun(owner DryRunner) {
	t.owner = owner
}

func (t *Toolkit) dryRun(ctx context.Context) bool {
	return t.owner != nil && t.owner.ShouldDryRun(ctx)
}

// Scope returns the agent/user pair the tools are bound to
func (t *Toolkit) Scope() Scope {
	return t.scope
}

// GetTools returns the memory tools for the chat agent
func (t *Toolkit) GetTools() []agents.Tool {
	addMemoryTool := agents.FunctionTool{
		Name:        ToolAddMemory,
		Description: "Store a new memory in Mem0 cloud storage for the current agent and user",
		ParamsJSONSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"content": map[string]any{
					"type":        "string",
					"description": "The information to remember",
				},
			},
			"additionalProperties": false,
			"required":             []string{"content"},
		},
		StrictJSONSchema: param.NewOpt(true),
		OnInvokeTool: func(ctx context.Context, arguments string) (any, error) {
			return t.handleAddMemory(ctx, arguments)
		},
		IsEnabled: agents.FunctionToolEnabled(),
	}

	retrieveMemoriesTool := agents.FunctionTool{
		Name:        ToolRetrieveMemories,
		Description: "Retrieve all memories stored for the current agent and user",
		ParamsJSONSchema: map[string]any{
			"type":                 "object",
			"properties":           map[string]any{},
			"additionalProperties": false,
			"required":             []string{},
		},
		StrictJSONSchema: param.NewOpt(true),
		OnInvokeTool: func(ctx context.Context, arguments string) (any, error) {
			return t.handleRetrieveMemories(ctx, arguments)
		},
		IsEnabled: agents.FunctionToolEnabled(),
	}

	searchMemoriesTool := agents.FunctionTool{
		Name:        ToolSearchMemories,
		Description: "Search the memories of the current agent and user for information relevant to a query",
		ParamsJSONSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "What to look for in the stored memories",
				},
			},
			"additionalProperties": false,
			"required":             []string{"query"},
		},
		StrictJSONSchema: param.NewOpt(true),
		OnInvokeTool: func(ctx context.Context, arguments string) (any, error) {
			return t.handleSearchMemories(ctx, arguments)
		},
		IsEnabled: agents.FunctionToolEnabled(),
	}

	deleteMemoriesTool := agents.FunctionTool{
		Name:        ToolDeleteMemories,
		Description: "Delete every memory stored for the current agent and user",
		ParamsJSONSchema: map[string]any{
			"type":                 "object",
			"properties":           map[string]any{},
			"additionalProperties": false,
			"required":             []string{},
		},
		StrictJSONSchema: param.NewOpt(true),
		OnInvokeTool: func(ctx context.Context, arguments string) (any, error) {
			return t.handleDeleteMemories(ctx, arguments)
		},
		IsEnabled: agents.FunctionToolEnabled(),
	}

	return []agents.Tool{
		addMemoryTool,
		retrieveMemoriesTool,
		searchMemoriesTool,
		deleteMemoriesTool,
	}
}

// handleAddMemory stores one memory
func (t *Toolkit) handleAddMemory(ctx context.Context, arguments string) (any, error) {
	var params struct {
		Content string `json:"content"`
	}
	if err := json.Unmarshal([]byte(arguments), &params); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}

	content := strings.TrimSpace(params.Content)
	if content == "" {
		return nil, fmt.Errorf("content parameter is required")
	}

	if t.dryRun(ctx) {
		return map[string]any{
			"message": "DRY RUN: Would add memory",
			"content": content,
		}, nil
	}

	t.log.Debug().Str("tool", ToolAddMemory).Msg("adding memory")
	return t.backend.Add(ctx, content, t.scope, nil)
}

// handleRetrieveMemories lists every memory in scope
func (t *Toolkit) handleRetrieveMemories(ctx context.Context, arguments string) (any, error) {
	if err := checkNoArguments(arguments); err != nil {
		return nil, err
	}

	if t.dryRun(ctx) {
		return map[string]any{
			"message": "DRY RUN: Would retrieve all memories",
		}, nil
	}

	t.log.Debug().Str("tool", ToolRetrieveMemories).Msg("retrieving memories")
	return t.backend.GetAll(ctx, t.scope)
}

// handleSearchMemories runs a semantic search in scope
func (t *Toolkit) handleSearchMemories(ctx context.Context, arguments string) (any, error) {
	var params struct {
		Query string `json:"query"`
	}
	if err := json.Unmarshal([]byte(arguments), &params); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}

	query := strings.TrimSpace(params.Query)
	if query == "" {
		return nil, fmt.Errorf("query parameter is required")
	}

	if t.dryRun(ctx) {
		return map[string]any{
			"message": "DRY RUN: Would search memories",
			"query":   query,
		}, nil
	}

	t.log.Debug().Str("tool", ToolSearchMemories).Msg("searching memories")
	return t.backend.Search(ctx, query, t.scope, 0)
}

// handleDeleteMemories removes every memory in scope
func (t *Toolkit) handleDeleteMemories(ctx context.Context, arguments string) (any, error) {
	if err := checkNoArguments(arguments); err != nil {
		return nil, err
	}

	if t.dryRun(ctx) {
		return map[string]any{
			"message": "DRY RUN: Would delete all memories",
		}, nil
	}

	t.log.Debug().Str("tool", ToolDeleteMemories).Msg("deleting memories")
	return t.backend.DeleteAll(ctx, t.scope)
}

// checkNoArguments accepts an empty string or any JSON object
func checkNoArguments(arguments string) error {
	if strings.TrimSpace(arguments) == "" {
		return nil
	}
	var params map[string]any
	if err := json.Unmarshal([]byte(arguments), &params); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}
