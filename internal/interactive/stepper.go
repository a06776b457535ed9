package interactive

import (
	"context"
	"fmt"
	"time"

	"github.com/ethanbaker/memagent/internal/model"
	"github.com/ethanbaker/memagent/pkg/agent"
	"github.com/google/uuid"
	"github.com/nlpodyssey/openai-agents-go/agents"
	"github.com/nlpodyssey/openai-agents-go/memory"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Stepper answers one user message synchronously
type Stepper interface {
	Step(ctx context.Context, userMessage string) (*Response, error)
}

// StepperFunc adapts a function to the Stepper interface
type StepperFunc func(ctx context.Context, userMessage string) (*Response, error)

// Step calls f
func (f StepperFunc) Step(ctx context.Context, userMessage string) (*Response, error) {
	return f(ctx, userMessage)
}

// AgentStepper runs a custom agent once per user message
type AgentStepper struct {
	agent   agent.CustomAgent
	model   *model.Client
	session memory.Session
	log     zerolog.Logger
}

// NewAgentStepper creates a stepper. The session carries the conversation between steps
func NewAgentStepper(a agent.CustomAgent, client *model.Client, session memory.Session) *AgentStepper {
	return &AgentStepper{
		agent:   a,
		model:   client,
		session: session,
		log:     log.With().Str("component", "stepper").Str("agent", a.ID()).Logger(),
	}
}

// Step executes one agent run
func (s *AgentStepper) Step(ctx context.Context, userMessage string) (*Response, error) {
	turnLog := s.log.With().Str("turn_id", uuid.NewString()).Logger()
	turnLog.Debug().Int("input_length", len(userMessage)).Msg("running agent")

	runner := agents.Runner{
		Config: agents.RunConfig{
			ModelProvider:   s.model.Provider,
			Session:         s.session,
			TracingDisabled: true,
		},
	}

	start := time.Now()
	result, err := runner.Run(ctx, s.agent.Agent(), userMessage)
	if err != nil {
		turnLog.Error().Err(err).Msg("agent execution failed")
		return nil, fmt.Errorf("agent execution failed: %w", err)
	}

	resp := responseFromRun(result.FinalOutput, result.NewItems)
	turnLog.Info().
		Int("tool_calls", len(resp.ToolCalls)).
		Dur("took", time.Since(start)).
		Msg("agent turn complete")

	return resp, nil
}

// responseFromRun pairs tool calls with their outputs by call id, in the order the calls were made
func responseFromRun(finalOutput any, items []agents.RunItem) *Response {
	resp := &Response{Message: messageOf(finalOutput)}
	byCallID := make(map[string]int)

	for _, item := range items {
		switch it := item.(type) {
		case agents.ToolCallItem:
			name, callID := describeToolCall(it.RawItem)
			resp.ToolCalls = append(resp.ToolCalls, ToolCallRecord{ToolName: name})
			if callID != "" {
				byCallID[callID] = len(resp.ToolCalls) - 1
			}

		case agents.ToolCallOutputItem:
			callID := outputCallID(it.RawItem)
			if idx, ok := byCallID[callID]; ok && callID != "" {
				resp.ToolCalls[idx].Result = it.Output
				delete(byCallID, callID)
				continue
			}
			resp.ToolCalls = append(resp.ToolCalls, ToolCallRecord{ToolName: "unknown", Result: it.Output})
		}
	}

	return resp
}

func messageOf(finalOutput any) string {
	switch v := finalOutput.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func describeToolCall(raw any) (name, callID string) {
	if v, ok := raw.(agents.ResponseFunctionToolCall); ok {
		return v.Name, v.CallID
	}
	return "unknown", ""
}

func outputCallID(raw any) string {
	if v, ok := raw.(agents.ResponseInputItemFunctionCallOutputParam); ok {
		return v.CallID
	}
	return ""
}
