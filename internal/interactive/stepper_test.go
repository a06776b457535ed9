package interactive

import (
	"context"
	"testing"

	"github.com/nlpodyssey/openai-agents-go/agents"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseFromRun(t *testing.T) {
	t.Run("no tool calls", func(t *testing.T) {
		resp := responseFromRun("Hello there", nil)
		assert.Equal(t, "Hello there", resp.Message)
		assert.False(t, resp.HasToolCalls())
	})

	t.Run("nil final output", func(t *testing.T) {
		resp := responseFromRun(nil, nil)
		assert.Equal(t, "", resp.Message)
	})

	t.Run("non string final output", func(t *testing.T) {
		resp := responseFromRun(42, nil)
		assert.Equal(t, "42", resp.Message)
	})

	t.Run("pairs calls with outputs in call order", func(t *testing.T) {
		items := []agents.RunItem{
			agents.ToolCallItem{RawItem: agents.ResponseFunctionToolCall{Name: "add_memory", CallID: "call_1"}},
			agents.ToolCallItem{RawItem: agents.ResponseFunctionToolCall{Name: "search_memories", CallID: "call_2"}},
			agents.ToolCallOutputItem{
				RawItem: agents.ResponseInputItemFunctionCallOutputParam{CallID: "call_2"},
				Output:  "found tea",
			},
			agents.ToolCallOutputItem{
				RawItem: agents.ResponseInputItemFunctionCallOutputParam{CallID: "call_1"},
				Output:  map[string]any{"event": "ADD"},
			},
		}

		resp := responseFromRun("done", items)

		require.Len(t, resp.ToolCalls, 2)
		assert.Equal(t, ToolCallRecord{ToolName: "add_memory", Result: map[string]any{"event": "ADD"}}, resp.ToolCalls[0])
		assert.Equal(t, ToolCallRecord{ToolName: "search_memories", Result: "found tea"}, resp.ToolCalls[1])
	})

	t.Run("orphan output", func(t *testing.T) {
		items := []agents.RunItem{
			agents.ToolCallOutputItem{
				RawItem: agents.ResponseInputItemFunctionCallOutputParam{CallID: "call_9"},
				Output:  "x",
			},
		}

		resp := responseFromRun("done", items)

		require.Len(t, resp.ToolCalls, 1)
		assert.Equal(t, "unknown", resp.ToolCalls[0].ToolName)
		assert.Equal(t, "x", resp.ToolCalls[0].Result)
	})
}

func TestStepperFunc(t *testing.T) {
	var got string
	stepper := StepperFunc(func(_ context.Context, msg string) (*Response, error) {
		got = msg
		return &Response{Message: "echo"}, nil
	})

	resp, err := stepper.Step(context.Background(), "ping")
	require.NoError(t, err)
	assert.Equal(t, "ping", got)
	assert.Equal(t, "echo", resp.Message)
}

func TestDefaultIdentity(t *testing.T) {
	id := DefaultIdentity()
	assert.Equal(t, "demo-agent", id.AgentID)
	assert.Equal(t, "demo-user", id.UserID)
	assert.Equal(t, id, DefaultIdentity())
}
