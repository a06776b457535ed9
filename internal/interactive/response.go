package interactive

// ToolCallRecord is one tool invocation made while answering a turn
type ToolCallRecord struct {
	ToolName string
	Result   any
}

// Response is the agent's answer to one user message
type Response struct {
	Message   string
	ToolCalls []ToolCallRecord
}

// HasToolCalls reports whether any tool ran during the turn
func (r *Response) HasToolCalls() bool {
	return r != nil && len(r.ToolCalls) > 0
}
