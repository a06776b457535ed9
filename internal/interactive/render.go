package interactive

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Renderer prints the console protocol. Colors are dropped when the output is not a terminal
type Renderer struct {
	out io.Writer

	errorStyle  *color.Color
	bannerStyle *color.Color
	faintStyle  *color.Color
	agentStyle  *color.Color
	toolStyle   *color.Color
	resultStyle *color.Color
}

// NewRenderer creates a renderer writing to out
func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{
		out:         out,
		errorStyle:  color.New(color.FgRed, color.Bold),
		bannerStyle: color.New(color.FgGreen, color.Bold),
		faintStyle:  color.New(color.Faint),
		agentStyle:  color.New(color.FgGreen),
		toolStyle:   color.New(color.FgYellow),
		resultStyle: color.New(color.FgCyan),
	}
}

// Error prints a fatal startup or runtime error
func (r *Renderer) Error(err error) {
	r.errorStyle.Fprintf(r.out, "ERROR: %s.", err)
	fmt.Fprintln(r.out)
}

// Identity prints the agent/user pair the session is scoped to
func (r *Renderer) Identity(id Identity) {
	r.faintStyle.Fprintf(r.out, "Using agent_id: %s, user_id: %s", id.AgentID, id.UserID)
	fmt.Fprintln(r.out)
}

// Ready announces that the agent has been built
func (r *Renderer) Ready() {
	r.bannerStyle.Fprint(r.out, "🧠 Mem0 Cloud Agent is ready! How can I help you with your memories?")
	fmt.Fprintln(r.out)
}

// Prompt prints the input prompt
func (r *Renderer) Prompt() {
	fmt.Fprint(r.out, "> ")
}

// Response prints the agent message, then the raw tool results when any tool ran
func (r *Renderer) Response(resp *Response) {
	message := ""
	if resp != nil {
		message = resp.Message
	}

	r.agentStyle.Fprint(r.out, "🤖 Agent:")
	fmt.Fprintf(r.out, " %s\n", message)

	if !resp.HasToolCalls() {
		return
	}

	fmt.Fprintln(r.out)
	r.faintStyle.Fprint(r.out, "--- Raw Tool Output (for debugging) ---")
	fmt.Fprintln(r.out)
	for _, call := range resp.ToolCalls {
		r.toolStyle.Fprintf(r.out, "Tool '%s':", call.ToolName)
		fmt.Fprintln(r.out)
		r.resultStyle.Fprint(r.out, "Raw Result:")
		fmt.Fprintf(r.out, " %s\n", formatResult(call.Result))
	}
	r.faintStyle.Fprint(r.out, "--- End Raw Output ---")
	fmt.Fprint(r.out, "\n\n")
}

// formatResult prints strings verbatim and everything else as JSON
func formatResult(result any) string {
	switch v := result.(type) {
	case nil:
		return "null"
	case string:
		return v
	case error:
		return v.Error()
	case fmt.Stringer:
		return v.String()
	}

	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Sprintf("%v", result)
	}
	return string(raw)
}
