package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/ethanbaker/memagent/internal/interactive"
	"github.com/ethanbaker/memagent/internal/model"
	"github.com/ethanbaker/memagent/pkg/utils"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp wires an App around canned config and a scripted stepper
type testApp struct {
	*App
	out       *bytes.Buffer
	builds    int
	platform  model.Platform
	identity  interactive.Identity
	steps     []string
	responses []*interactive.Response
	stepErr   error
	buildErr  error
}

func newTestApp(t *testing.T, values map[string]string, input string) *testApp {
	t.Helper()

	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	ta := &testApp{out: &bytes.Buffer{}}
	ta.App = &App{
		In:  strings.NewReader(input),
		Out: ta.out,
		Err: io.Discard,
		LoadConfig: func(string) *utils.Config {
			return utils.NewConfig(values)
		},
		BuildStepper: func(_ context.Context, _ *utils.Config, platform model.Platform, id interactive.Identity) (interactive.Stepper, error) {
			ta.builds++
			ta.platform = platform
			ta.identity = id
			if ta.buildErr != nil {
				return nil, ta.buildErr
			}
			return interactive.StepperFunc(ta.step), nil
		},
	}
	return ta
}

func (ta *testApp) step(_ context.Context, msg string) (*interactive.Response, error) {
	ta.steps = append(ta.steps, msg)
	if ta.stepErr != nil {
		return nil, ta.stepErr
	}
	if len(ta.responses) == 0 {
		return &interactive.Response{Message: "ok"}, nil
	}
	resp := ta.responses[0]
	ta.responses = ta.responses[1:]
	return resp, nil
}

func TestCredentialValidation(t *testing.T) {
	tests := []struct {
		name    string
		values  map[string]string
		wantErr string
	}{
		{
			name:    "both missing reports mem0 first",
			values:  map[string]string{},
			wantErr: "ERROR: MEM0_API_KEY environment variable not set.\n",
		},
		{
			name:    "mem0 missing",
			values:  map[string]string{"GOOGLE_API_KEY": "g"},
			wantErr: "ERROR: MEM0_API_KEY environment variable not set.\n",
		},
		{
			name:    "google missing",
			values:  map[string]string{"MEM0_API_KEY": "m"},
			wantErr: "ERROR: GOOGLE_API_KEY environment variable not set.\n",
		},
		{
			name:    "empty mem0 key",
			values:  map[string]string{"MEM0_API_KEY": "", "GOOGLE_API_KEY": "g"},
			wantErr: "ERROR: MEM0_API_KEY environment variable not set.\n",
		},
		{
			name:    "openai platform needs openai key",
			values:  map[string]string{"MEM0_API_KEY": "m", "GOOGLE_API_KEY": "g", "MODEL_PLATFORM": "openai"},
			wantErr: "ERROR: OPENAI_API_KEY environment variable not set.\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ta := newTestApp(t, tt.values, "hello\n")

			code := ta.Execute(context.Background(), nil)

			assert.Equal(t, ExitError, code)
			assert.Equal(t, tt.wantErr, ta.out.String())
			assert.Zero(t, ta.builds)
			assert.Empty(t, ta.steps)
		})
	}
}

func TestUnknownPlatform(t *testing.T) {
	ta := newTestApp(t, map[string]string{"MEM0_API_KEY": "m", "GOOGLE_API_KEY": "g", "MODEL_PLATFORM": "llama"}, "")

	code := ta.Execute(context.Background(), nil)

	assert.Equal(t, ExitError, code)
	assert.Contains(t, ta.out.String(), "unsupported model platform")
	assert.Zero(t, ta.builds)
}

func TestSessionQuitsWithoutAgentCall(t *testing.T) {
	ta := newTestApp(t, map[string]string{"MEM0_API_KEY": "m", "GOOGLE_API_KEY": "g"}, "quit\n")

	code := ta.Execute(context.Background(), nil)

	assert.Equal(t, ExitOK, code)
	assert.Equal(t, 1, ta.builds)
	assert.Equal(t, model.PlatformGemini, ta.platform)
	assert.Equal(t, interactive.Identity{AgentID: "demo-agent", UserID: "demo-user"}, ta.identity)
	assert.Empty(t, ta.steps)
	assert.Equal(t,
		"Using agent_id: demo-agent, user_id: demo-user\n"+
			"🧠 Mem0 Cloud Agent is ready! How can I help you with your memories?\n"+
			"> ",
		ta.out.String())
}

func TestRememberTeaScenario(t *testing.T) {
	ta := newTestApp(t, map[string]string{"MEM0_API_KEY": "m", "GOOGLE_API_KEY": "g"}, "Remember that I like tea\nquit\n")
	ta.responses = []*interactive.Response{{
		Message: "I've stored that information for you!",
		ToolCalls: []interactive.ToolCallRecord{
			{ToolName: "add_memory", Result: []any{map[string]any{"event": "ADD", "memory": "Likes tea"}}},
		},
	}}

	code := ta.Execute(context.Background(), nil)

	require.Equal(t, ExitOK, code)
	assert.Equal(t, []string{"Remember that I like tea"}, ta.steps)

	out := ta.out.String()
	assert.Contains(t, out, "🤖 Agent: I've stored that information for you!\n")
	assert.Contains(t, out, "--- Raw Tool Output (for debugging) ---\n")
	assert.Contains(t, out, "Tool 'add_memory':\n")
	assert.Contains(t, out, "--- End Raw Output ---\n")
}

func TestEndOfInputExitsCleanly(t *testing.T) {
	ta := newTestApp(t, map[string]string{"MEM0_API_KEY": "m", "GOOGLE_API_KEY": "g"}, "hi\n")

	code := ta.Execute(context.Background(), nil)

	assert.Equal(t, ExitOK, code)
	assert.Equal(t, []string{"hi"}, ta.steps)
}

func TestStepFailureEndsSession(t *testing.T) {
	ta := newTestApp(t, map[string]string{"MEM0_API_KEY": "m", "GOOGLE_API_KEY": "g"}, "hi\nagain\n")
	ta.stepErr = errors.New("agent execution failed: quota exceeded")

	code := ta.Execute(context.Background(), nil)

	assert.Equal(t, ExitError, code)
	assert.Equal(t, []string{"hi"}, ta.steps)
	assert.True(t, strings.HasSuffix(ta.out.String(), "ERROR: agent execution failed: quota exceeded.\n"))
}

func TestBuildFailure(t *testing.T) {
	ta := newTestApp(t, map[string]string{"MEM0_API_KEY": "m", "GOOGLE_API_KEY": "g"}, "hi\n")
	ta.buildErr = errors.New("failed to create model client: bad option")

	code := ta.Execute(context.Background(), nil)

	assert.Equal(t, ExitError, code)
	assert.Empty(t, ta.steps)
	assert.Equal(t,
		"Using agent_id: demo-agent, user_id: demo-user\n"+
			"ERROR: failed to create model client: bad option.\n",
		ta.out.String())
	assert.NotContains(t, ta.out.String(), "is ready")
}

func TestRootCommand(t *testing.T) {
	t.Run("version flag", func(t *testing.T) {
		ta := newTestApp(t, nil, "")

		code := ta.Execute(context.Background(), []string{"--version"})

		assert.Equal(t, ExitOK, code)
		assert.Contains(t, ta.out.String(), "memagent version "+GetVersion())
		assert.Zero(t, ta.builds)
	})

	t.Run("global flags", func(t *testing.T) {
		cmd := newTestApp(t, nil, "").Command()

		envFlag := cmd.PersistentFlags().Lookup("env-file")
		require.NotNil(t, envFlag)
		assert.Equal(t, ".env", envFlag.DefValue)

		levelFlag := cmd.PersistentFlags().Lookup("log-level")
		require.NotNil(t, levelFlag)
		assert.Equal(t, "warn", levelFlag.DefValue)
	})

	t.Run("positional args rejected", func(t *testing.T) {
		ta := newTestApp(t, map[string]string{"MEM0_API_KEY": "m", "GOOGLE_API_KEY": "g"}, "")

		code := ta.Execute(context.Background(), []string{"extra"})

		assert.Equal(t, ExitError, code)
		assert.Zero(t, ta.builds)
	})
}

func TestEnvFileFlagIsPassedToLoader(t *testing.T) {
	ta := newTestApp(t, nil, "")
	var got string
	ta.LoadConfig = func(envFile string) *utils.Config {
		got = envFile
		return utils.NewConfig(nil)
	}

	ta.Execute(context.Background(), []string{"--env-file", "custom.env"})

	assert.Equal(t, "custom.env", got)
}
