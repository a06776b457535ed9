package cli

import (
	"context"
	"testing"

	"github.com/ethanbaker/memagent/internal/interactive"
	"github.com/ethanbaker/memagent/internal/model"
	"github.com/ethanbaker/memagent/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildAgentStepper(t *testing.T) {
	cfg := utils.NewConfig(map[string]string{
		"MEM0_API_KEY":         "m",
		"GOOGLE_API_KEY":       "g",
		"MEM0_TIMEOUT_SECONDS": "5",
	})

	stepper, err := BuildAgentStepper(context.Background(), cfg, model.PlatformGemini, interactive.DefaultIdentity())
	require.NoError(t, err)
	assert.IsType(t, &interactive.AgentStepper{}, stepper)
}

func TestBuildAgentStepperOpenAI(t *testing.T) {
	cfg := utils.NewConfig(map[string]string{
		"MEM0_API_KEY":    "m",
		"OPENAI_API_KEY":  "o",
		"OPENAI_BASE_URL": "http://localhost:1234/v1",
	})

	stepper, err := BuildAgentStepper(context.Background(), cfg, model.PlatformOpenAI, interactive.DefaultIdentity())
	require.NoError(t, err)
	assert.NotNil(t, stepper)
}

func TestBuildAgentStepperMissingMem0Key(t *testing.T) {
	cfg := utils.NewConfig(map[string]string{"GOOGLE_API_KEY": "g"})

	_, err := BuildAgentStepper(context.Background(), cfg, model.PlatformGemini, interactive.DefaultIdentity())
	assert.ErrorContains(t, err, "failed to create mem0 client")
}
