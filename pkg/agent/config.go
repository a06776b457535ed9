package agent

import "github.com/ethanbaker/memagent/pkg/utils"

// LoadAgentConfig loads configuration for a specific agent
// It tries to load agent-specific .env file first, then falls back to the global env file
func LoadAgentConfig(agentName, globalEnvFile string) *utils.Config {
	if globalEnvFile == "" {
		globalEnvFile = ".env"
	}
	agentEnvFile := ".env." + agentName
	return utils.NewConfigFromEnv(agentEnvFile, globalEnvFile)
}
