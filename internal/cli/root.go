// Package cli implements the memagent command line.
package cli

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/ethanbaker/memagent/internal/interactive"
	"github.com/ethanbaker/memagent/internal/logger"
	"github.com/ethanbaker/memagent/internal/model"
	"github.com/ethanbaker/memagent/pkg/agent"
	"github.com/ethanbaker/memagent/pkg/utils"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

// Exit statuses of the process
const (
	ExitOK    = 0
	ExitError = 1
)

// StepperBuilder wires the components behind the conversation loop
type StepperBuilder func(ctx context.Context, cfg *utils.Config, platform model.Platform, id interactive.Identity) (interactive.Stepper, error)

// App holds the process-level collaborators of the command
type App struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer

	// LoadConfig reads configuration given the --env-file value
	LoadConfig func(envFile string) *utils.Config

	// BuildStepper is only called after every credential has been validated
	BuildStepper StepperBuilder
}

// NewApp returns an App bound to the process stdio and the real components
func NewApp() *App {
	return &App{
		In:  os.Stdin,
		Out: os.Stdout,
		Err: os.Stderr,
		LoadConfig: func(envFile string) *utils.Config {
			return agent.LoadAgentConfig("memory", envFile)
		},
		BuildStepper: BuildAgentStepper,
	}
}

// Execute runs the command line with process arguments and returns the exit status
func Execute() int {
	return NewApp().Execute(context.Background(), os.Args[1:])
}

// Execute runs the root command with args and maps the outcome to an exit status
func (a *App) Execute(ctx context.Context, args []string) int {
	cmd := a.Command()
	cmd.SetArgs(args)

	if err := cmd.ExecuteContext(ctx); err != nil {
		interactive.NewRenderer(a.Out).Error(err)
		return ExitError
	}
	return ExitOK
}

// Command builds the root command
func (a *App) Command() *cobra.Command {
	var (
		envFile  string
		logLevel string
	)

	cmd := &cobra.Command{
		Use:   "memagent",
		Short: "Memagent - chat with an agent that manages your Mem0 memories",
		Long: `Memagent runs an interactive console session with a chat agent that can
store, retrieve, search and delete memories in the Mem0 cloud platform.
Type 'exit' or 'quit' to leave.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.Context(), envFile, logLevel, cmd.Flags().Changed("log-level"))
		},
	}

	cmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	cmd.SetIn(a.In)
	cmd.SetOut(a.Out)
	cmd.SetErr(a.Err)
	cmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
`)

	return cmd
}

// run validates the credentials, wires the agent and blocks in the conversation loop
func (a *App) run(ctx context.Context, envFile, logLevel string, levelFromFlag bool) error {
	cfg := a.LoadConfig(envFile)

	if !levelFromFlag {
		logLevel = cfg.GetWithDefault("LOG_LEVEL", logLevel)
	}
	logCfg := logger.DefaultConfig()
	logCfg.Level = strings.ToLower(logLevel)
	logCfg.Out = a.Err
	logger.New(logCfg)
	log := logger.Component("cli")

	platform, err := validate(cfg)
	if err != nil {
		return err
	}

	id := interactive.DefaultIdentity()
	renderer := interactive.NewRenderer(a.Out)
	renderer.Identity(id)

	stepper, err := a.BuildStepper(ctx, cfg, platform, id)
	if err != nil {
		return err
	}
	renderer.Ready()

	log.Info().Str("platform", string(platform)).Str("agent_id", id.AgentID).Msg("session started")
	return interactive.NewLoop(a.In, renderer, stepper).Run(ctx)
}

// validate checks MEM0_API_KEY first, then the credential of the selected model platform
func validate(cfg *utils.Config) (model.Platform, error) {
	if err := cfg.Require("MEM0_API_KEY"); err != nil {
		return "", err
	}

	platform, err := model.ParsePlatform(cfg.Get("MODEL_PLATFORM"))
	if err != nil {
		return "", err
	}

	if err := cfg.Require(platform.CredentialKey()); err != nil {
		return "", err
	}
	return platform, nil
}

// GetVersion returns the current version
func GetVersion() string {
	return version
}
