package interactive

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// State of the conversation loop
type State int

const (
	StateAwaitingInput State = iota
	StateProcessing
	StateRendering
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateAwaitingInput:
		return "awaiting_input"
	case StateProcessing:
		return "processing"
	case StateRendering:
		return "rendering"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// maxLineSize bounds a single line of user input
const maxLineSize = 1024 * 1024

// IsExitCommand reports whether input ends the session
func IsExitCommand(input string) bool {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "exit", "quit":
		return true
	default:
		return false
	}
}

// Loop reads user messages, hands each one to a Stepper and renders the answer
type Loop struct {
	in       io.Reader
	renderer *Renderer
	stepper  Stepper
	state    State
	onState  func(State)
	log      zerolog.Logger
}

// LoopOption customizes a Loop
type LoopOption func(*Loop)

// WithStateHook registers fn to observe every state transition
func WithStateHook(fn func(State)) LoopOption {
	return func(l *Loop) {
		l.onState = fn
	}
}

// NewLoop creates a loop reading from in and writing through renderer
func NewLoop(in io.Reader, renderer *Renderer, stepper Stepper, opts ...LoopOption) *Loop {
	l := &Loop{
		in:       in,
		renderer: renderer,
		stepper:  stepper,
		state:    StateAwaitingInput,
		log:      log.With().Str("component", "loop").Logger(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// State returns the current state
func (l *Loop) State() State {
	return l.state
}

func (l *Loop) transition(s State) {
	l.state = s
	if l.onState != nil {
		l.onState(s)
	}
}

// Run blocks until the user exits, input ends or a step fails. A step error
// is returned unchanged and ends the session
func (l *Loop) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(l.in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for {
		l.transition(StateAwaitingInput)
		l.renderer.Prompt()

		if !scanner.Scan() {
			l.transition(StateStopped)
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("error reading input: %w", err)
			}
			l.log.Debug().Msg("end of input")
			return nil
		}

		input := scanner.Text()
		if IsExitCommand(input) {
			l.transition(StateStopped)
			return nil
		}

		l.transition(StateProcessing)
		resp, err := l.stepper.Step(ctx, input)
		if err != nil {
			l.transition(StateStopped)
			return err
		}

		l.transition(StateRendering)
		l.renderer.Response(resp)
	}
}
