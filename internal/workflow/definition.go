package workflow

import (
	"errors"
	"fmt"
	"strings"

	"github.com/qitae/go-approval/internal/domain"
	"github.com/qitae/go-approval/internal/runtimeconfig"
)

var (
	// ErrDefinitionStatesRequired indicates the definition does not declare any states.
	ErrDefinitionStatesRequired = errors.New("workflow: definition requires at least one state")
	// ErrStateNameRequired indicates a workflow state is missing its name.
	ErrStateNameRequired = errors.New("workflow: state name required")
	// ErrDuplicateState indicates duplicate workflow state names were declared.
	ErrDuplicateState = errors.New("workflow: duplicate state")
	// ErrTransitionNameRequired indicates a transition lacks a name.
	ErrTransitionNameRequired = errors.New("workflow: transition name required")
	// ErrTransitionStateUnknown indicates a transition references a state that was not declared.
	ErrTransitionStateUnknown = errors.New("workflow: transition references unknown state")
	// ErrDuplicateTransition indicates the same edge is declared multiple times.
	ErrDuplicateTransition = errors.New("workflow: duplicate transition")
	// ErrTerminalStateOutbound indicates a terminal state declares an outbound edge.
	ErrTerminalStateOutbound = errors.New("workflow: terminal state cannot declare outbound transitions")
)

// CompileDefinition converts a configuration-driven transition table into
// an Engine after validating state and transition integrity. Custom
// definitions govern IsValidTransition only; the role and action guards
// stay fixed, since they encode who may request a change rather than
// which changes exist.
func CompileDefinition(cfg runtimeconfig.WorkflowDefinitionConfig) (*Engine, error) {
	if len(cfg.States) == 0 {
		return nil, ErrDefinitionStatesRequired
	}

	states := make(map[domain.Status]bool, len(cfg.States))
	for idx, state := range cfg.States {
		name := strings.TrimSpace(state.Name)
		if name == "" {
			return nil, fmt.Errorf("%w at index %d", ErrStateNameRequired, idx)
		}
		normalized := domain.NormalizeStatus(name)
		if _, exists := states[normalized]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateState, normalized)
		}
		states[normalized] = state.Terminal
	}

	transitions := make(map[domain.Status][]domain.Status, len(states))
	for status := range states {
		transitions[status] = nil
	}

	seen := make(map[string]struct{}, len(cfg.Transitions))
	for idx, transition := range cfg.Transitions {
		if strings.TrimSpace(transition.Name) == "" {
			return nil, fmt.Errorf("%w at index %d", ErrTransitionNameRequired, idx)
		}

		from := domain.NormalizeStatus(transition.From)
		to := domain.NormalizeStatus(transition.To)
		if _, ok := states[from]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrTransitionStateUnknown, from)
		}
		if _, ok := states[to]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrTransitionStateUnknown, to)
		}
		if states[from] {
			return nil, fmt.Errorf("%w: %s", ErrTerminalStateOutbound, from)
		}

		key := string(from) + "::" + string(to)
		if _, exists := seen[key]; exists {
			return nil, fmt.Errorf("%w: %s -> %s", ErrDuplicateTransition, from, to)
		}
		seen[key] = struct{}{}

		transitions[from] = append(transitions[from], to)
	}

	return &Engine{transitions: transitions}, nil
}

// FromConfig resolves the engine for the supplied workflow configuration,
// falling back to the default transition graph when no custom definition
// is declared.
func FromConfig(cfg runtimeconfig.WorkflowConfig) (*Engine, error) {
	if cfg.Definition == nil {
		return Default(), nil
	}
	return CompileDefinition(*cfg.Definition)
}
