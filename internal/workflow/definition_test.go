package workflow_test

import (
	"errors"
	"testing"

	"github.com/qitae/go-approval/internal/domain"
	"github.com/qitae/go-approval/internal/runtimeconfig"
	"github.com/qitae/go-approval/internal/workflow"
)

func approvalDefinition() runtimeconfig.WorkflowDefinitionConfig {
	return runtimeconfig.WorkflowDefinitionConfig{
		States: []runtimeconfig.WorkflowStateConfig{
			{Name: "draft", Description: "Draft content"},
			{Name: "in_review", Description: "Waiting for review"},
			{Name: "published", Description: "Live", Terminal: true},
		},
		Transitions: []runtimeconfig.WorkflowTransitionConfig{
			{Name: "submit", From: "draft", To: "in_review"},
			{Name: "approve", From: "in_review", To: "published"},
			{Name: "revert", From: "in_review", To: "draft"},
		},
	}
}

func TestCompileDefinition_Success(t *testing.T) {
	engine, err := workflow.CompileDefinition(approvalDefinition())
	if err != nil {
		t.Fatalf("CompileDefinition returned error: %v", err)
	}

	if !engine.IsValidTransition(domain.StatusDraft, domain.StatusInReview) {
		t.Fatal("expected draft -> in_review to be valid")
	}
	if !engine.IsValidTransition(domain.StatusInReview, domain.StatusDraft) {
		t.Fatal("expected in_review -> draft to be valid")
	}
	if engine.IsValidTransition(domain.StatusPublished, domain.StatusDraft) {
		t.Fatal("expected terminal published to have no outbound edges")
	}
	if engine.IsValidTransition(domain.StatusDraft, domain.StatusPublished) {
		t.Fatal("expected no draft -> published edge")
	}
}

func TestCompileDefinition_CustomGraphLeavesGuardsFixed(t *testing.T) {
	cfg := approvalDefinition()
	cfg.Transitions = append(cfg.Transitions, runtimeconfig.WorkflowTransitionConfig{
		Name: "fast_track", From: "draft", To: "published",
	})
	cfg.States[2].Terminal = false

	engine, err := workflow.CompileDefinition(cfg)
	if err != nil {
		t.Fatalf("CompileDefinition returned error: %v", err)
	}
	if !engine.IsValidTransition(domain.StatusDraft, domain.StatusPublished) {
		t.Fatal("expected custom fast_track edge to be valid")
	}
	// Role gating is not configuration driven.
	if engine.CanPerformAction(domain.RoleEditor, domain.ActionApprovePublish, domain.StatusInReview) {
		t.Fatal("custom definition must not grant editor approve rights")
	}
}

func TestCompileDefinition_Failures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*runtimeconfig.WorkflowDefinitionConfig)
		wantErr error
	}{
		{
			"no states",
			func(cfg *runtimeconfig.WorkflowDefinitionConfig) { cfg.States = nil },
			workflow.ErrDefinitionStatesRequired,
		},
		{
			"blank state name",
			func(cfg *runtimeconfig.WorkflowDefinitionConfig) { cfg.States[0].Name = "  " },
			workflow.ErrStateNameRequired,
		},
		{
			"duplicate state",
			func(cfg *runtimeconfig.WorkflowDefinitionConfig) { cfg.States[1].Name = "Draft" },
			workflow.ErrDuplicateState,
		},
		{
			"unnamed transition",
			func(cfg *runtimeconfig.WorkflowDefinitionConfig) { cfg.Transitions[0].Name = "" },
			workflow.ErrTransitionNameRequired,
		},
		{
			"unknown from state",
			func(cfg *runtimeconfig.WorkflowDefinitionConfig) { cfg.Transitions[0].From = "archived" },
			workflow.ErrTransitionStateUnknown,
		},
		{
			"unknown to state",
			func(cfg *runtimeconfig.WorkflowDefinitionConfig) { cfg.Transitions[0].To = "archived" },
			workflow.ErrTransitionStateUnknown,
		},
		{
			"duplicate edge",
			func(cfg *runtimeconfig.WorkflowDefinitionConfig) {
				cfg.Transitions = append(cfg.Transitions, runtimeconfig.WorkflowTransitionConfig{
					Name: "submit_again", From: "draft", To: "in_review",
				})
			},
			workflow.ErrDuplicateTransition,
		},
		{
			"terminal outbound",
			func(cfg *runtimeconfig.WorkflowDefinitionConfig) {
				cfg.Transitions = append(cfg.Transitions, runtimeconfig.WorkflowTransitionConfig{
					Name: "unpublish", From: "published", To: "draft",
				})
			},
			workflow.ErrTerminalStateOutbound,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := approvalDefinition()
			tc.mutate(&cfg)
			_, err := workflow.CompileDefinition(cfg)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestFromConfig_DefaultsWithoutDefinition(t *testing.T) {
	engine, err := workflow.FromConfig(runtimeconfig.WorkflowConfig{})
	if err != nil {
		t.Fatalf("FromConfig returned error: %v", err)
	}
	if engine != workflow.Default() {
		t.Fatal("expected the default engine when no definition is configured")
	}
}
