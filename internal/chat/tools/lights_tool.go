package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/acai-travel/lights-assistant/internal/lights"
	"github.com/openai/openai-go/v2"
)

// NewLightsRegistry creates a registry exposing reg to the model
func NewLightsRegistry(reg *lights.Registry) *Registry {
	registry := NewRegistry()
	registry.Register(NewGetLightsTool(reg))
	registry.Register(NewChangeStateTool(reg))
	return registry
}

// GetLightsTool lists the lights and their current state
type GetLightsTool struct {
	lights *lights.Registry
}

// NewGetLightsTool creates a new get_lights tool
func NewGetLightsTool(reg *lights.Registry) *GetLightsTool {
	return &GetLightsTool{lights: reg}
}

func (t *GetLightsTool) Name() string {
	return "get_lights"
}

func (t *GetLightsTool) Definition() openai.ChatCompletionToolUnionParam {
	return openai.ChatCompletionFunctionTool(openai.FunctionDefinitionParam{
		Name:        t.Name(),
		Description: openai.String("Gets a list of lights and their current state"),
		Parameters: openai.FunctionParameters{
			"type":       "object",
			"properties": map[string]any{},
		},
	})
}

func (t *GetLightsTool) Execute(ctx context.Context, arguments string) (string, error) {
	out, err := json.Marshal(t.lights.List(ctx))
	if err != nil {
		return "", fmt.Errorf("failed to encode lights: %w", err)
	}
	return string(out), nil
}

// ChangeStateTool switches a single light on or off
type ChangeStateTool struct {
	lights *lights.Registry
}

// NewChangeStateTool creates a new change_state tool
func NewChangeStateTool(reg *lights.Registry) *ChangeStateTool {
	return &ChangeStateTool{lights: reg}
}

func (t *ChangeStateTool) Name() string {
	return "change_state"
}

func (t *ChangeStateTool) Definition() openai.ChatCompletionToolUnionParam {
	return openai.ChatCompletionFunctionTool(openai.FunctionDefinitionParam{
		Name:        t.Name(),
		Description: openai.String("Changes the state of the light"),
		Parameters: openai.FunctionParameters{
			"type": "object",
			"properties": map[string]any{
				"id": map[string]string{
					"type":        "integer",
					"description": "The ID of the light to change",
				},
				"isOn": map[string]string{
					"type":        "boolean",
					"description": "The new state of the light",
				},
			},
			"required": []string{"id", "isOn"},
		},
	})
}

func (t *ChangeStateTool) Execute(ctx context.Context, arguments string) (string, error) {
	var payload struct {
		ID   *int  `json:"id"`
		IsOn *bool `json:"isOn"`
	}

	if err := json.Unmarshal([]byte(arguments), &payload); err != nil {
		return "", fmt.Errorf("failed to parse arguments: %w", err)
	}
	if payload.ID == nil || payload.IsOn == nil {
		return "", errors.New("both id and isOn are required")
	}

	light, err := t.lights.SetState(ctx, *payload.ID, *payload.IsOn)
	if err != nil {
		return "", err
	}

	out, err := json.Marshal(light)
	if err != nil {
		return "", fmt.Errorf("failed to encode light: %w", err)
	}
	return string(out), nil
}
