package server

import (
	"testing"
)

// toolByName returns the definition of the named tool or fails the test.
func toolByName(t *testing.T, name string) Tool {
	t.Helper()
	for _, tool := range GetToolDefinitions() {
		if tool.Name == name {
			return tool
		}
	}
	t.Fatalf("%s tool not found", name)
	return Tool{}
}

func requiredParams(t *testing.T, tool Tool) map[string]bool {
	t.Helper()
	required, ok := tool.InputSchema["required"].([]string)
	if !ok {
		t.Fatalf("%s: required should be a string slice", tool.Name)
	}
	set := make(map[string]bool)
	for _, r := range required {
		set[r] = true
	}
	return set
}

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	expectedTools := []string{
		"image_load",
		"image_stats",
		"image_locate",
		"image_blur",
		"image_negative",
		"image_threshold",
		"image_brighten",
		"image_rotate",
		"image_mirror",
		"image_crop",
		"image_paste",
		"image_blend",
		"image_create",
		"image_import",
		"image_export",
	}

	if len(tools) != len(expectedTools) {
		t.Errorf("Tool count: got %d, want %d", len(tools), len(expectedTools))
	}

	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		if _, dup := toolMap[tool.Name]; dup {
			t.Errorf("Duplicate tool %s", tool.Name)
		}
		toolMap[tool.Name] = tool
	}

	for _, name := range expectedTools {
		if _, ok := toolMap[name]; !ok {
			t.Errorf("Expected tool %s not found", name)
		}
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}
			if tool.InputSchema["type"] != "object" {
				t.Errorf("InputSchema type: got %v, want 'object'", tool.InputSchema["type"])
			}

			props, ok := tool.InputSchema["properties"].(map[string]interface{})
			if !ok {
				t.Fatal("InputSchema properties should be a map")
			}

			// Every required parameter must be described.
			for name := range requiredParams(t, tool) {
				if _, ok := props[name]; !ok {
					t.Errorf("required parameter %s has no property", name)
				}
			}
		})
	}
}

func TestToolDefinitions_RequiredPath(t *testing.T) {
	// Everything but the tools that create a file from scratch reads a PGM.
	noPath := map[string]bool{"image_create": true, "image_import": true}

	for _, tool := range GetToolDefinitions() {
		if noPath[tool.Name] {
			continue
		}
		t.Run(tool.Name, func(t *testing.T) {
			if !requiredParams(t, tool)["path"] {
				t.Error("Tool should require 'path' parameter")
			}
		})
	}
}

func TestToolDefinitions_CropRectangle(t *testing.T) {
	required := requiredParams(t, toolByName(t, "image_crop"))

	for _, name := range []string{"path", "x", "y", "width", "height"} {
		if !required[name] {
			t.Errorf("image_crop should require '%s' parameter", name)
		}
	}
	if required["output"] {
		t.Error("image_crop output should be optional")
	}
}

func TestToolDefinitions_OptionalDefaults(t *testing.T) {
	toolDefaults := map[string]map[string]interface{}{
		"image_blend":  {"alpha": 0.5},
		"image_create": {"maxval": 255},
		"image_import": {"method": "bt601"},
		"image_export": {"scale": 1.0},
	}

	for toolName, expectedDefaults := range toolDefaults {
		tool := toolByName(t, toolName)
		props := tool.InputSchema["properties"].(map[string]interface{})

		for paramName, expected := range expectedDefaults {
			param, ok := props[paramName].(map[string]interface{})
			if !ok {
				t.Errorf("%s.%s: parameter not found or not a map", toolName, paramName)
				continue
			}
			if actual := param["default"]; actual != expected {
				t.Errorf("%s.%s: default got %v (%T), want %v (%T)",
					toolName, paramName, actual, actual, expected, expected)
			}
		}
	}
}

func TestToolDefinitions_ImportMethods(t *testing.T) {
	props := toolByName(t, "image_import").InputSchema["properties"].(map[string]interface{})
	method := props["method"].(map[string]interface{})

	enum, ok := method["enum"].([]string)
	if !ok || len(enum) != 2 || enum[0] != "bt601" || enum[1] != "lab" {
		t.Errorf("method enum: got %v", method["enum"])
	}
}

func TestHandleToolsList(t *testing.T) {
	s := New(Config{})
	req := &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
	}

	resp := s.handleToolsList(req)

	if resp == nil {
		t.Fatal("handleToolsList returned nil")
	}
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}

	toolsList, ok := result["tools"].([]Tool)
	if !ok {
		t.Fatal("tools should be a slice of Tool")
	}

	if len(toolsList) != len(GetToolDefinitions()) {
		t.Errorf("Tool count: got %d, want %d", len(toolsList), len(GetToolDefinitions()))
	}
}
