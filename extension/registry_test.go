package extension

import (
	"context"
	"slices"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"
)

// testExtension is a minimal Extension implementation for testing.
type testExtension struct {
	name  string
	tools []MCPTool
}

func (e testExtension) Name() string               { return e.name }
func (e testExtension) Commands() []*cobra.Command { return nil }
func (e testExtension) MCPTools() []MCPTool        { return e.tools }

func TestRegister_PanicOnDuplicate(t *testing.T) {
	name := "test-duplicate-panic"
	Register(testExtension{name: name})

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic on duplicate registration, got none")
		}
	}()

	Register(testExtension{name: name})
}

func TestRegister_Order(t *testing.T) {
	Register(testExtension{name: "test-order-a"})
	Register(testExtension{name: "test-order-b"})

	names := Names()
	a := slices.Index(names, "test-order-a")
	b := slices.Index(names, "test-order-b")
	if a < 0 || b < 0 || a > b {
		t.Fatalf("registration order not kept: %v", names)
	}
	if Get("test-order-a") == nil {
		t.Error("Get returned nil for a registered extension")
	}
	if Get("test-order-missing") != nil {
		t.Error("Get returned an extension for an unknown name")
	}
}

func TestTools(t *testing.T) {
	noop := func(context.Context, Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText("ok"), nil
	}
	Register(testExtension{name: "test-tools", tools: []MCPTool{
		{Tool: mcp.NewTool("test_tool_one"), Handler: noop},
		{Tool: mcp.NewTool("test_tool_two"), Handler: noop},
	}})

	var names []string
	for _, tool := range Tools() {
		names = append(names, tool.Tool.Name)
	}
	if !slices.Contains(names, "test_tool_one") || !slices.Contains(names, "test_tool_two") {
		t.Errorf("Tools() = %v, want both test tools", names)
	}
}
