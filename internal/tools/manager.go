// In file: internal/tools/manager.go
package tools

import (
	"context"
	"fmt"
	"strings"
)

// ToolManager holds the registry of all tools available to the reasoning
// loop. Registration order is preserved because the tool roster is rendered
// into the agent prompt in a stable order.
//
// The registry is built once at startup and read-only afterwards, so it is
// safe to share across concurrent requests.
type ToolManager struct {
	order []string
	tools map[string]ToolExecutor
}

func NewToolManager() *ToolManager {
	return &ToolManager{
		tools: make(map[string]ToolExecutor),
	}
}

// Register adds a tool to the registry. Registering the same name twice is a
// no-op: discovery may surface the same action under two toolkit labels, and
// wrapping is idempotent per action, so the duplicate only wastes the one
// extra wrap cycle that produced it.
func (tm *ToolManager) Register(tool ToolExecutor) {
	name := tool.Name()
	if _, exists := tm.tools[name]; exists {
		return
	}
	tm.order = append(tm.order, name)
	tm.tools[name] = tool
}

// Execute runs a tool by name. The only error condition is an unknown tool
// name; a registered tool always resolves to text.
func (tm *ToolManager) Execute(ctx context.Context, name, arguments string) (string, error) {
	tool, ok := tm.tools[name]
	if !ok {
		return "", fmt.Errorf("tool '%s' not found", name)
	}
	return tool.Execute(ctx, arguments), nil
}

// Names returns all registered tool names in registration order.
func (tm *ToolManager) Names() []string {
	names := make([]string, len(tm.order))
	copy(names, tm.order)
	return names
}

// Roster renders the "name: description" listing injected into the agent
// prompt so the model can pick tools and infer their parameters.
func (tm *ToolManager) Roster() string {
	var b strings.Builder
	for _, name := range tm.order {
		fmt.Fprintf(&b, "%s: %s\n", name, tm.tools[name].Description())
	}
	return b.String()
}

// ToolCount returns the number of registered tools.
func (tm *ToolManager) ToolCount() int {
	return len(tm.order)
}
