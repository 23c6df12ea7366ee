// In file: internal/tools/executor.go
package tools

import "context"

// ToolExecutor defines the uniform contract for any tool exposed to the
// reasoning loop.
//
// The loop's control-flow format has no path for terminating on a fault
// mid-reasoning, so Execute takes one string argument payload and returns one
// string — always. There is no error return: every failure path inside a tool
// must be converted to diagnostic text the loop can read as an observation
// and act on. The no-throw guarantee is enforced by the signature rather than
// by a blanket recover at the call site.
type ToolExecutor interface {
	// Name returns the tool's stable identity, used by the loop to address it.
	Name() string

	// Description returns the free-text documentation shown to the LLM. This
	// is the only information the model has about the tool's parameters.
	Description() string

	// Execute runs the tool with a JSON-encoded argument object and returns
	// either a normalized result summary or a diagnostic text block.
	Execute(ctx context.Context, arguments string) string
}
