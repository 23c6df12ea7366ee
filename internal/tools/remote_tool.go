// In file: internal/tools/remote_tool.go
package tools

import (
	"context"
	"encoding/json"
	"strings"

	"toolbridge/internal/catalog"
	"toolbridge/internal/feedback"
	"toolbridge/internal/normalize"
)

// RemoteTool adapts one remote catalog action into the uniform ToolExecutor
// contract. It pairs the action's stable identity with a cached copy of its
// description, which the feedback synthesizer mines for parameter hints when
// a call fails.
type RemoteTool struct {
	action catalog.RawAction
	client catalog.Client
	userID string
}

// Statically verify that RemoteTool implements the ToolExecutor interface.
var _ ToolExecutor = (*RemoteTool)(nil)

// NewRemoteTool wraps one raw action. One RemoteTool exists per RawAction for
// the lifetime of the process.
func NewRemoteTool(action catalog.RawAction, client catalog.Client, userID string) *RemoteTool {
	return &RemoteTool{
		action: action,
		client: client,
		userID: userID,
	}
}

func (rt *RemoteTool) Name() string { return rt.action.Name }

func (rt *RemoteTool) Description() string { return rt.action.Description }

// Execute decodes the argument payload, invokes the remote action, and
// returns text on every path. Success flows through the response normalizer;
// any failure — a malformed argument payload just as much as a remote
// invocation error — flows through the feedback synthesizer. Argument decode
// errors are deliberately not pre-validated: they take the same failure path
// as the remote call so the loop receives uniform retry guidance.
func (rt *RemoteTool) Execute(ctx context.Context, arguments string) string {
	args, err := decodeArguments(arguments)
	if err != nil {
		return feedback.Synthesize(rt.action.Name, err.Error(), rt.action.Description)
	}

	result, err := rt.client.Execute(ctx, catalog.ExecuteRequest{
		Slug:      rt.action.Name,
		Arguments: args,
		UserID:    rt.userID,
		// Always target the latest remote contract version; the catalog's own
		// version pinning lags behind the actions it serves.
		SkipVersionCheck: true,
	})
	if err != nil {
		return feedback.Synthesize(rt.action.Name, err.Error(), rt.action.Description)
	}

	return normalize.Response(rt.action.Name, result)
}

// decodeArguments parses the loop's argument payload into an object. An
// empty payload means a no-argument call.
func decodeArguments(arguments string) (map[string]any, error) {
	trimmed := strings.TrimSpace(arguments)
	if trimmed == "" {
		return map[string]any{}, nil
	}
	var args map[string]any
	if err := json.Unmarshal([]byte(trimmed), &args); err != nil {
		return nil, err
	}
	return args, nil
}
