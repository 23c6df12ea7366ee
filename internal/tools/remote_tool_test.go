// In file: internal/tools/remote_tool_test.go
package tools

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toolbridge/internal/catalog"
)

// fakeExecutor records execute calls and replays a scripted outcome.
type fakeExecutor struct {
	lastRequest catalog.ExecuteRequest
	result      any
	err         error
}

func (f *fakeExecutor) ListTools(_ context.Context, _, _ string) ([]catalog.RawAction, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeExecutor) Execute(_ context.Context, req catalog.ExecuteRequest) (any, error) {
	f.lastRequest = req
	return f.result, f.err
}

func sampleAction() catalog.RawAction {
	return catalog.RawAction{
		Name:        "GOOGLE_CALENDAR_GET_EVENT",
		Description: "Fetches one event. Requires: calendarId, eventId.",
		Toolkit:     "googlecalendar",
	}
}

func TestRemoteTool_SuccessfulCall(t *testing.T) {
	client := &fakeExecutor{result: map[string]any{"status": "ok"}}
	tool := NewRemoteTool(sampleAction(), client, "user-1")

	out := tool.Execute(context.Background(), `{"calendarId": "primary", "eventId": "abc"}`)

	assert.Equal(t, `{"status":"ok"}`, out)
	assert.Equal(t, "GOOGLE_CALENDAR_GET_EVENT", client.lastRequest.Slug)
	assert.Equal(t, "user-1", client.lastRequest.UserID)
	assert.Equal(t, "primary", client.lastRequest.Arguments["calendarId"])
	assert.True(t, client.lastRequest.SkipVersionCheck)
}

func TestRemoteTool_EmptyArgumentsMeansNoArgCall(t *testing.T) {
	client := &fakeExecutor{result: "done"}
	tool := NewRemoteTool(sampleAction(), client, "user-1")

	out := tool.Execute(context.Background(), "")

	assert.Equal(t, "done", out)
	require.NotNil(t, client.lastRequest.Arguments)
	assert.Empty(t, client.lastRequest.Arguments)
}

func TestRemoteTool_MalformedJSONBecomesDiagnosticText(t *testing.T) {
	client := &fakeExecutor{result: "unreachable"}
	tool := NewRemoteTool(sampleAction(), client, "user-1")

	out := tool.Execute(context.Background(), `{"calendarId": `)

	// The decode failure takes the same path as a remote failure: diagnostic
	// text with retry guidance, never a panic or an error.
	assert.Contains(t, out, "GOOGLE_CALENDAR_GET_EVENT failed")
	assert.Contains(t, out, "calendarId")
	assert.Empty(t, client.lastRequest.Slug, "remote must not be called on decode failure")
}

func TestRemoteTool_RemoteFailureBecomesDiagnosticText(t *testing.T) {
	client := &fakeExecutor{err: errors.New("validation failed: missing 'eventId'")}
	tool := NewRemoteTool(sampleAction(), client, "user-1")

	out := tool.Execute(context.Background(), `{"calendarId": "primary"}`)

	assert.Contains(t, out, "GOOGLE_CALENDAR_GET_EVENT failed")
	assert.Contains(t, out, "Missing fields: eventId")
}

func TestRemoteTool_NonJSONResultPassesThrough(t *testing.T) {
	client := &fakeExecutor{result: "plain text result"}
	tool := NewRemoteTool(sampleAction(), client, "user-1")

	assert.Equal(t, "plain text result", tool.Execute(context.Background(), "{}"))
}

func TestToolManager_RegisterIsIdempotentPerName(t *testing.T) {
	manager := NewToolManager()
	client := &fakeExecutor{}
	manager.Register(NewRemoteTool(sampleAction(), client, "user-1"))
	manager.Register(NewRemoteTool(sampleAction(), client, "user-1"))

	assert.Equal(t, 1, manager.ToolCount())
	assert.Equal(t, []string{"GOOGLE_CALENDAR_GET_EVENT"}, manager.Names())
}

func TestToolManager_ExecuteUnknownTool(t *testing.T) {
	manager := NewToolManager()

	_, err := manager.Execute(context.Background(), "NO_SUCH_TOOL", "{}")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "NO_SUCH_TOOL")
}

func TestToolManager_RosterListsNameAndDescription(t *testing.T) {
	manager := NewToolManager()
	manager.Register(NewRemoteTool(sampleAction(), &fakeExecutor{}, "user-1"))

	roster := manager.Roster()

	assert.Contains(t, roster, "GOOGLE_CALENDAR_GET_EVENT: Fetches one event.")
}
