// In file: internal/catalog/types.go

// Package catalog defines the boundary to the remote SaaS tool catalog.
//
// The catalog is an external collaborator: it knows which toolkits exist for
// a given user, which actions each toolkit exposes, and how to execute an
// action on the user's behalf. This package only specifies the two
// capabilities the rest of the gateway needs ("resolve a toolkit label" and
// "execute an action") plus a thin HTTP implementation of them.
package catalog

// RawAction is one callable remote capability as reported by the catalog.
// It is immutable once fetched and lives for a single process run; actions
// are re-fetched on every startup and never cached to disk.
type RawAction struct {
	// Name is the action's stable, globally unique identity
	// (e.g., "GMAIL_FETCH_EMAILS"). Execution is keyed on this value.
	Name string `json:"name"`
	// Description is the free-text documentation for the action. There is no
	// schema guarantee: this text is the only hint about expected parameters.
	Description string `json:"description"`
	// Toolkit is the label of the toolkit that surfaced this action.
	Toolkit string `json:"toolkit,omitempty"`
}

// ExecuteRequest carries everything needed to invoke one action remotely.
type ExecuteRequest struct {
	// Slug is the stable action identity to invoke.
	Slug string `json:"slug"`
	// Arguments is the decoded argument object supplied by the reasoning loop.
	Arguments map[string]any `json:"arguments"`
	// UserID is the configured identity/session the action runs as.
	UserID string `json:"user_id"`
	// SkipVersionCheck tells the catalog not to enforce its own contract
	// version pinning. The gateway always targets the latest remote contract.
	SkipVersionCheck bool `json:"dangerously_skip_version_check"`
}
