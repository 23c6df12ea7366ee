// In file: internal/toolkit/discovery.go

// Package toolkit discovers and aggregates remote actions across candidate
// toolkit labels.
//
// The remote catalog's accepted label spelling is not knowable in advance, so
// the configured probe list deliberately contains duplicates and variant
// spellings ("googlecalendar", "google_calendar", "google-calendar", ...).
// Each label is probed independently; failed probes are recorded and skipped,
// never fatal. Only a run in which every label fails is a discovery failure.
package toolkit

import (
	"context"
	"errors"
	"log"
	"strings"

	"toolbridge/internal/catalog"
)

// ErrNoTools signals that no probe resolved to any action. The caller must
// treat this as an initialization failure rather than running an agent with
// zero tools.
var ErrNoTools = errors.New("no tools discovered across any toolkit label")

// ProbeResult records the outcome of resolving one candidate toolkit label.
// Probe outcomes are ephemeral per-run diagnostics meant for operator tuning
// of the label list; they are not part of the functional contract.
type ProbeResult struct {
	Label   string
	Actions int
	Err     error
}

// Report aggregates the per-label probe outcomes for one discovery run.
type Report struct {
	Probes       []ProbeResult
	TotalActions int
}

// WorkingLabels returns the labels that resolved to at least one action, in
// probe order.
func (r *Report) WorkingLabels() []string {
	var working []string
	for _, p := range r.Probes {
		if p.Err == nil && p.Actions > 0 {
			working = append(working, p.Label)
		}
	}
	return working
}

// Discover probes every candidate label against the catalog for the given
// user and accumulates all actions from successful probes into one ordered
// sequence. Actions are not deduplicated: if two labels surface the same
// action, the duplicate is accepted, because downstream wrapping is
// idempotent per action name. Discover returns ErrNoTools when the aggregated
// list is empty.
func Discover(ctx context.Context, client catalog.Client, userID string, labels []string) ([]catalog.RawAction, *Report, error) {
	log.Println("📦 Testing toolkit names...")

	report := &Report{}
	var actions []catalog.RawAction
	for _, label := range labels {
		tools, err := client.ListTools(ctx, userID, label)
		if err != nil {
			report.Probes = append(report.Probes, ProbeResult{Label: label, Err: err})
			continue
		}
		if len(tools) == 0 {
			report.Probes = append(report.Probes, ProbeResult{Label: label})
			continue
		}
		actions = append(actions, tools...)
		report.Probes = append(report.Probes, ProbeResult{Label: label, Actions: len(tools)})
		log.Printf("  ✓ '%s': %d tools", label, len(tools))
	}
	report.TotalActions = len(actions)

	log.Printf("✅ Total: %d tools", len(actions))
	log.Printf("📝 Working toolkit names: %v", report.WorkingLabels())

	if len(actions) == 0 {
		return nil, report, ErrNoTools
	}
	return actions, report, nil
}

// LogCategories prints the discovered tool roster grouped by well-known
// families. Purely advisory output for operators.
func LogCategories(actions []catalog.RawAction) {
	log.Println("📋 Available tools:")
	var calendarTools, driveTools []string
	for _, action := range actions {
		log.Printf("   - %s", action.Name)
		if strings.Contains(action.Name, "CALENDAR") {
			calendarTools = append(calendarTools, action.Name)
		}
		if strings.Contains(action.Name, "DRIVE") || strings.Contains(action.Name, "GDRIVE") {
			driveTools = append(driveTools, action.Name)
		}
	}
	logFamily("Calendar", calendarTools)
	logFamily("Google Drive", driveTools)
}

func logFamily(name string, tools []string) {
	if len(tools) == 0 {
		return
	}
	log.Printf("💡 %s tools available:", name)
	for i, tool := range tools {
		if i == 10 {
			log.Printf("   ... and %d more", len(tools)-10)
			break
		}
		log.Printf("   • %s", tool)
	}
}
