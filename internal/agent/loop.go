// In file: internal/agent/loop.go

// Package agent runs the bounded ReAct reasoning loop over the uniform tool
// set.
//
// The loop alternates between asking the model for its next step and feeding
// tool results back as observations, entirely through text. Tool failures
// arrive as diagnostic observations (the tools never error), so the model
// itself drives retries with corrected arguments. A hard iteration cap
// guarantees termination even when the model never converges.
package agent

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"regexp"
	"strings"

	"toolbridge/internal/api"
	"toolbridge/internal/llm"
	"toolbridge/internal/tools"
)

// DefaultMaxIterations bounds the think/act cycle. Five rounds is enough for
// a lookup plus a couple of corrected retries; beyond that the model is
// usually stuck in a loop.
const DefaultMaxIterations = 5

// reactPromptTemplate is the fixed instruction scaffold for the reasoning
// loop. The placeholders are filled per request: the tool roster, the legal
// tool names, the user's question, and the accumulated scratchpad of prior
// steps.
const reactPromptTemplate = `You are a helpful AI assistant.
You have access to many different tools across multiple platforms.

{tools}

CRITICAL INSTRUCTIONS:
1. To use a tool, you MUST use the exact format below - this is MANDATORY.
2. The "Action Input" MUST be a valid JSON object { }.
3. Only use tools listed above (available: {tool_names}).
4. Use EXACT tool names from the list - do not modify or guess names.
5. Extract required parameters from each tool's DESCRIPTION above.
6. Common parameter patterns:
   - ID fields: Usually need "Id" or "id" suffix (e.g., eventId, calendarId, messageId)
   - List/Get operations: May need resource identifiers like "primary" for calendars
   - Primary ID is usually "primary" for Google services
7. When a tool fails, the error message will tell you which fields are missing.

Format (MUST follow exactly):
Question: the input question you must answer
Thought: I need to use a tool to solve this. Let me check the tool description for parameters.
Action: [Should be one of {tool_names}]
Action Input: {"parameter1": "value1", "parameter2": "value2"}
Observation: [Tool output will appear here]
... (repeat Thought/Action/Action Input/Observation as needed)
Thought: I now have the answer
Final Answer: [Your final response to the user]

Begin!

Question: {input}
Thought:{agent_scratchpad}`

// ErrMaxIterations is returned when the loop exhausts its iteration budget
// without the model producing a final answer.
var ErrMaxIterations = errors.New("exceeded maximum number of reasoning iterations")

var (
	finalAnswerPattern = regexp.MustCompile(`(?s)Final Answer:\s*(.*)`)
	actionPattern      = regexp.MustCompile(`(?m)^\s*Action:\s*\[?([A-Za-z0-9_\-]+)\]?`)
	actionInputPattern = regexp.MustCompile(`(?s)Action Input:\s*(\{.*?\})`)
	// actionInputWide re-captures with a greedy match when the non-greedy one
	// clipped a nested object.
	actionInputWide = regexp.MustCompile(`(?s)Action Input:\s*(\{.*\})`)
)

// Agent drives one reasoning loop per request over a read-only tool set. It
// carries no cross-request state and is safe to share across requests.
type Agent struct {
	llm           llm.LLMClient
	tools         *tools.ToolManager
	model         string
	numCtx        int
	maxIterations int
}

// New creates an agent over the given model and tool set.
func New(client llm.LLMClient, manager *tools.ToolManager, model string, numCtx int) *Agent {
	return &Agent{
		llm:           client,
		tools:         manager,
		model:         model,
		numCtx:        numCtx,
		maxIterations: DefaultMaxIterations,
	}
}

// SetMaxIterations overrides the loop's iteration budget. Values below one
// are ignored.
func (a *Agent) SetMaxIterations(n int) {
	if n > 0 {
		a.maxIterations = n
	}
}

// Run executes the reasoning loop for one user message and returns the
// model's final free-text answer plus cumulative token usage. The answer is
// raw loop output; the caller applies output post-processing.
func (a *Agent) Run(ctx context.Context, input string) (string, api.Usage, error) {
	roster := a.tools.Roster()
	toolNames := strings.Join(a.tools.Names(), ", ")

	// Temperature 0 is critical for strict adherence to the action format.
	var temperature float32
	config := &llm.GenerationConfig{
		Model:       a.model,
		Temperature: &temperature,
		NumCtx:      a.numCtx,
	}

	var cumulativeUsage api.Usage
	var scratchpad strings.Builder

	for i := 0; i < a.maxIterations; i++ {
		prompt := renderPrompt(roster, toolNames, input, scratchpad.String())
		result, err := a.llm.Generate(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, config)
		if err != nil {
			return "", cumulativeUsage, err
		}
		cumulativeUsage.Add(result.Usage)

		step := trimHallucinatedObservation(result.Content)

		if m := finalAnswerPattern.FindStringSubmatch(step); m != nil {
			log.Println("LLM provided final answer. Exiting reasoning loop.")
			return strings.TrimSpace(m[1]), cumulativeUsage, nil
		}

		action := actionPattern.FindStringSubmatch(step)
		if action == nil {
			// The model broke the format. Feed a corrective observation back
			// instead of failing, the same recovery a parse-tolerant executor
			// would apply.
			scratchpad.WriteString(step)
			scratchpad.WriteString("\nObservation: Invalid format. Either provide 'Action:' with 'Action Input:' as a JSON object, or 'Final Answer:'.\nThought:")
			continue
		}
		observation := a.executeStep(ctx, action[1], extractActionInput(step))
		log.Printf("🛠️ Executed tool: %s", action[1])

		scratchpad.WriteString(step)
		scratchpad.WriteString("\nObservation: " + observation + "\nThought:")
	}

	return "", cumulativeUsage, ErrMaxIterations
}

// executeStep resolves one Action/Action Input pair to observation text. An
// unknown tool name is the one error the manager can return; it becomes a
// corrective observation listing the legal names.
func (a *Agent) executeStep(ctx context.Context, name, arguments string) string {
	observation, err := a.tools.Execute(ctx, name, arguments)
	if err != nil {
		return "Error: " + err.Error() + ". Available tools: " + strings.Join(a.tools.Names(), ", ")
	}
	return observation
}

// extractActionInput pulls the JSON argument object out of the model's step.
// When no brace-delimited object follows "Action Input:", whatever trails the
// marker on that line is passed through; the tool's own decode failure path
// produces the retry guidance.
func extractActionInput(step string) string {
	if m := actionInputPattern.FindStringSubmatch(step); m != nil {
		candidate := m[1]
		// The non-greedy match stops at the first '}', which clips nested
		// objects. Re-validate and widen to the full span when needed.
		if json.Valid([]byte(candidate)) {
			return candidate
		}
		if wide := actionInputWide.FindStringSubmatch(step); wide != nil && json.Valid([]byte(wide[1])) {
			return wide[1]
		}
		return candidate
	}
	if idx := strings.Index(step, "Action Input:"); idx >= 0 {
		rest := step[idx+len("Action Input:"):]
		if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
			rest = rest[:nl]
		}
		return strings.TrimSpace(rest)
	}
	return ""
}

// trimHallucinatedObservation cuts off any text from the first "Observation:"
// the model wrote itself. Observations come from tools, never from the model;
// letting invented ones stand would poison the scratchpad.
func trimHallucinatedObservation(step string) string {
	action := actionPattern.FindStringIndex(step)
	obs := strings.Index(step, "Observation:")
	if action != nil && obs > action[0] {
		return step[:obs]
	}
	return step
}

func renderPrompt(roster, toolNames, input, scratchpad string) string {
	r := strings.NewReplacer(
		"{tools}", roster,
		"{tool_names}", toolNames,
		"{input}", input,
		"{agent_scratchpad}", scratchpad,
	)
	return r.Replace(reactPromptTemplate)
}
