package intelligence

import (
	"fmt"
	"strings"
)

// decomposeSystemPrompt asks for a bounded list of sub-tasks.
const decomposeSystemPrompt = `You are a senior engineering lead breaking a work item into implementation tasks.

You must output ONLY a JSON object with these fields:
- tasks: array of 3 to 8 objects, each with:
  - name: short imperative description of the task
  - complexity: "low", "medium", or "high"
  - category: one of "design", "development", "testing", "documentation", "deployment", "research"
- assumptions: array of strings, things you assumed about scope
- risks: array of strings, things that could make the work take longer

CRITICAL RULES:
1. Between 3 and 8 tasks, no more and no fewer
2. Tasks must not overlap
3. Do NOT estimate hours in this step
4. Output ONLY the JSON object, no markdown, no explanation`

// estimateSystemPrompt asks for hours per task, keyed by the task ids it is given.
const estimateSystemPrompt = `You are a senior engineering lead estimating effort for a list of tasks.

You must output ONLY a JSON object with these fields:
- estimates: array with exactly one object per input task, each with:
  - taskId: the id given for the task, copied exactly (e.g. "T1")
  - task: the task name
  - hours: number of focused engineering hours, zero or more
  - reasoning: one sentence justifying the number
- confidence: "low", "medium", or "high"
- confidenceReasoning: one sentence on why you chose that confidence

CRITICAL RULES:
1. Every taskId from the input must appear exactly once
2. Do NOT invent task ids
3. Use strict JSON numeric literals (e.g., 0.5, never .5)
4. Output ONLY the JSON object`

func buildDecomposePrompt(in DecomposeInput) string {
	var b strings.Builder
	if in.ItemKind != "" {
		fmt.Fprintf(&b, "Item type: %s\n", in.ItemKind)
	}
	fmt.Fprintf(&b, "Title: %s\n\nDescription:\n%s\n", in.Title, in.Description)
	return b.String()
}

func buildEstimatePrompt(d *Decomposition) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Work item: %s\n\n%s\n\nTasks:\n", d.Input.Title, d.Input.Description)
	for _, t := range d.Tasks {
		fmt.Fprintf(&b, "- %s: %s (complexity: %s", t.ID, t.Name, t.Complexity)
		if t.Category != "" {
			fmt.Fprintf(&b, ", category: %s", t.Category)
		}
		b.WriteString(")\n")
	}
	if len(d.Assumptions) > 0 {
		b.WriteString("\nAssumptions:\n")
		for _, a := range d.Assumptions {
			fmt.Fprintf(&b, "- %s\n", a)
		}
	}
	return b.String()
}
