package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/contract"
)

// FormatEstimate renders an estimate result: the breakdown table, totals,
// assumptions and risks. A failed result renders only its error.
func FormatEstimate(res *contract.EstimateResult) string {
	var b strings.Builder
	if !res.Success {
		b.WriteString(StyleRed.Render("✖ "+string(res.Error)) + "  " + res.Message + "\n")
		return b.String()
	}

	b.WriteString(Header("Estimate") + "\n")
	rows := make([][]string, 0, len(res.Breakdown))
	for _, item := range res.Breakdown {
		rows = append(rows, []string{item.TaskID, item.Task, string(item.Complexity), FormatHours(item.Hours)})
	}
	b.WriteString(RenderTable([]string{"ID", "Task", "Complexity", "Hours"}, rows, 4))
	b.WriteString("\n")

	fmt.Fprintf(&b, "%s %s   %s\n", Bold("Total:"), Bold(FormatHours(res.TotalHours)), ConfidenceBadge(res.Confidence))
	if res.ConfidenceReasoning != "" {
		b.WriteString(Dim(res.ConfidenceReasoning) + "\n")
	}

	b.WriteString("\n" + StyleBold.Render("Assumptions") + "\n")
	b.WriteString(Bullets(res.Assumptions))
	b.WriteString(StyleBold.Render("Risks") + "\n")
	b.WriteString(Bullets(res.Risks))

	m := res.Metadata
	b.WriteString(Dim(fmt.Sprintf("\n%d tokens (%d prompt / %d completion) · $%s · %s · %dms",
		m.Tokens, m.PromptTokens, m.CompletionTokens,
		strconv.FormatFloat(m.Cost, 'f', -1, 64), m.Model, m.ExecutionTimeMs)) + "\n")
	return b.String()
}

// FormatPersistedEstimate prefixes the estimate with the saved version.
func FormatPersistedEstimate(p *contract.PersistedEstimate) string {
	var b strings.Builder
	if p.Persisted {
		b.WriteString(StyleGreen.Render(fmt.Sprintf("✔ Saved %s %d estimate v%d", p.ItemKind, p.ItemID, p.Version)) + "\n\n")
	} else {
		b.WriteString(StyleYellow.Render(fmt.Sprintf("○ %s %d not updated", p.ItemKind, p.ItemID)) + "\n")
	}
	b.WriteString(FormatEstimate(p.Result))
	return b.String()
}

// FormatHistory renders every stored version, oldest first.
func FormatHistory(entries []contract.EstimateHistoryEntry) string {
	if len(entries) == 0 {
		return Dim("No estimates recorded.") + "\n"
	}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			"v" + strconv.Itoa(e.Version),
			FormatHours(e.EstimateHours),
			ConfidenceBadge(e.Confidence),
			strconv.Itoa(len(e.Breakdown)),
			string(e.Source),
			e.CreatedBy,
			HumanDate(e.CreatedAt),
		})
	}
	return Header("Estimate history") + "\n" +
		RenderTable([]string{"Version", "Hours", "Confidence", "Tasks", "Source", "By", "Created"}, rows, 2, 4)
}
