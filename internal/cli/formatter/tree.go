package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TreeItem represents a single node in a tree display.
type TreeItem struct {
	Title  string
	Label  string // outline label such as "1.2.1"; empty means don't display
	Level  int
	IsLast bool
	// Open lists, for each ancestor level below the root, whether that
	// ancestor still has siblings below it.
	Open   []bool
	Status string
	Detail string
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
	treeBlank  = "   "
)

// RenderTree renders a list of TreeItems as an indented tree using
// box-drawing characters for connectors. Done items get a green ✔ prefix,
// in-progress items get an amber ▶ prefix, and detail badges are right-aligned.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	type lineInfo struct {
		content string
		badge   string
	}

	lines := make([]lineInfo, len(items))
	maxContentWidth := 0

	// Pass 1: build each line's content and track max visible width.
	for idx, item := range items {
		var prefix strings.Builder
		if item.Level > 0 {
			for i := 1; i < item.Level; i++ {
				if i-1 < len(item.Open) && !item.Open[i-1] {
					prefix.WriteString(treeBlank)
				} else {
					prefix.WriteString(treePipe)
				}
			}
			if item.IsLast {
				prefix.WriteString(treeCorner)
			} else {
				prefix.WriteString(treeBranch)
			}
		}

		title := item.Title
		if item.Label != "" {
			title = StyleDim.Render(item.Label+" ") + title
		}
		statusPrefix := ""

		isCompleted := strings.EqualFold(item.Status, "done") ||
			strings.EqualFold(item.Status, "closed")
		isActive := strings.EqualFold(item.Status, "in_progress")

		if isCompleted {
			statusPrefix = StyleGreen.Render("✔ ")
			title = Dim(title)
		} else if isActive {
			statusPrefix = StyleYellowBold.Render("▶ ")
			title = StyleYellowBold.Render(title)
		}

		content := prefix.String() + statusPrefix + title
		lines[idx].content = content

		if item.Detail != "" {
			lines[idx].badge = StyleBlue.Render(fmt.Sprintf("[ %s ]", item.Detail))
		}

		if w := lipgloss.Width(content); w > maxContentWidth {
			maxContentWidth = w
		}
	}

	// Pass 2: render with right-aligned badges.
	var b strings.Builder
	for _, li := range lines {
		if li.badge != "" {
			pad := maxContentWidth - lipgloss.Width(li.content)
			if pad < 0 {
				pad = 0
			}
			b.WriteString(li.content + strings.Repeat(" ", pad) + "  " + li.badge + "\n")
		} else {
			b.WriteString(li.content + "\n")
		}
	}

	return b.String()
}
