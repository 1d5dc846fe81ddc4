package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	bufferBlock = "▒"
	emptyBlock  = "░"
)

// RenderBufferBar draws base effort followed by the dependency buffer on a
// bar of the given width, scaled to the adjusted total:
// [██████████▒▒░] 20% buffer.
func RenderBufferBar(base, buffer float64, width int) string {
	if width < 2 {
		width = 2
	}
	total := base + buffer
	if total <= 0 {
		return fmt.Sprintf("[%s]", strings.Repeat(emptyBlock, width))
	}

	baseCells := int(base / total * float64(width))
	bufCells := int(buffer / total * float64(width))
	if buffer > 0 && bufCells == 0 {
		bufCells = 1
	}
	if baseCells+bufCells > width {
		baseCells = width - bufCells
	}
	empty := width - baseCells - bufCells

	style := StyleGreen
	if buffer > 0 {
		style = StyleYellow
	}
	return fmt.Sprintf("[%s%s%s]",
		StyleBlue.Render(strings.Repeat(filledBlock, baseCells)),
		style.Render(strings.Repeat(bufferBlock, bufCells)),
		strings.Repeat(emptyBlock, empty))
}
