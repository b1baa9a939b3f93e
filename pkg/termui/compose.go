package termui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Compose draws block over base with its top-left corner at column x, row y.
// Spaces in block are drawn too, so boxes stay opaque. Rows and columns that
// fall outside base's width and line count are clipped. Both strings may
// contain ANSI escape sequences.
func Compose(base, block string, x, y, width int) string {
	baseLines := strings.Split(base, "\n")
	blockLines := strings.Split(block, "\n")

	for i, blockLine := range blockLines {
		row := y + i
		if row < 0 {
			continue
		}
		if row >= len(baseLines) {
			break
		}

		startCol := x
		blockWidth := ansi.StringWidth(blockLine)
		cutFrom, cutTo := 0, blockWidth
		if startCol < 0 {
			cutFrom = -startCol
			startCol = 0
		}
		if startCol+cutTo-cutFrom > width {
			cutTo = cutFrom + width - startCol
		}
		if cutTo <= cutFrom {
			continue
		}
		content := ansi.Cut(blockLine, cutFrom, cutTo)
		endCol := startCol + (cutTo - cutFrom)

		baseLine := baseLines[row]
		baseWidth := ansi.StringWidth(baseLine)
		if baseWidth < width {
			baseLine += strings.Repeat(" ", width-baseWidth)
		}

		// Cutting through a wide character can leave the prefix short.
		prefix := ansi.Cut(baseLine, 0, startCol)
		if w := ansi.StringWidth(prefix); w < startCol {
			prefix += strings.Repeat(" ", startCol-w)
		}

		result := prefix + content
		if endCol < width {
			suffix := ansi.Cut(baseLine, endCol, width)
			want := width - endCol
			if w := ansi.StringWidth(suffix); w < want {
				suffix = strings.Repeat(" ", want-w) + suffix
			} else if w > want {
				suffix = " " + ansi.Cut(suffix, w-want+1, w)
			}
			result += suffix
		}
		baseLines[row] = result
	}
	return strings.Join(baseLines, "\n")
}

// Canvas pads or trims base to exactly height lines, each at least width
// columns wide.
func Canvas(base string, width, height int) string {
	lines := strings.Split(base, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i, line := range lines {
		if w := ansi.StringWidth(line); w < width {
			lines[i] = line + strings.Repeat(" ", width-w)
		}
	}
	return strings.Join(lines, "\n")
}
