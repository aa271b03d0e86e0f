package term

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// putString draws str from (col, row) cluster by cluster and returns the
// column after the last drawn cluster. A cluster that would cross maxCol is
// not drawn. The cell backgrounds already on screen are kept.
func putString(screen tcell.Screen, col, row, maxCol int, str string, fg tcell.Style) int {
	state := -1
	for len(str) > 0 {
		var cluster string
		var width int
		cluster, str, width, state = uniseg.FirstGraphemeClusterInString(str, state)
		if width == 0 {
			continue
		}
		if col+width > maxCol {
			break
		}

		_, _, under, _ := screen.GetContent(col, row)
		_, bg, _ := under.Decompose()
		runes := []rune(cluster)
		screen.SetContent(col, row, runes[0], runes[1:], fg.Background(bg))
		col += width
	}
	return col
}

// splitWidth splits s after as many clusters as fit in width cells. At least
// one cluster always goes into the head.
func splitWidth(s string, width int) (string, string) {
	state := -1
	used, cut := 0, 0
	rest := s
	for len(rest) > 0 {
		cluster, next, w, st := uniseg.FirstGraphemeClusterInString(rest, state)
		if used+w > width && cut > 0 {
			break
		}
		used += w
		cut += len(cluster)
		rest, state = next, st
	}
	return s[:cut], s[cut:]
}

// wrapCells wraps s into lines of at most width cells, breaking at spaces
// and splitting words that are wider than a line.
func wrapCells(s string, width int) []string {
	if width <= 0 {
		return nil
	}

	var lines []string
	line := ""
	for _, word := range strings.Fields(s) {
		for uniseg.StringWidth(word) > width {
			if line != "" {
				lines = append(lines, line)
				line = ""
			}
			var head string
			head, word = splitWidth(word, width)
			lines = append(lines, head)
		}
		switch {
		case word == "":
		case line == "":
			line = word
		case uniseg.StringWidth(line)+1+uniseg.StringWidth(word) <= width:
			line += " " + word
		default:
			lines = append(lines, line)
			line = word
		}
	}
	if line != "" || len(lines) == 0 {
		lines = append(lines, line)
	}
	return lines
}

// truncateCells cuts s to width cells, marking the cut with an ellipsis.
func truncateCells(s string, width int) string {
	if uniseg.StringWidth(s) <= width {
		return s
	}
	if width <= 1 {
		head, _ := splitWidth(s, width)
		return head
	}
	head, _ := splitWidth(s, width-1)
	if uniseg.StringWidth(head) > width-1 {
		return "…"
	}
	return head + "…"
}
