package utils

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/rivo/uniseg"
)

// WrapText 将文本按指定宽度（像素）自动换行
//
// 换行规则:
//   - 在 Unicode 断行位置（空格后、中日文字符之间）断行
//   - 单个片段超过最大宽度时按字素簇强制断行
//   - 显式换行符总是断行
//
// 返回值至少包含一行
func WrapText(textStr string, font *text.GoTextFace, maxWidth float64) []string {
	if textStr == "" || font == nil || maxWidth <= 0 {
		return []string{textStr}
	}
	if !strings.ContainsRune(textStr, '\n') && measureTextWidth(textStr, font) <= maxWidth {
		return []string{textStr}
	}

	var lines []string
	line := ""
	flush := func() {
		lines = append(lines, strings.TrimRight(line, " \r\n"))
		line = ""
	}

	state := -1
	rest := textStr
	for len(rest) > 0 {
		var segment string
		var mustBreak bool
		segment, rest, mustBreak, state = uniseg.FirstLineSegmentInString(rest, state)

		switch {
		case measureTextWidth(strings.TrimRight(line+segment, " \r\n"), font) <= maxWidth:
			line += segment
		case measureTextWidth(strings.TrimRight(segment, " \r\n"), font) <= maxWidth:
			flush()
			line = segment
		default:
			// 片段本身超宽，逐个字素簇填充
			for _, cluster := range clusters(segment) {
				if line != "" && measureTextWidth(line+cluster, font) > maxWidth {
					flush()
				}
				line += cluster
			}
		}

		if mustBreak && len(rest) > 0 {
			flush()
		}
	}
	if line != "" || len(lines) == 0 {
		flush()
	}
	return lines
}

// clusters 按字素簇拆分字符串
func clusters(s string) []string {
	var out []string
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// measureTextWidth 测量文本宽度
func measureTextWidth(textStr string, font *text.GoTextFace) float64 {
	if textStr == "" || font == nil {
		return 0
	}
	width, _ := text.Measure(textStr, font, 0)
	return width
}
