package utils

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

func testFace(t *testing.T) *text.GoTextFace {
	t.Helper()
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		t.Fatalf("无法创建字体源: %v", err)
	}
	return &text.GoTextFace{Source: src, Size: 22}
}

// TestWrapText 测试文本换行功能
func TestWrapText(t *testing.T) {
	face := testFace(t)

	tests := []struct {
		name     string
		input    string
		maxWidth float64
		minLines int
		join     string // 各行用 join 拼接后应还原输入
	}{
		{"短文本不换行", "Jai Shri Krishna", 1000, 1, " "},
		{"按空格换行", "the quick brown fox jumps over the lazy dog", 150, 2, " "},
		{"长单词强制断行", "abcdefghijklmnopqrstuvwxyz", 60, 2, ""},
		{"空文本", "", 100, 1, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := WrapText(tt.input, face, tt.maxWidth)

			if len(lines) < tt.minLines {
				t.Errorf("期望至少 %d 行，实际得到 %d 行: %q", tt.minLines, len(lines), lines)
			}
			if got := strings.Join(lines, tt.join); got != tt.input {
				t.Errorf("拼接结果 %q 与输入 %q 不符", got, tt.input)
			}
			for i, line := range lines {
				if w := measureTextWidth(line, face); w > tt.maxWidth {
					t.Errorf("第 %d 行 %q 宽度 %.1f 超过 %.1f", i+1, line, w, tt.maxWidth)
				}
			}
		})
	}
}

func TestWrapTextNewline(t *testing.T) {
	lines := WrapText("Radhe\nRadhe", testFace(t), 1000)
	if len(lines) != 2 || lines[0] != "Radhe" || lines[1] != "Radhe" {
		t.Errorf("显式换行符应断行，得到 %q", lines)
	}
}

// TestWrapTextEdgeCases 测试边界情况
func TestWrapTextEdgeCases(t *testing.T) {
	tests := []struct {
		name     string
		font     *text.GoTextFace
		maxWidth float64
	}{
		{"nil font", nil, 100},
		{"zero maxWidth", &text.GoTextFace{Size: 22}, 0},
		{"negative maxWidth", &text.GoTextFace{Size: 22}, -100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := WrapText("测试", tt.font, tt.maxWidth)
			if len(lines) != 1 || lines[0] != "测试" {
				t.Errorf("期望返回原文本，实际得到 %q", lines)
			}
		})
	}
}
