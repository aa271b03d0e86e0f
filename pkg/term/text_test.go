package term

import (
	"reflect"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestWrapCells(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  []string
	}{
		{"fits", "hello world", 11, []string{"hello world"}},
		{"break at space", "hello world", 5, []string{"hello", "world"}},
		{"empty", "", 10, []string{""}},
		{"long word", "abcdefgh", 3, []string{"abc", "def", "gh"}},
		{"wide characters", "日本語テキスト", 4, []string{"日本", "語テ", "キス", "ト"}},
		{"collapses spaces", "a   b", 10, []string{"a b"}},
		{"no width", "abc", 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := wrapCells(tt.in, tt.width); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("wrapCells(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
			}
		})
	}
}

func TestTruncateCells(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"hello world", 6, "hello…"},
		{"hello", 5, "hello"},
		{"日本語", 4, "日…"},
	}
	for _, tt := range tests {
		if got := truncateCells(tt.in, tt.width); got != tt.want {
			t.Errorf("truncateCells(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestPutStringGraphemes(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(10, 1)

	end := putString(screen, 0, 0, 10, "a👍🏽b", tcell.StyleDefault)
	if end != 4 {
		t.Errorf("expected end column 4, got %d", end)
	}
	mainc, combc, _, _ := screen.GetContent(1, 0)
	if mainc != '👍' || len(combc) != 1 || combc[0] != '🏽' {
		t.Errorf("emoji cluster not kept together: %q %q", mainc, combc)
	}
	if mainc, _, _, _ := screen.GetContent(3, 0); mainc != 'b' {
		t.Errorf("expected 'b' after the wide cluster, got %q", mainc)
	}

	if end := putString(screen, 0, 0, 2, "abc", tcell.StyleDefault); end != 2 {
		t.Errorf("drawing should stop at maxCol, got %d", end)
	}
}
