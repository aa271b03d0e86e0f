package scenes

import (
	"fmt"

	"github.com/decker502/rising/pkg/config"
	"github.com/decker502/rising/pkg/game"
)

// clampOffset 把滚动偏移限制在有效范围
func clampOffset(n, offset, visible int) int {
	maxOffset := max(n-visible, 0)
	return min(max(offset, 0), maxOffset)
}

// visibleWishes returns the list indices shown in the slots, newest first.
// offset scrolls towards older wishes.
func visibleWishes(n, offset, visible int) []int {
	offset = clampOffset(n, offset, visible)
	count := min(visible, n-offset)
	out := make([]int, 0, max(count, 0))
	for slot := 0; slot < count; slot++ {
		out = append(out, n-1-offset-slot)
	}
	return out
}

// slotAt returns the list slot under the logical point (x, y), or -1.
func slotAt(width, height, x, y float64, slots int) int {
	for i := 0; i < slots; i++ {
		rx, ry, rw, rh := config.WishCardRect(width, height, i)
		if x >= rx && x < rx+rw && y >= ry && y < ry+rh {
			return i
		}
	}
	return -1
}

// wishMeta 列表卡片的标题行：名字 • 时间
func wishMeta(w game.Wish) string {
	return fmt.Sprintf("%s • %s", w.Name, w.Time().Local().Format("Jan 2, 15:04"))
}
