package spotlight

import "github.com/rivo/uniseg"

// reveal walks a string one grapheme cluster at a time, so combining marks
// and emoji sequences never show up half-drawn.
type reveal struct {
	src   string
	pos   int // byte offset of the visible prefix
	state int // uniseg segmentation state
	steps int
}

func newReveal(src string) *reveal {
	return &reveal{src: src, state: -1}
}

// next extends the visible prefix by one cluster. It reports false when the
// whole string is already visible.
func (r *reveal) next() bool {
	if r.done() {
		return false
	}
	cluster, _, _, state := uniseg.FirstGraphemeClusterInString(r.src[r.pos:], r.state)
	r.pos += len(cluster)
	r.state = state
	r.steps++
	return true
}

func (r *reveal) done() bool {
	return r.pos >= len(r.src)
}

func (r *reveal) visible() string {
	return r.src[:r.pos]
}

// graphemeCount returns the number of reveal steps needed for s.
func graphemeCount(s string) int {
	return uniseg.GraphemeClusterCount(s)
}
