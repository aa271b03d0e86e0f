package scenes

import (
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// textField is a single-line input limited to a number of runes.
type textField struct {
	value string
	limit int
}

// Append adds typed characters, dropping control characters and anything
// past the limit.
func (f *textField) Append(rs []rune) {
	n := utf8.RuneCountInString(f.value)
	for _, r := range rs {
		if n >= f.limit {
			return
		}
		if unicode.IsControl(r) {
			continue
		}
		f.value += string(r)
		n++
	}
}

// Backspace removes the last grapheme cluster, so an emoji with a skin tone
// modifier goes away in one press.
func (f *textField) Backspace() {
	last := 0
	rest := f.value
	state := -1
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if len(rest) > 0 {
			last += len(cluster)
		}
	}
	f.value = f.value[:last]
}

// Reset clears the field.
func (f *textField) Reset() {
	f.value = ""
}

// Value returns the current text.
func (f *textField) Value() string {
	return f.value
}
