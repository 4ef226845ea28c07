package gtpio

import "github.com/rivo/uniseg"

// PadOrTruncate fits s to exactly width display cells (not bytes or
// runes), measured with uniseg since board glyphs and status
// decorations can include multi-rune grapheme clusters. Render in
// status.go does not call it; callers pad or truncate a rendered line
// themselves.
func PadOrTruncate(s string, width int) string {
	w := uniseg.StringWidth(s)
	if w == width {
		return s
	}
	if w < width {
		pad := width - w
		out := make([]byte, len(s), len(s)+pad)
		copy(out, s)
		for i := 0; i < pad; i++ {
			out = append(out, ' ')
		}
		return string(out)
	}
	gr := uniseg.NewGraphemes(s)
	acc := 0
	var b []byte
	for gr.Next() {
		cluster := gr.Str()
		cw := uniseg.StringWidth(cluster)
		if acc+cw > width {
			break
		}
		acc += cw
		b = append(b, []byte(cluster)...)
	}
	return string(b)
}
