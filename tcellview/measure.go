package tcellview

import "github.com/rivo/uniseg"

// wrapLines splits text into rows of at most width columns, breaking on
// newlines and otherwise at grapheme cluster boundaries so wide characters
// never straddle a row. Width measurement follows grapheme clusters, not
// runes.
func wrapLines(text string, width int) []string {
	if width <= 0 {
		return nil
	}

	var (
		lines   []string
		current string
		used    int
	)
	flush := func() {
		lines = append(lines, current)
		current = ""
		used = 0
	}

	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		cluster := gr.Str()
		if cluster == "\n" {
			flush()
			continue
		}
		w := max(uniseg.StringWidth(cluster), 1)
		if used+w > width && used > 0 {
			flush()
		}
		current += cluster
		used += w
	}
	if current != "" || len(lines) == 0 {
		flush()
	}
	return lines
}

// wrapHeight returns the number of terminal rows text occupies when wrapped
// to width columns. Every item is at least one row tall.
func wrapHeight(text string, width int) int {
	return max(len(wrapLines(text, width)), 1)
}
