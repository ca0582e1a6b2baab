package tcellview

import "github.com/gdamore/tcell/v2"

// subcell is the vertical resolution of the scroll bar thumb: eighths of a
// terminal cell, rendered with fractional block glyphs.
const subcell = 8

var (
	thumbLower = [subcell]rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	thumbUpper = [subcell]rune{'▔', '▔', '▀', '▀', '▀', '▀', '█', '█'}
)

// scrollBar renders a proportional vertical scroll bar for the virtualized
// list. Content length comes from the engine's padding identity, so the
// thumb stays honest even though almost nothing is mounted.
type scrollBar struct {
	trackStyle tcell.Style
	thumbStyle tcell.Style
}

func newScrollBar() scrollBar {
	return scrollBar{
		trackStyle: tcell.StyleDefault.Dim(true),
		thumbStyle: tcell.StyleDefault,
	}
}

type scrollMetrics struct {
	trackLen   int
	thumbLen   int
	thumbStart int
}

// metrics computes thumb geometry in subcell units so the thumb can move in
// 1/8-cell steps while staying proportional to viewport/content size.
func metrics(trackCells int, contentLen, viewportLen, offset int64) scrollMetrics {
	trackLen := trackCells * subcell
	if trackLen == 0 {
		return scrollMetrics{}
	}

	contentLen = max(contentLen, 1)
	viewportLen = min(max(viewportLen, 1), contentLen)
	maxOffset := max(contentLen-viewportLen, 0)
	offset = min(max(offset, 0), maxOffset)

	if maxOffset == 0 {
		return scrollMetrics{trackLen: trackLen, thumbLen: trackLen}
	}

	thumbLen := min(max(int(int64(trackLen)*viewportLen/contentLen), subcell), trackLen)
	thumbTravel := int64(max(trackLen-thumbLen, 0))
	thumbStart := int(thumbTravel * offset / maxOffset)
	return scrollMetrics{trackLen: trackLen, thumbLen: thumbLen, thumbStart: thumbStart}
}

// cellFill converts the thumb's absolute subcell coverage into the covered
// [start, start+len) span local to one track cell.
func cellFill(m scrollMetrics, cellIndex int) (start, fillLen int) {
	if m.thumbLen == 0 {
		return 0, 0
	}
	cellStart := cellIndex * subcell
	cellEnd := cellStart + subcell
	thumbEnd := m.thumbStart + m.thumbLen
	start = max(m.thumbStart, cellStart)
	end := min(thumbEnd, cellEnd)
	if end <= start {
		return 0, 0
	}
	fillLen = min(end-start, subcell)
	start = min(max(start-cellStart, 0), subcell)
	return start, fillLen
}

func (s scrollBar) glyph(start, fillLen int) (rune, tcell.Style) {
	if fillLen <= 0 {
		return '│', s.trackStyle
	}
	if fillLen >= subcell {
		return thumbLower[subcell-1], s.thumbStyle
	}
	if start == 0 {
		return thumbUpper[fillLen-1], s.thumbStyle
	}
	return thumbLower[fillLen-1], s.thumbStyle
}

// draw renders the bar into the column at x, rows y..y+height-1. Hidden when
// the content fits the viewport.
func (s scrollBar) draw(screen tcell.Screen, x, y, height int, contentLen, viewportLen, offset int64) {
	if height <= 0 || contentLen <= viewportLen {
		return
	}
	m := metrics(height, contentLen, viewportLen, offset)
	for cell := 0; cell < height; cell++ {
		start, fillLen := cellFill(m, cell)
		glyph, style := s.glyph(start, fillLen)
		screen.SetContent(x, y+cell, glyph, nil, style)
	}
}
