package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRowHeightUsesMinimumForShortRows(t *testing.T) {
	assert.Equal(t, 14.0, RowHeight(14, 1, 6))
	assert.Equal(t, 14.0, RowHeight(14, 0, 6))
}

func TestRowHeightGrowsWithLineCount(t *testing.T) {
	// 3 lines * 5mm + 6mm padding = 21mm, above the 14mm floor.
	assert.Equal(t, 21.0, RowHeight(14, 3, 6))
	assert.Equal(t, 56.0, RowHeight(14, 10, 6))
}

func TestRowHeightExactBoundary(t *testing.T) {
	// 2 lines * 5mm + 4mm padding lands exactly on the minimum.
	assert.Equal(t, 14.0, RowHeight(14, 2, 4))
}

func TestCursorArithmetic(t *testing.T) {
	cur := Cursor{X: 15, Y: 50}

	assert.Equal(t, Cursor{15, 55}, cur.Down(5))
	assert.Equal(t, Cursor{20, 50}, cur.Right(5))
	assert.Equal(t, Cursor{100, 50}, cur.At(100))

	// Cursor is a value: chaining never mutates the original.
	_ = cur.Down(5).Right(5)
	assert.Equal(t, Cursor{15, 50}, cur)
}

func TestWrappedTextAdvancesCursorPerLine(t *testing.T) {
	c := newCanvas(fixedClock())
	c.font("", 9)

	start := Cursor{marginX, 60}
	end, lines := c.wrapText(start, "Réalisation complète du document unique d'évaluation des risques professionnels pour l'ensemble des unités de travail.", 60)

	assert.Greater(t, lines, 1)
	assert.Equal(t, start.Y+float64(lines)*lineHeight, end.Y)
	assert.Equal(t, start.X, end.X)
	assert.Equal(t, lines, c.lineCount("Réalisation complète du document unique d'évaluation des risques professionnels pour l'ensemble des unités de travail.", 60))
}
