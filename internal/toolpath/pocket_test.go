package toolpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/pathcut/internal/model"
)

func pocketParams() model.CutParams {
	p := testParams()
	p.StepOver = 2.0
	return p
}

func TestPocket_SquareFill(t *testing.T) {
	toolpaths := PocketStrategy{}.Generate([]model.Polyline{square()}, pocketParams())
	require.Len(t, toolpaths, 1)

	cuts := cutMoves(toolpaths[0])
	require.NotEmpty(t, cuts)

	// Every cut stays within the contour bounds inset by the tool radius
	for _, m := range cuts {
		assert.GreaterOrEqual(t, m.X, 1.0)
		assert.LessOrEqual(t, m.X, 9.0)
		assert.GreaterOrEqual(t, m.Y, 1.0)
		assert.LessOrEqual(t, m.Y, 9.0)
		assert.Equal(t, -1.0, m.Z)
	}
}

func TestPocket_SerpentineRows(t *testing.T) {
	toolpaths := PocketStrategy{}.Generate([]model.Polyline{square()}, pocketParams())
	require.Len(t, toolpaths, 1)

	cuts := cutMoves(toolpaths[0])
	// Two cuts per row: y = 1, 3, 5, 7, 9
	require.Len(t, cuts, 10)

	// Rows alternate direction: +x, -x, +x, ...
	for row := 0; row < 5; row++ {
		start := cuts[row*2]
		end := cuts[row*2+1]
		assert.Equal(t, start.Y, end.Y, "row %d cuts at mixed heights", row)
		assert.InDelta(t, float64(1+2*row), start.Y, 1e-9, "row %d height", row)
		if row%2 == 0 {
			assert.Less(t, start.X, end.X, "row %d should cut in +x", row)
		} else {
			assert.Greater(t, start.X, end.X, "row %d should cut in -x", row)
		}
	}
}

func TestPocket_SkipsOpenAndTinyContours(t *testing.T) {
	open := model.NewPolyline([]model.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}, false)
	twoPoint := model.NewPolyline([]model.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}}, true)
	toolpaths := PocketStrategy{}.Generate([]model.Polyline{open, twoPoint}, pocketParams())
	assert.Empty(t, toolpaths)
}

func TestPocket_RegionNarrowerThanTool(t *testing.T) {
	// 1.5mm wide slot with a 2mm tool: every span collapses after insetting
	slot := model.NewPolyline([]model.Vec2{
		{X: 0, Y: 0}, {X: 1.5, Y: 0}, {X: 1.5, Y: 10}, {X: 0, Y: 10},
	}, true)
	toolpaths := PocketStrategy{}.Generate([]model.Polyline{slot}, pocketParams())
	assert.Empty(t, toolpaths)
}

func TestScanlineIntersect_HalfOpenRule(t *testing.T) {
	// Diamond with a vertex exactly on the scan line: the two edges meeting
	// at the vertex must contribute exactly one crossing under the
	// half-open rule, not two.
	diamond := model.NewPolyline([]model.Vec2{
		{X: 5, Y: 0}, {X: 10, Y: 5}, {X: 5, Y: 10}, {X: 0, Y: 5},
	}, true)
	xs := scanlineIntersect(diamond, 5.0)
	assert.Len(t, xs, 2)
}

func TestScanlineIntersect_CountsImplicitClosingEdge(t *testing.T) {
	xs := scanlineIntersect(square(), 5.0)
	require.Len(t, xs, 2)
	// Crossings at the right wall and the implicit left closing edge
	assert.ElementsMatch(t, []float64{0, 10}, xs)
}
