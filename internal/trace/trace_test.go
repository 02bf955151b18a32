package trace

import (
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderTracksNestedSpans(t *testing.T) {
	clock := quartz.NewMock(t)
	b := NewBuilder(clock, "decide", "top-level decision")

	closeOuter := b.Enter("evaluate_hand", "classify hole cards against board")
	clock.Advance(10 * time.Millisecond)
	closeInner := b.Enter("analyze_draws", "check straight/flush draws")
	clock.Advance(5 * time.Millisecond)
	closeInner("no_draw")
	closeOuter("pair_top_good_kicker")

	root := b.Finish("raise")

	require.Len(t, root.Children, 1)
	outer := root.Children[0]
	assert.Equal(t, "evaluate_hand", outer.Name)
	assert.Equal(t, "pair_top_good_kicker", outer.Result)
	require.Len(t, outer.Children, 1)
	inner := outer.Children[0]
	assert.Equal(t, "analyze_draws", inner.Name)
	assert.Equal(t, "no_draw", inner.Result)
	assert.Equal(t, "raise", root.Result)
	assert.Equal(t, "decide", root.Name)
}

func TestBuilderElapsedReflectsClockAdvance(t *testing.T) {
	clock := quartz.NewMock(t)
	b := NewBuilder(clock, "decide", "")

	closeSpan := b.Enter("slow_step", "")
	clock.Advance(250 * time.Millisecond)
	closeSpan("done")

	root := b.Finish("call")
	require.Len(t, root.Children, 1)
	assert.InDelta(t, 0.25, root.Children[0].Elapsed, 1e-9)
}

func TestBuilderSiblingsDoNotAlias(t *testing.T) {
	clock := quartz.NewMock(t)
	b := NewBuilder(clock, "decide", "")

	first := b.Enter("first", "")
	first("a")
	second := b.Enter("second", "")
	second("b")

	root := b.Finish("")
	require.Len(t, root.Children, 2)
	assert.Equal(t, "a", root.Children[0].Result)
	assert.Equal(t, "b", root.Children[1].Result)
}
