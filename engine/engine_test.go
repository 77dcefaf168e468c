package engine_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/relaforg/fly-in/engine"
	"github.com/relaforg/fly-in/mapgraph"
	"github.com/relaforg/fly-in/zone"
)

func TestRunTrivial(t *testing.T) {
	a, err := mapgraph.NewHub("A", [2]int{0, 0}, zone.Normal, 1)
	require.NoError(t, err)
	b, err := mapgraph.NewHub("B", [2]int{1, 0}, zone.Normal, 1)
	require.NoError(t, err)
	g, err := mapgraph.NewGraph(a, b, 1)
	require.NoError(t, err)
	c, err := mapgraph.NewConnection(a, b, 1)
	require.NoError(t, err)
	require.NoError(t, g.AddConnection(c))

	h, err := engine.Run(g)
	require.NoError(t, err)
	require.Len(t, h, 2)
	require.Len(t, h[1]["B"], 1)
}

func TestRunUnreachableGoal(t *testing.T) {
	a, err := mapgraph.NewHub("A", [2]int{0, 0}, zone.Normal, 1)
	require.NoError(t, err)
	e, err := mapgraph.NewHub("E", [2]int{1, 0}, zone.Normal, 1)
	require.NoError(t, err)
	g, err := mapgraph.NewGraph(a, e, 1)
	require.NoError(t, err)

	_, err = engine.Run(g)
	require.ErrorIs(t, err, engine.ErrUnreachableGoal)
}
