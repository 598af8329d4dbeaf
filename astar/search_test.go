package astar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/meritrank/astar"
	"github.com/katalvlaran/meritrank/node"
)

// chain is a tiny fixed graph: 0->1->2->3, all weight 1.0.
type chain map[node.ID][]astar.NeighborReply

func (c chain) answer(req *astar.NeighborRequest) *astar.NeighborReply {
	nbs := c[req.Node]
	if req.Index >= len(nbs) {
		return &astar.NeighborReply{Node: req.Node, Ok: false}
	}
	r := nbs[req.Index]

	return &r
}

func driveToDone(t *testing.T, s *astar.Search, g chain) astar.Status {
	t.Helper()
	status, req := s.Iterate(nil)
	for i := 0; i < 100000; i++ {
		switch status {
		case astar.StatusSuccess, astar.StatusFail:
			return status
		case astar.StatusOutOfMemory:
			status, req = s.Grow(0)
		case astar.StatusProgress:
			reply := g.answer(req)
			status, req = s.Iterate(reply)
		}
	}
	t.Fatal("search did not terminate")

	return astar.StatusFail
}

func TestSearch_FindsShortestPath(t *testing.T) {
	g := chain{
		node.ID(0): {{Node: node.ID(1), Weight: 1.0, Ok: true}},
		node.ID(1): {{Node: node.ID(2), Weight: 1.0, Ok: true}},
		node.ID(2): {{Node: node.ID(3), Weight: 1.0, Ok: true}},
		node.ID(3): {},
	}

	s := astar.New(node.ID(0), node.ID(3), 16, nil)
	status := driveToDone(t, s, g)

	require.Equal(t, astar.StatusSuccess, status)
	assert.Equal(t, []node.ID{0, 1, 2, 3}, s.Path())
}

func TestSearch_UnreachableGoalFails(t *testing.T) {
	g := chain{
		node.ID(0): {{Node: node.ID(1), Weight: 1.0, Ok: true}},
		node.ID(1): {},
	}

	s := astar.New(node.ID(0), node.ID(99), 16, nil)
	status := driveToDone(t, s, g)

	require.Equal(t, astar.StatusFail, status)
	assert.Nil(t, s.Path())
}

func TestSearch_StartEqualsGoal(t *testing.T) {
	s := astar.New(node.ID(5), node.ID(5), 4, nil)
	status, _ := s.Iterate(nil)

	require.Equal(t, astar.StatusSuccess, status)
	assert.Equal(t, []node.ID{5}, s.Path())
}

func TestSearch_GrowsPastTinyCapacity(t *testing.T) {
	g := chain{
		node.ID(0): {
			{Node: node.ID(1), Weight: 1.0, Ok: true},
			{Node: node.ID(2), Weight: 1.0, Ok: true},
			{Node: node.ID(3), Weight: 1.0, Ok: true},
		},
		node.ID(1): {},
		node.ID(2): {},
		node.ID(3): {{Node: node.ID(4), Weight: 1.0, Ok: true}},
		node.ID(4): {},
	}

	s := astar.New(node.ID(0), node.ID(4), 1, nil)
	status := driveToDone(t, s, g)

	require.Equal(t, astar.StatusSuccess, status)
	assert.Equal(t, []node.ID{0, 3, 4}, s.Path())
}

func TestSearch_PrefersStrongerEdgeWeight(t *testing.T) {
	// 0->1 (weak, high cost) vs 0->2->3 (strong, low cost), both reaching 3.
	g := chain{
		node.ID(0): {
			{Node: node.ID(1), Weight: 0.01, Ok: true},
			{Node: node.ID(2), Weight: 10.0, Ok: true},
		},
		node.ID(1): {{Node: node.ID(3), Weight: 10.0, Ok: true}},
		node.ID(2): {{Node: node.ID(3), Weight: 10.0, Ok: true}},
		node.ID(3): {},
	}

	s := astar.New(node.ID(0), node.ID(3), 16, nil)
	status := driveToDone(t, s, g)

	require.Equal(t, astar.StatusSuccess, status)
	assert.Equal(t, []node.ID{0, 2, 3}, s.Path())
}
