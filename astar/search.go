package astar

import (
	"container/heap"

	"github.com/katalvlaran/meritrank/node"
)

// Iterate advances the search by one step. On the very first call, reply
// should be nil; afterwards it must answer the NeighborRequest returned by
// the previous call.
//
// Concurrency: Search is not safe for concurrent use; callers drive the
// trampoline sequentially from a single goroutine.
func (s *Search) Iterate(reply *NeighborReply) (Status, *NeighborRequest) {
	if s.done {
		return StatusFail, nil
	}

	if reply != nil {
		return s.applyReply(reply)
	}

	return s.advance()
}

// applyReply folds a neighbour answer into the search state, then either
// asks for the next neighbour of the same node or moves on to popping a new
// frontier node.
func (s *Search) applyReply(reply *NeighborReply) (Status, *NeighborRequest) {
	if reply.Ok {
		tentativeG := s.curG + edgeCost(reply.Weight)
		if best, seen := s.gScore[reply.Node]; !seen || tentativeG < best {
			if len(s.open)+1 > s.capacity {
				s.stashed = &stashedPush{node: reply.Node, g: tentativeG, f: tentativeG + s.heuristic(reply.Node)}

				return StatusOutOfMemory, nil
			}
			s.gScore[reply.Node] = tentativeG
			s.parent[reply.Node] = s.cur
			heap.Push(&s.open, openItem{node: reply.Node, f: tentativeG + s.heuristic(reply.Node)})
		}

		s.curIdx++

		return StatusProgress, &NeighborRequest{Node: s.cur, Index: s.curIdx}
	}

	// Expansion of s.cur is complete; close it and fall through to pop the
	// next frontier node.
	s.closed[s.cur] = true
	s.havePopped = false

	return s.advance()
}

// advance pops the next unclosed frontier node and either reports
// SUCCESS/FAIL or requests that node's first neighbour.
func (s *Search) advance() (Status, *NeighborRequest) {
	if s.havePopped {
		// A pop is already pending a reply; nothing to do but ask again.
		return StatusProgress, &NeighborRequest{Node: s.cur, Index: s.curIdx}
	}

	for {
		s.iterations++
		if s.iterations > maxIterations {
			s.done = true

			return StatusFail, nil
		}

		if len(s.open) == 0 {
			s.done = true

			return StatusFail, nil
		}

		top := heap.Pop(&s.open).(openItem)
		if s.closed[top.node] {
			continue
		}

		s.cur = top.node
		s.curG = s.gScore[top.node]
		s.curIdx = 0
		s.havePopped = true

		if s.cur == s.goal {
			s.closed[s.cur] = true
			s.done = true

			return StatusSuccess, nil
		}

		return StatusProgress, &NeighborRequest{Node: s.cur, Index: s.curIdx}
	}
}

// Grow doubles the open-set capacity (at least to newCapacity) and replays
// the push that overflowed the previous buffer, resuming the search.
func (s *Search) Grow(newCapacity int) (Status, *NeighborRequest) {
	if newCapacity < s.capacity*2 {
		newCapacity = s.capacity * 2
	}
	s.capacity = newCapacity

	if s.stashed != nil {
		st := s.stashed
		s.stashed = nil
		if best, seen := s.gScore[st.node]; !seen || st.g < best {
			s.gScore[st.node] = st.g
			s.parent[st.node] = s.cur
			heap.Push(&s.open, openItem{node: st.node, f: st.f})
		}
		s.curIdx++

		return StatusProgress, &NeighborRequest{Node: s.cur, Index: s.curIdx}
	}

	return s.advance()
}

// Path reconstructs the start→goal path found by a StatusSuccess-terminated
// search. Returns nil if the search has not succeeded.
func (s *Search) Path() []node.ID {
	// The goal is closed only when it was popped, i.e. on StatusSuccess.
	if !s.done || !s.closed[s.goal] {
		return nil
	}
	if _, ok := s.gScore[s.goal]; !ok {
		return nil
	}
	if s.goal != s.start {
		if _, linked := s.parent[s.goal]; !linked {
			return nil
		}
	}

	rev := []node.ID{s.goal}
	cur := s.goal
	for cur != s.start {
		p, ok := s.parent[cur]
		if !ok {
			return nil
		}
		rev = append(rev, p)
		cur = p
	}

	path := make([]node.ID, len(rev))
	for i, n := range rev {
		path[len(rev)-1-i] = n
	}

	return path
}

// Cost returns the total path cost found, or -1 if no success yet.
func (s *Search) Cost() float64 {
	if !s.done || !s.closed[s.goal] {
		return -1
	}
	g, ok := s.gScore[s.goal]
	if !ok {
		return -1
	}

	return g
}
