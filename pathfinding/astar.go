package pathfinding

import (
	"container/heap"
	"fmt"

	"linetrace/config"
	"linetrace/diagram"
	"linetrace/geometry"
)

// AStarNode represents a state in the A* search.
type AStarNode struct {
	Point  diagram.Point
	GCost  float64 // Cost from start
	FCost  float64 // GCost plus the straight-line distance to the goal
	Parent *AStarNode
	Seq    int // Insertion order, breaks FCost ties
	Index  int // Index in the heap
}

// NodeQueue is a priority queue for A* nodes. Among nodes with equal FCost
// the one pushed first is popped first.
type NodeQueue []*AStarNode

func (nq NodeQueue) Len() int { return len(nq) }

func (nq NodeQueue) Less(i, j int) bool {
	if nq[i].FCost != nq[j].FCost {
		return nq[i].FCost < nq[j].FCost
	}
	return nq[i].Seq < nq[j].Seq
}

func (nq NodeQueue) Swap(i, j int) {
	nq[i], nq[j] = nq[j], nq[i]
	nq[i].Index = i
	nq[j].Index = j
}

func (nq *NodeQueue) Push(x any) {
	node := x.(*AStarNode)
	node.Index = len(*nq)
	*nq = append(*nq, node)
}

func (nq *NodeQueue) Pop() any {
	old := *nq
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	node.Index = -1
	*nq = old[:n-1]
	return node
}

// SearchResult is a found path together with the work it took.
type SearchResult struct {
	Path       diagram.Path
	Expansions int
}

// AStar searches an 8-connected grid of fixed step for a path between two
// points, avoiding forbidden points. Coordinates reachable from the start are
// start + k*step, so a goal off that lattice is never found.
type AStar struct {
	step          float64
	maxExpansions int
}

// NewAStar creates a search using the configured step and expansion bound.
func NewAStar(cfg config.Routing) *AStar {
	return &AStar{step: cfg.SearchStepSize, maxExpansions: cfg.MaxSearchExpansions}
}

// FindPath implements diagram.PathFinder.
func (a *AStar) FindPath(start, end diagram.Point, obstacles func(diagram.Point) bool) (diagram.Path, error) {
	res, err := a.Search(start, end, obstacles)
	return res.Path, err
}

// Search runs the bounded search. Each node popped from the open set counts
// as one expansion; once the bound is reached the search gives up with
// ErrNoPath. The returned path runs from start to goal inclusive and its Cost
// is the accumulated Euclidean length.
func (a *AStar) Search(start, goal diagram.Point, obstacles func(diagram.Point) bool) (SearchResult, error) {
	openSet := &NodeQueue{}
	closedSet := make(map[diagram.Point]bool)
	nodeMap := make(map[diagram.Point]*AStarNode)

	startNode := &AStarNode{Point: start, FCost: geometry.Distance(start, goal)}
	heap.Push(openSet, startNode)
	nodeMap[start] = startNode
	seq := 1

	expansions := 0
	for openSet.Len() > 0 && expansions < a.maxExpansions {
		expansions++
		current := heap.Pop(openSet).(*AStarNode)
		if current.Point == goal {
			return SearchResult{Path: reconstructPath(current), Expansions: expansions}, nil
		}
		closedSet[current.Point] = true

		for _, neighbor := range GetNeighbors(current.Point, a.step) {
			if obstacles != nil && obstacles(neighbor) {
				continue
			}
			if closedSet[neighbor] {
				continue
			}

			g := current.GCost + geometry.Distance(current.Point, neighbor)
			existing, seen := nodeMap[neighbor]
			if !seen {
				node := &AStarNode{
					Point:  neighbor,
					GCost:  g,
					FCost:  g + geometry.Distance(neighbor, goal),
					Parent: current,
					Seq:    seq,
				}
				seq++
				heap.Push(openSet, node)
				nodeMap[neighbor] = node
			} else if g < existing.GCost {
				existing.FCost += g - existing.GCost
				existing.GCost = g
				existing.Parent = current
				heap.Fix(openSet, existing.Index)
			}
		}
	}

	return SearchResult{Expansions: expansions},
		fmt.Errorf("%w from %v to %v after %d expansions", ErrNoPath, start, goal, expansions)
}

// reconstructPath builds the path from start to the given node.
func reconstructPath(node *AStarNode) diagram.Path {
	var points []diagram.Point
	for n := node; n != nil; n = n.Parent {
		points = append(points, n.Point)
	}
	for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
		points[i], points[j] = points[j], points[i]
	}
	return diagram.Path{Points: points, Cost: node.GCost}
}
