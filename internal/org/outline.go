package org

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/dominikbraun/graph"
)

// OutlineNode is one node of the nested outline tree derived from the flat
// heading sequence. ID is the heading's ordinal in document order.
type OutlineNode struct {
	ID        int           `json:"id"`
	Title     string        `json:"title"`
	TodoState TodoState     `json:"todo_state,omitempty"`
	Level     int           `json:"level"`
	Children  []OutlineNode `json:"children,omitempty"`
}

// BuildOutline nests the flat heading sequence into the tree implied by
// heading levels: each heading's parent is the nearest preceding heading with
// a smaller level. Headings with no such ancestor are roots; a level-3
// heading directly under a level-1 heading still nests under it.
func BuildOutline(headings []Heading) ([]OutlineNode, error) {
	g := graph.New(outlineHash, graph.Directed(), graph.Acyclic())

	var roots []int
	var stack []Heading // ancestors of the current heading, strictly increasing levels
	var stackIDs []int

	for i, h := range headings {
		node := OutlineNode{
			ID:        i,
			Title:     h.Title,
			TodoState: h.TodoState,
			Level:     h.Level,
		}
		if err := g.AddVertex(node); err != nil {
			return nil, fmt.Errorf("add outline vertex %d: %w", i, err)
		}

		for len(stack) > 0 && stack[len(stack)-1].Level >= h.Level {
			stack = stack[:len(stack)-1]
			stackIDs = stackIDs[:len(stackIDs)-1]
		}
		if len(stack) == 0 {
			roots = append(roots, i)
		} else {
			parent := stackIDs[len(stackIDs)-1]
			if err := g.AddEdge(parent, i); err != nil {
				return nil, fmt.Errorf("add outline edge %d->%d: %w", parent, i, err)
			}
		}

		stack = append(stack, h)
		stackIDs = append(stackIDs, i)
	}

	adjacency, err := g.AdjacencyMap()
	if err != nil {
		return nil, fmt.Errorf("outline adjacency: %w", err)
	}

	var build func(id int) (OutlineNode, error)
	build = func(id int) (OutlineNode, error) {
		node, err := g.Vertex(id)
		if err != nil {
			return OutlineNode{}, fmt.Errorf("outline vertex %d: %w", id, err)
		}
		childIDs := make([]int, 0, len(adjacency[id]))
		for child := range adjacency[id] {
			childIDs = append(childIDs, child)
		}
		// Adjacency maps are unordered; ordinal order is document order.
		sort.Ints(childIDs)
		for _, child := range childIDs {
			childNode, err := build(child)
			if err != nil {
				return OutlineNode{}, err
			}
			node.Children = append(node.Children, childNode)
		}
		return node, nil
	}

	tree := make([]OutlineNode, 0, len(roots))
	for _, id := range roots {
		node, err := build(id)
		if err != nil {
			return nil, err
		}
		tree = append(tree, node)
	}
	return tree, nil
}

func outlineHash(n OutlineNode) int {
	return n.ID
}

// String renders the node for debug output.
func (n OutlineNode) String() string {
	return strconv.Itoa(n.ID) + ":" + n.Title
}
