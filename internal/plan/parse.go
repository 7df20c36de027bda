package plan

import (
	"encoding/json"
	"fmt"
)

// Tree is one parsed plan: the operator tree plus the root-only timing
// the engine reports alongside it.
type Tree struct {
	Root          *Node
	PlanningTime  float64
	ExecutionTime float64
}

// rawExplain mirrors the document shape of EXPLAIN (FORMAT JSON): a
// one-element array wrapping the root plan record.
type rawExplain struct {
	Plan          *rawNode `json:"Plan"`
	PlanningTime  float64  `json:"Planning Time"`
	ExecutionTime float64  `json:"Execution Time"`
}

type rawNode struct {
	NodeType string    `json:"Node Type"`
	Plans    []rawNode `json:"Plans"`
	Attrs
}

// Parse builds a Tree from the raw EXPLAIN (FORMAT JSON) document.
func Parse(doc []byte) (*Tree, error) {
	return ParseWith(doc, randomIDGenerator{})
}

// ParseWith is Parse with a caller-supplied node-ID generator.
func ParseWith(doc []byte, gen IDGenerator) (*Tree, error) {
	var records []rawExplain
	if err := json.Unmarshal(doc, &records); err != nil {
		return nil, fmt.Errorf("parse explain document: %w", err)
	}
	if len(records) == 0 || records[0].Plan == nil {
		return nil, fmt.Errorf("explain document has no plan record")
	}

	root, err := buildNode(*records[0].Plan, gen)
	if err != nil {
		return nil, err
	}
	return &Tree{
		Root:          root,
		PlanningTime:  records[0].PlanningTime,
		ExecutionTime: records[0].ExecutionTime,
	}, nil
}

// buildNode constructs the node, then its children, preserving plan
// order. The ID is assigned before the first child is attached.
func buildNode(raw rawNode, gen IDGenerator) (*Node, error) {
	if raw.NodeType == "" {
		return nil, fmt.Errorf("plan record missing %q key", "Node Type")
	}

	n := newNode(KindOf(raw.NodeType), raw.Attrs, gen)
	for _, child := range raw.Plans {
		c, err := buildNode(child, gen)
		if err != nil {
			return nil, err
		}
		n.children = append(n.children, c)
	}
	return n, nil
}
