package ast

import (
	"fmt"

	"mercator-hq/astral/pkg/asterrors"
)

// Block is an ordered sequence of nodes, the body of every statement that
// holds children.
type Block struct {
	BaseNode
	stmtMarker
	Name  string
	Nodes []AST
}

// NewBlock creates an empty named block.
func NewBlock(name string, loc ...SourceLocation) *Block {
	return &Block{BaseNode: newBase(KindBlock, optLoc(loc)), Name: name}
}

// Append adds nodes to the end of the block, preserving insertion order, and
// returns the updated length.
func (b *Block) Append(nodes ...AST) int {
	for _, n := range nodes {
		n.SetParent(b)
		b.Nodes = append(b.Nodes, n)
	}
	return len(b.Nodes)
}

// Len returns the number of nodes in the block.
func (b *Block) Len() int { return len(b.Nodes) }

// At returns the node at index i. The index must be in [0, Len).
func (b *Block) At(i int) (AST, error) {
	if i < 0 || i >= len(b.Nodes) {
		return nil, asterrors.Newf(asterrors.KindIndex,
			"block index %d out of range [0, %d)", i, len(b.Nodes))
	}
	return b.Nodes[i], nil
}

func (b *Block) String() string { return fmt.Sprintf("Block[%s]", b.Name) }

// GetStruct returns the structural representation of the block. The content
// is the list of child structures in insertion order.
func (b *Block) GetStruct(simplified bool) ReprStruct {
	value := make([]ReprStruct, 0, len(b.Nodes))
	for _, n := range b.Nodes {
		value = append(value, n.GetStruct(simplified))
	}
	return b.prepareStruct(fmt.Sprintf("BLOCK[%s]", b.Name), value, simplified)
}

func (b *Block) accept(v Visitor) (string, error) { return v.VisitBlock(b) }
