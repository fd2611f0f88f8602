package storage

import (
	"fmt"
	"io"
	"strings"

	"btreedb/internal/constants"
)

// ConstantsString renders the same fixed layout numbers the original's
// `.constants` meta-command prints.
func ConstantsString() string {
	var b strings.Builder
	fmt.Fprintf(&b, "ROW_SIZE: %d\n", constants.RowSize)
	fmt.Fprintf(&b, "COMMON_NODE_HEADER_SIZE: %d\n", constants.CommonNodeHeaderSize)
	fmt.Fprintf(&b, "LEAF_NODE_HEADER_SIZE: %d\n", constants.LeafNodeHeaderSize)
	fmt.Fprintf(&b, "LEAF_NODE_CELL_SIZE: %d\n", constants.LeafNodeCellSize)
	fmt.Fprintf(&b, "LEAF_NODE_SPACE_FOR_CELLS: %d\n", constants.LeafNodeSpaceForCells)
	fmt.Fprintf(&b, "LEAF_NODE_MAX_CELLS: %d\n", constants.LeafNodeMaxCells)
	return b.String()
}

// PrintTree writes an indented dump of the tree rooted at pageNum, leaf
// cells and internal keys alike. The original's dumper only ever handled
// leaves; this extends it to internal nodes so dumps stay legible once a
// tree has split.
func (t *Table) PrintTree(w io.Writer, pageNum uint32, indentLevel int) {
	page := t.pager.getPage(pageNum)
	switch getNodeType(page) {
	case NodeLeaf:
		numCells := leafNodeNumCells(page)
		indent(w, indentLevel)
		fmt.Fprintf(w, "- leaf (size %d)\n", numCells)
		for i := uint32(0); i < numCells; i++ {
			indent(w, indentLevel+1)
			fmt.Fprintf(w, "- %d\n", leafNodeKey(page, i))
		}
	case NodeInternal:
		numKeys := internalNodeNumKeys(page)
		indent(w, indentLevel)
		fmt.Fprintf(w, "- internal (size %d)\n", numKeys)
		for i := uint32(0); i < numKeys; i++ {
			child := internalNodeChild(page, i)
			t.PrintTree(w, child, indentLevel+1)
			indent(w, indentLevel+1)
			fmt.Fprintf(w, "- key %d\n", internalNodeKey(page, i))
		}
		t.PrintTree(w, internalNodeRightChild(page), indentLevel+1)
	}
}

func indent(w io.Writer, level int) {
	for i := 0; i < level; i++ {
		fmt.Fprint(w, "  ")
	}
}

// RootPageNum exposes the root page number for callers like the REPL's
// .btree meta-command that need to start a tree dump.
func (t *Table) RootPageNum() uint32 {
	return rootPageNum
}
