// Package storage implements the paged B-tree that backs the table: row
// codec aside (see internal/row), this is the Pager/Table/Cursor core.
package storage

import (
	"fmt"

	"go.uber.org/zap"

	"btreedb/internal/constants"
	"btreedb/internal/row"
)

// ErrDuplicateKey is returned by Insert when the id already exists.
var ErrDuplicateKey = fmt.Errorf("duplicate key")

// ErrTableFull is returned by Insert when the store has exhausted
// constants.TableMaxPages.
var ErrTableFull = fmt.Errorf("table full")

const rootPageNum = 0

// Table owns the pager and the page number of the tree's root.
type Table struct {
	pager *pager
	log   *zap.SugaredLogger
}

// Open opens (or creates) filename and returns a Table backed by it. A
// brand new file is initialized with a single leaf root, marked root from
// the start.
func Open(filename string, log *zap.SugaredLogger) (*Table, error) {
	p, err := openPager(filename, log)
	if err != nil {
		return nil, err
	}
	t := &Table{pager: p, log: log}
	if p.numPages == 0 {
		root := p.getPage(rootPageNum)
		initializeLeafNode(root, true)
	}
	return t, nil
}

// Close flushes every resident page and closes the underlying file.
func (t *Table) Close() error {
	return t.pager.flushAll()
}

// Insert adds r to the tree, rejecting duplicate ids.
func (t *Table) Insert(r row.Row) error {
	c := t.find(r.ID)
	leaf := t.pager.getPage(c.pageNum)
	if c.cellNum < leafNodeNumCells(leaf) && leafNodeKey(leaf, c.cellNum) == r.ID {
		return ErrDuplicateKey
	}

	if leafNodeNumCells(leaf) >= constants.LeafNodeMaxCells && t.pager.numPages+2 > constants.TableMaxPages {
		return ErrTableFull
	}

	return t.leafNodeInsert(c, r.ID, r)
}

// SelectAll walks every row in key order via a cursor that crosses leaf
// boundaries through next_leaf, rather than re-descending the tree for
// each row.
func (t *Table) SelectAll() []row.Row {
	var rows []row.Row
	c := t.start()
	for !c.endOfTable {
		rows = append(rows, row.Deserialize(c.value()))
		c.advance()
	}
	return rows
}

func (t *Table) leftmostLeaf(pageNum uint32) uint32 {
	page := t.pager.getPage(pageNum)
	for getNodeType(page) == NodeInternal {
		pageNum = internalNodeChild(page, 0)
		page = t.pager.getPage(pageNum)
	}
	return pageNum
}

// find descends the tree (completing through internal nodes, unlike a
// root-only lookup) and returns a cursor at the leaf cell where key is, or
// where it should be inserted.
func (t *Table) find(key uint32) *cursor {
	var pageNum uint32 = rootPageNum
	page := t.pager.getPage(pageNum)
	for getNodeType(page) == NodeInternal {
		childIndex := internalNodeFindChild(page, key)
		pageNum = internalNodeChild(page, childIndex)
		page = t.pager.getPage(pageNum)
	}
	cellNum := leafNodeFind(page, key)
	return &cursor{table: t, pageNum: pageNum, cellNum: cellNum}
}

func (t *Table) leafNodeInsert(c *cursor, key uint32, r row.Row) error {
	page := t.pager.getPage(c.pageNum)
	numCells := leafNodeNumCells(page)
	if numCells >= constants.LeafNodeMaxCells {
		return t.leafNodeSplitAndInsert(c, key, r)
	}

	if c.cellNum < numCells {
		for i := numCells; i > c.cellNum; i-- {
			copy(leafNodeCell(page, i), leafNodeCell(page, i-1))
		}
	}
	setLeafNodeNumCells(page, numCells+1)
	setLeafNodeKey(page, c.cellNum, key)
	row.Serialize(r, leafNodeValue(page, c.cellNum))
	return nil
}

// leafNodeSplitAndInsert splits a full leaf into itself (left) and a new
// right sibling, redistributing LeafNodeMaxCells+1 cells (the existing
// ones plus the one being inserted) LeftSplitCount/RightSplitCount between
// them, then propagates the split to the parent: creating a new root if
// the leaf was the root, or inserting into the existing parent otherwise.
func (t *Table) leafNodeSplitAndInsert(c *cursor, key uint32, r row.Row) error {
	oldNode := t.pager.getPage(c.pageNum)
	oldMax := t.getNodeMaxKey(oldNode)

	newPageNum := t.pager.getUnusedPageNum()
	newNode := t.pager.getPage(newPageNum)
	initializeLeafNode(newNode, false)
	setNodeParent(newNode, nodeParent(oldNode))
	setLeafNodeNextLeaf(newNode, leafNodeNextLeaf(oldNode))
	setLeafNodeNextLeaf(oldNode, newPageNum)

	for i := int32(constants.LeafNodeMaxCells); i >= 0; i-- {
		var destNode []byte
		if uint32(i) >= constants.LeafNodeLeftSplitCount {
			destNode = newNode
		} else {
			destNode = oldNode
		}
		indexWithinNode := uint32(i) % constants.LeafNodeLeftSplitCount

		switch {
		case uint32(i) == c.cellNum:
			setLeafNodeKey(destNode, indexWithinNode, key)
			row.Serialize(r, leafNodeValue(destNode, indexWithinNode))
		case uint32(i) > c.cellNum:
			copy(leafNodeCell(destNode, indexWithinNode), leafNodeCell(oldNode, uint32(i)-1))
		default:
			copy(leafNodeCell(destNode, indexWithinNode), leafNodeCell(oldNode, uint32(i)))
		}
	}

	setLeafNodeNumCells(oldNode, constants.LeafNodeLeftSplitCount)
	setLeafNodeNumCells(newNode, constants.LeafNodeRightSplitCount)

	if isNodeRoot(oldNode) {
		t.createNewRoot(newPageNum)
		return nil
	}

	parentPageNum := nodeParent(oldNode)
	newMax := t.getNodeMaxKey(oldNode)
	parent := t.pager.getPage(parentPageNum)
	updateInternalNodeKey(parent, oldMax, newMax)
	return t.internalNodeInsert(parentPageNum, newPageNum)
}

// createNewRoot handles the case where the root (at page 0) has just
// split: the root's current contents move into a freshly allocated left
// child, and the root page is reinitialized as an internal node pointing
// at that left child and at rightChildPageNum.
func (t *Table) createNewRoot(rightChildPageNum uint32) {
	root := t.pager.getPage(rootPageNum)
	rightChild := t.pager.getPage(rightChildPageNum)

	leftChildPageNum := t.pager.getUnusedPageNum()
	leftChild := t.pager.getPage(leftChildPageNum)
	copy(leftChild, root)
	setNodeRoot(leftChild, false)

	initializeInternalNode(root, true)
	setInternalNodeNumKeys(root, 1)
	setInternalNodeChild(root, 0, leftChildPageNum)
	leftChildMaxKey := t.getNodeMaxKey(leftChild)
	setInternalNodeKey(root, 0, leftChildMaxKey)
	setInternalNodeRightChild(root, rightChildPageNum)

	setNodeParent(leftChild, rootPageNum)
	setNodeParent(rightChild, rootPageNum)
}

// internalNodeInsert inserts a pointer to childPageNum into the internal
// node at parentPageNum, keeping the right_child slot pointing at the
// subtree holding the largest keys.
func (t *Table) internalNodeInsert(parentPageNum, childPageNum uint32) error {
	parent := t.pager.getPage(parentPageNum)
	child := t.pager.getPage(childPageNum)
	childMaxKey := t.getNodeMaxKey(child)
	index := internalNodeFindChild(parent, childMaxKey)

	originalNumKeys := internalNodeNumKeys(parent)
	if originalNumKeys >= constants.InternalNodeMaxCells {
		return fmt.Errorf("internal node full: splitting internal nodes is unsupported at this table size")
	}
	setInternalNodeNumKeys(parent, originalNumKeys+1)

	rightChildPageNum := internalNodeRightChild(parent)
	rightChild := t.pager.getPage(rightChildPageNum)

	if childMaxKey > t.getNodeMaxKey(rightChild) {
		setInternalNodeChild(parent, originalNumKeys, rightChildPageNum)
		setInternalNodeKey(parent, originalNumKeys, t.getNodeMaxKey(rightChild))
		setInternalNodeRightChild(parent, childPageNum)
	} else {
		for i := originalNumKeys; i > index; i-- {
			copy(parent[internalNodeCellOffset(i):internalNodeCellOffset(i)+constants.InternalNodeCellSize],
				parent[internalNodeCellOffset(i-1):internalNodeCellOffset(i-1)+constants.InternalNodeCellSize])
		}
		setInternalNodeChild(parent, index, childPageNum)
		setInternalNodeKey(parent, index, childMaxKey)
	}
	setNodeParent(child, parentPageNum)
	return nil
}

func updateInternalNodeKey(page []byte, oldKey, newKey uint32) {
	oldChildIndex := internalNodeFindChild(page, oldKey)
	setInternalNodeKey(page, oldChildIndex, newKey)
}
