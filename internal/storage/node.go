package storage

import (
	"encoding/binary"

	"btreedb/internal/constants"
)

// NodeType tags which layout a page's bytes follow.
type NodeType uint8

const (
	NodeLeaf NodeType = iota
	NodeInternal
)

func getNodeType(page []byte) NodeType {
	return NodeType(page[constants.NodeTypeOffset])
}

func setNodeType(page []byte, t NodeType) {
	page[constants.NodeTypeOffset] = byte(t)
}

func isNodeRoot(page []byte) bool {
	return page[constants.IsRootOffset] != 0
}

func setNodeRoot(page []byte, isRoot bool) {
	if isRoot {
		page[constants.IsRootOffset] = 1
	} else {
		page[constants.IsRootOffset] = 0
	}
}

func nodeParent(page []byte) uint32 {
	return binary.LittleEndian.Uint32(page[constants.ParentPointerOffset:])
}

func setNodeParent(page []byte, parent uint32) {
	binary.LittleEndian.PutUint32(page[constants.ParentPointerOffset:], parent)
}

// --- leaf layout ---

func leafNodeNumCells(page []byte) uint32 {
	return binary.LittleEndian.Uint32(page[constants.LeafNodeNumCellsOffset:])
}

func setLeafNodeNumCells(page []byte, n uint32) {
	binary.LittleEndian.PutUint32(page[constants.LeafNodeNumCellsOffset:], n)
}

func leafNodeNextLeaf(page []byte) uint32 {
	return binary.LittleEndian.Uint32(page[constants.LeafNodeNextLeafOffset:])
}

func setLeafNodeNextLeaf(page []byte, pageNum uint32) {
	binary.LittleEndian.PutUint32(page[constants.LeafNodeNextLeafOffset:], pageNum)
}

func leafNodeCell(page []byte, cellNum uint32) []byte {
	offset := constants.LeafNodeHeaderSize + int(cellNum)*constants.LeafNodeCellSize
	return page[offset : offset+constants.LeafNodeCellSize]
}

func leafNodeKey(page []byte, cellNum uint32) uint32 {
	return binary.LittleEndian.Uint32(leafNodeCell(page, cellNum))
}

func setLeafNodeKey(page []byte, cellNum uint32, key uint32) {
	binary.LittleEndian.PutUint32(leafNodeCell(page, cellNum), key)
}

func leafNodeValue(page []byte, cellNum uint32) []byte {
	cell := leafNodeCell(page, cellNum)
	return cell[constants.LeafNodeValueOffset : constants.LeafNodeValueOffset+constants.LeafNodeValueSize]
}

func initializeLeafNode(page []byte, isRoot bool) {
	setNodeType(page, NodeLeaf)
	setNodeRoot(page, isRoot)
	setLeafNodeNumCells(page, 0)
	setLeafNodeNextLeaf(page, 0)
}

// leafNodeFind performs a binary search for key within a leaf node's cells,
// returning the cell index key belongs at (existing or insertion point).
func leafNodeFind(page []byte, key uint32) uint32 {
	numCells := leafNodeNumCells(page)
	lo, hi := uint32(0), numCells
	for lo < hi {
		mid := (lo + hi) / 2
		midKey := leafNodeKey(page, mid)
		if key == midKey {
			return mid
		}
		if key < midKey {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo
}

// --- internal layout ---

func internalNodeNumKeys(page []byte) uint32 {
	return binary.LittleEndian.Uint32(page[constants.InternalNodeNumKeysOffset:])
}

func setInternalNodeNumKeys(page []byte, n uint32) {
	binary.LittleEndian.PutUint32(page[constants.InternalNodeNumKeysOffset:], n)
}

func internalNodeRightChild(page []byte) uint32 {
	return binary.LittleEndian.Uint32(page[constants.InternalNodeRightChildOffset:])
}

func setInternalNodeRightChild(page []byte, pageNum uint32) {
	binary.LittleEndian.PutUint32(page[constants.InternalNodeRightChildOffset:], pageNum)
}

func internalNodeCellOffset(cellNum uint32) int {
	return constants.InternalNodeHeaderSize + int(cellNum)*constants.InternalNodeCellSize
}

func internalNodeChild(page []byte, childNum uint32) uint32 {
	numKeys := internalNodeNumKeys(page)
	if childNum == numKeys {
		return internalNodeRightChild(page)
	}
	offset := internalNodeCellOffset(childNum)
	return binary.LittleEndian.Uint32(page[offset:])
}

func setInternalNodeChild(page []byte, childNum uint32, pageNum uint32) {
	numKeys := internalNodeNumKeys(page)
	if childNum == numKeys {
		setInternalNodeRightChild(page, pageNum)
		return
	}
	offset := internalNodeCellOffset(childNum)
	binary.LittleEndian.PutUint32(page[offset:], pageNum)
}

func internalNodeKey(page []byte, keyNum uint32) uint32 {
	offset := internalNodeCellOffset(keyNum) + constants.InternalNodeChildSize
	return binary.LittleEndian.Uint32(page[offset:])
}

func setInternalNodeKey(page []byte, keyNum uint32, key uint32) {
	offset := internalNodeCellOffset(keyNum) + constants.InternalNodeChildSize
	binary.LittleEndian.PutUint32(page[offset:], key)
}

func initializeInternalNode(page []byte, isRoot bool) {
	setNodeType(page, NodeInternal)
	setNodeRoot(page, isRoot)
	setInternalNodeNumKeys(page, 0)
}

// getNodeMaxKey returns the largest key reachable from node, descending
// through the rightmost child for internal nodes.
func (t *Table) getNodeMaxKey(page []byte) uint32 {
	if getNodeType(page) == NodeLeaf {
		return leafNodeKey(page, leafNodeNumCells(page)-1)
	}
	rightChild := t.pager.getPage(internalNodeRightChild(page))
	return t.getNodeMaxKey(rightChild)
}

// internalNodeFindChild performs a binary search over an internal node's
// keys to find the index of the child whose subtree may contain key. This
// completes the descent the original's tableFind left unfinished.
func internalNodeFindChild(page []byte, key uint32) uint32 {
	numKeys := internalNodeNumKeys(page)
	lo, hi := uint32(0), numKeys
	for lo < hi {
		mid := (lo + hi) / 2
		if internalNodeKey(page, mid) >= key {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo
}
