// Package constants holds the fixed byte-layout numbers the storage engine
// is built around. Every size here is load-bearing: the on-disk format is
// defined by these numbers, not the other way around.
package constants

const (
	IDSize       = 4
	UsernameSize = 32 + 1 // +1 terminator byte
	EmailSize    = 255 + 1
	RowSize      = IDSize + UsernameSize + EmailSize // 293

	IDOffset       = 0
	UsernameOffset = IDOffset + IDSize
	EmailOffset    = UsernameOffset + UsernameSize

	PageSize      = 4096
	TableMaxPages = 100

	// Common node header: node_type(1) + is_root(1) + parent_pointer(4).
	NodeTypeSize        = 1
	NodeTypeOffset      = 0
	IsRootSize          = 1
	IsRootOffset        = NodeTypeSize
	ParentPointerSize   = 4
	ParentPointerOffset = IsRootOffset + IsRootSize
	CommonNodeHeaderSize = NodeTypeSize + IsRootSize + ParentPointerSize // 6

	// Leaf node header: common header + num_cells(4) + next_leaf(4).
	LeafNodeNumCellsSize   = 4
	LeafNodeNumCellsOffset = CommonNodeHeaderSize
	LeafNodeNextLeafSize   = 4
	LeafNodeNextLeafOffset = LeafNodeNumCellsOffset + LeafNodeNumCellsSize
	LeafNodeHeaderSize     = CommonNodeHeaderSize + LeafNodeNumCellsSize + LeafNodeNextLeafSize // 14

	LeafNodeKeySize        = 4
	LeafNodeKeyOffset      = 0
	LeafNodeValueSize      = RowSize
	LeafNodeValueOffset    = LeafNodeKeyOffset + LeafNodeKeySize
	LeafNodeCellSize       = LeafNodeKeySize + LeafNodeValueSize // 297
	LeafNodeSpaceForCells  = PageSize - LeafNodeHeaderSize
	LeafNodeMaxCells       = LeafNodeSpaceForCells / LeafNodeCellSize // 13

	LeafNodeRightSplitCount = (LeafNodeMaxCells + 1) / 2
	LeafNodeLeftSplitCount  = (LeafNodeMaxCells + 1) - LeafNodeRightSplitCount

	// Internal node header: common header + num_keys(4) + right_child(4).
	InternalNodeNumKeysSize     = 4
	InternalNodeNumKeysOffset   = CommonNodeHeaderSize
	InternalNodeRightChildSize  = 4
	InternalNodeRightChildOffset = InternalNodeNumKeysOffset + InternalNodeNumKeysSize
	InternalNodeHeaderSize      = CommonNodeHeaderSize + InternalNodeNumKeysSize + InternalNodeRightChildSize

	InternalNodeKeySize   = 4
	InternalNodeChildSize = 4
	InternalNodeCellSize  = InternalNodeChildSize + InternalNodeKeySize

	InternalNodeSpaceForCells = PageSize - InternalNodeHeaderSize
	// Fan-out this wide means an internal node filling under
	// TableMaxPages=100 total pages is structurally unreachable: the tree
	// would need over 500 leaves before an internal node could fill.
	InternalNodeMaxCells = InternalNodeSpaceForCells / InternalNodeCellSize
)
