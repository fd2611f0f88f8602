package storage

// cursor is a (page_num, cell_num) position into the leaf level of the
// tree, used both to locate an insert point (find) and to walk rows in
// key order (start/advance) across leaf boundaries via next_leaf.
type cursor struct {
	table      *Table
	pageNum    uint32
	cellNum    uint32
	endOfTable bool
}

// start returns a cursor at the first cell of the leftmost leaf.
func (t *Table) start() *cursor {
	pageNum := t.leftmostLeaf(rootPageNum)
	page := t.pager.getPage(pageNum)
	return &cursor{table: t, pageNum: pageNum, cellNum: 0, endOfTable: leafNodeNumCells(page) == 0}
}

// value returns the row bytes the cursor currently points at.
func (c *cursor) value() []byte {
	page := c.table.pager.getPage(c.pageNum)
	return leafNodeValue(page, c.cellNum)
}

// advance moves the cursor to the next cell, crossing into the next leaf
// (following next_leaf) when the current leaf is exhausted.
func (c *cursor) advance() {
	page := c.table.pager.getPage(c.pageNum)
	c.cellNum++
	if c.cellNum >= leafNodeNumCells(page) {
		next := leafNodeNextLeaf(page)
		if next == 0 {
			c.endOfTable = true
		} else {
			c.pageNum = next
			c.cellNum = 0
		}
	}
}
