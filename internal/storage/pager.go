package storage

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"btreedb/internal/constants"
)

// pager owns the database file and caches whole pages in memory, keyed by
// page number. Pages are loaded lazily and flushed explicitly; there is no
// page eviction, so a database is bounded by constants.TableMaxPages.
type pager struct {
	file       *os.File
	fileLength int64
	numPages   uint32
	pages      [constants.TableMaxPages]*[constants.PageSize]byte
	log        *zap.SugaredLogger
}

func openPager(filename string, log *zap.SugaredLogger) (*pager, error) {
	f, err := os.OpenFile(filename, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening database file: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat database file: %w", err)
	}
	fileLength := info.Size()
	if fileLength%constants.PageSize != 0 {
		return nil, fmt.Errorf("db file is not a whole number of pages: length %d", fileLength)
	}
	return &pager{
		file:       f,
		fileLength: fileLength,
		numPages:   uint32(fileLength / constants.PageSize),
		log:        log,
	}, nil
}

// getPage returns the cached page for pageNum, loading it from disk first
// if it is not yet resident. A request one page past the current end of
// file allocates a fresh, zeroed page.
func (p *pager) getPage(pageNum uint32) []byte {
	if pageNum >= constants.TableMaxPages {
		p.log.Fatalf("page number %d out of bounds (max %d)", pageNum, constants.TableMaxPages-1)
	}

	if p.pages[pageNum] == nil {
		page := new([constants.PageSize]byte)
		numPagesOnDisk := uint32(p.fileLength / constants.PageSize)
		if p.fileLength%constants.PageSize != 0 {
			numPagesOnDisk++
		}

		if pageNum < numPagesOnDisk {
			if _, err := p.file.ReadAt(page[:], int64(pageNum)*constants.PageSize); err != nil {
				p.log.Fatalf("reading page %d: %v", pageNum, err)
			}
		}

		p.pages[pageNum] = page

		if pageNum >= p.numPages {
			p.numPages = pageNum + 1
		}
	}

	return p.pages[pageNum][:]
}

// getUnusedPageNum returns the page number one past the current end of the
// table. Pages are never recycled: the store only ever grows.
func (p *pager) getUnusedPageNum() uint32 {
	return p.numPages
}

// flushPage writes a resident page back to its slot in the file.
func (p *pager) flushPage(pageNum uint32) error {
	if p.pages[pageNum] == nil {
		return nil
	}
	_, err := p.file.WriteAt(p.pages[pageNum][:], int64(pageNum)*constants.PageSize)
	if err != nil {
		return fmt.Errorf("flushing page %d: %w", pageNum, err)
	}
	return nil
}

// flushAll writes every resident page back to the file and closes it.
func (p *pager) flushAll() error {
	for i := uint32(0); i < p.numPages; i++ {
		if err := p.flushPage(i); err != nil {
			return err
		}
	}
	return p.file.Close()
}
