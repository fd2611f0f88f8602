// Package row implements the fixed-schema row codec: id, username, email
// packed into the byte layout the B-tree leaf cells store.
package row

import (
	"encoding/binary"
	"fmt"

	"btreedb/internal/constants"
)

// Row is one record of the table's single fixed schema.
type Row struct {
	ID       uint32
	Username string
	Email    string
}

// Validate checks the constraints the REPL must reject before a Row ever
// reaches the B-tree: positive id, strings within their max lengths.
func (r Row) Validate() error {
	if int32(r.ID) < 0 {
		return fmt.Errorf("id must be positive")
	}
	if len(r.Username) > constants.UsernameSize-1 {
		return fmt.Errorf("string is too long")
	}
	if len(r.Email) > constants.EmailSize-1 {
		return fmt.Errorf("string is too long")
	}
	return nil
}

// Serialize packs r into dst, which must be at least constants.RowSize bytes.
func Serialize(r Row, dst []byte) {
	binary.LittleEndian.PutUint32(dst[constants.IDOffset:], r.ID)

	usernameBuf := dst[constants.UsernameOffset : constants.UsernameOffset+constants.UsernameSize]
	clear(usernameBuf)
	copy(usernameBuf, r.Username)

	emailBuf := dst[constants.EmailOffset : constants.EmailOffset+constants.EmailSize]
	clear(emailBuf)
	copy(emailBuf, r.Email)
}

// Deserialize unpacks a Row out of src, which must be at least
// constants.RowSize bytes.
func Deserialize(src []byte) Row {
	id := binary.LittleEndian.Uint32(src[constants.IDOffset:])
	username := cString(src[constants.UsernameOffset : constants.UsernameOffset+constants.UsernameSize])
	email := cString(src[constants.EmailOffset : constants.EmailOffset+constants.EmailSize])
	return Row{ID: id, Username: username, Email: email}
}

// cString trims a NUL-padded byte field down to its content.
func cString(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
