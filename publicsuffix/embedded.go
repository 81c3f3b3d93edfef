package publicsuffix

import (
	"bytes"
	"compress/zlib"
	_ "embed"
	"io"
)

//go:embed embedded_list.zlib
var embeddedListZlib []byte

// NewWithEmbeddedList builds a List from the zlib-compressed Public Suffix
// List snapshot bundled into the binary, so callers who don't need to
// track upstream updates don't have to fetch or embed their own copy.
func NewWithEmbeddedList(opts ...Option) (*List, error) {
	zr, err := zlib.NewReader(bytes.NewReader(embeddedListZlib))
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	text, err := io.ReadAll(zr)
	if err != nil {
		return nil, err
	}
	return Parse(string(text), opts...), nil
}
