package app

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"io"
	"log"

	"github.com/spf13/afero"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

type sheetReader struct {
	*bufio.Reader
	io.Closer
}

// OpenSheet opens the CSV sheet at path for reading. Spreadsheet
// exports often start with a UTF-8 byte order mark; it is skipped so
// the first cell parses cleanly.
func OpenSheet(fsys afero.Fs, path string) (io.ReadCloser, error) {
	file, err := fsys.Open(path)
	if err != nil {
		return nil, err
	}

	buf := bufio.NewReader(file)
	if head, err := buf.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		if _, err := buf.Discard(len(utf8BOM)); err != nil {
			closeFile(file, path)
			return nil, err
		}
	}

	return &sheetReader{Reader: buf, Closer: file}, nil
}

// NewSheetCSVReader wraps r in a CSV reader configured for the ragged
// sheets: rows have varying widths and cells may carry stray quotes.
func NewSheetCSVReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	return reader
}

// WriteFileAtomic writes data to a temp file first and renames it into
// place, so path never holds a partial result.
func WriteFileAtomic(fsys afero.Fs, path string, data []byte) error {
	tmpFile := path + TmpSuffix
	if err := afero.WriteFile(fsys, tmpFile, data, FilePermissions); err != nil {
		return err
	}

	if err := fsys.Rename(tmpFile, path); err != nil {
		if rmErr := fsys.Remove(tmpFile); rmErr != nil {
			log.Printf("Error removing temp file %s: %v", tmpFile, rmErr)
		}
		return err
	}

	return nil
}

func closeFile(c io.Closer, name string) {
	if err := c.Close(); err != nil {
		log.Printf("Error closing %s: %v", name, err)
	}
}
