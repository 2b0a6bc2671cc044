// Package sniff identifies SQLite database files by their header signature.
package sniff

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

// HeaderSize is the length of the SQLite file signature.
const HeaderSize = 16

// Signature is the fixed header at offset 0 of every SQLite 3 database file.
var Signature = [HeaderSize]byte{'S', 'Q', 'L', 'i', 't', 'e', ' ', 'f', 'o', 'r', 'm', 'a', 't', ' ', '3', 0}

// MatchHeader reads the first HeaderSize bytes from r and reports whether they
// equal Signature. Input shorter than the signature is not a match and not an error.
func MatchHeader(r io.Reader) (bool, error) {
	var buf [HeaderSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return false, nil
		}
		return false, err
	}
	return bytes.Equal(buf[:], Signature[:]), nil
}

// HasSQLiteHeader opens path and checks its header.
// Only the first HeaderSize bytes are read, regardless of file size.
func HasSQLiteHeader(path string) (bool, error) {
	f, err := os.Open(path) //nolint:gosec // G304: path comes from the tree walk
	if err != nil {
		return false, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	ok, err := MatchHeader(f)
	if err != nil {
		return false, fmt.Errorf("failed to read header: %w", err)
	}
	return ok, nil
}
